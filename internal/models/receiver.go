package models

// Receiver: bağış alan kurum (STK, yetimhane, aşevi vb.)
type Receiver struct {
	ReceiverID uint   `gorm:"column:receiver_id;primaryKey" json:"receiver_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Type       string `gorm:"size:50;not null" json:"type"` // NGO, Shelter, Charity vs.
	City       string `gorm:"size:50;not null;index" json:"city"`
	Contact    string `gorm:"size:50;not null" json:"contact"`

	Claims []Claim `gorm:"foreignKey:ReceiverID;references:ReceiverID" json:"-"`
}
