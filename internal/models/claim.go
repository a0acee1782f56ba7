package models

import "time"

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "Pending"
	ClaimStatusCompleted ClaimStatus = "Completed"
	ClaimStatusCancelled ClaimStatus = "Cancelled"
)

// Claim: bir alıcının bir ilandan talep ettiği miktar.
// Quantity ilanın kendi miktarından bağımsızdır; talep ilan stokunu düşürmez.
type Claim struct {
	ClaimID uint `gorm:"column:claim_id;primaryKey" json:"claim_id"`

	ListingID uint        `gorm:"not null;index" json:"listing_id"`
	Listing   FoodListing `gorm:"foreignKey:ListingID;references:ListingID;constraint:OnDelete:RESTRICT" json:"-"`

	ReceiverID uint     `gorm:"not null;index" json:"receiver_id"`
	Receiver   Receiver `gorm:"foreignKey:ReceiverID;references:ReceiverID;constraint:OnDelete:RESTRICT" json:"-"`

	Status    ClaimStatus `gorm:"size:20;not null" json:"status"`
	Timestamp time.Time   `gorm:"column:timestamp;not null" json:"timestamp"`
	Quantity  int         `gorm:"not null;check:quantity > 0" json:"quantity"`
}
