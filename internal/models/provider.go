package models

// Provider: bağışçı kurum (restoran, market, otel vb.)
type Provider struct {
	ProviderID uint   `gorm:"column:provider_id;primaryKey" json:"provider_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Type       string `gorm:"size:50;not null" json:"type"` // Restaurant, Grocery Store, Supermarket vs.
	Address    string `gorm:"type:text" json:"address"`
	City       string `gorm:"size:50;not null;index" json:"city"`
	Contact    string `gorm:"size:50;not null" json:"contact"`

	Listings []FoodListing `gorm:"foreignKey:ProviderID;references:ProviderID" json:"-"`
}
