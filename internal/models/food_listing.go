package models

import "time"

type FoodType string

const (
	FoodTypeVegetarian    FoodType = "Vegetarian"
	FoodTypeNonVegetarian FoodType = "Non-Vegetarian"
	FoodTypeVegan         FoodType = "Vegan"
)

type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnacks    MealType = "Snacks"
)

// FoodListing: bir bağışçının sunduğu gıda ilanı
type FoodListing struct {
	ListingID  uint      `gorm:"column:listing_id;primaryKey" json:"listing_id"`
	FoodName   string    `gorm:"size:100;not null" json:"food_name"`
	Quantity   int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	ExpiryDate time.Time `gorm:"type:date;not null" json:"expiry_date"`

	ProviderID uint     `gorm:"not null;index" json:"provider_id"`
	Provider   Provider `gorm:"foreignKey:ProviderID;references:ProviderID;constraint:OnDelete:RESTRICT" json:"-"`

	// Ekleme anındaki bağışçı tipi; bağışçı sonradan değişse bile burada sabit kalır
	ProviderType string `gorm:"size:50;not null" json:"provider_type"`

	Location string `gorm:"size:50;not null;index" json:"location"` // ilanın bulunduğu şehir
	FoodType string `gorm:"size:50;not null;index" json:"food_type"`
	MealType string `gorm:"size:50;not null" json:"meal_type"`

	Claims []Claim `gorm:"foreignKey:ListingID;references:ListingID" json:"-"`
}
