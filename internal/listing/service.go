package listing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/models"

	"gorm.io/gorm"
)

type AddInput struct {
	FoodName   string
	Quantity   int
	ExpiryDate time.Time
	ProviderID uint
	Location   string
	FoodType   string
	MealType   string
}

// Add: yeni ilan oluşturur. provider_type o anki bağışçı tipinden denormalize
// edilir ve sonradan bağışçı değişse bile güncellenmez.
func Add(db *gorm.DB, in AddInput) (*models.FoodListing, error) {
	in.FoodName = strings.TrimSpace(in.FoodName)
	in.Location = strings.TrimSpace(in.Location)
	in.FoodType = strings.TrimSpace(in.FoodType)
	in.MealType = strings.TrimSpace(in.MealType)

	if in.FoodName == "" || in.Location == "" || in.FoodType == "" || in.MealType == "" {
		return nil, apperr.New(apperr.KindValidation, "food_name, location, food_type ve meal_type zorunlu")
	}
	if in.Quantity < 0 {
		return nil, apperr.New(apperr.KindValidation, "Miktar negatif olamaz")
	}
	if in.ExpiryDate.IsZero() {
		return nil, apperr.New(apperr.KindValidation, "Son kullanma tarihi zorunlu")
	}

	// Var olmayan bağışçıya ilan açılamaz; eksik üst kayıt kimliğiyle raporlanır
	var provider models.Provider
	if err := db.First(&provider, "provider_id = ?", in.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewRef(apperr.KindConstraint, "Bağışçı bulunamadı",
				fmt.Sprintf("provider_id=%d", in.ProviderID))
		}
		return nil, apperr.FromDB(err, "Bağışçı sorgulanamadı")
	}

	l := models.FoodListing{
		FoodName:     in.FoodName,
		Quantity:     in.Quantity,
		ExpiryDate:   in.ExpiryDate,
		ProviderID:   in.ProviderID,
		ProviderType: provider.Type,
		Location:     in.Location,
		FoodType:     in.FoodType,
		MealType:     in.MealType,
	}

	if err := db.Create(&l).Error; err != nil {
		return nil, apperr.FromDB(err, "İlan oluşturulamadı")
	}
	return &l, nil
}

// Delete: ilanı siler. Bağlı talep varsa silme reddedilir (restrict-on-delete);
// talepler üzerinden sessiz cascade yapılmaz.
func Delete(db *gorm.DB, id uint) (*models.FoodListing, error) {
	var l models.FoodListing
	if err := db.First(&l, "listing_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewRef(apperr.KindNotFound, "İlan bulunamadı",
				fmt.Sprintf("listing_id=%d", id))
		}
		return nil, apperr.FromDB(err, "İlan sorgulanamadı")
	}

	var claimCount int64
	if err := db.Model(&models.Claim{}).Where("listing_id = ?", id).Count(&claimCount).Error; err != nil {
		return nil, apperr.FromDB(err, "Bağlı talepler sorgulanamadı")
	}
	if claimCount > 0 {
		return nil, apperr.NewRef(apperr.KindConstraint,
			fmt.Sprintf("İlana bağlı %d talep var, önce talepler kaldırılmalı", claimCount),
			fmt.Sprintf("listing_id=%d", id))
	}

	if err := db.Delete(&models.FoodListing{}, "listing_id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "İlan silinemedi")
	}
	return &l, nil
}

// Filtre seçicilerini dolduran distinct sorguları için izin verilen
// tablo/kolon çiftleri. Identifier'lar bound parametre olamaz; whitelist
// dışındaki her istek reddedilir.
var distinctWhitelist = map[string]map[string]bool{
	"providers":     {"city": true, "name": true, "type": true},
	"receivers":     {"city": true, "name": true, "type": true},
	"food_listings": {"location": true, "food_type": true, "meal_type": true, "provider_type": true},
	"claims":        {"status": true},
}

// DistinctValues: bir kolondaki benzersiz değerler (filtre picker'ları için)
func DistinctValues(db *gorm.DB, table, column string) ([]string, error) {
	cols, ok := distinctWhitelist[table]
	if !ok || !cols[column] {
		return nil, apperr.NewRef(apperr.KindValidation, "Bu tablo/kolon için distinct sorgusu yok",
			table+"."+column)
	}

	var values []string
	err := db.Table(table).Distinct().Order(column).Pluck(column, &values).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Değerler okunamadı")
	}
	return values, nil
}

type FilterInput struct {
	Location string
	Provider string
	FoodType string
}

type FilteredListing struct {
	ListingID  uint      `gorm:"column:listing_id" json:"listing_id"`
	FoodName   string    `gorm:"column:food_name" json:"food_name"`
	Quantity   int       `gorm:"column:quantity" json:"quantity"`
	ExpiryDate time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	Location   string    `gorm:"column:location" json:"location"`
	FoodType   string    `gorm:"column:food_type" json:"food_type"`
	Provider   string    `gorm:"column:provider" json:"provider"`
}

// Filter: ilanları şehir/bağışçı/gıda tipine göre süzer.
// Her kullanıcı değeri bound parametredir.
func Filter(db *gorm.DB, in FilterInput) ([]FilteredListing, error) {
	dbq := db.Table("food_listings f").
		Select("f.listing_id, f.food_name, f.quantity, f.expiry_date, f.location, f.food_type, p.name AS provider").
		Joins("JOIN providers p ON f.provider_id = p.provider_id")

	if in.Location != "" {
		dbq = dbq.Where("f.location = ?", in.Location)
	}
	if in.Provider != "" {
		dbq = dbq.Where("p.name = ?", in.Provider)
	}
	if in.FoodType != "" {
		dbq = dbq.Where("f.food_type = ?", in.FoodType)
	}

	var out []FilteredListing
	if err := dbq.Order("f.listing_id").Scan(&out).Error; err != nil {
		return nil, apperr.FromDB(err, "İlanlar süzülemedi")
	}
	return out, nil
}
