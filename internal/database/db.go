package database

import (
	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/config"
	"gidabagis-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect: Postgres'e bağlanır ve handle'ı döndürür.
// Global DB tutulmaz; handle main'den handler'lara açıkça geçirilir.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfiguration, "Veritabanına bağlanılamadı", err)
	}
	return db, nil
}

// Migrate: dört tabloyu ve yardımcı tabloları oluşturur (yoksa).
// Tekrar çağrılması güvenlidir; var olan tablolar silinip yeniden yaratılmaz.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Provider{},
		&models.Receiver{},
		&models.FoodListing{},
		&models.Claim{},
		&models.User{},
		&models.AuditLog{},
	)
	if err != nil {
		return apperr.Wrap(apperr.KindConfiguration, "Migration tamamlanamadı", err)
	}
	return nil
}
