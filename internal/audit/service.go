package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"gidabagis-backend/internal/models"

	"gorm.io/gorm"
)

const EntityFoodListing = "food_listing"

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(db *gorm.DB, opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		IsUndone:    false,
	}

	if err := db.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u geri al.
// create -> ilgili ilan silinir; delete -> ilan aynı kimlikle geri oluşturulur
// (silme sadece bağlı talebi olmayan ilanlarda mümkün olduğundan geri yükleme
// referans bütünlüğünü bozamaz).
func UndoLog(db *gorm.DB, logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := db.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	if log.EntityType != EntityFoodListing {
		return fmt.Errorf("bilinmeyen entity tipi: %s", log.EntityType)
	}

	switch log.Action {
	case models.AuditActionCreate:
		// Create ise ilanı sil
		if err := db.Delete(&models.FoodListing{}, "listing_id = ?", log.EntityID).Error; err != nil {
			return fmt.Errorf("ilan silinemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise ilanı geri oluştur
		var listing models.FoodListing
		if err := json.Unmarshal([]byte(log.BeforeData), &listing); err != nil {
			return fmt.Errorf("ilan verisi çözümlenemedi: %w", err)
		}
		if err := db.Create(&listing).Error; err != nil {
			return fmt.Errorf("ilan geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	// Log'u işaretle
	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := db.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
	}

	if err := db.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}
