// Package contact, şehir bazlı iletişim aramasını sunar. Bağış koordinasyonu
// için bağışçı ve alıcı iletişim bilgileri şehir adına göre filtrelenir.
package contact

import (
	"strings"

	"gidabagis-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContactResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	City    string `json:"city"`
	Contact string `json:"contact"`
}

// GET /api/contacts/providers?city=chenn
func ProviderContactsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Model(&models.Provider{}).Order("name ASC")

		if city := strings.TrimSpace(c.Query("city")); city != "" {
			q = q.Where("LOWER(city) LIKE LOWER(?)", "%"+city+"%")
		}

		var providers []models.Provider
		if err := q.Find(&providers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağışçılar listelenemedi")
		}

		resp := make([]ContactResponse, 0, len(providers))
		for _, p := range providers {
			resp = append(resp, ContactResponse{
				ID:      p.ProviderID,
				Name:    p.Name,
				Type:    p.Type,
				City:    p.City,
				Contact: p.Contact,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/contacts/receivers?city=chenn
func ReceiverContactsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Model(&models.Receiver{}).Order("name ASC")

		if city := strings.TrimSpace(c.Query("city")); city != "" {
			q = q.Where("LOWER(city) LIKE LOWER(?)", "%"+city+"%")
		}

		var receivers []models.Receiver
		if err := q.Find(&receivers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alıcılar listelenemedi")
		}

		resp := make([]ContactResponse, 0, len(receivers))
		for _, r := range receivers {
			resp = append(resp, ContactResponse{
				ID:      r.ReceiverID,
				Name:    r.Name,
				Type:    r.Type,
				City:    r.City,
				Contact: r.Contact,
			})
		}

		return c.JSON(resp)
	}
}
