package listing

import (
	"fmt"
	"log"
	"time"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/audit"
	"gidabagis-backend/internal/auth"
	"gidabagis-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateListingRequest struct {
	FoodName   string `json:"food_name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"` // "2025-12-09"
	ProviderID uint   `json:"provider_id"`
	Location   string `json:"location"`
	FoodType   string `json:"food_type"`
	MealType   string `json:"meal_type"`
}

type ListingResponse struct {
	ListingID    uint   `json:"listing_id"`
	FoodName     string `json:"food_name"`
	Quantity     int    `json:"quantity"`
	ExpiryDate   string `json:"expiry_date"`
	ProviderID   uint   `json:"provider_id"`
	ProviderType string `json:"provider_type"`
	Location     string `json:"location"`
	FoodType     string `json:"food_type"`
	MealType     string `json:"meal_type"`
}

func toResponse(l *models.FoodListing) ListingResponse {
	return ListingResponse{
		ListingID:    l.ListingID,
		FoodName:     l.FoodName,
		Quantity:     l.Quantity,
		ExpiryDate:   l.ExpiryDate.Format("2006-01-02"),
		ProviderID:   l.ProviderID,
		ProviderType: l.ProviderType,
		Location:     l.Location,
		FoodType:     l.FoodType,
		MealType:     l.MealType,
	}
}

// GET /api/listings?location=Chennai&provider=...&food_type=...
func ListListingsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := FilterInput{
			Location: c.Query("location"),
			Provider: c.Query("provider"),
			FoodType: c.Query("food_type"),
		}

		rows, err := Filter(db, in)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(rows)
	}
}

// POST /api/listings
func CreateListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateListingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		// Formdan gelen yeni ilanlarda miktar en az 1 olmalı; 0 miktarlı ilan
		// sadece veri yüklemesinden gelebilir
		if body.Quantity < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar en az 1 olmalı")
		}

		expiry, err := time.Parse("2006-01-02", body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "expiry_date 'YYYY-MM-DD' formatında olmalı")
		}

		l, err := Add(db, AddInput{
			FoodName:   body.FoodName,
			Quantity:   body.Quantity,
			ExpiryDate: expiry,
			ProviderID: body.ProviderID,
			Location:   body.Location,
			FoodType:   body.FoodType,
			MealType:   body.MealType,
		})
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		userID, userName := auth.UserFromContext(c)
		if err := audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityFoodListing,
			EntityID:    l.ListingID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("İlan eklendi: %s (%d adet)", l.FoodName, l.Quantity),
			After:       l,
		}); err != nil {
			// Audit yazılamasa bile asıl işlem geri alınmaz, sadece loglanır
			log.Printf("Audit log yazılamadı: %v", err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(l))
	}
}

// DELETE /api/listings/:id
func DeleteListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		deleted, err := Delete(db, id)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		userID, userName := auth.UserFromContext(c)
		if err := audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityFoodListing,
			EntityID:    deleted.ListingID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("İlan silindi: %s", deleted.FoodName),
			Before:      deleted,
		}); err != nil {
			log.Printf("Audit log yazılamadı: %v", err)
		}

		return c.JSON(fiber.Map{"deleted": id})
	}
}

// GET /api/filters/:table/:column
// Filtre picker'larını dolduran distinct değer listesi
func DistinctValuesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := DistinctValues(db, c.Params("table"), c.Params("column"))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(fiber.Map{
			"table":  c.Params("table"),
			"column": c.Params("column"),
			"values": values,
		})
	}
}
