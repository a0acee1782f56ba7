package loader

import (
	"path/filepath"
	"strings"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LoadAllRequest struct {
	// Opsiyonel: tablo adı -> dosya yolu. Boşsa DATASET_DIR altındaki
	// varsayılan dosya adları kullanılır.
	Locations map[string]string `json:"locations"`
}

// POST /api/datasets/load
// Dört kaynağı sırayla yükler, tablo bazında sonuç döner
func LoadAllHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoadAllRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
			}
		}

		locations := make(map[string]string, len(Datasets))
		for _, ds := range Datasets {
			locations[ds.Table] = filepath.Join(cfg.DatasetDir, ds.File)
		}
		for table, path := range body.Locations {
			if _, ok := DatasetFor(table); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Bilinmeyen tablo: "+table)
			}
			locations[table] = path
		}

		results := LoadAll(db, locations)
		return c.JSON(results)
	}
}

// POST /api/datasets/:table/import
// Tek bir tabloya .xlsx dosyası yükler (multipart "file" alanı)
func ImportTableHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table := c.Params("table")
		if _, ok := DatasetFor(table); !ok {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen tablo: "+table)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		records, err := ReadWorkbookFrom(file)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		res, err := ImportTable(db, table, records)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(res)
	}
}
