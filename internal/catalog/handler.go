package catalog

import (
	"gidabagis-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/queries
func ListQueriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(List())
	}
}

// GET /api/queries/:name[?city=...]
func RunQueryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")

		q, ok := Find(name)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen sorgu: "+name)
		}

		param := ""
		if q.Param != "" {
			param = c.Query(q.Param)
			if param == "" {
				return fiber.NewError(fiber.StatusBadRequest, "'"+q.Param+"' parametresi zorunlu")
			}
		}

		result, err := Run(db, name, param)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(result)
	}
}
