package dashboard

import (
	"strconv"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/catalog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ChartResponse struct {
	Query  string       `json:"query,omitempty"` // katalogtaki sorgu adı (varsa)
	Title  string       `json:"title"`
	Points []ChartPoint `json:"points"`
}

// Katalogta birebir karşılığı olan grafikler oradan beslenir; panel ile
// dashboard aynı sayıları gösterir.
func chartFromCatalog(db *gorm.DB, queryName, labelCol, valueCol string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, ok := catalog.Find(queryName)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "Sorgu bulunamadı")
		}

		result, err := catalog.Run(db, queryName, "")
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		points := make([]ChartPoint, 0, len(result.Rows))
		for _, row := range result.Rows {
			label, _ := row[labelCol].(string)
			points = append(points, ChartPoint{
				Label: label,
				Value: toFloat(row[valueCol]),
			})
		}

		return c.JSON(ChartResponse{
			Query:  q.Name,
			Title:  q.Title,
			Points: points,
		})
	}
}

// GET /api/dashboard/top-cities
// Şehir başına ilan sayısı, çoktan aza. Katalogtaki "en çok ilan olan şehir"
// sorgusu LIMIT 1 döndürür; grafik tüm şehirleri ister.
func TopCitiesChartHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type row struct {
			Location string `gorm:"column:location"`
			Listings int64  `gorm:"column:listings"`
		}

		var rows []row
		err := db.Raw(`
			SELECT location, COUNT(*) AS listings
			FROM food_listings
			GROUP BY location
			ORDER BY listings DESC, location`).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şehir dağılımı okunamadı")
		}

		points := make([]ChartPoint, 0, len(rows))
		for _, r := range rows {
			points = append(points, ChartPoint{Label: r.Location, Value: float64(r.Listings)})
		}

		return c.JSON(ChartResponse{
			Title:  "Top Cities by Listings",
			Points: points,
		})
	}
}

// GET /api/dashboard/food-types
func FoodTypesChartHandler(db *gorm.DB) fiber.Handler {
	return chartFromCatalog(db, "food_type_distribution", "food_type", "listing_count")
}

// GET /api/dashboard/claim-status
func ClaimStatusChartHandler(db *gorm.DB) fiber.Handler {
	return chartFromCatalog(db, "claims_by_status", "status", "claim_count")
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
