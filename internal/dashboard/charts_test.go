package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gidabagis-backend/internal/models"
	"gidabagis-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	provider := models.Provider{ProviderID: 1, Name: "Kumar Restaurant", Type: "Restaurant", Address: "12 MG Road", City: "Chennai", Contact: "+91-555-0101"}
	require.NoError(t, db.Create(&provider).Error)

	listings := []models.FoodListing{
		{ListingID: 1, FoodName: "Rice", Quantity: 25, ExpiryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), ProviderID: 1, ProviderType: "Restaurant", Location: "Chennai", FoodType: string(models.FoodTypeVegetarian), MealType: string(models.MealTypeLunch)},
		{ListingID: 2, FoodName: "Bread", Quantity: 10, ExpiryDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), ProviderID: 1, ProviderType: "Restaurant", Location: "Chennai", FoodType: string(models.FoodTypeVegan), MealType: string(models.MealTypeBreakfast)},
		{ListingID: 3, FoodName: "Fruit Box", Quantity: 5, ExpiryDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), ProviderID: 1, ProviderType: "Restaurant", Location: "Mumbai", FoodType: string(models.FoodTypeVegan), MealType: string(models.MealTypeDinner)},
	}
	require.NoError(t, db.Create(&listings).Error)
}

func getChart(t *testing.T, app *fiber.App, path string) ChartResponse {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ChartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestChartEndpoints(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	app := fiber.New()
	app.Get("/dashboard/top-cities", TopCitiesChartHandler(db))
	app.Get("/dashboard/food-types", FoodTypesChartHandler(db))
	app.Get("/dashboard/claim-status", ClaimStatusChartHandler(db))

	cities := getChart(t, app, "/dashboard/top-cities")
	require.Len(t, cities.Points, 2)
	assert.Equal(t, "Chennai", cities.Points[0].Label)
	assert.EqualValues(t, 2, cities.Points[0].Value)
	assert.Equal(t, "Mumbai", cities.Points[1].Label)

	foodTypes := getChart(t, app, "/dashboard/food-types")
	assert.Equal(t, "food_type_distribution", foodTypes.Query)
	require.Len(t, foodTypes.Points, 2)
	assert.Equal(t, "Vegan", foodTypes.Points[0].Label)
	assert.EqualValues(t, 2, foodTypes.Points[0].Value)

	// Talep yokken grafik boş seri döner, hata değil
	status := getChart(t, app, "/dashboard/claim-status")
	assert.Empty(t, status.Points)
}
