package catalog

import (
	"testing"
	"time"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/models"
	"gidabagis-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Küçük ama cevapları elle hesaplanabilir bir senaryo
func seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	providers := []models.Provider{
		{ProviderID: 1, Name: "Kumar Restaurant", Type: "Restaurant", Address: "12 MG Road", City: "Chennai", Contact: "+91-555-0101"},
		{ProviderID: 2, Name: "Fresh Mart", Type: "Grocery Store", Address: "4 Park St", City: "Mumbai", Contact: "+91-555-0102"},
	}
	receivers := []models.Receiver{
		{ReceiverID: 1, Name: "Hope Shelter", Type: "Shelter", City: "Chennai", Contact: "+91-555-0201"},
		{ReceiverID: 2, Name: "Care NGO", Type: "NGO", City: "Mumbai", Contact: "+91-555-0202"},
		{ReceiverID: 3, Name: "Food Bank", Type: "Charity", City: "Delhi", Contact: "+91-555-0203"},
	}
	listings := []models.FoodListing{
		{ListingID: 1, FoodName: "Rice", Quantity: 25, ExpiryDate: date(2026, 10, 1), ProviderID: 1, ProviderType: "Restaurant", Location: "Chennai", FoodType: string(models.FoodTypeVegetarian), MealType: string(models.MealTypeLunch)},
		{ListingID: 2, FoodName: "Bread", Quantity: 10, ExpiryDate: date(2026, 10, 2), ProviderID: 1, ProviderType: "Restaurant", Location: "Chennai", FoodType: string(models.FoodTypeVegan), MealType: string(models.MealTypeBreakfast)},
		{ListingID: 3, FoodName: "Fruit Box", Quantity: 5, ExpiryDate: date(2026, 10, 3), ProviderID: 2, ProviderType: "Grocery Store", Location: "Mumbai", FoodType: string(models.FoodTypeVegan), MealType: string(models.MealTypeDinner)},
	}
	claims := []models.Claim{
		{ClaimID: 1, ListingID: 1, ReceiverID: 1, Status: models.ClaimStatusCompleted, Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), Quantity: 5},
		{ClaimID: 2, ListingID: 2, ReceiverID: 2, Status: models.ClaimStatusPending, Timestamp: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC), Quantity: 3},
		{ClaimID: 3, ListingID: 1, ReceiverID: 2, Status: models.ClaimStatusCancelled, Timestamp: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), Quantity: 2},
	}

	require.NoError(t, db.Create(&providers).Error)
	require.NoError(t, db.Create(&receivers).Error)
	require.NoError(t, db.Create(&listings).Error)
	require.NoError(t, db.Create(&claims).Error)
}

func TestRunProvidersReceiversByCity(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "providers_receivers_by_city", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3) // Chennai, Delhi, Mumbai

	assert.Equal(t, "Chennai", res.Rows[0]["city"])
	assert.EqualValues(t, 1, res.Rows[0]["total_providers"])
	assert.EqualValues(t, 1, res.Rows[0]["total_receivers"])

	// Delhi'de alıcı var ama bağışçı yok; şehir yine de listede
	assert.Equal(t, "Delhi", res.Rows[1]["city"])
	assert.EqualValues(t, 0, res.Rows[1]["total_providers"])
	assert.EqualValues(t, 1, res.Rows[1]["total_receivers"])

	assert.Equal(t, "Mumbai", res.Rows[2]["city"])
}

func TestRunTotalAvailableQuantity(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "total_available_quantity", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 40, res.Rows[0]["total_available"])
}

func TestRunTotalAvailableQuantityEmptyStore(t *testing.T) {
	db := testutil.OpenDB(t)

	res, err := Run(db, "total_available_quantity", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 0, res.Rows[0]["total_available"])
}

func TestRunProviderContactsByCity(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	// Şehir eşleşmesi büyük/küçük harf duyarsız
	res, err := Run(db, "provider_contacts_by_city", "chennai")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Kumar Restaurant", res.Rows[0]["name"])
	assert.Equal(t, "+91-555-0101", res.Rows[0]["contact"])
}

func TestRunMissingParam(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Run(db, "provider_contacts_by_city", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRunUnknownQuery(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Run(db, "drop_all_tables", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRunFoodTypeDistribution(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "food_type_distribution", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Vegan", res.Rows[0]["food_type"])
	assert.EqualValues(t, 2, res.Rows[0]["listing_count"])
	assert.Equal(t, "Vegetarian", res.Rows[1]["food_type"])
	assert.EqualValues(t, 1, res.Rows[1]["listing_count"])
}

func TestRunClaimsByStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "claims_by_status", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	total := 0
	for _, row := range res.Rows {
		assert.EqualValues(t, 1, row["claim_count"])
		total++
	}
	assert.Equal(t, 3, total)
}

func TestRunTotalClaimedPerFoodType(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "total_claimed_per_food_type", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	// Vegetarian: 5+2, Vegan: 3
	assert.Equal(t, "Vegetarian", res.Rows[0]["food_type"])
	assert.EqualValues(t, 7, res.Rows[0]["total_claimed"])
	assert.Equal(t, "Vegan", res.Rows[1]["food_type"])
	assert.EqualValues(t, 3, res.Rows[1]["total_claimed"])
}

func TestRunMostClaimedMealType(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "most_claimed_meal_type", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Lunch", res.Rows[0]["meal_type"])
	assert.EqualValues(t, 7, res.Rows[0]["total_claimed"])
}

func TestRunCityWithMostListings(t *testing.T) {
	db := testutil.OpenDB(t)
	seed(t, db)

	res, err := Run(db, "city_with_most_listings", "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Chennai", res.Rows[0]["city"])
	assert.EqualValues(t, 2, res.Rows[0]["total_listings"])
}

func TestListIsStableAndComplete(t *testing.T) {
	first := List()
	second := List()

	require.Len(t, first, 15)
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}

	// Parametreli tek sorgu şehir bazlı iletişim sorgusudur
	for _, q := range first {
		if q.Name == "provider_contacts_by_city" {
			assert.Equal(t, "city", q.Param)
		} else {
			assert.Empty(t, q.Param)
		}
	}
}
