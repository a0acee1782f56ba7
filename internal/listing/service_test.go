package listing

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

func seedProviders(t *testing.T, db *gorm.DB) {
	t.Helper()
	providers := []models.Provider{
		{ProviderID: 1, Name: "Kumar Restaurant", Type: "Restaurant", Address: "12 MG Road", City: "Chennai", Contact: "+91-555-0101"},
		{ProviderID: 2, Name: "Fresh Mart", Type: "Grocery Store", Address: "4 Park St", City: "Mumbai", Contact: "+91-555-0102"},
	}
	require.NoError(t, db.Create(&providers).Error)
}

func validInput() AddInput {
	return AddInput{
		FoodName:   "Rice",
		Quantity:   25,
		ExpiryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ProviderID: 1,
		Location:   "Chennai",
		FoodType:   string(models.FoodTypeVegetarian),
		MealType:   string(models.MealTypeLunch),
	}
}

func TestAddDenormalizesProviderType(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	l, err := Add(db, validInput())
	require.NoError(t, err)
	require.NotZero(t, l.ListingID)
	assert.Equal(t, "Restaurant", l.ProviderType)

	var stored models.FoodListing
	require.NoError(t, db.First(&stored, "listing_id = ?", l.ListingID).Error)
	assert.Equal(t, "Restaurant", stored.ProviderType)
	assert.Equal(t, "Rice", stored.FoodName)
}

func TestAddMissingProviderRejected(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	in := validInput()
	in.ProviderID = 99

	_, err := Add(db, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConstraint, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "provider_id=99")

	// Reddedilen istek iz bırakmaz
	var count int64
	require.NoError(t, db.Model(&models.FoodListing{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	in := validInput()
	in.FoodName = "   "
	_, err := Add(db, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	in = validInput()
	in.Quantity = -1
	_, err = Add(db, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	in = validInput()
	in.ExpiryDate = time.Time{}
	_, err = Add(db, in)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteMissingListing(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	_, err := Delete(db, 42)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "listing_id=42")
}

func TestDeleteRestrictedWithClaims(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	l, err := Add(db, validInput())
	require.NoError(t, err)

	receiver := models.Receiver{ReceiverID: 1, Name: "Hope Shelter", Type: "Shelter", City: "Chennai", Contact: "+91-555-0201"}
	require.NoError(t, db.Create(&receiver).Error)
	claim := models.Claim{ClaimID: 1, ListingID: l.ListingID, ReceiverID: 1, Status: models.ClaimStatusPending, Timestamp: time.Now(), Quantity: 5}
	require.NoError(t, db.Create(&claim).Error)

	_, err = Delete(db, l.ListingID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConstraint, apperr.KindOf(err))

	// İlan yerinde duruyor
	var count int64
	require.NoError(t, db.Model(&models.FoodListing{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteReturnsDeletedRow(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	l, err := Add(db, validInput())
	require.NoError(t, err)

	deleted, err := Delete(db, l.ListingID)
	require.NoError(t, err)
	assert.Equal(t, "Rice", deleted.FoodName)

	var count int64
	require.NoError(t, db.Model(&models.FoodListing{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDistinctValuesWhitelist(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	values, err := DistinctValues(db, "providers", "city")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chennai", "Mumbai"}, values)

	// Whitelist dışı identifier reddedilir
	_, err = DistinctValues(db, "users", "password_hash")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = DistinctValues(db, "providers", "contact; DROP TABLE providers")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFilter(t *testing.T) {
	db := testutil.OpenDB(t)
	seedProviders(t, db)

	_, err := Add(db, validInput())
	require.NoError(t, err)

	in := validInput()
	in.FoodName = "Fruit Box"
	in.ProviderID = 2
	in.Location = "Mumbai"
	in.FoodType = string(models.FoodTypeVegan)
	_, err = Add(db, in)
	require.NoError(t, err)

	all, err := Filter(db, FilterInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	chennai, err := Filter(db, FilterInput{Location: "Chennai"})
	require.NoError(t, err)
	require.Len(t, chennai, 1)
	assert.Equal(t, "Rice", chennai[0].FoodName)
	assert.Equal(t, "Kumar Restaurant", chennai[0].Provider)

	vegan, err := Filter(db, FilterInput{Provider: "Fresh Mart", FoodType: string(models.FoodTypeVegan)})
	require.NoError(t, err)
	require.Len(t, vegan, 1)
	assert.Equal(t, "Fruit Box", vegan[0].FoodName)

	none, err := Filter(db, FilterInput{Location: "Delhi"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
