package loader

// Dataset: bir kaynak dosyanın hangi tabloya, hangi kolon kümesiyle yükleneceği.
// Sıralama referans bütünlüğü sırasıdır: providers ve receivers önce,
// food_listings sonra, claims en son.
type Dataset struct {
	Table   string
	File    string // DATASET_DIR altındaki varsayılan dosya adı
	Columns []string
}

const (
	TableProviders    = "providers"
	TableReceivers    = "receivers"
	TableFoodListings = "food_listings"
	TableClaims       = "claims"
)

var Datasets = []Dataset{
	{
		Table:   TableProviders,
		File:    "providers_data.xlsx",
		Columns: []string{"provider_id", "name", "type", "address", "city", "contact"},
	},
	{
		Table:   TableReceivers,
		File:    "receivers_data.xlsx",
		Columns: []string{"receiver_id", "name", "type", "city", "contact"},
	},
	{
		Table:   TableFoodListings,
		File:    "food_listings_data.xlsx",
		Columns: []string{"listing_id", "food_name", "quantity", "expiry_date", "provider_id", "provider_type", "location", "food_type", "meal_type"},
	},
	{
		Table:   TableClaims,
		File:    "claims_data.xlsx",
		Columns: []string{"claim_id", "listing_id", "receiver_id", "status", "timestamp", "quantity"},
	},
}

func DatasetFor(table string) (Dataset, bool) {
	for _, ds := range Datasets {
		if ds.Table == table {
			return ds, true
		}
	}
	return Dataset{}, false
}
