// Package catalog: sabit analitik sorgu kataloğu.
// Sorgular tek yerde tanımlıdır; aynı sorgunun panel varyantlarına göre
// kopyalanıp ayrışması bilinçli olarak engellenmiştir. Kullanıcıdan gelen
// her değer bound parametre olarak geçer, sorgu metnine asla eklenmez.
package catalog

import (
	"gidabagis-backend/internal/apperr"

	"gorm.io/gorm"
)

type Query struct {
	Name  string `json:"name"`            // API tanımlayıcısı
	Title string `json:"title"`           // panelde gösterilen başlık
	Param string `json:"param,omitempty"` // boş ya da parametre adı (ör: "city")
	sql   string
}

// Result: sıralı kolon listesi + satırlar. Sorgu ya komple sonuç döner ya da hata;
// yarım sonuç yoktur.
type Result struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

var queries = []Query{
	{
		Name:  "providers_receivers_by_city",
		Title: "Providers & Receivers in each city",
		sql: `
			SELECT c.city AS city,
			       (SELECT COUNT(DISTINCT p.provider_id) FROM providers p WHERE p.city = c.city) AS total_providers,
			       (SELECT COUNT(DISTINCT r.receiver_id) FROM receivers r WHERE r.city = c.city) AS total_receivers
			FROM (SELECT city FROM providers UNION SELECT city FROM receivers) c
			ORDER BY c.city`,
	},
	{
		Name:  "top_provider_types",
		Title: "Top food-contributing provider type",
		sql: `
			SELECT p.type AS provider_type,
			       SUM(f.quantity) AS total_food_provided
			FROM providers p
			JOIN food_listings f ON p.provider_id = f.provider_id
			GROUP BY p.type
			ORDER BY total_food_provided DESC, p.type`,
	},
	{
		Name:  "provider_contacts_by_city",
		Title: "Provider contact info in a specific city",
		Param: "city",
		sql: `
			SELECT name, type, address, contact
			FROM providers
			WHERE LOWER(city) = LOWER(?)
			ORDER BY name`,
	},
	{
		Name:  "receivers_by_total_claimed",
		Title: "Receivers who claimed the most food",
		sql: `
			SELECT r.name AS name,
			       SUM(c.quantity) AS total_claimed
			FROM receivers r
			JOIN claims c ON r.receiver_id = c.receiver_id
			GROUP BY r.receiver_id, r.name
			ORDER BY total_claimed DESC, r.name`,
	},
	{
		Name:  "total_available_quantity",
		Title: "Total quantity of food available",
		sql: `
			SELECT COALESCE(SUM(quantity), 0) AS total_available
			FROM food_listings`,
	},
	{
		Name:  "city_with_most_listings",
		Title: "City with the most food listings",
		sql: `
			SELECT location AS city,
			       COUNT(*) AS total_listings
			FROM food_listings
			GROUP BY location
			ORDER BY total_listings DESC, location
			LIMIT 1`,
	},
	{
		Name:  "food_type_distribution",
		Title: "Most commonly available food types",
		sql: `
			SELECT food_type,
			       COUNT(*) AS listing_count
			FROM food_listings
			GROUP BY food_type
			ORDER BY listing_count DESC, food_type`,
	},
	{
		Name:  "claims_per_food_type",
		Title: "Claims count per food type",
		sql: `
			SELECT f.food_type AS food_type,
			       COUNT(c.claim_id) AS total_claims
			FROM claims c
			JOIN food_listings f ON c.listing_id = f.listing_id
			GROUP BY f.food_type
			ORDER BY total_claims DESC, f.food_type`,
	},
	{
		Name:  "provider_with_most_claims",
		Title: "Provider with the most successful claims",
		sql: `
			SELECT p.name AS name,
			       COUNT(c.claim_id) AS total_claims
			FROM providers p
			JOIN food_listings f ON p.provider_id = f.provider_id
			JOIN claims c ON f.listing_id = c.listing_id
			GROUP BY p.provider_id, p.name
			ORDER BY total_claims DESC, p.name
			LIMIT 1`,
	},
	{
		Name:  "claims_by_status",
		Title: "Claims by status",
		sql: `
			SELECT status,
			       COUNT(*) AS claim_count
			FROM claims
			GROUP BY status
			ORDER BY claim_count DESC, status`,
	},
	{
		Name:  "avg_claimed_per_receiver",
		Title: "Average quantity claimed per receiver",
		sql: `
			SELECT r.name AS name,
			       AVG(c.quantity) AS avg_claimed
			FROM receivers r
			JOIN claims c ON r.receiver_id = c.receiver_id
			GROUP BY r.receiver_id, r.name
			ORDER BY avg_claimed DESC, r.name`,
	},
	{
		Name:  "most_claimed_meal_type",
		Title: "Most claimed meal type",
		sql: `
			SELECT f.meal_type AS meal_type,
			       SUM(c.quantity) AS total_claimed
			FROM food_listings f
			JOIN claims c ON f.listing_id = c.listing_id
			GROUP BY f.meal_type
			ORDER BY total_claimed DESC, f.meal_type
			LIMIT 1`,
	},
	{
		Name:  "total_donated_per_provider",
		Title: "Total food donated per provider",
		sql: `
			SELECT p.name AS name,
			       SUM(f.quantity) AS total_donated
			FROM providers p
			JOIN food_listings f ON p.provider_id = f.provider_id
			GROUP BY p.provider_id, p.name
			ORDER BY total_donated DESC, p.name`,
	},
	{
		Name:  "total_claims_per_provider",
		Title: "Total claims per provider",
		sql: `
			SELECT p.name AS name,
			       COUNT(c.claim_id) AS total_claims
			FROM providers p
			JOIN food_listings f ON p.provider_id = f.provider_id
			JOIN claims c ON f.listing_id = c.listing_id
			GROUP BY p.provider_id, p.name
			ORDER BY total_claims DESC, p.name`,
	},
	{
		Name:  "total_claimed_per_food_type",
		Title: "Total food claimed per food type",
		sql: `
			SELECT f.food_type AS food_type,
			       SUM(c.quantity) AS total_claimed
			FROM claims c
			JOIN food_listings f ON c.listing_id = f.listing_id
			GROUP BY f.food_type
			ORDER BY total_claimed DESC, f.food_type`,
	},
}

// List: katalogdaki sorguları sabit sırayla döndürür.
func List() []Query {
	out := make([]Query, len(queries))
	copy(out, queries)
	return out
}

// Find: ada göre sorgu tanımı
func Find(name string) (Query, bool) {
	for _, q := range queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Run: kataloğdaki sorguyu çalıştırır. Parametreli sorgularda param zorunludur
// ve her zaman bound olarak geçer.
func Run(db *gorm.DB, name, param string) (*Result, error) {
	q, ok := Find(name)
	if !ok {
		return nil, apperr.NewRef(apperr.KindNotFound, "Bilinmeyen sorgu", name)
	}

	if q.Param != "" && param == "" {
		return nil, apperr.NewRef(apperr.KindValidation, "Sorgu parametresi zorunlu", q.Param)
	}

	var args []any
	if q.Param != "" {
		args = append(args, param)
	}

	rows, err := db.Raw(q.sql, args...).Rows()
	if err != nil {
		return nil, apperr.FromDB(err, "Sorgu çalıştırılamadı: "+name)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Sorgu kolonları okunamadı: "+name, err)
	}

	result := &Result{Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "Sorgu satırı okunamadı: "+name, err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// []byte döndüren sürücüler için string'e çevir
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		// Yarım sonuç kabul edilmez; hata durumunda komple başarısızlık döner
		return nil, apperr.Wrap(apperr.KindInternal, "Sorgu tamamlanamadı: "+name, err)
	}

	return result, nil
}
