package loader

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gidabagis-backend/internal/apperr"
	"gidabagis-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RowIssue: yükleme sırasında reddedilen tek bir satırın kaydı
type RowIssue struct {
	Ref    string `json:"ref"`    // ör: "claim_id=17" ya da "satır 42"
	Reason string `json:"reason"` // neden reddedildi
}

// TableResult: bir tablonun yükleme sonucu.
// Aynı kaynağın ikinci kez yüklenmesi Inserted=0, AlreadyPresent=N üretir.
type TableResult struct {
	Table          string     `json:"table"`
	Inserted       int        `json:"inserted"`
	AlreadyPresent int        `json:"already_present"`
	Rejected       []RowIssue `json:"rejected,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// Excel hücreleri biçime göre farklı görünebiliyor; bilinen tarih biçimlerini sırayla dene
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01-02-06", // Excel'in varsayılan kısa tarih gösterimi (mm-dd-yy)
	"1/2/2006",
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006 15:04:05",
	"01-02-06 15:04",
	"1/2/2006 15:04",
	"2006-01-02",
}

func parseDate(val string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("tarih çözümlenemedi: %q", val)
}

func parseTimestamp(val string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("zaman damgası çözümlenemedi: %q", val)
}

func parseID(val string) (uint, error) {
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("kimlik değeri sayı değil: %q", val)
	}
	return uint(n), nil
}

func parseQuantity(val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("miktar sayı değil: %q", val)
	}
	return n, nil
}

// ImportTable: kaynak satırlarını temizleyip tip dönüşümü yaparak tabloya yükler.
// Ekleme insert-if-absent'tır: var olan birincil anahtar üzerine yazılmaz, hata da üretmez.
func ImportTable(db *gorm.DB, table string, records []Record) (*TableResult, error) {
	ds, ok := DatasetFor(table)
	if !ok {
		return nil, apperr.NewRef(apperr.KindNotFound, "Bilinmeyen tablo", table)
	}

	res := &TableResult{Table: table}

	if len(records) == 0 {
		res.Warnings = append(res.Warnings, "Kaynakta satır yok")
		return res, nil
	}

	// Şema projeksiyonu: beklenen kolonlardan biri yoksa tablonun tamamı atlanır,
	// yarım insert yapılmaz
	var missing []string
	for _, col := range ds.Columns {
		if _, ok := records[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Eksik kolonlar: %s — tablo atlandı", strings.Join(missing, ", ")))
		return res, nil
	}

	// Temizlik: eksik değerli satırları ve birebir tekrar eden satırları düş
	seen := make(map[string]bool, len(records))
	cleaned := make([]Record, 0, len(records))
	for i, rec := range records {
		ref := rowRef(ds, rec, i)

		hasEmpty := false
		for _, col := range ds.Columns {
			if rec[col] == "" {
				hasEmpty = true
				break
			}
		}
		if hasEmpty {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: "Eksik değer içeriyor"})
			continue
		}

		parts := make([]string, len(ds.Columns))
		for j, col := range ds.Columns {
			parts[j] = rec[col]
		}
		key := strings.Join(parts, "\x1f")
		if seen[key] {
			continue // birebir kopya, sessizce düşülür
		}
		seen[key] = true
		cleaned = append(cleaned, rec)
	}

	switch table {
	case TableProviders:
		return res, importProviders(db, ds, cleaned, res)
	case TableReceivers:
		return res, importReceivers(db, ds, cleaned, res)
	case TableFoodListings:
		return res, importListings(db, ds, cleaned, res)
	case TableClaims:
		return res, importClaims(db, ds, cleaned, res)
	}
	return nil, apperr.NewRef(apperr.KindNotFound, "Bilinmeyen tablo", table)
}

func importProviders(db *gorm.DB, ds Dataset, records []Record, res *TableResult) error {
	rows := make([]models.Provider, 0, len(records))
	for i, rec := range records {
		ref := rowRef(ds, rec, i)
		id, err := parseID(rec["provider_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		rows = append(rows, models.Provider{
			ProviderID: id,
			Name:       rec["name"],
			Type:       rec["type"],
			Address:    rec["address"],
			City:       rec["city"],
			Contact:    rec["contact"],
		})
	}
	return insertRows(db, res, &rows, len(rows))
}

func importReceivers(db *gorm.DB, ds Dataset, records []Record, res *TableResult) error {
	rows := make([]models.Receiver, 0, len(records))
	for i, rec := range records {
		ref := rowRef(ds, rec, i)
		id, err := parseID(rec["receiver_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		rows = append(rows, models.Receiver{
			ReceiverID: id,
			Name:       rec["name"],
			Type:       rec["type"],
			City:       rec["city"],
			Contact:    rec["contact"],
		})
	}
	return insertRows(db, res, &rows, len(rows))
}

func importListings(db *gorm.DB, ds Dataset, records []Record, res *TableResult) error {
	providerIDs, err := idSet(db, "providers", "provider_id")
	if err != nil {
		return err
	}

	rows := make([]models.FoodListing, 0, len(records))
	for i, rec := range records {
		ref := rowRef(ds, rec, i)

		id, err := parseID(rec["listing_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		pid, err := parseID(rec["provider_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		// Referans bütünlüğü ön kontrolü: dangling foreign key gerçek bir hatadır
		// ve eksik üst kaydın kimliğiyle raporlanır
		if !providerIDs[pid] {
			res.Rejected = append(res.Rejected, RowIssue{
				Ref:    ref,
				Reason: fmt.Sprintf("provider_id=%d providers tablosunda yok", pid),
			})
			continue
		}
		qty, err := parseQuantity(rec["quantity"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		if qty < 0 {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: "Miktar negatif olamaz"})
			continue
		}
		expiry, err := parseDate(rec["expiry_date"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}

		rows = append(rows, models.FoodListing{
			ListingID:    id,
			FoodName:     rec["food_name"],
			Quantity:     qty,
			ExpiryDate:   expiry,
			ProviderID:   pid,
			ProviderType: rec["provider_type"],
			Location:     rec["location"],
			FoodType:     rec["food_type"],
			MealType:     rec["meal_type"],
		})
	}
	return insertRows(db, res, &rows, len(rows))
}

func importClaims(db *gorm.DB, ds Dataset, records []Record, res *TableResult) error {
	listingIDs, err := idSet(db, "food_listings", "listing_id")
	if err != nil {
		return err
	}
	receiverIDs, err := idSet(db, "receivers", "receiver_id")
	if err != nil {
		return err
	}

	rows := make([]models.Claim, 0, len(records))
	for i, rec := range records {
		ref := rowRef(ds, rec, i)

		id, err := parseID(rec["claim_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		lid, err := parseID(rec["listing_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		if !listingIDs[lid] {
			res.Rejected = append(res.Rejected, RowIssue{
				Ref:    ref,
				Reason: fmt.Sprintf("listing_id=%d food_listings tablosunda yok", lid),
			})
			continue
		}
		rid, err := parseID(rec["receiver_id"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		if !receiverIDs[rid] {
			res.Rejected = append(res.Rejected, RowIssue{
				Ref:    ref,
				Reason: fmt.Sprintf("receiver_id=%d receivers tablosunda yok", rid),
			})
			continue
		}
		qty, err := parseQuantity(rec["quantity"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}
		// Talep miktarı kesin pozitif; sıfır ya da negatif satır store'a hiç ulaşmaz
		if qty <= 0 {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: "Talep miktarı pozitif olmalı"})
			continue
		}
		ts, err := parseTimestamp(rec["timestamp"])
		if err != nil {
			res.Rejected = append(res.Rejected, RowIssue{Ref: ref, Reason: err.Error()})
			continue
		}

		rows = append(rows, models.Claim{
			ClaimID:    id,
			ListingID:  lid,
			ReceiverID: rid,
			Status:     models.ClaimStatus(rec["status"]),
			Timestamp:  ts,
			Quantity:   qty,
		})
	}
	return insertRows(db, res, &rows, len(rows))
}

// insertRows: tek toplu insert, ON CONFLICT DO NOTHING.
// Var olan birincil anahtarlar AlreadyPresent olarak sayılır.
func insertRows(db *gorm.DB, res *TableResult, rows any, count int) error {
	if count == 0 {
		return nil
	}
	tx := db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	if tx.Error != nil {
		return apperr.FromDB(tx.Error, "Toplu ekleme başarısız: "+res.Table)
	}
	res.Inserted = int(tx.RowsAffected)
	res.AlreadyPresent = count - res.Inserted
	return nil
}

func idSet(db *gorm.DB, table, column string) (map[uint]bool, error) {
	var ids []uint
	if err := db.Table(table).Pluck(column, &ids).Error; err != nil {
		return nil, apperr.FromDB(err, "Üst tablo kimlikleri okunamadı: "+table)
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func rowRef(ds Dataset, rec Record, index int) string {
	// İlk kolon her datasette birincil anahtardır
	pk := ds.Columns[0]
	if v := rec[pk]; v != "" {
		return fmt.Sprintf("%s=%s", pk, v)
	}
	return fmt.Sprintf("satır %d", index+1)
}

// LoadAll: dört kaynağı referans bütünlüğü sırasıyla yükler.
// locations: tablo adı -> .xlsx yolu. Bir tablonun hatası diğerlerini durdurmaz;
// sorun ilgili tablonun sonucunda raporlanır ve sıradaki tabloya geçilir.
func LoadAll(db *gorm.DB, locations map[string]string) []TableResult {
	results := make([]TableResult, 0, len(Datasets))

	for _, ds := range Datasets {
		path, ok := locations[ds.Table]
		if !ok || path == "" {
			results = append(results, TableResult{
				Table:    ds.Table,
				Warnings: []string{"Kaynak dosya belirtilmedi, tablo atlandı"},
			})
			continue
		}

		records, err := ReadWorkbook(path)
		if err != nil {
			log.Printf("%s yüklenemedi: %v", ds.Table, err)
			results = append(results, TableResult{
				Table:    ds.Table,
				Warnings: []string{err.Error()},
			})
			continue
		}

		res, err := ImportTable(db, ds.Table, records)
		if err != nil {
			log.Printf("%s yüklenemedi: %v", ds.Table, err)
			results = append(results, TableResult{
				Table:    ds.Table,
				Warnings: []string{err.Error()},
			})
			continue
		}
		results = append(results, *res)
	}

	return results
}
