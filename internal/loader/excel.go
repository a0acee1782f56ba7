package loader

import (
	"io"
	"strings"

	"gidabagis-backend/internal/apperr"

	"github.com/xuri/excelize/v2"
)

// Record: kaynak dosyadaki bir satır; kolon adı (küçük harf) -> ham değer
type Record map[string]string

// ReadWorkbook: .xlsx dosyasını diskten okur ve satırları Record listesine çevirir.
func ReadWorkbook(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Excel dosyası okunamadı: "+path, err)
	}
	defer f.Close()

	return recordsFromFile(f)
}

// ReadWorkbookFrom: upload edilen .xlsx içeriğini okur (multipart dosya yükleme için).
func ReadWorkbookFrom(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Excel dosyası okunamadı", err)
	}
	defer f.Close()

	return recordsFromFile(f)
}

func recordsFromFile(f *excelize.File) ([]Record, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.New(apperr.KindValidation, "Excel dosyasında sheet bulunamadı")
	}

	// İlk sheet'i al
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Sheet okunamadı", err)
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.KindValidation, "Excel dosyası boş")
	}

	// İlk satır başlık satırıdır; kolon adları büyük/küçük harf duyarsız eşlenir
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// Tamamen boş satırları atla
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			val := ""
			if i < len(row) {
				val = strings.TrimSpace(row[i])
			}
			rec[name] = val
		}
		records = append(records, rec)
	}

	return records, nil
}
