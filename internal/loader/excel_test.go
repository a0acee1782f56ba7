package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"Provider_ID", " Name ", "Type", "Address", "City", "Contact"},
		{"1", "Kumar Restaurant", "Restaurant", "12 MG Road", "Chennai", "+91-555-0101"},
		{"2", "Fresh Mart", "Grocery Store", "4 Park St", "Mumbai", ""},
	})

	records, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Başlıklar küçük harfe çevrilir ve kırpılır
	assert.Equal(t, "1", records[0]["provider_id"])
	assert.Equal(t, "Kumar Restaurant", records[0]["name"])
	assert.Equal(t, "Chennai", records[0]["city"])

	// Eksik hücre boş string olarak gelir
	assert.Equal(t, "", records[1]["contact"])
}

func TestReadWorkbookSkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"provider_id", "name"},
		{"1", "Kumar Restaurant"},
		{"", ""},
		{"2", "Fresh Mart"},
	})

	records, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[1]["provider_id"])
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "yok.xlsx"))
	require.Error(t, err)
}
