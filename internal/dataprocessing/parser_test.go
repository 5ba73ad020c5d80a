package dataprocessing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// defaultHeader mirrors the column names of the retail source workbook.
var defaultHeader = []interface{}{
	"InvoiceNo", "StockCode", "Description", "Quantity",
	"InvoiceDate", "UnitPrice", "CustomerID", "Country", "Type",
}

// writeWorkbook builds a single-sheet .xlsx fixture in a temp directory.
func writeWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook_NormalizesRows(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{"536365", "85123A", "WHITE HANGING HEART", 2.0, "2011-03-15 10:30:00", 10.0, "17850", "United Kingdom", "Retail"},
		{"536366", "71053", "WHITE METAL LANTERN", 1.0, "2011-04-02 08:00:00", 50.0, "13047", "France", "B2B"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)

	require.Equal(t, 2, ds.RowsRead)
	require.Equal(t, 0, ds.RowsDropped)
	require.Len(t, ds.Transactions, 2)
	assert.Equal(t, path, ds.SourcePath)
	assert.False(t, ds.LoadedAt.IsZero())

	first := ds.Transactions[0]
	assert.Equal(t, "536365", first.OrderID)
	assert.Equal(t, "WHITE HANGING HEART", first.ProductName)
	assert.Equal(t, int64(17850), first.CustomerID)
	assert.Equal(t, "United Kingdom", first.Region)
	assert.Equal(t, "Retail", first.Segment)
	assert.Equal(t, "Retail", first.Category)
	assert.Equal(t, "85123A", first.SubCategory)
	assert.Equal(t, 2011, first.Year)
	assert.Equal(t, 3, first.Month)
	assert.Equal(t, 1, first.Quarter)
	assert.Equal(t, "2011-03", first.YearMonth)
	require.NotNil(t, first.Quantity)
	require.NotNil(t, first.UnitPrice)
	assert.InDelta(t, 2, *first.Quantity, 1e-9)
	assert.InDelta(t, 10, *first.UnitPrice, 1e-9)
	assert.InDelta(t, 20, first.Sales, 1e-9)
	assert.InDelta(t, 4.4, first.Profit, 1e-9)
	assert.InDelta(t, 22, first.ProfitMarginPct, 1e-9)

	second := ds.Transactions[1]
	assert.Equal(t, 2, second.Quarter)
	assert.InDelta(t, 50, second.Sales, 1e-9)
	assert.InDelta(t, 7, second.Profit, 1e-9)
	assert.InDelta(t, 14, second.ProfitMarginPct, 1e-9)
}

func TestParseWorkbook_DropsRowsWithoutDate(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{"536365", "85123A", "GOOD ROW", 1.0, "2011-03-15", 5.0, "17850", "United Kingdom", "Retail"},
		{"536366", "85123B", "NO DATE", 1.0, "", 5.0, "17850", "United Kingdom", "Retail"},
		{"536367", "85123C", "BAD DATE", 1.0, "not-a-date", 5.0, "17850", "United Kingdom", "Retail"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.RowsRead)
	assert.Equal(t, 2, ds.RowsDropped)
	require.Len(t, ds.Transactions, 1)
	assert.Equal(t, "536365", ds.Transactions[0].OrderID)
}

func TestParseWorkbook_NullableNumericsTreatedAsZero(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{"536365", "85123A", "NO QUANTITY", nil, "2011-03-15", 5.0, "17850", "United Kingdom", "Retail"},
		{"536366", "85123B", "BAD PRICE", 3.0, "2011-03-16", "oops", "17850", "United Kingdom", "Retail"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, ds.Transactions, 2)

	noQty := ds.Transactions[0]
	assert.Nil(t, noQty.Quantity)
	require.NotNil(t, noQty.UnitPrice)
	assert.Zero(t, noQty.Sales)
	assert.Zero(t, noQty.Profit)
	assert.Zero(t, noQty.ProfitMarginPct)

	badPrice := ds.Transactions[1]
	require.NotNil(t, badPrice.Quantity)
	assert.Nil(t, badPrice.UnitPrice)
	assert.Zero(t, badPrice.Sales)
}

func TestParseWorkbook_HeaderMatchingIsCaseInsensitive(t *testing.T) {
	header := []interface{}{
		" invoiceno ", "STOCKCODE", "Description", "QUANTITY",
		"InvoiceDate", "unitprice", "customerid", "COUNTRY", "type",
	}
	path := writeWorkbook(t, header, [][]interface{}{
		{"536365", "85123A", "HEART", 2.0, "2011-03-15", 10.0, "17850", "United Kingdom", "Retail"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, ds.Transactions, 1)
	assert.Equal(t, "536365", ds.Transactions[0].OrderID)
	assert.InDelta(t, 20, ds.Transactions[0].Sales, 1e-9)
}

func TestParseWorkbook_MissingColumnsStayNull(t *testing.T) {
	header := []interface{}{"InvoiceNo", "Description", "InvoiceDate", "Type"}
	path := writeWorkbook(t, header, [][]interface{}{
		{"536365", "HEART", "2011-03-15", "Corporate"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, ds.Transactions, 1)

	tx := ds.Transactions[0]
	assert.Nil(t, tx.Quantity)
	assert.Nil(t, tx.UnitPrice)
	assert.Equal(t, int64(-1), tx.CustomerID)
	assert.Zero(t, tx.Sales)
}

func TestParseWorkbook_SkipsBlankRows(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{"536365", "85123A", "HEART", 2.0, "2011-03-15", 10.0, "17850", "United Kingdom", "Retail"},
		{"", "", "", nil, "", nil, "", "", ""},
		{"536366", "71053", "LANTERN", 1.0, "2011-03-16", 50.0, "13047", "France", "B2B"},
	})

	ds, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowsRead)
	assert.Equal(t, 0, ds.RowsDropped)
	assert.Len(t, ds.Transactions, 2)
}

func TestParseWorkbook_FileNotFound(t *testing.T) {
	_, err := ParseWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open workbook")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want time.Time
		ok   bool
	}{
		{"iso datetime", "2011-03-15 10:30:00", time.Date(2011, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"iso date", "2011-03-15", time.Date(2011, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"us slash", "3/15/2011 10:30", time.Date(2011, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"excel serial", "40617", time.Date(2011, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
		{"negative serial", "-5", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.cell)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestParseCustomerID(t *testing.T) {
	tests := []struct {
		cell string
		want int64
	}{
		{"17850", 17850},
		{"17850.0", 17850},
		{"1,785", 1785},
		{"", -1},
		{"abc", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCustomerID(tt.cell), "cell %q", tt.cell)
	}
}

func TestParseNullableFloat(t *testing.T) {
	v := parseNullableFloat("1,234.5")
	require.NotNil(t, v)
	assert.InDelta(t, 1234.5, *v, 1e-9)

	assert.Nil(t, parseNullableFloat(""))
	assert.Nil(t, parseNullableFloat("n/a"))
}

func TestMarginRate(t *testing.T) {
	assert.InDelta(t, 0.22, MarginRate("Retail"), 1e-9)
	assert.InDelta(t, 0.14, MarginRate("B2B"), 1e-9)
	assert.InDelta(t, 0.18, MarginRate("Wholesale"), 1e-9)
	assert.InDelta(t, 0.18, MarginRate(""), 1e-9)
}
