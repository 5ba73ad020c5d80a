package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"salesdash/pkg/contracts/domain"
)

// sourceFields maps trimmed, lower-cased workbook headers to canonical field
// keys. Headers not listed here are ignored; canonical fields whose source
// column is absent stay null rather than failing the load.
var sourceFields = map[string]string{
	"invoiceno":   "order_id",
	"description": "product_name",
	"customerid":  "customer_id",
	"country":     "region",
	"type":        "segment",
	"stockcode":   "sub_category",
	"invoicedate": "order_date",
	"quantity":    "quantity",
	"unitprice":   "unit_price",
}

// dateLayouts are tried in order when a date cell is not an Excel serial.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01/02/2006 15:04",
	"02-01-2006 15:04",
}

// ParseWorkbook reads the first sheet of an .xlsx workbook and normalizes it
// into the canonical transaction schema. The first row is treated as the
// header row; header names are whitespace-trimmed and matched
// case-insensitively. Rows without a parseable order date are dropped and
// counted in the dataset's provenance fields.
func ParseWorkbook(path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row", path)
	}

	columns := mapColumns(rows[0])
	slog.Debug("mapped workbook columns",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("mapped_columns", len(columns)))

	dataset := &domain.Dataset{
		SourcePath: path,
		LoadedAt:   time.Now(),
	}

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		dataset.RowsRead++

		cell := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		orderDate, ok := parseDate(cell("order_date"))
		if !ok {
			dataset.RowsDropped++
			continue
		}

		quantity := parseNullableFloat(cell("quantity"))
		unitPrice := parseNullableFloat(cell("unit_price"))
		segment := cell("segment")

		sales := valueOrZero(quantity) * valueOrZero(unitPrice)
		profit := sales * MarginRate(segment)

		marginPct := 0.0
		if sales != 0 {
			marginPct = profit / sales * 100
		}

		dataset.Transactions = append(dataset.Transactions, domain.Transaction{
			OrderID:         cell("order_id"),
			ProductName:     cell("product_name"),
			CustomerID:      parseCustomerID(cell("customer_id")),
			Region:          cell("region"),
			Segment:         segment,
			Category:        segment,
			SubCategory:     cell("sub_category"),
			OrderDate:       orderDate,
			Year:            orderDate.Year(),
			Month:           int(orderDate.Month()),
			Quarter:         (int(orderDate.Month())-1)/3 + 1,
			YearMonth:       orderDate.Format("2006-01"),
			Quantity:        quantity,
			UnitPrice:       unitPrice,
			Sales:           sales,
			Profit:          profit,
			Discount:        0,
			ProfitMarginPct: marginPct,
		})
	}

	slog.Info("workbook normalized",
		slog.String("path", path),
		slog.Int("rows_read", dataset.RowsRead),
		slog.Int("rows_dropped", dataset.RowsDropped),
		slog.Int("transactions", len(dataset.Transactions)))

	return dataset, nil
}

// mapColumns resolves the header row to canonical field positions.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(sourceFields))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, ok := sourceFields[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	return columns
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts the common textual layouts plus raw Excel serial
// numbers, which excelize surfaces for unformatted date cells.
func parseDate(cell string) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNullableFloat coerces a numeric cell, yielding nil (never an error)
// for missing or malformed values.
func parseNullableFloat(cell string) *float64 {
	if cell == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseCustomerID finalizes the customer id as an integer with a -1
// fallback for missing or malformed values. Source files routinely store
// ids as floats ("17850.0"), so float parsing is accepted too.
func parseCustomerID(cell string) int64 {
	if cell == "" {
		return -1
	}
	cleaned := strings.ReplaceAll(cell, ",", "")
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int64(v)
	}
	return -1
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
