package domain

import "time"

// Transaction represents a single normalized sales transaction line.
// All downstream logic (filtering, aggregation, export) depends on this
// canonical schema, never on the source workbook's column names.
type Transaction struct {
	OrderID     string `json:"order_id"`
	ProductName string `json:"product_name"`
	// CustomerID is always an integer; missing or unparseable values are
	// coerced to -1 during normalization.
	CustomerID  int64  `json:"customer_id"`
	Region      string `json:"region"`
	Segment     string `json:"segment"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`

	// OrderDate is guaranteed non-zero after normalization; rows without a
	// parseable date are dropped by the loader.
	OrderDate time.Time `json:"order_date"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Quarter   int       `json:"quarter"`
	YearMonth string    `json:"year_month"`

	// Quantity and UnitPrice are nil when the source cell was missing or
	// failed numeric coercion. Derived fields treat nil as zero.
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`

	Sales    float64 `json:"sales"`
	Profit   float64 `json:"profit"`
	Discount float64 `json:"discount"`
	// ProfitMarginPct is Profit/Sales*100, fixed to 0 when Sales is 0.
	ProfitMarginPct float64 `json:"profit_margin_pct"`
}

// QuantityOrZero returns the quantity, treating a missing value as 0.
func (t Transaction) QuantityOrZero() float64 {
	if t.Quantity == nil {
		return 0
	}
	return *t.Quantity
}

// UnitPriceOrZero returns the unit price, treating a missing value as 0.
func (t Transaction) UnitPriceOrZero() float64 {
	if t.UnitPrice == nil {
		return 0
	}
	return *t.UnitPrice
}

// Dataset is an immutable, ordered collection of normalized transactions
// produced by a single workbook load. Filtered views are always fresh slices;
// the base dataset is never mutated after construction.
type Dataset struct {
	SourcePath   string        `json:"source_path"`
	Transactions []Transaction `json:"transactions"`

	// Load provenance: how many data rows the workbook contained and how
	// many were discarded for lacking a parseable order date.
	RowsRead    int `json:"rows_read"`
	RowsDropped int `json:"rows_dropped"`

	LoadedAt time.Time `json:"loaded_at"`
}

// Len returns the number of transactions in the dataset.
func (d *Dataset) Len() int {
	return len(d.Transactions)
}
