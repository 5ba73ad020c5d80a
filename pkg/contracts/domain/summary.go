package domain

import (
	"fmt"
	"strings"
)

// KPISummary holds the scalar metrics displayed in the dashboard header.
// All values are 0 for an empty table; no ratio ever yields NaN or infinity.
type KPISummary struct {
	TotalSales      float64 `json:"total_sales"`
	TotalProfit     float64 `json:"total_profit"`
	TotalOrders     int     `json:"total_orders"`
	TotalCustomers  int     `json:"total_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
}

// Dimension is one of the closed set of grouping keys supported by the
// grouped breakdown. Arbitrary strings are rejected at parse time.
type Dimension string

const (
	DimensionProduct     Dimension = "product"
	DimensionSubCategory Dimension = "sub_category"
	DimensionRegion      Dimension = "region"
	DimensionSegment     Dimension = "segment"
	DimensionCustomer    Dimension = "customer"
)

// Dimensions lists every supported grouping dimension.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionProduct,
		DimensionSubCategory,
		DimensionRegion,
		DimensionSegment,
		DimensionCustomer,
	}
}

// ParseDimension validates a caller-supplied grouping key.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DimensionProduct, DimensionSubCategory, DimensionRegion,
		DimensionSegment, DimensionCustomer:
		return d, nil
	}
	return "", fmt.Errorf("unsupported grouping dimension: %q", s)
}

// Label returns the human-readable column header for the dimension, used as
// the leading column in exports.
func (d Dimension) Label() string {
	switch d {
	case DimensionProduct:
		return "Product Name"
	case DimensionSubCategory:
		return "Sub-Category"
	case DimensionRegion:
		return "Region"
	case DimensionSegment:
		return "Segment"
	case DimensionCustomer:
		return "Customer ID"
	}
	return string(d)
}

// GroupRow is one row of a grouped breakdown: aggregated metrics for a single
// distinct value of the grouping dimension.
type GroupRow struct {
	Key             string  `json:"key"`
	Sales           float64 `json:"sales"`
	Profit          float64 `json:"profit"`
	Quantity        float64 `json:"quantity"`
	Orders          int     `json:"orders"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
}
