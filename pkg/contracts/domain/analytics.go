package domain

// MonthlyPoint is one point of the monthly sales trend series, in
// chronological order by the Year-Month label.
type MonthlyPoint struct {
	YearMonth string  `json:"year_month"`
	Sales     float64 `json:"sales"`
}

// SegmentShare is one slice of the segment sales mix.
type SegmentShare struct {
	Segment string  `json:"segment"`
	Sales   float64 `json:"sales"`
}

// SalesPivot is a segment-by-region matrix of summed sales. Sales[i][j] is
// the total for Segments[i] in Regions[j].
type SalesPivot struct {
	Segments []string    `json:"segments"`
	Regions  []string    `json:"regions"`
	Sales    [][]float64 `json:"sales"`
}

// CorrelationMatrix holds pairwise Pearson correlations between numeric
// fields. Matrix[i][j] correlates Fields[i] with Fields[j]; degenerate pairs
// (fewer than two complete observations, or zero variance) are reported as 0.
type CorrelationMatrix struct {
	Fields []string    `json:"fields"`
	Matrix [][]float64 `json:"matrix"`
}

// WhatIfResult is the outcome of the price-change scenario model.
type WhatIfResult struct {
	PriceChangePct  float64 `json:"price_change_pct"`
	Elasticity      float64 `json:"elasticity"`
	Factor          float64 `json:"factor"`
	CurrentSales    float64 `json:"current_sales"`
	CurrentProfit   float64 `json:"current_profit"`
	EstimatedSales  float64 `json:"estimated_sales"`
	EstimatedProfit float64 `json:"estimated_profit"`
}
