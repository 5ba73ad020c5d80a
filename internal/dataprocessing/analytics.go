package dataprocessing

import (
	"math"
	"sort"

	"salesdash/pkg/contracts/domain"
)

// PriceElasticity is the demand elasticity assumed by the what-if scenario:
// a 1% price increase loses 1.5% of volume.
const PriceElasticity = -1.5

// MonthlyTrend sums sales per Year-Month label, returned in chronological
// order. The "2006-01" label format sorts lexicographically by date.
func MonthlyTrend(transactions []domain.Transaction) []domain.MonthlyPoint {
	totals := make(map[string]float64)
	for _, t := range transactions {
		totals[t.YearMonth] += t.Sales
	}

	points := make([]domain.MonthlyPoint, 0, len(totals))
	for ym, sales := range totals {
		points = append(points, domain.MonthlyPoint{YearMonth: ym, Sales: sales})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].YearMonth < points[j].YearMonth
	})
	return points
}

// SegmentMix sums sales per segment, largest share first.
func SegmentMix(transactions []domain.Transaction) []domain.SegmentShare {
	totals := make(map[string]float64)
	for _, t := range transactions {
		totals[t.Segment] += t.Sales
	}

	shares := make([]domain.SegmentShare, 0, len(totals))
	for segment, sales := range totals {
		shares = append(shares, domain.SegmentShare{Segment: segment, Sales: sales})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Sales != shares[j].Sales {
			return shares[i].Sales > shares[j].Sales
		}
		return shares[i].Segment < shares[j].Segment
	})
	return shares
}

// RegionSegmentPivot builds the segment-by-region sales heatmap matrix with
// sorted axis labels. Cells with no matching rows are 0.
func RegionSegmentPivot(transactions []domain.Transaction) domain.SalesPivot {
	segmentSet := make(map[string]struct{})
	regionSet := make(map[string]struct{})
	cells := make(map[[2]string]float64)

	for _, t := range transactions {
		segmentSet[t.Segment] = struct{}{}
		regionSet[t.Region] = struct{}{}
		cells[[2]string{t.Segment, t.Region}] += t.Sales
	}

	pivot := domain.SalesPivot{
		Segments: sortedKeys(segmentSet),
		Regions:  sortedKeys(regionSet),
	}
	pivot.Sales = make([][]float64, len(pivot.Segments))
	for i, segment := range pivot.Segments {
		pivot.Sales[i] = make([]float64, len(pivot.Regions))
		for j, region := range pivot.Regions {
			pivot.Sales[i][j] = cells[[2]string{segment, region}]
		}
	}
	return pivot
}

// correlationFields are the numeric series the insight page correlates.
var correlationFields = []string{"sales", "profit", "quantity", "unit_price", "profit_margin_pct"}

// CorrelationMatrix computes pairwise Pearson correlations between the
// numeric transaction fields. Observations where either side is null are
// excluded pairwise; degenerate pairs yield 0 instead of NaN.
func CorrelationMatrix(transactions []domain.Transaction) domain.CorrelationMatrix {
	n := len(correlationFields)
	series := make([][]float64, n)
	valid := make([][]bool, n)
	for i := range series {
		series[i] = make([]float64, len(transactions))
		valid[i] = make([]bool, len(transactions))
	}

	for k, t := range transactions {
		series[0][k], valid[0][k] = t.Sales, true
		series[1][k], valid[1][k] = t.Profit, true
		if t.Quantity != nil {
			series[2][k], valid[2][k] = *t.Quantity, true
		}
		if t.UnitPrice != nil {
			series[3][k], valid[3][k] = *t.UnitPrice, true
		}
		series[4][k], valid[4][k] = t.ProfitMarginPct, true
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j := range matrix[i] {
			matrix[i][j] = pearson(series[i], valid[i], series[j], valid[j])
		}
	}

	return domain.CorrelationMatrix{
		Fields: append([]string(nil), correlationFields...),
		Matrix: matrix,
	}
}

// WhatIf applies the price-change scenario to the current filtered totals.
// The combined price/volume factor is clamped at zero so a large price hike
// can never produce negative revenue.
func WhatIf(transactions []domain.Transaction, priceChangePct float64) domain.WhatIfResult {
	var currentSales, currentProfit float64
	for _, t := range transactions {
		currentSales += t.Sales
		currentProfit += t.Profit
	}

	factor := (1 + priceChangePct/100) * (1 + PriceElasticity*priceChangePct/100)
	factor = math.Max(factor, 0)

	return domain.WhatIfResult{
		PriceChangePct:  priceChangePct,
		Elasticity:      PriceElasticity,
		Factor:          factor,
		CurrentSales:    currentSales,
		CurrentProfit:   currentProfit,
		EstimatedSales:  currentSales * factor,
		EstimatedProfit: currentProfit * factor,
	}
}

// pearson computes the correlation over observations where both series are
// valid. Fewer than two complete pairs, or zero variance on either side,
// yields 0.
func pearson(xs []float64, xValid []bool, ys []float64, yValid []bool) float64 {
	var n float64
	var sumX, sumY float64
	for k := range xs {
		if xValid[k] && yValid[k] {
			n++
			sumX += xs[k]
			sumY += ys[k]
		}
	}
	if n < 2 {
		return 0
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for k := range xs {
		if xValid[k] && yValid[k] {
			dx, dy := xs[k]-meanX, ys[k]-meanY
			cov += dx * dy
			varX += dx * dx
			varY += dy * dy
		}
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
