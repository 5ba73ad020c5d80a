package http

import (
	"context"

	"salesdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the service contract the dashboard
// handler depends on, allowing tests to substitute a stub implementation.
type DashboardServiceInterface interface {
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	KPIs(ctx context.Context, f domain.Filter) (domain.KPISummary, error)
	Breakdown(ctx context.Context, dimension string, f domain.Filter) ([]domain.GroupRow, error)
	MonthlyTrend(ctx context.Context, f domain.Filter) ([]domain.MonthlyPoint, error)
	SegmentMix(ctx context.Context, f domain.Filter) ([]domain.SegmentShare, error)
	Pivot(ctx context.Context, f domain.Filter) (domain.SalesPivot, error)
	Correlation(ctx context.Context, f domain.Filter) (domain.CorrelationMatrix, error)
	WhatIf(ctx context.Context, f domain.Filter, priceChangePct float64) (domain.WhatIfResult, error)
	ExportBreakdown(ctx context.Context, dimension string, f domain.Filter) ([]byte, string, error)
	Rows(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Transaction, int, error)
}
