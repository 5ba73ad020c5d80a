package services

import (
	"context"
	"fmt"
	"log/slog"

	"salesdash/internal/dataprocessing"
	"salesdash/internal/exporter"
	"salesdash/pkg/contracts/domain"
)

// WhatIfPriceChangeLimit bounds the what-if slider on either side of zero.
const WhatIfPriceChangeLimit = 30.0

// DashboardService orchestrates a dashboard render: load (through the
// dataset cache), filter, aggregate. Every method works on an immutable
// dataset and computes a fresh view; nothing is carried over between calls.
type DashboardService struct {
	cache    *dataprocessing.DatasetCache
	dataFile string
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service bound to one workbook.
func NewDashboardService(cache *dataprocessing.DatasetCache, dataFile string, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cache:    cache,
		dataFile: dataFile,
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}
}

// FilterOptions returns the selectable filter values of the dataset, used
// by the UI to populate its controls.
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	ds, err := s.cache.Load(ctx, s.dataFile)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return dataprocessing.Options(ds), nil
}

// filtered loads the dataset and applies the resolved filter.
func (s *DashboardService) filtered(ctx context.Context, f domain.Filter) ([]domain.Transaction, error) {
	ds, err := s.cache.Load(ctx, s.dataFile)
	if err != nil {
		return nil, err
	}
	resolved := dataprocessing.ResolveFilter(ds, f)
	rows := dataprocessing.ApplyFilter(ds.Transactions, resolved)

	s.logger.DebugContext(ctx, "filter applied",
		slog.Int("input_rows", len(ds.Transactions)),
		slog.Int("output_rows", len(rows)))

	return rows, nil
}

// KPIs computes the header metrics for the filtered view.
func (s *DashboardService) KPIs(ctx context.Context, f domain.Filter) (domain.KPISummary, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return domain.KPISummary{}, err
	}
	return dataprocessing.Summarize(rows), nil
}

// Breakdown computes the grouped breakdown for a caller-chosen dimension.
func (s *DashboardService) Breakdown(ctx context.Context, dimension string, f domain.Filter) ([]domain.GroupRow, error) {
	dim, err := domain.ParseDimension(dimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, dimension)
	}

	rows, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.GroupBreakdown(rows, dim)
}

// MonthlyTrend returns the monthly sales series for the filtered view.
func (s *DashboardService) MonthlyTrend(ctx context.Context, f domain.Filter) ([]domain.MonthlyPoint, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.MonthlyTrend(rows), nil
}

// SegmentMix returns per-segment sales totals for the filtered view.
func (s *DashboardService) SegmentMix(ctx context.Context, f domain.Filter) ([]domain.SegmentShare, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.SegmentMix(rows), nil
}

// Pivot returns the segment-by-region sales matrix for the filtered view.
func (s *DashboardService) Pivot(ctx context.Context, f domain.Filter) (domain.SalesPivot, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return domain.SalesPivot{}, err
	}
	return dataprocessing.RegionSegmentPivot(rows), nil
}

// Correlation returns the numeric-field correlation matrix for the
// filtered view.
func (s *DashboardService) Correlation(ctx context.Context, f domain.Filter) (domain.CorrelationMatrix, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return domain.CorrelationMatrix{}, err
	}
	return dataprocessing.CorrelationMatrix(rows), nil
}

// WhatIf runs the price-change scenario over the filtered view.
func (s *DashboardService) WhatIf(ctx context.Context, f domain.Filter, priceChangePct float64) (domain.WhatIfResult, error) {
	if priceChangePct < -WhatIfPriceChangeLimit || priceChangePct > WhatIfPriceChangeLimit {
		return domain.WhatIfResult{}, fmt.Errorf("%w: %.1f%% (allowed: ±%.0f%%)",
			ErrInvalidPriceChange, priceChangePct, WhatIfPriceChangeLimit)
	}

	rows, err := s.filtered(ctx, f)
	if err != nil {
		return domain.WhatIfResult{}, err
	}
	return dataprocessing.WhatIf(rows, priceChangePct), nil
}

// ExportBreakdown serializes a grouped breakdown to spreadsheet bytes and
// suggests a download filename.
func (s *DashboardService) ExportBreakdown(ctx context.Context, dimension string, f domain.Filter) ([]byte, string, error) {
	dim, err := domain.ParseDimension(dimension)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidDimension, dimension)
	}

	rows, err := s.filtered(ctx, f)
	if err != nil {
		return nil, "", err
	}

	grouped, err := dataprocessing.GroupBreakdown(rows, dim)
	if err != nil {
		return nil, "", err
	}

	data, err := exporter.BreakdownToExcel(dim, grouped)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("analysis_%s.xlsx", dim)
	s.logger.InfoContext(ctx, "breakdown exported",
		slog.String("dimension", string(dim)),
		slog.Int("groups", len(grouped)),
		slog.Int("bytes", len(data)))

	return data, filename, nil
}

// Rows returns a page of the filtered transactions plus the total count,
// for the raw-data view.
func (s *DashboardService) Rows(ctx context.Context, f domain.Filter, limit, offset int) ([]domain.Transaction, int, error) {
	rows, err := s.filtered(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	total := len(rows)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = 100
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return rows[offset:end], total, nil
}
