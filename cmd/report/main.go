// Command report is a one-shot breakdown report generator: it loads a sales
// workbook, filters it, groups it by a chosen dimension, and writes the
// result as an .xlsx or .csv file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/internal/dataprocessing"
	"salesdash/internal/exporter"
	"salesdash/pkg/contracts/domain"
)

func main() {
	var (
		file      = flag.String("file", "data/sales.xlsx", "path of the sales workbook")
		dimension = flag.String("dimension", "product", "grouping dimension (product, sub_category, region, segment, customer)")
		year      = flag.Int("year", 0, "restrict to a calendar year (0 = all years)")
		format    = flag.String("format", "xlsx", "output format: xlsx or csv")
		out       = flag.String("out", "", "output path (default: exports/analysis_<dimension>.<format>)")
	)
	flag.Parse()

	if err := run(*file, *dimension, *year, *format, *out); err != nil {
		slog.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(file, dimension string, year int, format, out string) error {
	ctx := context.Background()

	dim, err := domain.ParseDimension(dimension)
	if err != nil {
		return err
	}

	if out == "" {
		out = filepath.Join("exports", fmt.Sprintf("analysis_%s.%s", dim, format))
	}

	cache := dataprocessing.NewDatasetCache(slog.Default())
	ds, err := cache.Load(ctx, file)
	if err != nil {
		return err
	}

	var filter domain.Filter
	if year != 0 {
		filter.Year = &year
	}
	filter = dataprocessing.ResolveFilter(ds, filter)
	rows := dataprocessing.ApplyFilter(ds.Transactions, filter)

	grouped, err := dataprocessing.GroupBreakdown(rows, dim)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		if err := exporter.WriteBreakdownCSV(out, dim, grouped); err != nil {
			return err
		}
	case "xlsx":
		data, err := exporter.BreakdownToExcel(dim, grouped)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}

	slog.Info("report written",
		slog.String("path", out),
		slog.String("dimension", string(dim)),
		slog.Int("groups", len(grouped)),
		slog.Int("rows_dropped", ds.RowsDropped))

	return nil
}
