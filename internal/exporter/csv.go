package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/pkg/contracts/domain"
)

// WriteBreakdownCSV writes a grouped breakdown to a CSV file, creating the
// parent directory if needed. Column order matches the Excel export.
func WriteBreakdownCSV(path string, dim domain.Dimension, rows []domain.GroupRow) error {
	slog.Info("writing breakdown CSV",
		slog.String("path", path),
		slog.String("dimension", string(dim)),
		slog.Int("row_count", len(rows)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{dim.Label()}, breakdownMetricHeaders...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Key,
			formatFloat(row.Sales),
			formatFloat(row.Profit),
			formatFloat(row.Quantity),
			formatInt(int64(row.Orders)),
			formatFloat(row.ProfitMarginPct),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
