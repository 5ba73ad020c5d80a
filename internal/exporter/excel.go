package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"salesdash/pkg/contracts/domain"
)

// BreakdownSheetName is the sheet holding the exported grouped table.
const BreakdownSheetName = "Breakdown"

// breakdownMetricHeaders follow the group-key column in every export.
var breakdownMetricHeaders = []string{"Sales", "Profit", "Quantity", "Orders", "Profit Margin %"}

// BreakdownToExcel serializes a grouped breakdown to .xlsx bytes. The
// grouping key is the leading column, followed by the aggregated metrics in
// the table's own column order. Row order is preserved as given.
func BreakdownToExcel(dim domain.Dimension, rows []domain.GroupRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BreakdownSheetName); err != nil {
		return nil, fmt.Errorf("failed to name breakdown sheet: %w", err)
	}

	header := make([]interface{}, 0, len(breakdownMetricHeaders)+1)
	header = append(header, dim.Label())
	for _, h := range breakdownMetricHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(BreakdownSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		values := []interface{}{
			row.Key,
			row.Sales,
			row.Profit,
			row.Quantity,
			row.Orders,
			row.ProfitMarginPct,
		}
		if err := f.SetSheetRow(BreakdownSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
