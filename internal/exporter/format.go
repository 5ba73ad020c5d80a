package exporter

import "fmt"

// formatFloat formats a float64 for CSV output with two decimal places so
// values like 13.4 appear as 13.40 consistently.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 for CSV output.
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
