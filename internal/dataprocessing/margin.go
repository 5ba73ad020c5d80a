package dataprocessing

// Profit is derived as Sales multiplied by a fixed margin rate selected by
// the transaction's segment. The table is a closed enumeration: unrecognized
// segments (including the empty string) fall back to DefaultMarginRate.
const (
	RetailMarginRate  = 0.22
	B2BMarginRate     = 0.14
	DefaultMarginRate = 0.18
)

var segmentMarginRates = map[string]float64{
	"Retail": RetailMarginRate,
	"B2B":    B2BMarginRate,
}

// MarginRate returns the profit margin rate for a segment value.
func MarginRate(segment string) float64 {
	if rate, ok := segmentMarginRates[segment]; ok {
		return rate
	}
	return DefaultMarginRate
}
