package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	for _, raw := range []string{"product", "Product", " REGION ", "sub_category", "segment", "customer"} {
		_, err := ParseDimension(raw)
		assert.NoError(t, err, "raw %q", raw)
	}

	_, err := ParseDimension("warehouse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported grouping dimension")

	_, err = ParseDimension("")
	require.Error(t, err)
}

func TestDimensionLabel(t *testing.T) {
	assert.Equal(t, "Product Name", DimensionProduct.Label())
	assert.Equal(t, "Sub-Category", DimensionSubCategory.Label())
	assert.Equal(t, "Region", DimensionRegion.Label())
	assert.Equal(t, "Segment", DimensionSegment.Label())
	assert.Equal(t, "Customer ID", DimensionCustomer.Label())
}

func TestDimensions_CoversParseableSet(t *testing.T) {
	for _, d := range Dimensions() {
		parsed, err := ParseDimension(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestTransaction_NullableAccessors(t *testing.T) {
	var tx Transaction
	assert.Zero(t, tx.QuantityOrZero())
	assert.Zero(t, tx.UnitPriceOrZero())

	qty, price := 2.0, 9.99
	tx.Quantity, tx.UnitPrice = &qty, &price
	assert.InDelta(t, 2, tx.QuantityOrZero(), 1e-9)
	assert.InDelta(t, 9.99, tx.UnitPriceOrZero(), 1e-9)
}

func TestDatasetLen(t *testing.T) {
	ds := &Dataset{Transactions: make([]Transaction, 3)}
	assert.Equal(t, 3, ds.Len())
	assert.Zero(t, (&Dataset{}).Len())
}
