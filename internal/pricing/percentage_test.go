package pricing_test

import (
	"testing"

	"github.com/mvillanueva/tindahan/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestPercentageCalculator_Quote(t *testing.T) {
	calc := pricing.NewPercentageCalculator(0.12)

	// Two units at P100.00 plus one unit at P250.00.
	lines := []pricing.Line{
		{Description: "Product A", Quantity: 2, UnitPriceCentavos: 10000},
		{Description: "Variant B", Quantity: 1, UnitPriceCentavos: 25000},
	}

	quote := calc.Quote(lines)

	assert.Equal(t, int64(45000), quote.SubtotalCentavos)
	assert.Equal(t, int64(5400), quote.TaxCentavos)
	assert.Equal(t, int64(50400), quote.TotalCentavos)
	assert.Equal(t, 0.12, quote.Rate)
}

func TestPercentageCalculator_Quote_Rounding(t *testing.T) {
	calc := pricing.NewPercentageCalculator(0.12)

	// 12% of 105 centavos is 12.6; rounds up to 13.
	quote := calc.Quote([]pricing.Line{{Quantity: 1, UnitPriceCentavos: 105}})

	assert.Equal(t, int64(105), quote.SubtotalCentavos)
	assert.Equal(t, int64(13), quote.TaxCentavos)
	assert.Equal(t, int64(118), quote.TotalCentavos)
}

func TestPercentageCalculator_Quote_EmptyLines(t *testing.T) {
	calc := pricing.NewPercentageCalculator(0.12)

	quote := calc.Quote(nil)

	assert.Equal(t, int64(0), quote.SubtotalCentavos)
	assert.Equal(t, int64(0), quote.TaxCentavos)
	assert.Equal(t, int64(0), quote.TotalCentavos)
}

func TestPercentageCalculator_TotalIsSubtotalPlusTax(t *testing.T) {
	cases := []struct {
		rate  float64
		lines []pricing.Line
	}{
		{0.12, []pricing.Line{{Quantity: 3, UnitPriceCentavos: 9999}}},
		{0.08, []pricing.Line{{Quantity: 1, UnitPriceCentavos: 1}, {Quantity: 7, UnitPriceCentavos: 333}}},
		{0.0, []pricing.Line{{Quantity: 10, UnitPriceCentavos: 12345}}},
	}

	for _, tc := range cases {
		quote := pricing.NewPercentageCalculator(tc.rate).Quote(tc.lines)
		assert.Equal(t, quote.SubtotalCentavos+quote.TaxCentavos, quote.TotalCentavos)
	}
}
