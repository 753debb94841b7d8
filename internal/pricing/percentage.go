package pricing

import "math"

// PercentageCalculator applies a flat tax rate to the subtotal.
type PercentageCalculator struct {
	rate float64 // e.g. 0.12 for 12%
}

// NewPercentageCalculator creates a Calculator with the given rate.
// The rate must come from configuration; call sites never hardcode it.
func NewPercentageCalculator(rate float64) *PercentageCalculator {
	return &PercentageCalculator{rate: rate}
}

var _ Calculator = (*PercentageCalculator)(nil)

// Quote computes subtotal, tax = round(subtotal × rate), total.
func (c *PercentageCalculator) Quote(lines []Line) Quote {
	sub := subtotal(lines)
	tax := int64(math.Round(float64(sub) * c.rate))
	return Quote{
		SubtotalCentavos: sub,
		TaxCentavos:      tax,
		TotalCentavos:    sub + tax,
		Rate:             c.rate,
	}
}
