package pricing

// NoTaxCalculator returns totals with zero tax. Used for POS sales where
// shelf prices are tax-inclusive.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a Calculator that never applies tax.
func NewNoTaxCalculator() *NoTaxCalculator {
	return &NoTaxCalculator{}
}

var _ Calculator = (*NoTaxCalculator)(nil)

func (c *NoTaxCalculator) Quote(lines []Line) Quote {
	sub := subtotal(lines)
	return Quote{
		SubtotalCentavos: sub,
		TaxCentavos:      0,
		TotalCentavos:    sub,
	}
}
