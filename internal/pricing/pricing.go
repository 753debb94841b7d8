// Package pricing centralizes order total computation. Every order-creating
// path (storefront checkout, POS sale) receives a Calculator explicitly so no
// call site computes subtotal, tax or total inline.
package pricing

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Calculator computes order totals from line items.
// Implementations: PercentageCalculator, NoTaxCalculator.
type Calculator interface {
	// Quote computes subtotal, tax and total for the given lines.
	// All amounts are integer centavos; tax is rounded half up.
	Quote(lines []Line) Quote
}

// Line is one priced line item.
type Line struct {
	ProductID         pgtype.UUID
	Description       string
	Quantity          int32
	UnitPriceCentavos int64
}

// Quote is the computed total breakdown.
// Invariants: SubtotalCentavos == Σ line quantity × unit price,
// TotalCentavos == SubtotalCentavos + TaxCentavos.
type Quote struct {
	SubtotalCentavos int64
	TaxCentavos      int64
	TotalCentavos    int64
	Rate             float64
}

func subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += int64(l.Quantity) * l.UnitPriceCentavos
	}
	return sum
}
