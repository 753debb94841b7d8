package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Cart domain errors.
var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartLine is one line in a customer's cart. VariantID is the zero UUID when
// the base product was added.
type CartLine struct {
	ID        pgtype.UUID
	ProductID pgtype.UUID
	VariantID pgtype.UUID
	Quantity  int32
}

// CartItem is a cart line joined with product details for display and
// checkout. Variant price overrides the product base price when set.
type CartItem struct {
	CartLine
	ProductName       string
	VariantName       string
	UnitPriceCentavos int64
	LineSubtotal      int64
	AvailableStock    int32
}

// CartSummary aggregates cart lines with calculated totals.
type CartSummary struct {
	Items            []CartItem
	SubtotalCentavos int64
	ItemCount        int
}
