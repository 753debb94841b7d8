package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Catalog domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrVariantNotFound = &Error{Code: ENOTFOUND, Message: "Product variant not found"}
)

// Product is a catalog entry. Stock tracks the base product; variants carry
// their own counters.
type Product struct {
	ID                pgtype.UUID
	Name              string
	Slug              string
	Description       string
	BasePriceCentavos int64
	Stock             int32
	Active            bool
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

// ProductVariant is a sellable variation of a product (size, color).
// PriceCentavos overrides the product base price.
type ProductVariant struct {
	ID            pgtype.UUID
	ProductID     pgtype.UUID
	Name          string
	PriceCentavos int64
	Stock         int32
}
