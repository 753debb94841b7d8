package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Stock movement types. The stock_movements table is an append-only ledger;
// rows are never updated or deleted. Each mutation of a stock counter appends
// exactly one movement.
const (
	MovementSale                = "sale"
	MovementRefundRestock       = "refund_restock"
	MovementCancellationRestock = "cancellation_restock"
	MovementAdjustment          = "adjustment"
	MovementPOSSale             = "pos_sale"
)

// StockMovement is one ledger entry. QuantityChange is signed: negative for
// sales, positive for restocks and upward adjustments.
type StockMovement struct {
	ID             pgtype.UUID
	ProductID      pgtype.UUID
	VariantID      pgtype.UUID
	MovementType   string
	QuantityChange int32
	// ReferenceID points at the order or POS transaction that caused the
	// movement; zero UUID for manual adjustments.
	ReferenceID pgtype.UUID
	PerformedBy pgtype.UUID
	Reason      string
	CreatedAt   pgtype.Timestamptz
}
