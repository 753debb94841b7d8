package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// POS transaction statuses.
const (
	POSStatusCompleted = "completed"
	POSStatusRefunded  = "refunded"
)

// POS tender types for split payments.
const (
	TenderCash  = "cash"
	TenderGCash = "gcash"
	TenderMaya  = "maya"
	TenderCard  = "card"
)

// Refund item conditions. Only resellable items go back into stock.
const (
	ConditionResellable = "resellable"
	ConditionDamaged    = "damaged"
)

// POS domain errors.
var (
	ErrTransactionNotFound = &Error{Code: ENOTFOUND, Message: "Transaction not found"}
	ErrAlreadyRefunded     = &Error{Code: ECONFLICT, Message: "Transaction already refunded"}
	ErrRefundExceedsSold   = &Error{Code: EINVALID, Message: "Refund quantity exceeds sold quantity"}
	ErrPaymentShortfall    = &Error{Code: EINVALID, Message: "Payments do not cover the transaction total"}
)

// POSTransaction is an in-store sale rung up at the terminal.
type POSTransaction struct {
	ID               pgtype.UUID
	ReferenceNumber  string
	Status           string
	SubtotalCentavos int64
	TaxCentavos      int64
	TotalCentavos    int64
	ChangeCentavos   int64
	CashierID        pgtype.UUID
	ShiftID          pgtype.UUID
	CreatedAt        pgtype.Timestamptz
}

// POSTransactionItem snapshots name and unit price at sale time, like an
// order item.
type POSTransactionItem struct {
	ID                pgtype.UUID
	TransactionID     pgtype.UUID
	ProductID         pgtype.UUID
	ProductName       string
	Quantity          int32
	UnitPriceCentavos int64
	SubtotalCentavos  int64
}

// POSPayment is one tender in a (possibly split) payment.
type POSPayment struct {
	ID              pgtype.UUID
	TransactionID   pgtype.UUID
	Tender          string
	AmountCentavos  int64
	ReferenceNumber string // external reference for gcash/maya/card tenders
}

// RefundLine is one product being returned against a transaction.
type RefundLine struct {
	ProductID pgtype.UUID
	Quantity  int32
	Condition string
}

// RefundResult reports the outcome of a POS refund.
type RefundResult struct {
	TransactionID  pgtype.UUID
	AmountCentavos int64
	RestockedItems int
}
