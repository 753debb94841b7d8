package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Payment proof statuses. A proof starts pending and is verified or rejected
// by staff; verification marks the order paid.
const (
	ProofStatusPending  = "pending"
	ProofStatusVerified = "verified"
	ProofStatusRejected = "rejected"
)

// Payment proof domain errors.
var (
	ErrProofNotFound         = &Error{Code: ENOTFOUND, Message: "Payment proof not found"}
	ErrProofAlreadySubmitted = &Error{Code: ECONFLICT, Message: "A pending payment proof already exists for this order"}
	ErrProofAlreadyResolved  = &Error{Code: ECONFLICT, Message: "Payment proof has already been reviewed"}
)

// PaymentProof is a customer-submitted reference for a gcash/maya/bank
// transfer payment, awaiting staff review.
type PaymentProof struct {
	ID              pgtype.UUID
	OrderID         pgtype.UUID
	Method          string
	ReferenceNumber string
	Status          string
	SubmittedBy     pgtype.UUID
	ReviewedBy      pgtype.UUID
	ReviewNotes     string
	CreatedAt       pgtype.Timestamptz
	ReviewedAt      pgtype.Timestamptz
}
