package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Shift domain errors.
var (
	ErrShiftAlreadyOpen = &Error{Code: ECONFLICT, Message: "Staff member already has an open shift"}
	ErrNoOpenShift      = &Error{Code: ENOTFOUND, Message: "No open shift for staff member"}
)

// Shift tracks one staff work period at the terminal, with opening and
// closing cash drawer counts.
type Shift struct {
	ID                   pgtype.UUID
	StaffID              pgtype.UUID
	OpeningCashCentavos  int64
	ClosingCashCentavos  int64
	ExpectedCashCentavos int64
	StartedAt            pgtype.Timestamptz
	EndedAt              pgtype.Timestamptz
	Open                 bool
}
