package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const createShift = `
INSERT INTO staff_shifts (staff_id, opening_cash_centavos)
VALUES ($1, $2)
RETURNING id, staff_id, opening_cash_centavos, closing_cash_centavos, expected_cash_centavos,
          started_at, ended_at, ended_at IS NULL
`

func (q *Queries) CreateShift(ctx context.Context, arg CreateShiftParams) (domain.Shift, error) {
	row := q.db.QueryRow(ctx, createShift, arg.StaffID, arg.OpeningCashCentavos)
	return scanShift(row)
}

const getOpenShift = `
SELECT id, staff_id, opening_cash_centavos, closing_cash_centavos, expected_cash_centavos,
       started_at, ended_at, ended_at IS NULL
FROM staff_shifts
WHERE staff_id = $1 AND ended_at IS NULL
`

func (q *Queries) GetOpenShift(ctx context.Context, staffID pgtype.UUID) (domain.Shift, error) {
	row := q.db.QueryRow(ctx, getOpenShift, staffID)
	return scanShift(row)
}

const closeShift = `
UPDATE staff_shifts
SET closing_cash_centavos = $2, expected_cash_centavos = $3, ended_at = now()
WHERE id = $1 AND ended_at IS NULL
RETURNING id, staff_id, opening_cash_centavos, closing_cash_centavos, expected_cash_centavos,
          started_at, ended_at, ended_at IS NULL
`

func (q *Queries) CloseShift(ctx context.Context, arg CloseShiftParams) (domain.Shift, error) {
	row := q.db.QueryRow(ctx, closeShift, arg.ID, arg.ClosingCashCentavos, arg.ExpectedCashCentavos)
	return scanShift(row)
}

func scanShift(row rowScanner) (domain.Shift, error) {
	var s domain.Shift
	err := row.Scan(&s.ID, &s.StaffID, &s.OpeningCashCentavos, &s.ClosingCashCentavos,
		&s.ExpectedCashCentavos, &s.StartedAt, &s.EndedAt, &s.Open)
	return s, err
}
