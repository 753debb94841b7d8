package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const createPaymentProof = `
INSERT INTO payment_proofs (order_id, method, reference_number, status, submitted_by)
VALUES ($1, $2, $3, 'pending', $4)
RETURNING id, order_id, method, reference_number, status, submitted_by,
          COALESCE(reviewed_by, '00000000-0000-0000-0000-000000000000'::uuid),
          COALESCE(review_notes, ''), created_at, reviewed_at
`

func (q *Queries) CreatePaymentProof(ctx context.Context, arg CreatePaymentProofParams) (domain.PaymentProof, error) {
	row := q.db.QueryRow(ctx, createPaymentProof,
		arg.OrderID, arg.Method, arg.ReferenceNumber, arg.SubmittedBy)
	return scanPaymentProof(row)
}

const getPaymentProof = `
SELECT id, order_id, method, reference_number, status, submitted_by,
       COALESCE(reviewed_by, '00000000-0000-0000-0000-000000000000'::uuid),
       COALESCE(review_notes, ''), created_at, reviewed_at
FROM payment_proofs
WHERE id = $1
`

func (q *Queries) GetPaymentProof(ctx context.Context, id pgtype.UUID) (domain.PaymentProof, error) {
	row := q.db.QueryRow(ctx, getPaymentProof, id)
	return scanPaymentProof(row)
}

func scanPaymentProof(row rowScanner) (domain.PaymentProof, error) {
	var p domain.PaymentProof
	err := row.Scan(&p.ID, &p.OrderID, &p.Method, &p.ReferenceNumber, &p.Status,
		&p.SubmittedBy, &p.ReviewedBy, &p.ReviewNotes, &p.CreatedAt, &p.ReviewedAt)
	return p, err
}

const hasPendingProof = `
SELECT EXISTS (
  SELECT 1 FROM payment_proofs WHERE order_id = $1 AND status = 'pending'
)
`

func (q *Queries) HasPendingProof(ctx context.Context, orderID pgtype.UUID) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, hasPendingProof, orderID).Scan(&exists)
	return exists, err
}

// The status guard makes review single-shot: zero rows affected means the
// proof was already verified or rejected.
const resolvePaymentProof = `
UPDATE payment_proofs
SET status = $2, reviewed_by = $3, review_notes = $4, reviewed_at = now()
WHERE id = $1 AND status = 'pending'
`

func (q *Queries) ResolvePaymentProof(ctx context.Context, arg ResolvePaymentProofParams) (int64, error) {
	tag, err := q.db.Exec(ctx, resolvePaymentProof, arg.ID, arg.Status, arg.ReviewedBy, arg.ReviewNotes)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
