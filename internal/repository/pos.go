package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const createPOSTransaction = `
INSERT INTO pos_transactions (reference_number, status, subtotal_centavos, tax_centavos,
                              total_centavos, change_centavos, cashier_id, shift_id)
VALUES ($1, 'completed', $2, $3, $4, $5, $6, NULLIF($7, '00000000-0000-0000-0000-000000000000'::uuid))
RETURNING id, reference_number, status, subtotal_centavos, tax_centavos, total_centavos,
          change_centavos, cashier_id, COALESCE(shift_id, '00000000-0000-0000-0000-000000000000'::uuid),
          created_at
`

func (q *Queries) CreatePOSTransaction(ctx context.Context, arg CreatePOSTransactionParams) (domain.POSTransaction, error) {
	row := q.db.QueryRow(ctx, createPOSTransaction,
		arg.ReferenceNumber, arg.SubtotalCentavos, arg.TaxCentavos, arg.TotalCentavos,
		arg.ChangeCentavos, arg.CashierID, arg.ShiftID)
	return scanPOSTransaction(row)
}

const getPOSTransactionByReference = `
SELECT id, reference_number, status, subtotal_centavos, tax_centavos, total_centavos,
       change_centavos, cashier_id, COALESCE(shift_id, '00000000-0000-0000-0000-000000000000'::uuid),
       created_at
FROM pos_transactions
WHERE reference_number = $1
`

func (q *Queries) GetPOSTransactionByReference(ctx context.Context, reference string) (domain.POSTransaction, error) {
	row := q.db.QueryRow(ctx, getPOSTransactionByReference, reference)
	return scanPOSTransaction(row)
}

func scanPOSTransaction(row rowScanner) (domain.POSTransaction, error) {
	var t domain.POSTransaction
	err := row.Scan(&t.ID, &t.ReferenceNumber, &t.Status, &t.SubtotalCentavos,
		&t.TaxCentavos, &t.TotalCentavos, &t.ChangeCentavos, &t.CashierID,
		&t.ShiftID, &t.CreatedAt)
	return t, err
}

const createPOSTransactionItem = `
INSERT INTO pos_transaction_items (transaction_id, product_id, product_name, quantity,
                                   unit_price_centavos, subtotal_centavos)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (q *Queries) CreatePOSTransactionItem(ctx context.Context, arg CreatePOSTransactionItemParams) error {
	_, err := q.db.Exec(ctx, createPOSTransactionItem,
		arg.TransactionID, arg.ProductID, arg.ProductName, arg.Quantity,
		arg.UnitPriceCentavos, arg.SubtotalCentavos)
	return err
}

const listPOSTransactionItems = `
SELECT id, transaction_id, product_id, product_name, quantity, unit_price_centavos, subtotal_centavos
FROM pos_transaction_items
WHERE transaction_id = $1
`

func (q *Queries) ListPOSTransactionItems(ctx context.Context, transactionID pgtype.UUID) ([]domain.POSTransactionItem, error) {
	rows, err := q.db.Query(ctx, listPOSTransactionItems, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.POSTransactionItem
	for rows.Next() {
		var item domain.POSTransactionItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPriceCentavos, &item.SubtotalCentavos); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const createPOSPayment = `
INSERT INTO pos_payments (transaction_id, tender, amount_centavos, reference_number)
VALUES ($1, $2, $3, $4)
`

func (q *Queries) CreatePOSPayment(ctx context.Context, arg CreatePOSPaymentParams) error {
	_, err := q.db.Exec(ctx, createPOSPayment,
		arg.TransactionID, arg.Tender, arg.AmountCentavos, arg.ReferenceNumber)
	return err
}

// The status guard makes the refund marking conditional: zero rows affected
// means the transaction was already refunded.
const markPOSTransactionRefunded = `
UPDATE pos_transactions
SET status = 'refunded'
WHERE id = $1 AND status = 'completed'
`

func (q *Queries) MarkPOSTransactionRefunded(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, markPOSTransactionRefunded, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
