package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

// Cart lines join against products and variants so the service layer sees
// resolved names, prices (variant price overrides base) and live stock.
const getCartItems = `
SELECT c.id, c.product_id,
       COALESCE(c.variant_id, '00000000-0000-0000-0000-000000000000'::uuid),
       c.quantity,
       p.name,
       COALESCE(v.name, ''),
       COALESCE(v.price_centavos, p.base_price_centavos),
       COALESCE(v.stock, p.stock)
FROM carts c
JOIN products p ON p.id = c.product_id
LEFT JOIN product_variants v ON v.id = c.variant_id
WHERE c.customer_id = $1
ORDER BY c.created_at
`

func (q *Queries) GetCartItems(ctx context.Context, customerID pgtype.UUID) ([]domain.CartItem, error) {
	rows, err := q.db.Query(ctx, getCartItems, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.VariantID, &item.Quantity,
			&item.ProductName, &item.VariantName, &item.UnitPriceCentavos,
			&item.AvailableStock); err != nil {
			return nil, err
		}
		item.LineSubtotal = int64(item.Quantity) * item.UnitPriceCentavos
		items = append(items, item)
	}
	return items, rows.Err()
}

const upsertCartLine = `
INSERT INTO carts (customer_id, product_id, variant_id, quantity)
VALUES ($1, $2, NULLIF($3, '00000000-0000-0000-0000-000000000000'::uuid), $4)
ON CONFLICT (customer_id, product_id, variant_key)
DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, product_id, COALESCE(variant_id, '00000000-0000-0000-0000-000000000000'::uuid), quantity
`

func (q *Queries) UpsertCartLine(ctx context.Context, arg UpsertCartLineParams) (domain.CartLine, error) {
	row := q.db.QueryRow(ctx, upsertCartLine, arg.CustomerID, arg.ProductID, arg.VariantID, arg.Quantity)
	var line domain.CartLine
	err := row.Scan(&line.ID, &line.ProductID, &line.VariantID, &line.Quantity)
	return line, err
}

const updateCartLineQuantity = `
UPDATE carts
SET quantity = $3, updated_at = now()
WHERE id = $2 AND customer_id = $1
`

func (q *Queries) UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCartLineQuantity, arg.CustomerID, arg.LineID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const removeCartLine = `
DELETE FROM carts
WHERE id = $2 AND customer_id = $1
`

func (q *Queries) RemoveCartLine(ctx context.Context, arg RemoveCartLineParams) (int64, error) {
	tag, err := q.db.Exec(ctx, removeCartLine, arg.CustomerID, arg.LineID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const clearCart = `
DELETE FROM carts
WHERE customer_id = $1
`

// ClearCart deletes all cart rows for the customer. Deleting an already-empty
// cart is a no-op, so the call is idempotent.
func (q *Queries) ClearCart(ctx context.Context, customerID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, clearCart, customerID)
	return err
}
