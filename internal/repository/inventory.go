package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

// Conditional decrement: the WHERE stock >= $2 guard makes concurrent
// checkouts against the same low-stock row serialize correctly. Zero rows
// affected means insufficient stock.
const decrementProductStock = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
`

func (q *Queries) DecrementProductStock(ctx context.Context, arg StockDeltaParams) (int64, error) {
	tag, err := q.db.Exec(ctx, decrementProductStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const decrementVariantStock = `
UPDATE product_variants
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`

func (q *Queries) DecrementVariantStock(ctx context.Context, arg StockDeltaParams) (int64, error) {
	tag, err := q.db.Exec(ctx, decrementVariantStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const restoreProductStock = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1
`

func (q *Queries) RestoreProductStock(ctx context.Context, arg StockDeltaParams) error {
	_, err := q.db.Exec(ctx, restoreProductStock, arg.ID, arg.Quantity)
	return err
}

const restoreVariantStock = `
UPDATE product_variants
SET stock = stock + $2
WHERE id = $1
`

func (q *Queries) RestoreVariantStock(ctx context.Context, arg StockDeltaParams) error {
	_, err := q.db.Exec(ctx, restoreVariantStock, arg.ID, arg.Quantity)
	return err
}

// Adjustments may be negative; the guard keeps the counter non-negative.
const adjustProductStock = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1 AND stock + $2 >= 0
`

func (q *Queries) AdjustProductStock(ctx context.Context, arg AdjustStockParams) (int64, error) {
	tag, err := q.db.Exec(ctx, adjustProductStock, arg.ID, arg.Delta)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listLowStockProducts = `
SELECT id, name, slug, description, base_price_centavos, stock, active, created_at, updated_at
FROM products
WHERE active AND stock <= $1
ORDER BY stock, name
`

func (q *Queries) ListLowStockProducts(ctx context.Context, threshold int32) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, listLowStockProducts, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.BasePriceCentavos,
			&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const createStockMovement = `
INSERT INTO stock_movements (product_id, variant_id, movement_type, quantity_change, reference_id, performed_by, reason)
VALUES ($1, NULLIF($2, '00000000-0000-0000-0000-000000000000'::uuid), $3, $4,
        NULLIF($5, '00000000-0000-0000-0000-000000000000'::uuid), $6, $7)
`

func (q *Queries) CreateStockMovement(ctx context.Context, arg CreateStockMovementParams) error {
	_, err := q.db.Exec(ctx, createStockMovement,
		arg.ProductID, arg.VariantID, arg.MovementType, arg.QuantityChange,
		arg.ReferenceID, arg.PerformedBy, arg.Reason)
	return err
}

const listStockMovements = `
SELECT id, product_id, COALESCE(variant_id, '00000000-0000-0000-0000-000000000000'::uuid),
       movement_type, quantity_change,
       COALESCE(reference_id, '00000000-0000-0000-0000-000000000000'::uuid),
       performed_by, reason, created_at
FROM stock_movements
WHERE product_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListStockMovements(ctx context.Context, productID pgtype.UUID) ([]domain.StockMovement, error) {
	rows, err := q.db.Query(ctx, listStockMovements, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.VariantID, &m.MovementType,
			&m.QuantityChange, &m.ReferenceID, &m.PerformedBy, &m.Reason, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
