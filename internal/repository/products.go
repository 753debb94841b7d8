package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const getProduct = `
SELECT id, name, slug, description, base_price_centavos, stock, active, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id pgtype.UUID) (domain.Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.BasePriceCentavos,
		&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getProductBySlug = `
SELECT id, name, slug, description, base_price_centavos, stock, active, created_at, updated_at
FROM products
WHERE slug = $1
`

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := q.db.QueryRow(ctx, getProductBySlug, slug)
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.BasePriceCentavos,
		&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listActiveProducts = `
SELECT id, name, slug, description, base_price_centavos, stock, active, created_at, updated_at
FROM products
WHERE active
ORDER BY name
`

func (q *Queries) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, listActiveProducts)
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

const getVariant = `
SELECT id, product_id, name, price_centavos, stock
FROM product_variants
WHERE id = $1
`

func (q *Queries) GetVariant(ctx context.Context, id pgtype.UUID) (domain.ProductVariant, error) {
	row := q.db.QueryRow(ctx, getVariant, id)
	var v domain.ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceCentavos, &v.Stock)
	return v, err
}

const listVariants = `
SELECT id, product_id, name, price_centavos, stock
FROM product_variants
WHERE product_id = $1
ORDER BY name
`

func (q *Queries) ListVariants(ctx context.Context, productID pgtype.UUID) ([]domain.ProductVariant, error) {
	rows, err := q.db.Query(ctx, listVariants, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceCentavos, &v.Stock); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
