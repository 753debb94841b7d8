package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

const nextOrderNumber = `SELECT next_order_number()`

// NextOrderNumber draws from the database-side sequence function. Callers
// fall back to a timestamp-based number if this fails.
func (q *Queries) NextOrderNumber(ctx context.Context) (string, error) {
	var n string
	err := q.db.QueryRow(ctx, nextOrderNumber).Scan(&n)
	return n, err
}

const createOrder = `
INSERT INTO orders (order_number, customer_id, status, payment_status, payment_method,
                    subtotal_centavos, tax_centavos, total_centavos, shipping_address, customer_notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, order_number, customer_id, status, payment_status, payment_method,
          subtotal_centavos, tax_centavos, total_centavos, shipping_address, customer_notes,
          created_at, updated_at
`

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error) {
	addr, err := json.Marshal(arg.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal shipping address: %w", err)
	}

	row := q.db.QueryRow(ctx, createOrder,
		arg.OrderNumber, arg.CustomerID, arg.Status, arg.PaymentStatus, arg.PaymentMethod,
		arg.SubtotalCentavos, arg.TaxCentavos, arg.TotalCentavos, addr, arg.CustomerNotes)
	return scanOrder(row)
}

const orderColumns = `id, order_number, customer_id, status, payment_status, payment_method,
       subtotal_centavos, tax_centavos, total_centavos, shipping_address, customer_notes,
       created_at, updated_at`

func (q *Queries) GetOrder(ctx context.Context, id pgtype.UUID) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (q *Queries) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	return scanOrder(row)
}

func (q *Queries) ListOrdersByCustomer(ctx context.Context, customerID pgtype.UUID) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var addr []byte
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.PaymentStatus,
		&o.PaymentMethod, &o.SubtotalCentavos, &o.TaxCentavos, &o.TotalCentavos,
		&addr, &o.CustomerNotes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	return o, nil
}

const createOrderItem = `
INSERT INTO order_items (order_id, product_id, variant_id, product_name, quantity,
                         unit_price_centavos, subtotal_centavos)
VALUES ($1, $2, NULLIF($3, '00000000-0000-0000-0000-000000000000'::uuid), $4, $5, $6, $7)
RETURNING id, order_id, product_id, COALESCE(variant_id, '00000000-0000-0000-0000-000000000000'::uuid),
          product_name, quantity, unit_price_centavos, subtotal_centavos
`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (domain.OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID, arg.ProductID, arg.VariantID, arg.ProductName,
		arg.Quantity, arg.UnitPriceCentavos, arg.SubtotalCentavos)
	var item domain.OrderItem
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
		&item.ProductName, &item.Quantity, &item.UnitPriceCentavos, &item.SubtotalCentavos)
	return item, err
}

const listOrderItems = `
SELECT id, order_id, product_id, COALESCE(variant_id, '00000000-0000-0000-0000-000000000000'::uuid),
       product_name, quantity, unit_price_centavos, subtotal_centavos
FROM order_items
WHERE order_id = $1
ORDER BY product_name
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
			&item.ProductName, &item.Quantity, &item.UnitPriceCentavos, &item.SubtotalCentavos); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
`

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) error {
	_, err := q.db.Exec(ctx, updateOrderStatus, arg.ID, arg.Status)
	return err
}

const updateOrderPaymentStatus = `
UPDATE orders
SET payment_status = $2, updated_at = now()
WHERE id = $1
`

func (q *Queries) UpdateOrderPaymentStatus(ctx context.Context, arg UpdateOrderPaymentStatusParams) error {
	_, err := q.db.Exec(ctx, updateOrderPaymentStatus, arg.ID, arg.PaymentStatus)
	return err
}

const getAddress = `
SELECT id, customer_id, full_name, phone, address_line1, COALESCE(address_line2, ''),
       city, province, postal_code
FROM addresses
WHERE id = $1
`

func (q *Queries) GetAddress(ctx context.Context, id pgtype.UUID) (Address, error) {
	row := q.db.QueryRow(ctx, getAddress, id)
	var a Address
	err := row.Scan(&a.ID, &a.CustomerID, &a.FullName, &a.Phone, &a.AddressLine1,
		&a.AddressLine2, &a.City, &a.Province, &a.PostalCode)
	return a, err
}
