package repository

import (
	"context"

	"github.com/mvillanueva/tindahan/internal/domain"
)

// Online orders and POS transactions are unioned per day. Cancelled orders
// are excluded; refunded POS totals are surfaced separately.
const dailySales = `
WITH combined AS (
  SELECT created_at::date AS day, total_centavos, tax_centavos,
         TRUE AS is_order, FALSE AS refunded
  FROM orders
  WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2
  UNION ALL
  SELECT created_at::date, total_centavos, tax_centavos,
         FALSE, status = 'refunded'
  FROM pos_transactions
  WHERE created_at >= $1 AND created_at < $2
)
SELECT day,
       COUNT(*) FILTER (WHERE is_order),
       COUNT(*) FILTER (WHERE NOT is_order),
       COALESCE(SUM(total_centavos) FILTER (WHERE NOT refunded), 0),
       COALESCE(SUM(tax_centavos) FILTER (WHERE NOT refunded), 0),
       COALESCE(SUM(total_centavos) FILTER (WHERE refunded), 0)
FROM combined
GROUP BY day
ORDER BY day
`

func (q *Queries) DailySales(ctx context.Context, arg ReportRangeParams) ([]domain.DailySales, error) {
	rows, err := q.db.Query(ctx, dailySales, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.DailySales
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Day, &d.OrderCount, &d.POSCount,
			&d.GrossCentavos, &d.TaxCentavos, &d.RefundedCentavos); err != nil {
			return nil, err
		}
		report = append(report, d)
	}
	return report, rows.Err()
}

const topProducts = `
WITH sold AS (
  SELECT oi.product_id, oi.product_name, oi.quantity, oi.subtotal_centavos
  FROM order_items oi
  JOIN orders o ON o.id = oi.order_id
  WHERE o.status <> 'cancelled' AND o.created_at >= $1 AND o.created_at < $2
  UNION ALL
  SELECT ti.product_id, ti.product_name, ti.quantity, ti.subtotal_centavos
  FROM pos_transaction_items ti
  JOIN pos_transactions t ON t.id = ti.transaction_id
  WHERE t.status <> 'refunded' AND t.created_at >= $1 AND t.created_at < $2
)
SELECT product_id, product_name, SUM(quantity)::bigint, SUM(subtotal_centavos)::bigint
FROM sold
GROUP BY product_id, product_name
ORDER BY SUM(quantity) DESC, product_name
LIMIT $3
`

func (q *Queries) TopProducts(ctx context.Context, arg TopProductsParams) ([]domain.TopProduct, error) {
	rows, err := q.db.Query(ctx, topProducts, arg.From, arg.To, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.TopProduct
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.QuantitySold, &p.GrossCentavos); err != nil {
			return nil, err
		}
		report = append(report, p)
	}
	return report, rows.Err()
}
