package domain

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DailySales is one row of the daily sales summary report, combining online
// orders and POS transactions.
type DailySales struct {
	Day              time.Time
	OrderCount       int64
	POSCount         int64
	GrossCentavos    int64
	TaxCentavos      int64
	RefundedCentavos int64
}

// TopProduct is one row of the top-products report, ranked by quantity sold.
type TopProduct struct {
	ProductID     pgtype.UUID
	ProductName   string
	QuantitySold  int64
	GrossCentavos int64
}
