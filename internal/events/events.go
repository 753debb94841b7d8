// Package events publishes domain events to NATS. Subscribers (the alert
// worker, future integrations) consume them asynchronously; publishing is
// best-effort and never fails a business operation.
package events

import "time"

// Subjects.
const (
	SubjectOrderCreated   = "tindahan.order.created"
	SubjectOrderCancelled = "tindahan.order.cancelled"
	SubjectPOSRefunded    = "tindahan.pos.refunded"
	SubjectStockMovement  = "tindahan.inventory.movement"
)

// OrderCreated is published after a checkout commits.
type OrderCreated struct {
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    string    `json:"customer_id"`
	TotalCentavos int64     `json:"total_centavos"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderCancelled is published after an order is cancelled and stock restored.
type OrderCancelled struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CancelledBy string `json:"cancelled_by"`
}

// POSRefunded is published after a POS refund commits.
type POSRefunded struct {
	TransactionID  string `json:"transaction_id"`
	Reference      string `json:"reference"`
	AmountCentavos int64  `json:"amount_centavos"`
	RefundedBy     string `json:"refunded_by"`
}

// StockMovement is published for every inventory ledger append.
type StockMovement struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	MovementType   string `json:"movement_type"`
	QuantityChange int32  `json:"quantity_change"`
	StockAfter     int32  `json:"stock_after"`
}
