package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Order statuses. Transitions only move forward except for cancellation,
// which is permitted from pending (any customer) and processing (staff only,
// enforced in the order service). Shipped orders can no longer be cancelled.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodGCash          = "gcash"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodMaya           = "maya"
)

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInsufficientStock = &Error{Code: EINVALID, Message: "Insufficient stock for one or more items"}
	ErrEmptyCart         = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidTransition = &Error{Code: ECONFLICT, Message: "Order status cannot move backwards"}
	ErrNotCancellable    = &Error{Code: ECONFLICT, Message: "Order can no longer be cancelled"}
)

// orderTransitions is the forward-only order state machine.
// Terminal states (delivered, cancelled) have no outgoing transitions.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
// Every mutating call site must consult this instead of comparing status
// strings inline.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodGCash, PaymentMethodCashOnDelivery,
		PaymentMethodBankTransfer, PaymentMethodMaya:
		return true
	}
	return false
}

// Order is the order header. Money values are integer centavos.
type Order struct {
	ID               pgtype.UUID
	OrderNumber      string
	CustomerID       pgtype.UUID
	Status           string
	PaymentStatus    string
	PaymentMethod    string
	SubtotalCentavos int64
	TaxCentavos      int64
	TotalCentavos    int64
	// ShippingAddress is a snapshot of the address at order time so later
	// address edits do not rewrite order history.
	ShippingAddress AddressSnapshot
	CustomerNotes   string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// OrderItem is immutable after creation - it snapshots product name and price
// so historical orders are unaffected by later catalog edits.
type OrderItem struct {
	ID                pgtype.UUID
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	VariantID         pgtype.UUID // zero UUID when the base product was ordered
	ProductName       string
	Quantity          int32
	UnitPriceCentavos int64
	SubtotalCentavos  int64
}

// AddressSnapshot is the shipping address captured on the order row.
type AddressSnapshot struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
}

// OrderDetail aggregates an order with its line items.
type OrderDetail struct {
	Order Order
	Items []OrderItem
}
