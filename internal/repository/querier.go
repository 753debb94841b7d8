package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
)

// Querier is the full set of database operations. Services depend on this
// interface (or TxStore when they need transactions) rather than on Queries
// directly.
type Querier interface {
	// Catalog
	GetProduct(ctx context.Context, id pgtype.UUID) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetVariant(ctx context.Context, id pgtype.UUID) (domain.ProductVariant, error)
	ListVariants(ctx context.Context, productID pgtype.UUID) ([]domain.ProductVariant, error)

	// Stock counters. Decrements are conditional
	// (UPDATE ... WHERE stock >= qty) and report rows affected so callers can
	// treat 0 as an insufficient-stock failure.
	DecrementProductStock(ctx context.Context, arg StockDeltaParams) (int64, error)
	DecrementVariantStock(ctx context.Context, arg StockDeltaParams) (int64, error)
	RestoreProductStock(ctx context.Context, arg StockDeltaParams) error
	RestoreVariantStock(ctx context.Context, arg StockDeltaParams) error
	AdjustProductStock(ctx context.Context, arg AdjustStockParams) (int64, error)
	ListLowStockProducts(ctx context.Context, threshold int32) ([]domain.Product, error)

	// Stock movement ledger (append-only)
	CreateStockMovement(ctx context.Context, arg CreateStockMovementParams) error
	ListStockMovements(ctx context.Context, productID pgtype.UUID) ([]domain.StockMovement, error)

	// Cart
	GetCartItems(ctx context.Context, customerID pgtype.UUID) ([]domain.CartItem, error)
	UpsertCartLine(ctx context.Context, arg UpsertCartLineParams) (domain.CartLine, error)
	UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (int64, error)
	RemoveCartLine(ctx context.Context, arg RemoveCartLineParams) (int64, error)
	ClearCart(ctx context.Context, customerID pgtype.UUID) error

	// Orders
	NextOrderNumber(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (domain.OrderItem, error)
	GetOrder(ctx context.Context, id pgtype.UUID) (domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error)
	ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error)
	ListOrdersByCustomer(ctx context.Context, customerID pgtype.UUID) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) error
	UpdateOrderPaymentStatus(ctx context.Context, arg UpdateOrderPaymentStatusParams) error

	// Addresses
	GetAddress(ctx context.Context, id pgtype.UUID) (Address, error)

	// POS
	CreatePOSTransaction(ctx context.Context, arg CreatePOSTransactionParams) (domain.POSTransaction, error)
	CreatePOSTransactionItem(ctx context.Context, arg CreatePOSTransactionItemParams) error
	CreatePOSPayment(ctx context.Context, arg CreatePOSPaymentParams) error
	GetPOSTransactionByReference(ctx context.Context, reference string) (domain.POSTransaction, error)
	ListPOSTransactionItems(ctx context.Context, transactionID pgtype.UUID) ([]domain.POSTransactionItem, error)
	MarkPOSTransactionRefunded(ctx context.Context, id pgtype.UUID) (int64, error)

	// Shifts
	CreateShift(ctx context.Context, arg CreateShiftParams) (domain.Shift, error)
	GetOpenShift(ctx context.Context, staffID pgtype.UUID) (domain.Shift, error)
	CloseShift(ctx context.Context, arg CloseShiftParams) (domain.Shift, error)

	// Payment proofs
	CreatePaymentProof(ctx context.Context, arg CreatePaymentProofParams) (domain.PaymentProof, error)
	GetPaymentProof(ctx context.Context, id pgtype.UUID) (domain.PaymentProof, error)
	HasPendingProof(ctx context.Context, orderID pgtype.UUID) (bool, error)
	ResolvePaymentProof(ctx context.Context, arg ResolvePaymentProofParams) (int64, error)

	// Audit log (append-only)
	CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error

	// Users and password-change tokens
	GetActorBySessionToken(ctx context.Context, token string) (domain.Actor, error)
	GetUserPasswordHash(ctx context.Context, userID pgtype.UUID) (string, error)
	UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error
	CreatePasswordChangeToken(ctx context.Context, arg CreatePasswordChangeTokenParams) (pgtype.UUID, error)
	GetPasswordChangeToken(ctx context.Context, id pgtype.UUID) (PasswordChangeToken, error)
	IncrementTokenAttempts(ctx context.Context, id pgtype.UUID) error
	ConsumePasswordChangeToken(ctx context.Context, id pgtype.UUID) (int64, error)

	// Reports
	DailySales(ctx context.Context, arg ReportRangeParams) ([]domain.DailySales, error)
	TopProducts(ctx context.Context, arg TopProductsParams) ([]domain.TopProduct, error)
}

// TxStore is a Querier that can also run a function inside one transaction.
type TxStore interface {
	Querier
	WithTx(ctx context.Context, fn func(Querier) error) error
}

// Address is a stored customer address. Orders snapshot it at checkout.
type Address struct {
	ID           pgtype.UUID
	CustomerID   pgtype.UUID
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	Province     string
	PostalCode   string
}

// PasswordChangeToken is the server-side state behind an opaque
// password-change token.
type PasswordChangeToken struct {
	ID              pgtype.UUID
	UserID          pgtype.UUID
	NewPasswordHash string
	OTPHash         string
	Attempts        int32
	ExpiresAt       pgtype.Timestamptz
}

type StockDeltaParams struct {
	ID       pgtype.UUID
	Quantity int32
}

type AdjustStockParams struct {
	ID    pgtype.UUID
	Delta int32
}

type CreateStockMovementParams struct {
	ProductID      pgtype.UUID
	VariantID      pgtype.UUID
	MovementType   string
	QuantityChange int32
	ReferenceID    pgtype.UUID
	PerformedBy    pgtype.UUID
	Reason         string
}

type UpsertCartLineParams struct {
	CustomerID pgtype.UUID
	ProductID  pgtype.UUID
	VariantID  pgtype.UUID
	Quantity   int32
}

type UpdateCartLineQuantityParams struct {
	CustomerID pgtype.UUID
	LineID     pgtype.UUID
	Quantity   int32
}

type RemoveCartLineParams struct {
	CustomerID pgtype.UUID
	LineID     pgtype.UUID
}

type CreateOrderParams struct {
	OrderNumber      string
	CustomerID       pgtype.UUID
	Status           string
	PaymentStatus    string
	PaymentMethod    string
	SubtotalCentavos int64
	TaxCentavos      int64
	TotalCentavos    int64
	ShippingAddress  domain.AddressSnapshot
	CustomerNotes    string
}

type CreateOrderItemParams struct {
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	VariantID         pgtype.UUID
	ProductName       string
	Quantity          int32
	UnitPriceCentavos int64
	SubtotalCentavos  int64
}

type UpdateOrderStatusParams struct {
	ID     pgtype.UUID
	Status string
}

type UpdateOrderPaymentStatusParams struct {
	ID            pgtype.UUID
	PaymentStatus string
}

type CreatePOSTransactionParams struct {
	ReferenceNumber  string
	SubtotalCentavos int64
	TaxCentavos      int64
	TotalCentavos    int64
	ChangeCentavos   int64
	CashierID        pgtype.UUID
	ShiftID          pgtype.UUID
}

type CreatePOSTransactionItemParams struct {
	TransactionID     pgtype.UUID
	ProductID         pgtype.UUID
	ProductName       string
	Quantity          int32
	UnitPriceCentavos int64
	SubtotalCentavos  int64
}

type CreatePOSPaymentParams struct {
	TransactionID   pgtype.UUID
	Tender          string
	AmountCentavos  int64
	ReferenceNumber string
}

type CreateShiftParams struct {
	StaffID             pgtype.UUID
	OpeningCashCentavos int64
}

type CloseShiftParams struct {
	ID                   pgtype.UUID
	ClosingCashCentavos  int64
	ExpectedCashCentavos int64
}

type CreatePaymentProofParams struct {
	OrderID         pgtype.UUID
	Method          string
	ReferenceNumber string
	SubmittedBy     pgtype.UUID
}

type ResolvePaymentProofParams struct {
	ID          pgtype.UUID
	Status      string
	ReviewedBy  pgtype.UUID
	ReviewNotes string
}

type CreateAuditEntryParams struct {
	ActorID    pgtype.UUID
	Action     string
	EntityType string
	EntityID   pgtype.UUID
	Detail     []byte // JSON payload
}

type UpdateUserPasswordParams struct {
	UserID       pgtype.UUID
	PasswordHash string
}

type CreatePasswordChangeTokenParams struct {
	UserID          pgtype.UUID
	NewPasswordHash string
	OTPHash         string
	ExpiresAt       time.Time
}

type ReportRangeParams struct {
	From time.Time
	To   time.Time
}

type TopProductsParams struct {
	From  time.Time
	To    time.Time
	Limit int32
}
