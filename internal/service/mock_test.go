package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// mockStore implements repository.TxStore with overridable function fields.
// Unset methods return zero values. WithTx runs the function against the
// mock itself and records whether the transaction was rolled back.
type mockStore struct {
	GetProductFn                   func(ctx context.Context, id pgtype.UUID) (domain.Product, error)
	GetProductBySlugFn             func(ctx context.Context, slug string) (domain.Product, error)
	ListActiveProductsFn           func(ctx context.Context) ([]domain.Product, error)
	GetVariantFn                   func(ctx context.Context, id pgtype.UUID) (domain.ProductVariant, error)
	ListVariantsFn                 func(ctx context.Context, productID pgtype.UUID) ([]domain.ProductVariant, error)
	DecrementProductStockFn        func(ctx context.Context, arg repository.StockDeltaParams) (int64, error)
	DecrementVariantStockFn        func(ctx context.Context, arg repository.StockDeltaParams) (int64, error)
	RestoreProductStockFn          func(ctx context.Context, arg repository.StockDeltaParams) error
	RestoreVariantStockFn          func(ctx context.Context, arg repository.StockDeltaParams) error
	AdjustProductStockFn           func(ctx context.Context, arg repository.AdjustStockParams) (int64, error)
	ListLowStockProductsFn         func(ctx context.Context, threshold int32) ([]domain.Product, error)
	CreateStockMovementFn          func(ctx context.Context, arg repository.CreateStockMovementParams) error
	ListStockMovementsFn           func(ctx context.Context, productID pgtype.UUID) ([]domain.StockMovement, error)
	GetCartItemsFn                 func(ctx context.Context, customerID pgtype.UUID) ([]domain.CartItem, error)
	UpsertCartLineFn               func(ctx context.Context, arg repository.UpsertCartLineParams) (domain.CartLine, error)
	UpdateCartLineQuantityFn       func(ctx context.Context, arg repository.UpdateCartLineQuantityParams) (int64, error)
	RemoveCartLineFn               func(ctx context.Context, arg repository.RemoveCartLineParams) (int64, error)
	ClearCartFn                    func(ctx context.Context, customerID pgtype.UUID) error
	NextOrderNumberFn              func(ctx context.Context) (string, error)
	CreateOrderFn                  func(ctx context.Context, arg repository.CreateOrderParams) (domain.Order, error)
	CreateOrderItemFn              func(ctx context.Context, arg repository.CreateOrderItemParams) (domain.OrderItem, error)
	GetOrderFn                     func(ctx context.Context, id pgtype.UUID) (domain.Order, error)
	GetOrderByNumberFn             func(ctx context.Context, orderNumber string) (domain.Order, error)
	ListOrderItemsFn               func(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error)
	ListOrdersByCustomerFn         func(ctx context.Context, customerID pgtype.UUID) ([]domain.Order, error)
	UpdateOrderStatusFn            func(ctx context.Context, arg repository.UpdateOrderStatusParams) error
	UpdateOrderPaymentStatusFn     func(ctx context.Context, arg repository.UpdateOrderPaymentStatusParams) error
	GetAddressFn                   func(ctx context.Context, id pgtype.UUID) (repository.Address, error)
	CreatePOSTransactionFn         func(ctx context.Context, arg repository.CreatePOSTransactionParams) (domain.POSTransaction, error)
	CreatePOSTransactionItemFn     func(ctx context.Context, arg repository.CreatePOSTransactionItemParams) error
	CreatePOSPaymentFn             func(ctx context.Context, arg repository.CreatePOSPaymentParams) error
	GetPOSTransactionByReferenceFn func(ctx context.Context, reference string) (domain.POSTransaction, error)
	ListPOSTransactionItemsFn      func(ctx context.Context, transactionID pgtype.UUID) ([]domain.POSTransactionItem, error)
	MarkPOSTransactionRefundedFn   func(ctx context.Context, id pgtype.UUID) (int64, error)
	CreateShiftFn                  func(ctx context.Context, arg repository.CreateShiftParams) (domain.Shift, error)
	GetOpenShiftFn                 func(ctx context.Context, staffID pgtype.UUID) (domain.Shift, error)
	CloseShiftFn                   func(ctx context.Context, arg repository.CloseShiftParams) (domain.Shift, error)
	CreatePaymentProofFn           func(ctx context.Context, arg repository.CreatePaymentProofParams) (domain.PaymentProof, error)
	GetPaymentProofFn              func(ctx context.Context, id pgtype.UUID) (domain.PaymentProof, error)
	HasPendingProofFn              func(ctx context.Context, orderID pgtype.UUID) (bool, error)
	ResolvePaymentProofFn          func(ctx context.Context, arg repository.ResolvePaymentProofParams) (int64, error)
	CreateAuditEntryFn             func(ctx context.Context, arg repository.CreateAuditEntryParams) error
	GetActorBySessionTokenFn       func(ctx context.Context, token string) (domain.Actor, error)
	GetUserPasswordHashFn          func(ctx context.Context, userID pgtype.UUID) (string, error)
	UpdateUserPasswordFn           func(ctx context.Context, arg repository.UpdateUserPasswordParams) error
	CreatePasswordChangeTokenFn    func(ctx context.Context, arg repository.CreatePasswordChangeTokenParams) (pgtype.UUID, error)
	GetPasswordChangeTokenFn       func(ctx context.Context, id pgtype.UUID) (repository.PasswordChangeToken, error)
	IncrementTokenAttemptsFn       func(ctx context.Context, id pgtype.UUID) error
	ConsumePasswordChangeTokenFn   func(ctx context.Context, id pgtype.UUID) (int64, error)
	DailySalesFn                   func(ctx context.Context, arg repository.ReportRangeParams) ([]domain.DailySales, error)
	TopProductsFn                  func(ctx context.Context, arg repository.TopProductsParams) ([]domain.TopProduct, error)

	txCount      int
	txRolledBack bool
}

var _ repository.TxStore = (*mockStore)(nil)

func (m *mockStore) WithTx(ctx context.Context, fn func(repository.Querier) error) error {
	m.txCount++
	if err := fn(m); err != nil {
		m.txRolledBack = true
		return err
	}
	return nil
}

func (m *mockStore) GetProduct(ctx context.Context, id pgtype.UUID) (domain.Product, error) {
	if m.GetProductFn == nil {
		return domain.Product{}, nil
	}
	return m.GetProductFn(ctx, id)
}

func (m *mockStore) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if m.GetProductBySlugFn == nil {
		return domain.Product{}, nil
	}
	return m.GetProductBySlugFn(ctx, slug)
}

func (m *mockStore) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if m.ListActiveProductsFn == nil {
		return nil, nil
	}
	return m.ListActiveProductsFn(ctx)
}

func (m *mockStore) GetVariant(ctx context.Context, id pgtype.UUID) (domain.ProductVariant, error) {
	if m.GetVariantFn == nil {
		return domain.ProductVariant{}, nil
	}
	return m.GetVariantFn(ctx, id)
}

func (m *mockStore) ListVariants(ctx context.Context, productID pgtype.UUID) ([]domain.ProductVariant, error) {
	if m.ListVariantsFn == nil {
		return nil, nil
	}
	return m.ListVariantsFn(ctx, productID)
}

func (m *mockStore) DecrementProductStock(ctx context.Context, arg repository.StockDeltaParams) (int64, error) {
	if m.DecrementProductStockFn == nil {
		return 1, nil
	}
	return m.DecrementProductStockFn(ctx, arg)
}

func (m *mockStore) DecrementVariantStock(ctx context.Context, arg repository.StockDeltaParams) (int64, error) {
	if m.DecrementVariantStockFn == nil {
		return 1, nil
	}
	return m.DecrementVariantStockFn(ctx, arg)
}

func (m *mockStore) RestoreProductStock(ctx context.Context, arg repository.StockDeltaParams) error {
	if m.RestoreProductStockFn == nil {
		return nil
	}
	return m.RestoreProductStockFn(ctx, arg)
}

func (m *mockStore) RestoreVariantStock(ctx context.Context, arg repository.StockDeltaParams) error {
	if m.RestoreVariantStockFn == nil {
		return nil
	}
	return m.RestoreVariantStockFn(ctx, arg)
}

func (m *mockStore) AdjustProductStock(ctx context.Context, arg repository.AdjustStockParams) (int64, error) {
	if m.AdjustProductStockFn == nil {
		return 1, nil
	}
	return m.AdjustProductStockFn(ctx, arg)
}

func (m *mockStore) ListLowStockProducts(ctx context.Context, threshold int32) ([]domain.Product, error) {
	if m.ListLowStockProductsFn == nil {
		return nil, nil
	}
	return m.ListLowStockProductsFn(ctx, threshold)
}

func (m *mockStore) CreateStockMovement(ctx context.Context, arg repository.CreateStockMovementParams) error {
	if m.CreateStockMovementFn == nil {
		return nil
	}
	return m.CreateStockMovementFn(ctx, arg)
}

func (m *mockStore) ListStockMovements(ctx context.Context, productID pgtype.UUID) ([]domain.StockMovement, error) {
	if m.ListStockMovementsFn == nil {
		return nil, nil
	}
	return m.ListStockMovementsFn(ctx, productID)
}

func (m *mockStore) GetCartItems(ctx context.Context, customerID pgtype.UUID) ([]domain.CartItem, error) {
	if m.GetCartItemsFn == nil {
		return nil, nil
	}
	return m.GetCartItemsFn(ctx, customerID)
}

func (m *mockStore) UpsertCartLine(ctx context.Context, arg repository.UpsertCartLineParams) (domain.CartLine, error) {
	if m.UpsertCartLineFn == nil {
		return domain.CartLine{}, nil
	}
	return m.UpsertCartLineFn(ctx, arg)
}

func (m *mockStore) UpdateCartLineQuantity(ctx context.Context, arg repository.UpdateCartLineQuantityParams) (int64, error) {
	if m.UpdateCartLineQuantityFn == nil {
		return 1, nil
	}
	return m.UpdateCartLineQuantityFn(ctx, arg)
}

func (m *mockStore) RemoveCartLine(ctx context.Context, arg repository.RemoveCartLineParams) (int64, error) {
	if m.RemoveCartLineFn == nil {
		return 1, nil
	}
	return m.RemoveCartLineFn(ctx, arg)
}

func (m *mockStore) ClearCart(ctx context.Context, customerID pgtype.UUID) error {
	if m.ClearCartFn == nil {
		return nil
	}
	return m.ClearCartFn(ctx, customerID)
}

func (m *mockStore) NextOrderNumber(ctx context.Context) (string, error) {
	if m.NextOrderNumberFn == nil {
		return "ORD-00001", nil
	}
	return m.NextOrderNumberFn(ctx)
}

func (m *mockStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (domain.Order, error) {
	if m.CreateOrderFn == nil {
		return domain.Order{}, nil
	}
	return m.CreateOrderFn(ctx, arg)
}

func (m *mockStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (domain.OrderItem, error) {
	if m.CreateOrderItemFn == nil {
		return domain.OrderItem{}, nil
	}
	return m.CreateOrderItemFn(ctx, arg)
}

func (m *mockStore) GetOrder(ctx context.Context, id pgtype.UUID) (domain.Order, error) {
	if m.GetOrderFn == nil {
		return domain.Order{}, nil
	}
	return m.GetOrderFn(ctx, id)
}

func (m *mockStore) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	if m.GetOrderByNumberFn == nil {
		return domain.Order{}, nil
	}
	return m.GetOrderByNumberFn(ctx, orderNumber)
}

func (m *mockStore) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]domain.OrderItem, error) {
	if m.ListOrderItemsFn == nil {
		return nil, nil
	}
	return m.ListOrderItemsFn(ctx, orderID)
}

func (m *mockStore) ListOrdersByCustomer(ctx context.Context, customerID pgtype.UUID) ([]domain.Order, error) {
	if m.ListOrdersByCustomerFn == nil {
		return nil, nil
	}
	return m.ListOrdersByCustomerFn(ctx, customerID)
}

func (m *mockStore) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) error {
	if m.UpdateOrderStatusFn == nil {
		return nil
	}
	return m.UpdateOrderStatusFn(ctx, arg)
}

func (m *mockStore) UpdateOrderPaymentStatus(ctx context.Context, arg repository.UpdateOrderPaymentStatusParams) error {
	if m.UpdateOrderPaymentStatusFn == nil {
		return nil
	}
	return m.UpdateOrderPaymentStatusFn(ctx, arg)
}

func (m *mockStore) GetAddress(ctx context.Context, id pgtype.UUID) (repository.Address, error) {
	if m.GetAddressFn == nil {
		return repository.Address{}, nil
	}
	return m.GetAddressFn(ctx, id)
}

func (m *mockStore) CreatePOSTransaction(ctx context.Context, arg repository.CreatePOSTransactionParams) (domain.POSTransaction, error) {
	if m.CreatePOSTransactionFn == nil {
		return domain.POSTransaction{}, nil
	}
	return m.CreatePOSTransactionFn(ctx, arg)
}

func (m *mockStore) CreatePOSTransactionItem(ctx context.Context, arg repository.CreatePOSTransactionItemParams) error {
	if m.CreatePOSTransactionItemFn == nil {
		return nil
	}
	return m.CreatePOSTransactionItemFn(ctx, arg)
}

func (m *mockStore) CreatePOSPayment(ctx context.Context, arg repository.CreatePOSPaymentParams) error {
	if m.CreatePOSPaymentFn == nil {
		return nil
	}
	return m.CreatePOSPaymentFn(ctx, arg)
}

func (m *mockStore) GetPOSTransactionByReference(ctx context.Context, reference string) (domain.POSTransaction, error) {
	if m.GetPOSTransactionByReferenceFn == nil {
		return domain.POSTransaction{}, nil
	}
	return m.GetPOSTransactionByReferenceFn(ctx, reference)
}

func (m *mockStore) ListPOSTransactionItems(ctx context.Context, transactionID pgtype.UUID) ([]domain.POSTransactionItem, error) {
	if m.ListPOSTransactionItemsFn == nil {
		return nil, nil
	}
	return m.ListPOSTransactionItemsFn(ctx, transactionID)
}

func (m *mockStore) MarkPOSTransactionRefunded(ctx context.Context, id pgtype.UUID) (int64, error) {
	if m.MarkPOSTransactionRefundedFn == nil {
		return 1, nil
	}
	return m.MarkPOSTransactionRefundedFn(ctx, id)
}

func (m *mockStore) CreateShift(ctx context.Context, arg repository.CreateShiftParams) (domain.Shift, error) {
	if m.CreateShiftFn == nil {
		return domain.Shift{}, nil
	}
	return m.CreateShiftFn(ctx, arg)
}

func (m *mockStore) GetOpenShift(ctx context.Context, staffID pgtype.UUID) (domain.Shift, error) {
	if m.GetOpenShiftFn == nil {
		return domain.Shift{}, nil
	}
	return m.GetOpenShiftFn(ctx, staffID)
}

func (m *mockStore) CloseShift(ctx context.Context, arg repository.CloseShiftParams) (domain.Shift, error) {
	if m.CloseShiftFn == nil {
		return domain.Shift{}, nil
	}
	return m.CloseShiftFn(ctx, arg)
}

func (m *mockStore) CreatePaymentProof(ctx context.Context, arg repository.CreatePaymentProofParams) (domain.PaymentProof, error) {
	if m.CreatePaymentProofFn == nil {
		return domain.PaymentProof{}, nil
	}
	return m.CreatePaymentProofFn(ctx, arg)
}

func (m *mockStore) GetPaymentProof(ctx context.Context, id pgtype.UUID) (domain.PaymentProof, error) {
	if m.GetPaymentProofFn == nil {
		return domain.PaymentProof{}, nil
	}
	return m.GetPaymentProofFn(ctx, id)
}

func (m *mockStore) HasPendingProof(ctx context.Context, orderID pgtype.UUID) (bool, error) {
	if m.HasPendingProofFn == nil {
		return false, nil
	}
	return m.HasPendingProofFn(ctx, orderID)
}

func (m *mockStore) ResolvePaymentProof(ctx context.Context, arg repository.ResolvePaymentProofParams) (int64, error) {
	if m.ResolvePaymentProofFn == nil {
		return 1, nil
	}
	return m.ResolvePaymentProofFn(ctx, arg)
}

func (m *mockStore) CreateAuditEntry(ctx context.Context, arg repository.CreateAuditEntryParams) error {
	if m.CreateAuditEntryFn == nil {
		return nil
	}
	return m.CreateAuditEntryFn(ctx, arg)
}

func (m *mockStore) GetActorBySessionToken(ctx context.Context, token string) (domain.Actor, error) {
	if m.GetActorBySessionTokenFn == nil {
		return domain.Actor{}, nil
	}
	return m.GetActorBySessionTokenFn(ctx, token)
}

func (m *mockStore) GetUserPasswordHash(ctx context.Context, userID pgtype.UUID) (string, error) {
	if m.GetUserPasswordHashFn == nil {
		return "", nil
	}
	return m.GetUserPasswordHashFn(ctx, userID)
}

func (m *mockStore) UpdateUserPassword(ctx context.Context, arg repository.UpdateUserPasswordParams) error {
	if m.UpdateUserPasswordFn == nil {
		return nil
	}
	return m.UpdateUserPasswordFn(ctx, arg)
}

func (m *mockStore) CreatePasswordChangeToken(ctx context.Context, arg repository.CreatePasswordChangeTokenParams) (pgtype.UUID, error) {
	if m.CreatePasswordChangeTokenFn == nil {
		return pgtype.UUID{}, nil
	}
	return m.CreatePasswordChangeTokenFn(ctx, arg)
}

func (m *mockStore) GetPasswordChangeToken(ctx context.Context, id pgtype.UUID) (repository.PasswordChangeToken, error) {
	if m.GetPasswordChangeTokenFn == nil {
		return repository.PasswordChangeToken{}, nil
	}
	return m.GetPasswordChangeTokenFn(ctx, id)
}

func (m *mockStore) IncrementTokenAttempts(ctx context.Context, id pgtype.UUID) error {
	if m.IncrementTokenAttemptsFn == nil {
		return nil
	}
	return m.IncrementTokenAttemptsFn(ctx, id)
}

func (m *mockStore) ConsumePasswordChangeToken(ctx context.Context, id pgtype.UUID) (int64, error) {
	if m.ConsumePasswordChangeTokenFn == nil {
		return 1, nil
	}
	return m.ConsumePasswordChangeTokenFn(ctx, id)
}

func (m *mockStore) DailySales(ctx context.Context, arg repository.ReportRangeParams) ([]domain.DailySales, error) {
	if m.DailySalesFn == nil {
		return nil, nil
	}
	return m.DailySalesFn(ctx, arg)
}

func (m *mockStore) TopProducts(ctx context.Context, arg repository.TopProductsParams) ([]domain.TopProduct, error) {
	if m.TopProductsFn == nil {
		return nil, nil
	}
	return m.TopProductsFn(ctx, arg)
}

// Test fixtures shared across service tests.

func newUUID() pgtype.UUID {
	return pgUUID(uuid.New())
}

func customerContext(id uuid.UUID) context.Context {
	return domain.NewContextWithActor(context.Background(), &domain.Actor{
		ID:    id,
		Email: "customer@example.com",
		Role:  domain.RoleCustomer,
	})
}

func staffContext(id uuid.UUID) context.Context {
	return domain.NewContextWithActor(context.Background(), &domain.Actor{
		ID:    id,
		Email: "staff@example.com",
		Role:  domain.RoleStaff,
	})
}

func pgNow() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}
