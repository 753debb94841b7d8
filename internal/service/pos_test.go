package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/pricing"
	"github.com/mvillanueva/tindahan/internal/repository"
)

func newPOSService(store *mockStore) POSService {
	return NewPOSService(store, pricing.NewNoTaxCalculator(), events.NoopPublisher{}, discardLogger())
}

func posProduct(name string, price int64) domain.Product {
	return domain.Product{
		ID:                newUUID(),
		Name:              name,
		BasePriceCentavos: price,
		Stock:             50,
		Active:            true,
	}
}

func TestPOSSale_SplitPaymentWithChange(t *testing.T) {
	product := posProduct("Load Card", 50000)
	store := &mockStore{
		GetProductFn: func(context.Context, pgtype.UUID) (domain.Product, error) {
			return product, nil
		},
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return domain.Shift{}, pgx.ErrNoRows
		},
		CreatePOSTransactionFn: func(_ context.Context, arg repository.CreatePOSTransactionParams) (domain.POSTransaction, error) {
			return domain.POSTransaction{
				ID:               newUUID(),
				ReferenceNumber:  arg.ReferenceNumber,
				Status:           domain.POSStatusCompleted,
				SubtotalCentavos: arg.SubtotalCentavos,
				TaxCentavos:      arg.TaxCentavos,
				TotalCentavos:    arg.TotalCentavos,
				ChangeCentavos:   arg.ChangeCentavos,
				CashierID:        arg.CashierID,
			}, nil
		},
	}
	svc := newPOSService(store)

	// 500.00 due, 300.00 gcash + 250.00 cash tendered, 50.00 change.
	result, err := svc.CreateSale(staffContext(uuid.New()), POSSaleInput{
		Lines: []POSSaleLine{{ProductID: uuidString(product.ID), Quantity: 1}},
		Payments: []POSPaymentInput{
			{Tender: domain.TenderGCash, AmountCentavos: 30000, ReferenceNumber: "GC-123"},
			{Tender: domain.TenderCash, AmountCentavos: 25000},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale() error = %v", err)
	}

	if got := result.Transaction.TotalCentavos; got != 50000 {
		t.Errorf("total = %d, want 50000", got)
	}
	if got := result.Transaction.ChangeCentavos; got != 5000 {
		t.Errorf("change = %d, want 5000", got)
	}
}

func TestPOSSale_RejectsShortPayment(t *testing.T) {
	product := posProduct("Load Card", 50000)
	store := &mockStore{
		GetProductFn: func(context.Context, pgtype.UUID) (domain.Product, error) {
			return product, nil
		},
	}
	svc := newPOSService(store)

	_, err := svc.CreateSale(staffContext(uuid.New()), POSSaleInput{
		Lines:    []POSSaleLine{{ProductID: uuidString(product.ID), Quantity: 1}},
		Payments: []POSPaymentInput{{Tender: domain.TenderCash, AmountCentavos: 49999}},
	})

	if err != domain.ErrPaymentShortfall {
		t.Fatalf("CreateSale() error = %v, want ErrPaymentShortfall", err)
	}
}

func TestPOSSale_RejectsNonCashOverpayment(t *testing.T) {
	product := posProduct("Load Card", 50000)
	store := &mockStore{
		GetProductFn: func(context.Context, pgtype.UUID) (domain.Product, error) {
			return product, nil
		},
	}
	svc := newPOSService(store)

	// Change cannot be given back onto a gcash wallet.
	_, err := svc.CreateSale(staffContext(uuid.New()), POSSaleInput{
		Lines:    []POSSaleLine{{ProductID: uuidString(product.ID), Quantity: 1}},
		Payments: []POSPaymentInput{{Tender: domain.TenderGCash, AmountCentavos: 60000, ReferenceNumber: "GC-1"}},
	})

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestPOSSale_RequiresReferenceForDigitalTenders(t *testing.T) {
	svc := newPOSService(&mockStore{})

	_, err := svc.CreateSale(staffContext(uuid.New()), POSSaleInput{
		Lines:    []POSSaleLine{{ProductID: uuid.NewString(), Quantity: 1}},
		Payments: []POSPaymentInput{{Tender: domain.TenderMaya, AmountCentavos: 10000}},
	})

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestPOSSale_InsufficientStockRollsBack(t *testing.T) {
	product := posProduct("Load Card", 50000)
	store := &mockStore{
		GetProductFn: func(context.Context, pgtype.UUID) (domain.Product, error) {
			return product, nil
		},
		GetOpenShiftFn: func(context.Context, pgtype.UUID) (domain.Shift, error) {
			return domain.Shift{}, pgx.ErrNoRows
		},
		DecrementProductStockFn: func(context.Context, repository.StockDeltaParams) (int64, error) {
			return 0, nil
		},
	}
	svc := newPOSService(store)

	_, err := svc.CreateSale(staffContext(uuid.New()), POSSaleInput{
		Lines:    []POSSaleLine{{ProductID: uuidString(product.ID), Quantity: 1}},
		Payments: []POSPaymentInput{{Tender: domain.TenderCash, AmountCentavos: 50000}},
	})

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
	if !store.txRolledBack {
		t.Error("transaction should have been rolled back")
	}
}

func TestPOSSale_StaffOnly(t *testing.T) {
	svc := newPOSService(&mockStore{})

	_, err := svc.CreateSale(customerContext(uuid.New()), POSSaleInput{
		Lines:    []POSSaleLine{{ProductID: uuid.NewString(), Quantity: 1}},
		Payments: []POSPaymentInput{{Tender: domain.TenderCash, AmountCentavos: 100}},
	})

	if domain.ErrorCode(err) != domain.EFORBIDDEN {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EFORBIDDEN)
	}
}

func refundFixture(status string) (*mockStore, pgtype.UUID, pgtype.UUID) {
	txID := newUUID()
	productID := newUUID()
	store := &mockStore{
		GetPOSTransactionByReferenceFn: func(_ context.Context, ref string) (domain.POSTransaction, error) {
			return domain.POSTransaction{
				ID:              txID,
				ReferenceNumber: ref,
				Status:          status,
				TotalCentavos:   30000,
			}, nil
		},
		ListPOSTransactionItemsFn: func(context.Context, pgtype.UUID) ([]domain.POSTransactionItem, error) {
			return []domain.POSTransactionItem{{
				TransactionID:     txID,
				ProductID:         productID,
				ProductName:       "Load Card",
				Quantity:          3,
				UnitPriceCentavos: 10000,
				SubtotalCentavos:  30000,
			}}, nil
		},
	}
	return store, txID, productID
}

func TestPOSRefund_RestocksOnlyResellableItems(t *testing.T) {
	store, _, productID := refundFixture(domain.POSStatusCompleted)

	var restored []repository.StockDeltaParams
	store.RestoreProductStockFn = func(_ context.Context, arg repository.StockDeltaParams) error {
		restored = append(restored, arg)
		return nil
	}
	svc := newPOSService(store)

	result, err := svc.Refund(staffContext(uuid.New()), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 1, Condition: domain.ConditionResellable},
			{ProductID: productID, Quantity: 1, Condition: domain.ConditionDamaged},
		},
	})
	if err != nil {
		t.Fatalf("Refund() error = %v", err)
	}

	if result.AmountCentavos != 20000 {
		t.Errorf("refund amount = %d, want 20000", result.AmountCentavos)
	}
	if result.RestockedItems != 1 {
		t.Errorf("restocked = %d, want 1", result.RestockedItems)
	}
	if len(restored) != 1 || restored[0].Quantity != 1 {
		t.Errorf("restore calls = %v, want one call of quantity 1", restored)
	}
}

func TestPOSRefund_AppendsAuditEntry(t *testing.T) {
	store, txID, productID := refundFixture(domain.POSStatusCompleted)

	var entries []repository.CreateAuditEntryParams
	store.CreateAuditEntryFn = func(_ context.Context, arg repository.CreateAuditEntryParams) error {
		entries = append(entries, arg)
		return nil
	}
	svc := newPOSService(store)

	staffID := uuid.New()
	if _, err := svc.Refund(staffContext(staffID), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 2, Condition: domain.ConditionResellable},
		},
	}); err != nil {
		t.Fatalf("Refund() error = %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Action != "pos.refunded" {
		t.Errorf("action = %q, want %q", entry.Action, "pos.refunded")
	}
	if entry.EntityType != "pos_transaction" {
		t.Errorf("entity type = %q, want %q", entry.EntityType, "pos_transaction")
	}
	if entry.EntityID != txID {
		t.Errorf("entity id = %v, want %v", entry.EntityID, txID)
	}
	if entry.ActorID != pgUUID(staffID) {
		t.Errorf("actor id = %v, want %v", entry.ActorID, pgUUID(staffID))
	}
	detail := string(entry.Detail)
	if !strings.Contains(detail, `"amount_centavos":20000`) ||
		!strings.Contains(detail, `"resellable"`) {
		t.Errorf("detail = %s, want refund amount and line conditions", detail)
	}
}

func TestPOSRefund_AuditFailureRollsBack(t *testing.T) {
	store, _, productID := refundFixture(domain.POSStatusCompleted)
	store.CreateAuditEntryFn = func(context.Context, repository.CreateAuditEntryParams) error {
		return pgx.ErrTxClosed
	}
	svc := newPOSService(store)

	_, err := svc.Refund(staffContext(uuid.New()), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 1, Condition: domain.ConditionResellable},
		},
	})

	if domain.ErrorCode(err) != domain.EINTERNAL {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINTERNAL)
	}
	if !store.txRolledBack {
		t.Error("transaction should have been rolled back")
	}
}

func TestPOSRefund_RejectsExcessQuantity(t *testing.T) {
	store, _, productID := refundFixture(domain.POSStatusCompleted)
	svc := newPOSService(store)

	_, err := svc.Refund(staffContext(uuid.New()), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 4, Condition: domain.ConditionResellable},
		},
	})

	if err != domain.ErrRefundExceedsSold {
		t.Fatalf("Refund() error = %v, want ErrRefundExceedsSold", err)
	}
}

func TestPOSRefund_RejectsAlreadyRefunded(t *testing.T) {
	store, _, productID := refundFixture(domain.POSStatusRefunded)
	svc := newPOSService(store)

	_, err := svc.Refund(staffContext(uuid.New()), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 1, Condition: domain.ConditionResellable},
		},
	})

	if err != domain.ErrAlreadyRefunded {
		t.Fatalf("Refund() error = %v, want ErrAlreadyRefunded", err)
	}
}

func TestPOSRefund_ConcurrentRefundLosesOnConditionalUpdate(t *testing.T) {
	store, _, productID := refundFixture(domain.POSStatusCompleted)
	store.MarkPOSTransactionRefundedFn = func(context.Context, pgtype.UUID) (int64, error) {
		return 0, nil // another refund won the race
	}
	svc := newPOSService(store)

	_, err := svc.Refund(staffContext(uuid.New()), POSRefundInput{
		Reference: "POS-1",
		Lines: []domain.RefundLine{
			{ProductID: productID, Quantity: 1, Condition: domain.ConditionResellable},
		},
	})

	if err != domain.ErrAlreadyRefunded {
		t.Fatalf("Refund() error = %v, want ErrAlreadyRefunded", err)
	}
	if !store.txRolledBack {
		t.Error("transaction should have been rolled back")
	}
}
