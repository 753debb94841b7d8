package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/repository"
)

func orderStore(order domain.Order, items []domain.OrderItem) *mockStore {
	return &mockStore{
		GetOrderFn: func(context.Context, pgtype.UUID) (domain.Order, error) {
			return order, nil
		},
		ListOrderItemsFn: func(context.Context, pgtype.UUID) ([]domain.OrderItem, error) {
			return items, nil
		},
	}
}

func newOrderService(store *mockStore) OrderService {
	return NewOrderService(store, events.NoopPublisher{}, discardLogger())
}

func TestOrderGet_HidesForeignOrdersFromCustomers(t *testing.T) {
	order := domain.Order{ID: newUUID(), CustomerID: newUUID(), Status: domain.OrderStatusPending}
	svc := newOrderService(orderStore(order, nil))

	_, err := svc.GetOrder(customerContext(uuid.New()), uuidString(order.ID))

	if err != domain.ErrOrderNotFound {
		t.Fatalf("GetOrder() error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderGet_StaffSeesAnyOrder(t *testing.T) {
	order := domain.Order{ID: newUUID(), CustomerID: newUUID(), Status: domain.OrderStatusPending}
	svc := newOrderService(orderStore(order, []domain.OrderItem{{OrderID: order.ID}}))

	detail, err := svc.GetOrder(staffContext(uuid.New()), uuidString(order.ID))
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if len(detail.Items) != 1 {
		t.Errorf("items = %d, want 1", len(detail.Items))
	}
}

func TestOrderUpdateStatus_RejectsBackwardsTransition(t *testing.T) {
	order := domain.Order{ID: newUUID(), Status: domain.OrderStatusShipped}
	svc := newOrderService(orderStore(order, nil))

	_, err := svc.UpdateStatus(staffContext(uuid.New()), uuidString(order.ID), domain.OrderStatusProcessing)

	if domain.ErrorCode(err) != domain.ECONFLICT {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.ECONFLICT)
	}
}

func TestOrderUpdateStatus_StaffOnly(t *testing.T) {
	svc := newOrderService(&mockStore{})

	_, err := svc.UpdateStatus(customerContext(uuid.New()), uuid.NewString(), domain.OrderStatusProcessing)

	if domain.ErrorCode(err) != domain.EFORBIDDEN {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EFORBIDDEN)
	}
}

func TestOrderUpdateStatus_CancelGoesThroughCancel(t *testing.T) {
	order := domain.Order{ID: newUUID(), Status: domain.OrderStatusPending}
	svc := newOrderService(orderStore(order, nil))

	_, err := svc.UpdateStatus(staffContext(uuid.New()), uuidString(order.ID), domain.OrderStatusCancelled)

	if domain.ErrorCode(err) != domain.EINVALID {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestOrderCancel_RestoresStock(t *testing.T) {
	customerID := uuid.New()
	order := domain.Order{
		ID:          newUUID(),
		OrderNumber: "ORD-00042",
		CustomerID:  pgUUID(customerID),
		Status:      domain.OrderStatusPending,
	}
	items := []domain.OrderItem{
		{OrderID: order.ID, ProductID: newUUID(), Quantity: 2},
		{OrderID: order.ID, ProductID: newUUID(), Quantity: 1},
	}
	store := orderStore(order, items)

	var restores []repository.StockDeltaParams
	store.RestoreProductStockFn = func(_ context.Context, arg repository.StockDeltaParams) error {
		restores = append(restores, arg)
		return nil
	}
	var movements []repository.CreateStockMovementParams
	store.CreateStockMovementFn = func(_ context.Context, arg repository.CreateStockMovementParams) error {
		movements = append(movements, arg)
		return nil
	}
	svc := newOrderService(store)

	cancelled, err := svc.Cancel(customerContext(customerID), uuidString(order.ID))
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if cancelled.Status != domain.OrderStatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if len(restores) != 2 {
		t.Fatalf("restore calls = %d, want 2", len(restores))
	}
	for _, mv := range movements {
		if mv.MovementType != domain.MovementCancellationRestock {
			t.Errorf("movement type = %q, want %q", mv.MovementType, domain.MovementCancellationRestock)
		}
		if mv.QuantityChange <= 0 {
			t.Errorf("restock quantity change = %d, want positive", mv.QuantityChange)
		}
	}
}

func TestOrderCancel_CustomerCannotCancelProcessing(t *testing.T) {
	customerID := uuid.New()
	order := domain.Order{ID: newUUID(), CustomerID: pgUUID(customerID), Status: domain.OrderStatusProcessing}
	svc := newOrderService(orderStore(order, nil))

	_, err := svc.Cancel(customerContext(customerID), uuidString(order.ID))

	if err != domain.ErrNotCancellable {
		t.Fatalf("Cancel() error = %v, want ErrNotCancellable", err)
	}
}

func TestOrderCancel_StaffCanCancelProcessing(t *testing.T) {
	order := domain.Order{ID: newUUID(), CustomerID: newUUID(), Status: domain.OrderStatusProcessing}
	svc := newOrderService(orderStore(order, nil))

	if _, err := svc.Cancel(staffContext(uuid.New()), uuidString(order.ID)); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
}

func TestOrderCancel_DeliveredIsTerminal(t *testing.T) {
	order := domain.Order{ID: newUUID(), CustomerID: newUUID(), Status: domain.OrderStatusDelivered}
	svc := newOrderService(orderStore(order, nil))

	_, err := svc.Cancel(staffContext(uuid.New()), uuidString(order.ID))

	if err != domain.ErrNotCancellable {
		t.Fatalf("Cancel() error = %v, want ErrNotCancellable", err)
	}
}
