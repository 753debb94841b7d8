package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// OrderService provides order lookup and lifecycle operations.
type OrderService interface {
	// GetOrder returns an order with items. Customers may only see their own
	// orders; staff may see any.
	GetOrder(ctx context.Context, orderID string) (*domain.OrderDetail, error)

	// ListMyOrders returns the actor's orders, newest first.
	ListMyOrders(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus moves an order along the fulfilment state machine.
	// Staff only. Backwards transitions are rejected.
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)

	// Cancel cancels a pending or processing order and restores its stock.
	// Customers may cancel their own pending orders; staff may cancel any
	// order still in a cancellable state.
	Cancel(ctx context.Context, orderID string) (*domain.Order, error)
}

type orderService struct {
	store     repository.TxStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store repository.TxStore, publisher events.Publisher, logger *slog.Logger) OrderService {
	return &orderService{store: store, publisher: publisher, logger: logger}
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	const op = "order.get"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(orderID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid order ID")
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	if !actor.IsStaff() && order.CustomerID != pgUUID(actor.ID) {
		// Hide the order's existence from non-owners.
		return nil, domain.ErrOrderNotFound
	}

	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}

	return &domain.OrderDetail{Order: order, Items: items}, nil
}

func (s *orderService) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "order.list"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrdersByCustomer(ctx, pgUUID(actor.ID))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	const op = "order.update_status"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return nil, err
	}

	if !domain.ValidOrderStatus(status) {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown order status %q", status))
	}
	if status == domain.OrderStatusCancelled {
		return nil, domain.Invalid(op, "use the cancel operation to cancel an order")
	}

	id, err := parseUUID(orderID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid order ID")
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	if !domain.CanTransition(order.Status, status) {
		return nil, domain.Errorf(domain.ECONFLICT, op,
			"cannot move order from %s to %s", order.Status, status)
	}

	if err := s.store.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: status,
	}); err != nil {
		return nil, domain.Internal(err, op, "failed to update order status")
	}

	s.audit(ctx, actor, "order.status_changed", order.ID, map[string]string{
		"order_number": order.OrderNumber,
		"from":         order.Status,
		"to":           status,
	})

	order.Status = status
	return &order, nil
}

// Cancel cancels an order and restores stock for every line item.
// Restores and the status flip commit in one transaction so a crash cannot
// leave the order cancelled with stock still deducted.
func (s *orderService) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	const op = "order.cancel"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	id, err := parseUUID(orderID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid order ID")
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	if !actor.IsStaff() {
		if order.CustomerID != pgUUID(actor.ID) {
			return nil, domain.ErrOrderNotFound
		}
		// Customers may only cancel before fulfilment starts.
		if order.Status != domain.OrderStatusPending {
			return nil, domain.ErrNotCancellable
		}
	}

	if !domain.CanTransition(order.Status, domain.OrderStatusCancelled) {
		return nil, domain.ErrNotCancellable
	}

	items, err := s.store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}

	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		if err := q.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:     order.ID,
			Status: domain.OrderStatusCancelled,
		}); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		for _, item := range items {
			delta := repository.StockDeltaParams{ID: item.ProductID, Quantity: item.Quantity}
			if uuidIsZero(item.VariantID) {
				err = q.RestoreProductStock(ctx, delta)
			} else {
				delta.ID = item.VariantID
				err = q.RestoreVariantStock(ctx, delta)
			}
			if err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}

			if err := q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
				ProductID:      item.ProductID,
				VariantID:      item.VariantID,
				MovementType:   domain.MovementCancellationRestock,
				QuantityChange: item.Quantity,
				ReferenceID:    order.ID,
				PerformedBy:    pgUUID(actor.ID),
			}); err != nil {
				return fmt.Errorf("record stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to cancel order")
	}

	s.audit(ctx, actor, "order.cancelled", order.ID, map[string]string{
		"order_number": order.OrderNumber,
	})

	if err := s.publisher.Publish(events.SubjectOrderCancelled, events.OrderCancelled{
		OrderID:     uuidString(order.ID),
		OrderNumber: order.OrderNumber,
		CancelledBy: actor.ID.String(),
	}); err != nil {
		s.logger.Warn("failed to publish order cancelled event",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
	}

	order.Status = domain.OrderStatusCancelled
	return &order, nil
}

// audit appends an audit entry. Audit failures are logged, never surfaced.
func (s *orderService) audit(ctx context.Context, actor *domain.Actor, action string, entityID pgtype.UUID, detail map[string]string) {
	payload, err := json.Marshal(detail)
	if err != nil {
		payload = []byte("{}")
	}

	if err := s.store.CreateAuditEntry(ctx, repository.CreateAuditEntryParams{
		ActorID:    pgUUID(actor.ID),
		Action:     action,
		EntityType: "order",
		EntityID:   entityID,
		Detail:     payload,
	}); err != nil {
		s.logger.Warn("failed to write audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
