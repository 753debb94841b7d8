package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/pricing"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// CheckoutInput is what the customer submits to place an order.
type CheckoutInput struct {
	AddressID     string `json:"address_id" validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	CustomerNotes string `json:"customer_notes" validate:"max=500"`
}

// CheckoutService turns a cart into an order.
type CheckoutService interface {
	// Checkout creates an order from the actor's cart. Order and item rows,
	// stock decrements, ledger entries and the cart clear all commit in one
	// transaction; any failure rolls back everything.
	Checkout(ctx context.Context, input CheckoutInput) (*domain.OrderDetail, error)
}

type checkoutService struct {
	store     repository.TxStore
	calc      pricing.Calculator
	publisher events.Publisher
	logger    *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(store repository.TxStore, calc pricing.Calculator, publisher events.Publisher, logger *slog.Logger) CheckoutService {
	return &checkoutService{store: store, calc: calc, publisher: publisher, logger: logger}
}

// Checkout places an order from the actor's cart.
//
// Prices and totals are computed from the current catalog rows loaded inside
// the same request, never from client input. Stock decrements are conditional
// so two concurrent checkouts can never oversell: the loser's UPDATE matches
// zero rows and the whole transaction rolls back.
func (s *checkoutService) Checkout(ctx context.Context, input CheckoutInput) (*domain.OrderDetail, error) {
	const op = "checkout"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	addressID, err := parseUUID(input.AddressID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid address ID")
	}

	address, err := s.store.GetAddress(ctx, addressID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "address", input.AddressID)
		}
		return nil, domain.Internal(err, op, "failed to load address")
	}
	if address.CustomerID != pgUUID(actor.ID) {
		return nil, domain.Forbidden(op, "Address belongs to another customer")
	}

	items, err := s.store.GetCartItems(ctx, pgUUID(actor.ID))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Upfront validation names the offending line and what is left on the
	// shelf. The conditional decrement inside the transaction remains the
	// guard against concurrent checkouts racing past this check.
	for _, item := range items {
		if item.Quantity > item.AvailableStock {
			return nil, domain.Errorf(domain.EINVALID, op,
				"insufficient stock for %s: only %d available", item.ProductName, item.AvailableStock)
		}
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{
			ProductID:         item.ProductID,
			Description:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCentavos: item.UnitPriceCentavos,
		})
	}
	quote := s.calc.Quote(lines)

	snapshot := domain.AddressSnapshot{
		FullName:     address.FullName,
		Phone:        address.Phone,
		AddressLine1: address.AddressLine1,
		AddressLine2: address.AddressLine2,
		City:         address.City,
		Province:     address.Province,
		PostalCode:   address.PostalCode,
	}

	var detail *domain.OrderDetail
	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		orderNumber, err := q.NextOrderNumber(ctx)
		if err != nil {
			// Sequence unavailable; fall back to a timestamp-based number so
			// checkout stays available.
			orderNumber = fmt.Sprintf("ORD-%d", time.Now().UnixNano())
			s.logger.Warn("order number sequence failed, using fallback",
				slog.String("order_number", orderNumber),
				slog.String("error", err.Error()))
		}

		order, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			OrderNumber:      orderNumber,
			CustomerID:       pgUUID(actor.ID),
			Status:           domain.OrderStatusPending,
			PaymentStatus:    domain.PaymentStatusUnpaid,
			PaymentMethod:    input.PaymentMethod,
			SubtotalCentavos: quote.SubtotalCentavos,
			TaxCentavos:      quote.TaxCentavos,
			TotalCentavos:    quote.TotalCentavos,
			ShippingAddress:  snapshot,
			CustomerNotes:    input.CustomerNotes,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			name := item.ProductName
			if item.VariantName != "" {
				name = item.ProductName + " - " + item.VariantName
			}

			orderItem, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:           order.ID,
				ProductID:         item.ProductID,
				VariantID:         item.VariantID,
				ProductName:       name,
				Quantity:          item.Quantity,
				UnitPriceCentavos: item.UnitPriceCentavos,
				SubtotalCentavos:  item.LineSubtotal,
			})
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			orderItems = append(orderItems, orderItem)

			delta := repository.StockDeltaParams{ID: item.ProductID, Quantity: item.Quantity}
			var affected int64
			if uuidIsZero(item.VariantID) {
				affected, err = q.DecrementProductStock(ctx, delta)
			} else {
				delta.ID = item.VariantID
				affected, err = q.DecrementVariantStock(ctx, delta)
			}
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if affected == 0 {
				return domain.Errorf(domain.EINVALID, op,
					"insufficient stock for %s", item.ProductName)
			}

			if err := q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
				ProductID:      item.ProductID,
				VariantID:      item.VariantID,
				MovementType:   domain.MovementSale,
				QuantityChange: -item.Quantity,
				ReferenceID:    order.ID,
				PerformedBy:    pgUUID(actor.ID),
			}); err != nil {
				return fmt.Errorf("record stock movement: %w", err)
			}
		}

		if err := q.ClearCart(ctx, pgUUID(actor.ID)); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		detail = &domain.OrderDetail{Order: order, Items: orderItems}
		return nil
	})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		return nil, domain.Internal(err, op, "checkout failed")
	}

	s.publish(detail)

	s.logger.Info("order placed",
		slog.String("order_number", detail.Order.OrderNumber),
		slog.String("customer_id", actor.ID.String()),
		slog.Int64("total_centavos", detail.Order.TotalCentavos))

	return detail, nil
}

// publish emits the order-created event. Failures are logged, never returned.
func (s *checkoutService) publish(detail *domain.OrderDetail) {
	itemCount := 0
	for _, item := range detail.Items {
		itemCount += int(item.Quantity)
	}

	err := s.publisher.Publish(events.SubjectOrderCreated, events.OrderCreated{
		OrderID:       uuidString(detail.Order.ID),
		OrderNumber:   detail.Order.OrderNumber,
		CustomerID:    uuidString(detail.Order.CustomerID),
		TotalCentavos: detail.Order.TotalCentavos,
		ItemCount:     itemCount,
		CreatedAt:     detail.Order.CreatedAt.Time,
	})
	if err != nil {
		s.logger.Warn("failed to publish order created event",
			slog.String("order_number", detail.Order.OrderNumber),
			slog.String("error", err.Error()))
	}
}
