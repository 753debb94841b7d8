package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// AdjustmentInput is a manual stock correction.
type AdjustmentInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int    `json:"delta" validate:"required,ne=0"`
	Reason    string `json:"reason" validate:"required,max=200"`
}

// InventoryService provides stock adjustments and ledger queries for staff.
type InventoryService interface {
	// Adjust applies a signed manual correction to a product's stock and
	// appends the matching ledger entry. The correction is rejected if it
	// would drive stock negative.
	Adjust(ctx context.Context, input AdjustmentInput) error

	// Movements returns the ledger for one product, newest first.
	Movements(ctx context.Context, productID string) ([]domain.StockMovement, error)

	// LowStock returns active products at or below the threshold.
	LowStock(ctx context.Context, threshold int32) ([]domain.Product, error)
}

type inventoryService struct {
	store     repository.TxStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewInventoryService creates a new InventoryService instance.
func NewInventoryService(store repository.TxStore, publisher events.Publisher, logger *slog.Logger) InventoryService {
	return &inventoryService{store: store, publisher: publisher, logger: logger}
}

func (s *inventoryService) Adjust(ctx context.Context, input AdjustmentInput) error {
	const op = "inventory.adjust"

	actor, err := domain.RequireStaff(ctx, op)
	if err != nil {
		return err
	}

	if input.Delta == 0 {
		return domain.Invalid(op, "delta cannot be zero")
	}
	if input.Reason == "" {
		return domain.Invalid(op, "a reason is required for manual adjustments")
	}

	productID, err := parseUUID(input.ProductID)
	if err != nil {
		return domain.Invalid(op, "invalid product ID")
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, op, "failed to load product")
	}

	err = s.store.WithTx(ctx, func(q repository.Querier) error {
		affected, err := q.AdjustProductStock(ctx, repository.AdjustStockParams{
			ID:    product.ID,
			Delta: int32(input.Delta),
		})
		if err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		if affected == 0 {
			return domain.Errorf(domain.EINVALID, op,
				"adjustment would drive %s stock below zero", product.Name)
		}
		return q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
			ProductID:      product.ID,
			MovementType:   domain.MovementAdjustment,
			QuantityChange: int32(input.Delta),
			PerformedBy:    pgUUID(actor.ID),
			Reason:         input.Reason,
		})
	})
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return derr
		}
		return domain.Internal(err, op, "adjustment failed")
	}

	if err := s.publisher.Publish(events.SubjectStockMovement, events.StockMovement{
		ProductID:      uuidString(product.ID),
		ProductName:    product.Name,
		MovementType:   domain.MovementAdjustment,
		QuantityChange: int32(input.Delta),
		StockAfter:     product.Stock + int32(input.Delta),
	}); err != nil {
		s.logger.Warn("failed to publish stock movement event",
			slog.String("product_id", uuidString(product.ID)),
			slog.String("error", err.Error()))
	}

	s.logger.Info("stock adjusted",
		slog.String("product_id", uuidString(product.ID)),
		slog.Int("delta", input.Delta),
		slog.String("reason", input.Reason))

	return nil
}

func (s *inventoryService) Movements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	const op = "inventory.movements"

	if _, err := domain.RequireStaff(ctx, op); err != nil {
		return nil, err
	}

	id, err := parseUUID(productID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid product ID")
	}

	movements, err := s.store.ListStockMovements(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list movements")
	}
	return movements, nil
}

func (s *inventoryService) LowStock(ctx context.Context, threshold int32) ([]domain.Product, error) {
	const op = "inventory.low_stock"

	if _, err := domain.RequireStaff(ctx, op); err != nil {
		return nil, err
	}

	products, err := s.store.ListLowStockProducts(ctx, threshold)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list low-stock products")
	}
	return products, nil
}
