package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// AddItem adds a product (or variant) to the actor's cart, or bumps the
	// quantity if the line already exists.
	AddItem(ctx context.Context, productID, variantID string, quantity int) (*domain.CartSummary, error)

	// UpdateQuantity sets the quantity of a cart line. Zero removes the line.
	UpdateQuantity(ctx context.Context, lineID string, quantity int) (*domain.CartSummary, error)

	// RemoveItem removes a cart line.
	RemoveItem(ctx context.Context, lineID string) (*domain.CartSummary, error)

	// GetSummary returns the cart with items and calculated totals.
	GetSummary(ctx context.Context) (*domain.CartSummary, error)

	// Clear removes all cart lines. Clearing an empty cart is a no-op.
	Clear(ctx context.Context) error
}

type cartService struct {
	repo repository.Querier
}

// NewCartService creates a new CartService instance.
func NewCartService(repo repository.Querier) CartService {
	return &cartService{repo: repo}
}

// AddItem adds a product or variant to the cart after checking it exists and
// capping the quantity at available stock.
func (s *cartService) AddItem(ctx context.Context, productID, variantID string, quantity int) (*domain.CartSummary, error) {
	const op = "cart.add"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	productUUID, err := parseUUID(productID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid product ID")
	}

	product, err := s.repo.GetProduct(ctx, productUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	available := product.Stock
	arg := repository.UpsertCartLineParams{
		CustomerID: pgUUID(actor.ID),
		ProductID:  product.ID,
		Quantity:   int32(quantity),
	}

	if variantID != "" {
		variantUUID, err := parseUUID(variantID)
		if err != nil {
			return nil, domain.Invalid(op, "invalid variant ID")
		}
		variant, err := s.repo.GetVariant(ctx, variantUUID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrVariantNotFound
			}
			return nil, domain.Internal(err, op, "failed to load variant")
		}
		if variant.ProductID != product.ID {
			return nil, domain.Invalid(op, "variant does not belong to product")
		}
		available = variant.Stock
		arg.VariantID = variant.ID
	}

	if int32(quantity) > available {
		return nil, domain.Errorf(domain.EINVALID, op,
			"only %d of %s available", available, product.Name)
	}

	if _, err := s.repo.UpsertCartLine(ctx, arg); err != nil {
		return nil, domain.Internal(err, op, "failed to add cart item")
	}

	return s.GetSummary(ctx)
}

// UpdateQuantity updates the quantity of a cart line.
// If quantity is 0, the line is removed.
func (s *cartService) UpdateQuantity(ctx context.Context, lineID string, quantity int) (*domain.CartSummary, error) {
	const op = "cart.update"

	if quantity == 0 {
		return s.RemoveItem(ctx, lineID)
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	lineUUID, err := parseUUID(lineID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid cart line ID")
	}

	affected, err := s.repo.UpdateCartLineQuantity(ctx, repository.UpdateCartLineQuantityParams{
		CustomerID: pgUUID(actor.ID),
		LineID:     lineUUID,
		Quantity:   int32(quantity),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update cart item")
	}
	if affected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	return s.GetSummary(ctx)
}

// RemoveItem removes a cart line owned by the actor.
func (s *cartService) RemoveItem(ctx context.Context, lineID string) (*domain.CartSummary, error) {
	const op = "cart.remove"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	lineUUID, err := parseUUID(lineID)
	if err != nil {
		return nil, domain.Invalid(op, "invalid cart line ID")
	}

	affected, err := s.repo.RemoveCartLine(ctx, repository.RemoveCartLineParams{
		CustomerID: pgUUID(actor.ID),
		LineID:     lineUUID,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to remove cart item")
	}
	if affected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	return s.GetSummary(ctx)
}

// GetSummary retrieves the actor's cart with calculated totals.
func (s *cartService) GetSummary(ctx context.Context) (*domain.CartSummary, error) {
	const op = "cart.summary"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetCartItems(ctx, pgUUID(actor.ID))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart items")
	}

	summary := &domain.CartSummary{Items: items}
	for _, item := range items {
		summary.SubtotalCentavos += item.LineSubtotal
		summary.ItemCount += int(item.Quantity)
	}
	return summary, nil
}

// Clear removes all cart lines for the actor.
func (s *cartService) Clear(ctx context.Context) error {
	const op = "cart.clear"

	actor, err := domain.RequireActor(ctx, op)
	if err != nil {
		return err
	}

	if err := s.repo.ClearCart(ctx, pgUUID(actor.ID)); err != nil {
		return domain.Internal(err, op, "failed to clear cart")
	}
	return nil
}
