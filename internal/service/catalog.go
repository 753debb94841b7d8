package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

// ProductDetail aggregates a product with its variants.
type ProductDetail struct {
	Product  domain.Product
	Variants []domain.ProductVariant
}

// CatalogService provides public product browsing. No authentication required.
type CatalogService interface {
	// ListProducts returns all active products.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProductBySlug returns one product with its variants.
	GetProductBySlug(ctx context.Context, slug string) (*ProductDetail, error)
}

type catalogService struct {
	repo repository.Querier
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(repo repository.Querier) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "catalog.list"

	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}
	return products, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	const op = "catalog.get"

	product, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if !product.Active {
		return nil, domain.ErrProductNotFound
	}

	variants, err := s.repo.ListVariants(ctx, product.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load variants")
	}

	return &ProductDetail{Product: product, Variants: variants}, nil
}
