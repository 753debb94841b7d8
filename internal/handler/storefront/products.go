// Package storefront contains the customer-facing API handlers.
package storefront

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog service.CatalogService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{catalog: catalog, logger: logger}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProductViews(products))
}

// Get handles GET /api/products/{slug}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	view := struct {
		handler.ProductView
		Variants []handler.VariantView `json:"variants"`
	}{
		ProductView: handler.NewProductView(detail.Product),
		Variants:    handler.NewVariantViews(detail.Variants),
	}
	handler.JSON(w, http.StatusOK, view)
}
