package storefront

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// CheckoutHandler turns the customer's cart into an order.
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CheckoutInput
	if err := handler.Decode(r, &input); err != nil {
		handler.Error(w, r, err)
		return
	}

	detail, err := h.checkout.Checkout(r.Context(), input)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewOrderDetailView(detail))
}
