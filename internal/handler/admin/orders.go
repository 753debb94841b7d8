package admin

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// OrderHandler moves orders through fulfilment.
type OrderHandler struct {
	orders service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new admin order handler.
func NewOrderHandler(orders service.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, logger: logger}
}

// Get handles GET /api/admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderDetailView(detail))
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderView(*order))
}

// Cancel handles POST /api/admin/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderView(*order))
}
