package storefront

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// OrderHandler serves the customer's own orders.
type OrderHandler struct {
	orders service.OrderService
	proofs service.PaymentProofService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, proofs service.PaymentProofService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, proofs: proofs, logger: logger}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListMyOrders(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderViews(orders))
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderDetailView(detail))
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewOrderView(*order))
}

type submitProofRequest struct {
	Method          string `json:"method" validate:"required"`
	ReferenceNumber string `json:"reference_number" validate:"required,max=64"`
}

// SubmitProof handles POST /api/orders/{id}/payment-proof.
func (h *OrderHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	proof, err := h.proofs.Submit(r.Context(), service.ProofInput{
		OrderID:         r.PathValue("id"),
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewProofView(proof))
}
