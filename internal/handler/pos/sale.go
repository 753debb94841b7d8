// Package pos contains the terminal-facing API handlers. Every route in this
// package sits behind the staff role check.
package pos

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// SaleHandler rings up and looks up terminal sales.
type SaleHandler struct {
	pos    service.POSService
	logger *slog.Logger
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(pos service.POSService, logger *slog.Logger) *SaleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleHandler{pos: pos, logger: logger}
}

// Create handles POST /api/pos/sales.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.POSSaleInput
	if err := handler.Decode(r, &input); err != nil {
		handler.Error(w, r, err)
		return
	}

	result, err := h.pos.CreateSale(r.Context(), input)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewPOSTransactionView(result.Transaction, result.Items))
}

// Get handles GET /api/pos/transactions/{reference}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.pos.GetTransaction(r.Context(), r.PathValue("reference"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewPOSTransactionView(result.Transaction, result.Items))
}
