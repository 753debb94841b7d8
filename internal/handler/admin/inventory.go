// Package admin contains the back-office API handlers. Every route in this
// package sits behind the staff role check.
package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

const defaultLowStockThreshold = 5

// InventoryHandler serves stock adjustments and the movement ledger.
type InventoryHandler struct {
	inventory service.InventoryService
	logger    *slog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventory service.InventoryService, logger *slog.Logger) *InventoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryHandler{inventory: inventory, logger: logger}
}

// Adjust handles POST /api/admin/inventory/adjustments.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var input service.AdjustmentInput
	if err := handler.Decode(r, &input); err != nil {
		handler.Error(w, r, err)
		return
	}

	if err := h.inventory.Adjust(r.Context(), input); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]string{"status": "adjusted"})
}

// Movements handles GET /api/admin/inventory/{id}/movements.
func (h *InventoryHandler) Movements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.inventory.Movements(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewMovementViews(movements))
}

// LowStock handles GET /api/admin/inventory/low-stock?threshold=N.
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := defaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			threshold = parsed
		}
	}

	products, err := h.inventory.LowStock(r.Context(), int32(threshold))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProductViews(products))
}
