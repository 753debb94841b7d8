package pos

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// ShiftHandler opens, closes and reads the cashier's shift.
type ShiftHandler struct {
	shifts service.ShiftService
	logger *slog.Logger
}

// NewShiftHandler creates a new shift handler.
func NewShiftHandler(shifts service.ShiftService, logger *slog.Logger) *ShiftHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShiftHandler{shifts: shifts, logger: logger}
}

type openShiftRequest struct {
	OpeningCashCentavos int64 `json:"opening_cash_centavos" validate:"gte=0"`
}

type closeShiftRequest struct {
	ClosingCashCentavos  int64 `json:"closing_cash_centavos" validate:"gte=0"`
	ExpectedCashCentavos int64 `json:"expected_cash_centavos" validate:"gte=0"`
}

// Open handles POST /api/pos/shifts.
func (h *ShiftHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openShiftRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	shift, err := h.shifts.Open(r.Context(), req.OpeningCashCentavos)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, handler.NewShiftView(shift))
}

// Close handles POST /api/pos/shifts/close.
func (h *ShiftHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req closeShiftRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	shift, err := h.shifts.Close(r.Context(), req.ClosingCashCentavos, req.ExpectedCashCentavos)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewShiftView(shift))
}

// Current handles GET /api/pos/shifts/current.
func (h *ShiftHandler) Current(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shifts.Current(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewShiftView(shift))
}
