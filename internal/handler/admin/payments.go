package admin

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// PaymentProofHandler reviews customer-submitted payment references.
type PaymentProofHandler struct {
	proofs service.PaymentProofService
	logger *slog.Logger
}

// NewPaymentProofHandler creates a new payment proof handler.
func NewPaymentProofHandler(proofs service.PaymentProofService, logger *slog.Logger) *PaymentProofHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentProofHandler{proofs: proofs, logger: logger}
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" validate:"max=500"`
}

// Review handles POST /api/admin/payment-proofs/{id}/review.
func (h *PaymentProofHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	proof, err := h.proofs.Review(r.Context(), service.ReviewInput{
		ProofID: r.PathValue("id"),
		Approve: req.Approve,
		Notes:   req.Notes,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, handler.NewProofView(proof))
}
