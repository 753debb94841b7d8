package pos

import (
	"log/slog"
	"net/http"

	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// RefundHandler processes returns against completed transactions.
type RefundHandler struct {
	pos    service.POSService
	logger *slog.Logger
}

// NewRefundHandler creates a new refund handler.
func NewRefundHandler(pos service.POSService, logger *slog.Logger) *RefundHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefundHandler{pos: pos, logger: logger}
}

type refundLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"required,gt=0"`
	Condition string `json:"condition" validate:"required,oneof=resellable damaged"`
}

type refundRequest struct {
	Lines []refundLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// Create handles POST /api/pos/transactions/{reference}/refund.
func (h *RefundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	input := service.POSRefundInput{Reference: r.PathValue("reference")}
	for _, line := range req.Lines {
		productID, err := handler.ParseUUID(line.ProductID)
		if err != nil {
			handler.Error(w, r, domain.Invalid("pos.refund", "invalid product ID"))
			return
		}
		input.Lines = append(input.Lines, domain.RefundLine{
			ProductID: productID,
			Quantity:  line.Quantity,
			Condition: line.Condition,
		})
	}

	result, err := h.pos.Refund(r.Context(), input)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]any{
		"transaction_id":         handler.UUIDString(result.TransactionID),
		"refund_amount_centavos": result.AmountCentavos,
		"restocked_items":        result.RestockedItems,
	})
}
