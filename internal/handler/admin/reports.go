package admin

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/handler"
	"github.com/mvillanueva/tindahan/internal/service"
)

// ReportHandler serves the sales reports.
type ReportHandler struct {
	reports service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports service.ReportService, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{reports: reports, logger: logger}
}

// parseRange reads from/to query parameters in YYYY-MM-DD form, defaulting to
// the last 30 days.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("report.range", "from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("report.range", "to must be YYYY-MM-DD")
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}

type dailySalesView struct {
	Day              string `json:"day"`
	OrderCount       int64  `json:"order_count"`
	POSCount         int64  `json:"pos_count"`
	GrossCentavos    int64  `json:"gross_centavos"`
	TaxCentavos      int64  `json:"tax_centavos"`
	RefundedCentavos int64  `json:"refunded_centavos"`
}

// DailySales handles GET /api/admin/reports/daily-sales?from=&to=.
func (h *ReportHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	rows, err := h.reports.DailySales(r.Context(), from, to)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	views := make([]dailySalesView, 0, len(rows))
	for _, row := range rows {
		views = append(views, dailySalesView{
			Day:              row.Day.Format("2006-01-02"),
			OrderCount:       row.OrderCount,
			POSCount:         row.POSCount,
			GrossCentavos:    row.GrossCentavos,
			TaxCentavos:      row.TaxCentavos,
			RefundedCentavos: row.RefundedCentavos,
		})
	}
	handler.JSON(w, http.StatusOK, views)
}

type topProductView struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	QuantitySold  int64  `json:"quantity_sold"`
	GrossCentavos int64  `json:"gross_centavos"`
}

// TopProducts handles GET /api/admin/reports/top-products?from=&to=&limit=.
func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	rows, err := h.reports.TopProducts(r.Context(), from, to, limit)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	views := make([]topProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, topProductView{
			ProductID:     handler.UUIDString(row.ProductID),
			ProductName:   row.ProductName,
			QuantitySold:  row.QuantitySold,
			GrossCentavos: row.GrossCentavos,
		})
	}
	handler.JSON(w, http.StatusOK, views)
}
