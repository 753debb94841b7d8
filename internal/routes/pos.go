package routes

import (
	"github.com/mvillanueva/tindahan/internal/middleware"
	"github.com/mvillanueva/tindahan/internal/router"
)

// RegisterPOSRoutes registers the terminal API. Staff role required.
func RegisterPOSRoutes(r *router.Router, deps POSDeps) {
	staff := r.Group(middleware.RequireStaff)

	staff.Post("/api/pos/sales", deps.SaleHandler.Create)
	staff.Get("/api/pos/transactions/{reference}", deps.SaleHandler.Get)
	staff.Post("/api/pos/transactions/{reference}/refund", deps.RefundHandler.Create)

	staff.Post("/api/pos/shifts", deps.ShiftHandler.Open)
	staff.Post("/api/pos/shifts/close", deps.ShiftHandler.Close)
	staff.Get("/api/pos/shifts/current", deps.ShiftHandler.Current)
}
