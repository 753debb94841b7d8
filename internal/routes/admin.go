package routes

import (
	"github.com/mvillanueva/tindahan/internal/middleware"
	"github.com/mvillanueva/tindahan/internal/router"
)

// RegisterAdminRoutes registers the back-office API. Staff role required.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	staff := r.Group(middleware.RequireStaff)

	// Inventory
	staff.Post("/api/admin/inventory/adjustments", deps.InventoryHandler.Adjust)
	staff.Get("/api/admin/inventory/low-stock", deps.InventoryHandler.LowStock)
	staff.Get("/api/admin/inventory/{id}/movements", deps.InventoryHandler.Movements)

	// Orders
	staff.Get("/api/admin/orders/{id}", deps.OrderHandler.Get)
	staff.Patch("/api/admin/orders/{id}/status", deps.OrderHandler.UpdateStatus)
	staff.Post("/api/admin/orders/{id}/cancel", deps.OrderHandler.Cancel)

	// Payment proofs
	staff.Post("/api/admin/payment-proofs/{id}/review", deps.PaymentProofHandler.Review)

	// Reports
	staff.Get("/api/admin/reports/daily-sales", deps.ReportHandler.DailySales)
	staff.Get("/api/admin/reports/top-products", deps.ReportHandler.TopProducts)
}
