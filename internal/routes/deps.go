// Package routes maps API routes to handlers.
package routes

import (
	"github.com/mvillanueva/tindahan/internal/handler/admin"
	"github.com/mvillanueva/tindahan/internal/handler/pos"
	"github.com/mvillanueva/tindahan/internal/handler/storefront"
)

// StorefrontDeps contains handlers for the customer-facing routes.
type StorefrontDeps struct {
	ProductHandler  *storefront.ProductHandler
	CartHandler     *storefront.CartHandler
	CheckoutHandler *storefront.CheckoutHandler
	OrderHandler    *storefront.OrderHandler
	AccountHandler  *storefront.AccountHandler
}

// POSDeps contains handlers for the terminal routes.
type POSDeps struct {
	SaleHandler   *pos.SaleHandler
	RefundHandler *pos.RefundHandler
	ShiftHandler  *pos.ShiftHandler
}

// AdminDeps contains handlers for the back-office routes.
type AdminDeps struct {
	InventoryHandler    *admin.InventoryHandler
	OrderHandler        *admin.OrderHandler
	PaymentProofHandler *admin.PaymentProofHandler
	ReportHandler       *admin.ReportHandler
}
