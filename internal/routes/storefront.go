package routes

import (
	"github.com/mvillanueva/tindahan/internal/middleware"
	"github.com/mvillanueva/tindahan/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing API. The catalog is
// public; cart, checkout, orders and account require a session.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Public catalog
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/{slug}", deps.ProductHandler.Get)

	authed := r.Group(middleware.RequireAuth)

	// Cart
	authed.Get("/api/cart", deps.CartHandler.Get)
	authed.Post("/api/cart/items", deps.CartHandler.AddItem)
	authed.Patch("/api/cart/items/{id}", deps.CartHandler.UpdateItem)
	authed.Delete("/api/cart/items/{id}", deps.CartHandler.RemoveItem)
	authed.Delete("/api/cart", deps.CartHandler.Clear)

	// Checkout and orders
	authed.Post("/api/checkout", deps.CheckoutHandler.Create)
	authed.Get("/api/orders", deps.OrderHandler.List)
	authed.Get("/api/orders/{id}", deps.OrderHandler.Get)
	authed.Post("/api/orders/{id}/cancel", deps.OrderHandler.Cancel)
	authed.Post("/api/orders/{id}/payment-proof", deps.OrderHandler.SubmitProof)

	// Account
	authed.Post("/api/account/password-change", deps.AccountHandler.RequestPasswordChange)
	authed.Post("/api/account/password-change/confirm", deps.AccountHandler.ConfirmPasswordChange)
}
