// Package domain provides core business types and context helpers for Tindahan.
//
// Context helpers centralize request-scoped data access so ownership and role
// checks are explicit at every call site instead of relying on ambient
// session state.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// actorContextKey stores the authenticated actor in context.
	actorContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// Actor roles.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Actor represents the authenticated principal for a request.
// This is a minimal struct for context storage - the full user record can be
// fetched from the database if needed.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string // "customer", "staff", "admin"
}

// IsStaff reports whether the actor may use POS and back-office operations.
func (a *Actor) IsStaff() bool {
	return a != nil && (a.Role == RoleStaff || a.Role == RoleAdmin)
}

// NewContextWithActor returns a new context with the actor attached.
func NewContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext retrieves the actor from context.
// Returns nil if no actor is present.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey).(*Actor)
	return actor
}

// RequireActor retrieves the actor from context or returns EUNAUTHORIZED.
func RequireActor(ctx context.Context, op string) (*Actor, error) {
	actor := ActorFromContext(ctx)
	if actor == nil {
		return nil, Unauthorized(op, "Authentication required")
	}
	return actor, nil
}

// RequireStaff retrieves the actor and verifies a staff or admin role.
func RequireStaff(ctx context.Context, op string) (*Actor, error) {
	actor, err := RequireActor(ctx, op)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, Forbidden(op, "Staff role required")
	}
	return actor, nil
}

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if none is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
