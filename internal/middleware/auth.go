package middleware

import (
	"net/http"

	"github.com/mvillanueva/tindahan/internal/domain"
	"github.com/mvillanueva/tindahan/internal/repository"
)

const sessionCookieName = "tindahan_session"

// WithActor resolves the session cookie to an actor and stores it in context.
// Requests without a valid session continue anonymously; handlers that need
// an actor enforce it themselves.
func WithActor(repo repository.Querier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := repo.GetActorBySessionToken(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithActor(r.Context(), &actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.ActorFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects requests whose actor lacks a staff or admin role.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.ActorFromContext(r.Context())
		if actor == nil {
			respondUnauthorized(w, r)
			return
		}
		if !actor.IsStaff() {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
