package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mvillanueva/tindahan/internal/domain"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// WithRequestLogger injects a request-scoped logger carrying method, path,
// request ID and (when authenticated) the actor ID. Place it after RequestID
// and WithActor in the chain.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := baseLogger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if requestID := domain.RequestIDFromContext(r.Context()); requestID != "" {
				requestLogger = requestLogger.With(slog.String("request_id", requestID))
			}
			if actor := domain.ActorFromContext(r.Context()); actor != nil {
				requestLogger = requestLogger.With(slog.String("actor_id", actor.ID.String()))
			}

			ctx := context.WithValue(r.Context(), loggerContextKey, requestLogger)

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))
			requestLogger.Debug("request completed",
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// GetLogger retrieves the request-scoped logger from the context, falling
// back to slog.Default.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
