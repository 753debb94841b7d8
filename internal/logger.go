package internal

import (
	"io"
	"log/slog"
	"time"
)

// NewLogger builds the process-wide logger shared by the server and the alert
// worker. In prod it emits JSON for the log shipper, with RFC3339Nano
// timestamps so refund and shift-close entries sort unambiguously; in dev it
// stays human-readable text. Every record carries a service attribute so the
// two binaries can share one log stream.
func NewLogger(w io.Writer, env, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch level {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "info":
		lvl.Set(slog.LevelInfo)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		// NewConfig already normalizes LOG_LEVEL; this only triggers when a
		// caller bypasses config.
		slog.Default().Warn("Invalid log level. Using default level: info", slog.String("value", level))
	}

	var h slog.Handler
	switch env {
	case "prod":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.New(h).With(slog.String("service", "tindahan"))
}
