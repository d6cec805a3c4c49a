package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"stallhub/internal/logging"
)

// LoggerWithWriter logs each request as one JSON line to w with "ts" in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

// Logger logs request_id, method, path, status, latency in milliseconds, client ip,
// the authenticated user, the trace id and any internal error when present.
func Logger(l *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := statusOf(c, err)
		entry := map[string]any{
			"event":      "http_request",
			"request_id": GetRequestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
			"ip":         c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			entry["level"] = "error"
		case status >= fiber.StatusBadRequest:
			entry["level"] = "warn"
		default:
			entry["level"] = "info"
		}
		if p := GetPrincipal(c); !p.Anonymous() {
			entry["user_id"] = p.UserID
		}
		if e, ok := c.Locals(ErrorLocalKey).(error); ok {
			entry["error"] = e.Error()
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			entry["trace_id"] = sc.TraceID().String()
		}

		l.Log(entry)
		return err
	}
}
