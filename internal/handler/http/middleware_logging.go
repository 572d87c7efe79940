package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
)

// withLogging writes one access-log entry per request. Matched requests are
// logged by route pattern, since the reset path carries the secret. Headers
// and bodies are never logged.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := wrapResponseWriter(w)

		next.ServeHTTP(lw, r)

		event := logger.FromRequest(r).Info()
		if route := routePattern(r); route != "" {
			event = event.Str("route", route)
		} else {
			event = event.Str("path", r.URL.Path)
		}

		event.
			Str("method", r.Method).
			Int("status", lw.Status()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
