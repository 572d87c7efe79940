package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// withMetrics observes every request by its route pattern, so that path
// parameters such as reset secrets never become label values.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		mw := wrapResponseWriter(w)

		next.ServeHTTP(mw, r)

		route := routePattern(r)
		if route == "" {
			route = "unmatched"
		}
		h.metrics.ObserveHTTPRequest(r.Method, route, mw.Status(), time.Since(start))
	})
}

// routePattern returns the chi pattern the request was routed by, or an empty
// string before routing or when nothing matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
