package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(h.secure.Handler)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/forgotpassword", h.forgotPassword)
		r.Put("/resetpassword/{resettoken}", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/profile", h.profile)
			r.Put("/password", h.changePassword)
			r.With(h.requireRole(h.adminGate)).Get("/admin", h.admin)
		})
	})

	return router
}
