package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// WebSocket upgrade endpoints. These stay outside the logging chain:
	// wrapping the response writer would hide http.Hijacker from the upgrade.
	router.Get("/sync", h.hub.HandleSync)
	router.Get("/ui", h.hub.HandleDashboard)

	// JSON side-channel for relayctl and the dashboard page
	router.Route("/api", func(r chi.Router) {
		r.Use(h.withTraceID)
		r.Use(h.withLogging)

		r.Get("/status", h.getStatus)
		r.Get("/version", h.getServerVersion)

		// the theme payload carries no secrets, so pushing it needs no token
		r.Get("/theme", h.getTheme)
		r.Post("/theme", h.setTheme)

		r.Group(func(r chi.Router) {
			r.Use(h.withDashboardToken)
			r.Post("/reset", h.reset)
		})
	})

	return router
}
