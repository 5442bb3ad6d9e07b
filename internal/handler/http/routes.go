package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/routes", func(r chi.Router) {
			r.Post("/", h.createRoute)
			r.Get("/", h.listRoutes)
			r.Get("/search", h.searchRoutesByName)
			r.Get("/rating-below/{rating}", h.routesRatingLessThan)
			r.Get("/between", h.findRoutesBetweenLocations)
			r.Delete("/rating/{rating}", h.deleteRoutesByRating)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getRoute)
				r.Put("/", h.updateRoute)
				r.Delete("/", h.deleteRoute)
				r.Get("/audit", h.listRouteAudit)
			})
		})

		r.Route("/api/import", func(r chi.Router) {
			r.Post("/", h.importRoutes)
			r.Get("/history", h.listImportHistory)
			r.Get("/history/{id}/file", h.importFileURL)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Post("/role-request", h.requestAdminRole)
			r.Get("/role-requests", h.listAdminRoleRequests)
			r.Post("/role-requests/{id}/approve", h.approveAdminRole)
		})

		r.Get("/api/events", h.subscribeEvents)
	})

	return router
}
