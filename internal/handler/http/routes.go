package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	if len(h.cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Options{
			AllowedOrigins:   h.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader},
			AllowCredentials: true,
		}).Handler)
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/drives/register", h.registerDrives)
		r.Post("/api/drives/availability", h.setDriveAvailability)
		r.Get("/api/drives", h.listDrives)

		r.Post("/api/destinations", h.addDestination)
		r.Delete("/api/destinations/{id}", h.removeDestination)
		r.Get("/api/destinations", h.listDestinationsForClient)
		r.Get("/api/destinations/category/{category}", h.listDestinationsByCategory)

		r.Post("/api/organize", h.organize)
		r.Post("/api/plans/execute", h.executePlans)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
