package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/v1/ping", h.ping)
		r.Get("/v1/version", h.getServerVersion)
		r.Post("/v1/register", h.register)
		r.Post("/v1/login", h.login)
	})
	router.Get("/v1/media/{name}", h.getMedia)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// the websocket upgrade needs the raw connection, so no gzip here
		r.Get("/v1/stream", h.stream)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Get("/v1/stories", h.listStories)
			r.Post("/v1/stories", h.createStory)
			r.Get("/v1/stories/{id}", h.getStory)
			r.Delete("/v1/stories/{id}", h.deleteStory)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
