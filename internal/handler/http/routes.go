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
		r.Post("/api/user/signup", h.signup)
		r.Post("/api/user/login", h.login)
	})

	// per-user routes behind the bearer-token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/user/{username}/flights", h.book)
		r.Get("/api/user/{username}/flights", h.booked)
	})

	return router
}
