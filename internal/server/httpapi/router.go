package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the full route tree: the JSON API under /api, operator
// endpoints under /admin, and the static site under /app (counted by the
// hit counter).
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.handleHealthz)

		r.Post("/users", s.handleCreateUser)
		r.Put("/users", s.handleUpdateUser)

		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/revoke", s.handleRevoke)

		r.Post("/chirps", s.handleCreateChirp)
		r.Get("/chirps", s.handleListChirps)
		r.Get("/chirps/{chirpID}", s.handleGetChirp)
		r.Delete("/chirps/{chirpID}", s.handleDeleteChirp)

		r.Post("/polka/webhooks", s.handlePolkaWebhook)
	})

	r.Get("/admin/metrics", s.handleMetrics)
	r.Post("/admin/reset", s.handleReset)

	fileServer := http.StripPrefix("/app", http.FileServer(http.Dir(".")))
	r.Handle("/app/*", s.hits.Middleware(fileServer))
	r.Handle("/app", s.hits.Middleware(fileServer))

	return r
}
