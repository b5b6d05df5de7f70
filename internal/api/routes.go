// internal/api/routes.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes configura e retorna o roteador Chi
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// CORS: permite que o frontend (endereço configurável)
	// se comunique com o backend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Tempo de cache da preflight
	}))

	// Endpoints públicos (sem autenticação)
	r.Get("/", h.handleRoot)
	r.Post("/token", h.handleLogin)
	r.Post("/users", h.handleRegisterUser)

	// Endpoints protegidos (requerem autenticação)
	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Get("/users/me", h.handleMe)

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", h.handleUploadFile)
			r.Get("/", h.handleListFiles)
			r.Get("/{fileID}/download", h.handleDownloadFile)
			r.Delete("/{fileID}", h.handleDeleteFile)
		})
	})

	return r
}
