package router

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"imageservice/internal/api"
	"imageservice/internal/config"
	"imageservice/internal/database"
	"imageservice/internal/handler"
	"imageservice/internal/service"
	"imageservice/internal/storage"
)

// Server holds the application dependencies and HTTP router.
type Server struct {
	DB     database.Database
	Store  storage.Storage
	Config *config.Config
	Router chi.Router
}

// New creates a new Server with a fully configured chi router.
func New(db database.Database, store storage.Storage, cfg *config.Config) *Server {
	s := &Server{DB: db, Store: store, Config: cfg}

	svc := service.New(db, store, cfg.BackendTimeout)
	h := &handler.Handler{
		Service: svc,
		Store:   store,
		Config:  cfg,
	}

	r := chi.NewRouter()

	// CORS goes first so preflight OPTIONS requests are handled.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check (no auth required).
	r.Get("/health", s.Health)

	// API routes.
	r.Route("/api/v1/images", func(r chi.Router) {
		r.Use(api.AuthMiddleware(cfg.AuthToken))

		r.Post("/", h.UploadImages)
		r.Get("/", h.GetImageByURL)

		// Fixed paths must be registered before the {image_id} wildcard
		// so that /icons is not interpreted as image_id="icons".
		r.Get("/icons", h.ListIcons)
		r.Get("/stats", h.GetStats)
		r.Get("/parents", h.GetImagesByParents)
		r.Get("/parent/{parent_id}", h.GetImagesByParent)
		r.Delete("/parent/{parent_id}", h.DeleteImagesByParent)

		r.Get("/{image_id}", h.GetImageByID)
		r.Delete("/{image_id}", h.DeleteImageByID)
	})

	// Blob delivery endpoint (no auth required).
	r.Get("/files/*", h.ServeFile)

	s.Router = r
	return s
}

// Health returns a simple health-check response.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("health: failed to encode response", "error", err)
	}
}
