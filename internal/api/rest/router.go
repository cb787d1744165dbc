package rest

import (
	"net/http"
	"strings"

	"notes-client/internal/api/rest/middleware"
	"notes-client/internal/api/swagger"
	"notes-client/internal/config"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter собирает маршруты API заметок и middleware.
// Порядок middleware (снаружи внутрь): Recoverer → CORS → Logging → RateLimit.
func NewRouter(h *Handler, cfg *config.ConfigGateway, logger *zap.Logger) http.Handler {
	if cfg == nil {
		cfg = &config.ConfigGateway{}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(setupCORS(cfg).Handler)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Get("/{query}", h.SearchNotes)
		r.Patch("/{id}", h.UpdateNote)
		r.Delete("/{id}", h.DeleteNote)
	})

	swagger.Mount(r)

	return r
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Requested-With"},
		MaxAge:         maxAge,
	})
}
