package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/courseplatform/recommendation-service/internal/config"
	"github.com/courseplatform/recommendation-service/internal/metrics"
	"github.com/courseplatform/recommendation-service/internal/transport/http/handlers"
	appmw "github.com/courseplatform/recommendation-service/internal/transport/http/middleware"
)

func New(
	h *handlers.RecommendationsHandler,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(appmw.CORS)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)
	r.Use(metrics.HTTPMiddleware)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/health", z.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/recommendations", func(r chi.Router) {
		r.Get("/{userID}", h.Get)
		r.Post("/{userID}/recalculate", h.Recalculate)
		r.Get("/{userID}/preferences", h.Preferences)
		r.Post("/sync-courses", h.SyncCourses)
	})

	return r
}
