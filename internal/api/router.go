// Package api assembles the HTTP surface: routing, auth, rate limiting
// and metrics.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/samihq/weekly-reports/pkg/config"
)

// registrar is anything that can mount its routes on a chi router.
type registrar interface {
	Register(r chi.Router)
}

// Handlers collects the domain handlers the router mounts under /api.
type Handlers struct {
	Users    registrar
	Reports  registrar
	Stats    registrar
	Import   registrar
	Settings registrar
	Webhook  registrar
}

// NewRouter builds the full application router.
func NewRouter(cfg *config.Config, handlers Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", health)
	if cfg.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(instrument)
		r.Use(rateLimit(rate.NewLimiter(
			rate.Limit(cfg.Server.RateLimitPerSecond),
			cfg.Server.RateLimitBurst)))

		// The Trello webhook authenticates itself by callback URL, the
		// rest of the API needs the key.
		if handlers.Webhook != nil {
			handlers.Webhook.Register(r)
		}

		r.Group(func(r chi.Router) {
			r.Use(apiKeyAuth(cfg.API.Key))

			for _, h := range []registrar{
				handlers.Users,
				handlers.Reports,
				handlers.Stats,
				handlers.Import,
				handlers.Settings,
			} {
				if h != nil {
					h.Register(r)
				}
			}
		})
	})

	return r
}

// GET /health
func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
