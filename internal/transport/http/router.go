// Package httptransport assembles the HTTP surface: base middleware,
// operator routes, health and metrics, and the surety API.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformmetrics "flightsurety/internal/platform/metrics"
	"flightsurety/pkg/platform/httputil"
	"flightsurety/pkg/platform/middleware/admin"
	"flightsurety/pkg/platform/middleware/metadata"
	request "flightsurety/pkg/platform/middleware/request"
	"flightsurety/pkg/platform/middleware/requesttime"
)

const defaultRequestTimeout = 30 * time.Second

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries router-level settings.
type Config struct {
	AdminToken     string
	RequestTimeout time.Duration
	Logger         *slog.Logger
	// Metrics, when set, records per-route request counts and latency.
	Metrics *platformmetrics.Metrics
	// Health reports readiness of backing stores. Nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter wires the public API, the admin token routes and the
// operational endpoints behind the shared middleware stack.
func NewRouter(cfg Config, api Registrar, tokens Registrar) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(r.Context()); err != nil {
				cfg.Logger.WarnContext(r.Context(), "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", platformmetrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(timeout))
		r.Use(request.ContentTypeJSON)

		if tokens != nil {
			r.Group(func(r chi.Router) {
				r.Use(admin.RequireAdminToken(cfg.AdminToken, cfg.Logger))
				tokens.Register(r)
			})
		}
		api.Register(r)
	})
	return r
}
