package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vkyc/internal/platform/metrics"
	"vkyc/pkg/platform/httputil"
	authmw "vkyc/pkg/platform/middleware/auth"
	"vkyc/pkg/platform/middleware/metadata"
	request "vkyc/pkg/platform/middleware/request"
	"vkyc/pkg/platform/middleware/requesttime"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// RouteRegistrar mounts a module's routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps collects everything the router needs.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	Validator      authmw.TokenValidator
	AuthFailures   authmw.AuthFailureRecorder
	HealthChecks   map[string]HealthCheck
	Modules        []RouteRegistrar
}

// NewRouter wires the middleware chain, operational endpoints and the
// authenticated module routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.Logger))
	r.Use(request.Logger(d.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if d.Metrics != nil {
		r.Use(d.Metrics.LatencyMiddleware)
	}

	r.Get("/health", healthHandler(d.HealthChecks))
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(d.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.RequireAgent(d.Validator, d.AuthFailures, d.Logger))
		for _, m := range d.Modules {
			m.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "route not found",
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
