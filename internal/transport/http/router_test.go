package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"vkyc/internal/platform/metrics"
	authmw "vkyc/pkg/platform/middleware/auth"
	"vkyc/pkg/requestcontext"
	"vkyc/pkg/testutil"
)

type staticValidator struct{}

func (staticValidator) ValidateToken(token string) (*authmw.AgentClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &authmw.AgentClaims{AgentID: "agent-7"}, nil
}

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Get("/kyc/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.AgentID(r.Context())))
	})
}

func newTestRouter(checks map[string]HealthCheck) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: time.Second,
		Validator:      staticValidator{},
		HealthChecks:   checks,
		Modules:        []RouteRegistrar{echoModule{}},
	})
}

func TestHealthAndMetricsAreOpen(t *testing.T) {
	r := newTestRouter(map[string]HealthCheck{"redis": func(context.Context) error { return nil }})

	rec := testutil.DoRequest(r, testutil.NewRequest(http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	health := testutil.UnmarshalResponse[healthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, map[string]string{"redis": "ok"}, health.Checks)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vkyc_http_requests_total")
}

func TestHealthDegraded(t *testing.T) {
	r := newTestRouter(map[string]HealthCheck{"postgres": func(context.Context) error { return errors.New("down") }})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"unavailable"`)
}

func TestModulesRequireAgentToken(t *testing.T) {
	r := newTestRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kyc/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/kyc/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "agent-7", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	rec := testutil.DoRequest(newTestRouter(nil), testutil.NewRequest(http.MethodGet, "/nope", ""))
	testutil.AssertStatusAndError(t, rec, http.StatusNotFound, "not_found")
}
