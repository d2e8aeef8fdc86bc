// Package compliance writes regulatory audit events synchronously. A failed
// write is returned to the caller, which must abandon the operation.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "vkyc/pkg/platform/audit"
	"vkyc/pkg/requestcontext"
)

var (
	errNoSession = errors.New("compliance event requires SessionID")
	errNoAction  = errors.New("compliance event requires Action")
)

// Publisher emits compliance events fail-closed.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stores the event in the caller's context, so it joins any
// transaction carried there.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	switch {
	case event.SessionID == "":
		return errNoSession
	case event.Action == "":
		return errNoAction
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	event.Category = audit.CategoryCompliance

	start := time.Now()
	err := p.store.Append(ctx, event)
	p.metrics.observe(start, err)
	if err != nil {
		p.logger.ErrorContext(ctx, "compliance audit write failed",
			"action", event.Action,
			"session_id", event.SessionID,
			"request_id", event.RequestID,
			"error", err,
		)
		return fmt.Errorf("compliance audit: %w", err)
	}
	return nil
}

// Metrics tracks compliance writes.
type Metrics struct {
	Writes        *prometheus.CounterVec
	WriteDuration prometheus.Histogram
}

// NewMetrics registers compliance audit metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Writes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vkyc_audit_compliance_writes_total",
			Help: "Compliance audit writes by outcome",
		}, []string{"outcome"}),
		WriteDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vkyc_audit_compliance_write_duration_seconds",
			Help:    "Duration of synchronous compliance audit writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.WriteDuration.Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Writes.WithLabelValues(outcome).Inc()
}
