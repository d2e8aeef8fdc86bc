package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what happens to operational audit events.
type Metrics struct {
	Events *prometheus.CounterVec
}

// NewMetrics registers the audit event counter on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Events: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "vkyc_audit_events_total",
			Help: "Operational audit events by result: emitted, dropped (buffer full or closed), persist_failed",
		}, []string{"result"}),
	}
}

func (m *Metrics) inc(result string) {
	if m != nil {
		m.Events.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncEmitted()         { m.inc("emitted") }
func (m *Metrics) IncDropped()         { m.inc("dropped") }
func (m *Metrics) IncPersistFailures() { m.inc("persist_failed") }
