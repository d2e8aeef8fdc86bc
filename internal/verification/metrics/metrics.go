package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	SessionsCreated    prometheus.Counter
	VerdictsRecorded   *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	VersionConflicts   prometheus.Counter
	PublishFailures    prometheus.Counter
	ReadinessChecks    *prometheus.CounterVec
	SubmitDuration     prometheus.Histogram
	CompletionAtSubmit prometheus.Histogram
}

// New registers the verification metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "vkyc_sessions_created_total",
			Help: "Total number of verification sessions opened",
		}),
		VerdictsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vkyc_verdicts_recorded_total",
			Help: "Verdicts recorded by step and outcome",
		}, []string{"step", "verdict"}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vkyc_submissions_total",
			Help: "Submit attempts by outcome",
		}, []string{"outcome"}),
		VersionConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "vkyc_session_version_conflicts_total",
			Help: "Writes rejected because the session changed underneath",
		}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "vkyc_submission_publish_failures_total",
			Help: "Submissions archived but not delivered to the downstream topic",
		}),
		ReadinessChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vkyc_readiness_checks_total",
			Help: "Readiness evaluations by result",
		}, []string{"ready"}),
		SubmitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vkyc_submit_duration_seconds",
			Help:    "Duration of Submit operations (archive, publish, cleanup)",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		CompletionAtSubmit: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vkyc_submission_completion_ratio",
			Help:    "Fraction of steps evaluated when a session is submitted",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 1},
		}),
	}
}

func (m *Metrics) IncSessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

func (m *Metrics) IncVerdict(step, verdict string) {
	if m == nil {
		return
	}
	m.VerdictsRecorded.WithLabelValues(step, verdict).Inc()
}

// IncSubmission records a submit attempt. outcome is "accepted",
// "incomplete" or "error".
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncVersionConflict() {
	if m == nil {
		return
	}
	m.VersionConflicts.Inc()
}

func (m *Metrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func (m *Metrics) IncReadiness(ready bool) {
	if m == nil {
		return
	}
	label := "false"
	if ready {
		label = "true"
	}
	m.ReadinessChecks.WithLabelValues(label).Inc()
}

// ObserveSubmit records the duration of a Submit operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	if m == nil {
		return
	}
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveCompletion(completed, total int) {
	if m == nil || total == 0 {
		return
	}
	m.CompletionAtSubmit.Observe(float64(completed) / float64(total))
}
