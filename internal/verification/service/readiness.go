package service

import (
	"context"
	"strings"

	"vkyc/internal/readiness"
	"vkyc/pkg/platform/audit"
	"vkyc/pkg/requestcontext"
)

// CheckReadiness rates pre-call capability checks. sessionID is optional
// and only used to correlate the audit event.
func (s *Service) CheckReadiness(ctx context.Context, sessionID string, checks []readiness.Check) (readiness.Report, error) {
	report, err := readiness.Evaluate(checks, s.thresholds)
	if err != nil {
		return readiness.Report{}, err
	}

	s.metrics.IncReadiness(report.Ready)
	decision := "not_ready"
	if report.Ready {
		decision = "ready"
	}
	missing := make([]string, len(report.Missing))
	for i, c := range report.Missing {
		missing[i] = string(c)
	}
	s.emitAudit(ctx, audit.Event{
		SessionID: sessionID,
		Action:    string(audit.EventReadinessChecked),
		Decision:  decision,
		Reason:    strings.Join(missing, ","),
	})
	s.logger.DebugContext(ctx, "readiness evaluated",
		"ready", report.Ready,
		"missing", missing,
		"request_id", requestcontext.RequestID(ctx),
	)
	return report, nil
}
