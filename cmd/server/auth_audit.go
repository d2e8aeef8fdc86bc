package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vkyc/pkg/platform/audit"
	request "vkyc/pkg/platform/middleware/request"
	"vkyc/pkg/requestcontext"
)

type auditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// authFailureAuditor writes rejected requests to the security trail.
type authFailureAuditor struct {
	emitter auditEmitter
	logger  *slog.Logger
}

func (a authFailureAuditor) RecordAuthFailure(r *http.Request, reason string) {
	ctx := r.Context()
	event := audit.Event{
		Category:     audit.CategorySecurity,
		Timestamp:    time.Now().UTC(),
		Action:       string(audit.EventAuthFailed),
		Subject:      r.Method + " " + r.URL.Path,
		Decision:     "denied",
		Reason:       reason,
		RequestID:    request.GetRequestID(ctx),
		ClientDevice: requestcontext.ClientDevice(ctx),
	}
	if err := a.emitter.Emit(ctx, event); err != nil {
		a.logger.WarnContext(ctx, "failed to record auth failure",
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
