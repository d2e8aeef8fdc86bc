package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
	"vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/sentinel"
	"vkyc/pkg/requestcontext"
)

const maxListLimit = 100

// Submit freezes the session into an immutable snapshot and archives it.
//
// The session is first sealed with a versioned write, so any write that
// raced the snapshot fails with a conflict and later writes see the seal.
// The archive write and the compliance audit event then commit together;
// if either fails nothing is archived and the seal is lifted. The
// downstream publish and the live-session cleanup happen afterwards and
// only log on failure, since the archive is the system of record.
func (s *Service) Submit(ctx context.Context, id models.SessionID) (sub models.Submission, err error) {
	start := time.Now()
	defer s.metrics.ObserveSubmit(start)
	ctx, span := s.startSpan(ctx, "Submit", id)
	defer func() { endSpan(span, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		s.metrics.IncSubmission("error")
		return models.Submission{}, err
	}

	sub, err = s.workflow.Submit(current, requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncSubmission("incomplete")
		return models.Submission{}, err
	}
	if sub.AgentID == "" {
		sub.AgentID = requestcontext.AgentID(ctx)
	}

	sealed, err := s.seal(ctx, current)
	if err != nil {
		s.metrics.IncSubmission("error")
		return models.Submission{}, err
	}

	archived := false
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.submissions.Save(ctx, sub); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				archived = true
				return errAlreadySubmitted()
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to archive submission")
		}
		if s.complianceAudit == nil {
			return nil
		}
		event := audit.Event{
			SessionID: string(sub.SessionID),
			Action:    string(audit.EventSessionSubmitted),
			Subject:   sub.CatalogVersion,
			Decision:  fmt.Sprintf("passed=%d failed=%d pending=%d", sub.Progress.Passed, sub.Progress.Failed, sub.Progress.Pending),
			Reason:    s.workflow.Policy().Name(),
		}
		s.fillEvent(ctx, &event)
		if err := s.complianceAudit.Emit(ctx, event); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record submission audit")
		}
		return nil
	})
	if err != nil {
		if !archived {
			s.unseal(ctx, sealed)
		}
		s.metrics.IncSubmission("error")
		return models.Submission{}, err
	}

	requestID := requestcontext.RequestID(ctx)
	if err := s.publisher.Publish(ctx, sub); err != nil {
		s.metrics.IncPublishFailure()
		s.logger.ErrorContext(ctx, "failed to publish submission",
			"session_id", id,
			"error", err,
			"request_id", requestID,
		)
	}
	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to remove submitted session",
			"session_id", id,
			"error", err,
			"request_id", requestID,
		)
	}

	s.metrics.IncSubmission("accepted")
	s.metrics.ObserveCompletion(sub.Progress.Completed, sub.Progress.Total)
	s.logger.InfoContext(ctx, "kyc session submitted",
		"session_id", id,
		"completed", sub.Progress.Completed,
		"total", sub.Progress.Total,
		"request_id", requestID,
	)
	return sub, nil
}

// seal marks current as claimed by submit. It fails with a conflict when
// the session changed since it was loaded.
func (s *Service) seal(ctx context.Context, current models.Session) (models.Session, error) {
	sealed := current.Clone()
	at := requestcontext.Now(ctx)
	sealed.SealedAt = &at
	sealed.Version = current.Version + 1
	if err := s.sessions.Update(ctx, sealed, current.Version); err != nil {
		return models.Session{}, s.translateUpdateErr(err)
	}
	return sealed, nil
}

// unseal reopens a session whose archive write failed so the agent can
// retry. A failure here leaves the session sealed and is only logged.
func (s *Service) unseal(ctx context.Context, sealed models.Session) {
	reopened := sealed.Clone()
	reopened.SealedAt = nil
	reopened.Version = sealed.Version + 1
	if err := s.sessions.Update(ctx, reopened, sealed.Version); err != nil {
		s.logger.ErrorContext(ctx, "failed to reopen session after aborted submit",
			"session_id", sealed.ID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// GetSubmission returns an archived snapshot.
func (s *Service) GetSubmission(ctx context.Context, id models.SessionID) (sub models.Submission, err error) {
	ctx, span := s.startSpan(ctx, "GetSubmission", id)
	defer func() { endSpan(span, err) }()

	sub, err = s.submissions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
		}
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load submission")
	}
	return sub, nil
}

// ListSubmissions returns the most recent submissions, newest first.
func (s *Service) ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 || limit > maxListLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
	}
	subs, err := s.submissions.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}
	return subs, nil
}
