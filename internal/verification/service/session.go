package service

import (
	"context"
	"errors"

	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
	"vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/sentinel"
	"vkyc/pkg/requestcontext"
)

// CreateSession opens a checklist for a new call. An empty rawID generates
// a "KYC-" prefixed identifier.
func (s *Service) CreateSession(ctx context.Context, rawID string) (state SessionState, err error) {
	id := models.NewSessionID()
	if rawID != "" {
		id, err = models.ParseSessionID(rawID)
		if err != nil {
			return SessionState{}, err
		}
	}
	ctx, span := s.startSpan(ctx, "CreateSession", id)
	defer func() { endSpan(span, err) }()

	switch _, subErr := s.submissions.FindByID(ctx, id); {
	case subErr == nil:
		return SessionState{}, errAlreadySubmitted()
	case !errors.Is(subErr, sentinel.ErrNotFound):
		return SessionState{}, dErrors.Wrap(subErr, dErrors.CodeInternal, "failed to look up submission")
	}

	sess := s.workflow.CreateSession(id, requestcontext.Now(ctx))
	sess.AgentID = requestcontext.AgentID(ctx)
	sess.Version = 1

	if err := s.sessions.Create(ctx, sess); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return SessionState{}, dErrors.New(dErrors.CodeConflict, "session already exists")
		}
		return SessionState{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.metrics.IncSessionCreated()
	s.emitAudit(ctx, audit.Event{
		SessionID: string(id),
		Action:    string(audit.EventSessionCreated),
		Subject:   sess.CatalogVersion,
	})
	s.logger.InfoContext(ctx, "kyc session created",
		"session_id", id,
		"agent_id", sess.AgentID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return s.stateOf(sess), nil
}

// GetSession returns the session with derived progress.
func (s *Service) GetSession(ctx context.Context, id models.SessionID) (state SessionState, err error) {
	ctx, span := s.startSpan(ctx, "GetSession", id)
	defer func() { endSpan(span, err) }()

	sess, err := s.load(ctx, id)
	if err != nil {
		return SessionState{}, err
	}
	return s.stateOf(sess), nil
}

// RecordVerdict sets a step to pass or fail. Re-recording overwrites the
// previous verdict and evidence.
func (s *Service) RecordVerdict(ctx context.Context, id models.SessionID, stepID models.StepID, verdict models.Status, evidence models.Evidence) (state SessionState, err error) {
	ctx, span := s.startSpan(ctx, "RecordVerdict", id)
	defer func() { endSpan(span, err) }()

	var previous models.Status
	sess, err := s.mutate(ctx, id, func(current models.Session) (models.Session, error) {
		if idx, ok := current.StepIndex(stepID); ok {
			previous = current.Steps[idx].Status
		}
		return s.workflow.RecordVerdict(current, stepID, verdict, evidence, requestcontext.Now(ctx))
	})
	if err != nil {
		return SessionState{}, err
	}

	s.metrics.IncVerdict(string(stepID), string(verdict))
	s.emitAudit(ctx, audit.Event{
		SessionID: string(id),
		Action:    string(audit.EventVerdictRecorded),
		Subject:   string(stepID),
		Decision:  string(verdict),
		Reason:    "previous=" + string(previous),
	})
	s.logger.InfoContext(ctx, "kyc verdict recorded",
		"session_id", id,
		"step_id", stepID,
		"verdict", verdict,
		"previous", previous,
		"request_id", requestcontext.RequestID(ctx),
	)
	return s.stateOf(sess), nil
}

// SetNotes replaces the agent's free-text notes.
func (s *Service) SetNotes(ctx context.Context, id models.SessionID, text string) (state SessionState, err error) {
	ctx, span := s.startSpan(ctx, "SetNotes", id)
	defer func() { endSpan(span, err) }()

	sess, err := s.mutate(ctx, id, func(current models.Session) (models.Session, error) {
		return s.workflow.SetNotes(current, text, requestcontext.Now(ctx)), nil
	})
	if err != nil {
		return SessionState{}, err
	}

	s.emitAudit(ctx, audit.Event{
		SessionID: string(id),
		Action:    string(audit.EventNotesUpdated),
	})
	return s.stateOf(sess), nil
}

// SetQuestion ticks or clears a document question.
func (s *Service) SetQuestion(ctx context.Context, id models.SessionID, questionID models.QuestionID, checked bool) (state SessionState, err error) {
	ctx, span := s.startSpan(ctx, "SetQuestion", id)
	defer func() { endSpan(span, err) }()

	sess, err := s.mutate(ctx, id, func(current models.Session) (models.Session, error) {
		return s.workflow.SetQuestion(current, questionID, checked, requestcontext.Now(ctx))
	})
	if err != nil {
		return SessionState{}, err
	}

	decision := "unchecked"
	if checked {
		decision = "checked"
	}
	s.emitAudit(ctx, audit.Event{
		SessionID: string(id),
		Action:    string(audit.EventQuestionUpdated),
		Subject:   string(questionID),
		Decision:  decision,
	})
	return s.stateOf(sess), nil
}
