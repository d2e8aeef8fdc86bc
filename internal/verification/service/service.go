package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vkyc/internal/readiness"
	"vkyc/internal/verification/metrics"
	"vkyc/internal/verification/models"
	"vkyc/internal/verification/publisher"
	"vkyc/internal/verification/workflow"
	dErrors "vkyc/pkg/domain-errors"
	"vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/sentinel"
	txcontext "vkyc/pkg/platform/tx"
	"vkyc/pkg/requestcontext"
)

// SessionStore persists live sessions with optimistic versioning.
type SessionStore interface {
	Create(ctx context.Context, s models.Session) error
	FindByID(ctx context.Context, id models.SessionID) (models.Session, error)
	// Update succeeds only when the stored version equals expectedVersion.
	Update(ctx context.Context, s models.Session, expectedVersion int64) error
	Delete(ctx context.Context, id models.SessionID) error
}

// SubmissionStore archives submitted snapshots. Save must reject a second
// submission for the same session with sentinel.ErrAlreadyUsed.
type SubmissionStore interface {
	Save(ctx context.Context, sub models.Submission) error
	FindByID(ctx context.Context, id models.SessionID) (models.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]models.Submission, error)
}

// SubmissionPublisher hands archived submissions to downstream systems.
type SubmissionPublisher interface {
	Publish(ctx context.Context, sub models.Submission) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the verification workflow around persistence,
// auditing and the downstream hand-off. The workflow itself stays pure:
// every mutation is load, apply, versioned save.
type Service struct {
	workflow    *workflow.Workflow
	sessions    SessionStore
	submissions SubmissionStore
	publisher   SubmissionPublisher
	tx          txcontext.Runner
	thresholds  readiness.Thresholds

	logger          *slog.Logger
	auditPublisher  AuditPublisher
	complianceAudit AuditPublisher
	metrics         *metrics.Metrics
	tracer          trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditPublisher sets the best-effort publisher for routine events.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithComplianceAuditor sets the fail-closed publisher used for submissions.
func WithComplianceAuditor(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.complianceAudit = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithSubmissionPublisher(p SubmissionPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithTxRunner makes the archive write and compliance audit one unit of work.
func WithTxRunner(r txcontext.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func WithReadinessThresholds(t readiness.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(wf *workflow.Workflow, sessions SessionStore, submissions SubmissionStore, opts ...Option) *Service {
	s := &Service{
		workflow:    wf,
		sessions:    sessions,
		submissions: submissions,
		publisher:   publisher.Noop{},
		tx:          txcontext.NopRunner{},
		thresholds:  readiness.DefaultThresholds,
		logger:      slog.Default(),
		tracer:      otel.Tracer("vkyc/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workflow exposes the configured workflow (catalog and submit policy).
func (s *Service) Workflow() *workflow.Workflow {
	return s.workflow
}

// SessionState is a session plus its derived progress and submit gate.
type SessionState struct {
	Session          models.Session
	Progress         models.Progress
	QuestionProgress models.QuestionProgress
	CanSubmit        bool
	// BlockedReason explains why CanSubmit is false.
	BlockedReason string
}

func (s *Service) stateOf(sess models.Session) SessionState {
	progress := s.workflow.Progress(sess)
	state := SessionState{
		Session:          sess,
		Progress:         progress,
		QuestionProgress: s.workflow.QuestionProgress(sess),
		CanSubmit:        s.workflow.Policy().Allows(sess, progress),
	}
	if !state.CanSubmit {
		state.BlockedReason = s.workflow.Policy().Reason(sess, progress)
	}
	return state
}

// load fetches a live, unsealed session. A session that is sealed or gone
// because it was submitted reports a conflict rather than not found.
func (s *Service) load(ctx context.Context, id models.SessionID) (models.Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if err == nil {
		if sess.Sealed() {
			return models.Session{}, errAlreadySubmitted()
		}
		return sess, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return models.Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	_, subErr := s.submissions.FindByID(ctx, id)
	switch {
	case subErr == nil:
		return models.Session{}, errAlreadySubmitted()
	case errors.Is(subErr, sentinel.ErrNotFound):
		return models.Session{}, dErrors.New(dErrors.CodeNotFound, "session not found")
	default:
		return models.Session{}, dErrors.Wrap(subErr, dErrors.CodeInternal, "failed to look up submission")
	}
}

func errAlreadySubmitted() error {
	return dErrors.New(dErrors.CodeConflict, "session already submitted")
}

// mutate runs one load, apply, versioned-save cycle.
func (s *Service) mutate(ctx context.Context, id models.SessionID, apply func(models.Session) (models.Session, error)) (models.Session, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	next, err := apply(current)
	if err != nil {
		return models.Session{}, err
	}
	next.Version = current.Version + 1
	if err := s.sessions.Update(ctx, next, current.Version); err != nil {
		return models.Session{}, s.translateUpdateErr(err)
	}
	return next, nil
}

func (s *Service) translateUpdateErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		s.metrics.IncVersionConflict()
		return dErrors.Wrap(err, dErrors.CodeConflict, "session was modified concurrently")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
}

func (s *Service) startSpan(ctx context.Context, name string, id models.SessionID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "verification."+name,
		trace.WithAttributes(attribute.String("kyc.session_id", string(id))))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// emitAudit publishes a routine event. Failures are logged, never returned.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	s.fillEvent(ctx, &event)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"session_id", event.SessionID,
			"error", err,
			"request_id", event.RequestID,
		)
	}
}

func (s *Service) fillEvent(ctx context.Context, event *audit.Event) {
	if event.AgentID == "" {
		event.AgentID = requestcontext.AgentID(ctx)
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientDevice = requestcontext.ClientDevice(ctx)
}
