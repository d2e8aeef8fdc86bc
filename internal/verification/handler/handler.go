package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vkyc/internal/readiness"
	"vkyc/internal/verification/models"
	"vkyc/internal/verification/service"
	"vkyc/internal/verification/workflow"
	dErrors "vkyc/pkg/domain-errors"
	"vkyc/pkg/platform/httputil"
	request "vkyc/pkg/platform/middleware/request"
)

const defaultListLimit = 20

// Service defines the verification operations exposed over HTTP.
type Service interface {
	Workflow() *workflow.Workflow
	CreateSession(ctx context.Context, rawID string) (service.SessionState, error)
	GetSession(ctx context.Context, id models.SessionID) (service.SessionState, error)
	RecordVerdict(ctx context.Context, id models.SessionID, stepID models.StepID, verdict models.Status, evidence models.Evidence) (service.SessionState, error)
	SetNotes(ctx context.Context, id models.SessionID, text string) (service.SessionState, error)
	SetQuestion(ctx context.Context, id models.SessionID, questionID models.QuestionID, checked bool) (service.SessionState, error)
	Submit(ctx context.Context, id models.SessionID) (models.Submission, error)
	GetSubmission(ctx context.Context, id models.SessionID) (models.Submission, error)
	ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
	CheckReadiness(ctx context.Context, sessionID string, checks []readiness.Check) (readiness.Report, error)
}

// Handler serves the agent-facing verification endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// New creates a new verification Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the verification routes with the chi router. Callers
// apply authentication around it.
func (h *Handler) Register(r chi.Router) {
	r.Get("/kyc/catalog", h.handleGetCatalog)
	r.Post("/kyc/readiness", h.handleReadiness)

	r.Route("/kyc/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.Get("/progress", h.handleGetProgress)
			r.Put("/steps/{step}", h.handleRecordVerdict)
			r.Put("/notes", h.handleSetNotes)
			r.Put("/questions/{question}", h.handleSetQuestion)
			r.Post("/submit", h.handleSubmit)
		})
	})

	r.Get("/kyc/submissions", h.handleListSubmissions)
	r.Get("/kyc/submissions/{id}", h.handleGetSubmission)
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	wf := h.svc.Workflow()
	c := wf.Catalog()
	httputil.WriteJSON(w, http.StatusOK, CatalogResponse{
		Version:            c.Version(),
		SubmitPolicy:       wf.Policy().Name(),
		Steps:              c.Steps(),
		QuestionCategories: c.QuestionCategories(),
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req := &CreateSessionRequest{}
	if r.ContentLength != 0 {
		var ok bool
		req, ok = httputil.DecodeAndPrepare[CreateSessionRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	state, err := h.svc.CreateSession(ctx, req.SessionID)
	if err != nil {
		h.writeServiceError(ctx, w, "create session", err)
		return
	}
	w.Header().Set("Location", "/kyc/sessions/"+string(state.Session.ID))
	httputil.WriteJSON(w, http.StatusCreated, toSessionResponse(state))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.GetSession(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(state))
}

func (h *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.GetSession(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get progress", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProgressResponse(state))
}

func (h *Handler) handleRecordVerdict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RecordVerdictRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}

	stepID := models.StepID(chi.URLParam(r, "step"))
	state, err := h.svc.RecordVerdict(ctx, id, stepID, models.Status(req.Verdict), req.Evidence)
	if err != nil {
		h.writeServiceError(ctx, w, "record verdict", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(state))
}

func (h *Handler) handleSetNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetNotesRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}

	state, err := h.svc.SetNotes(ctx, id, req.Notes)
	if err != nil {
		h.writeServiceError(ctx, w, "set notes", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(state))
}

func (h *Handler) handleSetQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetQuestionRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}

	questionID := models.QuestionID(chi.URLParam(r, "question"))
	state, err := h.svc.SetQuestion(ctx, id, questionID, *req.Checked)
	if err != nil {
		h.writeServiceError(ctx, w, "set question", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(state))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	sub, err := h.svc.Submit(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "submit session", err)
		return
	}
	w.Header().Set("Location", "/kyc/submissions/"+string(sub.SessionID))
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	sub, err := h.svc.GetSubmission(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get submission", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be an integer"))
			return
		}
		limit = n
	}
	subs, err := h.svc.ListSubmissions(ctx, limit)
	if err != nil {
		h.writeServiceError(ctx, w, "list submissions", err)
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	httputil.WriteJSON(w, http.StatusOK, SubmissionListResponse{Submissions: subs})
}

func (h *Handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ReadinessRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	report, err := h.svc.CheckReadiness(ctx, req.SessionID, req.Checks)
	if err != nil {
		h.writeServiceError(ctx, w, "check readiness", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (models.SessionID, bool) {
	id, err := models.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return id, true
}

// writeServiceError logs at a level matching the error class and writes the
// mapped response.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	requestID := request.GetRequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"error", err,
			"request_id", requestID,
		)
	} else {
		h.logger.WarnContext(ctx, op+" rejected",
			"error", err,
			"request_id", requestID,
		)
	}
	httputil.WriteError(w, err)
}
