package workflow

import (
	"fmt"
	"time"

	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
)

// CreateSession returns a session with every catalog step pending, no notes,
// and every document question unchecked.
func (w *Workflow) CreateSession(id models.SessionID, now time.Time) models.Session {
	defs := w.catalog.Steps()
	steps := make([]models.Step, len(defs))
	for i, d := range defs {
		steps[i] = models.Step{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Status:      models.StatusPending,
		}
	}

	qids := w.catalog.QuestionIDs()
	questions := make([]models.QuestionAnswer, len(qids))
	for i, qid := range qids {
		questions[i] = models.QuestionAnswer{ID: qid}
	}

	return models.Session{
		ID:             id,
		CatalogVersion: w.catalog.Version(),
		Steps:          steps,
		Questions:      questions,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	}
}

// RecordVerdict sets a step's status and evidence.
//
// The verdict must be pass or fail; pending is rejected so that recorded
// evidence is never silently dropped. Recording the same verdict again keeps
// the status, replaces the evidence, and advances LastUpdatedAt.
func (w *Workflow) RecordVerdict(s models.Session, stepID models.StepID, verdict models.Status, evidence models.Evidence, now time.Time) (models.Session, error) {
	if !verdict.IsVerdict() {
		return s, dErrors.New(dErrors.CodeInvalidVerdict,
			fmt.Sprintf("verdict must be pass or fail, got %q", verdict))
	}
	if !w.catalog.HasStep(stepID) {
		return s, unknownStep(stepID)
	}

	out := s.Clone()
	i, ok := out.StepIndex(stepID)
	if !ok {
		// Session predates a catalog change; refuse rather than grow the step set.
		return s, unknownStep(stepID)
	}
	step := &out.Steps[i]
	if !step.Status.CanTransitionTo(verdict) {
		return s, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("step %q cannot move from %s to %s", stepID, step.Status, verdict))
	}

	at := now
	step.Status = verdict
	step.Evidence = evidence.Clone()
	step.EvaluatedAt = &at
	out.LastUpdatedAt = now
	return out, nil
}

// SetNotes replaces the session notes wholesale.
func (w *Workflow) SetNotes(s models.Session, text string, now time.Time) models.Session {
	out := s.Clone()
	out.Notes = text
	out.LastUpdatedAt = now
	return out
}

// SetQuestion ticks or unticks a document question.
func (w *Workflow) SetQuestion(s models.Session, questionID models.QuestionID, checked bool, now time.Time) (models.Session, error) {
	if !w.catalog.HasQuestion(questionID) {
		return s, unknownQuestion(questionID)
	}
	out := s.Clone()
	i, ok := out.QuestionIndex(questionID)
	if !ok {
		return s, unknownQuestion(questionID)
	}
	out.Questions[i].Checked = checked
	out.LastUpdatedAt = now
	return out, nil
}

func unknownStep(id models.StepID) error {
	return dErrors.New(dErrors.CodeUnknownStep, fmt.Sprintf("unknown verification step %q", id))
}

func unknownQuestion(id models.QuestionID) error {
	return dErrors.New(dErrors.CodeUnknownQuestion, fmt.Sprintf("unknown document question %q", id))
}
