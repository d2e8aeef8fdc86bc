package workflow

import (
	"time"

	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
)

// Progress counts step statuses. Total is the catalog size.
func (w *Workflow) Progress(s models.Session) models.Progress {
	p := models.Progress{Total: w.catalog.Size()}
	for _, st := range s.Steps {
		switch st.Status {
		case models.StatusPass:
			p.Passed++
		case models.StatusFail:
			p.Failed++
		}
	}
	p.Completed = p.Passed + p.Failed
	p.Pending = p.Total - p.Completed
	return p
}

// QuestionProgress counts ticked document questions.
func (w *Workflow) QuestionProgress(s models.Session) models.QuestionProgress {
	qp := models.QuestionProgress{Total: w.catalog.QuestionCount()}
	for _, q := range s.Questions {
		if q.Checked {
			qp.Checked++
		}
	}
	return qp
}

// CanSubmit applies the configured submit policy.
func (w *Workflow) CanSubmit(s models.Session) bool {
	return w.policy.Allows(s, w.Progress(s))
}

// Submit freezes the session into a Submission snapshot. It fails with
// CodeIncompleteWorkflow when the policy does not allow submission.
func (w *Workflow) Submit(s models.Session, now time.Time) (models.Submission, error) {
	progress := w.Progress(s)
	if !w.policy.Allows(s, progress) {
		return models.Submission{}, dErrors.New(dErrors.CodeIncompleteWorkflow,
			"session cannot be submitted: "+w.policy.Reason(s, progress))
	}

	steps := make([]models.StepResult, len(s.Steps))
	for i, st := range s.Steps {
		steps[i] = models.StepResult{
			ID:       st.ID,
			Status:   st.Status,
			Evidence: st.Evidence.Clone(),
		}
	}
	questions := make([]models.QuestionAnswer, len(s.Questions))
	copy(questions, s.Questions)

	return models.Submission{
		SessionID:      s.ID,
		CatalogVersion: s.CatalogVersion,
		AgentID:        s.AgentID,
		SubmittedAt:    now,
		Notes:          s.Notes,
		Steps:          steps,
		Questions:      questions,
		Progress:       progress,
	}, nil
}
