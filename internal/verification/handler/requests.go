package handler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vkyc/internal/readiness"
	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
)

// MaxNotesLength caps agent notes, in characters.
const MaxNotesLength = 4000

// CreateSessionRequest optionally names the session. An empty body or
// empty session_id generates one.
type CreateSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *CreateSessionRequest) Normalize() {
	r.SessionID = strings.TrimSpace(r.SessionID)
}

// RecordVerdictRequest records pass or fail for one step.
type RecordVerdictRequest struct {
	Verdict  string          `json:"verdict"`
	Evidence models.Evidence `json:"evidence,omitempty"`
}

func (r *RecordVerdictRequest) Normalize() {
	r.Verdict = strings.ToLower(strings.TrimSpace(r.Verdict))
}

func (r *RecordVerdictRequest) Validate() error {
	if r.Verdict == "" {
		return dErrors.New(dErrors.CodeValidation, "verdict is required")
	}
	return nil
}

// SetNotesRequest replaces the session notes.
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

func (r *SetNotesRequest) Validate() error {
	if n := utf8.RuneCountInString(r.Notes); n > MaxNotesLength {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("notes must be at most %d characters, got %d", MaxNotesLength, n))
	}
	return nil
}

// SetQuestionRequest ticks or clears a document question.
type SetQuestionRequest struct {
	Checked *bool `json:"checked"`
}

func (r *SetQuestionRequest) Validate() error {
	if r.Checked == nil {
		return dErrors.New(dErrors.CodeValidation, "checked is required")
	}
	return nil
}

// ReadinessRequest carries resolved device probe results.
type ReadinessRequest struct {
	SessionID string            `json:"session_id,omitempty"`
	Checks    []readiness.Check `json:"checks"`
}

func (r *ReadinessRequest) Normalize() {
	r.SessionID = strings.TrimSpace(r.SessionID)
	for i := range r.Checks {
		r.Checks[i].Capability = readiness.Capability(strings.ToLower(strings.TrimSpace(string(r.Checks[i].Capability))))
	}
}

func (r *ReadinessRequest) Validate() error {
	if len(r.Checks) == 0 {
		return dErrors.New(dErrors.CodeValidation, "checks are required")
	}
	return nil
}
