package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// Evidence is the opaque payload a collaborator check attaches to a verdict
// (OCR fields, match score, coordinates). The workflow never inspects it.
type Evidence json.RawMessage

// Clone returns an independent copy of the payload.
func (e Evidence) Clone() Evidence {
	if e == nil {
		return nil
	}
	return Evidence(bytes.Clone(e))
}

// MarshalJSON emits the raw payload, or null when empty.
func (e Evidence) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON stores a copy of the raw payload. JSON null leaves it empty.
func (e *Evidence) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = nil
		return nil
	}
	*e = Evidence(bytes.Clone(data))
	return nil
}

// Step is one checklist entry inside a session.
type Step struct {
	ID          StepID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Evidence    Evidence   `json:"evidence,omitempty"`
	EvaluatedAt *time.Time `json:"evaluated_at,omitempty"`
}

// QuestionAnswer records whether the agent ticked a document question.
type QuestionAnswer struct {
	ID      QuestionID `json:"id"`
	Checked bool       `json:"checked"`
}

// Session is the verification checklist for one agent-customer call.
//
// Invariants:
//   - Steps holds exactly the catalog step IDs, in catalog order
//   - a step never returns to pending once a verdict is recorded
//   - aggregate counts are derived from Steps, never stored
//   - Version increases by one on every persisted write
//   - a sealed session (SealedAt set) accepts no further writes
type Session struct {
	ID             SessionID        `json:"id"`
	CatalogVersion string           `json:"catalog_version"`
	AgentID        string           `json:"agent_id,omitempty"`
	Steps          []Step           `json:"steps"`
	Questions      []QuestionAnswer `json:"questions"`
	Notes          string           `json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
	LastUpdatedAt  time.Time        `json:"last_updated_at"`
	Version        int64            `json:"version"`
	// SealedAt is set by submit before the snapshot is archived.
	SealedAt *time.Time `json:"sealed_at,omitempty"`
}

// Sealed reports whether a submit has claimed the session.
func (s Session) Sealed() bool {
	return s.SealedAt != nil
}

// Clone deep-copies the session so callers can mutate the copy freely.
func (s Session) Clone() Session {
	out := s
	out.Steps = make([]Step, len(s.Steps))
	for i, st := range s.Steps {
		st.Evidence = st.Evidence.Clone()
		if st.EvaluatedAt != nil {
			at := *st.EvaluatedAt
			st.EvaluatedAt = &at
		}
		out.Steps[i] = st
	}
	out.Questions = slices.Clone(s.Questions)
	if s.SealedAt != nil {
		at := *s.SealedAt
		out.SealedAt = &at
	}
	return out
}

// StepIndex returns the position of id in Steps.
func (s *Session) StepIndex(id StepID) (int, bool) {
	for i := range s.Steps {
		if s.Steps[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// QuestionIndex returns the position of id in Questions.
func (s *Session) QuestionIndex(id QuestionID) (int, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
