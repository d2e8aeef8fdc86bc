package models

import "time"

// StepResult is the frozen outcome of one step in a submission.
type StepResult struct {
	ID       StepID   `json:"id"`
	Status   Status   `json:"status"`
	Evidence Evidence `json:"evidence,omitempty"`
}

// Submission is the immutable snapshot produced when an agent submits a
// session. It is handed to persistence and downstream compliance systems.
type Submission struct {
	SessionID      SessionID        `json:"session_id"`
	CatalogVersion string           `json:"catalog_version"`
	AgentID        string           `json:"agent_id,omitempty"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	Notes          string           `json:"notes"`
	Steps          []StepResult     `json:"steps"`
	Questions      []QuestionAnswer `json:"questions,omitempty"`
	Progress       Progress         `json:"progress"`
}
