package handler

import (
	"time"

	"vkyc/internal/verification/catalog"
	"vkyc/internal/verification/models"
	"vkyc/internal/verification/service"
)

// SessionResponse is a session with its derived progress and submit gate.
type SessionResponse struct {
	SessionID        string                  `json:"session_id"`
	CatalogVersion   string                  `json:"catalog_version"`
	AgentID          string                  `json:"agent_id,omitempty"`
	Steps            []models.Step           `json:"steps"`
	Questions        []models.QuestionAnswer `json:"questions"`
	Notes            string                  `json:"notes"`
	CreatedAt        time.Time               `json:"created_at"`
	LastUpdatedAt    time.Time               `json:"last_updated_at"`
	Version          int64                   `json:"version"`
	Progress         models.Progress         `json:"progress"`
	QuestionProgress models.QuestionProgress `json:"question_progress"`
	CanSubmit        bool                    `json:"can_submit"`
	BlockedReason    string                  `json:"blocked_reason,omitempty"`
}

// ProgressResponse is the progress-only view polled by the agent UI.
type ProgressResponse struct {
	SessionID        string                  `json:"session_id"`
	Version          int64                   `json:"version"`
	Progress         models.Progress         `json:"progress"`
	QuestionProgress models.QuestionProgress `json:"question_progress"`
	CanSubmit        bool                    `json:"can_submit"`
	BlockedReason    string                  `json:"blocked_reason,omitempty"`
}

// CatalogResponse describes the checklist agents work through.
type CatalogResponse struct {
	Version            string                     `json:"version"`
	SubmitPolicy       string                     `json:"submit_policy"`
	Steps              []catalog.StepDefinition   `json:"steps"`
	QuestionCategories []catalog.QuestionCategory `json:"question_categories"`
}

// SubmissionListResponse wraps recent submissions.
type SubmissionListResponse struct {
	Submissions []models.Submission `json:"submissions"`
}

func toSessionResponse(st service.SessionState) SessionResponse {
	s := st.Session
	return SessionResponse{
		SessionID:        string(s.ID),
		CatalogVersion:   s.CatalogVersion,
		AgentID:          s.AgentID,
		Steps:            s.Steps,
		Questions:        s.Questions,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		LastUpdatedAt:    s.LastUpdatedAt,
		Version:          s.Version,
		Progress:         st.Progress,
		QuestionProgress: st.QuestionProgress,
		CanSubmit:        st.CanSubmit,
		BlockedReason:    st.BlockedReason,
	}
}

func toProgressResponse(st service.SessionState) ProgressResponse {
	return ProgressResponse{
		SessionID:        string(st.Session.ID),
		Version:          st.Session.Version,
		Progress:         st.Progress,
		QuestionProgress: st.QuestionProgress,
		CanSubmit:        st.CanSubmit,
		BlockedReason:    st.BlockedReason,
	}
}
