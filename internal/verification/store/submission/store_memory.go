package submission

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/sentinel"
)

// InMemory archives submissions in process memory.
type InMemory struct {
	mu          sync.RWMutex
	submissions map[models.SessionID]models.Submission
	order       []models.SessionID
}

func NewInMemory() *InMemory {
	return &InMemory{submissions: make(map[models.SessionID]models.Submission)}
}

// Save archives sub. A session can be submitted at most once.
func (s *InMemory) Save(_ context.Context, sub models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.submissions[sub.SessionID]; exists {
		return fmt.Errorf("submission %s: %w", sub.SessionID, sentinel.ErrAlreadyUsed)
	}
	s.submissions[sub.SessionID] = cloneSubmission(sub)
	s.order = append(s.order, sub.SessionID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.SessionID) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return models.Submission{}, sentinel.ErrNotFound
	}
	return cloneSubmission(sub), nil
}

// ListRecent returns up to limit submissions, newest first.
func (s *InMemory) ListRecent(_ context.Context, limit int) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Submission, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneSubmission(s.submissions[s.order[i]]))
	}
	return out, nil
}

func cloneSubmission(sub models.Submission) models.Submission {
	out := sub
	out.Steps = make([]models.StepResult, len(sub.Steps))
	for i, st := range sub.Steps {
		st.Evidence = st.Evidence.Clone()
		out.Steps[i] = st
	}
	out.Questions = slices.Clone(sub.Questions)
	return out
}
