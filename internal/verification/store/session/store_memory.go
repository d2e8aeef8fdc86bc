package session

import (
	"context"
	"fmt"
	"sync"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/sentinel"
)

// InMemory keeps live sessions in process memory. Suitable for a single
// instance and for tests.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[models.SessionID]models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[models.SessionID]models.Session)}
}

func (s *InMemory) Create(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return fmt.Errorf("session %s: %w", sess.ID, sentinel.ErrAlreadyUsed)
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.SessionID) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, sentinel.ErrNotFound
	}
	return sess.Clone(), nil
}

// Update replaces the session if the stored version equals expectedVersion.
func (s *InMemory) Update(_ context.Context, sess models.Session, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[sess.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("session %s at version %d, expected %d: %w",
			sess.ID, current.Version, expectedVersion, sentinel.ErrConflict)
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, id models.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
