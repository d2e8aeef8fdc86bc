package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	dErrors "vkyc/pkg/domain-errors"
)

// SessionID identifies one KYC call session, e.g. "KYC-2024-001".
type SessionID string

// StepID identifies a catalog step, e.g. "dob" or "facecompare".
type StepID string

// QuestionID identifies a catalog document question.
type QuestionID string

const maxSessionIDLength = 64

func (id SessionID) String() string  { return string(id) }
func (id StepID) String() string     { return string(id) }
func (id QuestionID) String() string { return string(id) }

// NewSessionID generates a fresh session identifier.
func NewSessionID() SessionID {
	return SessionID("KYC-" + uuid.NewString())
}

// ParseSessionID validates a caller-supplied session identifier.
// Allowed characters are letters, digits, '-' and '_'.
func ParseSessionID(raw string) (SessionID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "session id is required")
	}
	if len(raw) > maxSessionIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("session id must be at most %d characters", maxSessionIDLength))
	}
	for _, r := range raw {
		if !isIDRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "session id contains invalid characters")
		}
	}
	return SessionID(raw), nil
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
