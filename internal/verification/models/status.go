package models

import (
	"fmt"
	"strings"

	dErrors "vkyc/pkg/domain-errors"
)

// Status is the per-step verification state.
//
// Transitions: pending → pass, pending → fail, pass ↔ fail.
// Nothing returns to pending once a verdict has been recorded.
type Status string

const (
	StatusPending Status = "pending"
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
)

// ParseStatus parses a status string case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusPass, StatusFail:
		return s, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown status %q", raw))
}

func (s Status) String() string { return string(s) }

// IsVerdict reports whether s is a terminal verdict (pass or fail).
func (s Status) IsVerdict() bool {
	return s == StatusPass || s == StatusFail
}

// CanTransitionTo reports whether a step in status s may move to next.
// Re-recording the same verdict is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending, StatusPass, StatusFail:
		return next.IsVerdict()
	}
	return false
}
