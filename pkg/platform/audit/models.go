package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// Categories drive retention and how strictly persistence is enforced.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance. Writes
	// are fail-closed: if the event cannot be stored the operation fails.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers access violations and auth failures.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	// Emission is asynchronous and may drop events under pressure.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// SessionID is the KYC session the action applies to.
	SessionID string
	// AgentID is the operator who performed the action.
	AgentID  string
	Subject  string
	Action   string
	Decision string
	Reason   string
	// RequestID correlates the event with the HTTP request.
	RequestID string
	// ClientDevice is a short description of the agent's browser/OS.
	ClientDevice string
}

type AuditEvent string

const (
	EventSessionCreated   AuditEvent = "kyc_session_created"
	EventVerdictRecorded  AuditEvent = "kyc_verdict_recorded"
	EventNotesUpdated     AuditEvent = "kyc_notes_updated"
	EventQuestionUpdated  AuditEvent = "kyc_question_updated"
	EventSessionSubmitted AuditEvent = "kyc_session_submitted"
	EventReadinessChecked AuditEvent = "kyc_readiness_checked"
	EventAuthFailed       AuditEvent = "auth_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventSessionSubmitted: CategoryCompliance,

	EventAuthFailed: CategorySecurity,

	EventSessionCreated:   CategoryOperations,
	EventVerdictRecorded:  CategoryOperations,
	EventNotesUpdated:     CategoryOperations,
	EventQuestionUpdated:  CategoryOperations,
	EventReadinessChecked: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID string) ([]Event, error)
}
