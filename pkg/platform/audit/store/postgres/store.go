package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "vkyc/pkg/platform/audit"
	txcontext "vkyc/pkg/platform/tx"
)

// Schema creates the audit_events table.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id            UUID PRIMARY KEY,
	category      TEXT NOT NULL,
	action        TEXT NOT NULL,
	session_id    TEXT NOT NULL DEFAULT '',
	agent_id      TEXT NOT NULL DEFAULT '',
	subject       TEXT NOT NULL DEFAULT '',
	decision      TEXT NOT NULL DEFAULT '',
	reason        TEXT NOT NULL DEFAULT '',
	request_id    TEXT NOT NULL DEFAULT '',
	client_device TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_events_session_idx ON audit_events (session_id, created_at);
`

// Store implements audit.Store on PostgreSQL. Writes join the caller's
// transaction when one is present in the context.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// EnsureSchema creates the table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// Append inserts an event. An empty category is derived from the action.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	query := `
		INSERT INTO audit_events (
			id, category, action, session_id, agent_id, subject,
			decision, reason, request_id, client_device, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		string(category),
		event.Action,
		event.SessionID,
		event.AgentID,
		event.Subject,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ClientDevice,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySession returns a session's events oldest first.
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, action, session_id, agent_id, subject,
		       decision, reason, request_id, client_device, created_at
		FROM audit_events
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e        audit.Event
			category string
		)
		if err := rows.Scan(&category, &e.Action, &e.SessionID, &e.AgentID, &e.Subject,
			&e.Decision, &e.Reason, &e.RequestID, &e.ClientDevice, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
