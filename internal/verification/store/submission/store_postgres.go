package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/sentinel"
	txcontext "vkyc/pkg/platform/tx"
)

// Schema creates the submission archive table. Steps and questions use
// JSON, not JSONB, so archived evidence keeps its key order and any
// duplicate keys exactly as the check supplied them. Tables created with
// the older JSONB columns are converted once.
const Schema = `
CREATE TABLE IF NOT EXISTS kyc_submissions (
	session_id      TEXT PRIMARY KEY,
	catalog_version TEXT NOT NULL,
	agent_id        TEXT NOT NULL DEFAULT '',
	submitted_at    TIMESTAMPTZ NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	steps           JSON NOT NULL,
	questions       JSON NOT NULL DEFAULT '[]',
	completed       INT NOT NULL,
	passed          INT NOT NULL,
	failed          INT NOT NULL,
	total           INT NOT NULL
);
DO $$
BEGIN
	IF EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_name = 'kyc_submissions' AND column_name = 'steps' AND data_type = 'jsonb'
	) THEN
		ALTER TABLE kyc_submissions
			ALTER COLUMN steps TYPE JSON USING steps::json,
			ALTER COLUMN questions DROP DEFAULT,
			ALTER COLUMN questions TYPE JSON USING questions::json,
			ALTER COLUMN questions SET DEFAULT '[]';
	END IF;
END $$;
CREATE INDEX IF NOT EXISTS kyc_submissions_submitted_at_idx ON kyc_submissions (submitted_at DESC);
`

const uniqueViolation = "23505"

// PostgresStore archives submissions in PostgreSQL. Writes join the
// transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// EnsureSchema creates the archive table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure submission schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, sub models.Submission) error {
	steps, err := json.Marshal(sub.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	questions := sub.Questions
	if questions == nil {
		questions = []models.QuestionAnswer{}
	}
	qs, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	query := `
		INSERT INTO kyc_submissions (
			session_id, catalog_version, agent_id, submitted_at, notes,
			steps, questions, completed, passed, failed, total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		string(sub.SessionID), sub.CatalogVersion, sub.AgentID, sub.SubmittedAt, sub.Notes,
		steps, qs, sub.Progress.Completed, sub.Progress.Passed, sub.Progress.Failed, sub.Progress.Total,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("submission %s: %w", sub.SessionID, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

const selectColumns = `
	session_id, catalog_version, agent_id, submitted_at, notes,
	steps, questions, completed, passed, failed, total
`

func (s *PostgresStore) FindByID(ctx context.Context, id models.SessionID) (models.Submission, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM kyc_submissions WHERE session_id = $1`, string(id))
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Submission{}, sentinel.ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("find submission: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+selectColumns+` FROM kyc_submissions ORDER BY submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (models.Submission, error) {
	var (
		sub       models.Submission
		sessionID string
		steps     []byte
		questions []byte
	)
	err := row.Scan(
		&sessionID, &sub.CatalogVersion, &sub.AgentID, &sub.SubmittedAt, &sub.Notes,
		&steps, &questions,
		&sub.Progress.Completed, &sub.Progress.Passed, &sub.Progress.Failed, &sub.Progress.Total,
	)
	if err != nil {
		return models.Submission{}, err
	}
	sub.SessionID = models.SessionID(sessionID)
	sub.Progress.Pending = sub.Progress.Total - sub.Progress.Completed
	if err := json.Unmarshal(steps, &sub.Steps); err != nil {
		return models.Submission{}, fmt.Errorf("decode steps: %w", err)
	}
	if err := json.Unmarshal(questions, &sub.Questions); err != nil {
		return models.Submission{}, fmt.Errorf("decode questions: %w", err)
	}
	return sub, nil
}
