package symptoms

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgxpool.Pool the repository needs. Narrowed so
// tests can substitute pgxmock.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores symptom records in the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db querier) *PostgresRepository {
	if db == nil {
		panic("symptoms: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Append inserts a new row.
func (r *PostgresRepository) Append(ctx context.Context, rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO symptoms (session_id, symptom, severity, duration, location, triggers, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.Exec(ctx, query,
		rec.SessionID,
		rec.Symptom,
		rec.Severity,
		rec.Duration,
		rec.Location,
		rec.Triggers,
		rec.Timestamp,
	); err != nil {
		return fmt.Errorf("symptoms: insert failed: %w", err)
	}
	return nil
}

// List fetches the session's records oldest first.
func (r *PostgresRepository) List(ctx context.Context, sessionID string) ([]Record, error) {
	query := `
		SELECT session_id, symptom, severity, duration, location, triggers, recorded_at
		FROM symptoms
		WHERE session_id = $1
		ORDER BY recorded_at, id
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("symptoms: list failed: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.SessionID,
			&rec.Symptom,
			&rec.Severity,
			&rec.Duration,
			&rec.Location,
			&rec.Triggers,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("symptoms: scan failed: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
