// Package store records per-attempt job outcomes so terminal errors and
// partial successes stay observable after the queue has moved on. Analysis
// content is never persisted, only operational job status.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_status (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id     TEXT    NOT NULL,
	repository  TEXT    NOT NULL,
	pr_number   INTEGER NOT NULL,
	status      TEXT    NOT NULL,
	attempt     INTEGER NOT NULL,
	error       TEXT    NOT NULL DEFAULT '',
	recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_job_status_pr ON job_status (repository, pr_number, id);
`

// StatusStore persists job delivery outcomes in sqlite
type StatusStore struct {
	db *sql.DB
}

// Open opens the store and creates the schema if needed
func Open(dsn string) (*StatusStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open job status store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create job status schema: %w", err)
	}

	return &StatusStore{db: db}, nil
}

// Record appends one job delivery outcome
func (s *StatusStore) Record(ctx context.Context, status models.JobStatus) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_status (task_id, repository, pr_number, status, attempt, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		status.TaskID, status.Repository, status.PRNumber, status.Status, status.Attempt, status.Error,
	)
	if err != nil {
		return errors.DatabaseError(err)
	}
	return nil
}

// Latest returns the most recent recorded status for a pull request.
// Returns sql.ErrNoRows when nothing has been recorded.
func (s *StatusStore) Latest(ctx context.Context, repository string, prNumber int) (models.JobStatus, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT task_id, repository, pr_number, status, attempt, error
		 FROM job_status
		 WHERE repository = ? AND pr_number = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		repository, prNumber,
	)

	var status models.JobStatus
	err := row.Scan(&status.TaskID, &status.Repository, &status.PRNumber,
		&status.Status, &status.Attempt, &status.Error)
	if err != nil {
		return models.JobStatus{}, err
	}
	return status, nil
}

// Close closes the underlying database
func (s *StatusStore) Close() error {
	return s.db.Close()
}
