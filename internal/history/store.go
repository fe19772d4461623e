package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages job history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create records a new pending job and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, input, output, sourceLanguage, targetLanguage string) (*Job, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (
            input, output, source_language, target_language, status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input,
		output,
		sourceLanguage,
		targetLanguage,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// SetStatus moves a job to the given stage status.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status) error {
	return s.update(ctx, id, "status = ?", status)
}

// MarkCompleted finishes a job, recording which synthesis backend produced
// the output.
func (s *Store) MarkCompleted(ctx context.Context, id int64, backend string) error {
	return s.update(ctx, id, "status = ?, backend = ?", StatusCompleted, backend)
}

// MarkFailed finishes a job with a failure message.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	return s.update(ctx, id, "status = ?, error_message = ?", StatusFailed, message)
}

func (s *Store) update(ctx context.Context, id int64, assignments string, args ...any) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	args = append(args, timestamp, id)

	res, err := s.db.ExecContext(
		ctx,
		"UPDATE jobs SET "+assignments+", updated_at = ? WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %d not found", id)
	}
	return nil
}

const jobColumns = `id, input, output, source_language, target_language, status,
    COALESCE(backend, ''), COALESCE(error_message, ''), created_at, updated_at`

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return job, nil
}

// List returns jobs newest first, optionally filtered by status. A
// non-positive limit returns everything.
func (s *Store) List(ctx context.Context, status Status, limit int) ([]*Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var job Job
	var status, createdAt, updatedAt string
	if err := row.Scan(
		&job.ID,
		&job.Input,
		&job.Output,
		&job.SourceLanguage,
		&job.TargetLanguage,
		&status,
		&job.Backend,
		&job.ErrorMessage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	job.Status = Status(status)
	job.CreatedAt = parseTimestamp(createdAt)
	job.UpdatedAt = parseTimestamp(updatedAt)
	return &job, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
