package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current ledger schema. Bump on schema changes; the
// ledger is derived data, so a mismatched database can simply be deleted.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by a different release.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one pipeline invocation.
type Run struct {
	ID         string
	Mode       string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Error      string
}

// StageResult is the outcome of one stage within a run.
type StageResult struct {
	RunID       string
	Stage       string
	Status      string
	InputCount  int
	OutputCount int
	StartedAt   time.Time
	FinishedAt  *time.Time
	Error       string
}

// Store manages run ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

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

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// StartRun records a new run in the running state.
func (s *Store) StartRun(ctx context.Context, id, mode string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, mode, status, started_at) VALUES (?, ?, ?, ?)",
		id, mode, StatusRunning, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// FinishRun marks a run completed, or failed when runErr is non-nil.
func (s *Store) FinishRun(ctx context.Context, id string, runErr error) error {
	status := StatusCompleted
	message := ""
	if runErr != nil {
		status = StatusFailed
		message = runErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, finished_at = ?, error = ? WHERE id = ?",
		status, time.Now().UTC().Format(time.RFC3339Nano), message, id)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// RecordStage upserts one stage's outcome for a run.
func (s *Store) RecordStage(ctx context.Context, result StageResult) error {
	finished := sql.NullString{}
	if result.FinishedAt != nil {
		finished = sql.NullString{String: result.FinishedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stage_results (run_id, stage, status, input_count, output_count, started_at, finished_at, error)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (run_id, stage) DO UPDATE SET
             status = excluded.status,
             input_count = excluded.input_count,
             output_count = excluded.output_count,
             finished_at = excluded.finished_at,
             error = excluded.error`,
		result.RunID, result.Stage, result.Status, result.InputCount, result.OutputCount,
		result.StartedAt.UTC().Format(time.RFC3339Nano), finished, result.Error)
	if err != nil {
		return fmt.Errorf("record stage result: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, mode, status, started_at, finished_at, error FROM runs ORDER BY started_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&run.ID, &run.Mode, &run.Status, &startedAt, &finishedAt, &run.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = parseTimestamp(startedAt); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			finished, err := parseTimestamp(finishedAt.String)
			if err != nil {
				return nil, err
			}
			run.FinishedAt = &finished
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// StageResults returns the stage rows for one run in execution order.
func (s *Store) StageResults(ctx context.Context, runID string) ([]StageResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, stage, status, input_count, output_count, started_at, finished_at, error
         FROM stage_results WHERE run_id = ? ORDER BY started_at ASC`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("query stage results: %w", err)
	}
	defer rows.Close()

	var results []StageResult
	for rows.Next() {
		var result StageResult
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&result.RunID, &result.Stage, &result.Status, &result.InputCount,
			&result.OutputCount, &startedAt, &finishedAt, &result.Error); err != nil {
			return nil, fmt.Errorf("scan stage result: %w", err)
		}
		if result.StartedAt, err = parseTimestamp(startedAt); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			finished, err := parseTimestamp(finishedAt.String)
			if err != nil {
				return nil, err
			}
			result.FinishedAt = &finished
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ledger timestamp %q: %w", value, err)
	}
	return t, nil
}
