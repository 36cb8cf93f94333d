// Package history records sidebar validation runs in SQLite so results can
// be compared over time.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/sidenav/internal/db"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("history: run not found")

// Store provides persistence for validation runs.
type Store struct {
	db     *db.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given database. A nil logger
// discards log output.
func NewStore(database *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: database, logger: logger}
}

// Record inserts a run and its findings. If run.ID is empty a UUID is
// generated; a zero StartedAt is set to now. The stored id is written back.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC().Truncate(time.Second)

	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return fmt.Errorf("marshalling counts: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO validation_runs (
			id, started_at, source, sidebar, strict, resolved,
			error_count, warning_count, counts
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.DateTime),
		run.Source,
		run.Sidebar,
		run.Strict,
		run.Resolved,
		run.Errors,
		run.Warnings,
		string(counts),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, f := range run.Findings {
		path, err := json.Marshal(f.Path)
		if err != nil {
			return fmt.Errorf("marshalling finding path: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, position, severity, code, doc_id, path, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, string(f.Severity), f.Code, f.DocID, string(path), f.Message,
		)
		if err != nil {
			return fmt.Errorf("inserting finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	s.logger.Debug("recorded validation run", "id", run.ID, "errors", run.Errors, "warnings", run.Warnings)
	return nil
}

const runColumns = `id, started_at, source, sidebar, strict, resolved, error_count, warning_count, counts`

// List returns the most recent runs first, without findings. A limit of
// zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM validation_runs ORDER BY started_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// Get returns the run with its findings.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM validation_runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	run.Findings, err = s.Findings(ctx, id)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// Findings returns the findings of a run in reported order.
func (s *Store) Findings(ctx context.Context, runID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT severity, code, doc_id, path, message
		FROM findings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var (
			f             Finding
			severity, raw string
		)
		if err := rows.Scan(&severity, &f.Code, &f.DocID, &raw, &f.Message); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		f.Severity = sidebar.Severity(severity)
		if err := json.Unmarshal([]byte(raw), &f.Path); err != nil {
			f.Path = nil
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r          Run
		ts, counts string
	)
	err := sc.Scan(&r.ID, &ts, &r.Source, &r.Sidebar, &r.Strict, &r.Resolved,
		&r.Errors, &r.Warnings, &counts)
	if err != nil {
		return nil, err
	}

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		r.StartedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		r.StartedAt = t
	}
	if err := json.Unmarshal([]byte(counts), &r.Counts); err != nil {
		return nil, fmt.Errorf("decoding counts of run %s: %w", r.ID, err)
	}
	return &r, nil
}
