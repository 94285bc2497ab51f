// Package history provides SQLite-based persistence of verification runs.
//
// The store is an append-only audit journal: recording never influences a
// later drift check or verification result, so the core operations stay
// stateless. Writes are best-effort; callers log failures and move on.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/verify"
)

// Store wraps an SQLite database holding verification run history.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// ProjectDBPath returns the path to the project-local history database.
func ProjectDBPath(projectRoot string) string {
	return filepath.Join(projectRoot, ".driftguard", "history.db")
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// WAL keeps readers (the history command) from blocking writers.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// OpenProject opens the history database for the repository at root.
func OpenProject(projectRoot string) (*Store, error) {
	return Open(ProjectDBPath(projectRoot))
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// migrate creates the schema if it does not exist.
func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS verify_runs (
	id          TEXT PRIMARY KEY,
	profile     TEXT NOT NULL,
	repo_root   TEXT NOT NULL,
	ok          INTEGER NOT NULL,
	message     TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS verify_commands (
	run_id      TEXT NOT NULL,
	position    INTEGER NOT NULL,
	command     TEXT NOT NULL,
	exit_code   INTEGER,
	stdout_tail TEXT NOT NULL,
	stderr_tail TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS idx_verify_runs_started ON verify_runs(started_at);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	return nil
}

// RecordRun persists a verification report and returns the new run ID.
func (s *Store) RecordRun(report *verify.Report, started, finished time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()

	tx, err := s.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO verify_runs (id, profile, repo_root, ok, message, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, report.Profile, report.RepoRoot, boolToInt(report.OK), report.Message,
		started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert verify run: %w", err)
	}

	for i, res := range report.Results {
		var exitCode sql.NullInt64
		if res.ExitCode != nil {
			exitCode = sql.NullInt64{Int64: int64(*res.ExitCode), Valid: true}
		}
		_, err = tx.Exec(
			`INSERT INTO verify_commands (run_id, position, command, exit_code, stdout_tail, stderr_tail)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, res.Command, exitCode, res.Stdout, res.Stderr,
		)
		if err != nil {
			return "", fmt.Errorf("insert verify command: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit history transaction: %w", err)
	}
	return runID, nil
}

// RunSummary is a single row of verification history.
type RunSummary struct {
	ID         string
	Profile    string
	RepoRoot   string
	OK         bool
	Message    string
	StartedAt  time.Time
	FinishedAt time.Time
	Commands   int
}

// RecentRuns returns the most recent verification runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.conn.Query(
		`SELECT r.id, r.profile, r.repo_root, r.ok, r.message, r.started_at, r.finished_at,
		        (SELECT COUNT(*) FROM verify_commands c WHERE c.run_id = r.id)
		 FROM verify_runs r
		 ORDER BY r.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query verify runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var ok int
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Profile, &run.RepoRoot, &ok, &run.Message,
			&started, &finished, &run.Commands); err != nil {
			return nil, fmt.Errorf("scan verify run: %w", err)
		}
		run.OK = ok != 0
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunResults returns the per-command results recorded for a run.
func (s *Store) RunResults(runID string) ([]verify.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(
		`SELECT command, exit_code, stdout_tail, stderr_tail
		 FROM verify_commands WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query verify commands: %w", err)
	}
	defer rows.Close()

	var results []verify.CommandResult
	for rows.Next() {
		var res verify.CommandResult
		var exitCode sql.NullInt64
		if err := rows.Scan(&res.Command, &exitCode, &res.Stdout, &res.Stderr); err != nil {
			return nil, fmt.Errorf("scan verify command: %w", err)
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			res.ExitCode = &code
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
