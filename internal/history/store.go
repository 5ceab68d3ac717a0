package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/da11an/repo-query-surface/internal/errors"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Store persists one scalar row per analysis run. A single connection
// plus retry-on-lock keeps concurrent watch and serve processes from
// tripping over each other.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, errors.New(errors.CodeHistoryIO, "history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, errors.New(errors.CodeHistoryIO,
			fmt.Sprintf("history path %q is a directory, expected file", cleanPath))
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, errors.CodeHistoryIO, "create history directory")
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryIO, "open sqlite history")
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.CodeHistoryIO, "ping sqlite history")
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.CodeHistoryIO, "initialize sqlite schema")
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// SaveRun upserts one run row keyed by run id.
func (s *Store) SaveRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.RunID == "" {
		return errors.New(errors.CodeHistoryIO, "run id must not be empty")
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	query := `
INSERT INTO runs (
  run_id, ts_utc, language, file_count, edge_count, component_count,
  cycle_count, max_layer, score_mean, score_max
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
  ts_utc=excluded.ts_utc,
  language=excluded.language,
  file_count=excluded.file_count,
  edge_count=excluded.edge_count,
  component_count=excluded.component_count,
  cycle_count=excluded.cycle_count,
  max_layer=excluded.max_layer,
  score_mean=excluded.score_mean,
  score_max=excluded.score_max
`
	err := s.withRetry("save run", func() error {
		_, err := s.db.Exec(
			query,
			run.RunID,
			run.Timestamp.UTC().Format(time.RFC3339Nano),
			run.Language,
			run.FileCount,
			run.EdgeCount,
			run.ComponentCount,
			run.CycleCount,
			run.MaxLayer,
			run.ScoreMean,
			run.ScoreMax,
		)
		return err
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeHistoryIO, "persist run")
	}
	return nil
}

// LoadRuns returns up to limit of the most recent runs in ascending
// time order. A non-positive limit loads everything.
func (s *Store) LoadRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT run_id, ts_utc, language, file_count, edge_count, component_count,
  cycle_count, max_layer, score_mean, score_max
FROM runs
ORDER BY ts_utc DESC, run_id DESC
`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryIO, "query runs")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			tsRaw string
			run   Run
		)
		if err := rows.Scan(
			&run.RunID,
			&tsRaw,
			&run.Language,
			&run.FileCount,
			&run.EdgeCount,
			&run.ComponentCount,
			&run.CycleCount,
			&run.MaxLayer,
			&run.ScoreMean,
			&run.ScoreMax,
		); err != nil {
			return nil, errors.Wrap(err, errors.CodeHistoryIO, "scan run row")
		}
		ts, err := time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeHistoryIO, "parse run timestamp")
		}
		run.Timestamp = ts.UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeHistoryIO, "iterate run rows")
	}

	// Flip newest-first into ascending order for delta computation.
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
