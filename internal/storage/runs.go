package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Sort run outcomes.
const (
	RunSorted  = "sorted"
	RunStopped = "stopped"
	RunFailed  = "error"
)

// SortRun is the record of one animated sort served over HTTP.
type SortRun struct {
	ID         int64     `json:"-"`
	RunID      string    `json:"run_id"`
	Algorithm  string    `json:"algorithm"`
	Segments   int       `json:"segments"`
	Steps      int       `json:"steps"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveSortRun records a finished sort run.
// Returns the ID of the inserted record.
func (s *Store) SaveSortRun(run SortRun) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sort_runs (run_id, algorithm, segments, steps, status, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.Algorithm,
		run.Segments,
		run.Steps,
		run.Status,
		run.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save sort run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sortRunColumns = `id, run_id, algorithm, segments, steps, status, duration_ms, created_at`

// SortRunByID retrieves a run by its run ID. Returns nil when not found.
func (s *Store) SortRunByID(runID string) (*SortRun, error) {
	row := s.db.QueryRow(
		`SELECT `+sortRunColumns+` FROM sort_runs WHERE run_id = ?`,
		runID,
	)
	run, err := scanSortRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sort run: %w", err)
	}
	return run, nil
}

// RecentSortRuns retrieves the most recent runs, optionally for one algorithm.
func (s *Store) RecentSortRuns(algorithm string, limit int) ([]SortRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if algorithm == "" {
		rows, err = s.db.Query(
			`SELECT `+sortRunColumns+` FROM sort_runs ORDER BY id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+sortRunColumns+` FROM sort_runs WHERE algorithm = ? ORDER BY id DESC LIMIT ?`,
			algorithm, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sort runs: %w", err)
	}
	defer rows.Close()

	var runs []SortRun
	for rows.Next() {
		run, err := scanSortRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSortRun(sc scanner) (*SortRun, error) {
	var run SortRun
	var createdAt any
	if err := sc.Scan(
		&run.ID,
		&run.RunID,
		&run.Algorithm,
		&run.Segments,
		&run.Steps,
		&run.Status,
		&run.DurationMs,
		&createdAt,
	); err != nil {
		return nil, err
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
