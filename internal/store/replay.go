package store

import (
	"context"
	"fmt"
)

// ReplaySet picks the runs to re-execute. With an ID it returns that run;
// without one it returns the latest run of every distinct job, ordered by
// that run's seq.
func (s *Store) ReplaySet(ctx context.Context, runID string) ([]Run, error) {
	if runID != "" {
		run, err := s.GetRun(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("replay set: %w", err)
		}
		return []Run{run}, nil
	}
	runs, err := s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM runs r
		WHERE seq = (SELECT MAX(seq) FROM runs WHERE job_hash = r.job_hash)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("replay set: %w", err)
	}
	return runs, nil
}

// Stats summarises the store contents.
type Stats struct {
	Runs    int
	Jobs    int
	Events  int
	LastSeq int64
	ByCause map[string]int
}

// GetStats counts runs, distinct jobs and recorded events, and tallies runs
// by termination cause.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	st := Stats{ByCause: map[string]int{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT job_hash), COALESCE(MAX(seq), 0) FROM runs
	`).Scan(&st.Runs, &st.Jobs, &st.LastSeq)
	if err != nil {
		return st, fmt.Errorf("get stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cycle_events`).Scan(&st.Events); err != nil {
		return st, fmt.Errorf("get stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT cause, COUNT(*) FROM runs GROUP BY cause ORDER BY cause`)
	if err != nil {
		return st, fmt.Errorf("get stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cause string
		var n int
		if err := rows.Scan(&cause, &n); err != nil {
			return st, fmt.Errorf("get stats: %w", err)
		}
		st.ByCause[cause] = n
	}
	return st, rows.Err()
}
