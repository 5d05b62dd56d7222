package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/w65harness/internal/ir"
)

// ErrNotFound is returned when a run ID is not in the store.
var ErrNotFound = errors.New("run not found")

const runColumns = `id, seq, job_path, job_json, job_hash, report_json, report_digest, harness_version, format_version`

// GetRun retrieves a single run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return run, err
}

// ListRuns returns recorded runs oldest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq ASC, id COLLATE BINARY ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// RunsForJob returns every run of the job with the given hash, oldest first.
func (s *Store) RunsForJob(ctx context.Context, jobHash string) ([]Run, error) {
	return s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE job_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, jobHash)
}

// ReadCycles returns a run's recorded cycle events in bus order. When
// types is non-empty only events of those types are returned.
func (s *Store) ReadCycles(ctx context.Context, runID string, types ...ir.CycleType) ([]ir.CycleEvent, error) {
	query := `SELECT type, address, data FROM cycle_events WHERE run_id = ?`
	args := []any{runID}
	if len(types) > 0 {
		query += ` AND type IN (?` + strings.Repeat(",?", len(types)-1) + `)`
		for _, t := range types {
			args = append(args, int(t))
		}
	}
	query += ` ORDER BY idx ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cycle events: %w", err)
	}
	defer rows.Close()

	events := []ir.CycleEvent{}
	for rows.Next() {
		var typ, addr, data int
		if err := rows.Scan(&typ, &addr, &data); err != nil {
			return nil, fmt.Errorf("scan cycle event: %w", err)
		}
		events = append(events, ir.CycleEvent{
			Type:    ir.CycleType(typ),
			Address: uint16(addr),
			Data:    byte(data),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycle events: %w", err)
	}
	return events, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var reportJSON string
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.JobPath,
		&run.JobJSON,
		&run.JobHash,
		&reportJSON,
		&run.ReportDigest,
		&run.HarnessVersion,
		&run.FormatVersion,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if run.Report, err = unmarshalReport(reportJSON); err != nil {
		return Run{}, err
	}
	return run, nil
}
