package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/w65harness/internal/ir"
)

// Run is one recorded run.
type Run struct {
	ID             string
	Seq            int64
	JobPath        string
	JobJSON        string // canonical
	JobHash        string
	Report         *ir.Report
	ReportDigest   string
	HarnessVersion string
	FormatVersion  string
}

// NewRun prepares a run record: it canonicalises and hashes the job and
// digests the report. Seq is assigned by WriteRun.
func NewRun(id, jobPath string, jobJSON []byte, report *ir.Report) (Run, error) {
	canonical, err := marshalJob(jobJSON)
	if err != nil {
		return Run{}, err
	}
	hash, err := ir.JobHash(jobJSON)
	if err != nil {
		return Run{}, fmt.Errorf("hash job: %w", err)
	}
	digest, err := ir.ReportDigest(report)
	if err != nil {
		return Run{}, fmt.Errorf("digest report: %w", err)
	}
	return Run{
		ID:             id,
		JobPath:        jobPath,
		JobJSON:        canonical,
		JobHash:        hash,
		Report:         report,
		ReportDigest:   digest,
		HarnessVersion: ir.HarnessVersion,
		FormatVersion:  ir.FormatVersion,
	}, nil
}

// WriteRun inserts a run and its cycle events in one transaction and
// returns the seq it was given. Writing an ID that already exists is a
// no-op that returns the existing seq.
func (s *Store) WriteRun(ctx context.Context, run Run, trace []ir.CycleEvent) (int64, error) {
	reportJSON, err := marshalReport(run.Report)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, job_path, job_json, job_hash, report_json, report_digest,
		 cause, num_cycles, last_pc, harness_version, format_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		seq,
		run.JobPath,
		run.JobJSON,
		run.JobHash,
		reportJSON,
		run.ReportDigest,
		run.Report.TerminationCause,
		int64(run.Report.NumCycles),
		nullablePC(run.Report.LastPC),
		run.HarnessVersion,
		run.FormatVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	if len(trace) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cycle_events (run_id, idx, type, address, data)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, fmt.Errorf("write run: prepare events: %w", err)
		}
		defer stmt.Close()
		for i, ev := range trace {
			if _, err := stmt.ExecContext(ctx, run.ID, i, int(ev.Type), int(ev.Address), int(ev.Data)); err != nil {
				return 0, fmt.Errorf("write run: event %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}
