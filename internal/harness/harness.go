package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/w65harness/internal/bus"
	"github.com/roach88/w65harness/internal/cpu"
	"github.com/roach88/w65harness/internal/ir"
)

// ctxCheckInterval is how many steps run between context checks.
const ctxCheckInterval = 1 << 16

type config struct {
	logger     *slog.Logger
	maxCycles  *uint32
	showCycles *bool
}

// Option adjusts a run without editing the job.
type Option func(*config)

// WithLogger sets the logger handed to the bus. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxCycles overrides the job's max_cycles.
func WithMaxCycles(n uint32) Option {
	return func(c *config) { c.maxCycles = &n }
}

// WithShowCycles overrides the job's show_cycles.
func WithShowCycles(on bool) Option {
	return func(c *config) { c.showCycles = &on }
}

// Run executes a job to completion. See RunContext.
func Run(job *ir.Job, opts ...Option) (*Result, error) {
	return RunContext(context.Background(), job, opts...)
}

// RunContext executes a job on a fresh bus and CPU and returns the report.
//
// The run ends when the bus halts the CPU or the cycle counter reaches the
// cap. A *ConfigError means the job was rejected before the first cycle.
// Cancelling ctx abandons the run and returns ctx.Err().
func RunContext(ctx context.Context, job *ir.Job, opts ...Option) (*Result, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := Validate(job); err != nil {
		return nil, err
	}

	b, outFmt, err := buildBus(job, &cfg)
	if err != nil {
		return nil, err
	}
	c := cpu.New(b)
	b.Attach(c)

	var steps uint64
	for b.Cycles() < b.MaxCycles() && b.Halted() == nil {
		if err := c.Step(); err != nil {
			if bus.IsHalt(err) {
				break
			}
			return nil, fmt.Errorf("step %d: %w", steps, err)
		}
		steps++
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	report := &ir.Report{
		NumCycles:        b.Cycles(),
		TerminationCause: b.Cause().String(),
		Cycles:           b.TraceStrings(),
	}
	if pc, ok := b.LastPC(); ok {
		report.LastPC = &pc
	}
	if outFmt != ir.OutNone {
		s := ir.EncodeData(outFmt, b.SerialOutput())
		report.SerialOutData = &s
	}

	cfg.logger.Debug("run finished",
		"cause", report.TerminationCause,
		"cycles", report.NumCycles,
		"steps", steps,
	)
	return &Result{
		Report:    report,
		Halt:      b.Halted(),
		Trace:     b.Trace(),
		Registers: c.Registers(),
		Steps:     steps,
	}, nil
}

// buildBus turns a validated job into a bus. The reset vector high byte
// defaults to $02 so an unconfigured reset lands at $0200; init records may
// overwrite it.
func buildBus(job *ir.Job, cfg *config) (*bus.Bus, ir.OutFormat, error) {
	ranges := bus.DefaultRanges()
	if job.RWMap != nil {
		ranges = make([]bus.Range, len(job.RWMap))
		for i, r := range job.RWMap {
			ranges[i] = bus.Range{Low: r[0], High: r[1]}
		}
	}
	mem := bus.NewAddressSpace(ranges)
	mem.Poke(0xFFFD, 0x02)
	for i, rec := range job.Init {
		data, err := ir.DecodeData(rec.Data)
		if err != nil {
			return nil, ir.OutNone, &ConfigError{Field: fmt.Sprintf("init.%d.data", i), Message: "cannot decode", Err: err}
		}
		size := -1
		if rec.Size != nil {
			size = int(*rec.Size)
		}
		if err := mem.Load(rec.Base, data, size); err != nil {
			return nil, ir.OutNone, &ConfigError{Field: fmt.Sprintf("init.%d", i), Message: "cannot load", Err: err}
		}
	}

	opts := []bus.Option{
		bus.WithLogger(cfg.logger),
		bus.WithPolicy(policyFor(job)),
	}

	if job.SerialInAddr != nil {
		var data []byte
		if job.SerialInData != nil {
			var err error
			if data, err = ir.DecodeData(*job.SerialInData); err != nil {
				return nil, ir.OutNone, &ConfigError{Field: "serial_in_data", Message: "cannot decode", Err: err}
			}
		}
		opts = append(opts, bus.WithSerialIn(bus.NewSerialIn(*job.SerialInAddr, data)))
	}
	if job.SerialOutAddr != nil {
		opts = append(opts, bus.WithSerialOut(bus.NewSerialOut(*job.SerialOutAddr)))
	}

	outFmt := ir.OutNone
	if job.SerialOutFmt != nil {
		var err error
		if outFmt, err = ir.ParseOutFormat(*job.SerialOutFmt); err != nil {
			return nil, ir.OutNone, &ConfigError{Field: "serial_out_fmt", Message: "unsupported format", Err: err}
		}
	}

	show := job.ShowCycles != nil && *job.ShowCycles
	if cfg.showCycles != nil {
		show = *cfg.showCycles
	}
	if show {
		opts = append(opts, bus.WithTraceQuota(bus.TraceQuota))
	}

	maxCycles := uint32(bus.DefaultMaxCycles)
	if job.MaxCycles != nil {
		maxCycles = *job.MaxCycles
	}
	if cfg.maxCycles != nil {
		maxCycles = *cfg.maxCycles
	}
	opts = append(opts, bus.WithMaxCycles(maxCycles))

	sched, err := bus.NewSchedule(job.SO, job.NMI, job.IRQ)
	if err != nil {
		return nil, ir.OutNone, &ConfigError{Field: "so/nmi/irq", Message: "bad flip schedule", Err: err}
	}
	opts = append(opts, bus.WithSchedule(sched))

	return bus.New(mem, opts...), outFmt, nil
}

// policyFor enables every rule except those the job explicitly sets false.
func policyFor(job *ir.Job) bus.Policy {
	p := bus.DefaultPolicy
	rules := []struct {
		flag *bool
		rule bus.Policy
	}{
		{job.TerminateOnBRK, bus.TerminateOnBRK},
		{job.TerminateOnInfiniteLoop, bus.TerminateOnInfiniteLoop},
		{job.TerminateOnZeroFetch, bus.TerminateOnZeroFetch},
		{job.TerminateOnStackFetch, bus.TerminateOnStackFetch},
		{job.TerminateOnVectorFetch, bus.TerminateOnVectorFetch},
		{job.TerminateOnBadWrite, bus.TerminateOnBadWrite},
	}
	for _, r := range rules {
		if r.flag != nil && !*r.flag {
			p = p.Without(r.rule)
		}
	}
	return p
}
