package bus

import (
	"io"
	"log/slog"

	"github.com/roach88/w65harness/internal/ir"
)

// DefaultMaxCycles is the cycle cap used when a job sets none.
const DefaultMaxCycles = 10_000_000

// Pins is the narrow capability the Bus needs from the CPU core: the
// overflow strobe and the interrupt lines.
type Pins interface {
	SetOverflow()
	SetNMI(level bool)
	SetIRQ(level bool)
}

// Bus is the per-run system bus. Build it with New, attach the CPU's pins,
// then hand it to the CPU core.
type Bus struct {
	mem       *AddressSpace
	serialIn  *SerialIn
	serialOut *SerialOut
	schedule  *Schedule
	recorder  *Recorder
	policy    Policy
	maxCycles uint32
	clock     *Clock
	pins      Pins
	logger    *slog.Logger

	vectorPulled bool
	lastPC       uint16
	lastPCValid  bool
	halt         *Halt
}

// Option configures a Bus.
type Option func(*Bus)

// WithSerialIn maps an input port.
func WithSerialIn(s *SerialIn) Option {
	return func(b *Bus) { b.serialIn = s }
}

// WithSerialOut maps an output port.
func WithSerialOut(s *SerialOut) Option {
	return func(b *Bus) { b.serialOut = s }
}

// WithSchedule sets the pin flip schedule.
func WithSchedule(s *Schedule) Option {
	return func(b *Bus) { b.schedule = s }
}

// WithTraceQuota records up to n bookkept transactions.
func WithTraceQuota(n int) Option {
	return func(b *Bus) { b.recorder = NewRecorder(n) }
}

// WithPolicy sets the enabled termination rules. Reserved bits are cleared.
func WithPolicy(p Policy) Option {
	return func(b *Bus) { b.policy = p &^ policyReserved }
}

// WithMaxCycles sets the cycle cap.
func WithMaxCycles(n uint32) Option {
	return func(b *Bus) { b.maxCycles = n }
}

// WithLogger sets the logger for halt and flip diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Bus over mem. Serial ports are unmapped, the schedule is
// empty, tracing is off, every rule is enabled and the cap is
// DefaultMaxCycles unless options say otherwise.
func New(mem *AddressSpace, opts ...Option) *Bus {
	b := &Bus{
		mem:       mem,
		schedule:  &Schedule{},
		recorder:  NewRecorder(0),
		policy:    DefaultPolicy,
		maxCycles: DefaultMaxCycles,
		clock:     NewClock(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach connects the CPU's pins. Pin effects before Attach are lost.
func (b *Bus) Attach(p Pins) { b.pins = p }

// Read performs a normal data read.
func (b *Bus) Read(addr uint16) (byte, error) {
	return b.performRead(ir.CycleNormalRead, addr)
}

// ReadLocked performs the read half of a read-modify-write.
func (b *Bus) ReadLocked(addr uint16) (byte, error) {
	return b.performRead(ir.CycleLockedRead, addr)
}

// ReadVector pulls a byte of an interrupt or reset vector. The first call
// starts bookkeeping, and that call is itself bookkept.
func (b *Bus) ReadVector(addr uint16) (byte, error) {
	if b.halt != nil {
		return 0, b.halt
	}
	b.vectorPulled = true
	return b.performRead(ir.CycleVectorRead, addr)
}

// ReadOpcode fetches an instruction byte and applies the fetch rules.
func (b *Bus) ReadOpcode(addr uint16) (byte, error) {
	v, err := b.performRead(ir.CycleOpcodeRead, addr)
	if err != nil || !b.vectorPulled {
		return v, err
	}
	if b.lastPCValid && addr == b.lastPC && b.policy.Has(TerminateOnInfiniteLoop) {
		return v, b.stop(ir.CauseInfiniteLoop, addr)
	}
	b.lastPC, b.lastPCValid = addr, true
	if cause := b.policy.fetchCause(addr, v); cause != ir.CauseNone {
		return v, b.stop(cause, addr)
	}
	return v, nil
}

// Write performs a normal write.
func (b *Bus) Write(addr uint16, v byte) error {
	return b.performWrite(ir.CycleNormalWrite, addr, v)
}

// WriteLocked performs the write half of a read-modify-write.
func (b *Bus) WriteLocked(addr uint16, v byte) error {
	return b.performWrite(ir.CycleLockedWrite, addr, v)
}

func (b *Bus) performRead(t ir.CycleType, addr uint16) (byte, error) {
	if b.halt != nil {
		return 0, b.halt
	}
	v := b.load(addr)
	if b.vectorPulled {
		if err := b.bookkeep(t, addr, v); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (b *Bus) performWrite(t ir.CycleType, addr uint16, v byte) error {
	if b.halt != nil {
		return b.halt
	}
	if b.vectorPulled {
		if err := b.bookkeep(t, addr, v); err != nil {
			return err
		}
	}
	return b.store(addr, v)
}

// load resolves a read to the input port or memory.
func (b *Bus) load(addr uint16) byte {
	if b.serialIn != nil && addr == b.serialIn.addr {
		v, ok := b.serialIn.Pop()
		if !ok {
			b.setOverflow()
		}
		return v
	}
	return b.mem.Peek(addr)
}

// store resolves a write to the output port or memory. A write outside
// the writable map is dropped, and halts the run once bookkeeping has
// started.
func (b *Bus) store(addr uint16, v byte) error {
	if b.serialOut != nil && addr == b.serialOut.addr {
		if !b.serialOut.Push(v) {
			b.setOverflow()
		}
		return nil
	}
	if b.mem.Store(addr, v) {
		return nil
	}
	if b.vectorPulled && b.policy.Has(TerminateOnBadWrite) {
		return b.stop(ir.CauseBadWrite, addr)
	}
	return nil
}

// bookkeep traces the transaction, advances the clock, checks the cap and
// applies due flips, in that order.
func (b *Bus) bookkeep(t ir.CycleType, addr uint16, v byte) error {
	b.recorder.Record(ir.CycleEvent{Type: t, Address: addr, Data: v})
	now := b.clock.Tick()
	if now == b.maxCycles {
		return b.stop(ir.CauseNone, addr)
	}
	for _, f := range b.schedule.Due(now) {
		b.apply(f)
	}
	return nil
}

func (b *Bus) apply(f Flip) {
	b.logger.Debug("flip applied",
		"pin", f.Pin.String(),
		"state", f.State,
		"scheduled", f.Cycle,
		"cycle", b.clock.Current())
	if b.pins == nil {
		return
	}
	switch f.Pin {
	case PinOverflow:
		b.pins.SetOverflow()
	case PinNMI:
		b.pins.SetNMI(f.State)
	case PinIRQ:
		b.pins.SetIRQ(f.State)
	}
}

func (b *Bus) setOverflow() {
	if b.pins != nil {
		b.pins.SetOverflow()
	}
}

func (b *Bus) stop(cause ir.Cause, addr uint16) error {
	b.halt = &Halt{Cause: cause, Cycle: b.clock.Current(), Address: addr}
	b.logger.Debug("run halted",
		"cause", cause.String(),
		"cycle", b.halt.Cycle,
		"address", addr)
	return b.halt
}

// Halted returns the halt that ended the run, or nil while running.
func (b *Bus) Halted() *Halt { return b.halt }

// Cause returns the termination cause so far (ir.CauseNone while running
// or after the cap).
func (b *Bus) Cause() ir.Cause {
	if b.halt == nil {
		return ir.CauseNone
	}
	return b.halt.Cause
}

// Cycles returns the cycle counter.
func (b *Bus) Cycles() uint32 { return b.clock.Current() }

// MaxCycles returns the cycle cap.
func (b *Bus) MaxCycles() uint32 { return b.maxCycles }

// LastPC returns the most recent bookkept opcode fetch address.
func (b *Bus) LastPC() (uint16, bool) { return b.lastPC, b.lastPCValid }

// VectorPulled reports whether bookkeeping has started.
func (b *Bus) VectorPulled() bool { return b.vectorPulled }

// Trace returns the recorded events.
func (b *Bus) Trace() []ir.CycleEvent { return b.recorder.Events() }

// TraceStrings returns the recorded events in report form.
func (b *Bus) TraceStrings() []string { return b.recorder.Strings() }

// SerialOutput returns the captured output bytes, or nil if no output port
// is mapped.
func (b *Bus) SerialOutput() []byte {
	if b.serialOut == nil {
		return nil
	}
	return b.serialOut.Bytes()
}

// Memory exposes the address space for inspection.
func (b *Bus) Memory() *AddressSpace { return b.mem }
