package cpu

import "fmt"

// Bus is the transaction interface the core drives. Each call is one cycle.
// A non-nil error stops the core.
type Bus interface {
	ReadOpcode(addr uint16) (byte, error)
	Read(addr uint16) (byte, error)
	ReadLocked(addr uint16) (byte, error)
	ReadVector(addr uint16) (byte, error)
	Write(addr uint16, v byte) error
	WriteLocked(addr uint16, v byte) error
}

// Vector addresses.
const (
	VectorNMI   uint16 = 0xFFFA
	VectorReset uint16 = 0xFFFC
	VectorIRQ   uint16 = 0xFFFE
)

// CPU is one W65C02S core. Not safe for concurrent use.
type CPU struct {
	bus Bus

	a, x, y byte
	s       byte
	p       flag
	pc      uint16

	nmiLevel   bool
	nmiPending bool
	irqLevel   bool

	resetPending bool
	waiting      bool
	stopped      bool

	err error
}

// Registers is a snapshot of the programmer-visible state.
type Registers struct {
	A, X, Y, S, P byte
	PC            uint16
}

func (r Registers) String() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X S=%02X [%s]",
		r.PC, r.A, r.X, r.Y, r.S, flag(r.P))
}

// New creates a core on bus with a reset pending. The reset sequence runs
// on the first Step.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset arms the reset sequence and clears any bus error. Registers other
// than P are left as they are, like the real part.
func (c *CPU) Reset() {
	c.resetPending = true
	c.err = nil
}

// Step runs the pending reset or interrupt sequence, one idle cycle while
// waiting or stopped, or one instruction. It returns the first bus error.
func (c *CPU) Step() error {
	if c.err != nil {
		return c.err
	}
	switch {
	case c.resetPending:
		c.reset()
	case c.stopped:
		c.read(c.pc)
	case c.nmiPending:
		c.nmiPending = false
		c.waiting = false
		c.interrupt(VectorNMI)
	case c.irqLevel && !c.p.has(flagI):
		c.waiting = false
		c.interrupt(VectorIRQ)
	case c.waiting && c.irqLevel:
		// A masked IRQ ends WAI without being serviced.
		c.waiting = false
		c.execute()
	case c.waiting:
		c.read(c.pc)
	default:
		c.execute()
	}
	return c.err
}

// Err returns the bus error that stopped the core, if any.
func (c *CPU) Err() error { return c.err }

// SetOverflow strobes the SO pin, setting V.
func (c *CPU) SetOverflow() { c.p |= flagV }

// SetNMI drives the NMI line. A rising level latches one NMI.
func (c *CPU) SetNMI(level bool) {
	if level && !c.nmiLevel {
		c.nmiPending = true
	}
	c.nmiLevel = level
}

// SetIRQ drives the IRQ line. IRQ is level sensitive and masked by I.
func (c *CPU) SetIRQ(level bool) { c.irqLevel = level }

// Registers returns the current register file.
func (c *CPU) Registers() Registers {
	return Registers{A: c.a, X: c.x, Y: c.y, S: c.s, P: byte(c.p | flagU), PC: c.pc}
}

// Waiting reports whether WAI is in effect.
func (c *CPU) Waiting() bool { return c.waiting }

// Stopped reports whether STP is in effect. Only Reset leaves it.
func (c *CPU) Stopped() bool { return c.stopped }

func (c *CPU) String() string {
	return "[w65c02s] " + c.Registers().String()
}

// reset: two idle reads, three suppressed stack pushes, then the vector.
func (c *CPU) reset() {
	c.resetPending = false
	c.waiting = false
	c.stopped = false
	c.read(c.pc)
	c.read(c.pc)
	for i := 0; i < 3; i++ {
		c.read(0x0100 | uint16(c.s))
		c.s--
	}
	c.p.set(true, flagI)
	c.p.set(false, flagD)
	c.pc = c.vector(VectorReset)
}

func (c *CPU) interrupt(vec uint16) {
	c.read(c.pc)
	c.read(c.pc)
	c.pushPC()
	c.push(byte((c.p | flagU) &^ flagB))
	c.p.set(true, flagI)
	c.p.set(false, flagD)
	c.pc = c.vector(vec)
}

func (c *CPU) execute() {
	op := c.readOpcode(c.pc)
	if c.err != nil {
		return
	}
	c.pc++
	table[op].exec(c)
}

// Bus helpers. After the first error they do nothing and return 0.

func (c *CPU) readOpcode(addr uint16) byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.ReadOpcode(addr)
	c.err = err
	return v
}

func (c *CPU) read(addr uint16) byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.Read(addr)
	c.err = err
	return v
}

func (c *CPU) readLocked(addr uint16) byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.ReadLocked(addr)
	c.err = err
	return v
}

func (c *CPU) write(addr uint16, v byte) {
	if c.err != nil {
		return
	}
	c.err = c.bus.Write(addr, v)
}

func (c *CPU) writeLocked(addr uint16, v byte) {
	if c.err != nil {
		return
	}
	c.err = c.bus.WriteLocked(addr, v)
}

func (c *CPU) vector(addr uint16) uint16 {
	if c.err != nil {
		return c.pc
	}
	lo, err := c.bus.ReadVector(addr)
	if c.err = err; err != nil {
		return c.pc
	}
	hi, err := c.bus.ReadVector(addr + 1)
	if c.err = err; err != nil {
		return c.pc
	}
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetch() byte {
	v := c.read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v byte) {
	c.write(0x0100|uint16(c.s), v)
	c.s--
}

func (c *CPU) pull() byte {
	c.s++
	return c.read(0x0100 | uint16(c.s))
}

func (c *CPU) pushPC() {
	c.push(byte(c.pc >> 8))
	c.push(byte(c.pc))
}

func (c *CPU) pullPC() uint16 {
	lo := c.pull()
	hi := c.pull()
	return uint16(hi)<<8 | uint16(lo)
}
