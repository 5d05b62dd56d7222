package cpu

// instr is one opcode table entry.
type instr struct {
	name string
	size byte // bytes including the opcode
	exec func(c *CPU)
}

var table [0x100]instr

// Mnemonic returns the assembler name of opcode op.
func Mnemonic(op byte) string { return table[op].name }

// Size returns the instruction length of opcode op in bytes.
func Size(op byte) int { return int(table[op].size) }

// Operand handlers for read instructions. ea is the operand address.

func ora(c *CPU, v byte, _ uint16)  { c.a = c.nz(c.a | v) }
func and(c *CPU, v byte, _ uint16)  { c.a = c.nz(c.a & v) }
func eor(c *CPU, v byte, _ uint16)  { c.a = c.nz(c.a ^ v) }
func adc(c *CPU, v byte, ea uint16) { c.adc(v, ea) }
func sbc(c *CPU, v byte, ea uint16) { c.sbc(v, ea) }
func lda(c *CPU, v byte, _ uint16)  { c.a = c.nz(v) }
func ldx(c *CPU, v byte, _ uint16)  { c.x = c.nz(v) }
func ldy(c *CPU, v byte, _ uint16)  { c.y = c.nz(v) }
func cmp(c *CPU, v byte, _ uint16)  { c.compare(c.a, v) }
func cpx(c *CPU, v byte, _ uint16)  { c.compare(c.x, v) }
func cpy(c *CPU, v byte, _ uint16)  { c.compare(c.y, v) }
func bit(c *CPU, v byte, _ uint16)  { c.bit(v) }
func bitImm(c *CPU, v byte, _ uint16) {
	c.p.set(v&c.a == 0, flagZ)
}
func nop(c *CPU, _ byte, _ uint16) {}

// Modify handlers for read-modify-write instructions.

func asl(c *CPU, v byte) byte { return c.asl(v) }
func lsr(c *CPU, v byte) byte { return c.lsr(v) }
func rol(c *CPU, v byte) byte { return c.rol(v) }
func ror(c *CPU, v byte) byte { return c.ror(v) }
func inc(c *CPU, v byte) byte { return c.nz(v + 1) }
func dec(c *CPU, v byte) byte { return c.nz(v - 1) }
func tsb(c *CPU, v byte) byte { c.p.set(v&c.a == 0, flagZ); return v | c.a }
func trb(c *CPU, v byte) byte { c.p.set(v&c.a == 0, flagZ); return v &^ c.a }

func rmb(bit byte) func(*CPU, byte) byte {
	return func(_ *CPU, v byte) byte { return v &^ (1 << bit) }
}

func smb(bit byte) func(*CPU, byte) byte {
	return func(_ *CPU, v byte) byte { return v | 1<<bit }
}

// Register sources for stores.

func regA(c *CPU) byte { return c.a }
func regX(c *CPU) byte { return c.x }
func regY(c *CPU) byte { return c.y }
func zero(*CPU) byte   { return 0 }

// Instruction shapes.

func load(m mode, f func(*CPU, byte, uint16)) func(*CPU) {
	return func(c *CPU) {
		ea := m(c)
		v := c.read(ea)
		if c.err == nil {
			f(c, v, ea)
		}
	}
}

func store(m mode, reg func(*CPU) byte) func(*CPU) {
	return func(c *CPU) {
		ea := m(c)
		c.write(ea, reg(c))
	}
}

func modify(m mode, f func(*CPU, byte) byte) func(*CPU) {
	return func(c *CPU) {
		ea := m(c)
		v := c.readLocked(ea)
		c.readLocked(ea)
		if c.err != nil {
			return
		}
		c.writeLocked(ea, f(c, v))
	}
}

func implied(f func(*CPU)) func(*CPU) {
	return func(c *CPU) {
		c.read(c.pc)
		if c.err == nil {
			f(c)
		}
	}
}

func accumulator(f func(*CPU, byte) byte) func(*CPU) {
	return implied(func(c *CPU) { c.a = f(c, c.a) })
}

func (c *CPU) takeBranch(off byte) {
	c.read(c.pc)
	target := c.pc + uint16(int8(off))
	if target&0xFF00 != c.pc&0xFF00 {
		c.read(c.pc)
	}
	if c.err == nil {
		c.pc = target
	}
}

func branch(f flag, set bool) func(*CPU) {
	return func(c *CPU) {
		off := c.fetch()
		if c.err == nil && c.p.has(f) == set {
			c.takeBranch(off)
		}
	}
}

func bbx(bit byte, set bool) func(*CPU) {
	return func(c *CPU) {
		ea := uint16(c.fetch())
		v := c.read(ea)
		c.read(ea)
		off := c.fetch()
		if c.err == nil && (v&(1<<bit) != 0) == set {
			c.takeBranch(off)
		}
	}
}

func push(reg func(*CPU) byte) func(*CPU) {
	return implied(func(c *CPU) { c.push(reg(c)) })
}

func pull(set func(*CPU, byte)) func(*CPU) {
	return implied(func(c *CPU) {
		c.read(0x0100 | uint16(c.s))
		v := c.pull()
		if c.err == nil {
			set(c, v)
		}
	})
}

// Control flow.

func brk(c *CPU) {
	c.fetch()
	c.pushPC()
	c.push(byte(c.p | flagU | flagB))
	c.p.set(true, flagI)
	c.p.set(false, flagD)
	c.pc = c.vector(VectorIRQ)
}

func jsr(c *CPU) {
	lo := c.fetch()
	c.read(0x0100 | uint16(c.s))
	c.pushPC()
	hi := c.fetch()
	if c.err == nil {
		c.pc = uint16(hi)<<8 | uint16(lo)
	}
}

func rts(c *CPU) {
	c.read(c.pc)
	c.read(0x0100 | uint16(c.s))
	pc := c.pullPC()
	c.read(pc)
	if c.err == nil {
		c.pc = pc + 1
	}
}

func rti(c *CPU) {
	c.read(c.pc)
	c.read(0x0100 | uint16(c.s))
	p := c.pull()
	pc := c.pullPC()
	if c.err == nil {
		c.p = flag(p) &^ flagB
		c.pc = pc
	}
}

func jmpAbs(c *CPU) {
	pc := c.fetch16()
	if c.err == nil {
		c.pc = pc
	}
}

func jmpInd(c *CPU) {
	ptr := c.fetch16()
	c.read(c.pc - 1)
	lo := c.read(ptr)
	hi := c.read(ptr + 1)
	if c.err == nil {
		c.pc = uint16(hi)<<8 | uint16(lo)
	}
}

func jmpIndX(c *CPU) {
	ptr := c.fetch16() + uint16(c.x)
	c.read(c.pc - 1)
	lo := c.read(ptr)
	hi := c.read(ptr + 1)
	if c.err == nil {
		c.pc = uint16(hi)<<8 | uint16(lo)
	}
}

func wai(c *CPU) {
	c.read(c.pc)
	c.read(c.pc)
	c.waiting = c.err == nil
}

func stp(c *CPU) {
	c.read(c.pc)
	c.read(c.pc)
	c.stopped = c.err == nil
}

// nop5C is the eight-cycle three-byte NOP.
func nop5C(c *CPU) {
	ea := c.fetch16()
	for i := 0; i < 5; i++ {
		c.read(ea)
	}
}

func nop1(*CPU) {}

func def(op byte, name string, size byte, exec func(*CPU)) {
	table[op] = instr{name: name, size: size, exec: exec}
}

func init() {
	for op := range table {
		def(byte(op), "NOP", 1, nop1) // x3, xB
	}

	def(0x00 /* BRK | 7 */, "BRK", 2, brk)
	def(0x10 /* BPL | 2** */, "BPL", 2, branch(flagN, false))
	def(0x20 /* JSR | 6 */, "JSR", 3, jsr)
	def(0x30 /* BMI | 2** */, "BMI", 2, branch(flagN, true))
	def(0x40 /* RTI | 6 */, "RTI", 1, rti)
	def(0x50 /* BVC | 2** */, "BVC", 2, branch(flagV, false))
	def(0x60 /* RTS | 6 */, "RTS", 1, rts)
	def(0x70 /* BVS | 2** */, "BVS", 2, branch(flagV, true))
	def(0x80 /* BRA | 3* */, "BRA", 2, branch(0, false)) // no bits, never set
	def(0x90 /* BCC | 2** */, "BCC", 2, branch(flagC, false))
	def(0xA0 /* LDY | 2 */, "LDY", 2, load(imm, ldy))
	def(0xB0 /* BCS | 2** */, "BCS", 2, branch(flagC, true))
	def(0xC0 /* CPY | 2 */, "CPY", 2, load(imm, cpy))
	def(0xD0 /* BNE | 2** */, "BNE", 2, branch(flagZ, false))
	def(0xE0 /* CPX | 2 */, "CPX", 2, load(imm, cpx))
	def(0xF0 /* BEQ | 2** */, "BEQ", 2, branch(flagZ, true))

	def(0x01 /* ORA | 6 */, "ORA", 2, load(indX, ora))
	def(0x11 /* ORA | 5* */, "ORA", 2, load(indY, ora))
	def(0x21 /* AND | 6 */, "AND", 2, load(indX, and))
	def(0x31 /* AND | 5* */, "AND", 2, load(indY, and))
	def(0x41 /* EOR | 6 */, "EOR", 2, load(indX, eor))
	def(0x51 /* EOR | 5* */, "EOR", 2, load(indY, eor))
	def(0x61 /* ADC | 6 */, "ADC", 2, load(indX, adc))
	def(0x71 /* ADC | 5* */, "ADC", 2, load(indY, adc))
	def(0x81 /* STA | 6 */, "STA", 2, store(indX, regA))
	def(0x91 /* STA | 6 */, "STA", 2, store(indYw, regA))
	def(0xA1 /* LDA | 6 */, "LDA", 2, load(indX, lda))
	def(0xB1 /* LDA | 5* */, "LDA", 2, load(indY, lda))
	def(0xC1 /* CMP | 6 */, "CMP", 2, load(indX, cmp))
	def(0xD1 /* CMP | 5* */, "CMP", 2, load(indY, cmp))
	def(0xE1 /* SBC | 6 */, "SBC", 2, load(indX, sbc))
	def(0xF1 /* SBC | 5* */, "SBC", 2, load(indY, sbc))

	def(0x02 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0x12 /* ORA | 5 */, "ORA", 2, load(ind, ora))
	def(0x22 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0x32 /* AND | 5 */, "AND", 2, load(ind, and))
	def(0x42 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0x52 /* EOR | 5 */, "EOR", 2, load(ind, eor))
	def(0x62 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0x72 /* ADC | 5 */, "ADC", 2, load(ind, adc))
	def(0x82 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0x92 /* STA | 5 */, "STA", 2, store(ind, regA))
	def(0xA2 /* LDX | 2 */, "LDX", 2, load(imm, ldx))
	def(0xB2 /* LDA | 5 */, "LDA", 2, load(ind, lda))
	def(0xC2 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0xD2 /* CMP | 5 */, "CMP", 2, load(ind, cmp))
	def(0xE2 /* NOP | 2 */, "NOP", 2, load(imm, nop))
	def(0xF2 /* SBC | 5 */, "SBC", 2, load(ind, sbc))

	def(0x04 /* TSB | 5 */, "TSB", 2, modify(zp, tsb))
	def(0x14 /* TRB | 5 */, "TRB", 2, modify(zp, trb))
	def(0x24 /* BIT | 3 */, "BIT", 2, load(zp, bit))
	def(0x34 /* BIT | 4 */, "BIT", 2, load(zpX, bit))
	def(0x44 /* NOP | 3 */, "NOP", 2, load(zp, nop))
	def(0x54 /* NOP | 4 */, "NOP", 2, load(zpX, nop))
	def(0x64 /* STZ | 3 */, "STZ", 2, store(zp, zero))
	def(0x74 /* STZ | 4 */, "STZ", 2, store(zpX, zero))
	def(0x84 /* STY | 3 */, "STY", 2, store(zp, regY))
	def(0x94 /* STY | 4 */, "STY", 2, store(zpX, regY))
	def(0xA4 /* LDY | 3 */, "LDY", 2, load(zp, ldy))
	def(0xB4 /* LDY | 4 */, "LDY", 2, load(zpX, ldy))
	def(0xC4 /* CPY | 3 */, "CPY", 2, load(zp, cpy))
	def(0xD4 /* NOP | 4 */, "NOP", 2, load(zpX, nop))
	def(0xE4 /* CPX | 3 */, "CPX", 2, load(zp, cpx))
	def(0xF4 /* NOP | 4 */, "NOP", 2, load(zpX, nop))

	def(0x05 /* ORA | 3 */, "ORA", 2, load(zp, ora))
	def(0x15 /* ORA | 4 */, "ORA", 2, load(zpX, ora))
	def(0x25 /* AND | 3 */, "AND", 2, load(zp, and))
	def(0x35 /* AND | 4 */, "AND", 2, load(zpX, and))
	def(0x45 /* EOR | 3 */, "EOR", 2, load(zp, eor))
	def(0x55 /* EOR | 4 */, "EOR", 2, load(zpX, eor))
	def(0x65 /* ADC | 3 */, "ADC", 2, load(zp, adc))
	def(0x75 /* ADC | 4 */, "ADC", 2, load(zpX, adc))
	def(0x85 /* STA | 3 */, "STA", 2, store(zp, regA))
	def(0x95 /* STA | 4 */, "STA", 2, store(zpX, regA))
	def(0xA5 /* LDA | 3 */, "LDA", 2, load(zp, lda))
	def(0xB5 /* LDA | 4 */, "LDA", 2, load(zpX, lda))
	def(0xC5 /* CMP | 3 */, "CMP", 2, load(zp, cmp))
	def(0xD5 /* CMP | 4 */, "CMP", 2, load(zpX, cmp))
	def(0xE5 /* SBC | 3 */, "SBC", 2, load(zp, sbc))
	def(0xF5 /* SBC | 4 */, "SBC", 2, load(zpX, sbc))

	def(0x06 /* ASL | 5 */, "ASL", 2, modify(zp, asl))
	def(0x16 /* ASL | 6 */, "ASL", 2, modify(zpX, asl))
	def(0x26 /* ROL | 5 */, "ROL", 2, modify(zp, rol))
	def(0x36 /* ROL | 6 */, "ROL", 2, modify(zpX, rol))
	def(0x46 /* LSR | 5 */, "LSR", 2, modify(zp, lsr))
	def(0x56 /* LSR | 6 */, "LSR", 2, modify(zpX, lsr))
	def(0x66 /* ROR | 5 */, "ROR", 2, modify(zp, ror))
	def(0x76 /* ROR | 6 */, "ROR", 2, modify(zpX, ror))
	def(0x86 /* STX | 3 */, "STX", 2, store(zp, regX))
	def(0x96 /* STX | 4 */, "STX", 2, store(zpY, regX))
	def(0xA6 /* LDX | 3 */, "LDX", 2, load(zp, ldx))
	def(0xB6 /* LDX | 4 */, "LDX", 2, load(zpY, ldx))
	def(0xC6 /* DEC | 5 */, "DEC", 2, modify(zp, dec))
	def(0xD6 /* DEC | 6 */, "DEC", 2, modify(zpX, dec))
	def(0xE6 /* INC | 5 */, "INC", 2, modify(zp, inc))
	def(0xF6 /* INC | 6 */, "INC", 2, modify(zpX, inc))

	for bit := byte(0); bit < 8; bit++ {
		def(0x07+bit<<4 /* RMBn | 5 */, "RMB"+string('0'+rune(bit)), 2, modify(zp, rmb(bit)))
		def(0x87+bit<<4 /* SMBn | 5 */, "SMB"+string('0'+rune(bit)), 2, modify(zp, smb(bit)))
		def(0x0F+bit<<4 /* BBRn | 5** */, "BBR"+string('0'+rune(bit)), 3, bbx(bit, false))
		def(0x8F+bit<<4 /* BBSn | 5** */, "BBS"+string('0'+rune(bit)), 3, bbx(bit, true))
	}

	def(0x08 /* PHP | 3 */, "PHP", 1, push(func(c *CPU) byte { return byte(c.p | flagU | flagB) }))
	def(0x18 /* CLC | 2 */, "CLC", 1, implied(func(c *CPU) { c.p.set(false, flagC) }))
	def(0x28 /* PLP | 4 */, "PLP", 1, pull(func(c *CPU, v byte) { c.p = flag(v) &^ flagB }))
	def(0x38 /* SEC | 2 */, "SEC", 1, implied(func(c *CPU) { c.p.set(true, flagC) }))
	def(0x48 /* PHA | 3 */, "PHA", 1, push(regA))
	def(0x58 /* CLI | 2 */, "CLI", 1, implied(func(c *CPU) { c.p.set(false, flagI) }))
	def(0x68 /* PLA | 4 */, "PLA", 1, pull(func(c *CPU, v byte) { c.a = c.nz(v) }))
	def(0x78 /* SEI | 2 */, "SEI", 1, implied(func(c *CPU) { c.p.set(true, flagI) }))
	def(0x88 /* DEY | 2 */, "DEY", 1, implied(func(c *CPU) { c.y = c.nz(c.y - 1) }))
	def(0x98 /* TYA | 2 */, "TYA", 1, implied(func(c *CPU) { c.a = c.nz(c.y) }))
	def(0xA8 /* TAY | 2 */, "TAY", 1, implied(func(c *CPU) { c.y = c.nz(c.a) }))
	def(0xB8 /* CLV | 2 */, "CLV", 1, implied(func(c *CPU) { c.p.set(false, flagV) }))
	def(0xC8 /* INY | 2 */, "INY", 1, implied(func(c *CPU) { c.y = c.nz(c.y + 1) }))
	def(0xD8 /* CLD | 2 */, "CLD", 1, implied(func(c *CPU) { c.p.set(false, flagD) }))
	def(0xE8 /* INX | 2 */, "INX", 1, implied(func(c *CPU) { c.x = c.nz(c.x + 1) }))
	def(0xF8 /* SED | 2 */, "SED", 1, implied(func(c *CPU) { c.p.set(true, flagD) }))

	def(0x09 /* ORA | 2 */, "ORA", 2, load(imm, ora))
	def(0x19 /* ORA | 4* */, "ORA", 3, load(absY, ora))
	def(0x29 /* AND | 2 */, "AND", 2, load(imm, and))
	def(0x39 /* AND | 4* */, "AND", 3, load(absY, and))
	def(0x49 /* EOR | 2 */, "EOR", 2, load(imm, eor))
	def(0x59 /* EOR | 4* */, "EOR", 3, load(absY, eor))
	def(0x69 /* ADC | 2 */, "ADC", 2, load(imm, adc))
	def(0x79 /* ADC | 4* */, "ADC", 3, load(absY, adc))
	def(0x89 /* BIT | 2 */, "BIT", 2, load(imm, bitImm))
	def(0x99 /* STA | 5 */, "STA", 3, store(absYw, regA))
	def(0xA9 /* LDA | 2 */, "LDA", 2, load(imm, lda))
	def(0xB9 /* LDA | 4* */, "LDA", 3, load(absY, lda))
	def(0xC9 /* CMP | 2 */, "CMP", 2, load(imm, cmp))
	def(0xD9 /* CMP | 4* */, "CMP", 3, load(absY, cmp))
	def(0xE9 /* SBC | 2 */, "SBC", 2, load(imm, sbc))
	def(0xF9 /* SBC | 4* */, "SBC", 3, load(absY, sbc))

	def(0x0A /* ASL | 2 */, "ASL", 1, accumulator(asl))
	def(0x1A /* INC | 2 */, "INC", 1, accumulator(inc))
	def(0x2A /* ROL | 2 */, "ROL", 1, accumulator(rol))
	def(0x3A /* DEC | 2 */, "DEC", 1, accumulator(dec))
	def(0x4A /* LSR | 2 */, "LSR", 1, accumulator(lsr))
	def(0x5A /* PHY | 3 */, "PHY", 1, push(regY))
	def(0x6A /* ROR | 2 */, "ROR", 1, accumulator(ror))
	def(0x7A /* PLY | 4 */, "PLY", 1, pull(func(c *CPU, v byte) { c.y = c.nz(v) }))
	def(0x8A /* TXA | 2 */, "TXA", 1, implied(func(c *CPU) { c.a = c.nz(c.x) }))
	def(0x9A /* TXS | 2 */, "TXS", 1, implied(func(c *CPU) { c.s = c.x }))
	def(0xAA /* TAX | 2 */, "TAX", 1, implied(func(c *CPU) { c.x = c.nz(c.a) }))
	def(0xBA /* TSX | 2 */, "TSX", 1, implied(func(c *CPU) { c.x = c.nz(c.s) }))
	def(0xCA /* DEX | 2 */, "DEX", 1, implied(func(c *CPU) { c.x = c.nz(c.x - 1) }))
	def(0xDA /* PHX | 3 */, "PHX", 1, push(regX))
	def(0xEA /* NOP | 2 */, "NOP", 1, implied(func(*CPU) {}))
	def(0xFA /* PLX | 4 */, "PLX", 1, pull(func(c *CPU, v byte) { c.x = c.nz(v) }))

	def(0xCB /* WAI | 3 */, "WAI", 1, wai)
	def(0xDB /* STP | 3 */, "STP", 1, stp)

	def(0x0C /* TSB | 6 */, "TSB", 3, modify(abs, tsb))
	def(0x1C /* TRB | 6 */, "TRB", 3, modify(abs, trb))
	def(0x2C /* BIT | 4 */, "BIT", 3, load(abs, bit))
	def(0x3C /* BIT | 4* */, "BIT", 3, load(absX, bit))
	def(0x4C /* JMP | 3 */, "JMP", 3, jmpAbs)
	def(0x5C /* NOP | 8 */, "NOP", 3, nop5C)
	def(0x6C /* JMP | 6 */, "JMP", 3, jmpInd)
	def(0x7C /* JMP | 6 */, "JMP", 3, jmpIndX)
	def(0x8C /* STY | 4 */, "STY", 3, store(abs, regY))
	def(0x9C /* STZ | 4 */, "STZ", 3, store(abs, zero))
	def(0xAC /* LDY | 4 */, "LDY", 3, load(abs, ldy))
	def(0xBC /* LDY | 4* */, "LDY", 3, load(absX, ldy))
	def(0xCC /* CPY | 4 */, "CPY", 3, load(abs, cpy))
	def(0xDC /* NOP | 4 */, "NOP", 3, load(abs, nop))
	def(0xEC /* CPX | 4 */, "CPX", 3, load(abs, cpx))
	def(0xFC /* NOP | 4 */, "NOP", 3, load(abs, nop))

	def(0x0D /* ORA | 4 */, "ORA", 3, load(abs, ora))
	def(0x1D /* ORA | 4* */, "ORA", 3, load(absX, ora))
	def(0x2D /* AND | 4 */, "AND", 3, load(abs, and))
	def(0x3D /* AND | 4* */, "AND", 3, load(absX, and))
	def(0x4D /* EOR | 4 */, "EOR", 3, load(abs, eor))
	def(0x5D /* EOR | 4* */, "EOR", 3, load(absX, eor))
	def(0x6D /* ADC | 4 */, "ADC", 3, load(abs, adc))
	def(0x7D /* ADC | 4* */, "ADC", 3, load(absX, adc))
	def(0x8D /* STA | 4 */, "STA", 3, store(abs, regA))
	def(0x9D /* STA | 5 */, "STA", 3, store(absXw, regA))
	def(0xAD /* LDA | 4 */, "LDA", 3, load(abs, lda))
	def(0xBD /* LDA | 4* */, "LDA", 3, load(absX, lda))
	def(0xCD /* CMP | 4 */, "CMP", 3, load(abs, cmp))
	def(0xDD /* CMP | 4* */, "CMP", 3, load(absX, cmp))
	def(0xED /* SBC | 4 */, "SBC", 3, load(abs, sbc))
	def(0xFD /* SBC | 4* */, "SBC", 3, load(absX, sbc))

	def(0x0E /* ASL | 6 */, "ASL", 3, modify(abs, asl))
	def(0x1E /* ASL | 6* */, "ASL", 3, modify(absX, asl))
	def(0x2E /* ROL | 6 */, "ROL", 3, modify(abs, rol))
	def(0x3E /* ROL | 6* */, "ROL", 3, modify(absX, rol))
	def(0x4E /* LSR | 6 */, "LSR", 3, modify(abs, lsr))
	def(0x5E /* LSR | 6* */, "LSR", 3, modify(absX, lsr))
	def(0x6E /* ROR | 6 */, "ROR", 3, modify(abs, ror))
	def(0x7E /* ROR | 6* */, "ROR", 3, modify(absX, ror))
	def(0x8E /* STX | 4 */, "STX", 3, store(abs, regX))
	def(0x9E /* STZ | 5 */, "STZ", 3, store(absXw, zero))
	def(0xAE /* LDX | 4 */, "LDX", 3, load(abs, ldx))
	def(0xBE /* LDX | 4* */, "LDX", 3, load(absY, ldx))
	def(0xCE /* DEC | 6 */, "DEC", 3, modify(abs, dec))
	def(0xDE /* DEC | 7 */, "DEC", 3, modify(absXw, dec))
	def(0xEE /* INC | 6 */, "INC", 3, modify(abs, inc))
	def(0xFE /* INC | 7 */, "INC", 3, modify(absXw, inc))
}
