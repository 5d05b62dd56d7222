package cpu

func (c *CPU) nz(v byte) byte {
	c.p.set(v&0x80 != 0, flagN)
	c.p.set(v == 0, flagZ)
	return v
}

func (c *CPU) carry() byte {
	if c.p.has(flagC) {
		return 1
	}
	return 0
}

func (c *CPU) compare(reg, v byte) {
	c.nz(reg - v)
	c.p.set(reg >= v, flagC)
}

func (c *CPU) bit(v byte) {
	c.p.set(v&c.a == 0, flagZ)
	c.p.set(v&0x80 != 0, flagN)
	c.p.set(v&0x40 != 0, flagV)
}

func (c *CPU) asl(v byte) byte {
	c.p.set(v&0x80 != 0, flagC)
	return c.nz(v << 1)
}

func (c *CPU) lsr(v byte) byte {
	c.p.set(v&0x01 != 0, flagC)
	return c.nz(v >> 1)
}

func (c *CPU) rol(v byte) byte {
	in := c.carry()
	c.p.set(v&0x80 != 0, flagC)
	return c.nz(v<<1 | in)
}

func (c *CPU) ror(v byte) byte {
	in := c.carry()
	c.p.set(v&0x01 != 0, flagC)
	return c.nz(v>>1 | in<<7)
}

// adc adds v and carry to A. ea is the operand address, re-read for the
// extra decimal-mode cycle.
func (c *CPU) adc(v byte, ea uint16) {
	if !c.p.has(flagD) {
		sum := uint16(c.a) + uint16(v) + uint16(c.carry())
		r := byte(sum)
		c.p.set(sum > 0xFF, flagC)
		c.p.set((c.a^r)&(v^r)&0x80 != 0, flagV)
		c.a = c.nz(r)
		return
	}
	lo := int(c.a&0x0F) + int(v&0x0F) + int(c.carry())
	if lo >= 0x0A {
		lo = ((lo + 0x06) & 0x0F) + 0x10
	}
	sum := int(c.a&0xF0) + int(v&0xF0) + lo
	signed := int(int8(c.a&0xF0)) + int(int8(v&0xF0)) + lo
	c.p.set(signed < -128 || signed > 127, flagV)
	if sum >= 0xA0 {
		sum += 0x60
	}
	c.p.set(sum >= 0x100, flagC)
	c.read(ea)
	c.a = c.nz(byte(sum))
}

// sbc subtracts v and borrow from A.
func (c *CPU) sbc(v byte, ea uint16) {
	if !c.p.has(flagD) {
		c.adc(^v, ea)
		return
	}
	borrow := 1 - int(c.carry())
	bin := int(c.a) - int(v) - borrow
	c.p.set((c.a^v)&(c.a^byte(bin))&0x80 != 0, flagV)
	c.p.set(bin >= 0, flagC)
	lo := int(c.a&0x0F) - int(v&0x0F) - borrow
	r := bin
	if r < 0 {
		r -= 0x60
	}
	if lo < 0 {
		r -= 0x06
	}
	c.read(ea)
	c.a = c.nz(byte(r))
}
