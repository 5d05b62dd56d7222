package cpu

// Addressing modes. Each issues the addressing cycles of its mode and
// returns the effective address. The "w" variants always take the
// index-fixup cycle; the others take it only on a page crossing.

type mode func(c *CPU) uint16

func imm(c *CPU) uint16 {
	ea := c.pc
	c.pc++
	return ea
}

func zp(c *CPU) uint16 {
	return uint16(c.fetch())
}

func zpX(c *CPU) uint16 {
	b := c.fetch()
	c.read(c.pc - 1)
	return uint16(b + c.x)
}

func zpY(c *CPU) uint16 {
	b := c.fetch()
	c.read(c.pc - 1)
	return uint16(b + c.y)
}

func abs(c *CPU) uint16 {
	return c.fetch16()
}

func indexed(c *CPU, base uint16, idx byte, always bool) uint16 {
	ea := base + uint16(idx)
	if always || ea&0xFF00 != base&0xFF00 {
		c.read(c.pc - 1)
	}
	return ea
}

func absX(c *CPU) uint16  { return indexed(c, c.fetch16(), c.x, false) }
func absY(c *CPU) uint16  { return indexed(c, c.fetch16(), c.y, false) }
func absXw(c *CPU) uint16 { return indexed(c, c.fetch16(), c.x, true) }
func absYw(c *CPU) uint16 { return indexed(c, c.fetch16(), c.y, true) }

// zpPointer reads a little-endian pointer from the zero page. The high
// byte wraps within page zero.
func zpPointer(c *CPU, b byte) uint16 {
	lo := c.read(uint16(b))
	hi := c.read(uint16(b + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// (zp,X)
func indX(c *CPU) uint16 {
	b := c.fetch()
	c.read(c.pc - 1)
	return zpPointer(c, b+c.x)
}

// (zp),Y
func indY(c *CPU) uint16 {
	b := c.fetch()
	return indexed(c, zpPointer(c, b), c.y, false)
}

func indYw(c *CPU) uint16 {
	b := c.fetch()
	return indexed(c, zpPointer(c, b), c.y, true)
}

// (zp)
func ind(c *CPU) uint16 {
	return zpPointer(c, c.fetch())
}
