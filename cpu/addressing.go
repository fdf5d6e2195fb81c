package cpu

// Every addressing-mode function below yields an effective address and
// advances PC past whatever operand bytes it consumed. None of them
// reads or writes the operand's target; that is left to the instruction
// that calls them, which is the only place that knows whether the
// operand should be loaded, stored, or read-modify-written.
type addrFunc func(c *Chip) (uint16, error)

// addrImmediate yields PC itself as the address and advances PC past
// the one-byte operand that lives there.
func addrImmediate(c *Chip) (uint16, error) {
	addr := c.pc
	c.pc++
	return addr, nil
}

func addrZeroPage(c *Chip) (uint16, error) {
	off, err := c.fetch()
	return uint16(off), err
}

func addrZeroPageX(c *Chip) (uint16, error) {
	off, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(off + c.x), nil
}

func addrZeroPageY(c *Chip) (uint16, error) {
	off, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(off + c.y), nil
}

func addrAbsolute(c *Chip) (uint16, error) {
	return c.fetch16()
}

func addrAbsoluteX(c *Chip) (uint16, error) {
	base, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	return base + uint16(c.x), nil
}

func addrAbsoluteY(c *Chip) (uint16, error) {
	base, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	return base + uint16(c.y), nil
}

// addrZeroPageIndirect implements (zp): a pointer held in two
// consecutive zero-page cells, wrapping within the page. Rockwell and
// WDC only; gated by the caller via personalityGated.
func addrZeroPageIndirect(c *Chip) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	lo, err := c.readByte(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// addrIndirectX implements (zp,X): index into the zero page first, then
// dereference the resulting pointer.
func addrIndirectX(c *Chip) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	zp += c.x
	lo, err := c.readByte(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// addrIndirectY implements (zp),Y: dereference a zero-page pointer, then
// index the result by Y.
func addrIndirectY(c *Chip) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	lo, err := c.readByte(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	base := uint16(hi)<<8 | uint16(lo)
	return base + uint16(c.y), nil
}

// addrAbsoluteIndirect implements JMP (abs). Unlike the NMOS part, the
// high byte of the pointer is fetched from ptr+1 with a normal 16-bit
// carry instead of wrapping within ptr's own page, so JMP ($xxFF) does
// not fetch its high byte from $xx00.
func addrAbsoluteIndirect(c *Chip) (uint16, error) {
	ptr, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	lo, err := c.readByte(ptr)
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(ptr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// addrAbsoluteIndirectX implements JMP (abs,X), a 65C02 addition that
// indexes the pointer by X before dereferencing it.
func addrAbsoluteIndirectX(c *Chip) (uint16, error) {
	base, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	ptr := base + uint16(c.x)
	lo, err := c.readByte(ptr)
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(ptr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
