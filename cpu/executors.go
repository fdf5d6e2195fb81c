package cpu

import "github.com/nanolith/jemu65c02-sub000/irq"

// executor runs one instruction's worth of behavior, assuming PC already
// points past the opcode byte, and reports the actual cycle count it
// consumed (which for ADC/SBC in decimal mode depends on Personality and
// is not known until it runs).
type executor func(c *Chip, op uint8) (int, error)

// invalidOpcode implements the configured EmulationMode's reaction to an
// opcode with no defined meaning: Strict crashes the processor, NopMap
// treats it as a two-cycle no-op.
func (c *Chip) invalidOpcode(op uint8) (int, error) {
	if c.emulationMode == Strict {
		c.crashed = true
		return 2, &InvalidOpcodeError{Opcode: op, PC: c.pc - 1}
	}
	return 2, nil
}

func execInvalid(c *Chip, op uint8) (int, error) {
	return c.invalidOpcode(op)
}

// personalityGated wraps exec so it falls back to invalidOpcode whenever
// the running Chip's Personality is MOS, for the one addressing mode
// (zero-page indirect) that MOS never implemented.
func personalityGated(exec executor) executor {
	return func(c *Chip, op uint8) (int, error) {
		if c.personality == MOS {
			return c.invalidOpcode(op)
		}
		return exec(c, op)
	}
}

// makeLoad builds an executor for LDA/LDX/LDY: read through addr into
// the register dst selects, then set N and Z from the loaded value.
func makeLoad(addr addrFunc, cost int, dst func(c *Chip) *uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		*dst(c) = v
		c.setZN(v)
		return cost, nil
	}
}

// makeStore builds an executor for STA/STX/STY/STZ: write sel's value
// through addr. STZ's selector just returns 0.
func makeStore(addr addrFunc, cost int, sel func(c *Chip) uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		return cost, c.writeByte(a, sel(c))
	}
}

// makeALU builds an executor for a read-accumulator instruction (AND,
// ORA, EOR): read through addr and feed the value to apply.
func makeALU(addr addrFunc, cost int, apply func(c *Chip, v uint8)) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		apply(c, v)
		return cost, nil
	}
}

// makeADC and makeSBC are makeALU specialized for the two instructions
// whose actual cost depends on personality and the decimal flag.
func makeADC(addr addrFunc, cost int) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		c.adc(v)
		return cost + c.bcdPenalty(), nil
	}
}

func makeSBC(addr addrFunc, cost int) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		c.sbc(v)
		return cost + c.bcdPenalty(), nil
	}
}

// makeRMW builds an executor for a read-modify-write memory instruction
// (ASL, LSR, ROL, ROR, INC, DEC): read through addr, transform with
// apply, write the result back.
func makeRMW(addr addrFunc, cost int, apply func(c *Chip, v uint8) uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		return cost, c.writeByte(a, apply(c, v))
	}
}

// makeAccumulatorRMW builds an executor for the accumulator form of
// ASL/LSR/ROL/ROR, which reads and writes A instead of memory.
func makeAccumulatorRMW(cost int, apply func(c *Chip, v uint8) uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		c.a = apply(c, c.a)
		return cost, nil
	}
}

// makeBitTest builds an executor for BIT.
func makeBitTest(addr addrFunc, cost int, immediate bool) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		c.bit(v, immediate)
		return cost, nil
	}
}

// makeCompare builds an executor for CMP/CPX/CPY.
func makeCompare(addr addrFunc, cost int, reg func(c *Chip) uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		v, err := c.readByte(a)
		if err != nil {
			return 0, err
		}
		c.cmp(reg(c), v)
		return cost, nil
	}
}

// makeTRB and makeTSB build executors for the two 65C02 bit-manipulation
// instructions, whose flag and write-back rules don't fit makeRMW.
func makeTRB(addr addrFunc, cost int) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		return cost, c.trb(a)
	}
}

func makeTSB(addr addrFunc, cost int) executor {
	return func(c *Chip, op uint8) (int, error) {
		a, err := addr(c)
		if err != nil {
			return 0, err
		}
		return cost, c.tsb(a)
	}
}

// makeBranch builds an executor for a conditional branch. The offset is
// always consumed; PC only moves to the target when cond holds.
func makeBranch(cond func(c *Chip) bool) executor {
	return func(c *Chip, op uint8) (int, error) {
		off, err := c.fetch()
		if err != nil {
			return 0, err
		}
		if !cond(c) {
			return 2, nil
		}
		c.pc = c.pc + uint16(int16(int8(off)))
		return 3, nil
	}
}

func branchAlways(c *Chip) bool { return true }

// makeTransfer builds an executor for a register-to-register move that
// sets N and Z from the copied value (everything except TXS).
func makeTransfer(get func(c *Chip) uint8, set func(c *Chip, v uint8)) executor {
	return func(c *Chip, op uint8) (int, error) {
		v := get(c)
		set(c, v)
		c.setZN(v)
		return 2, nil
	}
}

func execTXS(c *Chip, op uint8) (int, error) {
	c.sp = c.x
	return 2, nil
}

// makeIncDec builds an executor for INX/INY/DEX/DEY and the 65C02
// accumulator forms INC A/DEC A.
func makeIncDec(reg func(c *Chip) *uint8, delta uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		p := reg(c)
		*p += delta
		c.setZN(*p)
		return 2, nil
	}
}

func execPHA(c *Chip, op uint8) (int, error) { return 3, c.push(c.a) }
func execPHX(c *Chip, op uint8) (int, error) { return 3, c.push(c.x) }
func execPHY(c *Chip, op uint8) (int, error) { return 3, c.push(c.y) }

func execPHP(c *Chip, op uint8) (int, error) {
	return 3, c.push(c.p | StatusUnused | StatusBreak)
}

func makePullReg(dst func(c *Chip) *uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		v, err := c.pull()
		if err != nil {
			return 0, err
		}
		*dst(c) = v
		c.setZN(v)
		return 4, nil
	}
}

func execPLP(c *Chip, op uint8) (int, error) {
	v, err := c.pull()
	if err != nil {
		return 0, err
	}
	c.p = (v | StatusUnused) &^ StatusBreak
	return 4, nil
}

func execJMPAbs(c *Chip, op uint8) (int, error) {
	addr, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	c.pc = addr
	return 3, nil
}

func makeJMPIndirect(addr addrFunc, cost int) executor {
	return func(c *Chip, op uint8) (int, error) {
		target, err := addr(c)
		if err != nil {
			return 0, err
		}
		c.pc = target
		return cost, nil
	}
}

func execJSR(c *Chip, op uint8) (int, error) {
	addr, err := c.fetch16()
	if err != nil {
		return 0, err
	}
	if err := c.push16(c.pc - 1); err != nil {
		return 0, err
	}
	c.pc = addr
	return 6, nil
}

func execRTS(c *Chip, op uint8) (int, error) {
	ret, err := c.pull16()
	if err != nil {
		return 0, err
	}
	c.pc = ret + 1
	return 6, nil
}

func execRTI(c *Chip, op uint8) (int, error) {
	p, err := c.pull()
	if err != nil {
		return 0, err
	}
	c.p = (p | StatusUnused) &^ StatusBreak
	pc, err := c.pull16()
	if err != nil {
		return 0, err
	}
	c.pc = pc
	c.servicing = irq.None
	return 6, nil
}

// deliver implements the push-and-vector sequence shared by BRK, IRQ and
// NMI. Only the pushed copy of P's Break bit differs between BRK (set)
// and a hardware interrupt (clear); the live status register always
// comes out of this with I set and D cleared.
func (c *Chip) deliver(vec irq.Vector, breakFlag bool) error {
	pushed := c.p | StatusUnused
	if breakFlag {
		pushed |= StatusBreak
	} else {
		pushed &^= StatusBreak
	}
	if err := c.push16(c.pc); err != nil {
		return err
	}
	if err := c.push(pushed); err != nil {
		return err
	}
	c.p |= StatusInterrupt
	c.p &^= StatusDecimal
	addr, err := c.readVector(vec)
	if err != nil {
		return err
	}
	c.pc = addr
	if vec == irq.VectorNMI {
		c.servicing = irq.NMI
	} else {
		c.servicing = irq.IRQ
	}
	return nil
}

func execBRK(c *Chip, op uint8) (int, error) {
	c.pc++ // skip the signature byte following the opcode
	if err := c.deliver(irq.VectorIRQ, true); err != nil {
		return 0, err
	}
	return 7, nil
}

func execNOP(c *Chip, op uint8) (int, error) { return 2, nil }

func execSTP(c *Chip, op uint8) (int, error) {
	c.stopped = true
	return 3, nil
}

func execWAI(c *Chip, op uint8) (int, error) {
	c.waiting = true
	return 3, nil
}

func execClear(bit uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		c.p &^= bit
		return 2, nil
	}
}

func execSet(bit uint8) executor {
	return func(c *Chip, op uint8) (int, error) {
		c.p |= bit
		return 2, nil
	}
}
