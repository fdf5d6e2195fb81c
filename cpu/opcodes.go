package cpu

// opcodeEntry pairs an opcode's executor with the maximum number of
// cycles it can ever cost, the figure Run preflights a budget against
// before committing to execute. Actual cost, returned by exec itself,
// can be lower than maxCycles: ADC/SBC only reach it in decimal mode on a
// Rockwell or WDC part, a branch not taken costs 2 of its 3, and a
// personality-gated opcode rejected on MOS costs 2.
type opcodeEntry struct {
	exec      executor
	maxCycles int
}

func regA(c *Chip) *uint8 { return &c.a }
func regX(c *Chip) *uint8 { return &c.x }
func regY(c *Chip) *uint8 { return &c.y }

func getA(c *Chip) uint8 { return c.a }
func getX(c *Chip) uint8 { return c.x }
func getY(c *Chip) uint8 { return c.y }
func getSP(c *Chip) uint8 { return c.sp }

func setA(c *Chip, v uint8) { c.a = v }
func setX(c *Chip, v uint8) { c.x = v }
func setY(c *Chip, v uint8) { c.y = v }

var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry
	for i := range t {
		t[i] = opcodeEntry{exec: execInvalid, maxCycles: 2}
	}

	set := func(op uint8, cost int, e executor) { t[op] = opcodeEntry{exec: e, maxCycles: cost} }

	// ORA
	set(0x01, 6, makeALU(addrIndirectX, 6, (*Chip).ora))
	set(0x05, 3, makeALU(addrZeroPage, 3, (*Chip).ora))
	set(0x09, 2, makeALU(addrImmediate, 2, (*Chip).ora))
	set(0x0D, 4, makeALU(addrAbsolute, 4, (*Chip).ora))
	set(0x11, 5, makeALU(addrIndirectY, 5, (*Chip).ora))
	set(0x12, 5, personalityGated(makeALU(addrZeroPageIndirect, 5, (*Chip).ora)))
	set(0x15, 4, makeALU(addrZeroPageX, 4, (*Chip).ora))
	set(0x19, 4, makeALU(addrAbsoluteY, 4, (*Chip).ora))
	set(0x1D, 4, makeALU(addrAbsoluteX, 4, (*Chip).ora))

	// AND
	set(0x21, 6, makeALU(addrIndirectX, 6, (*Chip).and))
	set(0x25, 3, makeALU(addrZeroPage, 3, (*Chip).and))
	set(0x29, 2, makeALU(addrImmediate, 2, (*Chip).and))
	set(0x2D, 4, makeALU(addrAbsolute, 4, (*Chip).and))
	set(0x31, 5, makeALU(addrIndirectY, 5, (*Chip).and))
	set(0x32, 5, personalityGated(makeALU(addrZeroPageIndirect, 5, (*Chip).and)))
	set(0x35, 4, makeALU(addrZeroPageX, 4, (*Chip).and))
	set(0x39, 4, makeALU(addrAbsoluteY, 4, (*Chip).and))
	set(0x3D, 4, makeALU(addrAbsoluteX, 4, (*Chip).and))

	// EOR
	set(0x41, 6, makeALU(addrIndirectX, 6, (*Chip).eor))
	set(0x45, 3, makeALU(addrZeroPage, 3, (*Chip).eor))
	set(0x49, 2, makeALU(addrImmediate, 2, (*Chip).eor))
	set(0x4D, 4, makeALU(addrAbsolute, 4, (*Chip).eor))
	set(0x51, 5, makeALU(addrIndirectY, 5, (*Chip).eor))
	set(0x52, 5, personalityGated(makeALU(addrZeroPageIndirect, 5, (*Chip).eor)))
	set(0x55, 4, makeALU(addrZeroPageX, 4, (*Chip).eor))
	set(0x59, 4, makeALU(addrAbsoluteY, 4, (*Chip).eor))
	set(0x5D, 4, makeALU(addrAbsoluteX, 4, (*Chip).eor))

	// ADC (max cost carries the +1 BCD allowance; actual cost from makeADC)
	set(0x61, 7, makeADC(addrIndirectX, 6))
	set(0x65, 4, makeADC(addrZeroPage, 3))
	set(0x69, 3, makeADC(addrImmediate, 2))
	set(0x6D, 5, makeADC(addrAbsolute, 4))
	set(0x71, 6, makeADC(addrIndirectY, 5))
	set(0x72, 6, personalityGated(makeADC(addrZeroPageIndirect, 5)))
	set(0x75, 5, makeADC(addrZeroPageX, 4))
	set(0x79, 5, makeADC(addrAbsoluteY, 4))
	set(0x7D, 5, makeADC(addrAbsoluteX, 4))

	// SBC
	set(0xE1, 7, makeSBC(addrIndirectX, 6))
	set(0xE5, 4, makeSBC(addrZeroPage, 3))
	set(0xE9, 3, makeSBC(addrImmediate, 2))
	set(0xED, 5, makeSBC(addrAbsolute, 4))
	set(0xF1, 6, makeSBC(addrIndirectY, 5))
	set(0xF2, 6, personalityGated(makeSBC(addrZeroPageIndirect, 5)))
	set(0xF5, 5, makeSBC(addrZeroPageX, 4))
	set(0xF9, 5, makeSBC(addrAbsoluteY, 4))
	set(0xFD, 5, makeSBC(addrAbsoluteX, 4))

	// CMP / CPX / CPY
	set(0xC1, 6, makeCompare(addrIndirectX, 6, getA))
	set(0xC5, 3, makeCompare(addrZeroPage, 3, getA))
	set(0xC9, 2, makeCompare(addrImmediate, 2, getA))
	set(0xCD, 4, makeCompare(addrAbsolute, 4, getA))
	set(0xD1, 5, makeCompare(addrIndirectY, 5, getA))
	set(0xD2, 5, personalityGated(makeCompare(addrZeroPageIndirect, 5, getA)))
	set(0xD5, 4, makeCompare(addrZeroPageX, 4, getA))
	set(0xD9, 4, makeCompare(addrAbsoluteY, 4, getA))
	set(0xDD, 4, makeCompare(addrAbsoluteX, 4, getA))
	set(0xE0, 2, makeCompare(addrImmediate, 2, getX))
	set(0xE4, 3, makeCompare(addrZeroPage, 3, getX))
	set(0xEC, 4, makeCompare(addrAbsolute, 4, getX))
	set(0xC0, 2, makeCompare(addrImmediate, 2, getY))
	set(0xC4, 3, makeCompare(addrZeroPage, 3, getY))
	set(0xCC, 4, makeCompare(addrAbsolute, 4, getY))

	// ASL / LSR / ROL / ROR
	set(0x0A, 2, makeAccumulatorRMW(2, (*Chip).asl))
	set(0x06, 5, makeRMW(addrZeroPage, 5, (*Chip).asl))
	set(0x16, 6, makeRMW(addrZeroPageX, 6, (*Chip).asl))
	set(0x0E, 6, makeRMW(addrAbsolute, 6, (*Chip).asl))
	set(0x1E, 7, makeRMW(addrAbsoluteX, 7, (*Chip).asl))
	set(0x4A, 2, makeAccumulatorRMW(2, (*Chip).lsr))
	set(0x46, 5, makeRMW(addrZeroPage, 5, (*Chip).lsr))
	set(0x56, 6, makeRMW(addrZeroPageX, 6, (*Chip).lsr))
	set(0x4E, 6, makeRMW(addrAbsolute, 6, (*Chip).lsr))
	set(0x5E, 7, makeRMW(addrAbsoluteX, 7, (*Chip).lsr))
	set(0x2A, 2, makeAccumulatorRMW(2, (*Chip).rol))
	set(0x26, 5, makeRMW(addrZeroPage, 5, (*Chip).rol))
	set(0x36, 6, makeRMW(addrZeroPageX, 6, (*Chip).rol))
	set(0x2E, 6, makeRMW(addrAbsolute, 6, (*Chip).rol))
	set(0x3E, 7, makeRMW(addrAbsoluteX, 7, (*Chip).rol))
	set(0x6A, 2, makeAccumulatorRMW(2, (*Chip).ror))
	set(0x66, 5, makeRMW(addrZeroPage, 5, (*Chip).ror))
	set(0x76, 6, makeRMW(addrZeroPageX, 6, (*Chip).ror))
	set(0x6E, 6, makeRMW(addrAbsolute, 6, (*Chip).ror))
	set(0x7E, 7, makeRMW(addrAbsoluteX, 7, (*Chip).ror))

	// INC / DEC (memory, and the 65C02 accumulator forms)
	set(0x1A, 2, makeIncDec(regA, 1))
	set(0x3A, 2, makeIncDec(regA, 0xFF))
	set(0xE6, 5, makeRMW(addrZeroPage, 5, func(c *Chip, v uint8) uint8 { v++; c.setZN(v); return v }))
	set(0xF6, 6, makeRMW(addrZeroPageX, 6, func(c *Chip, v uint8) uint8 { v++; c.setZN(v); return v }))
	set(0xEE, 6, makeRMW(addrAbsolute, 6, func(c *Chip, v uint8) uint8 { v++; c.setZN(v); return v }))
	set(0xFE, 7, makeRMW(addrAbsoluteX, 7, func(c *Chip, v uint8) uint8 { v++; c.setZN(v); return v }))
	set(0xC6, 5, makeRMW(addrZeroPage, 5, func(c *Chip, v uint8) uint8 { v--; c.setZN(v); return v }))
	set(0xD6, 6, makeRMW(addrZeroPageX, 6, func(c *Chip, v uint8) uint8 { v--; c.setZN(v); return v }))
	set(0xCE, 6, makeRMW(addrAbsolute, 6, func(c *Chip, v uint8) uint8 { v--; c.setZN(v); return v }))
	set(0xDE, 7, makeRMW(addrAbsoluteX, 7, func(c *Chip, v uint8) uint8 { v--; c.setZN(v); return v }))
	set(0xE8, 2, makeIncDec(regX, 1))
	set(0xCA, 2, makeIncDec(regX, 0xFF))
	set(0xC8, 2, makeIncDec(regY, 1))
	set(0x88, 2, makeIncDec(regY, 0xFF))

	// BIT
	set(0x89, 2, makeBitTest(addrImmediate, 2, true))
	set(0x24, 3, makeBitTest(addrZeroPage, 3, false))
	set(0x34, 4, makeBitTest(addrZeroPageX, 4, false))
	set(0x2C, 4, makeBitTest(addrAbsolute, 4, false))
	set(0x3C, 4, makeBitTest(addrAbsoluteX, 4, false))

	// TRB / TSB
	set(0x14, 5, makeTRB(addrZeroPage, 5))
	set(0x1C, 6, makeTRB(addrAbsolute, 6))
	set(0x04, 5, makeTSB(addrZeroPage, 5))
	set(0x0C, 6, makeTSB(addrAbsolute, 6))

	// LDA / LDX / LDY
	set(0xA1, 6, makeLoad(addrIndirectX, 6, regA))
	set(0xA5, 3, makeLoad(addrZeroPage, 3, regA))
	set(0xA9, 2, makeLoad(addrImmediate, 2, regA))
	set(0xAD, 4, makeLoad(addrAbsolute, 4, regA))
	set(0xB1, 5, makeLoad(addrIndirectY, 5, regA))
	set(0xB2, 5, personalityGated(makeLoad(addrZeroPageIndirect, 5, regA)))
	set(0xB5, 4, makeLoad(addrZeroPageX, 4, regA))
	set(0xB9, 4, makeLoad(addrAbsoluteY, 4, regA))
	set(0xBD, 4, makeLoad(addrAbsoluteX, 4, regA))
	set(0xA2, 2, makeLoad(addrImmediate, 2, regX))
	set(0xA6, 3, makeLoad(addrZeroPage, 3, regX))
	set(0xB6, 4, makeLoad(addrZeroPageY, 4, regX))
	set(0xAE, 4, makeLoad(addrAbsolute, 4, regX))
	set(0xBE, 4, makeLoad(addrAbsoluteY, 4, regX))
	set(0xA0, 2, makeLoad(addrImmediate, 2, regY))
	set(0xA4, 3, makeLoad(addrZeroPage, 3, regY))
	set(0xB4, 4, makeLoad(addrZeroPageX, 4, regY))
	set(0xAC, 4, makeLoad(addrAbsolute, 4, regY))
	set(0xBC, 4, makeLoad(addrAbsoluteX, 4, regY))

	// STA / STX / STY / STZ
	set(0x81, 6, makeStore(addrIndirectX, 6, getA))
	set(0x85, 3, makeStore(addrZeroPage, 3, getA))
	set(0x8D, 4, makeStore(addrAbsolute, 4, getA))
	set(0x91, 6, makeStore(addrIndirectY, 6, getA))
	set(0x92, 5, personalityGated(makeStore(addrZeroPageIndirect, 5, getA)))
	set(0x95, 4, makeStore(addrZeroPageX, 4, getA))
	set(0x99, 5, makeStore(addrAbsoluteY, 5, getA))
	set(0x9D, 5, makeStore(addrAbsoluteX, 5, getA))
	set(0x86, 3, makeStore(addrZeroPage, 3, getX))
	set(0x8E, 4, makeStore(addrAbsolute, 4, getX))
	set(0x96, 4, makeStore(addrZeroPageY, 4, getX))
	set(0x84, 3, makeStore(addrZeroPage, 3, getY))
	set(0x8C, 4, makeStore(addrAbsolute, 4, getY))
	set(0x94, 4, makeStore(addrZeroPageX, 4, getY))
	zero := func(c *Chip) uint8 { return 0 }
	set(0x64, 3, makeStore(addrZeroPage, 3, zero))
	set(0x74, 4, makeStore(addrZeroPageX, 4, zero))
	set(0x9C, 4, makeStore(addrAbsolute, 4, zero))
	set(0x9E, 5, makeStore(addrAbsoluteX, 5, zero))

	// Branches
	set(0x10, 3, makeBranch(func(c *Chip) bool { return c.p&StatusNegative == 0 }))
	set(0x30, 3, makeBranch(func(c *Chip) bool { return c.p&StatusNegative != 0 }))
	set(0x50, 3, makeBranch(func(c *Chip) bool { return c.p&StatusOverflow == 0 }))
	set(0x70, 3, makeBranch(func(c *Chip) bool { return c.p&StatusOverflow != 0 }))
	set(0x90, 3, makeBranch(func(c *Chip) bool { return c.p&StatusCarry == 0 }))
	set(0xB0, 3, makeBranch(func(c *Chip) bool { return c.p&StatusCarry != 0 }))
	set(0xD0, 3, makeBranch(func(c *Chip) bool { return c.p&StatusZero == 0 }))
	set(0xF0, 3, makeBranch(func(c *Chip) bool { return c.p&StatusZero != 0 }))
	set(0x80, 3, makeBranch(branchAlways))

	// Transfers
	set(0xAA, 2, makeTransfer(getA, setX))
	set(0xA8, 2, makeTransfer(getA, setY))
	set(0x8A, 2, makeTransfer(getX, setA))
	set(0x98, 2, makeTransfer(getY, setA))
	set(0xBA, 2, makeTransfer(getSP, setX))
	set(0x9A, 2, execTXS)

	// Stack
	set(0x48, 3, execPHA)
	set(0x08, 3, execPHP)
	set(0xDA, 3, execPHX)
	set(0x5A, 3, execPHY)
	set(0x68, 4, makePullReg(regA))
	set(0x28, 4, execPLP)
	set(0xFA, 4, makePullReg(regX))
	set(0x7A, 4, makePullReg(regY))

	// Control flow
	set(0x4C, 3, execJMPAbs)
	set(0x6C, 6, makeJMPIndirect(addrAbsoluteIndirect, 6))
	set(0x7C, 6, makeJMPIndirect(addrAbsoluteIndirectX, 6))
	set(0x20, 6, execJSR)
	set(0x60, 6, execRTS)
	set(0x40, 6, execRTI)
	set(0x00, 7, execBRK)

	// Flag instructions
	set(0x18, 2, execClear(StatusCarry))
	set(0x38, 2, execSet(StatusCarry))
	set(0xD8, 2, execClear(StatusDecimal))
	set(0xF8, 2, execSet(StatusDecimal))
	set(0x58, 2, execClear(StatusInterrupt))
	set(0x78, 2, execSet(StatusInterrupt))
	set(0xB8, 2, execClear(StatusOverflow))

	// Misc
	set(0xEA, 2, execNOP)
	set(0xDB, 3, execSTP)
	set(0xCB, 3, execWAI)

	return t
}
