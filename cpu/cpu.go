// Package cpu implements a cycle-budgeted 65C02 processor core. A Chip
// owns no memory of its own; every read and write it issues goes through
// a host-supplied memory.Bus, so the same core can sit behind a flat RAM
// image in a test or a fully decoded, bank-switched address space in a
// host application.
package cpu

import (
	"github.com/nanolith/jemu65c02-sub000/irq"
	"github.com/nanolith/jemu65c02-sub000/memory"
)

// Personality selects which vendor's 65C02 opcode and timing quirks the
// core emulates. It gates exactly one addressing mode (zero-page
// indirect, which MOS never shipped) and the extra decimal-mode cycle
// Rockwell and WDC parts charge that MOS does not.
type Personality int

const (
	_ Personality = iota
	// MOS is the original 65C02 from MOS Technology.
	MOS
	// Rockwell is the Rockwell R65C02, which added the zero-page
	// indirect addressing mode.
	Rockwell
	// WDC is the Western Design Center W65C02S.
	WDC
)

func (p Personality) valid() bool { return p >= MOS && p <= WDC }

// EmulationMode selects how the core reacts to an opcode with no defined
// meaning for the configured Personality.
type EmulationMode int

const (
	_ EmulationMode = iota
	// Strict crashes the processor on an undefined opcode. Only Reset
	// clears the crash.
	Strict
	// NopMap treats an undefined opcode as a two-cycle no-op.
	NopMap
)

func (m EmulationMode) valid() bool { return m >= Strict && m <= NopMap }

// Status register bit positions.
const (
	StatusCarry     uint8 = 1 << 0
	StatusZero      uint8 = 1 << 1
	StatusInterrupt uint8 = 1 << 2
	StatusDecimal   uint8 = 1 << 3
	StatusBreak     uint8 = 1 << 4
	StatusUnused    uint8 = 1 << 5 // always reads 1; called NC in the datasheets
	StatusOverflow  uint8 = 1 << 6
	StatusNegative  uint8 = 1 << 7
)

// Chip is one 65C02 processor core. The zero value is not usable; build
// one with New.
type Chip struct {
	bus memory.Bus

	personality   Personality
	emulationMode EmulationMode

	a, x, y, sp uint8
	p           uint8
	pc          uint16

	crashed, stopped, waiting bool

	// servicing tracks which interrupt source, if any, is currently being
	// handled: set by deliver when a BRK, IRQ or NMI vectors in, cleared
	// by RTI and by Reset.
	servicing irq.Kind

	// cycleDelta carries the unspent cycle count from one Run call to
	// the next so repeated fixed-size budgets do not lose the remainder
	// left at an instruction boundary.
	cycleDelta int
}

// New constructs a Chip wired to bus with the given personality and
// undefined-opcode policy. The returned Chip starts crashed; call Reset
// before stepping it, mirroring real hardware coming out of power-on
// with an undefined program counter until the reset sequence runs.
func New(bus memory.Bus, personality Personality, emulationMode EmulationMode) (*Chip, error) {
	if !personality.valid() {
		return nil, &InvalidPersonalityError{Got: personality}
	}
	if !emulationMode.valid() {
		return nil, &InvalidEmulationModeError{Got: emulationMode}
	}
	return &Chip{
		bus:           bus,
		personality:   personality,
		emulationMode: emulationMode,
		crashed:       true,
	}, nil
}

// Release detaches the Chip from its bus and clears its state. A
// released Chip behaves as a crashed one; it must not be reused.
func (c *Chip) Release() {
	*c = Chip{crashed: true}
}

// A returns the accumulator.
func (c *Chip) A() uint8 { return c.a }

// SetA sets the accumulator.
func (c *Chip) SetA(v uint8) { c.a = v }

// X returns the X index register.
func (c *Chip) X() uint8 { return c.x }

// SetX sets the X index register.
func (c *Chip) SetX(v uint8) { c.x = v }

// Y returns the Y index register.
func (c *Chip) Y() uint8 { return c.y }

// SetY sets the Y index register.
func (c *Chip) SetY(v uint8) { c.y = v }

// SP returns the stack pointer (an offset from 0x0100).
func (c *Chip) SP() uint8 { return c.sp }

// SetSP sets the stack pointer.
func (c *Chip) SetSP(v uint8) { c.sp = v }

// P returns the status register, with the unused bit forced on the way
// real hardware always reads it.
func (c *Chip) P() uint8 { return c.p | StatusUnused }

// SetP sets the status register verbatim, without forcing the unused
// bit. Used by hosts restoring a saved register file; the core's own
// instructions (PLP, RTI) force the bit themselves.
func (c *Chip) SetP(v uint8) { c.p = v }

// PC returns the program counter.
func (c *Chip) PC() uint16 { return c.pc }

// SetPC sets the program counter.
func (c *Chip) SetPC(v uint16) { c.pc = v }

// Personality returns the vendor personality the Chip was constructed
// with.
func (c *Chip) Personality() Personality { return c.personality }

// EmulationMode returns the undefined-opcode policy the Chip was
// constructed with.
func (c *Chip) EmulationMode() EmulationMode { return c.emulationMode }

// IsCrashed reports whether the processor has halted on an undefined
// opcode under Strict emulation. Only Reset clears it.
func (c *Chip) IsCrashed() bool { return c.crashed }

// IsStopped reports whether the processor has executed STP. Only Reset
// clears it.
func (c *Chip) IsStopped() bool { return c.stopped }

// IsWaiting reports whether the processor has executed WAI and is idling
// until an interrupt arrives.
func (c *Chip) IsWaiting() bool { return c.waiting }

// Servicing reports which interrupt source, if any, the processor is
// currently handling: irq.None outside of interrupt service, irq.IRQ
// from a live IRQ line or a BRK, irq.NMI from a non-maskable interrupt.
// It reverts to irq.None once RTI pops the interrupted context back off
// the stack.
func (c *Chip) Servicing() irq.Kind { return c.servicing }

// CycleDelta returns the unspent cycle count left over from the most
// recent Run call. Run clamps it at 0 when it stops for lack of budget.
func (c *Chip) CycleDelta() int { return c.cycleDelta }

// SetCycleDelta overrides the carried cycle delta. Hosts resuming a
// saved session restore it here; ordinary use never needs to call this.
func (c *Chip) SetCycleDelta(v int) { c.cycleDelta = v }

func (c *Chip) readByte(addr uint16) (uint8, error) {
	v, err := c.bus.Read(addr)
	if err != nil {
		return 0, &memory.BusError{Op: "read", Addr: addr, Err: err}
	}
	return v, nil
}

func (c *Chip) writeByte(addr uint16, v uint8) error {
	if err := c.bus.Write(addr, v); err != nil {
		return &memory.BusError{Op: "write", Addr: addr, Err: err}
	}
	return nil
}

// fetch reads the byte at PC and advances PC past it.
func (c *Chip) fetch() (uint8, error) {
	v, err := c.readByte(c.pc)
	if err != nil {
		return 0, err
	}
	c.pc++
	return v, nil
}

// fetch16 reads a little-endian word starting at PC and advances PC past
// both bytes.
func (c *Chip) fetch16() (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *Chip) readVector(v irq.Vector) (uint16, error) {
	lo, err := c.readByte(uint16(v))
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(uint16(v) + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
