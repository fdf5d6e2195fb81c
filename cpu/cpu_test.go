package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/nanolith/jemu65c02-sub000/irq"
	"github.com/nanolith/jemu65c02-sub000/memory"
)

const (
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
	nmiVector   = 0xFFFA
)

// newChip wires a Chip to a fresh FlatRAM with the reset/IRQ/NMI vectors
// pointed at 0x1000/0x2000/0x3000, then resets it so PC lands at 0x1000.
func newChip(t *testing.T, personality Personality, mode EmulationMode) (*Chip, *memory.FlatRAM) {
	t.Helper()
	ram := memory.NewFlatRAM()
	ram.SetVector(resetVector, 0x1000)
	ram.SetVector(irqVector, 0x2000)
	ram.SetVector(nmiVector, 0x3000)
	c, err := New(ram, personality, mode)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return c, ram
}

// regSnap is a deep.Equal-friendly snapshot of everything observable
// about a Chip's register file, for expressing test expectations as a
// single struct literal instead of a long list of assertions.
type regSnap struct {
	A, X, Y, SP uint8
	P           uint8
	PC          uint16
	Crashed     bool
	Stopped     bool
	Waiting     bool
}

func snap(c *Chip) regSnap {
	return regSnap{c.A(), c.X(), c.Y(), c.SP(), c.P(), c.PC(), c.IsCrashed(), c.IsStopped(), c.IsWaiting()}
}

func TestNewRejectsOutOfRangeConfig(t *testing.T) {
	ram := memory.NewFlatRAM()
	if _, err := New(ram, Personality(0), Strict); err == nil {
		t.Error("New with personality 0 should have failed")
	}
	if _, err := New(ram, Personality(4), Strict); err == nil {
		t.Error("New with personality 4 should have failed")
	}
	if _, err := New(ram, MOS, EmulationMode(0)); err == nil {
		t.Error("New with emulation mode 0 should have failed")
	}
	if _, err := New(ram, MOS, EmulationMode(3)); err == nil {
		t.Error("New with emulation mode 3 should have failed")
	}
}

func TestNewStartsCrashed(t *testing.T) {
	ram := memory.NewFlatRAM()
	c, err := New(ram, MOS, Strict)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.IsCrashed() {
		t.Error("fresh Chip should start crashed until Reset")
	}
	if err := c.Step(); err == nil {
		t.Error("Step on a crashed Chip should fail")
	}
	if err := c.Run(10); err == nil {
		t.Error("Run on a crashed Chip should fail")
	}
}

func TestResetLoadsVector(t *testing.T) {
	c, _ := newChip(t, WDC, Strict)
	got := snap(c)
	want := regSnap{A: 0, X: 0, Y: 0, SP: 0xFD, P: StatusUnused | StatusBreak, PC: 0x1000}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("post-reset state mismatch: %v\nfull state: %s", diff, spew.Sdump(c))
	}
}

func TestADCImmediateBinary(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x69, 0x12}) // ADC #$12
	c.SetA(0x01)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A() != 0x13 {
		t.Errorf("A = 0x%02X, want 0x13", c.A())
	}
	if c.P()&StatusCarry != 0 {
		t.Error("carry should be clear")
	}
	if c.P()&StatusOverflow != 0 {
		t.Error("overflow should be clear")
	}
	if c.PC() != 0x1002 {
		t.Errorf("PC = 0x%04X, want 0x1002", c.PC())
	}
}

func TestADCIndirectXDecimalWDC(t *testing.T) {
	c, ram := newChip(t, WDC, Strict)
	// ADC ($0A,X) with X=5 -> pointer at zp 0x0F -> 0x2000 -> byte 0x55
	ram.LoadAt(0x1000, []byte{0x61, 0x0A})
	ram.SetVector(0x000F, 0x2000)
	ram.Write(0x2000, 0x55)
	c.SetX(0x05)
	c.SetA(0x55)
	c.SetP(StatusDecimal)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A() != 0x10 {
		t.Errorf("A = 0x%02X, want 0x10", c.A())
	}
	if c.P()&StatusCarry == 0 {
		t.Error("carry should be set after decimal 0x55+0x55")
	}
}

func TestADCDecimalPenaltyPersonalityGated(t *testing.T) {
	for _, tc := range []struct {
		personality Personality
		wantCycles  int
	}{
		{MOS, 2},
		{Rockwell, 3},
		{WDC, 3},
	} {
		c, ram := newChip(t, tc.personality, Strict)
		ram.LoadAt(0x1000, []byte{0x69, 0x01}) // ADC #$01
		c.SetP(StatusDecimal)
		before := c.CycleDelta()
		const budget = 4 // > ADC imm's max-cycle-cost of 3, so it always executes
		if err := c.Run(budget); err != nil {
			t.Fatalf("Run: %v", err)
		}
		spent := budget + before - c.CycleDelta()
		if spent != tc.wantCycles {
			t.Errorf("personality %d: spent %d cycles, want %d", tc.personality, spent, tc.wantCycles)
		}
	}
}

func TestBRKPushesStateAndVectors(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x00, 0xEA}) // BRK, signature byte
	c.SetSP(0x50)
	c.SetP(0) // I and B both clear going in, per the precondition this checks
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC() != 0x2000 {
		t.Errorf("PC = 0x%04X, want 0x2000", c.PC())
	}
	if c.SP() != 0x4D {
		t.Errorf("SP = 0x%02X, want 0x4D", c.SP())
	}
	hi, _ := ram.Read(0x0150)
	lo, _ := ram.Read(0x014F)
	pushedP, _ := ram.Read(0x014E)
	if hi != 0x10 || lo != 0x02 {
		t.Errorf("pushed return address = 0x%02X%02X, want 0x1002", hi, lo)
	}
	if pushedP&StatusBreak == 0 {
		t.Error("pushed P should have Break set")
	}
	if pushedP&StatusInterrupt != 0 {
		t.Error("pushed P should have the pre-BRK Interrupt flag (clear)")
	}
	if c.P()&StatusInterrupt == 0 {
		t.Error("live Interrupt flag should be set after BRK")
	}
	if c.P()&StatusDecimal != 0 {
		t.Error("live Decimal flag should be clear after BRK")
	}
	if c.Servicing() != irq.IRQ {
		t.Errorf("Servicing() = %v, want irq.IRQ after BRK", c.Servicing())
	}
}

func TestBCCBranchTakenNegativeOffset(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x90, 0xFB}) // BCC -5
	c.SetP(0)                              // carry clear: branch taken
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC() != 0x0FFD {
		t.Errorf("PC = 0x%04X, want 0x0FFD", c.PC())
	}
}

func TestBCCBranchNotTaken(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x90, 0xFB})
	c.SetP(StatusCarry)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC() != 0x1002 {
		t.Errorf("PC = 0x%04X, want 0x1002", c.PC())
	}
}

func TestSTPThenReset(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0xDB}) // STP
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.IsStopped() {
		t.Fatal("processor should be stopped after STP")
	}
	if err := c.Step(); err == nil {
		t.Error("Step on a stopped processor should fail")
	}
	if err := c.Run(100); err == nil {
		t.Error("Run on a stopped processor should fail")
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.IsStopped() {
		t.Error("Reset should clear Stopped")
	}
}

func TestWAIClearedByInterrupt(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0xCB}) // WAI
	c.SetP(0)                        // unmask IRQ so the wake-up actually vectors
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.IsWaiting() {
		t.Fatal("processor should be waiting after WAI")
	}
	if err := c.Run(10); err != nil {
		t.Fatalf("Run while waiting should not error: %v", err)
	}
	if c.CycleDelta() != 0 {
		t.Errorf("Run while waiting should consume the entire budget, delta = %d", c.CycleDelta())
	}
	if err := c.Interrupt(true); err != nil {
		t.Fatalf("Interrupt: %v", err)
	}
	if c.IsWaiting() {
		t.Error("Interrupt should clear Waiting")
	}
	if c.PC() != 0x2000 {
		t.Errorf("PC = 0x%04X, want 0x2000 after WAI+IRQ", c.PC())
	}
	if c.Servicing() != irq.IRQ {
		t.Errorf("Servicing() = %v, want irq.IRQ after the wake-up IRQ", c.Servicing())
	}
}

func TestServicingClearedByRTI(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x00, 0xEA}) // BRK, signature byte
	ram.LoadAt(0x2000, []byte{0x40})       // RTI
	c.SetP(0)
	if err := c.Step(); err != nil {
		t.Fatalf("Step (BRK): %v", err)
	}
	if c.Servicing() != irq.IRQ {
		t.Fatalf("Servicing() = %v, want irq.IRQ after BRK", c.Servicing())
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step (RTI): %v", err)
	}
	if c.Servicing() != irq.None {
		t.Errorf("Servicing() = %v, want irq.None after RTI", c.Servicing())
	}
	if c.PC() != 0x1002 {
		t.Errorf("PC = 0x%04X, want 0x1002 after RTI", c.PC())
	}
}

func TestServicingNMI(t *testing.T) {
	c, _ := newChip(t, MOS, Strict)
	if err := c.NMI(); err != nil {
		t.Fatalf("NMI: %v", err)
	}
	if c.Servicing() != irq.NMI {
		t.Errorf("Servicing() = %v, want irq.NMI", c.Servicing())
	}
	if c.PC() != 0x3000 {
		t.Errorf("PC = 0x%04X, want 0x3000 after NMI", c.PC())
	}
}

func TestStrictModeCrashesOnUndefinedOpcode(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x02}) // undefined on every personality here
	if err := c.Step(); err == nil {
		t.Fatal("expected an invalid-opcode error")
	}
	if !c.IsCrashed() {
		t.Error("Strict mode should crash the processor on an undefined opcode")
	}
}

func TestNopMapSurvivesUndefinedOpcode(t *testing.T) {
	c, ram := newChip(t, MOS, NopMap)
	ram.LoadAt(0x1000, []byte{0x02, 0xEA})
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.IsCrashed() {
		t.Error("NopMap should not crash on an undefined opcode")
	}
	if c.PC() != 0x1001 {
		t.Errorf("PC = 0x%04X, want 0x1001", c.PC())
	}
}

func TestZeroPageIndirectGatedByPersonality(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x12, 0x20}) // ORA ($20)
	if err := c.Step(); err == nil {
		t.Fatal("ORA (zp) should be invalid on a MOS personality")
	}

	c, ram = newChip(t, Rockwell, Strict)
	ram.LoadAt(0x1000, []byte{0x12, 0x20})
	ram.SetVector(0x0020, 0x2500)
	ram.Write(0x2500, 0x0F)
	if err := c.Step(); err != nil {
		t.Fatalf("ORA (zp) should be valid on Rockwell: %v", err)
	}
	if c.A() != 0x0F {
		t.Errorf("A = 0x%02X, want 0x0F", c.A())
	}
}

func TestRunCarriesCycleDeltaAcrossCalls(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	// Three NOPs, two cycles each; the address past them reads as BRK
	// (0x00) in a zeroed FlatRAM, which is never cheap enough to run on
	// the small budgets this test hands out.
	ram.LoadAt(0x1000, []byte{0xEA, 0xEA, 0xEA})
	if err := c.Run(5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.PC() != 0x1002 {
		t.Errorf("after budget 5: PC = 0x%04X, want 0x1002 (two NOPs executed)", c.PC())
	}
	if c.CycleDelta() != 1 {
		t.Errorf("CycleDelta = %d, want 1", c.CycleDelta())
	}
	// A budget of 2 alone is not enough to afford a 2-cycle NOP (Run
	// only executes when the available budget strictly exceeds an
	// opcode's cost), but added to the carried delta of 1 it is.
	if err := c.Run(2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.PC() != 0x1003 {
		t.Errorf("after budget 2 (plus carried 1 = 3): PC = 0x%04X, want 0x1003 (third NOP executed)", c.PC())
	}
	if c.CycleDelta() != 1 {
		t.Errorf("CycleDelta = %d, want 1", c.CycleDelta())
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, ram := newChip(t, MOS, Strict)
	ram.LoadAt(0x1000, []byte{0x20, 0x00, 0x20}) // JSR $2000
	ram.LoadAt(0x2000, []byte{0x60})             // RTS
	if err := c.Step(); err != nil {
		t.Fatalf("JSR: %v", err)
	}
	if c.PC() != 0x2000 {
		t.Errorf("PC after JSR = 0x%04X, want 0x2000", c.PC())
	}
	if err := c.Step(); err != nil {
		t.Fatalf("RTS: %v", err)
	}
	if c.PC() != 0x1003 {
		t.Errorf("PC after RTS = 0x%04X, want 0x1003", c.PC())
	}
}

func TestTRBAndTSB(t *testing.T) {
	c, ram := newChip(t, WDC, Strict)
	ram.LoadAt(0x1000, []byte{0x04, 0x10, 0x14, 0x10}) // TSB $10; TRB $10
	ram.Write(0x0010, 0x0F)
	c.SetA(0xF0)
	if err := c.Step(); err != nil {
		t.Fatalf("TSB zp: %v", err)
	}
	v, _ := ram.Read(0x0010)
	if v != 0xFF {
		t.Errorf("mem[0x10] = 0x%02X, want 0xFF", v)
	}
	if c.P()&StatusZero == 0 {
		t.Error("Z should be set: A & mem was 0 before the write")
	}
	if err := c.Step(); err != nil {
		t.Fatalf("TRB zp: %v", err)
	}
	v, _ = ram.Read(0x0010)
	if v != 0x0F {
		t.Errorf("mem[0x10] = 0x%02X, want 0x0F", v)
	}
	if c.P()&StatusZero != 0 {
		t.Error("Z should be clear: A & mem was 0xF0 before the write")
	}
}
