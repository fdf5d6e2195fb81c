package memory

import "testing"

func TestFlatRAMReadWrite(t *testing.T) {
	r := NewFlatRAM()
	if v, err := r.Read(0x1234); err != nil || v != 0 {
		t.Fatalf("fresh FlatRAM read = (0x%02X, %v), want (0x00, nil)", v, err)
	}
	if err := r.Write(0x1234, 0x42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := r.Read(0x1234)
	if err != nil || v != 0x42 {
		t.Fatalf("Read after Write = (0x%02X, %v), want (0x42, nil)", v, err)
	}
}

func TestFlatRAMLoadAtAndSetVector(t *testing.T) {
	r := NewFlatRAM()
	r.LoadAt(0x2000, []byte{0xA9, 0x01, 0x00})
	for i, want := range []uint8{0xA9, 0x01, 0x00} {
		got, _ := r.Read(uint16(0x2000 + i))
		if got != want {
			t.Errorf("mem[0x%04X] = 0x%02X, want 0x%02X", 0x2000+i, got, want)
		}
	}

	r.SetVector(0xFFFC, 0x8000)
	lo, _ := r.Read(0xFFFC)
	hi, _ := r.Read(0xFFFD)
	if lo != 0x00 || hi != 0x80 {
		t.Errorf("reset vector bytes = (0x%02X, 0x%02X), want (0x00, 0x80)", lo, hi)
	}
}

func TestBusErrorUnwrap(t *testing.T) {
	inner := &ErrOutOfMemory{}
	be := &BusError{Op: "read", Addr: 0x1000, Err: inner}
	if be.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
	if got := be.Error(); got == "" {
		t.Error("Error() should not be empty")
	}
}

// ErrOutOfMemory mirrors cpu.ErrOutOfMemory's shape for this package's
// own test of BusError wrapping, without importing the cpu package.
type ErrOutOfMemory struct{}

func (e *ErrOutOfMemory) Error() string { return "out of memory" }
