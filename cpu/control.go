package cpu

import "github.com/nanolith/jemu65c02-sub000/irq"

// Reset brings the processor to its post-reset state: registers cleared
// except SP (which lands at 0xFD, as if three phantom pushes had already
// happened), P at StatusUnused|StatusBreak, and PC loaded from the reset
// vector. It clears Crashed, Stopped and Waiting unconditionally; it is
// the only operation that clears Crashed or Stopped (Interrupt and NMI
// also clear Waiting).
func (c *Chip) Reset() error {
	c.a, c.x, c.y = 0, 0, 0
	c.sp = 0xFD
	c.p = StatusUnused | StatusBreak
	c.crashed, c.stopped, c.waiting = false, false, false
	c.servicing = irq.None
	c.cycleDelta = 0
	addr, err := c.readVector(irq.VectorReset)
	if err != nil {
		return err
	}
	c.pc = addr
	return nil
}

// Interrupt asserts or deasserts the maskable interrupt line. Each call
// with asserted true, while the processor is not masking IRQs, pushes PC and P and
// vectors through 0xFFFE, exactly like BRK but with the pushed copy's
// Break bit clear. It also clears Waiting, since any asserted interrupt
// ends a WAI regardless of the I flag.
func (c *Chip) Interrupt(asserted bool) error {
	if !asserted {
		return nil
	}
	c.waiting = false
	if c.p&StatusInterrupt != 0 {
		return nil
	}
	return c.deliver(irq.VectorIRQ, false)
}

// NMI delivers a non-maskable interrupt unconditionally, vectoring
// through 0xFFFA. Like Interrupt, it clears Waiting first.
func (c *Chip) NMI() error {
	c.waiting = false
	return c.deliver(irq.VectorNMI, false)
}
