package cpu

// Step executes exactly one instruction, irrespective of its cost, and
// reports any error the fetch or the instruction's own bus access
// raised. A crashed processor refuses to step at all; a stopped one
// returns ProcessorStoppedError. A waiting processor steps successfully
// without fetching anything, since there is no instruction for it to
// run until an interrupt arrives.
func (c *Chip) Step() error {
	if c.crashed {
		return &InvalidProcessorStateError{Reason: "crashed"}
	}
	if c.stopped {
		return &ProcessorStoppedError{}
	}
	if c.waiting {
		return nil
	}
	op, err := c.fetch()
	if err != nil {
		return err
	}
	_, err = c.execute(op)
	return err
}

// Run executes instructions until the cycle budget (plus whatever
// CycleDelta carried over from the previous call) is exhausted, then
// stops before fetching an instruction it cannot afford, carrying the
// unspent remainder forward in CycleDelta. If the processor is already
// waiting, or becomes stopped or waiting mid-run, it consumes its entire
// remaining budget (CycleDelta lands at 0) rather than carrying any of
// it forward, since there is nothing useful to spend a future call's
// budget on until an interrupt or reset changes that state. A processor
// that is already stopped when Run is called returns
// ProcessorStoppedError and leaves CycleDelta as it was. A crashed
// processor refuses to run at all.
func (c *Chip) Run(budget int) error {
	if c.crashed {
		return &InvalidProcessorStateError{Reason: "crashed"}
	}
	if c.stopped {
		return &ProcessorStoppedError{}
	}

	remaining := budget + c.cycleDelta
	c.cycleDelta = 0

	for {
		if c.stopped || c.waiting {
			c.cycleDelta = 0
			return nil
		}

		op, err := c.readByte(c.pc)
		if err != nil {
			c.cycleDelta = remaining
			return err
		}
		entry := &opcodeTable[op]

		if remaining <= entry.maxCycles {
			if remaining < 0 {
				remaining = 0
			}
			c.cycleDelta = remaining
			return nil
		}

		c.pc++
		cycles, err := entry.exec(c, op)
		remaining -= cycles
		if err != nil {
			c.cycleDelta = remaining
			return err
		}
	}
}

// execute dispatches op to its table entry. op must already have been
// fetched by the caller, which leaves PC past op's byte.
func (c *Chip) execute(op uint8) (int, error) {
	entry := &opcodeTable[op]
	return entry.exec(c, op)
}
