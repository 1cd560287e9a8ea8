// Package core walks a compiled grid program on an akita engine, executing
// one cell per cycle.
package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gridcc/program"
	"github.com/sarchlab/gridcc/verify"
)

type Core struct {
	*sim.TickingComponent

	maxSteps int
	machine  *verify.Machine
}

// Load places the core at the origin of p. o decides the outcome of every
// instruction that can fail.
func (c *Core) Load(p *program.Program, o verify.Oracle) {
	c.machine = verify.NewMachine(p, o)
}

// Start schedules the first tick.
func (c *Core) Start() {
	c.TickNow()
}

// Machine returns the state of the current run.
func (c *Core) Machine() *verify.Machine {
	return c.machine
}

// Reason returns why the run stopped.
func (c *Core) Reason() verify.HaltReason {
	if c.machine == nil {
		return verify.Running
	}

	return c.machine.Reason()
}

// Events returns every executed cell so far.
func (c *Core) Events() []verify.Event {
	if c.machine == nil {
		return nil
	}

	return c.machine.Events()
}

// Tick executes one cell.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil || c.machine.Halted() {
		return false
	}

	if c.machine.Steps() >= c.maxSteps {
		// Run halts immediately with the step limit as the reason.
		c.machine.Run(c.maxSteps)
		Trace("Walk",
			"Behavior", "StepLimit",
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Steps", c.machine.Steps(),
		)

		return false
	}

	pc := c.machine.PC()
	madeProgress = c.machine.Step()

	events := c.machine.Events()
	if len(events) > 0 && events[len(events)-1].At == pc {
		e := events[len(events)-1]
		Trace("Walk",
			"Behavior", "Step",
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"X", pc.X(),
			"Y", pc.Y(),
			"OpCode", e.Op.Name(),
			"Pin", e.Pin.String(),
		)
	}

	if c.machine.Halted() {
		Trace("Walk",
			"Behavior", "Halt",
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Reason", c.machine.Reason().String(),
		)
	}

	return madeProgress
}

// Run walks p on a fresh serial engine until it halts or maxSteps cells
// were executed.
func Run(p *program.Program, o verify.Oracle, maxSteps int) *Core {
	engine := sim.NewSerialEngine()

	c := NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithMaxSteps(maxSteps).
		Build("Walker")

	c.Load(p, o)
	c.Start()
	engine.Run()

	return c
}
