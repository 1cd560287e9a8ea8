package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps int
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMaxSteps bounds the number of cells one run may execute.
func (b Builder) WithMaxSteps(maxSteps int) Builder {
	if maxSteps < 1 {
		panic("Need at least 1 step")
	}
	b.maxSteps = maxSteps
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		maxSteps: 10000,
	}
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{maxSteps: b.maxSteps}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
