// Package config provides the compiler configuration and its builder.
package config

import (
	"fmt"

	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
)

// Config is a validated compiler configuration.
type Config struct {
	Width       int
	Height      int
	NamedLabels int
	Unreachable graph.UnreachablePolicy
	Layouts     []Layout

	// MaxMoverChain bounds the length of a mover chain before the compiler
	// prefers a far jump. Zero means unbounded.
	MaxMoverChain int

	// SelfCheck lints every compiled program. STRUCT issues panic, FLOW
	// issues are only logged.
	SelfCheck bool
}

// Capacity returns the number of cells in the grid.
func (c Config) Capacity() int {
	return c.Width * c.Height
}

// Builder can create compiler configurations.
type Builder struct {
	width         int
	height        int
	namedLabels   int
	unreachable   graph.UnreachablePolicy
	layouts       []Layout
	maxMoverChain int
	selfCheck     bool
}

// NewBuilder returns a builder preset to the default target.
func NewBuilder() Builder {
	return Builder{
		width:       instr.Width,
		height:      instr.Height,
		namedLabels: instr.NamedLabelNumber,
		unreachable: graph.DropUnreachable,
	}
}

// WithWidth sets the number of columns.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithHeight sets the number of rows.
func (b Builder) WithHeight(height int) Builder {
	b.height = height
	return b
}

// WithNamedLabels sets how many named label slots the compiler may use.
func (b Builder) WithNamedLabels(n int) Builder {
	b.namedLabels = n
	return b
}

// WithUnreachable sets the policy for instructions the entry cannot reach.
func (b Builder) WithUnreachable(policy graph.UnreachablePolicy) Builder {
	b.unreachable = policy
	return b
}

// WithLayouts replaces the placement layouts. They are tried in order.
func (b Builder) WithLayouts(layouts ...Layout) Builder {
	b.layouts = append([]Layout(nil), layouts...)
	return b
}

// WithMaxMoverChain sets the longest mover chain before a far jump is
// preferred.
func (b Builder) WithMaxMoverChain(n int) Builder {
	b.maxMoverChain = n
	return b
}

// WithSelfCheck turns on linting of every compiled program.
func (b Builder) WithSelfCheck(on bool) Builder {
	b.selfCheck = on
	return b
}

// Build validates the settings and creates the configuration.
func (b Builder) Build() (Config, error) {
	if b.width < 1 || b.width > instr.MaxCoord+1 {
		return Config{}, fmt.Errorf("width %d out of range 1..%d", b.width, instr.MaxCoord+1)
	}

	if b.height < 1 || b.height > instr.MaxCoord+1 {
		return Config{}, fmt.Errorf("height %d out of range 1..%d", b.height, instr.MaxCoord+1)
	}

	if b.namedLabels < 0 || b.namedLabels > instr.NamedLabelNumber {
		return Config{}, fmt.Errorf("named labels %d out of range 0..%d", b.namedLabels, instr.NamedLabelNumber)
	}

	if b.maxMoverChain < 0 {
		return Config{}, fmt.Errorf("max mover chain %d is negative", b.maxMoverChain)
	}

	layouts := b.layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts(b.width)
	}

	for _, l := range layouts {
		if err := l.validate(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		Width:         b.width,
		Height:        b.height,
		NamedLabels:   b.namedLabels,
		Unreachable:   b.unreachable,
		Layouts:       layouts,
		MaxMoverChain: b.maxMoverChain,
		SelfCheck:     b.selfCheck,
	}, nil
}

// Default returns the configuration of the default target.
func Default() Config {
	c, err := NewBuilder().Build()
	if err != nil {
		panic(err)
	}

	return c
}
