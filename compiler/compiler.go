// Package compiler lowers a control-flow graph into a grid program.
//
// Every live input instruction gets exactly one cell. An edge whose exit
// cell does not hold its destination is realized by a chain of movers
// through unused cells or, when no chain fits, by a goto through one of the
// named labels. Placement is attempted once per configured layout and the
// cheapest successful attempt wins.
//
// Attempts and routing decisions are logged with slog at debug level, so the
// default handler stays quiet.
package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/gridcc/config"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
	"github.com/sarchlab/gridcc/verify"
)

// Result is a successful compilation.
type Result struct {
	Program *program.Program

	// Placement maps every input index to the cell holding it, or to End
	// for instructions that were not live.
	Placement []instr.Label

	Movers int
	Jumps  int
	Slots  int
	Layout string
}

// Cells maps every occupied input cell back to its input index.
func (r *Result) Cells() map[instr.Label]int {
	cells := make(map[instr.Label]int)

	for i, l := range r.Placement {
		if l != instr.End {
			cells[l] = i
		}
	}

	return cells
}

// Compiler compiles graphs under one configuration. It keeps no state
// between compilations and may be shared.
type Compiler struct {
	cfg config.Config
}

// New creates a compiler.
func New(cfg config.Config) *Compiler {
	return &Compiler{cfg: cfg}
}

// Compile compiles g with the default configuration.
func Compile(g graph.Graph) (*Result, error) {
	return New(config.Default()).Compile(g)
}

type attempt struct {
	index int
	state *state
}

func (a *attempt) less(b *attempt) bool {
	if a.state.jumps != b.state.jumps {
		return a.state.jumps < b.state.jumps
	}

	if a.state.movers != b.state.movers {
		return a.state.movers < b.state.movers
	}

	return a.index < b.index
}

// Compile validates g and compiles it. On failure no program is returned.
func (c *Compiler) Compile(g graph.Graph) (*Result, error) {
	live, err := graph.Validate(g, c.cfg.Unreachable)
	if err != nil {
		return nil, err
	}

	if live.Len() > c.cfg.Capacity() {
		return nil, &CapacityError{Index: none, Live: live.Len(), Capacity: c.cfg.Capacity()}
	}

	var (
		best      *attempt
		failure   error
		failStage = -1
	)

	for k, layout := range c.cfg.Layouts {
		stage, s, err := c.try(g, live, layout)
		if err != nil {
			slog.Debug("Compile",
				"Behavior", "AttemptFailed",
				"Layout", layout.Name,
				"Error", err.Error(),
			)

			if stage > failStage {
				failure, failStage = err, stage
			}

			continue
		}

		slog.Debug("Compile",
			"Behavior", "AttemptSucceeded",
			"Layout", layout.Name,
			"Movers", s.movers,
			"Jumps", s.jumps,
		)

		a := &attempt{index: k, state: s}
		if best == nil || a.less(best) {
			best = a
		}
	}

	if best == nil {
		if failure == nil {
			failure = errors.New("no layouts configured")
		}

		return nil, failure
	}

	return c.finish(g, best), nil
}

const (
	stagePlace = iota
	stageRoute
)

func (c *Compiler) try(g graph.Graph, live *graph.Live, layout config.Layout) (int, *state, error) {
	capacity := layout.Capacity(c.cfg.Width, c.cfg.Height)
	if live.Len() > capacity {
		return stagePlace, nil, &CapacityError{
			Index:    live.Order()[capacity],
			Live:     live.Len(),
			Capacity: capacity,
		}
	}

	s := newState(g, live, c.cfg, layout)

	if err := s.place(); err != nil {
		return stagePlace, nil, err
	}

	if err := s.route(); err != nil {
		return stageRoute, nil, err
	}

	return stageRoute, s, nil
}

func (c *Compiler) finish(g graph.Graph, best *attempt) *Result {
	s := best.state
	p := s.assemble()

	if c.cfg.SelfCheck {
		for _, issue := range verify.RunLint(p) {
			if issue.Type == verify.IssueStruct {
				panic(fmt.Sprintf("compiled program fails lint: %s", issue.Message))
			}

			slog.Debug("Compile",
				"Behavior", "LintWarning",
				"Message", issue.Message,
			)
		}
	}

	placement := make([]instr.Label, len(g))
	for i := range placement {
		placement[i] = instr.End
		if s.at[i] != none {
			placement[i] = s.label(s.at[i])
		}
	}

	return &Result{
		Program:   p,
		Placement: placement,
		Movers:    s.movers,
		Jumps:     s.jumps,
		Slots:     s.slots.used(),
		Layout:    s.layout.Name,
	}
}
