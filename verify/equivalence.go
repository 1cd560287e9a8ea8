package verify

import (
	"fmt"

	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
)

// CheckEquivalence runs g and p under the same oracle and checks that the
// program visits the same input instructions in the same order. cells maps
// each program cell holding an input instruction to its index; every other
// cell is routing and is skipped. After the graph reaches an Undefined
// label or the step limit, the program may continue in any way. After the
// graph ends, the program must end too.
func CheckEquivalence(
	g graph.Graph,
	p *program.Program,
	cells map[instr.Label]int,
	o Oracle,
	maxSteps int,
) error {
	want := RunGraph(g, o, maxSteps)
	if want.Reason == HaltFault {
		return fmt.Errorf("input graph faults after visiting %v", want.Visited)
	}

	m := NewMachine(p, o)
	limit := (maxSteps + 1) * (p.Size() + 1)

	var got []int

	for !m.Halted() && len(got) <= len(want.Visited) {
		if m.Steps() >= limit {
			break
		}

		pc := m.PC()
		m.Step()

		if i, ok := cells[pc]; ok {
			got = append(got, i)
		}
	}

	if m.Reason() == HaltFault {
		return fmt.Errorf("program faults after visiting %v: %w", got, m.Err())
	}

	for k, i := range want.Visited {
		if k >= len(got) {
			return fmt.Errorf("program stopped (%s) after %d of %d input instructions",
				m.Reason(), len(got), len(want.Visited))
		}

		if got[k] != i {
			return fmt.Errorf("step %d: program visits instruction %d, graph visits %d", k, got[k], i)
		}
	}

	if want.Reason != HaltEnd {
		return nil
	}

	if len(got) != len(want.Visited) {
		return fmt.Errorf("program continues to instruction %d after the graph ends", got[len(want.Visited)])
	}

	if m.Reason() != HaltEnd {
		return fmt.Errorf("program does not end after the graph ends (%s)", m.Reason())
	}

	return nil
}
