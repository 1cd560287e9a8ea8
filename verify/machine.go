package verify

import (
	"fmt"

	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
)

// HaltReason tells why a run stopped.
type HaltReason int

const (
	Running HaltReason = iota
	HaltEnd
	HaltUndefined
	HaltFault
	HaltStepLimit
)

func (r HaltReason) String() string {
	switch r {
	case Running:
		return "running"
	case HaltEnd:
		return "end"
	case HaltUndefined:
		return "undefined"
	case HaltFault:
		return "fault"
	case HaltStepLimit:
		return "step limit"
	}

	return fmt.Sprintf("HaltReason(%d)", int(r))
}

// Event records one executed cell.
type Event struct {
	Step int
	At   instr.Label
	Op   instr.Opcode
	Pin  instr.PinID
}

// Machine executes a program one cell per step, starting at (0, 0).
type Machine struct {
	program   *program.Program
	oracle    Oracle
	pc        instr.Label
	steps     int
	decisions int
	events    []Event
	reason    HaltReason
	err       error
}

// NewMachine creates a machine positioned at the origin.
func NewMachine(p *program.Program, o Oracle) *Machine {
	if o == nil {
		o = AlwaysOK
	}

	return &Machine{program: p, oracle: o, pc: instr.Coord(0, 0)}
}

// PC returns the cell the next step executes.
func (m *Machine) PC() instr.Label { return m.pc }

// Steps returns the number of executed cells.
func (m *Machine) Steps() int { return m.steps }

// Events returns every executed cell in order.
func (m *Machine) Events() []Event { return m.events }

// Halted reports whether the machine stopped.
func (m *Machine) Halted() bool { return m.reason != Running }

// Reason returns why the machine stopped.
func (m *Machine) Reason() HaltReason { return m.reason }

// Err describes a fault.
func (m *Machine) Err() error { return m.err }

func (m *Machine) fault(format string, args ...any) {
	m.reason = HaltFault
	m.err = fmt.Errorf("cell %s: %s", m.pc.CoordString(), fmt.Sprintf(format, args...))
}

// Step executes the current cell. It returns false once the machine halted.
func (m *Machine) Step() bool {
	if m.Halted() {
		return false
	}

	in, ok := m.program.Fetch(m.pc)
	if !ok {
		m.fault("outside the program")
		return false
	}

	pin := instr.PinOK
	if in.Op.HasErr() {
		if !m.oracle.Outcome(m.decisions, in.Op) {
			pin = instr.PinErr
		}
		m.decisions++
	}

	m.events = append(m.events, Event{Step: m.steps, At: m.pc, Op: in.Op, Pin: pin})
	m.steps++

	switch {
	case in.Op.IsPlaceholder():
		m.fault("placeholder executed")
	case in.Op.Ok().Kind() == instr.PinSome:
		m.reason = HaltEnd
	case in.Op.IsGoto():
		m.jump(in)
	default:
		m.follow(in, pin)
	}

	return !m.Halted()
}

func (m *Machine) jump(in instr.Instruction) {
	slot, _ := in.Op.Ok().Slot()
	target := m.program.Label(slot)

	if target == instr.End {
		m.reason = HaltEnd
		return
	}

	if _, ok := m.program.Fetch(target); !ok {
		m.fault("named label %d points outside the program", slot)
		return
	}

	m.pc = target
}

func (m *Machine) follow(in instr.Instruction, pin instr.PinID) {
	target := in.Target(pin)

	switch target {
	case instr.End:
		m.reason = HaltEnd
		return
	case instr.Undefined:
		m.fault("%s label is undefined", pin)
		return
	}

	d, ok := in.Op.Pin(pin).Direction()
	if !ok {
		m.fault("%s has no %s direction", in.Op.Name(), pin)
		return
	}

	x, y, ok := m.program.Step(m.pc.X(), m.pc.Y(), d)
	if !ok {
		m.fault("%s pin leaves the grid", pin)
		return
	}

	if next := instr.Coord(x, y); target != next {
		m.fault("%s label %s does not match neighbor %s", pin, target.CoordString(), next.CoordString())
		return
	}

	m.pc = target
}

// Run steps until the machine halts or maxSteps cells were executed.
func (m *Machine) Run(maxSteps int) HaltReason {
	for !m.Halted() {
		if m.steps >= maxSteps {
			m.reason = HaltStepLimit
			break
		}

		m.Step()
	}

	return m.reason
}

// Trace is the path of a run through an input graph.
type Trace struct {
	Visited []int
	Reason  HaltReason
}

// RunGraph interprets an input graph from its entry for at most maxSteps
// instructions.
func RunGraph(g graph.Graph, o Oracle, maxSteps int) Trace {
	if o == nil {
		o = AlwaysOK
	}

	var t Trace

	cur, decisions := graph.Entry, 0

	for len(t.Visited) < maxSteps {
		if cur < 0 || cur >= len(g) {
			t.Reason = HaltFault
			return t
		}

		in := g[cur]
		t.Visited = append(t.Visited, cur)

		if in.Op.IsPlaceholder() || in.Op.IsGoto() {
			t.Reason = HaltFault
			return t
		}

		if in.Op.Ok().Kind() == instr.PinSome {
			t.Reason = HaltEnd
			return t
		}

		pin := instr.PinOK
		if in.Op.HasErr() {
			if !o.Outcome(decisions, in.Op) {
				pin = instr.PinErr
			}
			decisions++
		}

		switch next := in.Target(pin); next {
		case instr.End:
			t.Reason = HaltEnd
			return t
		case instr.Undefined:
			t.Reason = HaltUndefined
			return t
		default:
			cur = next.Index()
		}
	}

	t.Reason = HaltStepLimit

	return t
}
