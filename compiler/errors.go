package compiler

import (
	"errors"
	"fmt"

	"github.com/sarchlab/gridcc/instr"
)

// Sentinels matched by the typed compilation failures.
var (
	ErrProgramCapacityExceeded  = errors.New("program capacity exceeded")
	ErrNamedLabelBudgetExceeded = errors.New("named label budget exceeded")
	ErrRoutingFailure           = errors.New("routing failure")
)

// CapacityError reports that the live instructions, together with the
// routing they need, do not fit on the grid. Index is the first instruction
// that could not be placed, or -1 when the live set alone is too large.
type CapacityError struct {
	Index    int
	Live     int
	Capacity int
}

func (e *CapacityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %d live instructions, %d cells",
			ErrProgramCapacityExceeded, e.Live, e.Capacity)
	}

	return fmt.Sprintf("%v: no cell for instruction %d (%d live instructions, %d cells)",
		ErrProgramCapacityExceeded, e.Index, e.Live, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrProgramCapacityExceeded
}

// LabelBudgetError reports an edge that needed a far jump after every named
// label slot was already assigned to another destination.
type LabelBudgetError struct {
	From   int
	Pin    instr.PinID
	To     int
	Budget int
}

func (e *LabelBudgetError) Error() string {
	return fmt.Sprintf("%v: %s needs a far jump to %d, all %d slots in use",
		ErrNamedLabelBudgetExceeded, edgeName(e.From, e.Pin), e.To, e.Budget)
}

func (e *LabelBudgetError) Is(target error) bool {
	return target == ErrNamedLabelBudgetExceeded
}

// RoutingError reports an edge that neither movers nor a far jump could
// realize.
type RoutingError struct {
	From   int
	Pin    instr.PinID
	To     int
	Reason string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("%v: %s to %d: %s",
		ErrRoutingFailure, edgeName(e.From, e.Pin), e.To, e.Reason)
}

func (e *RoutingError) Is(target error) bool {
	return target == ErrRoutingFailure
}

func edgeName(from int, pin instr.PinID) string {
	if from < 0 {
		return "entry"
	}

	return fmt.Sprintf("instruction %d %s pin", from, pin)
}
