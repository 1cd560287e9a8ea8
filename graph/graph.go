// Package graph describes the input control-flow graph and validates it
// before compilation.
package graph

import (
	"errors"
	"fmt"

	"github.com/sarchlab/gridcc/instr"
)

// Entry is the index execution starts from.
const Entry = 0

// Graph is an ordered instruction buffer. Labels are indices into it.
type Graph []instr.Instruction

// ErrGraphInvalid is matched by every validation failure.
var ErrGraphInvalid = errors.New("graph invalid")

// InvalidError reports a structural violation. Index is -1 when the failure
// is not tied to a single instruction.
type InvalidError struct {
	Index  int
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("graph invalid: %s", e.Reason)
	}

	return fmt.Sprintf("graph invalid at instruction %d: %s", e.Index, e.Reason)
}

// Is makes errors.Is(err, ErrGraphInvalid) hold.
func (e *InvalidError) Is(target error) bool {
	return target == ErrGraphInvalid
}

func invalid(i int, format string, args ...any) error {
	return &InvalidError{Index: i, Reason: fmt.Sprintf(format, args...)}
}

// UnreachablePolicy decides what happens to instructions the entry cannot
// reach.
type UnreachablePolicy int

const (
	// DropUnreachable leaves unreachable instructions out of the program.
	DropUnreachable UnreachablePolicy = iota
	// RejectUnreachable fails validation on the first unreachable one.
	RejectUnreachable
)

func (p UnreachablePolicy) String() string {
	switch p {
	case DropUnreachable:
		return "drop"
	case RejectUnreachable:
		return "reject"
	}

	return fmt.Sprintf("UnreachablePolicy(%d)", int(p))
}
