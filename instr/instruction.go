package instr

import "fmt"

// Instruction is an opcode with one label per exit. An exit that the opcode
// does not have carries End.
type Instruction struct {
	Op  Opcode
	Ok  Label
	Err Label
}

// NewInstruction creates an instruction with a single continuation.
func NewInstruction(op Opcode, ok Label) Instruction {
	return Instruction{Op: op, Ok: ok, Err: End}
}

// NewBranch creates an instruction with both continuations.
func NewBranch(op Opcode, ok, err Label) Instruction {
	return Instruction{Op: op, Ok: ok, Err: err}
}

// Target returns the label attached to the given exit.
func (in Instruction) Target(id PinID) Label {
	if id == PinErr {
		return in.Err
	}

	return in.Ok
}

// Placeholder returns the instruction every unused cell holds.
func Placeholder() Instruction {
	return Instruction{Op: Undf, Ok: End, Err: End}
}

func (in Instruction) String() string {
	if in.Op.HasErr() {
		return fmt.Sprintf("%s ok=%s err=%s", in.Op.Name(), in.Ok, in.Err)
	}

	return fmt.Sprintf("%s ok=%s", in.Op.Name(), in.Ok)
}
