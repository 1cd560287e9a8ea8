// Package verify provides debugging tools for compiled grid programs.
//
// It implements two complementary checks:
//
// 1. Static lint (lint.go): structural checks on a single program
//   - STRUCT checks: every directional label names the neighbor its pin
//     exits to, no label points at a placeholder, gotos use assigned slots
//   - FLOW checks: routing cells never loop, named labels are all in use,
//     execution does not start on a placeholder
//
// 2. Functional simulation (machine.go, equivalence.go): a cell-by-cell
// interpreter for programs and an index-based interpreter for input graphs.
// CheckEquivalence runs both under the same Oracle and compares the input
// instructions they visit, skipping the routing cells the compiler inserted.
//
// # Oracle
//
// Real instructions with an err pin interact with an environment that
// decides whether they succeed. The Oracle stands in for it: the n-th
// decision of a run is Outcome(n, op), so two runs that visit the same
// instructions see the same outcomes.
package verify

import (
	"github.com/sarchlab/gridcc/instr"
)

// IssueType classifies lint issues.
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Label or slot does not match the grid
	IssueFlow   IssueType = "FLOW"   // Control flow cannot reach an instruction
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT or FLOW
	X       int                    // Cell column (-1 if not applicable)
	Y       int                    // Cell row (-1 if not applicable)
	Slot    int                    // Named label slot or -1
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

// Oracle decides the outcome of instructions that can fail.
type Oracle interface {
	// Outcome reports whether the n-th decision of a run, made for op,
	// succeeds.
	Outcome(n int, op instr.Opcode) bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(n int, op instr.Opcode) bool

// Outcome calls f.
func (f OracleFunc) Outcome(n int, op instr.Opcode) bool {
	return f(n, op)
}

// AlwaysOK lets every instruction succeed.
var AlwaysOK Oracle = OracleFunc(func(int, instr.Opcode) bool { return true })

// Sequence replays the given outcomes, starting over when they run out.
func Sequence(outcomes ...bool) Oracle {
	if len(outcomes) == 0 {
		return AlwaysOK
	}

	return OracleFunc(func(n int, _ instr.Opcode) bool {
		return outcomes[n%len(outcomes)]
	})
}

// Seeded derives outcomes from a seed. The same seed always gives the same
// outcomes.
func Seeded(seed uint64) Oracle {
	return OracleFunc(func(n int, op instr.Opcode) bool {
		h := seed ^ 0x9E3779B97F4A7C15
		h ^= uint64(n) * 0xBF58476D1CE4E5B9
		h ^= uint64(op.Nr()) * 0x94D049BB133111EB
		h ^= h >> 31
		h *= 0xD6E8FEB86659FD93
		h ^= h >> 32

		return h&1 == 0
	})
}
