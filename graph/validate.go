package graph

import (
	"github.com/sarchlab/gridcc/instr"
)

// Edge is a live control-flow edge between two input instructions.
type Edge struct {
	From int
	Pin  instr.PinID
	To   int
}

// Live is the part of a graph reachable from Entry.
type Live struct {
	order    []int
	member   []bool
	inDegree []int
	edges    []Edge
}

// Order returns the live instructions in breadth-first discovery order,
// starting with Entry.
func (l *Live) Order() []int { return l.order }

// Len returns the number of live instructions.
func (l *Live) Len() int { return len(l.order) }

// Contains reports whether instruction i is live.
func (l *Live) Contains(i int) bool {
	return i >= 0 && i < len(l.member) && l.member[i]
}

// InDegree counts the live edges that lead to instruction i.
func (l *Live) InDegree(i int) int { return l.inDegree[i] }

// Edges returns every live edge, grouped by source in discovery order.
func (l *Live) Edges() []Edge { return l.edges }

// Validate checks g and computes its live subgraph.
func Validate(g Graph, policy UnreachablePolicy) (*Live, error) {
	if len(g) == 0 {
		return nil, invalid(-1, "graph is empty")
	}

	if uint64(len(g)) > uint64(instr.Undefined) {
		return nil, invalid(-1, "graph has %d instructions, limit is %d", len(g), uint64(instr.Undefined))
	}

	for i, in := range g {
		if in.Op.IsGoto() {
			return nil, invalid(i, "opcode %s is reserved for compiler output", in.Op.Name())
		}
	}

	for i, in := range g {
		if err := checkLabels(g, i, in); err != nil {
			return nil, err
		}
	}

	live := walk(g)

	for _, i := range live.order {
		if g[i].Op.IsPlaceholder() {
			return nil, invalid(i, "reachable instruction has no opcode")
		}
	}

	if policy == RejectUnreachable {
		for i := range g {
			if !live.member[i] {
				return nil, invalid(i, "instruction is unreachable from entry")
			}
		}
	}

	return live, nil
}

func checkLabels(g Graph, i int, in instr.Instruction) error {
	if in.Op.IsPlaceholder() {
		return nil
	}

	switch in.Op.Ok().Kind() {
	case instr.PinSome:
		if !in.Ok.IsQuasi() {
			return invalid(i, "%s cannot continue to %s", in.Op.Name(), in.Ok)
		}
	case instr.PinDir:
		if !validTarget(g, in.Ok) {
			return invalid(i, "ok label %s is out of range", in.Ok)
		}
	}

	if in.Op.HasErr() {
		if !validTarget(g, in.Err) {
			return invalid(i, "err label %s is out of range", in.Err)
		}
	} else if !in.Err.IsQuasi() {
		return invalid(i, "%s has no err pin but err label is %s", in.Op.Name(), in.Err)
	}

	return nil
}

func validTarget(g Graph, l instr.Label) bool {
	return l.IsQuasi() || int(l) < len(g)
}

// successors lists the non-terminal edges leaving instruction i, ok first.
func successors(g Graph, i int) []Edge {
	in := g[i]

	var out []Edge

	for _, id := range instr.PinIDs {
		if _, ok := in.Op.Pin(id).Direction(); !ok {
			continue
		}

		t := in.Target(id)
		if t.IsQuasi() {
			continue
		}

		out = append(out, Edge{From: i, Pin: id, To: t.Index()})
	}

	return out
}

func walk(g Graph) *Live {
	live := &Live{
		member:   make([]bool, len(g)),
		inDegree: make([]int, len(g)),
	}

	live.member[Entry] = true
	live.order = append(live.order, Entry)

	for head := 0; head < len(live.order); head++ {
		i := live.order[head]
		if g[i].Op.IsPlaceholder() {
			continue
		}

		for _, e := range successors(g, i) {
			live.edges = append(live.edges, e)
			live.inDegree[e.To]++

			if !live.member[e.To] {
				live.member[e.To] = true
				live.order = append(live.order, e.To)
			}
		}
	}

	return live
}
