package compiler

import (
	"github.com/sarchlab/gridcc/config"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
)

const none = -1

type cellKind uint8

const (
	cellFree cellKind = iota
	cellInst
	cellMover
	cellJump
)

// cell is one grid position during an attempt. sink is the input
// instruction execution reaches from here without visiting another input
// instruction. claim reserves a free cell for one destination.
type cell struct {
	kind  cellKind
	inst  int
	dir   instr.Direction
	slot  int
	sink  int
	claim int
}

// edge is a live control-flow edge bound to the cell its pin exits to. The
// start edge has from == none and exits to the origin.
type edge struct {
	from int
	pin  instr.PinID
	exit int
	to   int
	done bool
}

type exit struct {
	pin  instr.PinID
	cell int
	to   int
}

// state is a single placement and routing attempt under one layout.
type state struct {
	g      graph.Graph
	live   *graph.Live
	cfg    config.Config
	layout config.Layout

	width, height int

	cells   []cell
	at      []int
	edges   []*edge
	pending [][]*edge
	slots   *slotTable

	movers int
	jumps  int
}

func newState(g graph.Graph, live *graph.Live, cfg config.Config, layout config.Layout) *state {
	s := &state{
		g:       g,
		live:    live,
		cfg:     cfg,
		layout:  layout,
		width:   cfg.Width,
		height:  cfg.Height,
		cells:   make([]cell, cfg.Capacity()),
		at:      make([]int, len(g)),
		pending: make([][]*edge, cfg.Capacity()),
		slots:   newSlotTable(cfg.NamedLabels),
	}

	for i := range s.cells {
		s.cells[i] = cell{inst: none, sink: none, claim: none}
	}

	for i := range s.at {
		s.at[i] = none
	}

	return s
}

func (s *state) xy(c int) (int, int) {
	return c % s.width, c / s.width
}

func (s *state) neighbor(c int, d instr.Direction) (int, bool) {
	x, y := s.xy(c)
	dx, dy := d.Delta()
	x, y = x+dx, y+dy

	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return none, false
	}

	return y*s.width + x, true
}

func (s *state) label(c int) instr.Label {
	x, y := s.xy(c)
	return instr.Coord(x, y)
}

func (s *state) distance(a, b int) int {
	ax, ay := s.xy(a)
	bx, by := s.xy(b)

	return abs(ax-bx) + abs(ay-by)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// leadsTo reports whether execution entering c reaches input instruction d
// next.
func (s *state) leadsTo(c, d int) bool {
	cl := &s.cells[c]
	return cl.kind != cellFree && cl.sink == d
}

// accepts reports whether c can serve as the exit of an edge toward d.
func (s *state) accepts(c, d int) bool {
	cl := &s.cells[c]
	if cl.kind == cellFree {
		return cl.claim == none || cl.claim == d
	}

	return cl.sink == d
}

// exits lists the cells instruction i would exit to from c, for every pin
// with a real target. ok is false if one of them is off the grid.
func (s *state) exits(i, c int) ([]exit, bool) {
	in := s.g[i]

	var out []exit

	for _, id := range instr.PinIDs {
		d, isDir := in.Op.Pin(id).Direction()
		t := in.Target(id)

		if !isDir || t.IsQuasi() {
			continue
		}

		n, inGrid := s.neighbor(c, d)
		if !inGrid {
			return nil, false
		}

		out = append(out, exit{pin: id, cell: n, to: t.Index()})
	}

	return out, true
}

// unsatisfied counts the edges into i that will not be complete once i sits
// at c.
func (s *state) unsatisfied(i, c int) int {
	n := s.live.InDegree(i)
	if i == graph.Entry {
		n++
	}

	for _, e := range s.pending[c] {
		if !e.done && e.to == i {
			n--
		}
	}

	return n
}

// port finds the neighbor of c that routing toward i will enter through.
// reserve is true when the cell still has to be claimed for i.
func (s *state) port(i, c int, exits []exit) (n int, reserve, ok bool) {
	own := func(n int) (bool, bool) {
		for _, e := range exits {
			if e.cell == n {
				return true, e.to == i
			}
		}

		return false, false
	}

	for _, d := range instr.Directions {
		n, inGrid := s.neighbor(c, d)
		if !inGrid {
			continue
		}

		cl := &s.cells[n]
		_, toSelf := own(n)

		if toSelf ||
			(cl.kind == cellFree && cl.claim == i) ||
			(cl.kind != cellFree && cl.kind != cellInst && cl.sink == i) {
			return n, false, true
		}
	}

	// Cells the layout keeps for routing are reserved before cells that
	// could still hold instructions.
	for _, routingOnly := range []bool{true, false} {
		for _, d := range instr.Directions {
			n, inGrid := s.neighbor(c, d)
			if !inGrid {
				continue
			}

			cl := &s.cells[n]
			if cl.kind != cellFree || cl.claim != none {
				continue
			}

			if isExit, _ := own(n); isExit {
				continue
			}

			x, y := s.xy(n)
			if s.layout.Allows(x, y) == routingOnly {
				continue
			}

			return n, true, true
		}
	}

	return none, false, false
}

// eligible reports whether instruction i can be placed at c. A strict check
// also requires an entry port when some incoming edge will need routing.
func (s *state) eligible(i, c int, strict bool) bool {
	x, y := s.xy(c)
	if !s.layout.Allows(x, y) {
		return false
	}

	cl := &s.cells[c]
	if cl.kind != cellFree || (cl.claim != none && cl.claim != i) {
		return false
	}

	exits, ok := s.exits(i, c)
	if !ok {
		return false
	}

	for _, e := range exits {
		if !s.accepts(e.cell, e.to) {
			return false
		}
	}

	if strict && s.unsatisfied(i, c) > 0 {
		_, _, ok := s.port(i, c, exits)
		return ok
	}

	return true
}

func (s *state) addEdge(e *edge) {
	s.edges = append(s.edges, e)

	if s.leadsTo(e.exit, e.to) {
		e.done = true
		return
	}

	s.cells[e.exit].claim = e.to
	s.pending[e.exit] = append(s.pending[e.exit], e)
}

func (s *state) complete(c int) {
	for _, e := range s.pending[c] {
		e.done = true
	}

	s.pending[c] = nil
}

// put places instruction i at c, which must be eligible.
func (s *state) put(i, c int) {
	exits, _ := s.exits(i, c)
	needPort := s.unsatisfied(i, c) > 0

	s.cells[c] = cell{kind: cellInst, inst: i, sink: i, claim: none}
	s.at[i] = c
	s.complete(c)

	for _, e := range exits {
		s.addEdge(&edge{from: i, pin: e.pin, exit: e.cell, to: e.to})
	}

	if needPort {
		if n, reserve, ok := s.port(i, c, nil); ok && reserve {
			s.cells[n].claim = i
		}
	}
}

// grow places i at c and then keeps placing successors directly on the
// exits leading to them, ok chains first.
func (s *state) grow(i, c int) {
	s.put(i, c)

	stack := []int{i}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		exits, _ := s.exits(j, s.at[j])

		var placed []int

		for _, e := range exits {
			if s.at[e.to] != none || !s.eligible(e.to, e.cell, true) {
				continue
			}

			s.put(e.to, e.cell)
			placed = append(placed, e.to)
		}

		for k := len(placed) - 1; k >= 0; k-- {
			stack = append(stack, placed[k])
		}
	}
}

// claimed lists the exits already waiting for i. The start edge makes the
// origin the first of them for the entry.
func (s *state) claimed(i int) []int {
	var out []int

	for _, e := range s.edges {
		if !e.done && e.to == i {
			out = append(out, e.exit)
		}
	}

	return out
}

// findCell picks a cell for i. Exits already waiting for i come first, since
// sitting on one satisfies an edge by adjacency; a free cell is then
// searched in row-major order. Each group is tried with a port first.
func (s *state) findCell(i int) (int, bool) {
	claimed := s.claimed(i)

	for _, strict := range []bool{true, false} {
		for _, c := range claimed {
			if s.eligible(i, c, strict) {
				return c, true
			}
		}
	}

	for _, strict := range []bool{true, false} {
		for c := range s.cells {
			if s.eligible(i, c, strict) {
				return c, true
			}
		}
	}

	return none, false
}

// place puts every live instruction on the grid.
func (s *state) place() error {
	s.addEdge(&edge{from: none, pin: instr.PinOK, exit: 0, to: graph.Entry})

	for _, i := range s.live.Order() {
		if s.at[i] != none {
			continue
		}

		c, ok := s.findCell(i)
		if !ok {
			return &CapacityError{
				Index:    i,
				Live:     s.live.Len(),
				Capacity: s.layout.Capacity(s.width, s.height),
			}
		}

		s.grow(i, c)
	}

	return nil
}
