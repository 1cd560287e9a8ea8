package compiler

import (
	"log/slog"
	"sort"

	"github.com/sarchlab/gridcc/instr"
)

// route realizes every edge that placement did not satisfy by adjacency.
// The start edge goes first, then edges by increasing distance between exit
// and destination.
func (s *state) route() error {
	var open []*edge

	for _, e := range s.edges {
		if !e.done {
			open = append(open, e)
		}
	}

	sort.SliceStable(open, func(a, b int) bool {
		return s.routeKey(open[a]) < s.routeKey(open[b])
	})

	for _, e := range open {
		if err := s.routeEdge(e); err != nil {
			return err
		}
	}

	return nil
}

func (s *state) routeKey(e *edge) int {
	if e.from == none {
		return -1
	}

	return s.distance(e.exit, s.at[e.to])
}

func (s *state) routeEdge(e *edge) error {
	if e.done {
		return nil
	}

	if s.leadsTo(e.exit, e.to) {
		e.done = true
		return nil
	}

	cl := &s.cells[e.exit]
	if cl.kind != cellFree || (cl.claim != none && cl.claim != e.to) {
		return &RoutingError{From: e.from, Pin: e.pin, To: e.to, Reason: "exit cell is taken"}
	}

	path, last, found := s.search(e.exit, e.to)
	_, shared := s.slots.lookup(e.to)

	jump := !found ||
		(shared && len(path) > 1) ||
		(s.cfg.MaxMoverChain > 0 && len(path) > s.cfg.MaxMoverChain && s.slots.canAcquire(e.to))

	if !jump {
		s.lay(path, last, e.to)

		slog.Debug("Route",
			"Behavior", "Movers",
			"From", e.from,
			"Pin", e.pin.String(),
			"To", e.to,
			"Length", len(path),
		)

		return nil
	}

	n, err := s.slots.acquire(e)
	if err != nil {
		return err
	}

	s.cells[e.exit] = cell{kind: cellJump, inst: none, slot: n, sink: e.to, claim: none}
	s.complete(e.exit)
	s.jumps++

	slog.Debug("Route",
		"Behavior", "FarJump",
		"From", e.from,
		"Pin", e.pin.String(),
		"To", e.to,
		"Slot", n,
	)

	return nil
}

func (s *state) passable(c, d int) bool {
	cl := &s.cells[c]
	return cl.kind == cellFree && (cl.claim == none || cl.claim == d)
}

// search finds the shortest 4-connected path of passable cells from src to a
// cell next to one that leads to d. last is the direction from the final
// path cell into that neighbor.
func (s *state) search(src, d int) (path []int, last instr.Direction, found bool) {
	parent := map[int]int{src: none}
	queue := []int{src}

	for head := 0; head < len(queue); head++ {
		u := queue[head]

		for _, dir := range instr.Directions {
			n, ok := s.neighbor(u, dir)
			if !ok {
				continue
			}

			if s.leadsTo(n, d) {
				for c := u; c != none; c = parent[c] {
					path = append(path, c)
				}

				for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
					path[a], path[b] = path[b], path[a]
				}

				return path, dir, true
			}

			if _, seen := parent[n]; seen || !s.passable(n, d) {
				continue
			}

			parent[n] = u
			queue = append(queue, n)
		}
	}

	return nil, 0, false
}

// lay turns every path cell into a mover toward the next one.
func (s *state) lay(path []int, last instr.Direction, d int) {
	for k, c := range path {
		dir := last
		if k+1 < len(path) {
			dir = s.direction(c, path[k+1])
		}

		s.cells[c] = cell{kind: cellMover, inst: none, dir: dir, sink: d, claim: none}
		s.complete(c)
		s.movers++
	}
}

func (s *state) direction(from, to int) instr.Direction {
	for _, d := range instr.Directions {
		if n, ok := s.neighbor(from, d); ok && n == to {
			return d
		}
	}

	panic("cells are not adjacent")
}
