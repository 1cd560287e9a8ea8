package compiler

// slotTable assigns named label slots to far-jump destinations. A
// destination keeps its slot for the whole compilation.
type slotTable struct {
	dest []int
}

func newSlotTable(budget int) *slotTable {
	t := &slotTable{dest: make([]int, budget)}
	for i := range t.dest {
		t.dest[i] = none
	}

	return t
}

func (t *slotTable) budget() int { return len(t.dest) }

func (t *slotTable) lookup(d int) (int, bool) {
	for n, v := range t.dest {
		if v == d {
			return n, true
		}
	}

	return 0, false
}

func (t *slotTable) free() (int, bool) {
	for n, v := range t.dest {
		if v == none {
			return n, true
		}
	}

	return 0, false
}

func (t *slotTable) canAcquire(d int) bool {
	if _, ok := t.lookup(d); ok {
		return true
	}

	_, ok := t.free()

	return ok
}

// acquire returns the slot for d, assigning the lowest free one if needed.
func (t *slotTable) acquire(e *edge) (int, error) {
	if n, ok := t.lookup(e.to); ok {
		return n, nil
	}

	if t.budget() == 0 {
		return 0, &RoutingError{
			From: e.from, Pin: e.pin, To: e.to,
			Reason: "no mover path and no named labels available",
		}
	}

	n, ok := t.free()
	if !ok {
		return 0, &LabelBudgetError{From: e.from, Pin: e.pin, To: e.to, Budget: t.budget()}
	}

	t.dest[n] = e.to

	return n, nil
}

func (t *slotTable) used() int {
	n := 0

	for _, v := range t.dest {
		if v != none {
			n++
		}
	}

	return n
}
