package verify

import (
	"fmt"

	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
)

// RunLint performs static checks on a compiled program.
// STRUCT issues are labels that do not agree with the grid geometry or the
// named label table. FLOW issues are routing loops, unused named labels, and
// a placeholder at the origin of a non-empty program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(p *program.Program) []Issue {
	var issues []Issue

	used := make([]bool, instr.NamedLabelNumber)

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			in := p.At(x, y)
			if in.Op.IsPlaceholder() {
				if in != instr.Placeholder() {
					issues = append(issues, structIssue(x, y, -1,
						"placeholder carries labels", nil))
				}

				continue
			}

			for _, id := range instr.PinIDs {
				issues = append(issues, lintPin(p, x, y, in, id, used)...)
			}
		}
	}

	for n := 0; n < instr.NamedLabelNumber; n++ {
		target := p.Label(n)
		if target == instr.End {
			continue
		}

		if dst, ok := p.Fetch(target); !ok || dst.Op.IsPlaceholder() {
			issues = append(issues, structIssue(-1, -1, n,
				fmt.Sprintf("named label %d points at %s, which holds no instruction", n, target.CoordString()),
				map[string]interface{}{"target": target.CoordString()}))
		}

		if !used[n] {
			issues = append(issues, Issue{
				Type:    IssueFlow,
				X:       -1,
				Y:       -1,
				Slot:    n,
				Message: fmt.Sprintf("named label %d is assigned but no goto uses it", n),
			})
		}
	}

	issues = append(issues, lintLoops(p)...)

	if p.Occupied() > 0 && p.At(0, 0).Op.IsPlaceholder() {
		issues = append(issues, Issue{
			Type:    IssueFlow,
			X:       0,
			Y:       0,
			Slot:    -1,
			Message: "execution starts at a placeholder",
		})
	}

	return issues
}

func structIssue(x, y, slot int, msg string, details map[string]interface{}) Issue {
	return Issue{Type: IssueStruct, X: x, Y: y, Slot: slot, Message: msg, Details: details}
}

func lintPin(
	p *program.Program,
	x, y int,
	in instr.Instruction,
	id instr.PinID,
	used []bool,
) []Issue {
	pin := in.Op.Pin(id)
	label := in.Target(id)
	where := fmt.Sprintf("%s %s pin", in.Op.Name(), id)

	switch pin.Kind() {
	case instr.PinNone, instr.PinSome:
		if label != instr.End {
			return []Issue{structIssue(x, y, -1,
				fmt.Sprintf("%s must end but has label %s", where, label.CoordString()), nil)}
		}

		return nil
	case instr.PinSlot:
		n, _ := pin.Slot()
		used[n] = true

		if p.Label(n) == instr.End {
			return []Issue{structIssue(x, y, n,
				fmt.Sprintf("%s jumps through unassigned named label %d", where, n), nil)}
		}

		if label != p.Label(n) {
			return []Issue{structIssue(x, y, n,
				fmt.Sprintf("%s label %s disagrees with named label %d = %s",
					where, label.CoordString(), n, p.Label(n).CoordString()), nil)}
		}

		return nil
	}

	if label == instr.End {
		return nil
	}

	if label == instr.Undefined {
		return []Issue{structIssue(x, y, -1, fmt.Sprintf("%s is undefined", where), nil)}
	}

	d, _ := pin.Direction()

	nx, ny, ok := p.Step(x, y, d)
	if !ok {
		return []Issue{structIssue(x, y, -1,
			fmt.Sprintf("%s leaves the grid toward %s", where, d), nil)}
	}

	if label != instr.Coord(nx, ny) {
		return []Issue{structIssue(x, y, -1,
			fmt.Sprintf("%s label %s is not its neighbor (%d, %d)", where, label.CoordString(), nx, ny),
			map[string]interface{}{"label": label.CoordString(), "neighbor": instr.Coord(nx, ny).CoordString()})}
	}

	if p.At(nx, ny).Op.IsPlaceholder() {
		return []Issue{structIssue(x, y, -1,
			fmt.Sprintf("%s leads to a placeholder at (%d, %d)", where, nx, ny), nil)}
	}

	return nil
}

// lintLoops reports routing cells from which execution never reaches a real
// instruction.
func lintLoops(p *program.Program) []Issue {
	var issues []Issue

	state := make(map[instr.Label]int)

	const (
		visiting = 1
		done     = 2
	)

	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			start := instr.Coord(x, y)
			if !isRouting(p.At(x, y).Op) || state[start] == done {
				continue
			}

			var chain []instr.Label

			cur := start
			for {
				in, ok := p.Fetch(cur)
				if !ok || !isRouting(in.Op) || state[cur] == done {
					break
				}

				if state[cur] == visiting {
					issues = append(issues, Issue{
						Type:    IssueFlow,
						X:       cur.X(),
						Y:       cur.Y(),
						Slot:    -1,
						Message: fmt.Sprintf("routing loop through (%d, %d)", cur.X(), cur.Y()),
					})

					break
				}

				state[cur] = visiting
				chain = append(chain, cur)

				next := in.Ok
				if in.Op.IsGoto() {
					slot, _ := in.Op.Ok().Slot()
					next = p.Label(slot)
				}

				if next.IsQuasi() {
					break
				}

				cur = next
			}

			for _, c := range chain {
				state[c] = done
			}
		}
	}

	return issues
}

func isRouting(op instr.Opcode) bool {
	return op.IsMover() || op.IsGoto()
}
