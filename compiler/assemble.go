package compiler

import (
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
)

// assemble writes the attempt's grid and label table into a fresh program.
func (s *state) assemble() *program.Program {
	p := program.NewWithSize(s.width, s.height)

	for c := range s.cells {
		x, y := s.xy(c)
		cl := &s.cells[c]

		switch cl.kind {
		case cellInst:
			p.Set(x, y, s.resolve(cl.inst, c))
		case cellMover:
			next, _ := s.neighbor(c, cl.dir)
			p.Set(x, y, instr.NewInstruction(instr.Mover(cl.dir), s.label(next)))
		case cellJump:
			p.Set(x, y, instr.NewInstruction(instr.Goto(cl.slot), s.label(s.at[cl.sink])))
		}
	}

	for n, d := range s.slots.dest {
		if d != none {
			p.SetLabel(n, s.label(s.at[d]))
		}
	}

	return p
}

// resolve turns the input labels of instruction i placed at c into
// coordinates. Every real target is reached through the exit cell, either
// directly or through the routing placed there. An Undefined target takes
// the neighboring input instruction if there is one and ends otherwise.
func (s *state) resolve(i, c int) instr.Instruction {
	in := s.g[i]
	out := instr.Instruction{Op: in.Op, Ok: instr.End, Err: instr.End}

	for _, id := range instr.PinIDs {
		d, isDir := in.Op.Pin(id).Direction()
		t := in.Target(id)

		if !isDir || t == instr.End {
			continue
		}

		n, inGrid := s.neighbor(c, d)
		if !inGrid {
			continue
		}

		if t == instr.Undefined && s.cells[n].kind != cellInst {
			continue
		}

		if id == instr.PinOK {
			out.Ok = s.label(n)
		} else {
			out.Err = s.label(n)
		}
	}

	return out
}
