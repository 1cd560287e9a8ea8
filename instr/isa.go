package instr

import (
	"fmt"
	"sort"
)

// Opcode numbers at or above realBase belong to the instruction set proper.
const realBase = 12

// ISA records every opcode of the target by number and by name.
type ISA struct {
	name   string
	byNr   map[uint8]Opcode
	byName map[string]Opcode
	names  map[uint8]string
}

func newISA(name string) *ISA {
	return &ISA{
		name:   name,
		byNr:   make(map[uint8]Opcode),
		byName: make(map[string]Opcode),
		names:  make(map[uint8]string),
	}
}

func (isa *ISA) register(nr uint8, name string, ok, err Pin) Opcode {
	if _, dup := isa.byNr[nr]; dup {
		panic(fmt.Sprintf("opcode %d registered twice", nr))
	}

	op := Opcode{nr: nr, ok: ok, err: err}
	isa.byNr[nr] = op
	isa.byName[name] = op
	isa.names[nr] = name

	return op
}

var grid = newISA("grid")

var (
	Undf  = grid.register(0, "UNDF", NonePin(), NonePin())
	Empty = grid.register(1, "EMPTY", SomePin(), NonePin())

	PCW = grid.register(2, "PCW", DirPin(Up), NonePin())
	PCA = grid.register(3, "PCA", DirPin(Left), NonePin())
	PCS = grid.register(4, "PCS", DirPin(Down), NonePin())
	PCD = grid.register(5, "PCD", DirPin(Right), NonePin())

	GO0 = grid.register(6, "GO0", SlotPin(0), NonePin())
	GO1 = grid.register(7, "GO1", SlotPin(1), NonePin())
	GO2 = grid.register(8, "GO2", SlotPin(2), NonePin())
	GO3 = grid.register(9, "GO3", SlotPin(3), NonePin())
	GO4 = grid.register(10, "GO4", SlotPin(4), NonePin())
	GO5 = grid.register(11, "GO5", SlotPin(5), NonePin())

	Move  = grid.register(realBase+0, "MOVE", DirPin(Right), DirPin(Down))
	Dig   = grid.register(realBase+1, "DIG", DirPin(Right), DirPin(Down))
	MovDg = grid.register(realBase+2, "MOVDG", DirPin(Right), DirPin(Down))

	RC045 = grid.register(realBase+3, "RC045", DirPin(Right), NonePin())
	RC090 = grid.register(realBase+4, "RC090", DirPin(Right), NonePin())
	RC135 = grid.register(realBase+5, "RC135", DirPin(Right), NonePin())
	RC180 = grid.register(realBase+6, "RC180", DirPin(Right), NonePin())
	CC045 = grid.register(realBase+7, "CC045", DirPin(Right), NonePin())
	CC090 = grid.register(realBase+8, "CC090", DirPin(Right), NonePin())
	CC135 = grid.register(realBase+9, "CC135", DirPin(Right), NonePin())

	SWLK = grid.register(realBase+10, "SWLK", DirPin(Right), DirPin(Down))
	NWLK = grid.register(realBase+11, "NWLK", DirPin(Right), DirPin(Down))
	SDIG = grid.register(realBase+12, "SDIG", DirPin(Right), DirPin(Down))
	NDIG = grid.register(realBase+13, "NDIG", DirPin(Right), DirPin(Down))
	SCRS = grid.register(realBase+14, "SCRS", DirPin(Right), DirPin(Down))
	NCRS = grid.register(realBase+15, "NCRS", DirPin(Right), DirPin(Down))
	SHND = grid.register(realBase+16, "SHND", DirPin(Right), DirPin(Down))
	NHND = grid.register(realBase+17, "NHND", DirPin(Right), DirPin(Down))
)

var gotos = [NamedLabelNumber]Opcode{GO0, GO1, GO2, GO3, GO4, GO5}

// Lookup finds an opcode by its mnemonic.
func Lookup(name string) (Opcode, bool) {
	op, ok := grid.byName[name]
	return op, ok
}

// ByNr finds an opcode by its number.
func ByNr(nr uint8) (Opcode, bool) {
	op, ok := grid.byNr[nr]
	return op, ok
}

// Opcodes returns every registered opcode ordered by number.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, len(grid.byNr))
	for _, op := range grid.byNr {
		ops = append(ops, op)
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].nr < ops[j].nr })

	return ops
}

// Goto returns the opcode that jumps through named label slot n.
func Goto(n int) Opcode {
	if n < 0 || n >= NamedLabelNumber {
		panic(fmt.Sprintf("named label slot %d out of range", n))
	}

	return gotos[n]
}

// Mover returns the routing opcode that continues toward d.
func Mover(d Direction) Opcode {
	switch d {
	case Up:
		return PCW
	case Left:
		return PCA
	case Down:
		return PCS
	case Right:
		return PCD
	default:
		panic("invalid direction")
	}
}
