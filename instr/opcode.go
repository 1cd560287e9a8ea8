package instr

import "fmt"

// Opcode is an immutable opcode descriptor: a number plus the ok and err
// pins it hard-wires. The zero value is UNDF.
type Opcode struct {
	nr  uint8
	ok  Pin
	err Pin
}

// Nr returns the opcode number.
func (op Opcode) Nr() uint8 { return op.nr }

// Ok returns the ok pin.
func (op Opcode) Ok() Pin { return op.ok }

// Err returns the err pin.
func (op Opcode) Err() Pin { return op.err }

// Pin returns the pin named by id.
func (op Opcode) Pin(id PinID) Pin {
	if id == PinErr {
		return op.err
	}

	return op.ok
}

// Name returns the mnemonic.
func (op Opcode) Name() string {
	if name, ok := grid.names[op.nr]; ok {
		return name
	}

	return fmt.Sprintf("OP%d", op.nr)
}

func (op Opcode) String() string { return op.Name() }

// HasErr reports whether the opcode can fail.
func (op Opcode) HasErr() bool { return op.err.Exists() }

// IsPlaceholder reports whether op is UNDF.
func (op Opcode) IsPlaceholder() bool { return op.nr == Undf.nr }

// IsReal reports whether op belongs to the instruction set proper rather than
// to the routing and bookkeeping opcodes.
func (op Opcode) IsReal() bool { return op.nr >= realBase }

// IsMover reports whether op is one of PCW, PCA, PCS and PCD.
func (op Opcode) IsMover() bool { return op.nr >= PCW.nr && op.nr <= PCD.nr }

// IsGoto reports whether op is one of GO0 to GO5.
func (op Opcode) IsGoto() bool { return op.nr >= GO0.nr && op.nr <= GO5.nr }

// Pack encodes the opcode as nr<<24 | err<<16 | slot<<8 | ok.
func (op Opcode) Pack() uint32 {
	return uint32(op.nr)<<24 |
		uint32(op.err.bits())<<16 |
		uint32(op.ok.slot)<<8 |
		uint32(op.ok.bits())
}

// UnpackOpcode decodes a packed opcode. Encodings that do not match a
// registered opcode exactly are rejected.
func UnpackOpcode(v uint32) (Opcode, error) {
	op, ok := ByNr(uint8(v >> 24))
	if !ok {
		return Opcode{}, fmt.Errorf("unknown opcode number %d", v>>24)
	}

	if op.Pack() != v {
		return Opcode{}, fmt.Errorf("opcode %s: pin encoding %#08x does not match %#08x",
			op.Name(), v, op.Pack())
	}

	return op, nil
}
