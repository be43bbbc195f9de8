package isa

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind distinguishes the three shapes a MemoryCell can take.
type Kind int

const (
	// CellHeader is the single cell at address 0 holding the entry point.
	CellHeader Kind = iota
	// CellData is a data word.
	CellData
	// CellInstr is an instruction, with or without an argument.
	CellInstr
)

// MemoryCell is one slot of program memory: either the header, a data word,
// or an instruction. Fields not meaningful for a given Kind are zero.
type MemoryCell struct {
	Addr   int
	Kind   Kind
	Value  Cell   // CellHeader (entry point) and CellData
	Op     Opcode // CellInstr
	Arg    Cell   // CellInstr, only when Op.HasArg()
	HasArg bool
}

// NewHeader builds the header cell for entry at the given address.
func NewHeader(entry int) MemoryCell {
	return MemoryCell{Addr: 0, Kind: CellHeader, Value: Cell(entry)}
}

// NewData builds a data cell holding value at addr.
func NewData(addr int, value Cell) MemoryCell {
	return MemoryCell{Addr: addr, Kind: CellData, Value: value}
}

// NewInstr builds an instruction cell with no argument.
func NewInstr(addr int, op Opcode) MemoryCell {
	return MemoryCell{Addr: addr, Kind: CellInstr, Op: op}
}

// NewInstrArg builds an instruction cell carrying a resolved argument.
func NewInstrArg(addr int, op Opcode, arg Cell) MemoryCell {
	return MemoryCell{Addr: addr, Kind: CellInstr, Op: op, Arg: arg, HasArg: true}
}

// cellWire is the JSON wire shape from spec: a data/header cell carries
// "value", an instruction cell carries "opcode" and optionally "arg".
type cellWire struct {
	Addr   int     `json:"addr"`
	Value  *int64  `json:"value,omitempty"`
	Opcode *string `json:"opcode,omitempty"`
	Arg    *int64  `json:"arg,omitempty"`
}

// MarshalJSON implements the on-disk image cell shape.
func (c MemoryCell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellHeader, CellData:
		v := int64(c.Value)
		return json.Marshal(cellWire{Addr: c.Addr, Value: &v})
	case CellInstr:
		name := c.Op.String()
		w := cellWire{Addr: c.Addr, Opcode: &name}
		if c.HasArg {
			a := int64(c.Arg)
			w.Arg = &a
		}
		return json.Marshal(w)
	default:
		return nil, errors.Errorf("marshal cell at %d: unknown kind %d", c.Addr, c.Kind)
	}
}

// UnmarshalJSON parses a cell from its wire shape, classifying it as a data
// cell or an instruction cell based on which keys are present. The header
// cell (address 0) is reclassified as CellHeader by isa.Load once the whole
// array is known.
func (c *MemoryCell) UnmarshalJSON(data []byte) error {
	var w cellWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Addr = w.Addr
	switch {
	case w.Opcode != nil:
		op, err := ParseOpcode(*w.Opcode)
		if err != nil {
			return errors.Wrapf(err, "cell at %d", w.Addr)
		}
		c.Kind = CellInstr
		c.Op = op
		if w.Arg != nil {
			c.HasArg = true
			c.Arg = Cell(*w.Arg)
		}
	case w.Value != nil:
		c.Kind = CellData
		c.Value = Cell(*w.Value)
	default:
		return errors.Errorf("cell at %d: missing both \"opcode\" and \"value\"", w.Addr)
	}
	return nil
}
