package vm

import (
	"fmt"

	"github.com/mdrozdova/peregrine/isa"
)

// runtimeFault is panicked by any data path operation that violates a
// memory or stack bound. Run recovers it and turns it into an error.
type runtimeFault string

func (f runtimeFault) Error() string { return string(f) }

// dataPath owns memory, the two stacks, the program counter and the Z
// flag. Every operation that can go out of bounds panics a runtimeFault
// rather than returning an error, so the control unit's dispatch code
// reads as a straight-line sequence of signals, matching the spec's
// description of signals exposed to the control unit.
type dataPath struct {
	mem []isa.MemoryCell
	pc  int
	z   int

	ds    []isa.Cell
	dsMax int
	as    []isa.Cell
	asMax int

	// Scratch latches the control unit clocks on every stack transaction.
	// They carry no semantics across instructions; they exist only so the
	// trace can show what the hardware was holding mid-instruction.
	dataTosReg1    isa.Cell
	dataTosReg2    isa.Cell
	addressTosReg1 isa.Cell

	io *ports
}

func newDataPath(memSize, dsMax, asMax int) *dataPath {
	mem := make([]isa.MemoryCell, memSize)
	for i := range mem {
		mem[i] = isa.NewData(i, 0)
	}
	return &dataPath{
		mem:   mem,
		ds:    make([]isa.Cell, 0, dsMax),
		dsMax: dsMax,
		as:    make([]isa.Cell, 0, asMax),
		asMax: asMax,
		io:    newPorts(),
	}
}

func (d *dataPath) load(img isa.Image) error {
	for _, c := range img {
		if c.Addr < 0 || c.Addr >= len(d.mem) {
			return fmt.Errorf("image cell at address %d exceeds memory size %d", c.Addr, len(d.mem))
		}
		d.mem[c.Addr] = c
	}
	return nil
}

func (d *dataPath) readCell(addr int) isa.MemoryCell {
	if addr < 0 || addr >= len(d.mem) {
		panic(runtimeFault(fmt.Sprintf("memory read out of bounds: %d", addr)))
	}
	return d.mem[addr]
}

func (d *dataPath) writeData(addr int, v isa.Cell) {
	if addr < 0 || addr >= len(d.mem) {
		panic(runtimeFault(fmt.Sprintf("memory write out of bounds: %d", addr)))
	}
	d.mem[addr] = isa.NewData(addr, v)
}

func (d *dataPath) pushData(v isa.Cell) {
	if len(d.ds) >= d.dsMax {
		panic(runtimeFault("data stack overflow"))
	}
	d.ds = append(d.ds, v)
	d.dataTosReg2 = d.dataTosReg1
	d.dataTosReg1 = v
}

func (d *dataPath) popData() isa.Cell {
	if len(d.ds) == 0 {
		panic(runtimeFault("data stack underflow"))
	}
	v := d.ds[len(d.ds)-1]
	d.ds = d.ds[:len(d.ds)-1]
	d.dataTosReg2 = d.dataTosReg1
	d.dataTosReg1 = v
	return v
}

func (d *dataPath) peekData() isa.Cell {
	if len(d.ds) == 0 {
		panic(runtimeFault("data stack underflow"))
	}
	return d.ds[len(d.ds)-1]
}

func (d *dataPath) pushAddr(v isa.Cell) {
	if len(d.as) >= d.asMax {
		panic(runtimeFault("address stack overflow"))
	}
	d.as = append(d.as, v)
	d.addressTosReg1 = v
}

func (d *dataPath) popAddr() isa.Cell {
	if len(d.as) == 0 {
		panic(runtimeFault("address stack underflow"))
	}
	v := d.as[len(d.as)-1]
	d.as = d.as[:len(d.as)-1]
	d.addressTosReg1 = v
	return v
}
