package vm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mdrozdova/peregrine/isa"
)

// Run drives the fetch-decode-execute loop to completion: HALT, or the
// instruction-count limit (a non-fatal warning, not an error). Any bound
// violation recovered from a dataPath operation is wrapped with the
// machine's position and returned as an error.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			rf, ok := e.(runtimeFault)
			if !ok {
				panic(e)
			}
			err = errors.Wrapf(rf, "pc=%d ticks=%d instructions=%d", i.dp.pc, i.ticks, i.insCount)
		}
	}()

	i.ticks += 2 // init cycle: latch header value into pc

	for {
		if i.insCount >= i.limit {
			i.log.Warn("instruction limit reached", "limit", i.limit, "pc", i.dp.pc)
			return nil
		}

		cell := i.dp.readCell(i.dp.pc)
		i.ticks++ // fetch
		if cell.Kind != isa.CellInstr {
			panic(runtimeFault(fmt.Sprintf("fetch at pc=%d: not an instruction cell", i.dp.pc)))
		}

		halted := i.dispatch(cell.Op, cell.Arg)
		i.insCount++
		i.trace(cell)
		if halted {
			return nil
		}
	}
}

// dispatch executes one instruction, advancing pc and ticks per the
// opcode's micro-sequence, and reports whether HALT was reached.
func (i *Instance) dispatch(op isa.Opcode, arg isa.Cell) (halted bool) {
	d := i.dp
	switch op {
	case isa.LIT:
		d.pushData(arg)
		d.pc++
		i.ticks += 2

	case isa.ADD, isa.SUB, isa.MUL, isa.DIV, isa.MOD:
		b := d.popData()
		a := d.popData()
		if (op == isa.DIV || op == isa.MOD) && a == 0 {
			panic(runtimeFault(fmt.Sprintf("%s by zero", op)))
		}
		r := binaryALU(op, b, a)
		d.pushData(r)
		d.z = zFlag(r)
		d.pc++
		i.ticks += 4

	case isa.CMP:
		b := d.popData()
		a := d.popData()
		d.z = zFlag(binaryALU(isa.CMP, a, b))
		d.pushData(a)
		d.pushData(b)
		d.pc++
		i.ticks += 4

	case isa.INC, isa.DEC:
		a := d.popData()
		r := unaryALU(op, a)
		d.pushData(r)
		d.z = zFlag(r)
		d.pc++
		i.ticks += 4

	case isa.DUP:
		d.pushData(d.peekData())
		d.pc++
		i.ticks += 4

	case isa.SWITCH:
		b := d.popData()
		a := d.popData()
		d.pushData(b)
		d.pushData(a)
		d.pc++
		i.ticks += 5

	case isa.DROP:
		d.popData()
		d.pc++
		i.ticks++

	case isa.PUSH:
		target := d.readCell(int(arg))
		var v isa.Cell
		if target.Kind == isa.CellInstr {
			v = target.Arg
		} else {
			v = target.Value
		}
		d.pushData(v)
		d.pc++
		i.ticks += 3

	case isa.POP:
		v := d.popData()
		d.writeData(int(arg), v)
		d.pc++
		i.ticks += 3

	case isa.OUT:
		v := d.popData()
		d.io.write(isa.Port(arg), int(v))
		d.pc++
		i.ticks += 3

	case isa.IN:
		v := d.io.read(isa.Port(arg))
		d.pushData(isa.Cell(v))
		d.pc++
		i.ticks += 3

	case isa.JMP:
		d.pc = int(arg)
		i.ticks += 2

	case isa.JZ:
		if d.z == 0 {
			d.pc = int(arg)
			i.ticks += 2
		} else {
			d.pc++
			i.ticks++
		}

	case isa.JNZ:
		if d.z != 0 {
			d.pc = int(arg)
			i.ticks += 2
		} else {
			d.pc++
			i.ticks++
		}

	case isa.CALL:
		d.pushAddr(isa.Cell(d.pc + 1))
		d.pc = int(arg)
		i.ticks += 4

	case isa.RET:
		d.pc = int(d.popAddr())
		i.ticks += 2

	case isa.HALT:
		return true

	default:
		panic(runtimeFault(fmt.Sprintf("unimplemented opcode %s", op)))
	}
	return false
}
