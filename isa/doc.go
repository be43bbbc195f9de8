// Package isa defines the instruction set, memory cell representation and
// on-disk program image format shared by the assembler and the virtual
// machine.
//
// A program image is a JSON array of cells. Cell 0 is always a header cell
// whose value holds the address of the first instruction to execute:
//
//	[
//	 {"addr": 0, "value": 7},
//	 {"addr": 1, "value": 42},
//	 {"opcode": "LIT", "addr": 7, "arg": 1},
//	 {"opcode": "HALT", "addr": 8}
//	]
//
// Cells come in three shapes, modeled as a single MemoryCell with an
// explicit Kind rather than by probing which JSON keys are present:
//
//	CellHeader  the cell at address 0; Value is the entry point
//	CellData    a data word; Value is its contents
//	CellInstr   an instruction; Op is the opcode, Arg is set only for
//	            opcodes that take an operand
//
// Opcodes with no operand: ADD, SUB, MUL, DIV, MOD, CMP, RET, INC, DEC, DUP,
// SWITCH, DROP, HALT. Opcodes with one operand: JMP, JZ, JNZ, CALL, LIT,
// PUSH, POP, IN, OUT.
package isa
