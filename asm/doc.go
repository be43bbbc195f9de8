// Package asm assembles line-oriented stack-machine assembly source into an
// isa.Image.
//
// Source layout:
//
//	section .data:
//	n: 42
//	p: n
//	s: "hi"
//	b: bf 4
//	section .text:
//	loop:   push n
//	        dec
//	        dup
//	        pop n
//	        jnz loop
//	        halt
//
// Both section markers are mandatory and each must appear exactly once, data
// before text. Comments start with ';' and run to end of line; blank lines
// and leading/trailing whitespace are ignored.
//
// Data directives, one per line as "NAME: VALUE":
//
//	n: 42       integer literal, allocates one cell holding 42
//	p: n        reference, allocates one cell holding the address of n
//	s: "hi"     string literal, allocates a length-prefixed char array
//	b: bf 4     buffer, allocates 4 zero-initialized cells addressed by b
//
// Text section lines are a label ("name:"), a zero-operand instruction
// ("op"), or a one-operand instruction ("op arg") where arg is an integer
// literal, a label name, a data name, or "[name]" for one level of
// indirection through the value stored at name's data cell. Address
// resolution (labels and data names to concrete addresses) happens in a
// second pass once the whole source has been scanned, so forward references
// to labels and data names are always legal.
package asm
