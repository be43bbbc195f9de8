// Package vm implements the stack-machine virtual machine: a bounded
// memory of isa.MemoryCell, two bounded stacks (data and address/return),
// a two-port I/O subsystem, and a tick-accurate fetch-decode-execute loop.
//
// An Instance is built with New, configured through functional Options, and
// driven to completion with Run. Run recovers from internal faults (memory
// out of bounds, stack overflow/underflow, reads from an empty port) and
// turns them into an error; HALT and the instruction-count limit are the
// two non-fault ways a run ends.
package vm
