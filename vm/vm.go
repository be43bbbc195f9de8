package vm

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mdrozdova/peregrine/isa"
)

const (
	defaultMemSize           = 4096
	defaultDataStackSize     = 128
	defaultAddressStackSize  = 128
	defaultInstructionsLimit = 1_000_000
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// MemSize overrides the memory size (default 4096 cells). The image must
// fit within it.
func MemSize(n int) Option {
	return func(i *Instance) error { i.memSize = n; return nil }
}

// DataStackSize overrides the data stack bound (default 128).
func DataStackSize(n int) Option {
	return func(i *Instance) error { i.dsMax = n; return nil }
}

// AddressStackSize overrides the address stack bound (default 128).
func AddressStackSize(n int) Option {
	return func(i *Instance) error { i.asMax = n; return nil }
}

// InstructionLimit overrides the instruction-count ceiling (default
// 1,000,000) at which Run stops and warns instead of running forever.
func InstructionLimit(n int) Option {
	return func(i *Instance) error { i.limit = n; return nil }
}

// Logger sets the structured logger used for the per-instruction trace
// (emitted at debug severity). Defaults to slog.Default().
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// Input seeds the STDIN port by reading all of r as text, converting each
// rune to its code point, and prepending the rune count as the first FIFO
// element, per the input stream encoding in the external interface.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		br := bufio.NewReader(r)
		var runes []int
		for {
			ch, _, err := br.ReadRune()
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.Wrap(err, "read input stream")
			}
			runes = append(runes, int(ch))
		}
		i.pendingStdin = append([]int{len(runes)}, runes...)
		return nil
	}
}

// Instance is one run of the stack machine over a loaded image.
type Instance struct {
	memSize int
	dsMax   int
	asMax   int
	limit   int
	log     *slog.Logger

	pendingStdin []int

	dp       *dataPath
	insCount int
	ticks    int
}

// New loads img into a fresh Instance, applies opts, and seeds STDIN.
func New(img isa.Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		memSize: defaultMemSize,
		dsMax:   defaultDataStackSize,
		asMax:   defaultAddressStackSize,
		limit:   defaultInstructionsLimit,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	i.dp = newDataPath(i.memSize, i.dsMax, i.asMax)
	if err := i.dp.load(img); err != nil {
		return nil, errors.Wrap(err, "load image")
	}
	i.dp.io.seed(isa.PortStdin, i.pendingStdin)
	i.dp.pc = img.EntryPoint()

	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int {
	return i.insCount
}

// Ticks returns the number of simulated clock ticks elapsed so far.
func (i *Instance) Ticks() int {
	return i.ticks
}

// Stdout drains and returns the STDOUT port's accumulated contents.
func (i *Instance) Stdout() []int {
	return i.dp.io.drain(isa.PortStdout)
}

// DataAt returns the value held by the data cell at addr, for introspection
// in tests and disassembly tools. Panics with a runtimeFault on an
// out-of-bounds address, same as any other memory read. The cell's kind is
// not checked: for an instruction cell the result is its (zero) Value field.
func (i *Instance) DataAt(addr int) isa.Cell {
	return i.dp.readCell(addr).Value
}
