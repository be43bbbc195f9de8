package vm

import (
	"fmt"

	"github.com/mdrozdova/peregrine/isa"
)

// ports holds one FIFO queue of integers per I/O port. STDIN is seeded by
// the Input option before Run starts; STDOUT accumulates until drained by
// the caller after Run returns.
type ports struct {
	q map[isa.Port][]int
}

func newPorts() *ports {
	return &ports{q: make(map[isa.Port][]int)}
}

func (p *ports) seed(port isa.Port, values []int) {
	p.q[port] = append(p.q[port], values...)
}

// read removes and returns the front of port's FIFO. An empty or
// never-seeded port is fatal.
func (p *ports) read(port isa.Port) int {
	q := p.q[port]
	if len(q) == 0 {
		panic(runtimeFault(fmt.Sprintf("read from empty port %d", port)))
	}
	v := q[0]
	p.q[port] = q[1:]
	return v
}

func (p *ports) write(port isa.Port, v int) {
	p.q[port] = append(p.q[port], v)
}

// drain empties port's FIFO and returns its former contents in order.
func (p *ports) drain(port isa.Port) []int {
	v := p.q[port]
	p.q[port] = nil
	return v
}
