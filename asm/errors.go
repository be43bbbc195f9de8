package asm

import (
	"fmt"
	"strings"
)

const maxErrors = 10

type srcError struct {
	line int
	msg  string
}

// ErrAsm aggregates every syntax/semantic error found while assembling a
// source file, up to maxErrors. Its Error method renders them one per line
// in "line N: message" form, in the order they were encountered.
type ErrAsm []srcError

func (e ErrAsm) Error() string {
	l := make([]string, len(e))
	for i, err := range e {
		l[i] = fmt.Sprintf("line %d: %s", err.line, err.msg)
	}
	return strings.Join(l, "\n")
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	if p.abort() {
		return
	}
	p.errs = append(p.errs, srcError{line, fmt.Sprintf(format, args...)})
}

func (p *parser) abort() bool { return len(p.errs) >= maxErrors }
