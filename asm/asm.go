package asm

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mdrozdova/peregrine/isa"
)

// Result is the outcome of a successful assembly: the image itself plus the
// two figures casm reports on the command line.
type Result struct {
	Image     isa.Image
	SourceLoC int
	CodeInstr int
}

// Assemble reads line-oriented assembly source from r and assembles it into
// a program image. On any syntax or resolution error it returns an ErrAsm
// listing every error found, up to maxErrors.
func Assemble(r io.Reader) (*Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}

	p := newParser()
	p.parse(cleanLines(string(src)))
	if len(p.errs) > 0 {
		return nil, p.errs
	}

	return &Result{
		Image:     isa.Image(p.img),
		SourceLoC: p.sourceLoC,
		CodeInstr: p.codeInstr,
	}, nil
}
