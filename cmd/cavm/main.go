// Command cavm loads a program image and runs it against an input file.
package main

import (
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mdrozdova/peregrine/internal/errwriter"
	"github.com/mdrozdova/peregrine/isa"
	"github.com/mdrozdova/peregrine/vm"
)

func main() {
	app := &cli.App{
		Name:      "cavm",
		Usage:     "run a program image against an input file",
		ArgsUsage: "<image-path> <input-path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dump", Usage: "print a disassembly of the image instead of running it"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: cavm <image-path> <input-path>", 2)
	}
	imagePath, inputPath := c.Args().Get(0), c.Args().Get(1)

	img, err := isa.Load(imagePath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("dump") {
		dump(img)
		return nil
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer in.Close()

	i, err := vm.New(img, vm.Input(in))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := i.Run(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out := errwriter.New(os.Stdout)
	fmt.Fprint(out, renderStdout(i.Stdout()))
	fmt.Fprintf(out, "instruction_count: %d, ticks: %d\n", i.InstructionCount(), i.Ticks())
	return out.Err
}

// renderStdout maps each STDOUT value to its character. If any value isn't
// a valid rune, it falls back to one numeric value per line instead. An
// empty STDOUT renders as nothing, not a blank line.
func renderStdout(vs []int) string {
	if len(vs) == 0 {
		return ""
	}
	for _, v := range vs {
		if v < 0 || !utf8.ValidRune(rune(v)) {
			s := ""
			for _, n := range vs {
				s += fmt.Sprintf("%d\n", n)
			}
			return s
		}
	}
	runes := make([]rune, len(vs))
	for i, v := range vs {
		runes[i] = rune(v)
	}
	return string(runes) + "\n"
}

func dump(img isa.Image) {
	for addr := 0; addr < len(img); {
		next, text := img.Disassemble(addr)
		fmt.Printf("%4d  %s\n", addr, text)
		addr = next
	}
}
