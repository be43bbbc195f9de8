// Command casm assembles a source file into a JSON program image.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mdrozdova/peregrine/asm"
)

func main() {
	app := &cli.App{
		Name:      "casm",
		Usage:     "assemble a source file into a program image",
		ArgsUsage: "<source-path> <target-path>",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: casm <source-path> <target-path>", 2)
	}
	srcPath, dstPath := c.Args().Get(0), c.Args().Get(1)

	f, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer f.Close()

	res, err := asm.Assemble(f)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := res.Image.Save(dstPath); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("source LoC: %d code instr: %d\n", res.SourceLoC, res.CodeInstr)
	return nil
}
