package isa

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Image is a fully assembled program: the header cell at index 0, followed
// by data cells, followed by instruction cells, in address order.
type Image []MemoryCell

// Load reads a program image from a JSON file. Cell 0 must be present and is
// reclassified as the header cell regardless of how it was encoded.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	var img Image
	if err := json.NewDecoder(f).Decode(&img); err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	if len(img) == 0 {
		return nil, errors.New("image has no cells")
	}
	if img[0].Addr != 0 {
		return nil, errors.Errorf("image header: expected cell at address 0, got %d", img[0].Addr)
	}
	img[0].Kind = CellHeader
	return img, nil
}

// Save writes the image to a JSON file, cell 0 first.
func (img Image) Save(fileName string) error {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return errors.Wrap(err, "create image")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")
	if err := enc.Encode([]MemoryCell(img)); err != nil {
		return errors.Wrap(err, "encode image")
	}
	return nil
}

// EntryPoint returns the address of the first instruction, as recorded in
// the header cell.
func (img Image) EntryPoint() int {
	return int(img[0].Value)
}

// Disassemble renders the cell at addr and returns the address of the next
// cell to disassemble. For a data cell, the rendering is just its value; the
// header cell renders as "header entry=N"; for an unknown/out-of-range address it reports so rather than
// panicking, since this is a diagnostic aid and not on the execution path.
func (img Image) Disassemble(addr int) (next int, text string) {
	if addr < 0 || addr >= len(img) {
		return addr + 1, "???"
	}
	c := img[addr]
	switch c.Kind {
	case CellHeader:
		return addr + 1, "header entry=" + strconv.Itoa(int(c.Value))
	case CellData:
		return addr + 1, strconv.Itoa(int(c.Value))
	case CellInstr:
		if c.HasArg {
			return addr + 1, c.Op.String() + " " + strconv.Itoa(int(c.Arg))
		}
		return addr + 1, c.Op.String()
	default:
		return addr + 1, "???"
	}
}
