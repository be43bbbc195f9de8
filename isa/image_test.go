package isa

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	img := Image{
		NewHeader(1),
		NewInstrArg(1, LIT, 42),
		NewInstr(2, HALT),
	}
	path := filepath.Join(t.TempDir(), "prog.json")
	if err := img.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(img) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(img))
	}
	if got[0].Kind != CellHeader || got[0].Value != 1 {
		t.Errorf("header = %+v", got[0])
	}
	if got[1].Op != LIT || got[1].Arg != 42 {
		t.Errorf("cell 1 = %+v", got[1])
	}
	if got[2].Op != HALT {
		t.Errorf("cell 2 = %+v", got[2])
	}
}

func TestEntryPoint(t *testing.T) {
	img := Image{NewHeader(3), NewInstr(1, HALT), NewInstr(2, HALT), NewInstr(3, HALT)}
	if img.EntryPoint() != 3 {
		t.Errorf("EntryPoint() = %d, want 3", img.EntryPoint())
	}
}

func TestLoadRejectsEmptyImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := (Image{}).Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected error loading an empty image")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error loading a missing file")
	}
}

func TestDisassemble(t *testing.T) {
	img := Image{
		NewHeader(1),
		NewInstrArg(1, JMP, 2),
		NewInstr(2, HALT),
	}
	next, text := img.Disassemble(0)
	if next != 1 || text != "header entry=1" {
		t.Errorf("Disassemble(0) = %d, %q", next, text)
	}
	next, text = img.Disassemble(1)
	if next != 2 || text != "JMP 2" {
		t.Errorf("Disassemble(1) = %d, %q", next, text)
	}
	next, text = img.Disassemble(2)
	if next != 3 || text != "HALT" {
		t.Errorf("Disassemble(2) = %d, %q", next, text)
	}
}

func TestDisassembleOutOfRange(t *testing.T) {
	img := Image{NewHeader(1), NewInstr(1, HALT)}
	next, text := img.Disassemble(99)
	if next != 100 || text != "???" {
		t.Errorf("Disassemble(99) = %d, %q", next, text)
	}
}
