package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p.Colors) == 0 {
		t.Fatal("default palette is empty")
	}
	// Dark at the bottom, bright at the top
	first := p.Lookup(0)
	last := p.Lookup(1)
	if int(first[0])+int(first[1])+int(first[2]) >= int(last[0])+int(last[1])+int(last[2]) {
		t.Fatalf("ramp not dark-to-bright: %v -> %v", first, last)
	}
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	if got := p.Lookup(-1); got != (RGB{0, 0, 0}) {
		t.Fatalf("below range: %v", got)
	}
	if got := p.Lookup(2); got != (RGB{200, 100, 50}) {
		t.Fatalf("above range: %v", got)
	}
	mid := p.Lookup(0.5)
	if mid != (RGB{100, 50, 25}) {
		t.Fatalf("midpoint: %v", mid)
	}
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: Test\nColumns: 2\n# comment\n  0   0   0 black\n255 255 255 white\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "Test" {
		t.Fatalf("name: %q", p.Name)
	}
	if len(p.Colors) != 2 || p.Colors[1] != (RGB{255, 255, 255}) {
		t.Fatalf("colors: %v", p.Colors)
	}
}

func TestLoadGPLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Fatal("expected error for palette with no colors")
	}
}
