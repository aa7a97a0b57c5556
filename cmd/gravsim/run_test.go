package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alvinng4/gravsim/catalog"
)

func TestLoadSystemPreset(t *testing.T) {
	b, err := loadSystem(Config{System: catalog.CircularBinaryOrbit})
	if err != nil {
		t.Fatal(err)
	}
	if b.N != 2 {
		t.Errorf("N = %d, want 2", b.N)
	}
}

func TestLoadSystemCustomRequiresPath(t *testing.T) {
	if _, err := loadSystem(Config{System: catalog.Custom}); err == nil {
		t.Fatal("expected an error when --custom is not set")
	}
}

func TestLoadSystemCustomReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sys.csv")
	if err := os.WriteFile(path, []byte("two,2,1,1,0,0,0,1,0,0,0,0,0,0,1,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := loadSystem(Config{System: catalog.Custom, Custom: path})
	if err != nil {
		t.Fatal(err)
	}
	if b.N != 2 {
		t.Errorf("N = %d, want 2", b.N)
	}
}
