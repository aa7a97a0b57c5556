package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCatalogListPrintsEveryPreset(t *testing.T) {
	cmd := newCatalogListCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"circular_binary_orbit", "solar_system", "figure-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog list output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogValidateRejectsMissingFile(t *testing.T) {
	cmd := newCatalogValidateCmd()
	if err := cmd.RunE(cmd, []string{"/nonexistent/path.csv"}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
