package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/alvinng4/gravsim/gravsimerr"
)

func TestReadCustomRoundTrip(t *testing.T) {
	systems := []CustomSystem{
		{
			Name: "two-body",
			M:    []float64{1, 2},
			X:    []float64{0, 0, 0, 1, 0, 0},
			V:    []float64{0, 0, 0, 0, 1, 0},
		},
	}
	var buf strings.Builder
	if err := WriteCustom(&buf, systems); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCustom(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d systems, want 1", len(got))
	}
	if got[0].Name != "two-body" || len(got[0].M) != 2 || len(got[0].X) != 6 || len(got[0].V) != 6 {
		t.Errorf("round-tripped system mismatch: %+v", got[0])
	}
}

func TestReadCustomRejectsFieldCountMismatch(t *testing.T) {
	// Declares N=2 but only supplies one body's worth of data.
	_, err := ReadCustom(strings.NewReader("bad,2,1,2,0,0,0,0,0,0\n"))
	if err == nil {
		t.Fatal("expected an InvalidInput error for a short row")
	}
	if !errors.Is(err, gravsimerr.ErrInvalidInput) {
		t.Errorf("got %v, want InvalidInput", err)
	}
}

func TestReadCustomRejectsDuplicateNames(t *testing.T) {
	in := "sys,1,1,0,0,0,0,0,0\nsys,1,2,0,0,0,0,0,0\n"
	_, err := ReadCustom(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected an error for a duplicate system name")
	}
}

func TestReadCustomSkipsBlankAndCommentLines(t *testing.T) {
	in := "# a comment\n\nsys,1,1,0,0,0,0,0,0\n"
	got, err := ReadCustom(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d systems, want 1", len(got))
	}
}

func TestReadCustomRejectsNonNumericField(t *testing.T) {
	_, err := ReadCustom(strings.NewReader("sys,1,notanumber,0,0,0,0,0,0\n"))
	if err == nil {
		t.Fatal("expected an error for a non-numeric mass field")
	}
}
