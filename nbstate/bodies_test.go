package nbstate

import (
	"errors"
	"testing"

	"github.com/alvinng4/gravsim/gravsimerr"
)

func TestNewBodiesRejectsNonPositiveMass(t *testing.T) {
	_, err := NewBodies([]float64{1, -1}, make([]float64, 6), make([]float64, 6), 0)
	if err == nil {
		t.Fatal("expected error for non-positive mass")
	}
	if !errors.Is(err, gravsimerr.ErrInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestNewBodiesRejectsLengthMismatch(t *testing.T) {
	_, err := NewBodies([]float64{1, 1}, make([]float64, 5), make([]float64, 6), 0)
	if !errors.Is(err, gravsimerr.ErrInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestNewBodiesRejectsCoincidence(t *testing.T) {
	x := []float64{0, 0, 0, 0, 0, 0}
	v := make([]float64, 6)
	_, err := NewBodies([]float64{1, 1}, x, v, 0)
	if !errors.Is(err, gravsimerr.ErrCoincidence) {
		t.Errorf("expected Coincidence, got %v", err)
	}
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	m := []float64{1, 2, 3}
	x := []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	v := []float64{0, 1, 0, 0, 0, 1, 1, 0, 0}
	b, err := NewBodies(m, x, v, 5)
	if err != nil {
		t.Fatal(err)
	}
	flat := b.Flatten()
	if len(flat) != 6*3 {
		t.Fatalf("expected length 18, got %d", len(flat))
	}
	var b2 Bodies
	b2, err = NewBodies(m, x, v, 5)
	if err != nil {
		t.Fatal(err)
	}
	b2.Unflatten(flat)
	for i := 0; i < b.N; i++ {
		for k := 0; k < 3; k++ {
			if b.X.At(i, k) != b2.X.At(i, k) || b.V.At(i, k) != b2.V.At(i, k) {
				t.Fatalf("round trip mismatch at body %d axis %d", i, k)
			}
		}
	}
}

func TestSubtractBarycenter(t *testing.T) {
	m := []float64{2, 1}
	x := []float64{3, 0, 0, -3, 0, 0} // barycenter at x=1, not 0
	v := []float64{0, 1, 0, 0, -4, 0}
	b, err := NewBodies(m, x, v, 0)
	if err != nil {
		t.Fatal(err)
	}
	b.SubtractBarycenter()
	var cx, cv float64
	for i := 0; i < b.N; i++ {
		cx += m[i] * b.X.At(i, 0)
		cv += m[i] * b.V.At(i, 1)
	}
	if abs(cx) > 1e-12 || abs(cv) > 1e-12 {
		t.Errorf("expected barycenter at origin, got cx=%v cv=%v", cx, cv)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
