package integrate

import (
	"math"
	"testing"
)

func TestIAS15BasisDegrees(t *testing.T) {
	for n := 0; n < 7; n++ {
		if len(ias15Basis[n]) != n+2 {
			t.Errorf("basis[%d] has degree %d, want %d", n, len(ias15Basis[n])-1, n+1)
		}
		if ias15Basis[n][0] != 0 {
			t.Errorf("basis[%d] should vanish at t=0, got constant term %v", n, ias15Basis[n][0])
		}
	}
}

// TestIAS15ConservesEnergyOnCircularBinary is property 2 of §8 in spirit:
// IAS15 on the circular binary orbit should conserve energy to a very
// tight tolerance over a short run.
func TestIAS15ConservesEnergyOnCircularBinary(t *testing.T) {
	b := circularBinary(t)
	s, err := New(IAS15, Options{G: testG, Tolerance: 1e-12, ExpectedTimeScale: 1.0, MaxIteration: 50})
	if err != nil {
		t.Fatal(err)
	}
	e0 := energyOf(b)
	cur := b
	for i := 0; i < 30 && cur.T < 1.0; i++ {
		res, err := s.Step(cur)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		cur = res.Next
		if cur.HasNonFinite() {
			t.Fatalf("step %d produced non-finite state", i)
		}
	}
	relErr := math.Abs((energyOf(cur) - e0) / e0)
	if relErr > 1e-6 {
		t.Errorf("relative energy error %v too large after t=%v", relErr, cur.T)
	}
}

func TestIAS15AdvancesTimeMonotonically(t *testing.T) {
	b := circularBinary(t)
	s, err := New(IAS15, Options{G: testG, Tolerance: 1e-10, ExpectedTimeScale: 1.0, MaxIteration: 50})
	if err != nil {
		t.Fatal(err)
	}
	cur := b
	for i := 0; i < 10; i++ {
		res, err := s.Step(cur)
		if err != nil {
			t.Fatal(err)
		}
		if res.Next.T <= cur.T {
			t.Fatalf("step %d: time did not advance: %v -> %v", i, cur.T, res.Next.T)
		}
		cur = res.Next
	}
}
