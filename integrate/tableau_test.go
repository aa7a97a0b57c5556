package integrate

import (
	"math"
	"testing"
)

// TestTableauConsistency is property 6 of §8: for every embedded
// tableau, Σb = 1, Σb̂ = 1, and each stage's c-row sums to its node.
func TestTableauConsistency(t *testing.T) {
	const eps = 1e-9
	for _, tb := range []tableau{rkf45Tableau, dopri54Tableau, dverk65Tableau, rkf78Tableau} {
		var sumB, sumBhat float64
		for _, v := range tb.b {
			sumB += v
		}
		for _, v := range tb.bhat {
			sumBhat += v
		}
		if math.Abs(sumB-1) > eps {
			t.Errorf("%s: sum(b) = %v, want 1", tb.name, sumB)
		}
		if math.Abs(sumBhat-1) > eps {
			t.Errorf("%s: sum(bhat) = %v, want 1", tb.name, sumBhat)
		}
		for m := 1; m < tb.stages; m++ {
			row := tb.c[m-1]
			var sum float64
			for _, v := range row {
				sum += v
			}
			if math.Abs(sum-tb.nodes[m]) > eps {
				t.Errorf("%s: stage %d c-row sums to %v, want node %v", tb.name, m, sum, tb.nodes[m])
			}
		}
	}
}

func TestTableauForPanicsOnFixedScheme(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-embedded scheme")
		}
	}()
	tableauFor(Euler)
}
