// Package accel computes pairwise Newtonian gravitational acceleration,
// the one kernel every integrator family shares (§4.A).
package accel

import (
	"math"

	"github.com/alvinng4/gravsim/gravsimerr"
	"gonum.org/v1/gonum/mat"
)

// Acceleration returns a such that
//
//	a_i = G * sum_{j != i} m_j (x_j - x_i) / ||x_j - x_i||^3
//
// x is N×3; the result is N×3. Each unordered pair is evaluated once and
// the force is accumulated with opposite sign onto i and j (Newton's
// third law), per §4.A. No softening is applied: a coincident pair
// produces a division by zero, surfaced here as gravsimerr.Coincidence
// (naming the pair) rather than silently propagated; any other
// non-finite component is surfaced as gravsimerr.NonFinite.
func Acceleration(m []float64, x *mat.Dense, g float64) (*mat.Dense, error) {
	n := len(m)
	r, c := x.Dims()
	if r != n || c != 3 {
		return nil, gravsimerr.Newf("accel.Acceleration", gravsimerr.InvalidInput,
			"expected positions shaped (%d,3), got (%d,%d)", n, r, c)
	}
	a := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d [3]float64
			dist2 := 0.0
			for k := 0; k < 3; k++ {
				d[k] = x.At(j, k) - x.At(i, k)
				dist2 += d[k] * d[k]
			}
			invDist3 := 1.0 / (dist2 * math.Sqrt(dist2))
			if math.IsNaN(invDist3) || math.IsInf(invDist3, 0) {
				return nil, gravsimerr.Newf("accel.Acceleration", gravsimerr.Coincidence,
					"bodies %d and %d are coincident or nearly so", i, j)
			}
			fi := g * m[j] * invDist3
			fj := g * m[i] * invDist3
			for k := 0; k < 3; k++ {
				a.Set(i, k, a.At(i, k)+fi*d[k])
				a.Set(j, k, a.At(j, k)-fj*d[k])
			}
		}
	}
	if hasNonFinite(a) {
		return nil, gravsimerr.Newf("accel.Acceleration", gravsimerr.NonFinite, "non-finite acceleration component")
	}
	return a, nil
}

func hasNonFinite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}
	return false
}

// Flat is a convenience wrapper around Acceleration for callers that carry
// positions as a flattened 3N slice (the integrator inner loops do, to
// avoid per-stage mat.Dense allocation).
func Flat(m []float64, x []float64, g float64) ([]float64, error) {
	n := len(m)
	xm := mat.NewDense(n, 3, x)
	a, err := Acceleration(m, xm, g)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			out[3*i+k] = a.At(i, k)
		}
	}
	return out, nil
}
