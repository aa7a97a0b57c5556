// Package nbstate owns the N-body state container: the current
// (t, x, v, dt), the immutable mass vector, and the trajectory buffer the
// integrators append accepted steps to.
//
// Positions and velocities are stored as N×3 gonum matrices, the same
// concrete type the acceleration kernel and diagnostics operate on, rather
// than a generic symbol-keyed vector: the N-body problem has a fixed,
// known-at-construction layout and does not need the teacher's map-based
// state package to express it.
package nbstate

import (
	"math"

	"github.com/alvinng4/gravsim/gravsimerr"
	"gonum.org/v1/gonum/mat"
)

// Bodies holds the current simulation state for N point masses.
type Bodies struct {
	N    int
	M    []float64 // length N, immutable after NewBodies
	X, V *mat.Dense // N×3
	T    float64
	Dt   float64
}

// NewBodies validates and constructs a Bodies container. m has length N,
// x and v are flattened [x1,y1,z1,x2,...] and [v1,...] of length 3N.
func NewBodies(m []float64, x, v []float64, t0 float64) (Bodies, error) {
	n := len(m)
	if n <= 0 {
		return Bodies{}, gravsimerr.Newf("nbstate.NewBodies", gravsimerr.InvalidInput, "N must be >= 1, got %d", n)
	}
	if len(x) != 3*n || len(v) != 3*n {
		return Bodies{}, gravsimerr.Newf("nbstate.NewBodies", gravsimerr.InvalidInput,
			"expected %d position and velocity components for N=%d, got %d and %d", 3*n, n, len(x), len(v))
	}
	for i, mi := range m {
		if mi <= 0 {
			return Bodies{}, gravsimerr.Newf("nbstate.NewBodies", gravsimerr.InvalidInput, "mass of body %d must be > 0, got %v", i, mi)
		}
	}
	b := Bodies{
		N: n,
		M: append([]float64(nil), m...),
		X: mat.NewDense(n, 3, append([]float64(nil), x...)),
		V: mat.NewDense(n, 3, append([]float64(nil), v...)),
		T: t0,
	}
	if err := b.checkCoincidence("nbstate.NewBodies"); err != nil {
		return Bodies{}, err
	}
	return b, nil
}

// NewBodiesFromFlat reconstructs a Bodies from a recorded Frame's
// flattened 6N state (see Flatten), skipping the coincidence check:
// diagnostics over a recorded trajectory degrades a coincident sample to
// a NaN energy value (§4.G) rather than rejecting the whole walk.
func NewBodiesFromFlat(m []float64, flat []float64, t float64) (Bodies, error) {
	n := len(m)
	if n <= 0 {
		return Bodies{}, gravsimerr.Newf("nbstate.NewBodiesFromFlat", gravsimerr.InvalidInput, "N must be >= 1, got %d", n)
	}
	if len(flat) != 6*n {
		return Bodies{}, gravsimerr.Newf("nbstate.NewBodiesFromFlat", gravsimerr.InvalidInput,
			"expected flattened state of length %d for N=%d, got %d", 6*n, n, len(flat))
	}
	b := Bodies{
		N: n,
		M: append([]float64(nil), m...),
		X: mat.NewDense(n, 3, make([]float64, 3*n)),
		V: mat.NewDense(n, 3, make([]float64, 3*n)),
		T: t,
	}
	b.Unflatten(flat)
	return b, nil
}

// checkCoincidence reports gravsimerr.Coincidence if any two distinct
// bodies share the exact same position (invariant 5 of the data model).
func (b Bodies) checkCoincidence(op string) error {
	for i := 0; i < b.N; i++ {
		for j := i + 1; j < b.N; j++ {
			if b.X.At(i, 0) == b.X.At(j, 0) && b.X.At(i, 1) == b.X.At(j, 1) && b.X.At(i, 2) == b.X.At(j, 2) {
				return gravsimerr.Newf(op, gravsimerr.Coincidence, "bodies %d and %d coincide", i, j)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of b.
func (b Bodies) Clone() Bodies {
	x := mat.DenseCopyOf(b.X)
	v := mat.DenseCopyOf(b.V)
	return Bodies{N: b.N, M: append([]float64(nil), b.M...), X: x, V: v, T: b.T, Dt: b.Dt}
}

// SubtractBarycenter recenters positions and velocities onto the
// barycentric frame: sum(m*x) = 0 and sum(m*v) = 0, per invariant 6. It is
// applied once by the catalog at t=0 for preset systems.
func (b *Bodies) SubtractBarycenter() {
	mtot := 0.0
	var cx, cv [3]float64
	for i := 0; i < b.N; i++ {
		mi := b.M[i]
		mtot += mi
		for k := 0; k < 3; k++ {
			cx[k] += mi * b.X.At(i, k)
			cv[k] += mi * b.V.At(i, k)
		}
	}
	for k := 0; k < 3; k++ {
		cx[k] /= mtot
		cv[k] /= mtot
	}
	for i := 0; i < b.N; i++ {
		for k := 0; k < 3; k++ {
			b.X.Set(i, k, b.X.At(i, k)-cx[k])
			b.V.Set(i, k, b.V.At(i, k)-cv[k])
		}
	}
}

// Flatten packs the state into the 6N vector [x1..xN, v1..vN] the data
// model specifies for trajectory samples.
func (b Bodies) Flatten() []float64 {
	out := make([]float64, 6*b.N)
	for i := 0; i < b.N; i++ {
		for k := 0; k < 3; k++ {
			out[3*i+k] = b.X.At(i, k)
			out[3*b.N+3*i+k] = b.V.At(i, k)
		}
	}
	return out
}

// Unflatten overwrites b's X and V from a 6N state vector of the layout
// Flatten produces.
func (b *Bodies) Unflatten(state []float64) {
	for i := 0; i < b.N; i++ {
		for k := 0; k < 3; k++ {
			b.X.Set(i, k, state[3*i+k])
			b.V.Set(i, k, state[3*b.N+3*i+k])
		}
	}
}

// HasNonFinite reports whether any component of X or V is NaN or +-Inf.
func (b Bodies) HasNonFinite() bool {
	bad := func(m *mat.Dense) bool {
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
	return bad(b.X) || bad(b.V)
}
