package integrate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// addScaled adds scale*src elementwise into dst, in place: dst += scale*src.
func addScaled(dst, src *mat.Dense, scale float64) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, dst.At(i, j)+scale*src.At(i, j))
		}
	}
}

// flatten3 packs an N×3 matrix into a flat 3N slice, row-major.
func flatten3(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = m.At(i, j)
		}
	}
	return out
}

// unflatten3 overwrites dst (N×3) from a flat 3N slice, row-major.
func unflatten3(dst *mat.Dense, flat []float64) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, flat[i*c+j])
		}
	}
}

// addVec returns a+b using gonum/floats, matching the style the teacher's
// state/arithmetic.go uses floats for elementwise state operations.
func addVec(a, b []float64) []float64 {
	out := append([]float64(nil), a...)
	floats.Add(out, b)
	return out
}

// scaleVec returns s*v using gonum/floats.
func scaleVec(v []float64, s float64) []float64 {
	out := append([]float64(nil), v...)
	floats.Scale(s, out)
	return out
}
