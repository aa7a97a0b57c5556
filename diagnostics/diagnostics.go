// Package diagnostics implements §4.G: total energy, total angular
// momentum, and the derived relative-energy-error series used by the
// testable properties of §8.
package diagnostics

import (
	"math"

	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
	"github.com/alvinng4/gravsim/progress"
	"gonum.org/v1/gonum/stat"
)

// Energy returns the total mechanical energy of b: kinetic plus
// gravitational potential. It returns gravsimerr.Coincidence if any pair
// of bodies shares the exact same position, mirroring accel's failure
// mode (callers that want the §4.G "NaN, not an error" degrade instead
// should use Series, which handles that case itself).
func Energy(b nbstate.Bodies, g float64) (float64, error) {
	var ke float64
	for i := 0; i < b.N; i++ {
		vx, vy, vz := b.V.At(i, 0), b.V.At(i, 1), b.V.At(i, 2)
		ke += 0.5 * b.M[i] * (vx*vx + vy*vy + vz*vz)
	}
	var pe float64
	for i := 0; i < b.N; i++ {
		for j := i + 1; j < b.N; j++ {
			dx := b.X.At(i, 0) - b.X.At(j, 0)
			dy := b.X.At(i, 1) - b.X.At(j, 1)
			dz := b.X.At(i, 2) - b.X.At(j, 2)
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r == 0 {
				return 0, gravsimerr.Newf("diagnostics.Energy", gravsimerr.Coincidence, "bodies %d and %d coincide", i, j)
			}
			pe -= g * b.M[i] * b.M[j] / r
		}
	}
	return ke + pe, nil
}

// AngularMomentum returns the scalar magnitude of the total angular
// momentum Σ mᵢ (xᵢ × vᵢ).
func AngularMomentum(b nbstate.Bodies) float64 {
	var lx, ly, lz float64
	for i := 0; i < b.N; i++ {
		x, y, z := b.X.At(i, 0), b.X.At(i, 1), b.X.At(i, 2)
		vx, vy, vz := b.V.At(i, 0), b.V.At(i, 1), b.V.At(i, 2)
		mi := b.M[i]
		lx += mi * (y*vz - z*vy)
		ly += mi * (z*vx - x*vz)
		lz += mi * (x*vy - y*vx)
	}
	return math.Sqrt(lx*lx + ly*ly + lz*lz)
}

// Series walks the recorded trajectory buffer, computing energy and
// angular momentum per sample and reporting progress periodically (§6).
// A sample whose pair distance is exactly zero gets energy = NaN rather
// than aborting the walk (§4.G): this is the one place Coincidence is
// deliberately not raised.
func Series(frames []nbstate.Frame, m []float64, g float64, prog progress.Sink) (energy, angMom []float64) {
	if prog == nil {
		prog = progress.Noop{}
	}
	energy = make([]float64, len(frames))
	angMom = make([]float64, len(frames))
	for k, f := range frames {
		b, err := nbstate.NewBodiesFromFlat(m, f.State, f.T)
		if err != nil {
			energy[k] = math.NaN()
			prog.Report(k+1, len(frames))
			continue
		}
		if e, err := Energy(b, g); err != nil {
			energy[k] = math.NaN()
		} else {
			energy[k] = e
		}
		angMom[k] = AngularMomentum(b)
		prog.Report(k+1, len(frames))
	}
	return energy, angMom
}

// RelativeEnergyError computes |(Ek-E0)/E0| for each sample.
func RelativeEnergyError(energy []float64) []float64 {
	if len(energy) == 0 {
		return nil
	}
	e0 := energy[0]
	out := make([]float64, len(energy))
	for k, e := range energy {
		out[k] = math.Abs((e - e0) / e0)
	}
	return out
}

// Summary reports the mean and variance of a relative-energy-error
// series, the one DOMAIN STACK addition beyond the spec's literal text:
// a coarse health signal a progress/report surface can show without
// re-walking the whole series.
type Summary struct {
	Mean     float64
	Variance float64
}

// SummarizeRelativeError computes Summary via gonum/stat.MeanVariance,
// skipping any NaN entries produced by a coincident sample.
func SummarizeRelativeError(relErr []float64) Summary {
	finite := make([]float64, 0, len(relErr))
	for _, v := range relErr {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return Summary{}
	}
	mean, variance := stat.MeanVariance(finite, nil)
	return Summary{Mean: mean, Variance: variance}
}
