package integrate

import (
	"github.com/alvinng4/gravsim/accel"
	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
)

// fixedStepper implements the four fixed-step explicit schemes of §4.C.
// No retry: any non-finite acceleration is a fatal NonFinite error.
type fixedStepper struct {
	scheme Scheme
	g      float64
	dt     float64

	// leapfrog caches the end-of-step acceleration so the next step's
	// opening half-kick does not re-evaluate it (§4.C: "Requires one
	// acceleration per step in the unrolled form").
	haveCachedA bool
	cachedA     []float64
}

func newFixedStepper(scheme Scheme, opts Options) (Stepper, error) {
	return &fixedStepper{scheme: scheme, g: opts.G, dt: opts.Dt}, nil
}

func (f *fixedStepper) Scheme() Scheme { return f.scheme }

// stepSize reports the step fixedStepper's next Step call will take.
func (f *fixedStepper) stepSize() float64 { return f.dt }

// clipStep shortens the next (and every subsequent) Step call to dt,
// letting RunToCompletion land the run exactly on tf (§4.C: "then one
// final short step to land exactly on tf if needed") instead of
// overshooting by up to one full step.
func (f *fixedStepper) clipStep(dt float64) { f.dt = dt }

func (f *fixedStepper) Step(b nbstate.Bodies) (StepResult, error) {
	var next nbstate.Bodies
	var err error
	switch f.scheme {
	case Euler:
		next, err = f.stepEuler(b)
	case EulerCromer:
		next, err = f.stepEulerCromer(b)
	case RK4:
		next, err = f.stepRK4(b)
	case Leapfrog:
		next, err = f.stepLeapfrog(b)
	default:
		return StepResult{}, gravsimerr.Newf("integrate.fixedStepper.Step", gravsimerr.InvalidInput, "unsupported fixed-step scheme %v", f.scheme)
	}
	if err != nil {
		return StepResult{}, err
	}
	if next.HasNonFinite() {
		return StepResult{}, gravsimerr.New("integrate.fixedStepper.Step", gravsimerr.NonFinite, nil)
	}
	next.T = b.T + f.dt
	next.Dt = f.dt
	return StepResult{Accepted: true, Next: next, NewDt: f.dt}, nil
}

func (f *fixedStepper) stepEuler(b nbstate.Bodies) (nbstate.Bodies, error) {
	a, err := accel.Acceleration(b.M, b.X, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	next := b.Clone()
	addScaled(next.X, b.V, f.dt)
	addScaled(next.V, a, f.dt)
	return next, nil
}

func (f *fixedStepper) stepEulerCromer(b nbstate.Bodies) (nbstate.Bodies, error) {
	a, err := accel.Acceleration(b.M, b.X, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	next := b.Clone()
	addScaled(next.V, a, f.dt) // v <- v + h*a(x)
	addScaled(next.X, next.V, f.dt) // x <- x + h*v (the updated v: symplectic)
	return next, nil
}

// stepRK4 applies the classical four-stage explicit Runge-Kutta scheme to
// the coupled first-order system (xdot = v, vdot = a(x)), matching the
// teacher's unrolled-stage shape in algorithms.go's RK4Solver but over the
// flattened 6N N-body vector instead of a symbol-keyed state.
func (f *fixedStepper) stepRK4(b nbstate.Bodies) (nbstate.Bodies, error) {
	const overSix = 1.0 / 6.0
	h := f.dt
	n := b.N
	x0, v0 := flatten3(b.X), flatten3(b.V)

	a1, err := accel.Flat(b.M, x0, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	k1x, k1v := v0, a1

	x2 := addVec(x0, scaleVec(k1x, h/2))
	v2 := addVec(v0, scaleVec(k1v, h/2))
	a2, err := accel.Flat(b.M, x2, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	k2x, k2v := v2, a2

	x3 := addVec(x0, scaleVec(k2x, h/2))
	v3 := addVec(v0, scaleVec(k2v, h/2))
	a3, err := accel.Flat(b.M, x3, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	k3x, k3v := v3, a3

	x4 := addVec(x0, scaleVec(k3x, h))
	v4 := addVec(v0, scaleVec(k3v, h))
	a4, err := accel.Flat(b.M, x4, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	k4x, k4v := v4, a4

	xNext := make([]float64, 3*n)
	vNext := make([]float64, 3*n)
	for i := range xNext {
		xNext[i] = x0[i] + h*overSix*(k1x[i]+2*k2x[i]+2*k3x[i]+k4x[i])
		vNext[i] = v0[i] + h*overSix*(k1v[i]+2*k2v[i]+2*k3v[i]+k4v[i])
	}
	next := b.Clone()
	unflatten3(next.X, xNext)
	unflatten3(next.V, vNext)
	return next, nil
}

func (f *fixedStepper) stepLeapfrog(b nbstate.Bodies) (nbstate.Bodies, error) {
	h := f.dt
	var a0 []float64
	if f.haveCachedA {
		a0 = f.cachedA
	} else {
		var err error
		a0, err = accel.Flat(b.M, flatten3(b.X), f.g)
		if err != nil {
			return nbstate.Bodies{}, err
		}
	}
	n := b.N
	v0, x0 := flatten3(b.V), flatten3(b.X)
	vHalf := make([]float64, 3*n)
	for i := range vHalf {
		vHalf[i] = v0[i] + 0.5*h*a0[i]
	}
	xNext := make([]float64, 3*n)
	for i := range xNext {
		xNext[i] = x0[i] + h*vHalf[i]
	}
	aNext, err := accel.Flat(b.M, xNext, f.g)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	vNext := make([]float64, 3*n)
	for i := range vNext {
		vNext[i] = vHalf[i] + 0.5*h*aNext[i]
	}
	f.cachedA = aNext
	f.haveCachedA = true

	next := b.Clone()
	unflatten3(next.X, xNext)
	unflatten3(next.V, vNext)
	return next, nil
}
