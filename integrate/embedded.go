package integrate

import (
	"math"

	"github.com/alvinng4/gravsim/accel"
	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
)

// embeddedStepper drives one of the four embedded Runge-Kutta pairs with
// adaptive step control (§4.D). A single instance owns the adaptive dt
// across calls to Step, so the inner accept/reject loop picks up where
// the previous outer call left off.
type embeddedStepper struct {
	scheme Scheme
	tb     tableau
	g      float64
	tol    float64
	ets    float64 // expected_time_scale
	minIt  int
	maxIt  int

	dt      float64
	haveDt  bool
}

func newEmbeddedStepper(scheme Scheme, opts Options) (Stepper, error) {
	ets := opts.ExpectedTimeScale
	if ets <= 0 {
		ets = DefaultOptions(opts.G).ExpectedTimeScale
	}
	minIt := opts.MinIteration
	if minIt <= 0 {
		minIt = 1
	}
	maxIt := opts.MaxIteration
	if maxIt <= 0 {
		maxIt = 1_000_000
	}
	return &embeddedStepper{
		scheme: scheme,
		tb:     tableauFor(scheme),
		g:      opts.G,
		tol:    opts.Tolerance,
		ets:    ets,
		minIt:  minIt,
		maxIt:  maxIt,
	}, nil
}

func (e *embeddedStepper) Scheme() Scheme { return e.scheme }

// Step runs the bounded inner accept/reject loop of §4.D: it keeps
// attempting steps with the adaptive dt until at least minIt attempts
// have been made AND t has advanced by at least ets*1e-5, or until maxIt
// attempts have been made.
func (e *embeddedStepper) Step(b nbstate.Bodies) (StepResult, error) {
	if !e.haveDt {
		dt0, err := e.initialStep(b)
		if err != nil {
			return StepResult{}, err
		}
		e.dt = dt0
		e.haveDt = true
	}

	minAdvance := e.ets * 1e-5
	startT := b.T
	cur := b
	var warning *gravsimerr.Error

	for attempts := 0; ; {
		attempts++
		next, hNew, accepted, warn, err := e.tryStep(cur, e.dt)
		if err != nil {
			return StepResult{}, err
		}
		e.dt = hNew
		if accepted {
			cur = next
			if warn != nil {
				warning = warn
			}
		}
		advanced := cur.T - startT
		if (attempts >= e.minIt && advanced >= minAdvance) || attempts >= e.maxIt {
			break
		}
	}

	return StepResult{Accepted: true, Next: cur, NewDt: e.dt, Warning: warning}, nil
}

// tryStep performs one evaluate/advance/accept-or-reject/adjust cycle
// (§4.D steps 1-7) at step size h starting from cur. On rejection, next
// equals cur and the caller should retry at hNew.
func (e *embeddedStepper) tryStep(cur nbstate.Bodies, h float64) (next nbstate.Bodies, hNew float64, accepted bool, warning *gravsimerr.Error, err error) {
	n := cur.N
	s := e.tb.stages
	x0 := flatten3(cur.X)
	v0 := flatten3(cur.V)

	xk := make([][]float64, s)
	vk := make([][]float64, s)

	a0, ferr := accel.Flat(cur.M, x0, e.g)
	if ferr != nil {
		return nbstate.Bodies{}, 0, false, nil, ferr
	}
	vk[0] = a0
	xk[0] = v0

	for m := 1; m < s; m++ {
		row := e.tb.c[m-1]
		xsum := make([]float64, 3*n)
		vsum := make([]float64, 3*n)
		for j := 0; j < m; j++ {
			c := row[j]
			if c == 0 {
				continue
			}
			for i := 0; i < 3*n; i++ {
				xsum[i] += c * vk[j][i]
				vsum[i] += c * xk[j][i]
			}
		}
		xm := make([]float64, 3*n)
		xArg := make([]float64, 3*n)
		for i := 0; i < 3*n; i++ {
			xm[i] = v0[i] + h*xsum[i]
			xArg[i] = x0[i] + h*vsum[i]
		}
		am, aerr := accel.Flat(cur.M, xArg, e.g)
		if aerr != nil {
			return nbstate.Bodies{}, 0, false, nil, aerr
		}
		xk[m] = xm
		vk[m] = am
	}

	x1 := make([]float64, 3*n)
	v1 := make([]float64, 3*n)
	dx := make([]float64, 3*n)
	dv := make([]float64, 3*n)
	for m := 0; m < s; m++ {
		bw := e.tb.b[m]
		diff := bw - e.tb.bhat[m]
		if bw != 0 {
			for i := 0; i < 3*n; i++ {
				x1[i] += bw * xk[m][i]
				v1[i] += bw * vk[m][i]
			}
		}
		if diff != 0 {
			for i := 0; i < 3*n; i++ {
				dx[i] += diff * xk[m][i]
				dv[i] += diff * vk[m][i]
			}
		}
	}
	for i := 0; i < 3*n; i++ {
		x1[i] = x0[i] + h*x1[i]
		v1[i] = v0[i] + h*v1[i]
		dx[i] *= h
		dv[i] *= h
	}

	eps := e.tol
	var sumSq float64
	for i := 0; i < 3*n; i++ {
		sx := eps + eps*math.Max(math.Abs(x0[i]), math.Abs(x1[i]))
		sv := eps + eps*math.Max(math.Abs(v0[i]), math.Abs(v1[i]))
		sumSq += (dx[i] / sx) * (dx[i] / sx)
		sumSq += (dv[i] / sv) * (dv[i] / sv)
	}
	errNorm := math.Sqrt(sumSq / float64(6*n))

	floor := e.ets * 1e-12
	accepted = errNorm <= 1 || h <= floor

	if accepted {
		next = cur.Clone()
		unflatten3(next.X, x1)
		unflatten3(next.V, v1)
		next.T = cur.T + h
		next.Dt = h
		if next.HasNonFinite() {
			return nbstate.Bodies{}, 0, false, nil, gravsimerr.New("integrate.embeddedStepper.tryStep", gravsimerr.NonFinite, nil)
		}
		if errNorm > 1 && h <= floor {
			warning = gravsimerr.Newf("integrate.embeddedStepper.tryStep", gravsimerr.StepFloor,
				"%s force-accepted at step floor dt=%g with err=%g", e.scheme, h, errNorm)
		}
	} else {
		next = cur
	}

	pMin := float64(e.tb.pMin())
	safetyFac := math.Pow(0.38, 1/(1+pMin))
	var proposed float64
	if errNorm == 0 {
		proposed = h
	} else {
		proposed = h * safetyFac * math.Pow(errNorm, -1/(1+pMin))
	}
	switch {
	case proposed > h*6.0:
		hNew = h * 6.0
	case proposed < h*0.33:
		hNew = h * 0.33
	default:
		hNew = proposed
	}
	if hNew < floor {
		hNew = floor
	}
	return next, hNew, accepted, warning, nil
}

// initialStep implements the Hairer-Norsett-Wanner-style estimator of
// §4.D, including the documented 1e-3 empirical shrink for gravitational
// two-body systems.
func (e *embeddedStepper) initialStep(b nbstate.Bodies) (float64, error) {
	n := b.N
	n6 := float64(6 * n)
	eps := e.tol
	x0 := flatten3(b.X)
	v0 := flatten3(b.V)

	a0, err := accel.Flat(b.M, x0, e.g)
	if err != nil {
		return 0, err
	}

	sx := make([]float64, 3*n)
	sv := make([]float64, 3*n)
	for i := 0; i < 3*n; i++ {
		sx[i] = eps + eps*math.Abs(x0[i])
		sv[i] = eps + eps*math.Abs(v0[i])
	}

	var sum0, sum1 float64
	for i := 0; i < 3*n; i++ {
		sum0 += (x0[i] / sx[i]) * (x0[i] / sx[i])
		sum0 += (v0[i] / sv[i]) * (v0[i] / sv[i])
		sum1 += (v0[i] / sx[i]) * (v0[i] / sx[i])
		sum1 += (a0[i] / sv[i]) * (a0[i] / sv[i])
	}
	d0 := math.Sqrt(sum0) / math.Sqrt(n6)
	d1 := math.Sqrt(sum1) / math.Sqrt(n6)

	var dt0 float64
	if math.Min(d0, d1) < 1e-5 {
		dt0 = 1e-4
	} else {
		dt0 = d0 / d1
	}

	probe := dt0 / 100
	x1 := make([]float64, 3*n)
	v1 := make([]float64, 3*n)
	for i := 0; i < 3*n; i++ {
		x1[i] = x0[i] + probe*v0[i]
		v1[i] = v0[i] + probe*a0[i]
	}
	a1, err := accel.Flat(b.M, x1, e.g)
	if err != nil {
		return 0, err
	}

	var sum2 float64
	for i := 0; i < 3*n; i++ {
		dv := v1[i] - v0[i]
		da := a1[i] - a0[i]
		sum2 += (dv / sx[i]) * (dv / sx[i])
		sum2 += (da / sv[i]) * (da / sv[i])
	}
	d2 := math.Sqrt(sum2) / math.Sqrt(n6) / dt0

	var dt1 float64
	if math.Max(d1, d2) <= 1e-15 {
		dt1 = math.Max(1e-6, dt0*1e-3)
	} else {
		dt1 = math.Pow(0.01/math.Max(d1, d2), 1/(1+float64(e.tb.p)))
	}

	return 1e-3 * math.Min(100*dt0, dt1), nil
}
