// Package integrate implements the three integrator families of §4.C-E
// behind one Stepper contract: fixed-step explicit schemes, embedded
// Runge-Kutta pairs with adaptive step control, and IAS15.
//
// The source tracks "which integrator is active" with a bag of booleans;
// here a single Scheme tag dispatches to one concrete Stepper
// constructed once per run by New, per the REDESIGN FLAGS.
package integrate

import (
	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
)

// Scheme tags the nine supported integration methods.
type Scheme int

const (
	Euler Scheme = iota
	EulerCromer
	RK4
	Leapfrog
	RKF45
	DOPRI54
	DVERK65
	RKF78
	IAS15
)

func (s Scheme) String() string {
	switch s {
	case Euler:
		return "euler"
	case EulerCromer:
		return "euler_cromer"
	case RK4:
		return "rk4"
	case Leapfrog:
		return "leapfrog"
	case RKF45:
		return "rkf45"
	case DOPRI54:
		return "dopri"
	case DVERK65:
		return "dverk"
	case RKF78:
		return "rkf78"
	case IAS15:
		return "ias15"
	default:
		return "unknown"
	}
}

// ParseScheme maps the external request-record integrator name (§6) to a
// Scheme, failing with InvalidInput on unknown names.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range []Scheme{Euler, EulerCromer, RK4, Leapfrog, RKF45, DOPRI54, DVERK65, RKF78, IAS15} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, gravsimerr.Newf("integrate.ParseScheme", gravsimerr.InvalidInput, "unknown integrator %q", name)
}

// IsFixedStep reports whether s belongs to the fixed-step family (§4.C).
func (s Scheme) IsFixedStep() bool {
	switch s {
	case Euler, EulerCromer, RK4, Leapfrog:
		return true
	default:
		return false
	}
}

// IsEmbedded reports whether s is an embedded RK pair (§4.D).
func (s Scheme) IsEmbedded() bool {
	switch s {
	case RKF45, DOPRI54, DVERK65, RKF78:
		return true
	default:
		return false
	}
}

// Options carries the parameters a Scheme needs; which fields are
// required depends on the scheme's family (§6's Simulation-request
// record: dt for fixed-step, Tolerance for adaptive).
type Options struct {
	G                 float64
	Dt                float64 // fixed-step only
	Tolerance         float64 // adaptive only: used as both absolute and relative tolerance
	ExpectedTimeScale float64 // adaptive only: sets the step floor and dt-clamp scale (§3 invariant 4)
	MinIteration      int     // embedded-RK inner loop bound (§4.D)
	MaxIteration      int     // embedded-RK inner loop bound, IAS15 step-floor retry bound (§7.4)
}

// DefaultOptions fills in the literal defaults the spec's §4.D/E
// algorithms assume when the caller leaves them at zero.
func DefaultOptions(g float64) Options {
	return Options{
		G:                 g,
		ExpectedTimeScale: 365.25, // one year in days: the scale the source's presets are tuned against
		MinIteration:      1,
		MaxIteration:      1_000_000,
	}
}

// Stepper advances one accepted (or, for StepFloor, force-accepted) step.
// Fixed-step Steppers always report Accepted=true (no retry, §4.C
// failure semantics) and leave NewDt equal to the Dt they were given.
type Stepper interface {
	Step(b nbstate.Bodies) (StepResult, error)
	Scheme() Scheme
}

// StepResult reports the outcome of one Stepper.Step call.
type StepResult struct {
	Accepted bool
	Next     nbstate.Bodies
	NewDt    float64
	Warning  *gravsimerr.Error // non-nil iff StepFloor force-accept occurred
}

// New constructs the Stepper for scheme. It allocates no stage scratch:
// the fixed-step, embedded and IAS15 Steppers allocate their stage and
// work arrays afresh on every step attempt.
func New(scheme Scheme, opts Options) (Stepper, error) {
	if opts.G <= 0 {
		return nil, gravsimerr.Newf("integrate.New", gravsimerr.InvalidInput, "G must be > 0")
	}
	switch {
	case scheme.IsFixedStep():
		if opts.Dt <= 0 {
			return nil, gravsimerr.Newf("integrate.New", gravsimerr.InvalidInput, "dt must be > 0 for fixed-step scheme %s", scheme)
		}
		return newFixedStepper(scheme, opts)
	case scheme.IsEmbedded():
		if opts.Tolerance <= 0 {
			return nil, gravsimerr.Newf("integrate.New", gravsimerr.InvalidInput, "tolerance must be > 0 for adaptive scheme %s", scheme)
		}
		return newEmbeddedStepper(scheme, opts)
	case scheme == IAS15:
		if opts.Tolerance <= 0 {
			return nil, gravsimerr.Newf("integrate.New", gravsimerr.InvalidInput, "tolerance must be > 0 for IAS15")
		}
		return newIAS15Stepper(opts), nil
	default:
		return nil, gravsimerr.Newf("integrate.New", gravsimerr.InvalidInput, "unknown scheme %v", scheme)
	}
}
