package integrate

import (
	"math"
	"testing"

	"github.com/alvinng4/gravsim/nbstate"
)

// TestRunToCompletionLandsExactlyOnTfForFixedStep is §8 property 8
// (sol_time[-1] = t_final) for a tf that is not an exact multiple of dt:
// the fixed-step family must take one final short step rather than
// overshooting by up to a full dt (§4.C).
func TestRunToCompletionLandsExactlyOnTfForFixedStep(t *testing.T) {
	const dt = 0.03
	const tf = 1.0 // tf/dt = 33.33..., not an integer

	for _, scheme := range []Scheme{Euler, EulerCromer, RK4, Leapfrog} {
		b := circularBinary(t)
		s, err := New(scheme, Options{G: testG, Dt: dt})
		if err != nil {
			t.Fatal(err)
		}
		rec, err := nbstate.NewRecorder(1)
		if err != nil {
			t.Fatal(err)
		}
		result, err := RunToCompletion(s, b, tf, rec, nil, nil)
		if err != nil {
			t.Fatalf("%v: %v", scheme, err)
		}
		if result.Final.T != tf {
			t.Errorf("%v: final T = %v, want exactly %v", scheme, result.Final.T, tf)
		}
		frames := rec.Frames()
		last := frames[len(frames)-1]
		if last.T != tf {
			t.Errorf("%v: last recorded frame T = %v, want exactly %v", scheme, last.T, tf)
		}
	}
}

// TestRunToCompletionClipsOnlyTheFinalStep checks that clipping the last
// step doesn't also shrink every step before it: dt stays constant until
// the remainder is smaller than a full step.
func TestRunToCompletionClipsOnlyTheFinalStep(t *testing.T) {
	const dt = 0.03
	const tf = 1.0

	b := circularBinary(t)
	s, err := New(Euler, Options{G: testG, Dt: dt})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := nbstate.NewRecorder(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RunToCompletion(s, b, tf, rec, nil, nil); err != nil {
		t.Fatal(err)
	}
	frames := rec.Frames()
	// frames[0] is the initial sample at t=0; every full step until the
	// last should advance by exactly dt.
	nFull := int(tf / dt)
	for i := 1; i < nFull; i++ {
		got := frames[i].T - frames[i-1].T
		if math.Abs(got-dt) > 1e-12 {
			t.Errorf("step %d: advanced by %v, want %v", i, got, dt)
		}
	}
	finalStep := frames[len(frames)-1].T - frames[len(frames)-2].T
	if finalStep >= dt {
		t.Errorf("final step = %v, want shorter than dt=%v", finalStep, dt)
	}
}

func TestRunToCompletionRejectsNegativeTf(t *testing.T) {
	b := circularBinary(t)
	s, err := New(Euler, Options{G: testG, Dt: 0.01})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := nbstate.NewRecorder(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RunToCompletion(s, b, -1, rec, nil, nil); err == nil {
		t.Fatal("expected an error for tf < 0")
	}
}
