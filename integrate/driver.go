package integrate

import (
	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
	"github.com/alvinng4/gravsim/progress"
)

// Result summarizes one RunToCompletion call.
type Result struct {
	Final     nbstate.Bodies
	Steps     int
	Cancelled bool
	Warnings  []*gravsimerr.Error
}

// progressGranularity is the number of (step, total) ticks RunToCompletion
// reports over a full run, expressed as fractional completion rather than
// step count, since fixed-step and adaptive schemes advance at unrelated
// granularities.
const progressGranularity = 1000

// fixedStepClipper is implemented by fixed-step Steppers so
// RunToCompletion can shorten the final step to land exactly on tf
// (§4.C), rather than overshooting by up to one full dt. Embedded and
// IAS15 Steppers choose their own step size and do not implement this;
// clipping only applies to the fixed-step family.
type fixedStepClipper interface {
	stepSize() float64
	clipStep(dt float64)
}

// RunToCompletion is the outer driver: it owns the `for t < tf` loop,
// polls cancel between steps (§5, §7.6), appends accepted steps to rec,
// and reports fractional progress to prog. It is the one place that
// decides when a Scheme-specific Stepper has made the run's currency: the
// Stepper itself knows nothing about tf, recording, or cancellation.
func RunToCompletion(stepper Stepper, b nbstate.Bodies, tf float64, rec *nbstate.Recorder, cancel <-chan struct{}, prog progress.Sink) (Result, error) {
	if tf < 0 {
		return Result{}, gravsimerr.Newf("integrate.RunToCompletion", gravsimerr.InvalidInput, "tf must be >= 0, got %v", tf)
	}
	if prog == nil {
		prog = progress.Noop{}
	}

	cur := b
	if err := rec.Append(nbstate.Frame{T: cur.T, Dt: cur.Dt, State: cur.Flatten()}); err != nil {
		return Result{}, err
	}

	report := func() {
		if tf <= 0 {
			prog.Report(progressGranularity, progressGranularity)
			return
		}
		done := int(cur.T / tf * progressGranularity)
		if done > progressGranularity {
			done = progressGranularity
		}
		prog.Report(done, progressGranularity)
	}

	var steps int
	var warnings []*gravsimerr.Error
	for cur.T < tf {
		select {
		case <-cancel:
			_ = rec.EnsureTerminal(nbstate.Frame{T: cur.T, Dt: cur.Dt, State: cur.Flatten()})
			return Result{Final: cur, Steps: steps, Cancelled: true, Warnings: warnings},
				gravsimerr.New("integrate.RunToCompletion", gravsimerr.Cancelled, nil)
		default:
		}

		if clipper, ok := stepper.(fixedStepClipper); ok {
			if remaining := tf - cur.T; remaining > 0 && remaining < clipper.stepSize() {
				clipper.clipStep(remaining)
			}
		}

		res, err := stepper.Step(cur)
		if err != nil {
			_ = rec.EnsureTerminal(nbstate.Frame{T: cur.T, Dt: cur.Dt, State: cur.Flatten()})
			return Result{Final: cur, Steps: steps, Warnings: warnings}, err
		}
		cur = res.Next
		steps++
		if res.Warning != nil {
			warnings = append(warnings, res.Warning)
		}
		if err := rec.Observe(nbstate.Frame{T: cur.T, Dt: cur.Dt, State: cur.Flatten()}); err != nil {
			return Result{Final: cur, Steps: steps, Warnings: warnings}, err
		}
		report()
	}

	if err := rec.EnsureTerminal(nbstate.Frame{T: cur.T, Dt: cur.Dt, State: cur.Flatten()}); err != nil {
		return Result{}, err
	}
	prog.Report(progressGranularity, progressGranularity)
	return Result{Final: cur, Steps: steps, Warnings: warnings}, nil
}
