package nbstate

import "github.com/alvinng4/gravsim/gravsimerr"

// chunkSize is the initial capacity of the trajectory buffer and the
// smallest capacity grow ever allocates; beyond it the capacity doubles.
const chunkSize = 50_000

// Frame is one recorded trajectory sample.
type Frame struct {
	T     float64
	Dt    float64
	State []float64 // flattened 6N state, see Bodies.Flatten
}

// Recorder accumulates accepted integrator steps, appending only every
// store_every_n-th step (plus, unconditionally, the first and last).
// Growth is amortized O(1): the backing slice doubles (bounded below by
// chunkSize) rather than being repeatedly reallocated one entry at a time.
type Recorder struct {
	frames      []Frame
	storeEveryN int
	stepIndex   int
	lastT       float64
	started     bool
}

// NewRecorder constructs a Recorder that keeps every storeEveryN-th
// accepted step.
func NewRecorder(storeEveryN int) (*Recorder, error) {
	if storeEveryN < 1 {
		return nil, gravsimerr.Newf("nbstate.NewRecorder", gravsimerr.InvalidInput, "store_every_n must be >= 1, got %d", storeEveryN)
	}
	return &Recorder{
		frames:      make([]Frame, 0, chunkSize),
		storeEveryN: storeEveryN,
	}, nil
}

// grow ensures room for one more frame, doubling the backing array (never
// below chunkSize) when full.
func (r *Recorder) grow() {
	if len(r.frames) < cap(r.frames) {
		return
	}
	newCap := cap(r.frames) * 2
	if newCap < chunkSize {
		newCap = chunkSize
	}
	next := make([]Frame, len(r.frames), newCap)
	copy(next, r.frames)
	r.frames = next
}

// Append records f unconditionally, without consulting the step-index
// decimation policy. Used for the mandatory first/last sample.
func (r *Recorder) Append(f Frame) error {
	if r.started && f.T < r.lastT {
		return gravsimerr.Newf("nbstate.Recorder.Append", gravsimerr.InvalidInput,
			"trajectory time must be non-decreasing: got %v after %v", f.T, r.lastT)
	}
	r.grow()
	r.frames = append(r.frames, f)
	r.lastT = f.T
	r.started = true
	return nil
}

// Observe is called once per accepted integrator step. It records the
// frame if the step index is a multiple of store_every_n, and always
// records the very first call (step index 0). The caller is responsible
// for additionally recording the terminal step through EnsureTerminal,
// which appends it only if it wasn't already recorded (see RunToCompletion).
func (r *Recorder) Observe(f Frame) error {
	record := r.stepIndex == 0 || r.stepIndex%r.storeEveryN == 0
	r.stepIndex++
	if !record {
		return nil
	}
	return r.Append(f)
}

// EnsureTerminal appends f unless the last recorded sample already has the
// same time, satisfying §4.F's "the last recorded sample must be the
// terminal (t, x, v) regardless of the store_every_n residue."
func (r *Recorder) EnsureTerminal(f Frame) error {
	if len(r.frames) > 0 && r.frames[len(r.frames)-1].T == f.T {
		return nil
	}
	return r.Append(f)
}

// Frames returns the compacted, read-only view of the recorded buffer.
// This is the "compaction step at termination" §9 calls for: the caller
// receives a tightly-sized copy rather than the over-allocated backing
// array.
func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Len reports the number of recorded frames so far.
func (r *Recorder) Len() int { return len(r.frames) }

// Trim keeps every divideFactor-th sample (by index into the recorded
// buffer) and forces the last entry to remain present, matching the
// source's trim semantics (§9 "Trim operation semantics") so saved files
// stay reproducible across re-trims.
func Trim(frames []Frame, divideFactor int) []Frame {
	if divideFactor < 1 {
		divideFactor = 1
	}
	if len(frames) == 0 {
		return nil
	}
	out := make([]Frame, 0, len(frames)/divideFactor+1)
	for i := 0; i < len(frames); i += divideFactor {
		out = append(out, frames[i])
	}
	last := frames[len(frames)-1]
	if len(out) == 0 || out[len(out)-1].T != last.T {
		out = append(out, last)
	}
	return out
}
