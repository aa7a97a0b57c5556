package resultio

import (
	"strings"
	"testing"

	"github.com/alvinng4/gravsim/nbstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	meta := Meta{
		SaveDate:    "2026-08-01T00:00:00Z",
		System:      "circular_binary_orbit",
		Integrator:  "ias15",
		N:           2,
		TfDays:      365.25,
		Dt:          0,
		Tolerance:   1e-12,
		DataSize:    2,
		StoreEveryN: 1,
		RunTimeSec:  0.5,
		Masses:      []float64{3378.38, 3378.38},
	}
	frames := []nbstate.Frame{
		{T: 0, Dt: 0.01, State: []float64{1, 0, 0, -1, 0, 0, 0, 0.5, 0, 0, -0.5, 0}},
		{T: 10, Dt: 0.02, State: []float64{0.9, 0.1, 0, -0.9, -0.1, 0, -0.05, 0.49, 0, 0.05, -0.49, 0}},
	}
	energy := []float64{-1234.5, -1234.6}

	var buf strings.Builder
	require.NoError(t, Write(&buf, meta, frames, energy))

	gotMeta, gotFrames, gotEnergy, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, meta.System, gotMeta.System)
	assert.Equal(t, meta.Integrator, gotMeta.Integrator)
	assert.Equal(t, meta.N, gotMeta.N)
	require.Len(t, gotMeta.Masses, 2)
	assert.InDelta(t, meta.Masses[0], gotMeta.Masses[0], 1e-9)

	require.Len(t, gotFrames, 2)
	for i := range frames {
		assert.Equal(t, frames[i].T, gotFrames[i].T)
		assert.Equal(t, frames[i].Dt, gotFrames[i].Dt)
		require.Len(t, gotFrames[i].State, len(frames[i].State))
		for k := range frames[i].State {
			assert.InDelta(t, frames[i].State[k], gotFrames[i].State[k], 1e-12)
		}
	}
	for i := range energy {
		assert.InDelta(t, energy[i], gotEnergy[i], 1e-9)
	}
}

func TestWriteZerosEnergyWhenNotComputed(t *testing.T) {
	meta := Meta{System: "x", Integrator: "euler", N: 1, Masses: []float64{1}}
	frames := []nbstate.Frame{{T: 0, Dt: 1, State: []float64{0, 0, 0, 0, 0, 0}}}

	var buf strings.Builder
	require.NoError(t, Write(&buf, meta, frames, nil))

	_, _, energy, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, energy, 1)
	assert.Zero(t, energy[0])
}

func TestReadRejectsMissingMetadata(t *testing.T) {
	_, _, _, err := Read(strings.NewReader("# system: x\n"))
	assert.Error(t, err)
}

func TestReadRejectsDataLineFieldCountMismatch(t *testing.T) {
	in := "# save_date: x\n# system: x\n# integrator: x\n# n: 2\n# tf_days: 1\n# dt: 1\n" +
		"# tolerance: 1\n# data_size: 1\n# store_every_n: 1\n# run_time_seconds: 1\n# masses: 1 1\n" +
		"0,1,0,0,0,0\n" // too few fields for N=2
	_, _, _, err := Read(strings.NewReader(in))
	assert.Error(t, err)
}
