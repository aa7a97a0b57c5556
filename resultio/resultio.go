// Package resultio implements §6's on-disk result file format: a
// `#`-prefixed metadata header followed by one data line per recorded
// trajectory sample.
package resultio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
)

// Meta carries the header fields §6 lists: save date, system name,
// integrator, N, tf (days), dt, tolerance, data size, store_every_n, run
// time (seconds), and the mass vector.
type Meta struct {
	SaveDate    string
	System      string
	Integrator  string
	N           int
	TfDays      float64
	Dt          float64
	Tolerance   float64
	DataSize    int
	StoreEveryN int
	RunTimeSec  float64
	Masses      []float64
}

var metaKeys = []string{
	"save_date", "system", "integrator", "n", "tf_days", "dt",
	"tolerance", "data_size", "store_every_n", "run_time_seconds", "masses",
}

// Write serializes meta, frames and energy (one value per frame, §6:
// "when energy has not been computed, the E column is zero") to w. It
// never mutates its inputs.
func Write(w io.Writer, meta Meta, frames []nbstate.Frame, energy []float64) error {
	if len(energy) != 0 && len(energy) != len(frames) {
		return gravsimerr.Newf("resultio.Write", gravsimerr.InvalidInput,
			"energy has %d entries, frames has %d", len(energy), len(frames))
	}
	bw := bufio.NewWriter(w)

	masses := make([]string, len(meta.Masses))
	for i, m := range meta.Masses {
		masses[i] = strconv.FormatFloat(m, 'g', -1, 64)
	}
	fmt.Fprintf(bw, "# save_date: %s\n", meta.SaveDate)
	fmt.Fprintf(bw, "# system: %s\n", meta.System)
	fmt.Fprintf(bw, "# integrator: %s\n", meta.Integrator)
	fmt.Fprintf(bw, "# n: %d\n", meta.N)
	fmt.Fprintf(bw, "# tf_days: %s\n", strconv.FormatFloat(meta.TfDays, 'g', -1, 64))
	fmt.Fprintf(bw, "# dt: %s\n", strconv.FormatFloat(meta.Dt, 'g', -1, 64))
	fmt.Fprintf(bw, "# tolerance: %s\n", strconv.FormatFloat(meta.Tolerance, 'g', -1, 64))
	fmt.Fprintf(bw, "# data_size: %d\n", meta.DataSize)
	fmt.Fprintf(bw, "# store_every_n: %d\n", meta.StoreEveryN)
	fmt.Fprintf(bw, "# run_time_seconds: %s\n", strconv.FormatFloat(meta.RunTimeSec, 'g', -1, 64))
	fmt.Fprintf(bw, "# masses: %s\n", strings.Join(masses, " "))

	for k, f := range frames {
		e := 0.0
		if len(energy) != 0 {
			e = energy[k]
		}
		fmt.Fprintf(bw, "%s,%s,%s", fmtFloat(f.T), fmtFloat(f.Dt), fmtFloat(e))
		for _, v := range f.State {
			fmt.Fprintf(bw, ",%s", fmtFloat(v))
		}
		fmt.Fprint(bw, "\n")
	}
	if err := bw.Flush(); err != nil {
		return gravsimerr.New("resultio.Write", gravsimerr.IOFailure, err)
	}
	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Read parses the §6 result file format back into Meta, frames, and the
// per-frame energy series.
func Read(r io.Reader) (Meta, []nbstate.Frame, []float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	meta := Meta{}
	seen := make(map[string]bool)
	var frames []nbstate.Frame
	var energy []float64

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			if err := parseMetaLine(line, &meta, seen); err != nil {
				return Meta{}, nil, nil, err
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		f, e, err := parseDataLine(line, meta.N)
		if err != nil {
			return Meta{}, nil, nil, err
		}
		frames = append(frames, f)
		energy = append(energy, e)
	}
	if err := scanner.Err(); err != nil {
		return Meta{}, nil, nil, gravsimerr.New("resultio.Read", gravsimerr.IOFailure, err)
	}
	for _, k := range metaKeys {
		if !seen[k] {
			return Meta{}, nil, nil, gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "missing metadata field %q", k)
		}
	}
	return meta, frames, energy, nil
}

func parseMetaLine(line string, meta *Meta, seen map[string]bool) error {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	key, val, ok := strings.Cut(body, ":")
	if !ok {
		return gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "malformed header line %q", line)
	}
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)
	var err error
	switch key {
	case "save_date":
		meta.SaveDate = val
	case "system":
		meta.System = val
	case "integrator":
		meta.Integrator = val
	case "n":
		meta.N, err = strconv.Atoi(val)
	case "tf_days":
		meta.TfDays, err = strconv.ParseFloat(val, 64)
	case "dt":
		meta.Dt, err = strconv.ParseFloat(val, 64)
	case "tolerance":
		meta.Tolerance, err = strconv.ParseFloat(val, 64)
	case "data_size":
		meta.DataSize, err = strconv.Atoi(val)
	case "store_every_n":
		meta.StoreEveryN, err = strconv.Atoi(val)
	case "run_time_seconds":
		meta.RunTimeSec, err = strconv.ParseFloat(val, 64)
	case "masses":
		if val != "" {
			for _, f := range strings.Fields(val) {
				m, e := strconv.ParseFloat(f, 64)
				if e != nil {
					return gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "invalid mass %q", f)
				}
				meta.Masses = append(meta.Masses, m)
			}
		}
	default:
		return gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "unknown metadata field %q", key)
	}
	if err != nil {
		return gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "invalid value for %q: %q", key, val)
	}
	seen[key] = true
	return nil
}

func parseDataLine(line string, n int) (nbstate.Frame, float64, error) {
	fields := strings.Split(line, ",")
	want := 3 + 6*n
	if len(fields) != want {
		return nbstate.Frame{}, 0, gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput,
			"data line has %d fields, want %d for N=%d", len(fields), want, n)
	}
	nums := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nbstate.Frame{}, 0, gravsimerr.Newf("resultio.Read", gravsimerr.InvalidInput, "field %d is not a number: %q", i, s)
		}
		nums[i] = v
	}
	return nbstate.Frame{T: nums[0], Dt: nums[1], State: append([]float64(nil), nums[3:]...)}, nums[2], nil
}
