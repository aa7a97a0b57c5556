package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alvinng4/gravsim/gravsimerr"
)

// CustomSystem is one named row of the §6 custom-system persistence
// format: name,N,m[1..N],x[1..3N],v[1..3N].
type CustomSystem struct {
	Name string
	M    []float64
	X    []float64
	V    []float64
}

// ReadCustom parses every line of r as a CustomSystem, rejecting
// malformed rows with gravsimerr.InvalidInput rather than silently
// tolerating a field-count mismatch: the source's tolerance of short
// rows is a bug, not a feature, per §9's design note, so this
// implementation resolves that open question toward strict rejection.
func ReadCustom(r io.Reader) ([]CustomSystem, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	seen := make(map[string]bool)
	var out []CustomSystem
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sys, err := parseCustomLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		if seen[sys.Name] {
			return nil, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput, "line %d: duplicate system name %q", lineNo, sys.Name)
		}
		seen[sys.Name] = true
		out = append(out, sys)
	}
	if err := scanner.Err(); err != nil {
		return nil, gravsimerr.New("catalog.ReadCustom", gravsimerr.IOFailure, err)
	}
	return out, nil
}

func parseCustomLine(line string, lineNo int) (CustomSystem, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return CustomSystem{}, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput, "line %d: expected at least name,N", lineNo)
	}
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return CustomSystem{}, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput, "line %d: system name must not be empty", lineNo)
	}
	n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || n <= 0 {
		return CustomSystem{}, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput, "line %d: invalid N %q", lineNo, fields[1])
	}
	want := 2 + n + 3*n + 3*n
	if len(fields) != want {
		return CustomSystem{}, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput,
			"line %d: system %q declares N=%d, needs %d fields, got %d", lineNo, name, n, want, len(fields))
	}

	nums := make([]float64, 0, n+6*n)
	for i := 2; i < len(fields); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return CustomSystem{}, gravsimerr.Newf("catalog.ReadCustom", gravsimerr.InvalidInput, "line %d: field %d is not a number: %q", lineNo, i, fields[i])
		}
		nums = append(nums, v)
	}
	return CustomSystem{
		Name: name,
		M:    append([]float64(nil), nums[:n]...),
		X:    append([]float64(nil), nums[n:n+3*n]...),
		V:    append([]float64(nil), nums[n+3*n:]...),
	}, nil
}

// WriteCustom serializes systems in the §6 persistence format, one line
// per system.
func WriteCustom(w io.Writer, systems []CustomSystem) error {
	bw := bufio.NewWriter(w)
	for _, s := range systems {
		n := len(s.M)
		if len(s.X) != 3*n || len(s.V) != 3*n {
			return gravsimerr.Newf("catalog.WriteCustom", gravsimerr.InvalidInput,
				"system %q: M has %d entries but X/V have %d/%d, want %d each", s.Name, n, len(s.X), len(s.V), 3*n)
		}
		fmt.Fprintf(bw, "%s,%d", s.Name, n)
		for _, v := range s.M {
			fmt.Fprintf(bw, ",%g", v)
		}
		for _, v := range s.X {
			fmt.Fprintf(bw, ",%g", v)
		}
		for _, v := range s.V {
			fmt.Fprintf(bw, ",%g", v)
		}
		fmt.Fprint(bw, "\n")
	}
	if err := bw.Flush(); err != nil {
		return gravsimerr.New("catalog.WriteCustom", gravsimerr.IOFailure, err)
	}
	return nil
}
