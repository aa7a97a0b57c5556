package catalog

import (
	"math"
	"testing"
)

func TestLoadUnknownSystem(t *testing.T) {
	if _, err := Load("not-a-real-preset"); err == nil {
		t.Fatal("expected an error for an unknown preset name")
	}
}

func TestNamesCoversEveryPreset(t *testing.T) {
	names := Names()
	if len(names) != len(presets) {
		t.Fatalf("Names() lists %d presets, map has %d", len(names), len(presets))
	}
	for _, n := range names {
		if _, ok := presets[n]; !ok {
			t.Errorf("Names() lists %q, not present in presets map", n)
		}
	}
}

func TestEveryPresetLoadsAndIsBarycentered(t *testing.T) {
	for _, name := range Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			b, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", name, err)
			}
			if b.N < 2 {
				t.Fatalf("Load(%q) produced N=%d, want >= 2", name, b.N)
			}
			for i, mi := range b.M {
				if mi <= 0 {
					t.Errorf("Load(%q): body %d has non-positive mass %v", name, i, mi)
				}
			}

			var cx, cv [3]float64
			mtot := 0.0
			for i := 0; i < b.N; i++ {
				mtot += b.M[i]
				for k := 0; k < 3; k++ {
					cx[k] += b.M[i] * b.X.At(i, k)
					cv[k] += b.M[i] * b.V.At(i, k)
				}
			}
			for k := 0; k < 3; k++ {
				if math.Abs(cx[k]/mtot) > 1e-9 {
					t.Errorf("Load(%q): barycenter position[%d] = %v, want ~0", name, k, cx[k]/mtot)
				}
				if math.Abs(cv[k]/mtot) > 1e-9 {
					t.Errorf("Load(%q): barycenter velocity[%d] = %v, want ~0", name, k, cv[k]/mtot)
				}
			}
		})
	}
}

func TestSolarSystemPlusHasThreeMoreBodiesThanSolarSystem(t *testing.T) {
	a, err := Load(SolarSystem)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(SolarSystemPlus)
	if err != nil {
		t.Fatal(err)
	}
	if b.N != a.N+3 {
		t.Errorf("SolarSystemPlus has N=%d, SolarSystem has N=%d, want +3 (moon, pluto, eris)", b.N, a.N)
	}
}

func TestCustomNotInPresetsMap(t *testing.T) {
	if _, ok := presets[Custom]; ok {
		t.Error("Custom is a persistence-format slot, not a built-in preset builder")
	}
}
