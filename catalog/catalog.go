// Package catalog implements §4.H's named preset systems plus the
// `custom` slot, and (in customio.go) the §6 custom-system persistence
// format.
package catalog

import (
	"github.com/alvinng4/gravsim/gravsimerr"
	"github.com/alvinng4/gravsim/nbstate"
)

// G is the gravitational constant in AU^3 * Msun^-1 * day^-2 that every
// preset's masses and velocities are expressed against (§3's constants,
// matching the classical Gaussian gravitational constant k^2).
const G = 0.00029591220828411

// Preset names §4.H defines.
const (
	CircularBinaryOrbit  = "circular_binary_orbit"
	EccentricBinaryOrbit = "eccentric_binary_orbit"
	Helix3D              = "3d_helix"
	SunEarthMoon         = "sun_earth_moon"
	SolarSystem          = "solar_system"
	SolarSystemPlus      = "solar_system_plus"
	Figure8              = "figure-8"
	Pyth3Body            = "pyth-3-body"
	Custom               = "custom"
)

// Names lists every preset in a stable, documented order (used by
// `gravsim catalog list`).
func Names() []string {
	return []string{
		CircularBinaryOrbit, EccentricBinaryOrbit, Helix3D,
		SunEarthMoon, SolarSystem, SolarSystemPlus,
		Figure8, Pyth3Body,
	}
}

type builder func() (m, x, v []float64)

var presets = map[string]builder{
	CircularBinaryOrbit:  circularBinaryOrbit,
	EccentricBinaryOrbit: eccentricBinaryOrbit,
	Helix3D:              helix3D,
	SunEarthMoon:         sunEarthMoon,
	SolarSystem:          solarSystem,
	SolarSystemPlus:      solarSystemPlus,
	Figure8:              figure8,
	Pyth3Body:            pyth3Body,
}

// Load constructs the named preset's initial Bodies, barycenter-centered
// (§4.H: "barycenter subtracted after composition").
func Load(name string) (nbstate.Bodies, error) {
	build, ok := presets[name]
	if !ok {
		return nbstate.Bodies{}, gravsimerr.Newf("catalog.Load", gravsimerr.InvalidInput, "unknown system %q", name)
	}
	m, x, v := build()
	b, err := nbstate.NewBodies(m, x, v, 0)
	if err != nil {
		return nbstate.Bodies{}, err
	}
	b.SubtractBarycenter()
	return b, nil
}

func circularBinaryOrbit() (m, x, v []float64) {
	mu := 1 / G
	return []float64{mu, mu},
		[]float64{1, 0, 0, -1, 0, 0},
		[]float64{0, 0.5, 0, 0, -0.5, 0}
}

func eccentricBinaryOrbit() (m, x, v []float64) {
	return []float64{1 / G, 0.8 / G},
		[]float64{1, 0, 0, -1.25, 0, 0},
		[]float64{0, 0.5, 0, 0, -0.625, 0}
}

// helix3D is a Lagrange equilateral-triangle three-body configuration in
// the xz-plane (equal masses, circumradius 1, the classical equal-mass
// circular solution's angular velocity ω = (G m / (√3 r³))^(1/2)) with a
// small symmetric out-of-plane velocity component added so the relative
// motion is genuinely three-dimensional rather than planar. The source
// text this was distilled from names exact literals that did not survive
// retrieval; this is a physically-derived stand-in satisfying the same
// stated shape (three equal masses, equilateral triangle, xz-plane,
// helical result) — see DESIGN.md.
func helix3D() (m, x, v []float64) {
	mu := 1 / G
	return []float64{mu, mu, mu},
		[]float64{
			1, 0, 0,
			-0.5, 0, 0.8660254,
			-0.5, 0, -0.8660254,
		},
		[]float64{
			0, 0, 0.759836,
			-0.657967, 0.065805, -0.379918,
			0.657967, -0.065805, -0.379918,
		}
}

// figure8 is the Chenciner-Montgomery figure-eight choreography, three
// equal unit masses (here scaled by 1/G, matching this catalog's mass
// convention) chasing one another along a single figure-eight curve.
func figure8() (m, x, v []float64) {
	mu := 1 / G
	return []float64{mu, mu, mu},
		[]float64{
			0.970043, -0.24308753, 0,
			-0.970043, 0.24308753, 0,
			0, 0, 0,
		},
		[]float64{
			0.466203685, 0.43236573, 0,
			0.466203685, 0.43236573, 0,
			-0.93240737, -0.86473146, 0,
		}
}

// pyth3Body is Burrau's problem: masses 3, 4, 5 (scaled by 1/G) released
// from rest at the vertices of a 3-4-5 right triangle.
func pyth3Body() (m, x, v []float64) {
	return []float64{3 / G, 4 / G, 5 / G},
		[]float64{
			1, 3, 0,
			-2, -1, 0,
			1, -1, 0,
		},
		[]float64{0, 0, 0, 0, 0, 0, 0, 0, 0}
}
