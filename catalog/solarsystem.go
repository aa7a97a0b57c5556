package catalog

import "math"

// planetaryBody is a GM-ratio/semi-major-axis pair used to place a body
// on a circular heliocentric orbit at t=0. The retrieved source material
// for this spec did not carry the JPL DE440 state vectors §4.H refers
// to; in their absence this catalog places each body on a coplanar
// circular orbit at its mean heliocentric distance, using the same `G`
// every other preset shares, which reproduces the right orbital periods
// and speeds (Earth's comes out to 0.0172 AU/day, the familiar mean
// orbital speed) even though it drops real orbital eccentricity, phase,
// and mutual inclination. See DESIGN.md.
type planetaryBody struct {
	name    string
	gmRatio float64 // GM_body / GM_sun
	auDist  float64 // mean heliocentric distance, AU
}

var (
	mercury = planetaryBody{"mercury", 1.6601e-7, 0.38709893}
	venus   = planetaryBody{"venus", 2.4478383e-6, 0.72333199}
	earth   = planetaryBody{"earth", 3.003489e-6, 1.00000011}
	mars    = planetaryBody{"mars", 3.227151e-7, 1.52366231}
	jupiter = planetaryBody{"jupiter", 9.547919e-4, 5.20336301}
	saturn  = planetaryBody{"saturn", 2.858859e-4, 9.53707032}
	uranus  = planetaryBody{"uranus", 4.36624e-5, 19.19126393}
	neptune = planetaryBody{"neptune", 5.15140e-5, 30.06896348}
	pluto   = planetaryBody{"pluto", 6.57e-9, 39.48168677}
	eris    = planetaryBody{"eris", 8.35e-9, 67.78}

	moonGMRatio  = 3.69464e-8
	moonAUFromEarth = 0.00257

	sunGM = 1.0
)

// circularPlacement returns the (x, v) pair for a body at distance au
// around a central mass centralGM, placed on the +x axis moving in +y.
func circularPlacement(centralGM, au float64) ([3]float64, [3]float64) {
	v := math.Sqrt(G * centralGM / au)
	return [3]float64{au, 0, 0}, [3]float64{0, v, 0}
}

// appendHeliocentric appends a body's mass (in solar masses, per §3's
// "GM values scaled by GM☉") and its circular heliocentric state.
func appendHeliocentric(m, x, v *[]float64, b planetaryBody) {
	pos, vel := circularPlacement(sunGM, b.auDist)
	*m = append(*m, b.gmRatio)
	*x = append(*x, pos[0], pos[1], pos[2])
	*v = append(*v, vel[0], vel[1], vel[2])
}

func sunEarthMoon() (m, x, v []float64) {
	m = []float64{sunGM}
	x = []float64{0, 0, 0}
	v = []float64{0, 0, 0}
	appendHeliocentric(&m, &x, &v, earth)

	earthPos := [3]float64{x[3], x[4], x[5]}
	earthVel := [3]float64{v[3], v[4], v[5]}
	moonPos, moonVel := circularPlacement(earth.gmRatio, moonAUFromEarth)
	m = append(m, moonGMRatio)
	x = append(x, earthPos[0]+moonPos[0], earthPos[1]+moonPos[1], earthPos[2]+moonPos[2])
	v = append(v, earthVel[0]+moonVel[0], earthVel[1]+moonVel[1], earthVel[2]+moonVel[2])
	return m, x, v
}

func solarSystem() (m, x, v []float64) {
	m = []float64{sunGM}
	x = []float64{0, 0, 0}
	v = []float64{0, 0, 0}
	for _, p := range []planetaryBody{mercury, venus, earth, mars, jupiter, saturn, uranus, neptune} {
		appendHeliocentric(&m, &x, &v, p)
	}
	return m, x, v
}

func solarSystemPlus() (m, x, v []float64) {
	m, x, v = solarSystem()
	// Earth is body index 3 (sun, mercury, venus, earth): recover its
	// heliocentric state to place the moon relative to it.
	earthPos := [3]float64{x[9], x[10], x[11]}
	earthVel := [3]float64{v[9], v[10], v[11]}
	moonPos, moonVel := circularPlacement(earth.gmRatio, moonAUFromEarth)
	m = append(m, moonGMRatio)
	x = append(x, earthPos[0]+moonPos[0], earthPos[1]+moonPos[1], earthPos[2]+moonPos[2])
	v = append(v, earthVel[0]+moonVel[0], earthVel[1]+moonVel[1], earthVel[2]+moonVel[2])

	for _, p := range []planetaryBody{pluto, eris} {
		appendHeliocentric(&m, &x, &v, p)
	}
	return m, x, v
}
