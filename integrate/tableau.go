package integrate

// tableau is a literal embedded Runge-Kutta Butcher tableau: stage nodes,
// the stage coefficient matrix, and two weight vectors (the advance
// weights b of order p, and the companion weights bhat of order phat used
// only for local error estimation), per §4.D. Values are fixed rational
// constants converted to float64 at package init, never computed.
type tableau struct {
	name       string
	p, phat    int
	stages     int
	nodes      []float64   // length stages, node[0] == 0
	c          [][]float64 // c[m-1] has length m, for stage m = 1..stages-1
	b, bhat    []float64   // length stages each
}

// pMin is min(p, phat), used by the step-size safety factor (§4.D).
func (tb tableau) pMin() int {
	if tb.p < tb.phat {
		return tb.p
	}
	return tb.phat
}

// rkf45Tableau is Fehlberg's 4(5) pair (Table III, Fehlberg 1969),
// transcribed from the literal constants in the teacher repository's
// RKF45Solver (algorithms.go), which cites the same Wikipedia table.
var rkf45Tableau = tableau{
	name:   "rkf45",
	p:      5,
	phat:   4,
	stages: 6,
	nodes:  []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.},
	c: [][]float64{
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8., 3680. / 513., -845. / 4104.},
		{-8. / 27., 2., -3544. / 2565., 1859. / 4104., -11. / 40.},
	},
	b:    []float64{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
	bhat: []float64{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
}

// dopri54Tableau is the Dormand-Prince 5(4) pair, the default of MATLAB's
// ode45 and Simulink, transcribed from the literal constants in the
// teacher repository's DormandPrinceSolver.
var dopri54Tableau = tableau{
	name:   "dopri",
	p:      5,
	phat:   4,
	stages: 7,
	nodes:  []float64{0, 1. / 5., 3. / 10., 4. / 5., 8. / 9., 1., 1.},
	c: [][]float64{
		{1. / 5.},
		{3. / 40., 9. / 40.},
		{44. / 45., -56. / 15., 32. / 9.},
		{19372. / 6561., -25360. / 2187., 64448. / 6561., -212. / 729.},
		{9017. / 3168., -355. / 33., 46732. / 5247., 49. / 176., -5103. / 18656.},
		{35. / 384., 0, 500. / 1113., 125. / 192., -2187. / 6784., 11. / 84.},
	},
	b:    []float64{35. / 384., 0, 500. / 1113., 125. / 192., -2187. / 6784., 11. / 84., 0},
	bhat: []float64{5179. / 57600., 0, 7571. / 16695., 393. / 640., -92097. / 339200., 187. / 2100., 1. / 40.},
}

// dverk65Tableau is Verner's 1978 order 6(5) pair ("DVERK"), the classic
// ACM TOMS 87 Fortran subroutine's tableau.
var dverk65Tableau = tableau{
	name:   "dverk",
	p:      6,
	phat:   5,
	stages: 8,
	nodes:  []float64{0, 1. / 6., 4. / 15., 2. / 3., 5. / 6., 1., 1. / 15., 1.},
	c: [][]float64{
		{1. / 6.},
		{4. / 75., 16. / 75.},
		{5. / 6., -8. / 3., 5. / 2.},
		{-165. / 64., 55. / 6., -425. / 64., 85. / 96.},
		{12. / 5., -8., 4015. / 612., -11. / 36., 88. / 255.},
		{-8263. / 15000., 124. / 75., -643. / 680., -81. / 250., 2484. / 10625.},
		{3501. / 1720., -300. / 43., 297275. / 52632., -319. / 2322., 24068. / 84065., 0, 3850. / 26703.},
	},
	b:    []float64{3. / 40., 0, 875. / 2244., 23. / 72., 264. / 1955., 0, 125. / 11592., 43. / 616.},
	bhat: []float64{13. / 160., 0, 2375. / 5984., 5. / 16., 12. / 85., 3. / 44., 0, 0},
}

// rkf78Tableau is Fehlberg's 7(8) pair (Table X, "Classical Fifth, Sixth,
// Seventh and Eighth Order Runge-Kutta Formulas with Stepsize Control",
// Fehlberg 1968), transcribed from the teacher repository's RKF78Solver.
// The 7th-order companion weights exploit Fehlberg's construction, in
// which bhat differs from b only at four stage indices (0, 10, 11, 12) —
// the same shortcut the teacher's error formula uses, here expressed as
// an explicit weight vector so the shared embedded driver needs no
// special case.
var rkf78Tableau = tableau{
	name:   "rkf78",
	p:      8,
	phat:   7,
	stages: 13,
	nodes: []float64{0, 2. / 27., 1. / 9., 1. / 6., 5. / 12., 1. / 2., 5. / 6., 1. / 6.,
		2. / 3., 1. / 3., 1., 0, 1.},
	c: [][]float64{
		{2. / 27.},
		{1. / 36., 1. / 12.},
		{1. / 24., 0, 1. / 8.},
		{5. / 12., 0, -25. / 16., 25. / 16.},
		{1. / 20., 0, 0, 1. / 4., 1. / 5.},
		{-25. / 108., 0, 0, 125. / 108., -65. / 27., 125. / 54.},
		{31. / 300., 0, 0, 0, 61. / 225., -2. / 9., 13. / 900.},
		{2., 0, 0, -53. / 6., 704. / 45., -107. / 9., 67. / 90., 3.},
		{-91. / 108., 0, 0, 23. / 108., -976. / 135., 311. / 54., -19. / 60., 17. / 6., -1. / 12.},
		{2383. / 4100., 0, 0, -341. / 164., 4496. / 1025., -301. / 82., 2133. / 4100., 45. / 82., 45. / 164., 18. / 41.},
		{3. / 205., 0, 0, 0, 0, -6. / 41., -3. / 205., -3. / 41., 3. / 41., 6. / 41.},
		{-1777. / 4100., 0, 0, -341. / 164., 4496. / 1025., -289. / 82., 2193. / 4100., 51. / 82., 33. / 164., 12. / 41., 0, 1.},
	},
	b: []float64{0, 0, 0, 0, 0, 34. / 105., 9. / 35., 9. / 35., 9. / 280., 9. / 280., 0, 41. / 840., 41. / 840.},
	bhat: []float64{41. / 840., 0, 0, 0, 0, 34. / 105., 9. / 35., 9. / 35., 9. / 280., 9. / 280.,
		41. / 840., 0, 0},
}

func tableauFor(s Scheme) tableau {
	switch s {
	case RKF45:
		return rkf45Tableau
	case DOPRI54:
		return dopri54Tableau
	case DVERK65:
		return dverk65Tableau
	case RKF78:
		return rkf78Tableau
	default:
		panic("integrate: tableauFor called with non-embedded scheme")
	}
}
