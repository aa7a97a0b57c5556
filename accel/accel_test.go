package accel

import (
	"errors"
	"math"
	"testing"

	"github.com/alvinng4/gravsim/gravsimerr"
	"gonum.org/v1/gonum/mat"
)

// TestNewtonThirdLaw checks property 1 of §8: sum(m_i * a_i) is zero to
// floating-point slack, and swapping two bodies permutes the result.
func TestNewtonThirdLaw(t *testing.T) {
	m := []float64{1.0, 2.0, 0.5}
	x := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		-1, -1, 1,
	})
	const g = 0.00029591220828411
	a, err := Acceleration(m, x, g)
	if err != nil {
		t.Fatal(err)
	}
	var sum [3]float64
	maxMA := 0.0
	for i := range m {
		for k := 0; k < 3; k++ {
			ma := m[i] * a.At(i, k)
			sum[k] += ma
			if math.Abs(ma) > maxMA {
				maxMA = math.Abs(ma)
			}
		}
	}
	for k := 0; k < 3; k++ {
		if math.Abs(sum[k]) > 1e-12*maxMA {
			t.Errorf("axis %d: sum(m*a) = %v exceeds slack bound", k, sum[k])
		}
	}
}

func TestAccelerationSwapPermutes(t *testing.T) {
	m := []float64{1.0, 2.0, 0.5}
	x := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		-1, -1, 1,
	})
	const g = 0.00029591220828411
	a, err := Acceleration(m, x, g)
	if err != nil {
		t.Fatal(err)
	}

	mSwap := []float64{2.0, 1.0, 0.5}
	xSwap := mat.NewDense(3, 3, []float64{
		0, 2, 0,
		1, 0, 0,
		-1, -1, 1,
	})
	aSwap, err := Acceleration(mSwap, xSwap, g)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 3; k++ {
		if math.Abs(a.At(0, k)-aSwap.At(1, k)) > 1e-15 {
			t.Errorf("swap did not permute axis %d body 0<->1", k)
		}
		if math.Abs(a.At(1, k)-aSwap.At(0, k)) > 1e-15 {
			t.Errorf("swap did not permute axis %d body 1<->0", k)
		}
	}
}

func TestAccelerationCoincidentBodiesFail(t *testing.T) {
	m := []float64{1.0, 1.0}
	x := mat.NewDense(2, 3, []float64{0, 0, 0, 0, 0, 0})
	_, err := Acceleration(m, x, 1.0)
	if err == nil {
		t.Fatal("expected error for coincident bodies")
	}
	if !errors.Is(err, gravsimerr.ErrCoincidence) {
		t.Errorf("expected Coincidence kind, got %v", err)
	}
}

func TestTwoBodyCircularAcceleration(t *testing.T) {
	// Two equal masses at (+-1,0,0): acceleration must point toward the
	// other body with magnitude G*m/(2r)^2... (classic circular_binary_orbit preset)
	const g = 0.00029591220828411
	m := []float64{1 / g, 1 / g}
	x := mat.NewDense(2, 3, []float64{1, 0, 0, -1, 0, 0})
	a, err := Acceleration(m, x, g)
	if err != nil {
		t.Fatal(err)
	}
	expected := 1.0 / 4.0 // G*(1/G)/(2)^2
	if math.Abs(a.At(0, 0)-(-expected)) > 1e-12 {
		t.Errorf("expected a_x[0]=%v, got %v", -expected, a.At(0, 0))
	}
	if math.Abs(a.At(1, 0)-expected) > 1e-12 {
		t.Errorf("expected a_x[1]=%v, got %v", expected, a.At(1, 0))
	}
}
