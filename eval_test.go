package splinify

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// identity returns the spline s(x) = x of degree k on the given knots. Its
// coefficients are the Greville abscissae.
func identity(t *testing.T, knots []float64, k int) *SplineCurve {
	t.Helper()
	nk1 := len(knots) - k - 1
	c := make([]float64, nk1)
	for i := range c {
		for j := 1; j <= k; j++ {
			c[i] += knots[i+j]
		}
		c[i] /= float64(k)
	}
	sc, err := NewSplineCurve(knots, c, k, 1)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestEvaluateReproducesLinear(t *testing.T) {
	for k := 1; k <= 5; k++ {
		var knots []float64
		for range k + 1 {
			knots = append(knots, -1)
		}
		knots = append(knots, 0.5, 0.5, 1, 3)
		for range k + 1 {
			knots = append(knots, 4)
		}
		sc := identity(t, knots, k)
		x := linspace(-1, 4, 41)
		diff(t, x, mustEvaluate(t, sc, x), cmpopts.EquateApprox(0, 1e-12))
	}
}

func TestEvaluateClamps(t *testing.T) {
	sc := identity(t, []float64{0, 0, 0, 0, 1, 2, 2, 2, 2}, 3)
	got := mustEvaluate(t, sc, []float64{-10, -1e-9, 0, 2, 2 + 1e-9, 10})
	diff(t, []float64{0, 0, 0, 2, 2, 2}, got, cmpopts.EquateApprox(0, 1e-14))
	diff(t, []float64{2}, sc.Eval(math.Inf(1)), cmpopts.EquateApprox(0, 1e-14))
}

func TestEvaluateRejectsDecreasing(t *testing.T) {
	sc := identity(t, []float64{0, 0, 1, 1}, 1)
	y, err := sc.Evaluate([]float64{0, 0.5, 0.5, 0.25, 1})
	if y != nil {
		t.Errorf("got partial output %v", y)
	}
	var eerr *EvaluationError
	if !errors.As(err, &eerr) {
		t.Fatalf("got %v, want *EvaluationError", err)
	}
	if !errors.Is(err, ErrQueryOrder) {
		t.Errorf("got %v, want ErrQueryOrder", err)
	}
	diff(t, 3, eerr.Index)

	if _, err := sc.Evaluate([]float64{math.NaN()}); !errors.Is(err, ErrQueryOrder) {
		t.Errorf("got %v for NaN query, want ErrQueryOrder", err)
	}
}

func TestEvaluateRepeatedQueries(t *testing.T) {
	sc := identity(t, []float64{0, 0, 1, 1}, 1)
	y, err := sc.Evaluate([]float64{0.25, 0.5, 0.5, 0.5, 1})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0.25, 0.5, 0.5, 0.5, 1}, y, cmpopts.EquateApprox(0, 1e-15))
}

func TestEvaluateDegenerateKnots(t *testing.T) {
	// A curve that bypassed NewSplineCurve.
	sc := &SplineCurve{t: []float64{0, 1, 2}, c: []float64{1}, k: 1, dim: 1}
	if _, err := sc.Evaluate([]float64{0.5}); !errors.Is(err, ErrKnotVector) {
		t.Errorf("got %v, want ErrKnotVector", err)
	}
}

func TestEvaluatePointMajor(t *testing.T) {
	// x(u) = u, y(u) = 1 - u
	sc, err := NewSplineCurve([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	got := mustEvaluate(t, sc, []float64{0, 0.25, 1})
	diff(t, []float64{0, 1, 0.25, 0.75, 1, 0}, got, cmpopts.EquateApprox(0, 1e-15))
}

func TestEvalMatchesEvaluate(t *testing.T) {
	x, y := noisySine(50, 2, 0, 1)
	sc, err := mustSession(t, FunctionRequest(x, y, 3)).Smooth(0.01)
	if err != nil {
		t.Fatal(err)
	}
	q := linspace(0, 1, 17)
	all := mustEvaluate(t, sc, q)
	// out of order on purpose
	for i := len(q) - 1; i >= 0; i-- {
		diff(t, all[i:i+1], sc.Eval(q[i]))
	}
}

func TestDerivative(t *testing.T) {
	x := linspace(0, 2, 21)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = xi * xi * xi
	}
	sc, err := mustSession(t, FunctionRequest(x, y, 3)).Interpolate()
	if err != nil {
		t.Fatal(err)
	}
	d, err := sc.Derivative()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 2, d.Degree())
	checkLayout(t, d)
	q := linspace(0, 2, 9)
	want := make([]float64, len(q))
	for i, qi := range q {
		want[i] = 3 * qi * qi
	}
	diff(t, want, mustEvaluate(t, d, q), cmpopts.EquateApprox(0, 1e-9))

	d2, err := d.Derivative()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{0, 6, 12}, mustEvaluate(t, d2, []float64{0, 1, 2}), cmpopts.EquateApprox(0, 1e-8))
	if _, err := d2.Derivative(); !errors.Is(err, ErrDegree) {
		t.Errorf("got %v for the derivative of a linear spline, want ErrDegree", err)
	}
}

func TestSamples(t *testing.T) {
	sc := identity(t, []float64{1, 1, 1, 2, 3, 3, 3}, 2)
	var xs []float64
	for x, p := range sc.Samples(5) {
		xs = append(xs, x)
		diff(t, []float64{x}, p, cmpopts.EquateApprox(0, 1e-14))
	}
	diff(t, []float64{1, 1.5, 2, 2.5, 3}, xs)

	n := 0
	for range sc.Samples(10) {
		n++
		if n == 3 {
			break
		}
	}
	diff(t, 3, n)
}

func BenchmarkEvaluate(b *testing.B) {
	x, y := noisySine(500, 3, 0.01, 1)
	s := mustSession(b, FunctionRequest(x, y, 3))
	sc, err := s.Smooth(0.01)
	if err != nil {
		b.Fatal(err)
	}
	q := linspace(0, 1, 10000)
	b.ResetTimer()
	for range b.N {
		if _, err := sc.Evaluate(q); err != nil {
			b.Fatal(err)
		}
	}
}
