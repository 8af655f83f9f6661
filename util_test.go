package splinify

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harbik/splinify/fitpack"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return out
}

// noisySine samples sin(2π periods x) on [0, 1] with Gaussian noise of
// standard deviation sigma, from a fixed seed.
func noisySine(m int, periods, sigma float64, seed uint64) (x, y []float64) {
	rng := rand.New(rand.NewPCG(seed, 1))
	x = linspace(0, 1, m)
	y = make([]float64, m)
	for i, xi := range x {
		y[i] = math.Sin(2*math.Pi*periods*xi) + sigma*rng.NormFloat64()
	}
	return x, y
}

// circle samples the unit circle at m points, the last one repeating the
// first.
func circle(m int) (u, xy []float64) {
	u = linspace(0, 1, m)
	xy = make([]float64, 0, 2*m)
	for _, ui := range u {
		xy = append(xy, math.Cos(2*math.Pi*ui), math.Sin(2*math.Pi*ui))
	}
	xy[2*(m-1)], xy[2*(m-1)+1] = xy[0], xy[1]
	return u, xy
}

// countingSolver counts the calls to the solver it wraps.
type countingSolver struct {
	fitpack.Native
	calls int
}

func (s *countingSolver) FitNonParametric(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status) {
	s.calls++
	return s.Native.FitNonParametric(p, ws)
}

func (s *countingSolver) FitParametric(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status) {
	s.calls++
	return s.Native.FitParametric(p, ws)
}

func (s *countingSolver) FitClosed(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status) {
	s.calls++
	return s.Native.FitClosed(p, ws)
}

func mustSession(t testing.TB, req Request, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession(req, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func mustEvaluate(t testing.TB, sc *SplineCurve, x []float64) []float64 {
	t.Helper()
	y, err := sc.Evaluate(x)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return y
}

// checkLayout verifies the coefficient count of a fitted curve.
func checkLayout(t *testing.T, sc *SplineCurve) {
	t.Helper()
	if got, want := len(sc.Coefficients()), sc.Dim()*(sc.NumKnots()-sc.Degree()-1); got != want {
		t.Errorf("got %d coefficients, want %d", got, want)
	}
}
