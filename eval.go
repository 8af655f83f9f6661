package splinify

import (
	"iter"
	"math"
	"slices"
)

// Evaluate evaluates the curve at the parameter values x, which must be
// non-decreasing: repeated values are allowed and evaluate to the same
// point. Values outside [SplineCurve.Domain] are clamped to it.
// The result holds Dim values per query, point-major.
//
// A query sequence that decreases anywhere is rejected as a whole with an
// [*EvaluationError] carrying the offending index.
func (sc *SplineCurve) Evaluate(x []float64) ([]float64, error) {
	if len(sc.t) < 2*sc.k+2 {
		return nil, &EvaluationError{Index: -1, Err: ErrKnotVector}
	}
	for i, xi := range x {
		if math.IsNaN(xi) || (i > 0 && xi < x[i-1]) {
			return nil, &EvaluationError{Index: i, Err: ErrQueryOrder}
		}
	}
	out := make([]float64, len(x)*sc.dim)
	ev := sc.evaluator()
	for i, xi := range x {
		ev.at(xi, out[i*sc.dim:(i+1)*sc.dim])
	}
	return out, nil
}

// Eval evaluates the curve at a single parameter value, clamped to the
// domain, and returns its Dim coordinates.
func (sc *SplineCurve) Eval(x float64) []float64 {
	out := make([]float64, sc.dim)
	sc.evaluator().at(x, out)
	return out
}

// Samples returns an iterator over n evenly spaced parameter values
// spanning the domain, including both ends, and the curve's coordinates
// there.
func (sc *SplineCurve) Samples(n int) iter.Seq2[float64, []float64] {
	return func(yield func(float64, []float64) bool) {
		if n < 1 {
			return
		}
		lo, hi := sc.Domain()
		ev := sc.evaluator()
		for i := range n {
			x := lo
			if n > 1 {
				x = lo + (hi-lo)*float64(i)/float64(n-1)
			}
			p := make([]float64, sc.dim)
			ev.at(x, p)
			if !yield(x, p) {
				return
			}
		}
	}
}

// Derivative returns the first derivative of the curve, a spline of degree
// K-1 on the same domain. It requires K ≥ 2.
func (sc *SplineCurve) Derivative() (*SplineCurve, error) {
	k := sc.k
	if k < 2 {
		return nil, invalid("K", ErrDegree, k)
	}
	nk1 := sc.nk1()
	t := slices.Clone(sc.t[1 : len(sc.t)-1])
	c := make([]float64, sc.dim*(nk1-1))
	for d := range sc.dim {
		src := sc.c[d*nk1 : (d+1)*nk1]
		dst := c[d*(nk1-1) : (d+1)*(nk1-1)]
		for i := range dst {
			if h := sc.t[i+k+1] - sc.t[i+1]; h > 0 {
				dst[i] = float64(k) * (src[i+1] - src[i]) / h
			}
		}
	}
	return newSplineCurve(t, c, k-1, sc.dim), nil
}

// evaluator runs de Boor's algorithm for a sequence of non-decreasing
// parameter values, advancing its knot interval monotonically.
type evaluator struct {
	t   []float64
	c   []float64
	k   int
	nk1 int
	// l is the current interval, t[l] <= x < t[l+1].
	l int
	d []float64
}

func (sc *SplineCurve) evaluator() *evaluator {
	return &evaluator{
		t:   sc.t,
		c:   sc.c,
		k:   sc.k,
		nk1: sc.nk1(),
		l:   sc.k,
		d:   make([]float64, sc.k+1),
	}
}

// seek clamps x to the domain and moves l to the interval holding it.
func (ev *evaluator) seek(x float64) float64 {
	t := ev.t
	x = min(max(x, t[ev.k]), t[ev.nk1])
	if x < t[ev.l] {
		ev.l = ev.k
	}
	for x >= t[ev.l+1] && ev.l < ev.nk1-1 {
		ev.l++
	}
	// at the right end, fall back to the last interval of non-zero length
	for ev.l > ev.k && t[ev.l] == t[ev.l+1] {
		ev.l--
	}
	return x
}

func (ev *evaluator) at(x float64, out []float64) {
	x = ev.seek(x)
	for d := range out {
		out[d] = ev.deBoor(ev.c[d*ev.nk1:(d+1)*ev.nk1], x)
	}
}

func (ev *evaluator) deBoor(c []float64, x float64) float64 {
	t, k, l, d := ev.t, ev.k, ev.l, ev.d
	copy(d, c[l-k:l+1])
	for r := 1; r <= k; r++ {
		for j := k; j >= r; j-- {
			i := j + l - k
			alpha := (x - t[i]) / (t[i+k+1-r] - t[i])
			d[j] = (1-alpha)*d[j-1] + alpha*d[j]
		}
	}
	return d[k]
}
