package splinify

import (
	"math"
	"slices"

	"github.com/harbik/splinify/fitpack"
)

// SplineCurve is a B-spline curve of degree K in Dim dimensions: a scalar
// function y(x) when Dim is 1, or a parametric curve p(u) otherwise.
//
// The coefficients are stored per dimension: segment d holds the
// len(Knots)-K-1 coefficients of coordinate d. A SplineCurve is immutable;
// its accessors return copies.
type SplineCurve struct {
	t   []float64
	c   []float64
	k   int
	dim int
	rms option[float64]
}

// NewSplineCurve returns the curve with knots t, coefficients c, degree k
// and dimension dim, after checking that they describe a valid spline:
//
//   - 1 ≤ k ≤ 5 and 1 ≤ dim ≤ 10,
//   - t is finite, non-decreasing, has at least 2k+2 values and a non-empty
//     domain [t[k], t[len(t)-k-1]],
//   - len(c) == dim*(len(t)-k-1) and all coefficients are finite.
//
// The slices are copied.
func NewSplineCurve(t, c []float64, k, dim int) (*SplineCurve, error) {
	if err := checkCurve(t, c, k, dim); err != nil {
		return nil, err
	}
	return newSplineCurve(slices.Clone(t), slices.Clone(c), k, dim), nil
}

// newSplineCurve takes ownership of t and c without checking them.
func newSplineCurve(t, c []float64, k, dim int) *SplineCurve {
	return &SplineCurve{t: t, c: c, k: k, dim: dim}
}

func checkCurve(t, c []float64, k, dim int) error {
	if k < 1 || k > fitpack.MaxDegree {
		return invalid("K", ErrDegree, k)
	}
	if dim < 1 || dim > fitpack.MaxDim {
		return invalid("Dim", ErrDimension, dim)
	}
	if len(t) < 2*k+2 {
		return invalid("t", ErrKnotVector, len(t))
	}
	for i, v := range t {
		if !isFinite(v) {
			return invalid("t", ErrNonFinite, v)
		}
		if i > 0 && v < t[i-1] {
			return invalid("t", ErrKnotVector, i)
		}
	}
	if t[k] >= t[len(t)-k-1] {
		return invalid("t", ErrKnotVector, "empty domain")
	}
	if want := dim * (len(t) - k - 1); len(c) != want {
		return invalid("c", ErrCoefficientLength, len(c))
	}
	for _, v := range c {
		if !isFinite(v) {
			return invalid("c", ErrNonFinite, v)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Knots returns a copy of the knot vector.
func (sc *SplineCurve) Knots() []float64 { return slices.Clone(sc.t) }

// Coefficients returns a copy of all coefficients, Dim segments of
// NumKnots()-Degree()-1 values each.
func (sc *SplineCurve) Coefficients() []float64 { return slices.Clone(sc.c) }

// Segment returns a copy of the coefficients of coordinate d.
func (sc *SplineCurve) Segment(d int) []float64 {
	nk1 := sc.nk1()
	return slices.Clone(sc.c[d*nk1 : (d+1)*nk1])
}

func (sc *SplineCurve) Degree() int { return sc.k }

func (sc *SplineCurve) Dim() int { return sc.dim }

func (sc *SplineCurve) NumKnots() int { return len(sc.t) }

// RMSError returns the root mean square residual of the fit that produced
// the curve. It reports false for curves that were not fitted.
func (sc *SplineCurve) RMSError() (float64, bool) {
	return sc.rms.value, sc.rms.isSet
}

// Domain returns the interval [t[k], t[len(t)-k-1]] on which the curve is
// defined. Evaluation clamps to it.
func (sc *SplineCurve) Domain() (lo, hi float64) {
	return sc.t[sc.k], sc.t[sc.nk1()]
}

func (sc *SplineCurve) nk1() int { return len(sc.t) - sc.k - 1 }

func (sc *SplineCurve) withRMS(rms float64) *SplineCurve {
	sc.rms.set(rms)
	return sc
}
