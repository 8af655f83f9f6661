package splinify

import (
	"slices"

	"github.com/harbik/splinify/fitpack"
)

// Bezier converts the curve into an equivalent Bézier path with one
// segment per knot interval: lines for degree 1, quadratic Béziers for
// degree 2 and cubic Béziers for degree 3. A two-dimensional curve maps its
// coordinates to X and Y; a scalar function y(x) becomes its graph
// (x, y(x)). A two-dimensional curve whose ends meet is closed with
// ClosePath.
//
// The conversion inserts knots until every breakpoint has multiplicity K,
// at which point the B-spline coefficients of each interval are the
// Bézier control points of that interval.
func (sc *SplineCurve) Bezier() (BezPath, error) {
	if sc.k > 3 {
		return nil, invalid("K", ErrDegree, sc.k)
	}
	if sc.dim > 2 {
		return nil, invalid("Dim", ErrDimension, sc.dim)
	}
	t, c, err := sc.bezierForm()
	if err != nil {
		return nil, err
	}
	k := sc.k
	pts := controlPoints(t, c, k, sc.dim)
	var p BezPath
	for l := k; l < len(t)-k-1; l++ {
		if t[l] == t[l+1] {
			continue
		}
		cp := pts[l-k : l+1]
		if len(p) == 0 {
			p.MoveTo(cp[0])
		}
		switch k {
		case 1:
			p.LineTo(cp[1])
		case 2:
			p.QuadTo(cp[1], cp[2])
		case 3:
			p.CubicTo(cp[1], cp[2], cp[3])
		}
	}
	if sc.dim == 2 && len(p) > 1 {
		end, _ := p[len(p)-1].EndPoint()
		if end.Distance(p[0].P0) <= closedTolerance {
			p.ClosePath()
		}
	}
	return p, nil
}

// ControlPoints returns the control polygon of a curve in at most two
// dimensions. For a scalar function, the X coordinates are the Greville
// abscissae of the knots, the averages of K consecutive knots.
func (sc *SplineCurve) ControlPoints() ([]Point, error) {
	if sc.dim > 2 {
		return nil, invalid("Dim", ErrDimension, sc.dim)
	}
	return controlPoints(sc.t, sc.c, sc.k, sc.dim), nil
}

func controlPoints(t, c []float64, k, dim int) []Point {
	nk1 := len(t) - k - 1
	pts := make([]Point, nk1)
	for i := range pts {
		if dim == 2 {
			pts[i] = Pt(c[i], c[nk1+i])
			continue
		}
		var x float64
		for j := 1; j <= k; j++ {
			x += t[i+j]
		}
		pts[i] = Pt(x/float64(k), c[i])
	}
	return pts
}

// bezierForm returns the knots and coefficients of the curve after raising
// the multiplicity of each breakpoint in the domain to at least K.
func (sc *SplineCurve) bezierForm() ([]float64, []float64, error) {
	t, c, k := sc.t, sc.c, sc.k
	lo, hi := sc.Domain()
	breaks := slices.Compact(slices.Clone(t[k : len(t)-k]))
	for _, v := range breaks {
		if v < lo || v > hi {
			continue
		}
		mult := 0
		for _, tv := range t {
			if tv == v {
				mult++
			}
		}
		for ; mult < k; mult++ {
			tt, cc, st := fitpack.Insert(sc.dim, t, c, k, v)
			if st.Failed() {
				return nil, nil, &EvaluationError{Index: -1, Err: ErrKnotVector}
			}
			t, c = tt, cc
		}
	}
	return t, c, nil
}
