package splinify

import (
	"errors"
	"slices"
	"testing"
)

// breakpoints returns the distinct knots of the curve's domain.
func breakpoints(sc *SplineCurve) []float64 {
	t := sc.Knots()
	k := sc.Degree()
	return slices.Compact(t[k : len(t)-k])
}

// bezierAt evaluates the element drawn from p0 at s ∈ [0, 1] with de
// Casteljau's algorithm.
func bezierAt(p0 Point, el PathElement, s float64) Point {
	pts := []Point{p0, el.P0}
	switch el.Kind {
	case QuadToKind:
		pts = append(pts, el.P1)
	case CubicToKind:
		pts = append(pts, el.P1, el.P2)
	}
	for n := len(pts) - 1; n > 0; n-- {
		for i := range n {
			pts[i] = Pt(pts[i].X+(pts[i+1].X-pts[i].X)*s, pts[i].Y+(pts[i+1].Y-pts[i].Y)*s)
		}
	}
	return pts[0]
}

// checkBezier compares every piece of the curve's Bézier path with the
// curve itself and returns the path.
func checkBezier(t *testing.T, sc *SplineCurve) BezPath {
	t.Helper()
	p, err := sc.Bezier()
	if err != nil {
		t.Fatal(err)
	}
	bp := breakpoints(sc)
	var start Point
	i := 0
	for _, el := range p {
		switch el.Kind {
		case MoveToKind:
			start = el.P0
			continue
		case ClosePathKind:
			continue
		}
		if i >= len(bp)-1 {
			t.Fatalf("more pieces than the %d knot intervals", len(bp)-1)
		}
		a, b := bp[i], bp[i+1]
		for _, s := range []float64{0, 0.25, 0.5, 0.75, 1} {
			x := a + s*(b-a)
			v := sc.Eval(x)
			want := Pt(x, v[0])
			if sc.Dim() == 2 {
				want = Pt(v[0], v[1])
			}
			if got := bezierAt(start, el, s); got.Distance(want) > 1e-9 {
				t.Errorf("piece %d at %v: got %s, want %s", i, s, got, want)
			}
		}
		start, _ = el.EndPoint()
		i++
	}
	if i != len(bp)-1 {
		t.Errorf("got %d pieces for %d knot intervals", i, len(bp)-1)
	}
	return p
}

func TestBezierClosed(t *testing.T) {
	u, xy := circle(11)
	for _, k := range []int{1, 3} {
		sc, err := mustSession(t, ClosedRequest(u, xy, k, 2)).Interpolate()
		if err != nil {
			t.Fatal(err)
		}
		p := checkBezier(t, sc)
		if p[len(p)-1].Kind != ClosePathKind {
			t.Errorf("k=%d: closed curve not closed: %s", k, p[len(p)-1])
		}
	}
}

func TestBezierFunction(t *testing.T) {
	x, y := noisySine(25, 1, 0.05, 9)
	for k := 1; k <= 3; k++ {
		sc, err := mustSession(t, FunctionRequest(x, y, k)).Smooth(0.05)
		if err != nil {
			t.Fatal(err)
		}
		p := checkBezier(t, sc)
		if p[len(p)-1].Kind == ClosePathKind {
			t.Errorf("k=%d: function graph closed", k)
		}
	}
}

func TestBezierDoesNotModifyCurve(t *testing.T) {
	sc := identity(t, []float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1}, 3)
	knots := sc.Knots()
	if _, err := sc.Bezier(); err != nil {
		t.Fatal(err)
	}
	diff(t, knots, sc.Knots())
}

func TestBezierRejects(t *testing.T) {
	sc := identity(t, []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}, 4)
	if _, err := sc.Bezier(); !errors.Is(err, ErrDegree) {
		t.Errorf("got %v for a quartic, want ErrDegree", err)
	}
	sc3, err := NewSplineCurve([]float64{0, 0, 1, 1}, make([]float64, 6), 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc3.Bezier(); !errors.Is(err, ErrDimension) {
		t.Errorf("got %v for three dimensions, want ErrDimension", err)
	}
	if _, err := sc3.ControlPoints(); !errors.Is(err, ErrDimension) {
		t.Errorf("got %v for three dimensions, want ErrDimension", err)
	}
}

func TestControlPoints(t *testing.T) {
	sc, err := NewSplineCurve([]float64{0, 0, 0, 1, 2, 2, 2}, []float64{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := sc.ControlPoints()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(1, 5), Pt(2, 6), Pt(3, 7), Pt(4, 8)}, pts)

	// the Greville abscissae of a scalar function
	fn, err := NewSplineCurve([]float64{0, 0, 0, 1, 2, 2, 2}, []float64{1, 2, 3, 4}, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	pts, err = fn.ControlPoints()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(0, 1), Pt(0.5, 2), Pt(1.5, 3), Pt(2, 4)}, pts)
}
