package splinify

import (
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p0.Distance(p1); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Affine{1, 0, 0, 1, 0, 0}), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Scale(-1, 0.5)), Pt(-3, 2), epsilon)
	assertNear(t, p.Transform(Translate(5, 6)), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestMapRect(t *testing.T) {
	const epsilon = 1e-9
	aff := MapRect(Rect{-1, 0, 1, 4}, Rect{0, 0, 200, 100})

	// y-up corners land on the y-down corners
	assertNear(t, Pt(-1, 0).Transform(aff), Pt(0, 100), epsilon)
	assertNear(t, Pt(1, 4).Transform(aff), Pt(200, 0), epsilon)
	assertNear(t, Pt(0, 2).Transform(aff), Pt(100, 50), epsilon)
}

func TestBezPathTransform(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 0))
	p.QuadTo(Pt(1, 1), Pt(0, 1))
	p.CubicTo(Pt(-1, 1), Pt(-1, 0), Pt(0, 0))
	p.ClosePath()

	got := p.Transform(Translate(1, 2))
	want := BezPath{
		MoveTo(Pt(1, 2)),
		LineTo(Pt(2, 2)),
		QuadTo(Pt(2, 3), Pt(1, 3)),
		CubicTo(Pt(0, 3), Pt(0, 2), Pt(1, 2)),
		ClosePath(),
	}
	diff(t, want, got)
	// the source is unchanged
	diff(t, MoveTo(Pt(0, 0)), p[0])
}
