package splinify

import (
	"testing"
)

func TestRectAbs(t *testing.T) {
	r := NewRectFromPoints(Pt(10, 0), Pt(0, 20))
	diff(t, Rect{0, 0, 10, 20}, r)
	diff(t, 10.0, r.Width())
	diff(t, 20.0, r.Height())

	flipped := Rect{10, 20, 0, 0}
	diff(t, -10.0, flipped.Width())
	diff(t, r, flipped.Abs())
}

func TestRectUnion(t *testing.T) {
	r := Rect{0, 0, 1, 1}
	diff(t, Rect{-1, 0, 1, 3}, r.Union(Rect{-1, 2, 0, 3}))
	diff(t, Rect{0, -2, 5, 1}, r.UnionPoint(Pt(5, -2)))
	diff(t, r, r.UnionPoint(Pt(0.5, 0.5)))
}

func TestRectInflate(t *testing.T) {
	diff(t, Rect{-1, -3, 2, 4}, Rect{0, -1, 1, 2}.Inflate(1, 2))
}
