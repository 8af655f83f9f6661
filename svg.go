package splinify

import (
	"cmp"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// PlotOptions configures [SplineCurve.Plot].
type PlotOptions struct {
	// Width and Height are the size of the image in pixels. Zero selects
	// 640 by 480.
	Width, Height int
	// Data holds points drawn as markers, typically the fitted samples.
	Data []Point
	// ControlPolygon draws the curve's control polygon.
	ControlPolygon bool
	// Samples is the number of vertices of the polyline that stands in for
	// curves of degree above 3. Zero selects 256.
	Samples int
	SVG     SVGOptions
}

// Plot writes an SVG image of a curve in at most two dimensions to w, with
// y pointing up. Curves of degree 3 or less are drawn exactly as Bézier
// paths. Data points must be finite.
func (sc *SplineCurve) Plot(w io.Writer, opts PlotOptions) error {
	if sc.dim > 2 {
		return invalid("Dim", ErrDimension, sc.dim)
	}
	width := cmp.Or(opts.Width, 640)
	height := cmp.Or(opts.Height, 480)

	path, err := sc.outline(cmp.Or(opts.Samples, 256))
	if err != nil {
		return err
	}
	var ctrl BezPath
	if opts.ControlPolygon {
		pts, _ := sc.ControlPoints()
		for i, pt := range pts {
			if i == 0 {
				ctrl.MoveTo(pt)
			} else {
				ctrl.LineTo(pt)
			}
		}
	}

	var bounds Rect
	var ok bool
	if len(opts.Data) > 0 {
		xs, ys := make([]float64, len(opts.Data)), make([]float64, len(opts.Data))
		for i, pt := range opts.Data {
			if pt.IsNaN() || pt.IsInf() {
				return invalid("Data", ErrNonFinite, pt)
			}
			xs[i], ys[i] = pt.X, pt.Y
		}
		bounds = Rect{X0: floats.Min(xs), Y0: floats.Min(ys), X1: floats.Max(xs), Y1: floats.Max(ys)}
		ok = true
	}
	for _, p := range []BezPath{path, ctrl} {
		box, has := p.ControlBox()
		switch {
		case !has:
		case ok:
			bounds = bounds.Union(box)
		default:
			bounds, ok = box, true
		}
	}
	bounds = bounds.Inflate(margin(bounds.Width()), margin(bounds.Height()))
	aff := MapRect(bounds, Rect{X1: float64(width), Y1: float64(height)})

	var werr error
	writef := func(s string, v ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, s, v...)
	}
	f := opts.SVG.format
	writef(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	writef(`<rect width="100%%" height="100%%" fill="white"/>` + "\n")
	writePath := func(p BezPath, attrs string) {
		writef(`<path d="`)
		if werr == nil {
			werr = p.Transform(aff).WriteSVG(w, opts.SVG)
		}
		writef(`" %s/>`+"\n", attrs)
	}
	if len(ctrl) > 0 {
		writePath(ctrl, `fill="none" stroke="#999" stroke-dasharray="4 3"`)
	}
	writePath(path, `fill="none" stroke="black" stroke-width="1.5"`)
	if len(opts.Data) > 0 {
		writef(`<g fill="#c00">` + "\n")
		for _, pt := range opts.Data {
			pt = pt.Transform(aff)
			writef(`<circle cx="%s" cy="%s" r="2"/>`+"\n", f(pt.X), f(pt.Y))
		}
		writef("</g>\n")
	}
	writef("</svg>\n")
	return werr
}

// margin returns the padding added on each side of an extent of size d.
func margin(d float64) float64 {
	if d == 0 {
		return 1
	}
	return 0.05 * d
}

// outline returns the curve as an exact Bézier path, or as a polyline of n
// vertices for degrees above 3.
func (sc *SplineCurve) outline(n int) (BezPath, error) {
	if sc.k <= 3 {
		return sc.Bezier()
	}
	var p BezPath
	for x, v := range sc.Samples(max(n, 2)) {
		pt := Pt(x, v[0])
		if sc.dim == 2 {
			pt = Pt(v[0], v[1])
		}
		if len(p) == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p, nil
}
