// Package fitpack is a native Go port of the parts of Paul Dierckx' FITPACK
// library that are needed to fit and evaluate spline curves.
//
// The routines keep FITPACK's calling conventions: the caller owns all
// buffers, sized by the formulas in this package, and every fitting routine
// reports its outcome as a [Status] together with the weighted sum of
// squared residuals. Knot vectors and coefficient buffers have capacity
// nest; a fit writes the active knot count to [Workspace.N], and the
// coefficients of dimension d start at offset d*N of [Workspace.C].
//
// # Routines
//
//   - [Curfit] fits a spline y = s(x) with automatic knot placement,
//     fixed knots or interpolation.
//   - [Concur] fits a parametric curve in up to 10 dimensions, optionally
//     with derivative constraints at both end points.
//   - [Clocur] fits a closed (periodic) parametric curve.
//   - [Splev] and [Curev] evaluate splines and spline curves.
//
// Degrees are limited to 1 ≤ k ≤ 5 as in FITPACK; parametric and closed
// fits additionally require k to be odd.
//
// # Literature
//
//   - P. Dierckx, "Curve and Surface Fitting with Splines", Oxford
//     University Press, 1993.
//   - P. Dierckx, "Algorithms for smoothing data with periodic and
//     parametric splines", Computer Graphics and Image Processing 20
//     (1982) 171-184.
//   - C. de Boor, "A Practical Guide to Splines", Springer, 1978.
package fitpack
