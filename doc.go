// Package splinify fits B-spline curves to sampled data and evaluates them.
//
// It handles scalar functions y = s(x) as well as open and closed parametric
// curves p(u) in up to ten dimensions, with a controllable trade-off between
// fidelity and smoothness. The fitting itself is done by a [Solver], by
// default the native FITPACK port in package [fitpack]; this package
// validates the input, sizes the solver's buffers, drives it and turns its
// raw output into a [SplineCurve].
//
// # Fitting
//
// A [Request] describes the data: its [Kind], the degree K, the dimension,
// parameter values, coordinates, optional weights and, for open parametric
// curves, derivative constraints at the end points. [NewSession] validates a
// request as a whole and allocates the solver workspace. A [Session] then
// offers the fitting modes:
//
//   - [Session.LeastSquares] fits on a given knot vector,
//   - [Session.Cardinal] fits on equidistant knots,
//   - [Session.Interpolate] passes through every data point,
//   - [Session.Smooth] places as few knots as possible for a given root mean
//     square error, and [Session.SmoothMore] continues from the knots of the
//     previous call.
//
// [Session.Optimize] searches for a good trade-off between error and knot
// count by repeatedly tightening the error target until a caller supplied
// predicate is satisfied. [FitAll] fits many requests concurrently.
//
// # Curves
//
// A [SplineCurve] is an immutable value holding knots, coefficients, degree
// and dimension, plus the rms error of the fit that produced it. It is
// evaluated with de Boor's algorithm by [SplineCurve.Evaluate] and
// [SplineCurve.Eval], and can be differentiated, serialized to JSON and
// YAML, converted to a [BezPath] and plotted as SVG.
//
// # Errors
//
// Invalid input is reported as a [*ValidationError] before the solver runs.
// A failing solver yields a [*SolverError] carrying its [fitpack.Status].
// Both wrap sentinel errors that can be tested with [errors.Is].
//
// # Literature
//
//   - P. Dierckx, "Curve and Surface Fitting with Splines", Oxford
//     University Press, 1993.
//   - C. de Boor, "A Practical Guide to Splines", Springer, 1978.
//   - W. Boehm, "Inserting new knots into B-spline curves", Computer-Aided
//     Design 12 (1980) 199-201.
//   - [A Primer on Bézier Curves]
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
package splinify
