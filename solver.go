package splinify

import "github.com/harbik/splinify/fitpack"

// Solver is the least-squares spline routine a [Session] delegates to. The
// methods follow the calling convention of the [fitpack] routines of the
// same purpose: the problem is read-only, the workspace receives the knots
// and coefficients, and the result is the weighted sum of squared
// residuals together with a status.
//
// [fitpack.Native] is the default Solver.
type Solver interface {
	// FitNonParametric fits a scalar spline y = s(x), as [fitpack.Curfit].
	FitNonParametric(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status)
	// FitParametric fits an open parametric curve with optional end point
	// derivative constraints, as [fitpack.Concur].
	FitParametric(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status)
	// FitClosed fits a periodic parametric curve, as [fitpack.Clocur].
	FitClosed(p *fitpack.Problem, ws *fitpack.Workspace) (float64, fitpack.Status)
}

var _ Solver = fitpack.Native{}
