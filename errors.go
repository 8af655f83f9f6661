package splinify

import (
	"errors"
	"fmt"

	"github.com/harbik/splinify/fitpack"
)

// Sentinel errors wrapped by [ValidationError] and [EvaluationError].
var (
	ErrKind              = errors.New("unknown curve kind")
	ErrDegree            = errors.New("unsupported degree")
	ErrDimension         = errors.New("unsupported dimension")
	ErrTooFewPoints      = errors.New("too few data points")
	ErrParameterOrder    = errors.New("parameter values not strictly increasing")
	ErrCoordinateLength  = errors.New("coordinate count does not match parameter count")
	ErrWeightLength      = errors.New("weight count does not match parameter count")
	ErrWeightValue       = errors.New("weights must be positive")
	ErrNonFinite         = errors.New("value is not finite")
	ErrConstraintOrder   = errors.New("too many derivative constraints")
	ErrConstraintLength  = errors.New("constraint vector length does not match dimension")
	ErrConstraintKind    = errors.New("derivative constraints require a parametric fit")
	ErrCardinalSpacing   = errors.New("cardinal spline spacing too large")
	ErrClosedMismatch    = errors.New("first and last point of a closed curve differ")
	ErrKnotVector        = errors.New("invalid knot vector")
	ErrSmoothingTarget   = errors.New("invalid smoothing target")
	ErrCoefficientLength = errors.New("coefficient count does not match knots, degree and dimension")
	ErrQueryOrder        = errors.New("query values not non-decreasing")
)

// ErrNotConverged is returned by [Session.Optimize] when the convergence
// predicate never held. The returned error is a [*SearchError].
var ErrNotConverged = errors.New("smoothing search did not converge")

// ValidationError reports a request or curve that was rejected before any
// solver call.
type ValidationError struct {
	// Field names the offending input, such as "K" or "Begin".
	Field string
	// Got is the offending value or length, if there is a single one.
	Got any
	Err error
}

func (e *ValidationError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("splinify: %s: %s", e.Field, e.Err)
	}
	return fmt.Sprintf("splinify: %s: %s (got %v)", e.Field, e.Err, e.Got)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error, got any) *ValidationError {
	return &ValidationError{Field: field, Got: got, Err: err}
}

// SolverError wraps a failed solver status together with the state the
// solver was left in.
type SolverError struct {
	Mode   Mode
	Status fitpack.Status
	// Knots is the number of knots when the solver stopped.
	Knots int
	// RMS is the root mean square residual when the solver stopped.
	RMS float64
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("splinify: %s fit failed: %s (%d knots, rms %g)", e.Mode, e.Status, e.Knots, e.RMS)
}

// Is reports whether target is a SolverError with the same status, so that
// callers can match a status without asserting the type:
//
//	errors.Is(err, &SolverError{Status: fitpack.OutOfStorage})
func (e *SolverError) Is(target error) bool {
	t, ok := target.(*SolverError)
	return ok && t.Status == e.Status
}

// SearchError reports a smoothing search that exhausted its iteration
// budget. It wraps [ErrNotConverged].
type SearchError struct {
	Iterations int
	Knots      int
	RMS        float64
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("splinify: %s after %d iterations (%d knots, rms %g)", ErrNotConverged, e.Iterations, e.Knots, e.RMS)
}

func (e *SearchError) Unwrap() error { return ErrNotConverged }

// EvaluationError reports a rejected evaluation. No output is produced.
type EvaluationError struct {
	// Index is the position of the offending query value, or -1 if the
	// curve itself is at fault.
	Index int
	Err   error
}

func (e *EvaluationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("splinify: evaluate: %s", e.Err)
	}
	return fmt.Sprintf("splinify: evaluate: %s at index %d", e.Err, e.Index)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
