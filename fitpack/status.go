package fitpack

import "fmt"

// Status is the outcome of a fitting routine, using FITPACK's ier codes.
// Non-positive values are successful; positive values are failures.
type Status int

const (
	// LeastSquaresPolynomial reports that the returned spline is the
	// least-squares polynomial of degree k, which has no interior knots.
	// Its residual is smaller than the smoothing target.
	LeastSquaresPolynomial Status = -2
	// Interpolating reports that the returned spline interpolates the data.
	Interpolating Status = -1
	// OK reports a normal return: the residual matches the smoothing target
	// within the relative tolerance.
	OK Status = 0
	// OutOfStorage reports that the knot capacity nest was too small to
	// reach the smoothing target.
	OutOfStorage Status = 1
	// ToleranceTooSmall reports a theoretically impossible result during the
	// search for the smoothing parameter; the tolerance is too small.
	ToleranceTooSmall Status = 2
	// IterationLimit reports that the smoothing parameter search did not
	// converge within the iteration limit.
	IterationLimit Status = 3
	// InvalidInput reports that the input data violated a restriction.
	InvalidInput Status = 10
)

// Failed reports whether s is a hard failure.
func (s Status) Failed() bool { return s > 0 }

func (s Status) String() string {
	switch s {
	case LeastSquaresPolynomial:
		return "least-squares polynomial"
	case Interpolating:
		return "interpolating spline"
	case OK:
		return "ok"
	case OutOfStorage:
		return "knot storage exhausted"
	case ToleranceTooSmall:
		return "smoothing tolerance too small"
	case IterationLimit:
		return "smoothing iteration limit reached"
	case InvalidInput:
		return "invalid input"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
