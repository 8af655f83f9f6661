package splinify

import (
	"fmt"
	"math"

	"github.com/harbik/splinify/fitpack"
)

// Kind selects the type of curve a [Request] fits.
type Kind int

const (
	// Function fits a scalar spline y = s(x). U holds x, X holds y.
	Function Kind = iota + 1
	// Parametric fits an open curve p(u) in Dim dimensions, optionally
	// with derivative constraints at its end points.
	Parametric
	// Closed fits a periodic curve p(u) whose last data point repeats the
	// first.
	Closed
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Parametric:
		return "parametric"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// closedTolerance is the largest difference per coordinate between the
// first and last point of a closed curve.
const closedTolerance = 1e-10

// Request describes the data of a fit. It is validated as a whole by
// [NewSession]; the slices are copied there.
type Request struct {
	Kind Kind
	// K is the spline degree: 1 through 5 for Function, 1, 3 or 5 for
	// Parametric and Closed.
	K int
	// Dim is the number of coordinates per point, 1 through 10. Function
	// requires 1.
	Dim int
	// U holds the strictly increasing parameter values, or the abscissae
	// of a Function.
	U []float64
	// X holds len(U)*Dim coordinates, point-major.
	X []float64
	// W holds one positive weight per point. A nil W weighs all points
	// equally.
	W []float64
	// Begin and End are derivative constraint stacks of a Parametric
	// curve, lowest order first, Dim values per vector. A stack of n
	// vectors fixes the derivatives of orders 0 through n-2; at most
	// (K+1)/2+1 vectors are allowed.
	Begin [][]float64
	End   [][]float64
}

// FunctionRequest returns the request for fitting a spline of degree k to
// the points (x[i], y[i]).
func FunctionRequest(x, y []float64, k int) Request {
	return Request{Kind: Function, K: k, Dim: 1, U: x, X: y}
}

// ParametricRequest returns the request for fitting an open curve of
// degree k to the points xn, dim coordinates each, at the parameter values
// u. If u is nil, the normalized chord lengths of the points are used, see
// [ChordLength].
func ParametricRequest(u, xn []float64, k, dim int) Request {
	if u == nil {
		u = ChordLength(xn, dim)
	}
	return Request{Kind: Parametric, K: k, Dim: dim, U: u, X: xn}
}

// ClosedRequest is like [ParametricRequest] for closed curves. The last
// point of xn must repeat the first.
func ClosedRequest(u, xn []float64, k, dim int) Request {
	if u == nil {
		u = ChordLength(xn, dim)
	}
	return Request{Kind: Closed, K: k, Dim: dim, U: u, X: xn}
}

// Validate checks the request without fitting it. The returned error is a
// [*ValidationError].
func (r *Request) Validate() error {
	m := len(r.U)
	switch r.Kind {
	case Function:
		if r.K < 1 || r.K > fitpack.MaxDegree {
			return invalid("K", ErrDegree, r.K)
		}
		if r.Dim != 1 {
			return invalid("Dim", ErrDimension, r.Dim)
		}
		if m < r.K+1 {
			return invalid("U", ErrTooFewPoints, m)
		}
	case Parametric, Closed:
		if r.K != 1 && r.K != 3 && r.K != 5 {
			return invalid("K", ErrDegree, r.K)
		}
		if r.Dim < 1 || r.Dim > fitpack.MaxDim {
			return invalid("Dim", ErrDimension, r.Dim)
		}
		if m < 2 {
			return invalid("U", ErrTooFewPoints, m)
		}
	default:
		return invalid("Kind", ErrKind, int(r.Kind))
	}
	if len(r.X) != m*r.Dim {
		return invalid("X", ErrCoordinateLength, len(r.X))
	}
	for i, u := range r.U {
		if !isFinite(u) {
			return invalid("U", ErrNonFinite, u)
		}
		if i > 0 && u <= r.U[i-1] {
			return invalid("U", ErrParameterOrder, i)
		}
	}
	for _, x := range r.X {
		if !isFinite(x) {
			return invalid("X", ErrNonFinite, x)
		}
	}
	if r.W != nil {
		if len(r.W) != m {
			return invalid("W", ErrWeightLength, len(r.W))
		}
		for _, w := range r.W {
			if !isFinite(w) {
				return invalid("W", ErrNonFinite, w)
			}
			if w <= 0 {
				return invalid("W", ErrWeightValue, w)
			}
		}
	}
	if err := r.validateConstraints("Begin", r.Begin); err != nil {
		return err
	}
	if err := r.validateConstraints("End", r.End); err != nil {
		return err
	}
	if r.Kind == Parametric {
		// constrained curves may have fewer points than K+1
		ib1 := max(0, len(r.Begin)-2)
		ie1 := max(0, len(r.End)-2)
		if m < r.K+1-ib1-ie1 {
			return invalid("U", ErrTooFewPoints, m)
		}
	}
	if r.Kind == Closed {
		last := (m - 1) * r.Dim
		for d := range r.Dim {
			if math.Abs(r.X[d]-r.X[last+d]) > closedTolerance {
				return invalid("X", ErrClosedMismatch, fmt.Sprintf("coordinate %d: %g != %g", d, r.X[d], r.X[last+d]))
			}
		}
	}
	return nil
}

func (r *Request) validateConstraints(field string, stack [][]float64) error {
	if len(stack) == 0 {
		return nil
	}
	if r.Kind != Parametric {
		return invalid(field, ErrConstraintKind, r.Kind)
	}
	if len(stack) > (r.K+1)/2+1 {
		return invalid(field, ErrConstraintOrder, len(stack))
	}
	for _, v := range stack {
		if len(v) != r.Dim {
			return invalid(field, ErrConstraintLength, len(v))
		}
		for _, x := range v {
			if !isFinite(x) {
				return invalid(field, ErrNonFinite, x)
			}
		}
	}
	return nil
}

// flatten returns the constraint stack point-major and the number of
// constrained derivative orders.
func flatten(stack [][]float64, dim int) ([]float64, int) {
	out := make([]float64, 0, len(stack)*dim)
	for _, v := range stack {
		out = append(out, v...)
	}
	return out, max(0, len(stack)-1)
}

// ChordLength returns parameter values for the points xn, dim coordinates
// each, proportional to the cumulative distance between consecutive
// points and normalized to [0, 1]. Coincident consecutive points yield
// equal parameter values, which a fit rejects.
func ChordLength(xn []float64, dim int) []float64 {
	if dim < 1 {
		return nil
	}
	m := len(xn) / dim
	u := make([]float64, m)
	for i := 1; i < m; i++ {
		var sum float64
		for d := range dim {
			v := xn[i*dim+d] - xn[(i-1)*dim+d]
			sum += v * v
		}
		u[i] = u[i-1] + math.Sqrt(sum)
	}
	if m > 1 && u[m-1] > 0 {
		total := u[m-1]
		for i := range u {
			u[i] /= total
		}
		u[m-1] = 1
	}
	return u
}
