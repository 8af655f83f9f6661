package splinify

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/harbik/splinify/fitpack"
)

// Mode is the way a [Session] call asks the solver to place knots.
type Mode int

const (
	// LeastSquaresMode fits on a caller supplied knot vector.
	LeastSquaresMode Mode = iota + 1
	// CardinalMode fits on equidistant knots.
	CardinalMode
	// InterpolateMode fits a curve through every data point.
	InterpolateMode
	// SmoothMode places knots from scratch to meet an error target.
	SmoothMode
	// SmoothMoreMode places knots starting from the previous call's.
	SmoothMoreMode
)

func (m Mode) String() string {
	switch m {
	case LeastSquaresMode:
		return "least-squares"
	case CardinalMode:
		return "cardinal"
	case InterpolateMode:
		return "interpolating"
	case SmoothMode:
		return "smoothing"
	case SmoothMoreMode:
		return "continued smoothing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Session holds the working state of the fits of one [Request]: the
// solver workspace, sized once, and the outcome of the last call. The
// workspace persists between calls, which lets [Session.SmoothMore]
// continue from the knots of the previous call.
//
// A Session must not be used concurrently. The curves it returns are
// independent of it.
type Session struct {
	req    Request
	solver Solver
	log    *slog.Logger

	prob fitpack.Problem
	ws   *fitpack.Workspace

	status fitpack.Status
	fp     float64
	rms    option[float64]
	calls  int
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithSolver replaces the default [fitpack.Native] solver.
func WithSolver(s Solver) SessionOption {
	return func(sess *Session) { sess.solver = s }
}

// WithLogger sets the logger that receives a debug record for each solver
// call. By default, nothing is logged.
func WithLogger(l *slog.Logger) SessionOption {
	return func(sess *Session) { sess.log = l }
}

// NewSession validates req and allocates the solver buffers for it. The
// request's slices are copied.
func NewSession(req Request, opts ...SessionOption) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		req:    cloneRequest(req),
		solver: fitpack.Native{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := &s.req
	m := len(r.U)
	if r.W == nil {
		r.W = make([]float64, m)
		for i := range r.W {
			r.W[i] = 1
		}
	}
	s.prob = fitpack.Problem{
		Dim: r.Dim,
		U:   r.U,
		X:   r.X,
		W:   r.W,
		UB:  r.U[0],
		UE:  r.U[m-1],
		K:   r.K,
	}
	switch r.Kind {
	case Function:
		s.ws = fitpack.NewCurfitWorkspace(m, r.K)
	case Parametric:
		s.prob.DB, s.prob.IB = flatten(r.Begin, r.Dim)
		s.prob.DE, s.prob.IE = flatten(r.End, r.Dim)
		s.ws = fitpack.NewConcurWorkspace(m, r.K, r.Dim)
	case Closed:
		s.ws = fitpack.NewClocurWorkspace(m, r.K, r.Dim)
	}
	return s, nil
}

func cloneRequest(r Request) Request {
	r.U = slices.Clone(r.U)
	r.X = slices.Clone(r.X)
	r.W = slices.Clone(r.W)
	r.Begin = cloneStack(r.Begin)
	r.End = cloneStack(r.End)
	return r
}

func cloneStack(stack [][]float64) [][]float64 {
	if stack == nil {
		return nil
	}
	out := make([][]float64, len(stack))
	for i, v := range stack {
		out[i] = slices.Clone(v)
	}
	return out
}

// Request returns the validated request of the session.
func (s *Session) Request() Request { return cloneRequest(s.req) }

// Capacity returns the largest number of knots the session's buffers can
// hold.
func (s *Session) Capacity() int { return s.ws.Nest }

// Knots returns the knot count of the last solver call.
func (s *Session) Knots() int { return s.ws.N }

// RMSError returns the root mean square residual of the last solver call.
// It reports false before the first call.
func (s *Session) RMSError() (float64, bool) { return s.rms.value, s.rms.isSet }

// Status returns the solver status of the last call.
func (s *Session) Status() fitpack.Status { return s.status }

// Calls returns the number of solver calls made so far.
func (s *Session) Calls() int { return s.calls }

// LeastSquares fits the weighted least-squares spline on the knot vector
// knots. Its first and last K+1 values only fix the length of the vector:
// the solver replaces them with the ends of the data (or, for closed
// curves, with their periodic extension). The interior knots must lie
// strictly inside the data's parameter range.
func (s *Session) LeastSquares(knots []float64) (*SplineCurve, error) {
	if err := s.checkKnots(knots); err != nil {
		return nil, err
	}
	return s.leastSquares(LeastSquaresMode, knots)
}

// Cardinal fits the weighted least-squares spline on equidistant interior
// knots at the integer multiples of dt strictly inside the data's
// parameter range. At least two such knots are required; a larger dt is
// rejected with [ErrCardinalSpacing].
func (s *Session) Cardinal(dt float64) (*SplineCurve, error) {
	knots, err := s.cardinalKnots(dt)
	if err != nil {
		return nil, err
	}
	if err := s.checkKnots(knots); err != nil {
		return nil, err
	}
	return s.leastSquares(CardinalMode, knots)
}

func (s *Session) cardinalKnots(dt float64) ([]float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, invalid("dt", ErrCardinalSpacing, dt)
	}
	k := s.req.K
	ub, ue := s.prob.UB, s.prob.UE
	j0 := math.Ceil(ub / dt)
	if j0*dt <= ub {
		j0++
	}
	j1 := math.Floor(ue / dt)
	if j1*dt >= ue {
		j1--
	}
	if j1-j0 < 1 {
		return nil, invalid("dt", ErrCardinalSpacing, dt)
	}
	if interior := int(j1-j0) + 1; interior+2*k+2 > s.ws.Nest {
		return nil, invalid("dt", ErrKnotVector, fmt.Sprintf("%d interior knots for %d data points", interior, len(s.req.U)))
	}
	knots := make([]float64, 0, int(j1-j0)+2*k+3)
	for range k + 1 {
		knots = append(knots, ub)
	}
	for j := j0; j <= j1; j++ {
		knots = append(knots, j*dt)
	}
	for range k + 1 {
		knots = append(knots, ue)
	}
	return knots, nil
}

// checkKnots verifies the shape of a fixed knot vector; the solver checks
// that the data can support it.
func (s *Session) checkKnots(knots []float64) error {
	k := s.req.K
	n := len(knots)
	if n < 2*k+2 || n > s.ws.Nest {
		return invalid("knots", ErrKnotVector, n)
	}
	for _, v := range knots {
		if !isFinite(v) {
			return invalid("knots", ErrNonFinite, v)
		}
	}
	for j := k + 1; j < n-k-1; j++ {
		v := knots[j]
		if v <= s.prob.UB || v >= s.prob.UE {
			return invalid("knots", ErrKnotVector, fmt.Sprintf("interior knot %g outside (%g, %g)", v, s.prob.UB, s.prob.UE))
		}
		if j == k+1 {
			continue
		}
		// periodic knots must be distinct
		if prev := knots[j-1]; v < prev || (v == prev && s.req.Kind == Closed) {
			return invalid("knots", ErrKnotVector, fmt.Sprintf("interior knot %d out of order", j))
		}
	}
	return nil
}

func (s *Session) leastSquares(mode Mode, knots []float64) (*SplineCurve, error) {
	s.ws.SetKnots(knots)
	return s.run(mode, fitpack.FixedKnots, 0)
}

// Interpolate fits the spline that passes through every data point.
func (s *Session) Interpolate() (*SplineCurve, error) {
	return s.run(InterpolateMode, fitpack.Smoothing, 0)
}

// Smooth fits the smoothest spline whose root mean square residual does
// not exceed rms, placing the knots from scratch. A zero rms interpolates.
func (s *Session) Smooth(rms float64) (*SplineCurve, error) {
	target, err := s.target(rms)
	if err != nil {
		return nil, err
	}
	return s.run(SmoothMode, fitpack.Smoothing, target)
}

// SmoothMore is like [Session.Smooth] but starts from the knots of the
// previous smoothing call, which is cheaper when rms decreases between
// calls.
func (s *Session) SmoothMore(rms float64) (*SplineCurve, error) {
	target, err := s.target(rms)
	if err != nil {
		return nil, err
	}
	return s.run(SmoothMoreMode, fitpack.Continue, target)
}

// target converts an rms error into the solver's bound on the weighted sum
// of squared residuals.
func (s *Session) target(rms float64) (float64, error) {
	if !(rms >= 0) || math.IsInf(rms, 0) {
		return 0, invalid("rms", ErrSmoothingTarget, rms)
	}
	return float64(len(s.req.U)) * rms * rms, nil
}

func (s *Session) run(mode Mode, opt fitpack.Option, target float64) (*SplineCurve, error) {
	s.prob.Option = opt
	s.prob.S = target
	var fp float64
	var st fitpack.Status
	switch s.req.Kind {
	case Function:
		fp, st = s.solver.FitNonParametric(&s.prob, s.ws)
	case Parametric:
		fp, st = s.solver.FitParametric(&s.prob, s.ws)
	case Closed:
		fp, st = s.solver.FitClosed(&s.prob, s.ws)
	}
	s.calls++
	s.fp, s.status = fp, st
	rms := math.Sqrt(fp / float64(len(s.req.U)))
	s.log.Debug("spline fit",
		"kind", s.req.Kind,
		"mode", mode,
		"status", st,
		"knots", s.ws.N,
		"rms", rms,
	)
	if st.Failed() {
		s.rms.clear()
		return nil, &SolverError{Mode: mode, Status: st, Knots: s.ws.N, RMS: rms}
	}
	s.rms.set(rms)
	return s.curve().withRMS(rms), nil
}

// curve copies the active knots and coefficients out of the workspace,
// dropping the unused slots that follow each coefficient segment.
func (s *Session) curve() *SplineCurve {
	n, k, dim := s.ws.N, s.req.K, s.req.Dim
	nk1 := n - k - 1
	t := slices.Clone(s.ws.T[:n])
	c := make([]float64, 0, dim*nk1)
	for d := range dim {
		c = append(c, s.ws.Coefficients(d, k)...)
	}
	return newSplineCurve(t, c, k, dim)
}
