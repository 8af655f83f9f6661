package fitpack

// MaxDegree is the largest spline degree the fitting routines accept.
const MaxDegree = 5

// MaxDim is the largest curve dimension the parametric routines accept.
const MaxDim = 10

// Option selects the fitting mode, FITPACK's iopt.
type Option int

const (
	// FixedKnots computes a weighted least-squares spline on the knots
	// supplied in the workspace.
	FixedKnots Option = -1
	// Smoothing computes a smoothing spline, placing knots from scratch.
	Smoothing Option = 0
	// Continue computes a smoothing spline, starting from the knots found
	// by the previous call on the same workspace.
	Continue Option = 1
)

// Problem holds the data of a fit. The routines never modify it.
type Problem struct {
	Option Option
	// Dim is the number of coordinates per data point. Curfit requires 1.
	Dim int
	// U holds the m strictly increasing parameter values (x for Curfit).
	U []float64
	// X holds m*Dim coordinates, point-major: X[i*Dim+j] is coordinate j
	// of point i.
	X []float64
	// W holds m positive weights.
	W []float64
	// UB and UE bound the approximation interval of Curfit. Parametric and
	// closed fits use the first and last parameter value.
	UB, UE float64
	// K is the spline degree.
	K int
	// S is the smoothing target, the upper bound of the weighted sum of
	// squared residuals. It is ignored for FixedKnots.
	S float64
	// IB and IE are the number of derivative constraints at the begin and
	// end point of a parametric curve; derivative orders 0 through IB-1
	// are fixed.
	IB, IE int
	// DB and DE hold the constrained derivatives, Dim values per order,
	// lowest order first.
	DB, DE []float64
}

func (p *Problem) m() int { return len(p.U) }

// Workspace holds the knots, coefficients and scratch memory of a fit. It
// is reused across calls so that [Continue] can pick up where the previous
// call stopped.
type Workspace struct {
	// Nest is the knot capacity.
	Nest int
	// N is the number of active knots. For FixedKnots, the caller sets N
	// and the interior knots T[K+1:N-K-1].
	N int
	// T holds Nest knots.
	T []float64
	// C holds Nest*Dim coefficients; dimension d starts at d*N.
	C []float64
	// Wrk is floating point scratch space of at least the size returned by
	// the Lwrk function of the routine.
	Wrk []float64
	// Iwrk is integer scratch space of at least Nest values.
	Iwrk []int
	// XX and CP are used by Concur only: the data minus the constraint
	// polynomial, and the Bézier coefficients of that polynomial.
	XX []float64
	CP []float64
}

// CurfitNest returns the knot capacity needed by Curfit for m data points
// and degree k, enough for an interpolating spline.
func CurfitNest(m, k int) int { return m + k + 1 }

// CurfitLwrk returns the scratch size needed by Curfit.
func CurfitLwrk(m, k, nest int) int { return m*(k+1) + nest*(7+3*k) }

// ConcurNest returns the knot capacity needed by Concur for m data points
// and degree k, enough for an interpolating curve with any admissible
// number of derivative constraints.
func ConcurNest(m, k int) int { return m + k + 1 + 2*(k-1) }

// ConcurLwrk returns the scratch size needed by Concur.
func ConcurLwrk(m, k, dim, nest int) int { return m*(k+1) + nest*(6+dim+3*k) }

// ClocurNest returns the knot capacity needed by Clocur for m data points
// and degree k, enough for a periodic interpolating curve.
func ClocurNest(m, k int) int { return m + 2*k }

// ClocurLwrk returns the scratch size needed by Clocur.
func ClocurLwrk(m, k, dim, nest int) int { return m*(k+1) + nest*(7+dim+5*k) }

func newWorkspace(nest, dim, lwrk int) *Workspace {
	return &Workspace{
		Nest: nest,
		T:    make([]float64, nest),
		C:    make([]float64, nest*dim),
		Wrk:  make([]float64, lwrk),
		Iwrk: make([]int, nest),
	}
}

// NewCurfitWorkspace allocates a workspace for Curfit.
func NewCurfitWorkspace(m, k int) *Workspace {
	nest := CurfitNest(m, k)
	return newWorkspace(nest, 1, CurfitLwrk(m, k, nest))
}

// NewConcurWorkspace allocates a workspace for Concur.
func NewConcurWorkspace(m, k, dim int) *Workspace {
	nest := ConcurNest(m, k)
	ws := newWorkspace(nest, dim, ConcurLwrk(m, k, dim, nest))
	ws.XX = make([]float64, m*dim)
	ws.CP = make([]float64, 2*(k+1)*dim)
	return ws
}

// NewClocurWorkspace allocates a workspace for Clocur.
func NewClocurWorkspace(m, k, dim int) *Workspace {
	nest := ClocurNest(m, k)
	return newWorkspace(nest, dim, ClocurLwrk(m, k, dim, nest))
}

// SetKnots copies a full knot vector into the workspace for a FixedKnots
// fit. The boundary knots are overwritten by the fitting routine.
func (ws *Workspace) SetKnots(t []float64) bool {
	if len(t) > ws.Nest {
		return false
	}
	ws.N = copy(ws.T, t)
	return true
}

// Knots returns the active knots. The slice aliases the workspace.
func (ws *Workspace) Knots() []float64 { return ws.T[:ws.N] }

// Coefficients returns the nk1 = N-K-1 active coefficients of dimension d.
// The slice aliases the workspace.
func (ws *Workspace) Coefficients(d, k int) []float64 {
	return ws.C[d*ws.N : d*ws.N+ws.N-k-1]
}

// partition carves consecutive slices out of buf.
type partition struct {
	buf []float64
	off int
}

func (p *partition) take(n int) []float64 {
	s := p.buf[p.off : p.off+n : p.off+n]
	p.off += n
	return s
}
