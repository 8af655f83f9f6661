package fitpack

import "math"

const (
	// tolerance is the relative accuracy of the smoothing target: a fit is
	// accepted once |fp-s| < tolerance*s.
	tolerance = 0.001
	// maxIter bounds the iterations of the smoothing parameter search.
	maxIter = 20

	con1 = 0.1
	con9 = 0.9
	con4 = 0.04
)

// curveFit is the core of Curfit and Concur: a weighted least-squares or
// smoothing spline fit of dim coordinate functions sharing one knot vector.
// The first ib and the last ie coefficients of every coordinate are fixed
// at zero; Concur subtracts a polynomial carrying the end point
// derivatives from the data beforehand.
type curveFit struct {
	opt    Option
	dim    int
	u, x   []float64
	w      []float64
	ub, ue float64
	k      int
	s      float64
	ib, ie int
	nest   int

	ws     *Workspace
	fpint  []float64
	z      []float64
	a      []float64
	b      []float64
	g      []float64
	q      []float64
	nrdata []int
	rhs    []float64
}

func newCurveFit(p *Problem, ws *Workspace, x []float64, ib, ie int) *curveFit {
	m, k, dim, nest := len(p.U), p.K, p.Dim, ws.Nest
	k1, k2 := k+1, k+2
	part := partition{buf: ws.Wrk}
	f := &curveFit{
		opt:    p.Option,
		dim:    dim,
		u:      p.U,
		x:      x,
		w:      p.W,
		ub:     p.UB,
		ue:     p.UE,
		k:      k,
		s:      p.S,
		ib:     ib,
		ie:     ie,
		nest:   nest,
		ws:     ws,
		nrdata: ws.Iwrk,
		rhs:    make([]float64, dim),
	}
	f.fpint = part.take(nest)
	f.z = part.take(nest * dim)
	f.a = part.take(nest * k1)
	f.b = part.take(nest * k2)
	f.g = part.take(nest * k2)
	f.q = part.take(m * k1)
	return f
}

// nmax returns the number of knots of the interpolating spline.
func (f *curveFit) nmax() int {
	return len(f.u) + f.k + 1 + max(0, f.ib-1) + max(0, f.ie-1)
}

// interpolationKnots places the interior knots of the interpolating spline
// at data points (odd degree) or midway between them (even degree).
func (f *curveFit) interpolationKnots() {
	t, u, k := f.ws.T, f.u, f.k
	ib1 := max(0, f.ib-1)
	mk1 := len(u) - k - 1 + ib1 + max(0, f.ie-1)
	j := k/2 + 1 - ib1
	for l := range mk1 {
		if k%2 == 1 {
			t[k+1+l] = u[j+l]
		} else {
			t[k+1+l] = (u[j+l] + u[j+l-1]) / 2
		}
	}
}

// addRow adds the row h, whose first element belongs to coefficient cs, to
// the system b of the free coefficients.
func (f *curveFit) addRow(b *band, h []float64, cs int, rhs []float64) {
	j0 := cs - f.ib
	if j0 < 0 {
		if -j0 >= len(h) {
			return
		}
		h = h[-j0:]
		j0 = 0
	}
	if j0 >= b.n {
		return
	}
	h = h[:min(len(h), b.n-j0)]
	b.rotate(h, j0, rhs)
}

// residual returns the squared weighted residual of data point it, whose
// k+1 non-zero B-splines start at coefficient cs.
func (f *curveFit) residual(it, cs, n int) float64 {
	k1 := f.k + 1
	c := f.ws.C
	q := f.q[it*k1 : (it+1)*k1]
	wi := f.w[it]
	var term float64
	for d := range f.dim {
		var sp float64
		off := d*n + cs
		for j := range k1 {
			sp += c[off+j] * q[j]
		}
		r := wi * (sp - f.x[it*f.dim+d])
		term += r * r
	}
	return term
}

// sumSquares returns the weighted sum of squared residuals of the current
// coefficients. If fpint is non-nil, the sum per knot interval is stored in
// it, splitting the residual of a point at a knot between both intervals.
func (f *curveFit) sumSquares(n int, fpint []float64) float64 {
	t := f.ws.T
	k1 := f.k + 1
	nk1 := n - k1
	var fp, fpart float64
	i := 0
	l := k1
	for it, ui := range f.u {
		isNew := false
		if ui >= t[l] && l < nk1 {
			isNew = true
			l++
		}
		term := f.residual(it, l-k1, n)
		fp += term
		if fpint == nil {
			continue
		}
		fpart += term
		if isNew {
			store := term / 2
			fpint[i] = fpart - store
			i++
			fpart = store
		}
	}
	if fpint != nil {
		fpint[n-2*k1] = fpart
	}
	return fp
}

// solve back-substitutes the free coefficients of every dimension into the
// coefficient buffer and zeroes the fixed ones.
func (f *curveFit) solve(b *band, n int) bool {
	c := f.ws.C
	nk1 := n - f.k - 1
	for d := range f.dim {
		seg := c[d*n : d*n+nk1]
		clear(seg[:f.ib])
		clear(seg[nk1-f.ie:])
		if !b.solve(d, seg[f.ib:]) {
			return false
		}
	}
	return true
}

func (f *curveFit) run() (float64, Status) {
	ws := f.ws
	m := len(f.u)
	k, k1, k2 := f.k, f.k+1, f.k+2
	t := ws.T
	nmin := 2 * k1
	nmax := f.nmax()
	acc := tolerance * f.s

	var fp, fp0, fpold, fpms float64
	nplus := 0
	ier := OK
	interp := false
	if f.opt >= 0 {
		if f.s == 0 {
			ws.N = nmax
			interp = true
		} else {
			fresh := f.opt == Smoothing || ws.N <= nmin || ws.N > f.nest
			if !fresh {
				fp0 = f.fpint[ws.N-1]
				fpold = f.fpint[ws.N-2]
				nplus = f.nrdata[ws.N-1]
				fresh = fp0 <= f.s
			}
			if fresh {
				ws.N = nmin
				fpold = 0
				nplus = 0
				f.nrdata[0] = m - 2
			}
		}
	}

	var h [MaxDegree + 2]float64
	var obs band
search:
	for {
		if interp {
			f.interpolationKnots()
		}
		for range m {
			n := ws.N
			if n == nmin {
				ier = LeastSquaresPolynomial
			}
			nrint := n - nmin + 1
			nk1 := n - k1
			for j := range k1 {
				t[j] = f.ub
				t[n-1-j] = f.ue
			}
			obs = band{a: f.a, bw: k1, n: nk1 - f.ib - f.ie, z: f.z, stride: n}
			obs.reset(f.dim)
			fp = 0
			l := k
			for it, ui := range f.u {
				wi := f.w[it]
				for d := range f.dim {
					f.rhs[d] = f.x[it*f.dim+d] * wi
				}
				for ui >= t[l+1] && l != nk1-1 {
					l++
				}
				bspl(t, k, ui, l, h[:])
				q := f.q[it*k1 : (it+1)*k1]
				for i := range k1 {
					q[i] = h[i]
					h[i] *= wi
				}
				f.addRow(&obs, h[:k1], l-k, f.rhs)
				for _, r := range f.rhs {
					fp += r * r
				}
			}
			if ier == LeastSquaresPolynomial {
				fp0 = fp
			}
			f.fpint[n-1] = fp0
			f.fpint[n-2] = fpold
			f.nrdata[n-1] = nplus
			if !f.solve(&obs, n) {
				return fp, InvalidInput
			}
			if f.opt == FixedKnots {
				return fp, ier
			}
			fpms = fp - f.s
			if math.Abs(fpms) < acc {
				return fp, ier
			}
			if fpms < 0 {
				break search
			}
			if n == nmax {
				return fp, Interpolating
			}
			if n == f.nest {
				return fp, OutOfStorage
			}
			if ier == OK {
				npl1 := 2 * nplus
				if fpold-fp > acc {
					npl1 = int(float64(nplus) * fpms / (fpold - fp))
				}
				nplus = min(2*nplus, max(npl1, nplus/2, 1))
			} else {
				nplus = 1
				ier = OK
			}
			fpold = fp
			f.sumSquares(n, f.fpint)
			for range nplus {
				var ok bool
				ws.N, nrint, ok = addKnot(f.u, t, ws.N, nrint, f.fpint, f.nrdata)
				if !ok {
					break
				}
				if ws.N == nmax {
					interp = true
					continue search
				}
				if ws.N == f.nest {
					break
				}
			}
		}
		break
	}

	if ier == LeastSquaresPolynomial {
		return fp, ier
	}

	// Find the smoothing parameter p such that the spline minimizing
	// fp + (1/p) * sum of squared jumps of the k-th derivative has fp = s.
	n := ws.N
	nk1 := n - k1
	n8 := n - nmin
	c := ws.C
	discontinuity(t, n, k2, f.b, n8)
	p1, f1 := 0.0, fp0-f.s
	p3, f3 := -1.0, fpms
	p := float64(obs.n) / obs.diagSum()
	ich1, ich3 := false, false
	g := band{a: f.g, bw: k2, n: obs.n, z: c[f.ib:], stride: n}
	for iter := 1; iter <= maxIter; iter++ {
		pinv := 1 / p
		for j := range obs.n {
			copy(g.a[j*k2:j*k2+k1], obs.a[j*k1:(j+1)*k1])
			g.a[j*k2+k1] = 0
		}
		for d := range f.dim {
			copy(c[d*n+f.ib:d*n+f.ib+obs.n], f.z[d*n:d*n+obs.n])
		}
		for it := range n8 {
			for i := range k2 {
				h[i] = f.b[it*k2+i] * pinv
			}
			clear(f.rhs)
			f.addRow(&g, h[:k2], it, f.rhs)
		}
		for d := range f.dim {
			seg := c[d*n : d*n+nk1]
			if !g.solve(d, seg[f.ib:]) {
				return fp, InvalidInput
			}
			clear(seg[:f.ib])
			clear(seg[nk1-f.ie:])
		}
		fp = f.sumSquares(n, nil)
		fpms = fp - f.s
		if math.Abs(fpms) < acc {
			return fp, OK
		}
		if iter == maxIter {
			return fp, IterationLimit
		}
		p2, f2 := p, fpms
		if !ich3 {
			if f2-f3 <= acc {
				// Our initial choice of p is too large.
				p3, f3 = p2, f2
				p *= con4
				if p <= p1 {
					p = p1*con9 + p2*con1
				}
				continue
			}
			if f2 < 0 {
				ich3 = true
			}
		}
		if !ich1 {
			if f1-f2 <= acc {
				// Our initial choice of p is too small.
				p1, f1 = p2, f2
				p /= con4
				if p3 < 0 {
					continue
				}
				if p >= p3 {
					p = p2*con1 + p3*con9
				}
				continue
			}
			if f2 > 0 {
				ich1 = true
			}
		}
		if f2 >= f1 || f2 <= f3 {
			return fp, ToleranceTooSmall
		}
		p = rational(&p1, &f1, p2, f2, &p3, &f3)
	}
	return fp, IterationLimit
}
