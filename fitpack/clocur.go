package fitpack

import "math"

// Clocur determines a smooth closed parametric spline curve s(u) of degree
// k in p.Dim dimensions approximating the data points at the parameter
// values p.U with weights p.W. The last data point must coincide with the
// first one; it closes the curve and its weight is not used. The curve is
// periodic with period p.U[m-1]-p.U[0]: all derivatives up to order k-1
// match at the begin and end point.
//
// The modes are those of [Curfit]. For [FixedKnots], the caller supplies
// the interior knots T[K+1:N-K-1]; the boundary knots are derived from the
// period.
func Clocur(p *Problem, ws *Workspace) (float64, Status) {
	m, k, dim := len(p.U), p.K, p.Dim
	k1 := k + 1
	nest := ws.Nest
	switch {
	case p.Option < FixedKnots || p.Option > Continue,
		dim < 1 || dim > MaxDim,
		k < 1 || k > MaxDegree,
		m < 2,
		nest < 2*k1,
		len(p.X) != m*dim || len(p.W) != m,
		!validBuffers(ws, dim, ClocurLwrk(m, k, dim, nest)),
		!validData(p.U, p.W, m-1):
		return 0, InvalidInput
	}
	f := newClosedFit(p, ws)
	if p.Option == FixedKnots {
		n := ws.N
		nper := n - 2*k - 1
		if n < 2*k1 || n > nest || nper > m-1 {
			return 0, InvalidInput
		}
		f.extendKnots(n)
		for j := k; j < n-k1; j++ {
			if ws.T[j+1] <= ws.T[j] {
				return 0, InvalidInput
			}
		}
	} else if p.S < 0 || (p.S == 0 && nest < m+2*k) {
		return 0, InvalidInput
	}
	return f.run()
}

// closedFit is the periodic counterpart of curveFit. It only uses the
// first m-1 data points; the last one closes the curve.
type closedFit struct {
	*curveFit
	per    float64
	um     float64
	a2, g2 []float64
}

func newClosedFit(p *Problem, ws *Workspace) *closedFit {
	m, k, dim, nest := len(p.U), p.K, p.Dim, ws.Nest
	k1, k2 := k+1, k+2
	part := partition{buf: ws.Wrk}
	f := &curveFit{
		opt:    p.Option,
		dim:    dim,
		u:      p.U[:m-1],
		x:      p.X[:(m-1)*dim],
		w:      p.W[:m-1],
		ub:     p.U[0],
		ue:     p.U[m-1],
		k:      k,
		s:      p.S,
		nest:   nest,
		ws:     ws,
		nrdata: ws.Iwrk,
		rhs:    make([]float64, dim),
	}
	cf := &closedFit{curveFit: f, per: p.U[m-1] - p.U[0], um: p.U[m-1]}
	f.fpint = part.take(nest)
	f.z = part.take(nest * dim)
	f.a = part.take(nest * k1)
	cf.a2 = part.take(nest * k)
	f.b = part.take(nest * k2)
	f.g = part.take(nest * k2)
	cf.g2 = part.take(nest * k1)
	f.q = part.take(m * k1)
	return cf
}

// extendKnots sets the boundary knots of a periodic spline with n knots and
// continues the interior knots periodically beyond them.
func (f *closedFit) extendKnots(n int) {
	t, k := f.ws.T, f.k
	t[k] = f.ub
	t[n-k-1] = f.ue
	for j := 1; j <= k; j++ {
		t[k-j] = t[n-k-1-j] - f.per
		t[n-k-1+j] = t[k+j] + f.per
	}
}

// interpolationKnots places the interior knots of the periodic
// interpolating spline at the data points (odd degree) or midway between
// them (even degree).
func (f *closedFit) interpolationKnots() {
	t, u, k := f.ws.T, f.u, f.k
	for i := 1; i < len(u); i++ {
		if k%2 == 1 {
			t[k+i] = u[i]
		} else {
			t[k+i] = (u[i-1] + u[i]) / 2
		}
	}
}

// addRow adds the row h, whose first element belongs to coefficient cs, to
// the periodic system b. Coefficient j and j+nper are the same unknown.
func (f *closedFit) addRow(b *cyclicBand, h []float64, cs int, rhs []float64) {
	var hb, ht [MaxDegree + 2]float64
	j0 := -1
	for i, v := range h {
		col := (cs + i) % b.n
		if col >= b.nb {
			ht[col-b.nb] += v
			continue
		}
		if j0 < 0 {
			j0 = col
		}
		hb[col-j0] += v
	}
	if j0 < 0 {
		j0 = b.nb
	}
	b.rotate(hb[:b.bw], j0, ht[:b.kt], rhs)
}

// solve back-substitutes every dimension into the coefficient buffer and
// repeats the first k coefficients after the nper unknowns.
func (f *closedFit) solve(b *cyclicBand, n int) bool {
	c := f.ws.C
	for d := range f.dim {
		seg := c[d*n : d*n+n-f.k-1]
		if !b.solve(d, seg) {
			return false
		}
		copy(seg[b.n:], seg[:f.k])
	}
	return true
}

func (f *closedFit) run() (float64, Status) {
	ws := f.ws
	m1 := len(f.u)
	k, k1, k2 := f.k, f.k+1, f.k+2
	t := ws.T
	nmin := 2 * k1
	nmax := m1 + 1 + 2*k
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
				f.nrdata[0] = m1 - 1
			}
		}
	}

	var h [MaxDegree + 2]float64
	var obs cyclicBand
search:
	for {
		if interp {
			f.interpolationKnots()
		}
		for range m1 + 1 {
			n := ws.N
			if n == nmin {
				ier = LeastSquaresPolynomial
			}
			nrint := n - nmin + 1
			nk1 := n - k1
			f.extendKnots(n)
			obs = newCyclicBand(f.a, k1, f.a2, k, n-2*k-1, f.z, n)
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

	n := ws.N
	nper := obs.n
	c := ws.C
	text := make([]float64, n+1)
	copy(text, t[:n])
	text[n] = t[n-nper] + f.per
	discontinuity(text, n, k2, f.b, nper)
	p1, f1 := 0.0, fp0-f.s
	p3, f3 := -1.0, fpms
	p := float64(nper) / obs.diagSum()
	ich1, ich3 := false, false
	g := newCyclicBand(f.g, k2, f.g2, k1, nper, c, n)
	for iter := 1; iter <= maxIter; iter++ {
		pinv := 1 / p
		g.copyFrom(&obs, f.dim)
		for it := range nper {
			for i := range k2 {
				h[i] = f.b[it*k2+i] * pinv
			}
			clear(f.rhs)
			f.addRow(&g, h[:k2], it, f.rhs)
		}
		if !f.solve(&g, n) {
			return fp, InvalidInput
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
