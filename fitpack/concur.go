package fitpack

// Concur determines a smooth parametric spline curve s(u) of degree k in
// p.Dim dimensions approximating the data points (p.X[i*Dim:(i+1)*Dim])
// at the parameter values p.U[i] with weights p.W[i]. The curve starts at
// p.U[0] and ends at p.U[m-1].
//
// The derivatives of orders 0 through p.IB-1 at the begin point are fixed
// to p.DB, those of orders 0 through p.IE-1 at the end point to p.DE; at
// most (k+1)/2 constraints are allowed at each end. The degree must be odd.
//
// The modes are those of [Curfit]. The workspace must come from
// [NewConcurWorkspace] or be sized equivalently, including ws.XX and
// ws.CP.
func Concur(p *Problem, ws *Workspace) (float64, Status) {
	m, k, dim := len(p.U), p.K, p.Dim
	k1 := k + 1
	kk := k1 / 2
	nest := ws.Nest
	ib1, ie1 := max(0, p.IB-1), max(0, p.IE-1)
	switch {
	case p.Option < FixedKnots || p.Option > Continue,
		dim < 1 || dim > MaxDim,
		k < 1 || k > MaxDegree || k%2 == 0,
		p.IB < 0 || p.IB > kk || p.IE < 0 || p.IE > kk,
		m < 2 || m < k1-ib1-ie1,
		nest < 2*k1,
		len(p.X) != m*dim || len(p.W) != m,
		len(p.DB) < p.IB*dim || len(p.DE) < p.IE*dim,
		len(ws.XX) < m*dim || len(ws.CP) < 2*k1*dim,
		!validBuffers(ws, dim, ConcurLwrk(m, k, dim, nest)),
		!validData(p.U, p.W, m):
		return 0, InvalidInput
	}
	ub, ue := p.U[0], p.U[m-1]
	if p.Option == FixedKnots {
		n := ws.N
		if n < 2*k1 || n > nest {
			return 0, InvalidInput
		}
		for j := range k1 {
			ws.T[j] = ub
			ws.T[n-1-j] = ue
		}
		if !checkKnots(p.U, ws.T, n, k, p.IB, p.IE) {
			return 0, InvalidInput
		}
	} else if p.S < 0 || (p.S == 0 && nest < m+k1+ib1+ie1) {
		return 0, InvalidInput
	}

	cp := ws.CP[:k1*dim]
	constraintPolynomial(k, dim, ub, ue, p.IB, p.DB, p.IE, p.DE, cp)
	var tp [2 * (MaxDegree + 1)]float64
	for j := range k1 {
		tp[j] = ub
		tp[k1+j] = ue
	}
	Curev(dim, tp[:2*k1], cp, k, p.U, ws.XX)
	for i, x := range p.X {
		ws.XX[i] = x - ws.XX[i]
	}

	q := *p
	q.UB, q.UE = ub, ue
	f := newCurveFit(&q, ws, ws.XX[:m*dim], p.IB, p.IE)
	fp, st := f.run()
	if st != InvalidInput {
		f.addPolynomial(cp)
	}
	return fp, st
}

// constraintPolynomial computes the Bézier coefficients cp[d*(k+1):] of the
// polynomial curve of degree k on [ub, ue] whose derivatives of orders
// 0..ib-1 at ub equal db and of orders 0..ie-1 at ue equal de. The
// remaining coefficients are zero.
func constraintPolynomial(k, dim int, ub, ue float64, ib int, db []float64, ie int, de []float64, cp []float64) {
	k1 := k + 1
	h := ue - ub
	clear(cp)
	for d := range dim {
		c := cp[d*k1 : (d+1)*k1]
		for j := range ib {
			// forward difference of order j at the first coefficient
			v := db[j*dim+d] * diffScale(k, j, h)
			bin := 1.0
			for i := range j {
				if (j-i)%2 == 1 {
					v += bin * c[i]
				} else {
					v -= bin * c[i]
				}
				bin = bin * float64(j-i) / float64(i+1)
			}
			c[j] = v
		}
		for j := range ie {
			// backward difference of order j at the last coefficient
			v := de[j*dim+d] * diffScale(k, j, h)
			bin := 1.0
			for i := range j {
				if i%2 == 1 {
					v += bin * c[k-i]
				} else {
					v -= bin * c[k-i]
				}
				bin = bin * float64(j-i) / float64(i+1)
			}
			if j%2 == 1 {
				v = -v
			}
			c[k-j] = v
		}
	}
}

// diffScale converts a derivative of order j of a Bézier polynomial of
// degree k on an interval of length h into the difference of order j of its
// coefficients: h^j (k-j)!/k!.
func diffScale(k, j int, h float64) float64 {
	f := 1.0
	for i := range j {
		f *= h / float64(k-i)
	}
	return f
}

// addPolynomial adds the Bézier polynomial cp to the fitted spline, after
// expressing it on the spline's knots by knot insertion.
func (f *curveFit) addPolynomial(cp []float64) {
	ws := f.ws
	n, k := ws.N, f.k
	k1 := k + 1
	tt := f.g[:n]
	cc := f.g[n : 2*n]
	for d := range f.dim {
		for j := range k1 {
			tt[j] = f.ub
			tt[k1+j] = f.ue
		}
		copy(cc, cp[d*k1:(d+1)*k1])
		nn := 2 * k1
		for j := k1; j < n-k1; j++ {
			insertKnot(tt, cc, nn, k, ws.T[j], tt, cc)
			nn++
		}
		c := ws.C[d*n : d*n+n-k1]
		for i := range c {
			c[i] += cc[i]
		}
	}
}
