package fitpack

// validData reports whether the parameter values are strictly increasing
// and the weights positive, looking at the first m values of w only.
func validData(u, w []float64, m int) bool {
	for i := 1; i < len(u); i++ {
		if u[i] <= u[i-1] {
			return false
		}
	}
	for _, wi := range w[:m] {
		if wi <= 0 {
			return false
		}
	}
	return true
}

func validBuffers(ws *Workspace, dim, lwrk int) bool {
	return ws.Nest > 0 &&
		len(ws.T) >= ws.Nest &&
		len(ws.C) >= ws.Nest*dim &&
		len(ws.Iwrk) >= ws.Nest &&
		len(ws.Wrk) >= lwrk
}

// Curfit determines a smooth spline approximation s(x) of degree k on the
// interval [p.UB, p.UE] to the data points (p.U[i], p.X[i]) with weights
// p.W[i].
//
// With [FixedKnots], it computes the weighted least-squares spline on the
// knots given in ws. With [Smoothing] or [Continue] and p.S > 0, it chooses
// the number and position of the knots such that the spline is as smooth
// as possible while its weighted sum of squared residuals fp does not
// exceed p.S. With p.S = 0, it returns the interpolating spline.
//
// It returns fp and a [Status]; on success, the knots and coefficients are
// in ws.
func Curfit(p *Problem, ws *Workspace) (float64, Status) {
	m, k := len(p.U), p.K
	k1 := k + 1
	nest := ws.Nest
	switch {
	case p.Option < FixedKnots || p.Option > Continue,
		p.Dim != 1,
		k < 1 || k > MaxDegree,
		m < k1,
		nest < 2*k1,
		len(p.X) != m || len(p.W) != m,
		!validBuffers(ws, 1, CurfitLwrk(m, k, nest)),
		p.UB > p.U[0] || p.UE < p.U[m-1],
		!validData(p.U, p.W, m):
		return 0, InvalidInput
	}
	if p.Option == FixedKnots {
		n := ws.N
		if n < 2*k1 || n > nest {
			return 0, InvalidInput
		}
		for j := range k1 {
			ws.T[j] = p.UB
			ws.T[n-1-j] = p.UE
		}
		if !checkKnots(p.U, ws.T, n, k, 0, 0) {
			return 0, InvalidInput
		}
	} else if p.S < 0 || (p.S == 0 && nest < m+k1) {
		return 0, InvalidInput
	}
	return newCurveFit(p, ws, p.X, 0, 0).run()
}
