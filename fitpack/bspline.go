package fitpack

// bspl evaluates the k+1 non-zero B-splines of degree k at x, where
// t[l] <= x < t[l+1], using the stable recurrence of de Boor and Cox. The
// values are stored in h[:k+1]; h[j] belongs to coefficient l-k+j.
func bspl(t []float64, k int, x float64, l int, h []float64) {
	var hh [MaxDegree + 1]float64
	h[0] = 1
	for j := 1; j <= k; j++ {
		copy(hh[:j], h[:j])
		h[0] = 0
		for i := 1; i <= j; i++ {
			li := l + i
			lj := li - j
			f := hh[i-1] / (t[li] - t[lj])
			h[i-1] += f * (t[li] - x)
			h[i] = f * (x - t[lj])
		}
	}
}

// Splev evaluates the spline of degree k with knots t and coefficients c at
// the points x, storing the values in y. Points outside the interval
// [t[k], t[len(t)-k-1]] are clamped to it. x must be non-decreasing.
func Splev(t, c []float64, k int, x, y []float64) Status {
	return Curev(1, t, c, k, x, y)
}

// Curev evaluates the spline curve of degree k with knots t at the
// parameter values u. c holds dim segments of equal length, at least
// len(t)-k-1 each. The result is stored point-major in xy, which must hold
// len(u)*dim values. u must be non-decreasing; values outside the knot
// range are clamped.
func Curev(dim int, t, c []float64, k int, u, xy []float64) Status {
	n := len(t)
	k1 := k + 1
	nk1 := n - k1
	if k < 0 || k > MaxDegree || dim < 1 || nk1 < k1 || len(xy) < len(u)*dim || len(c) < dim*nk1 {
		return InvalidInput
	}
	for i := 1; i < len(u); i++ {
		if u[i] < u[i-1] {
			return InvalidInput
		}
	}
	stride := len(c) / dim
	tb := t[k]
	te := t[nk1]
	var h [MaxDegree + 1]float64
	l := k
	for i, arg := range u {
		arg = min(max(arg, tb), te)
		for arg >= t[l+1] && l != nk1-1 {
			l++
		}
		bspl(t, k, arg, l, h[:])
		ll := l - k
		for d := range dim {
			sp := 0.0
			off := d*stride + ll
			for j := range k1 {
				sp += c[off+j] * h[j]
			}
			xy[i*dim+d] = sp
		}
	}
	return OK
}

// Insert inserts the knot x into the spline curve of degree k with knots t
// and coefficients c, dim segments of len(t)-k-1 values each, using
// Boehm's algorithm. The curve is unchanged on [t[k], t[len(t)-k-1]], which
// must contain x. The knots and coefficients are returned in new slices.
func Insert(dim int, t, c []float64, k int, x float64) ([]float64, []float64, Status) {
	n := len(t)
	nk1 := n - k - 1
	if k < 1 || k > MaxDegree || dim < 1 || nk1 < k+1 || len(c) != dim*nk1 || !(x >= t[k] && x <= t[nk1]) {
		return nil, nil, InvalidInput
	}
	tt := make([]float64, n+1)
	cc := make([]float64, dim*(nk1+1))
	for d := range dim {
		insertKnot(t, c[d*nk1:(d+1)*nk1], n, k, x, tt, cc[d*(nk1+1):(d+1)*(nk1+1)])
	}
	return tt, cc, OK
}

// insertKnot inserts the knot x into the spline with n knots t and
// coefficients c (Boehm's algorithm). The new knots are written to tt and
// the new coefficients to cc; tt needs room for n+1 values, cc for n-k
// values. x must satisfy t[k] <= x <= t[n-k-1]. tt and cc may alias t and
// c: the coefficients are updated from the top down before the knots move.
func insertKnot(t, c []float64, n, k int, x float64, tt, cc []float64) {
	nk1 := n - k - 1
	l := k
	for x >= t[l+1] && l < nk1-1 {
		l++
	}
	for i := nk1; i > l; i-- {
		cc[i] = c[i-1]
	}
	for i := l; i > l-k; i-- {
		a := (x - t[i]) / (t[i+k] - t[i])
		cc[i] = a*c[i] + (1-a)*c[i-1]
	}
	copy(cc[:l-k+1], c[:l-k+1])
	copy(tt[l+2:n+1], t[l+1:n])
	copy(tt[:l+1], t[:l+1])
	tt[l+1] = x
}
