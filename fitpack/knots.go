package fitpack

// addKnot locates an additional knot for a spline of degree k with n knots
// and nrint knot intervals. The new knot is placed at a data point inside the
// interval with the largest residual sum fpint among the intervals that
// still contain data points; nrdata holds the number of data points strictly
// inside each interval. It reports false if no interval holds a data point.
func addKnot(x, t []float64, n, nrint int, fpint []float64, nrdata []int) (int, int, bool) {
	k := (n - nrint - 1) / 2
	fpmax := 0.0
	number, maxpt, maxbeg := -1, 0, 0
	jbegin := 0
	for j := range nrint {
		jpoint := nrdata[j]
		if fpmax < fpint[j] && jpoint != 0 {
			fpmax = fpint[j]
			number = j
			maxpt = jpoint
			maxbeg = jbegin
		}
		jbegin += jpoint + 1
	}
	if number < 0 {
		return n, nrint, false
	}
	ihalf := maxpt/2 + 1
	nrx := maxbeg + ihalf
	next := number + 1
	for jj := nrint - 1; jj >= next; jj-- {
		fpint[jj+1] = fpint[jj]
		nrdata[jj+1] = nrdata[jj]
		t[jj+k+1] = t[jj+k]
	}
	nrdata[number] = ihalf - 1
	nrdata[next] = maxpt - ihalf
	am := float64(maxpt)
	fpint[number] = fpmax * float64(nrdata[number]) / am
	fpint[next] = fpmax * float64(nrdata[next]) / am
	t[next+k] = x[nrx]
	return n + 1, nrint + 1, true
}

// discontinuity computes the discontinuity jumps of the k-th derivative of
// the B-splines of degree k = k2-2 at the knots t[k2-1:n-k2+1]. Row r of b,
// b[r*k2:(r+1)*k2], holds the jumps of the k2 B-splines starting at
// coefficient r at knot t[r+k2-1]. The rows are scaled so that the
// smoothing parameter is independent of the interval length. nrows rows are
// computed; periodic callers pass one more than the number of interior knots
// together with a periodically extended knot vector.
func discontinuity(t []float64, n, k2 int, b []float64, nrows int) {
	k1 := k2 - 1
	k := k1 - 1
	nk1 := n - k1
	fac := float64(nk1-k) / (t[nk1] - t[k])
	var h [2 * (MaxDegree + 1)]float64
	for r := range nrows {
		l := r + k1
		for j := 1; j <= k1; j++ {
			h[j-1] = t[l] - t[l+j-k2]
			h[j-1+k1] = t[l] - t[l+j]
		}
		lp := r
		for j := range k2 {
			prod := h[j]
			for i := 1; i <= k; i++ {
				prod *= h[j+i] * fac
			}
			b[r*k2+j] = (t[lp+k1] - t[lp]) / prod
			lp++
		}
	}
}

// rational returns the zero of the rational function r(p) = (u*p+v)/(p+w)
// through (p1,f1), (p2,f2) and (p3,f3), where p3 < 0 stands for infinity.
// It then moves p1 or p3 to p2 such that f1 > 0 and f3 < 0 remain true.
func rational(p1, f1 *float64, p2, f2 float64, p3, f3 *float64) float64 {
	var p float64
	if *p3 > 0 {
		h1 := *f1 * (f2 - *f3)
		h2 := f2 * (*f3 - *f1)
		h3 := *f3 * (*f1 - f2)
		p = -(*p1*p2*h3 + p2**p3*h1 + *p3**p1*h2) / (*p1*h1 + p2*h2 + *p3*h3)
	} else {
		p = (*p1*(*f1-*f3)*f2 - p2*(f2-*f3)**f1) / ((*f1 - f2) * *f3)
	}
	if f2 < 0 {
		*p3, *f3 = p2, f2
	} else {
		*p1, *f1 = p2, f2
	}
	return p
}

// checkKnots verifies that the knots t of a spline of degree k satisfy the
// conditions for a unique weighted least-squares fit to the data points u,
// where the first ib and the last ie coefficients are fixed:
//
//   - k+1 <= nk1 <= m+ib+ie, with nk1 = n-k-1 coefficients
//   - t[0] <= ... <= t[k] and t[nk1] <= ... <= t[n-1]
//   - t[k] < t[k+1] < ... < t[nk1]
//   - t[k] <= u[0] and u[m-1] <= t[nk1]
//   - the Schoenberg-Whitney conditions hold for the free coefficients:
//     there is a strictly increasing subset of data points u[i_j] with
//     t[j] < u[i_j] < t[j+k+1].
func checkKnots(u, t []float64, n, k, ib, ie int) bool {
	m := len(u)
	k1 := k + 1
	nk1 := n - k1
	if nk1 < k1 || nk1 > m+ib+ie {
		return false
	}
	for j := range k {
		if t[j] > t[j+1] || t[n-1-j] < t[n-2-j] {
			return false
		}
	}
	for j := k; j < nk1; j++ {
		if t[j+1] <= t[j] {
			return false
		}
	}
	if u[0] < t[k] || u[m-1] > t[nk1] {
		return false
	}
	i := -1
	for j := ib; j < nk1-ie; j++ {
		i++
		for i < m && u[i] <= t[j] && j != 0 {
			i++
		}
		if i >= m {
			return false
		}
		if u[i] >= t[j+k1] && j != nk1-1 {
			return false
		}
	}
	return true
}
