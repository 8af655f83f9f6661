package fitpack

import "math"

// givens computes the Givens rotation that annihilates piv against the
// diagonal element *ww, which is replaced by the rotated value.
func givens(piv float64, ww *float64) (cos, sin float64) {
	dd := math.Hypot(piv, *ww)
	cos = *ww / dd
	sin = piv / dd
	*ww = dd
	return cos, sin
}

// rota applies a Givens rotation to the pair (a, b).
func rota(cos, sin, a, b float64) (float64, float64) {
	return cos*a - sin*b, cos*b + sin*a
}

// band is an upper triangular matrix of order n with bandwidth bw, stored
// row by row: a[j*bw+i] is the element in row j, column j+i. The right-hand
// sides of dim systems are stored in z, dimension d at z[d*stride:].
type band struct {
	a      []float64
	bw     int
	n      int
	z      []float64
	stride int
}

// rotate adds the observation row h, whose first element belongs to column
// j0 and which is at most bw long, to the triangular system, updating the
// right-hand sides. On return, rhs holds the residuals of the row after all
// rotations. h is clobbered.
func (b *band) rotate(h []float64, j0 int, rhs []float64) {
	for i := range h {
		j := j0 + i
		if j >= b.n {
			break
		}
		piv := h[i]
		if piv == 0 {
			continue
		}
		row := b.a[j*b.bw : (j+1)*b.bw]
		cos, sin := givens(piv, &row[0])
		for d := range rhs {
			rhs[d], b.z[d*b.stride+j] = rota(cos, sin, rhs[d], b.z[d*b.stride+j])
		}
		for i1 := i + 1; i1 < len(h); i1++ {
			h[i1], row[i1-i] = rota(cos, sin, h[i1], row[i1-i])
		}
	}
}

// solve back-substitutes the system for dimension d into c. It reports
// false if the matrix is singular.
func (b *band) solve(d int, c []float64) bool {
	z := b.z[d*b.stride:]
	for j := b.n - 1; j >= 0; j-- {
		row := b.a[j*b.bw : (j+1)*b.bw]
		if row[0] == 0 {
			return false
		}
		s := z[j]
		for i := 1; i < b.bw && j+i < b.n; i++ {
			s -= row[i] * c[j+i]
		}
		c[j] = s / row[0]
	}
	return true
}

func (b *band) reset(dim int) {
	clear(b.a[:b.n*b.bw])
	for d := range dim {
		clear(b.z[d*b.stride : d*b.stride+b.n])
	}
}

// diagSum returns the sum of the diagonal elements.
func (b *band) diagSum() float64 {
	var s float64
	for j := range b.n {
		s += b.a[j*b.bw]
	}
	return s
}

// cyclicBand is the triangular factor of a periodic least-squares system of
// order n. Columns below nb = n-kt form a band of width bw; the last kt
// columns are dense, stored in tail with row stride ts. Rows at or beyond
// nb only have tail elements.
type cyclicBand struct {
	a      []float64
	bw     int
	tail   []float64
	ts     int
	kt     int
	nb     int
	n      int
	z      []float64
	stride int
}

func newCyclicBand(a []float64, bw int, tail []float64, ts, n int, z []float64, stride int) cyclicBand {
	kt := min(ts, n)
	return cyclicBand{a: a, bw: bw, tail: tail, ts: ts, kt: kt, nb: n - kt, n: n, z: z, stride: stride}
}

// rotate adds an observation row to the system. hb holds the band part,
// starting at column j0; ht holds the coefficients of the kt tail columns.
// Both are clobbered.
func (b *cyclicBand) rotate(hb []float64, j0 int, ht []float64, rhs []float64) {
	for i := range b.bw {
		j := j0 + i
		if j >= b.nb {
			break
		}
		piv := hb[i]
		if piv == 0 {
			continue
		}
		row := b.a[j*b.bw : (j+1)*b.bw]
		tail := b.tail[j*b.ts : j*b.ts+b.kt]
		cos, sin := givens(piv, &row[0])
		for d := range rhs {
			rhs[d], b.z[d*b.stride+j] = rota(cos, sin, rhs[d], b.z[d*b.stride+j])
		}
		for i1 := i + 1; i1 < b.bw; i1++ {
			hb[i1], row[i1-i] = rota(cos, sin, hb[i1], row[i1-i])
		}
		for t := range b.kt {
			ht[t], tail[t] = rota(cos, sin, ht[t], tail[t])
		}
	}
	for t := range b.kt {
		piv := ht[t]
		if piv == 0 {
			continue
		}
		j := b.nb + t
		tail := b.tail[j*b.ts : j*b.ts+b.kt]
		cos, sin := givens(piv, &tail[t])
		for d := range rhs {
			rhs[d], b.z[d*b.stride+j] = rota(cos, sin, rhs[d], b.z[d*b.stride+j])
		}
		for t1 := t + 1; t1 < b.kt; t1++ {
			ht[t1], tail[t1] = rota(cos, sin, ht[t1], tail[t1])
		}
	}
}

// at returns the element in row j, column col >= j.
func (b *cyclicBand) at(j, col int) float64 {
	if col >= b.nb {
		return b.tail[j*b.ts+col-b.nb]
	}
	if j >= b.nb || col-j >= b.bw {
		return 0
	}
	return b.a[j*b.bw+col-j]
}

func (b *cyclicBand) set(j, col int, v float64) {
	if col >= b.nb {
		b.tail[j*b.ts+col-b.nb] = v
		return
	}
	b.a[j*b.bw+col-j] = v
}

// copyFrom copies the triangular factor src, of the same order, into b.
// b must be at least as wide as src.
func (b *cyclicBand) copyFrom(src *cyclicBand, dim int) {
	clear(b.a[:b.n*b.bw])
	clear(b.tail[:b.n*b.ts])
	for j := range src.n {
		if j < src.nb {
			for col := j; col < min(j+src.bw, src.nb); col++ {
				if v := src.at(j, col); v != 0 {
					b.set(j, col, v)
				}
			}
		}
		for col := max(j, src.nb); col < src.n; col++ {
			if v := src.at(j, col); v != 0 {
				b.set(j, col, v)
			}
		}
	}
	for d := range dim {
		copy(b.z[d*b.stride:d*b.stride+b.n], src.z[d*src.stride:d*src.stride+src.n])
	}
}

func (b *cyclicBand) reset(dim int) {
	clear(b.a[:b.n*b.bw])
	clear(b.tail[:b.n*b.ts])
	for d := range dim {
		clear(b.z[d*b.stride : d*b.stride+b.n])
	}
}

func (b *cyclicBand) diagSum() float64 {
	var s float64
	for j := range b.n {
		s += b.at(j, j)
	}
	return s
}

// solve back-substitutes the system for dimension d into c. It reports
// false if the matrix is singular.
func (b *cyclicBand) solve(d int, c []float64) bool {
	z := b.z[d*b.stride:]
	for j := b.n - 1; j >= b.nb; j-- {
		tail := b.tail[j*b.ts:]
		t := j - b.nb
		if tail[t] == 0 {
			return false
		}
		s := z[j]
		for t1 := t + 1; t1 < b.kt; t1++ {
			s -= tail[t1] * c[b.nb+t1]
		}
		c[j] = s / tail[t]
	}
	for j := b.nb - 1; j >= 0; j-- {
		row := b.a[j*b.bw:]
		if row[0] == 0 {
			return false
		}
		s := z[j]
		for i := 1; i < b.bw && j+i < b.nb; i++ {
			s -= row[i] * c[j+i]
		}
		tail := b.tail[j*b.ts:]
		for t := range b.kt {
			s -= tail[t] * c[b.nb+t]
		}
		c[j] = s / row[0]
	}
	return true
}
