package sim

import (
	"math"
	"math/cmplx"
)

// applyMatrix1 conjugates the state by a single-qubit unitary: rho <- U rho U'.
// The sweep walks 2x2 blocks of the packed triangle addressed through the
// mask, so control qubits gate the row and column transforms independently.
func (d *DensityMatrix) applyMatrix1(m GateMask, u [4]complex128) {
	half := d.dim >> 1
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			rowOK := m.CtrlOK(r0)
			for l := 0; l <= k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				colOK := m.CtrlOK(c0)
				if !rowOK && !colOK {
					continue
				}
				b00 := d.At(r0, c0)
				b01 := d.At(r0, c1)
				b10 := d.At(r1, c0)
				b11 := d.At(r1, c1)
				if rowOK {
					b00, b10 = u[0]*b00+u[1]*b10, u[2]*b00+u[3]*b10
					b01, b11 = u[0]*b01+u[1]*b11, u[2]*b01+u[3]*b11
				}
				if colOK {
					b00, b01 = b00*cmplx.Conj(u[0])+b01*cmplx.Conj(u[1]), b00*cmplx.Conj(u[2])+b01*cmplx.Conj(u[3])
					b10, b11 = b10*cmplx.Conj(u[0])+b11*cmplx.Conj(u[1]), b10*cmplx.Conj(u[2])+b11*cmplx.Conj(u[3])
				}
				d.Set(r0, c0, b00)
				d.Set(r1, c0, b10)
				d.Set(r1, c1, b11)
				if k != l {
					d.Set(r0, c1, b01)
				}
			}
		}
	})
}

// applyMatrix2 conjugates the state by a two-qubit unitary over 4x4 blocks.
// Sub-index bit t addresses the t-th sorted target qubit.
func (d *DensityMatrix) applyMatrix2(m GateMask, u *[16]complex128) {
	quarter := d.dim >> 2
	parRange(quarter, func(lo, hi int) {
		var b, t [4][4]complex128
		for k := lo; k < hi; k++ {
			var rows [4]int
			for a := range 4 {
				rows[a] = m.Insert(k, a)
			}
			rowOK := m.CtrlOK(rows[0])
			for l := 0; l <= k; l++ {
				var cols [4]int
				for a := range 4 {
					cols[a] = m.Insert(l, a)
				}
				colOK := m.CtrlOK(cols[0])
				if !rowOK && !colOK {
					continue
				}
				for a := range 4 {
					for c := range 4 {
						b[a][c] = d.At(rows[a], cols[c])
					}
				}
				if rowOK {
					for a := range 4 {
						for c := range 4 {
							var acc complex128
							for x := range 4 {
								acc += u[a*4+x] * b[x][c]
							}
							t[a][c] = acc
						}
					}
					b = t
				}
				if colOK {
					for a := range 4 {
						for c := range 4 {
							var acc complex128
							for x := range 4 {
								acc += b[a][x] * cmplx.Conj(u[c*4+x])
							}
							t[a][c] = acc
						}
					}
					b = t
				}
				for a := range 4 {
					for c := range 4 {
						if k == l && c > a {
							continue
						}
						d.Set(rows[a], cols[c], b[a][c])
					}
				}
			}
		}
	})
}

// applyDiag multiplies each stored entry by f(row)*conj(f(col)), with f
// suppressed on indices whose control bits are not all set. Covers every
// gate diagonal in the computational basis.
func (d *DensityMatrix) applyDiag(m GateMask, f func(i int) complex128) {
	parRange(d.dim, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fi := complex128(1)
			if m.CtrlOK(i) {
				fi = f(i)
			}
			base := i * (i + 1) / 2
			for j := 0; j <= i; j++ {
				fj := complex128(1)
				if m.CtrlOK(j) {
					fj = f(j)
				}
				d.data[base+j] *= fi * cmplx.Conj(fj)
			}
		}
	})
}

func mat1X() [4]complex128 { return [4]complex128{0, 1, 1, 0} }

func mat1Y() [4]complex128 {
	return [4]complex128{0, complex(0, -1), complex(0, 1), 0}
}

func mat1H() [4]complex128 {
	s := complex(math.Sqrt2/2, 0)
	return [4]complex128{s, s, s, -s}
}

func mat1RX(theta float64) [4]complex128 {
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, -math.Sin(theta/2))
	return [4]complex128{c, is, is, c}
}

func mat1RY(theta float64) [4]complex128 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return [4]complex128{c, -s, s, c}
}

func mat2RXX(theta float64) *[16]complex128 {
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, -math.Sin(theta/2))
	return &[16]complex128{
		c, 0, 0, is,
		0, c, is, 0,
		0, is, c, 0,
		is, 0, 0, c,
	}
}

func mat2RYY(theta float64) *[16]complex128 {
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, -math.Sin(theta/2))
	return &[16]complex128{
		c, 0, 0, -is,
		0, c, is, 0,
		0, is, c, 0,
		-is, 0, 0, c,
	}
}

func mat2Swap() *[16]complex128 {
	return &[16]complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}
}
