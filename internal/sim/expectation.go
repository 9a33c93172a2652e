package sim

import "math/cmplx"

// Observable is an operator with a dense Hermitian form and a fast path for
// expectation values against a packed state. Hamiltonians in the ops
// package implement it.
type Observable interface {
	// Dense returns the operator as a row-major dim x dim matrix.
	Dense(dim int) []complex128
	// Expectation returns Tr(rho * O).
	Expectation(d *DensityMatrix) complex128
}

// ExpectationDense returns Tr(rho * H) for a dense row-major Hermitian H,
// folding each off-diagonal stored entry together with its mirror.
func ExpectationDense(d *DensityMatrix, h []complex128) complex128 {
	if len(h) != d.dim*d.dim {
		panic("sim: dense matrix size mismatch in ExpectationDense")
	}
	return parSum(d.dim, func(lo, hi int) complex128 {
		var t complex128
		for i := lo; i < hi; i++ {
			base := idxMap(i, 0)
			for j := range i {
				v := d.data[base+j]
				t += v*h[j*d.dim+i] + cmplx.Conj(v)*h[i*d.dim+j]
			}
			t += d.data[base+i] * h[i*d.dim+i]
		}
		return t
	})
}
