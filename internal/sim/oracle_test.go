package sim

import (
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"testing"
)

// Test oracle: everything here works on plain dense matrices so the packed
// kernels have an independent implementation to disagree with.

// fullUnitary expands a 2^k x 2^k gate matrix (k = len(targets)) acting on
// the given targets, with controls, into the full dim x dim matrix. Bit t
// of a sub-index addresses the t-th target in ascending qubit order,
// matching GateMask.Insert.
func fullUnitary(n int, u []complex128, targets, controls []int) []complex128 {
	dim := 1 << n
	sub := 1 << len(targets)
	sorted := append([]int(nil), targets...)
	sort.Ints(sorted)
	ctrl := 0
	for _, q := range controls {
		ctrl |= 1 << q
	}
	out := make([]complex128, dim*dim)
	for j := range dim {
		if j&ctrl != ctrl {
			out[j*dim+j] = 1
			continue
		}
		sj := 0
		base := j
		for t, q := range sorted {
			if j>>q&1 == 1 {
				sj |= 1 << t
			}
			base &^= 1 << q
		}
		for si := range sub {
			i := base
			for t, q := range sorted {
				if si>>t&1 == 1 {
					i |= 1 << q
				}
			}
			if v := u[si*sub+sj]; v != 0 {
				out[i*dim+j] = v
			}
		}
	}
	return out
}

// conjugateDense returns m rho m' for dense row-major matrices.
func conjugateDense(rho, m []complex128, dim int) []complex128 {
	tmp := make([]complex128, dim*dim)
	for i := range dim {
		for j := range dim {
			var acc complex128
			for k := range dim {
				acc += m[i*dim+k] * rho[k*dim+j]
			}
			tmp[i*dim+j] = acc
		}
	}
	out := make([]complex128, dim*dim)
	for i := range dim {
		for j := range dim {
			var acc complex128
			for k := range dim {
				acc += tmp[i*dim+k] * cmplx.Conj(m[j*dim+k])
			}
			out[i*dim+j] = acc
		}
	}
	return out
}

// addDense accumulates b into a.
func addDense(a, b []complex128) {
	for i := range a {
		a[i] += b[i]
	}
}

// randomDensity returns a random full-rank density matrix in dense form.
func randomDensity(n int, rng *rand.Rand) []complex128 {
	dim := 1 << n
	m := make([]complex128, dim*dim)
	for i := range m {
		m[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	rho := make([]complex128, dim*dim)
	for i := range dim {
		for j := range dim {
			var acc complex128
			for k := range dim {
				acc += m[i*dim+k] * cmplx.Conj(m[j*dim+k])
			}
			rho[i*dim+j] = acc
		}
	}
	var tr complex128
	for i := range dim {
		tr += rho[i*dim+i]
	}
	inv := 1 / tr
	for i := range rho {
		rho[i] *= inv
	}
	return rho
}

// loadDensity packs a dense density matrix into a fresh state.
func loadDensity(n int, dense []complex128) *DensityMatrix {
	d := NewDensityMatrix(n)
	d.LoadDense(dense)
	return d
}

// diffDense returns the largest absolute entry difference between the
// packed state and a dense expectation.
func diffDense(d *DensityMatrix, want []complex128) float64 {
	dim := d.Dim()
	worst := 0.0
	for i := range dim {
		for j := range dim {
			if delta := cmplx.Abs(d.At(i, j) - want[i*dim+j]); delta > worst {
				worst = delta
			}
		}
	}
	return worst
}

func checkAgainstDense(t *testing.T, d *DensityMatrix, want []complex128, tol float64) {
	t.Helper()
	if worst := diffDense(d, want); worst > tol {
		t.Fatalf("state deviates from dense oracle by %g (tol %g)", worst, tol)
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
