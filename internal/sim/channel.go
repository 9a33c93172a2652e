package sim

import (
	"math"
	"math/cmplx"
)

// applyAmplitudeDamping applies the single-qubit amplitude damping channel
// with decay probability gamma. Population flows from the target-set to the
// target-clear subspace and coherences shrink by sqrt(1-gamma).
func (d *DensityMatrix) applyAmplitudeDamping(m GateMask, gamma float64) {
	keep := complex(1-gamma, 0)
	g := complex(gamma, 0)
	s := complex(math.Sqrt(1-gamma), 0)
	half := d.dim >> 1
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			for l := 0; l < k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				v11 := d.At(r1, c1)
				d.Set(r0, c0, d.At(r0, c0)+g*v11)
				d.Set(r1, c1, keep*v11)
				d.mulStored(r1, c0, s)
				d.MulAssign(r0, c1, s)
			}
			v11 := d.At(r1, r1)
			d.Set(r0, r0, d.At(r0, r0)+g*v11)
			d.Set(r1, r1, keep*v11)
			d.mulStored(r1, r0, s)
		}
	})
}

// applyAmplitudeDampingAdjoint applies the Heisenberg-picture adjoint of the
// amplitude damping channel. Used when propagating observable co-states
// backwards through a noisy circuit.
func (d *DensityMatrix) applyAmplitudeDampingAdjoint(m GateMask, gamma float64) {
	keep := complex(1-gamma, 0)
	g := complex(gamma, 0)
	s := complex(math.Sqrt(1-gamma), 0)
	half := d.dim >> 1
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			for l := 0; l < k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				d.Set(r1, c1, keep*d.At(r1, c1)+g*d.At(r0, c0))
				d.mulStored(r1, c0, s)
				d.MulAssign(r0, c1, s)
			}
			d.Set(r1, r1, keep*d.At(r1, r1)+g*d.At(r0, r0))
			d.mulStored(r1, r0, s)
		}
	})
}

// applyPhaseDamping applies the single-qubit phase damping channel:
// populations are untouched and coherences between the two target subspaces
// shrink by sqrt(1-gamma). The map is its own adjoint.
func (d *DensityMatrix) applyPhaseDamping(m GateMask, gamma float64) {
	s := complex(math.Sqrt(1-gamma), 0)
	half := d.dim >> 1
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			for l := 0; l < k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				d.mulStored(r1, c0, s)
				d.MulAssign(r0, c1, s)
			}
			d.mulStored(r1, r0, s)
		}
	})
}

// applyPauliChannel applies the mixed-Pauli channel with probabilities px,
// py, pz for the respective flips. Entries pair up with their flip-both
// partner; the mixing coefficients depend only on whether the row and
// column target bits agree. The map is its own adjoint.
func (d *DensityMatrix) applyPauliChannel(m GateMask, px, py, pz float64) {
	same := complex(1-px-py, 0)
	sameX := complex(px+py, 0)
	diff := complex(1-px-py-2*pz, 0)
	diffX := complex(px-py, 0)
	half := d.dim >> 1
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			for l := 0; l < k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				v00 := d.At(r0, c0)
				v11 := d.At(r1, c1)
				d.Set(r0, c0, same*v00+sameX*v11)
				d.Set(r1, c1, same*v11+sameX*v00)
				v10 := d.At(r1, c0)
				v01 := d.At(r0, c1)
				d.Set(r1, c0, diff*v10+diffX*v01)
				d.Set(r0, c1, diff*v01+diffX*v10)
			}
			v00 := d.At(r0, r0)
			v11 := d.At(r1, r1)
			d.Set(r0, r0, same*v00+sameX*v11)
			d.Set(r1, r1, same*v11+sameX*v00)
			v10 := d.At(r1, r0)
			d.Set(r1, r0, diff*v10+diffX*cmplx.Conj(v10))
		}
	})
}

// applyKraus applies a general single-qubit channel given by its Kraus
// operators: rho <- sum_k K_k rho K_k'. Each term reuses the dense 2x2
// conjugation kernel on a scratch copy.
func (d *DensityMatrix) applyKraus(m GateMask, ops [][4]complex128) {
	acc := d.Clone()
	acc.Zero()
	for _, k := range ops {
		tmp := d.Clone()
		tmp.applyMatrix1(m, k)
		acc.Add(tmp)
	}
	d.CopyFrom(acc)
}

// dag4 returns the conjugate transpose of a row-major 2x2 matrix.
func dag4(k [4]complex128) [4]complex128 {
	return [4]complex128{
		cmplx.Conj(k[0]), cmplx.Conj(k[2]),
		cmplx.Conj(k[1]), cmplx.Conj(k[3]),
	}
}
