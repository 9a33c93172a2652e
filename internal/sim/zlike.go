package sim

import "math/cmplx"

// applyZLike applies a gate that is diagonal with entry 1 on the target-clear
// subspace and val on the target-set subspace (Z, S, T, phase shift and their
// adjoints). Entries pick up val from the row side, conj(val) from the column
// side, and |val|^2 when both target bits are set, each side gated by its own
// control check.
func (d *DensityMatrix) applyZLike(m GateMask, val complex128) {
	half := d.dim >> 1
	abs2 := complex(real(val)*real(val)+imag(val)*imag(val), 0)
	cval := cmplx.Conj(val)
	parRange(half, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			r0 := m.Lift(k)
			r1 := r0 | m.Obj
			rowOK := m.CtrlOK(r0)
			for l := 0; l < k; l++ {
				c0 := m.Lift(l)
				c1 := c0 | m.Obj
				colOK := m.CtrlOK(c0)
				switch {
				case rowOK && colOK:
					d.mulStored(r1, c1, abs2)
					d.mulStored(r1, c0, val)
					d.MulAssign(r0, c1, cval)
				case rowOK:
					d.mulStored(r1, c1, val)
					d.mulStored(r1, c0, val)
				case colOK:
					d.mulStored(r1, c1, cval)
					d.MulAssign(r0, c1, cval)
				}
			}
			// The k == l block is Hermitian: its mixed entry is stored once,
			// so it is scaled here once rather than from both sides.
			if rowOK {
				d.mulStored(r1, r0, val)
				d.mulStored(r1, r1, abs2)
			}
		}
	})
}
