package sim

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
)

// GradientResult packs one expectation value followed by the partial
// derivative for each trainable parameter, in resolver slot order.
type GradientResult []float64

// Expectation returns index 0, the observable's expectation value.
func (r GradientResult) Expectation() float64 { return r[0] }

// Grad returns the derivative for the given trainable slot.
func (r GradientResult) Grad(slot int) float64 { return r[1+slot] }

// maxHamWorkers caps the goroutines spawned per gradient call when fanning
// out over Hamiltonians, independent of GOMAXPROCS: each worker clones the
// full packed state, so the bound is about memory, not CPU.
const maxHamWorkers = 15

// ExpectationWithGrad evaluates, for every parameter set and every
// Hamiltonian, the expectation value and its gradient with respect to the
// trainable parameters. Unitary circuits use a reversible backward walk
// that uncomputes the state gate by gate; circuits containing noise
// channels replay the prefix for each trainable layer instead, since
// channels cannot be inverted. The result is indexed [parameter set]
// [hamiltonian].
func (s *Simulator) ExpectationWithGrad(hams []Observable, c *circuit.Circuit, prs []*circuit.ParameterResolver) [][]GradientResult {
	if c.NQubits != s.n {
		panic(fmt.Sprintf("sim: circuit is on %d qubits, simulator on %d", c.NQubits, s.n))
	}
	if c.HasMeasurement() {
		panic("sim: cannot differentiate a circuit containing measurements")
	}
	if len(hams) == 0 || len(prs) == 0 {
		return nil
	}
	out := make([][]GradientResult, len(prs))
	nW := min(len(prs), runtime.GOMAXPROCS(0))
	if nW <= 1 {
		for i, pr := range prs {
			out[i] = gradOne(s.n, c, hams, pr)
		}
		return out
	}
	// Contiguous chunks; the remainder goes to the earliest workers.
	base := len(prs) / nW
	rem := len(prs) % nW
	var wg sync.WaitGroup
	start := 0
	for w := range nW {
		count := base
		if w < rem {
			count++
		}
		lo, hi := start, start+count
		start = hi
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = gradOne(s.n, c, hams, prs[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

// gradOne evaluates all Hamiltonians for a single parameter set. The
// forward pass runs once; each Hamiltonian then walks backwards over its
// own clone of the final state, fanned out over at most maxHamWorkers
// goroutines.
func gradOne(n int, c *circuit.Circuit, hams []Observable, pr *circuit.ParameterResolver) []GradientResult {
	slots := pr.GradSlots()
	final := NewDensityMatrix(n)
	for _, g := range c.Gates {
		applyGate(final, g, pr)
	}
	noisy := c.HasChannel()
	res := make([]GradientResult, len(hams))
	eval := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if noisy {
				res[i] = gradNoisy(c, hams[i], pr, slots, final)
			} else {
				res[i] = gradUnitary(c, hams[i], pr, slots, final)
			}
		}
	}
	nW := min(len(hams), maxHamWorkers)
	if nW <= 1 {
		eval(0, len(hams))
		return res
	}
	chunk := (len(hams) + nW - 1) / nW
	var wg sync.WaitGroup
	for lo := 0; lo < len(hams); lo += chunk {
		hi := min(lo+chunk, len(hams))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			eval(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return res
}

// gradUnitary walks the circuit backwards from the final state, keeping a
// co-state holding the observable conjugated through every later gate. At
// each trainable layer the derivative falls out of a restricted trace of
// the generator between state and co-state.
func gradUnitary(c *circuit.Circuit, h Observable, pr *circuit.ParameterResolver, slots map[string]int, final *DensityMatrix) GradientResult {
	rho := final.Clone()
	shadow := NewDensityMatrix(c.NQubits)
	shadow.LoadDense(h.Dense(rho.Dim()))
	res := make(GradientResult, 1+len(slots))
	res[0] = rho.TraceWith(shadow)
	for k := len(c.Gates) - 1; k >= 0; k-- {
		g := c.Gates[k]
		if g.Parameterized() && g.Angle.Trainable(pr) {
			contrib := expectDiff(rho, shadow, g)
			for name, coeff := range g.Angle.Coeff {
				if slot, ok := slots[name]; ok {
					res[1+slot] += contrib * coeff
				}
			}
		}
		applyGateAdjoint(rho, g, pr)
		applyGateAdjoint(shadow, g, pr)
	}
	return res
}

// gradNoisy differentiates a circuit containing channels. The state cannot
// be uncomputed through a channel, so each trainable layer replays the
// circuit prefix from scratch while the co-state still steps backwards
// through the channels' Heisenberg-picture adjoints.
func gradNoisy(c *circuit.Circuit, h Observable, pr *circuit.ParameterResolver, slots map[string]int, final *DensityMatrix) GradientResult {
	shadow := NewDensityMatrix(c.NQubits)
	shadow.LoadDense(h.Dense(final.Dim()))
	res := make(GradientResult, 1+len(slots))
	res[0] = final.TraceWith(shadow)
	rho := NewDensityMatrix(c.NQubits)
	for k := len(c.Gates) - 1; k >= 0; k-- {
		g := c.Gates[k]
		if g.Parameterized() && g.Angle.Trainable(pr) {
			rho.Reset()
			for _, gg := range c.Gates[:k+1] {
				applyGate(rho, gg, pr)
			}
			contrib := expectDiff(rho, shadow, g)
			for name, coeff := range g.Angle.Coeff {
				if slot, ok := slots[name]; ok {
					res[1+slot] += contrib * coeff
				}
			}
		}
		applyGateAdjoint(shadow, g, pr)
	}
	return res
}

// expectDiff returns d/dtheta Tr(shadow * rho(theta)) at the layer of g,
// where rho is the state just after g and shadow is the observable pulled
// back to the same layer. For generators G with U = exp(-i theta/2 G) this
// is Im Tr(shadow * G * rho), with the trace restricted to rows satisfying
// the control mask; the phase shift gate carries its own projector form.
func expectDiff(rho, shadow *DensityMatrix, g *circuit.Gate) float64 {
	m := NewGateMask(g.Targets, g.Controls)
	dim := rho.Dim()
	switch g.Kind {
	case circuit.KindPhaseShift:
		bit := m.Obj
		t := parSum(dim, func(lo, hi int) complex128 {
			var acc complex128
			for j := lo; j < hi; j++ {
				if j&bit == 0 || !m.CtrlOK(j) {
					continue
				}
				for i := range dim {
					acc += shadow.At(i, j) * rho.At(j, i)
				}
			}
			return acc
		})
		return -2 * imag(t)
	case circuit.KindRX:
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			return j ^ m.Obj, 1
		}))
	case circuit.KindRY:
		bit := m.Obj
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			if j&bit != 0 {
				return j ^ bit, complex(0, 1)
			}
			return j ^ bit, complex(0, -1)
		}))
	case circuit.KindRZ:
		bit := m.Obj
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			if j&bit != 0 {
				return j, -1
			}
			return j, 1
		}))
	case circuit.KindRXX:
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			return j ^ m.Obj, 1
		}))
	case circuit.KindRYY:
		b0, b1 := m.TargetBit(0), m.TargetBit(1)
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			if (j&b0 != 0) == (j&b1 != 0) {
				return j ^ m.Obj, -1
			}
			return j ^ m.Obj, 1
		}))
	case circuit.KindRZZ:
		b0, b1 := m.TargetBit(0), m.TargetBit(1)
		return imag(genTrace(rho, shadow, m, func(j int) (int, complex128) {
			if (j&b0 != 0) == (j&b1 != 0) {
				return j, 1
			}
			return j, -1
		}))
	default:
		panic("sim: no gradient rule for gate " + g.Kind.String())
	}
}

// genTrace computes Tr(shadow * G * rho) for a generator whose row action
// maps basis index j to a single index with a scalar factor, skipping rows
// outside the control subspace.
func genTrace(rho, shadow *DensityMatrix, m GateMask, act func(j int) (int, complex128)) complex128 {
	dim := rho.Dim()
	return parSum(dim, func(lo, hi int) complex128 {
		var acc complex128
		for j := lo; j < hi; j++ {
			if !m.CtrlOK(j) {
				continue
			}
			jj, f := act(j)
			for i := range dim {
				acc += shadow.At(i, j) * f * rho.At(jj, i)
			}
		}
		return acc
	})
}
