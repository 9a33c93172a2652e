package sim

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
)

// Simulator owns a packed density-matrix state for a fixed qubit count plus
// the RNG that drives measurement sampling. It is not safe for concurrent
// use; batch paths hand each worker its own copy.
type Simulator struct {
	n     int
	state *DensityMatrix
	rng   *rand.Rand
	seed  int64
}

// NewSimulator returns a simulator for n qubits in the all-zero state.
func NewSimulator(n int, seed int64) *Simulator {
	return &Simulator{
		n:     n,
		state: NewDensityMatrix(n),
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
	}
}

// NumQubits returns the qubit count.
func (s *Simulator) NumQubits() int { return s.n }

// State exposes the current density matrix.
func (s *Simulator) State() *DensityMatrix { return s.state }

// Reset returns the state to |0...0><0...0| and reseeds the RNG so a reset
// simulator replays identically.
func (s *Simulator) Reset() {
	s.state.Reset()
	s.rng = rand.New(rand.NewSource(s.seed))
}

// SetSeed reseeds the measurement RNG.
func (s *Simulator) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// applyGate dispatches one unitary gate or noise channel onto d. Measurement
// gates are rejected here: sampling needs an RNG and an outcome sink, which
// only the circuit-level entry points carry.
func applyGate(d *DensityMatrix, g *circuit.Gate, pr *circuit.ParameterResolver) {
	m := NewGateMask(g.Targets, g.Controls)
	switch g.Kind {
	case circuit.KindX:
		d.applyMatrix1(m, mat1X())
	case circuit.KindY:
		d.applyMatrix1(m, mat1Y())
	case circuit.KindZ:
		d.applyZLike(m, -1)
	case circuit.KindH:
		d.applyMatrix1(m, mat1H())
	case circuit.KindS:
		v := complex(0, 1)
		if g.Dagger {
			v = complex(0, -1)
		}
		d.applyZLike(m, v)
	case circuit.KindT:
		v := complex(math.Sqrt2/2, math.Sqrt2/2)
		if g.Dagger {
			v = cmplx.Conj(v)
		}
		d.applyZLike(m, v)
	case circuit.KindPhaseShift:
		phi := g.Angle.Value(pr)
		d.applyZLike(m, complex(math.Cos(phi), math.Sin(phi)))
	case circuit.KindRX:
		d.applyMatrix1(m, mat1RX(g.Angle.Value(pr)))
	case circuit.KindRY:
		d.applyMatrix1(m, mat1RY(g.Angle.Value(pr)))
	case circuit.KindRZ:
		theta := g.Angle.Value(pr)
		d0 := complex(math.Cos(theta/2), -math.Sin(theta/2))
		d1 := cmplx.Conj(d0)
		obj := m.Obj
		d.applyDiag(m, func(i int) complex128 {
			if i&obj != 0 {
				return d1
			}
			return d0
		})
	case circuit.KindRXX:
		d.applyMatrix2(m, mat2RXX(g.Angle.Value(pr)))
	case circuit.KindRYY:
		d.applyMatrix2(m, mat2RYY(g.Angle.Value(pr)))
	case circuit.KindRZZ:
		theta := g.Angle.Value(pr)
		same := complex(math.Cos(theta/2), -math.Sin(theta/2))
		diff := cmplx.Conj(same)
		b0, b1 := m.TargetBit(0), m.TargetBit(1)
		d.applyDiag(m, func(i int) complex128 {
			if (i&b0 != 0) == (i&b1 != 0) {
				return same
			}
			return diff
		})
	case circuit.KindSwap:
		d.applyMatrix2(m, mat2Swap())
	case circuit.KindAmplitudeDamping:
		d.applyAmplitudeDamping(m, g.Probs[0])
	case circuit.KindPhaseDamping:
		d.applyPhaseDamping(m, g.Probs[0])
	case circuit.KindPauliChannel:
		d.applyPauliChannel(m, g.Probs[0], g.Probs[1], g.Probs[2])
	case circuit.KindDepolarizing:
		p := g.Probs[0] / 3
		d.applyPauliChannel(m, p, p, p)
	case circuit.KindKraus:
		d.applyKraus(m, g.Kraus)
	case circuit.KindMeasure:
		panic("sim: measurement gate applied outside a circuit run")
	default:
		panic(fmt.Sprintf("sim: unknown gate kind %d", g.Kind))
	}
}

// applyGateAdjoint applies the reverse map of g: the inverse for unitaries
// and the Heisenberg-picture adjoint for channels. Backward gradient walks
// use it to step co-states from layer k to layer k-1.
func applyGateAdjoint(d *DensityMatrix, g *circuit.Gate, pr *circuit.ParameterResolver) {
	switch g.Kind {
	case circuit.KindAmplitudeDamping:
		d.applyAmplitudeDampingAdjoint(NewGateMask(g.Targets, g.Controls), g.Probs[0])
	case circuit.KindPhaseDamping, circuit.KindPauliChannel, circuit.KindDepolarizing:
		// self-adjoint maps
		applyGate(d, g, pr)
	case circuit.KindKraus:
		ops := make([][4]complex128, len(g.Kraus))
		for i, k := range g.Kraus {
			ops[i] = dag4(k)
		}
		d.applyKraus(NewGateMask(g.Targets, g.Controls), ops)
	default:
		applyGate(d, g.Adjoint(), pr)
	}
}

// ApplyGate applies a single gate or channel to the state. Measurement
// gates collapse the state; the outcome is returned by Measure instead.
func (s *Simulator) ApplyGate(g *circuit.Gate, pr *circuit.ParameterResolver) {
	if g.Kind == circuit.KindMeasure {
		s.state.measure(g.Targets[0], s.rng)
		return
	}
	applyGate(s.state, g, pr)
}

// Probability returns the marginal probability of reading 1 on the target
// qubit without collapsing the state.
func (s *Simulator) Probability(target int) float64 {
	return s.state.prob1(target)
}

// Measure samples and collapses the target qubit, returning the outcome.
func (s *Simulator) Measure(target int) int {
	return s.state.measure(target, s.rng)
}

// ApplyCircuit runs every gate of c against the current state and returns
// the outcome of each named measurement.
func (s *Simulator) ApplyCircuit(c *circuit.Circuit, pr *circuit.ParameterResolver) map[string]int {
	if c.NQubits != s.n {
		panic(fmt.Sprintf("sim: circuit is on %d qubits, simulator on %d", c.NQubits, s.n))
	}
	results := make(map[string]int)
	for _, g := range c.Gates {
		if g.Kind == circuit.KindMeasure {
			results[g.Name] = s.state.measure(g.Targets[0], s.rng)
			continue
		}
		applyGate(s.state, g, pr)
	}
	return results
}

// Sample repeats the circuit from the all-zero state for the given number
// of shots with a dedicated RNG stream, counting joint measurement
// bitstrings in gate order. The simulator's own state is untouched.
func (s *Simulator) Sample(c *circuit.Circuit, pr *circuit.ParameterResolver, shots int, seed int64) map[string]int {
	if c.NQubits != s.n {
		panic(fmt.Sprintf("sim: circuit is on %d qubits, simulator on %d", c.NQubits, s.n))
	}
	rng := rand.New(rand.NewSource(seed))
	counts := make(map[string]int, 1<<min(len(c.MeasureNames()), 10))
	scratch := NewDensityMatrix(s.n)
	key := make([]byte, 0, 8)
	for range shots {
		scratch.Reset()
		key = key[:0]
		for _, g := range c.Gates {
			if g.Kind == circuit.KindMeasure {
				key = append(key, byte('0'+scratch.measure(g.Targets[0], rng)))
				continue
			}
			applyGate(scratch, g, pr)
		}
		counts[string(key)]++
	}
	return counts
}
