package circuit

import "fmt"

// Kind identifies a gate, measurement or noise channel. The set is closed:
// the simulator dispatches on it exhaustively and panics on anything else.
type Kind uint8

const (
	KindX Kind = iota
	KindY
	KindZ
	KindH
	KindS
	KindT
	KindPhaseShift
	KindRX
	KindRY
	KindRZ
	KindRXX
	KindRYY
	KindRZZ
	KindSwap
	KindMeasure
	KindAmplitudeDamping
	KindPhaseDamping
	KindPauliChannel
	KindDepolarizing
	KindKraus

	kindCount
)

var kindNames = [kindCount]string{
	KindX:                "x",
	KindY:                "y",
	KindZ:                "z",
	KindH:                "h",
	KindS:                "s",
	KindT:                "t",
	KindPhaseShift:       "ps",
	KindRX:               "rx",
	KindRY:               "ry",
	KindRZ:               "rz",
	KindRXX:              "rxx",
	KindRYY:              "ryy",
	KindRZZ:              "rzz",
	KindSwap:             "swap",
	KindMeasure:          "measure",
	KindAmplitudeDamping: "amplitude_damping",
	KindPhaseDamping:     "phase_damping",
	KindPauliChannel:     "pauli_channel",
	KindDepolarizing:     "depolarizing",
	KindKraus:            "kraus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsChannel reports whether the kind is a non-unitary noise channel.
func (k Kind) IsChannel() bool {
	switch k {
	case KindAmplitudeDamping, KindPhaseDamping, KindPauliChannel, KindDepolarizing, KindKraus:
		return true
	}
	return false
}

// IsParameterized reports whether the kind carries a rotation/phase angle.
func (k Kind) IsParameterized() bool {
	switch k {
	case KindPhaseShift, KindRX, KindRY, KindRZ, KindRXX, KindRYY, KindRZZ:
		return true
	}
	return false
}

// Gate is an immutable description of one circuit element. Construct gates
// through the factory functions below; they validate qubit lists once so the
// kernels never have to.
type Gate struct {
	Kind     Kind
	Name     string // measurement result key; empty otherwise
	Targets  []int
	Controls []int
	Angle    Expr      // rotation/phase-shift angle
	Probs    []float64 // channel probabilities (gamma, or px/py/pz)
	Kraus    [][4]complex128
	Dagger   bool // daggered S/T
}

// Adjoint returns the inverse gate: daggered flag toggled for S/T, angle
// negated for rotations and phase shifts, self-inverse kinds unchanged.
// Channels are not invertible and are returned as-is; the gradient engine's
// noisy replay handles them through the adjoint channel map instead.
func (g *Gate) Adjoint() *Gate {
	out := *g
	switch g.Kind {
	case KindS, KindT:
		out.Dagger = !g.Dagger
	case KindPhaseShift, KindRX, KindRY, KindRZ, KindRXX, KindRYY, KindRZZ:
		out.Angle = g.Angle.Negated()
	}
	return &out
}

// Parameterized reports whether the gate angle references named parameters.
func (g *Gate) Parameterized() bool {
	return g.Kind.IsParameterized() && g.Angle.IsParameterized()
}

func validateQubits(kind Kind, targets, controls []int) {
	seen := make(map[int]struct{}, len(targets)+len(controls))
	for _, q := range targets {
		if q < 0 {
			panic(fmt.Sprintf("circuit: %v gate with negative target qubit %d", kind, q))
		}
		if _, dup := seen[q]; dup {
			panic(fmt.Sprintf("circuit: %v gate lists qubit %d twice as target", kind, q))
		}
		seen[q] = struct{}{}
	}
	for _, q := range controls {
		if q < 0 {
			panic(fmt.Sprintf("circuit: %v gate with negative control qubit %d", kind, q))
		}
		if _, dup := seen[q]; dup {
			panic(fmt.Sprintf("circuit: %v gate uses qubit %d as both target and control or lists it twice", kind, q))
		}
		seen[q] = struct{}{}
	}
}

func newGate(kind Kind, targets, controls []int) *Gate {
	validateQubits(kind, targets, controls)
	return &Gate{Kind: kind, Targets: targets, Controls: controls}
}

// X returns a Pauli-X (NOT) gate, optionally controlled.
func X(target int, controls ...int) *Gate { return newGate(KindX, []int{target}, controls) }

// Y returns a Pauli-Y gate.
func Y(target int, controls ...int) *Gate { return newGate(KindY, []int{target}, controls) }

// Z returns a Pauli-Z gate.
func Z(target int, controls ...int) *Gate { return newGate(KindZ, []int{target}, controls) }

// H returns a Hadamard gate.
func H(target int, controls ...int) *Gate { return newGate(KindH, []int{target}, controls) }

// S returns the S phase gate diag(1, i).
func S(target int, controls ...int) *Gate { return newGate(KindS, []int{target}, controls) }

// Sdg returns the daggered S gate diag(1, -i).
func Sdg(target int, controls ...int) *Gate {
	g := newGate(KindS, []int{target}, controls)
	g.Dagger = true
	return g
}

// T returns the T gate diag(1, e^{i pi/4}).
func T(target int, controls ...int) *Gate { return newGate(KindT, []int{target}, controls) }

// Tdg returns the daggered T gate.
func Tdg(target int, controls ...int) *Gate {
	g := newGate(KindT, []int{target}, controls)
	g.Dagger = true
	return g
}

// PhaseShift returns diag(1, e^{i angle}).
func PhaseShift(angle Expr, target int, controls ...int) *Gate {
	g := newGate(KindPhaseShift, []int{target}, controls)
	g.Angle = angle
	return g
}

// RX returns the rotation exp(-i angle/2 X).
func RX(angle Expr, target int, controls ...int) *Gate {
	g := newGate(KindRX, []int{target}, controls)
	g.Angle = angle
	return g
}

// RY returns the rotation exp(-i angle/2 Y).
func RY(angle Expr, target int, controls ...int) *Gate {
	g := newGate(KindRY, []int{target}, controls)
	g.Angle = angle
	return g
}

// RZ returns the rotation exp(-i angle/2 Z).
func RZ(angle Expr, target int, controls ...int) *Gate {
	g := newGate(KindRZ, []int{target}, controls)
	g.Angle = angle
	return g
}

// RXX returns the two-qubit rotation exp(-i angle/2 XX).
func RXX(angle Expr, a, b int, controls ...int) *Gate {
	g := newGate(KindRXX, []int{a, b}, controls)
	g.Angle = angle
	return g
}

// RYY returns the two-qubit rotation exp(-i angle/2 YY).
func RYY(angle Expr, a, b int, controls ...int) *Gate {
	g := newGate(KindRYY, []int{a, b}, controls)
	g.Angle = angle
	return g
}

// RZZ returns the two-qubit rotation exp(-i angle/2 ZZ).
func RZZ(angle Expr, a, b int, controls ...int) *Gate {
	g := newGate(KindRZZ, []int{a, b}, controls)
	g.Angle = angle
	return g
}

// Swap exchanges two qubits, optionally controlled (Fredkin).
func Swap(a, b int, controls ...int) *Gate { return newGate(KindSwap, []int{a, b}, controls) }

// Measure returns a measurement of one qubit whose collapsed bit is recorded
// under name in the circuit result.
func Measure(name string, target int) *Gate {
	g := newGate(KindMeasure, []int{target}, nil)
	g.Name = name
	return g
}

// AmplitudeDamping returns the amplitude damping channel with damping
// probability gamma.
func AmplitudeDamping(gamma float64, target int) *Gate {
	g := newGate(KindAmplitudeDamping, []int{target}, nil)
	g.Probs = []float64{gamma}
	return g
}

// PhaseDamping returns the phase damping channel with probability gamma.
func PhaseDamping(gamma float64, target int) *Gate {
	g := newGate(KindPhaseDamping, []int{target}, nil)
	g.Probs = []float64{gamma}
	return g
}

// PauliChannel applies X, Y, Z with probabilities px, py, pz and leaves the
// state untouched with probability 1-px-py-pz.
func PauliChannel(px, py, pz float64, target int) *Gate {
	g := newGate(KindPauliChannel, []int{target}, nil)
	g.Probs = []float64{px, py, pz}
	return g
}

// Depolarizing is the Pauli channel with px=py=pz=p/3.
func Depolarizing(p float64, target int) *Gate {
	g := newGate(KindDepolarizing, []int{target}, nil)
	g.Probs = []float64{p}
	return g
}

// KrausChannel applies an arbitrary single-qubit channel given its Kraus
// operators, each a row-major 2x2 matrix.
func KrausChannel(ops [][4]complex128, target int) *Gate {
	if len(ops) == 0 {
		panic("circuit: kraus channel without operators")
	}
	g := newGate(KindKraus, []int{target}, nil)
	g.Kraus = ops
	return g
}
