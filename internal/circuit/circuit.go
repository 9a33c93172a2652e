package circuit

import "fmt"

// Circuit is an ordered gate list over a fixed qubit count.
type Circuit struct {
	NQubits int
	Gates   []*Gate
}

// New returns an empty circuit over n qubits.
func New(n int) *Circuit {
	if n <= 0 {
		panic("circuit: qubit count must be positive")
	}
	return &Circuit{NQubits: n}
}

// Append adds gates to the circuit, checking qubit bounds.
func (c *Circuit) Append(gates ...*Gate) *Circuit {
	for _, g := range gates {
		for _, q := range g.Targets {
			if q >= c.NQubits {
				panic(fmt.Sprintf("circuit: %v gate targets qubit %d on a %d-qubit circuit", g.Kind, q, c.NQubits))
			}
		}
		for _, q := range g.Controls {
			if q >= c.NQubits {
				panic(fmt.Sprintf("circuit: %v gate controlled by qubit %d on a %d-qubit circuit", g.Kind, q, c.NQubits))
			}
		}
		c.Gates = append(c.Gates, g)
	}
	return c
}

// Adjoint returns the reverse circuit: gates in reverse order, each replaced
// by its inverse. Channels are carried through unchanged; see Gate.Adjoint.
func (c *Circuit) Adjoint() *Circuit {
	out := &Circuit{NQubits: c.NQubits, Gates: make([]*Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[len(c.Gates)-1-i] = g.Adjoint()
	}
	return out
}

// HasChannel reports whether the circuit contains any non-unitary channel.
func (c *Circuit) HasChannel() bool {
	for _, g := range c.Gates {
		if g.Kind.IsChannel() {
			return true
		}
	}
	return false
}

// HasMeasurement reports whether the circuit contains measurement gates.
func (c *Circuit) HasMeasurement() bool {
	for _, g := range c.Gates {
		if g.Kind == KindMeasure {
			return true
		}
	}
	return false
}

// MeasureNames returns result keys of the measurement gates in circuit order.
func (c *Circuit) MeasureNames() []string {
	var names []string
	for _, g := range c.Gates {
		if g.Kind == KindMeasure {
			names = append(names, g.Name)
		}
	}
	return names
}
