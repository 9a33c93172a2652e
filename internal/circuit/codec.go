package circuit

import (
	"fmt"

	"github.com/goccy/go-json"
)

// gateJSON is the wire form of one gate. Angle supports either a plain
// number or an affine parameter expression.
type gateJSON struct {
	Gate     string         `json:"gate"`
	Name     string         `json:"name,omitempty"`
	Targets  []int          `json:"targets"`
	Controls []int          `json:"controls,omitempty"`
	Angle    *exprJSON      `json:"angle,omitempty"`
	Probs    []float64      `json:"probs,omitempty"`
	Kraus    [][][2]float64 `json:"kraus,omitempty"` // [op][entry][re,im], row-major 2x2
	Dagger   bool           `json:"dagger,omitempty"`
}

type exprJSON struct {
	Const  float64            `json:"const,omitempty"`
	Params map[string]float64 `json:"params,omitempty"`
}

type circuitJSON struct {
	Qubits int        `json:"qubits"`
	Gates  []gateJSON `json:"gates"`
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (e *exprJSON) expr() Expr {
	if e == nil {
		return Expr{}
	}
	out := Expr{Const: e.Const}
	if len(e.Params) > 0 {
		out.Coeff = make(map[string]float64, len(e.Params))
		for name, c := range e.Params {
			out.Coeff[name] = c
		}
	}
	return out
}

// Parse decodes a circuit from its JSON form.
func Parse(data []byte) (c *Circuit, err error) {
	var raw circuitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("circuit: decode: %w", err)
	}
	if raw.Qubits <= 0 {
		return nil, fmt.Errorf("circuit: qubit count %d must be positive", raw.Qubits)
	}
	// Factory validation panics on malformed qubit lists; surface those as
	// decode errors at this boundary.
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("circuit: %v", r)
		}
	}()
	c = New(raw.Qubits)
	for i, gj := range raw.Gates {
		g, err := gj.gate()
		if err != nil {
			return nil, fmt.Errorf("circuit: gate %d: %w", i, err)
		}
		c.Append(g)
	}
	return c, nil
}

func (gj gateJSON) gate() (*Gate, error) {
	kind, ok := kindByName[gj.Gate]
	if !ok {
		return nil, fmt.Errorf("unknown gate kind %q", gj.Gate)
	}
	wantTargets := 1
	switch kind {
	case KindRXX, KindRYY, KindRZZ, KindSwap:
		wantTargets = 2
	}
	if len(gj.Targets) != wantTargets {
		return nil, fmt.Errorf("%s gate wants %d target(s), got %d", gj.Gate, wantTargets, len(gj.Targets))
	}
	g := newGate(kind, gj.Targets, gj.Controls)
	g.Name = gj.Name
	g.Dagger = gj.Dagger
	if kind.IsParameterized() {
		g.Angle = gj.Angle.expr()
	}
	switch kind {
	case KindMeasure:
		if g.Name == "" {
			return nil, fmt.Errorf("measure gate without a name")
		}
	case KindAmplitudeDamping, KindPhaseDamping, KindDepolarizing:
		if len(gj.Probs) != 1 {
			return nil, fmt.Errorf("%s channel wants 1 probability, got %d", gj.Gate, len(gj.Probs))
		}
		g.Probs = gj.Probs
	case KindPauliChannel:
		if len(gj.Probs) != 3 {
			return nil, fmt.Errorf("pauli channel wants 3 probabilities, got %d", len(gj.Probs))
		}
		g.Probs = gj.Probs
	case KindKraus:
		if len(gj.Kraus) == 0 {
			return nil, fmt.Errorf("kraus channel without operators")
		}
		g.Kraus = make([][4]complex128, len(gj.Kraus))
		for i, op := range gj.Kraus {
			if len(op) != 4 {
				return nil, fmt.Errorf("kraus operator %d wants 4 entries, got %d", i, len(op))
			}
			for j, ent := range op {
				g.Kraus[i][j] = complex(ent[0], ent[1])
			}
		}
	}
	return g, nil
}

// Marshal encodes the circuit into its JSON form.
func (c *Circuit) Marshal() ([]byte, error) {
	raw := circuitJSON{Qubits: c.NQubits, Gates: make([]gateJSON, len(c.Gates))}
	for i, g := range c.Gates {
		gj := gateJSON{
			Gate:     g.Kind.String(),
			Name:     g.Name,
			Targets:  g.Targets,
			Controls: g.Controls,
			Probs:    g.Probs,
			Dagger:   g.Dagger,
		}
		if g.Kind.IsParameterized() {
			gj.Angle = &exprJSON{Const: g.Angle.Const, Params: g.Angle.Coeff}
		}
		if len(g.Kraus) > 0 {
			gj.Kraus = make([][][2]float64, len(g.Kraus))
			for k, op := range g.Kraus {
				gj.Kraus[k] = make([][2]float64, 4)
				for j, v := range op {
					gj.Kraus[k][j] = [2]float64{real(v), imag(v)}
				}
			}
		}
		raw.Gates[i] = gj
	}
	return json.Marshal(raw)
}
