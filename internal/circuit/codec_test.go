package circuit

import (
	"strings"
	"testing"
)

func TestParseCircuit(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"qubits": 3,
		"gates": [
			{"gate": "h", "targets": [0]},
			{"gate": "x", "targets": [1], "controls": [0]},
			{"gate": "rx", "targets": [2], "angle": {"params": {"theta": 2.0}}},
			{"gate": "rz", "targets": [0], "angle": {"const": 1.5}},
			{"gate": "s", "targets": [1], "dagger": true},
			{"gate": "amplitude_damping", "targets": [2], "probs": [0.1]},
			{"gate": "measure", "targets": [0], "name": "m0"}
		]
	}`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.NQubits != 3 || len(c.Gates) != 7 {
		t.Fatalf("got %d qubits, %d gates", c.NQubits, len(c.Gates))
	}
	if c.Gates[1].Kind != KindX || c.Gates[1].Controls[0] != 0 {
		t.Fatalf("controlled-x decoded wrong: %+v", c.Gates[1])
	}
	if got := c.Gates[2].Angle.Coeff["theta"]; got != 2.0 {
		t.Fatalf("rx angle coefficient: got %g", got)
	}
	if got := c.Gates[3].Angle.Value(NewParameterResolver(nil)); got != 1.5 {
		t.Fatalf("rz constant angle: got %g", got)
	}
	if !c.Gates[4].Dagger {
		t.Fatal("sdg lost its dagger")
	}
	if c.Gates[5].Probs[0] != 0.1 {
		t.Fatalf("channel probability: %v", c.Gates[5].Probs)
	}
	if c.Gates[6].Name != "m0" {
		t.Fatalf("measure name: %q", c.Gates[6].Name)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{`, "decode"},
		{"zero qubits", `{"qubits": 0, "gates": []}`, "must be positive"},
		{"unknown gate", `{"qubits": 1, "gates": [{"gate": "frobnicate", "targets": [0]}]}`, "unknown gate kind"},
		{"swap one target", `{"qubits": 2, "gates": [{"gate": "swap", "targets": [0]}]}`, "2 target"},
		{"unnamed measure", `{"qubits": 1, "gates": [{"gate": "measure", "targets": [0]}]}`, "without a name"},
		{"pauli probs", `{"qubits": 1, "gates": [{"gate": "pauli_channel", "targets": [0], "probs": [0.1]}]}`, "3 probabilities"},
		{"kraus empty", `{"qubits": 1, "gates": [{"gate": "kraus", "targets": [0]}]}`, "without operators"},
		{"target out of range", `{"qubits": 1, "gates": [{"gate": "x", "targets": [4]}]}`, "qubit"},
		{"target is control", `{"qubits": 2, "gates": [{"gate": "x", "targets": [0], "controls": [0]}]}`, "control"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	orig := New(2).Append(
		H(0),
		RX(ParamExpr("theta"), 1, 0),
		Tdg(1),
		KrausChannel([][4]complex128{
			{1, 0, 0, complex(0.9, 0.1)},
			{0, complex(0.3, -0.2), 0, 0},
		}, 0),
		Measure("out", 1),
	)
	data, err := orig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse round trip: %v", err)
	}
	if back.NQubits != orig.NQubits || len(back.Gates) != len(orig.Gates) {
		t.Fatalf("round trip shape: %d/%d gates", len(back.Gates), len(orig.Gates))
	}
	for i, g := range back.Gates {
		if g.Kind != orig.Gates[i].Kind {
			t.Fatalf("gate %d kind: got %v, want %v", i, g.Kind, orig.Gates[i].Kind)
		}
	}
	if got := back.Gates[1].Angle.Coeff["theta"]; got != 1 {
		t.Fatalf("round-tripped angle coefficient: %g", got)
	}
	if !back.Gates[2].Dagger {
		t.Fatal("round trip dropped the dagger")
	}
	if back.Gates[3].Kraus[1][1] != complex(0.3, -0.2) {
		t.Fatalf("round-tripped kraus entry: %v", back.Gates[3].Kraus[1][1])
	}
}
