package sim

import (
	"math"
	"testing"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
)

func TestMeasureAfterXIsDeterministic(t *testing.T) {
	t.Parallel()

	sm := NewSimulator(2, 1)
	pr := circuit.NewParameterResolver(nil)
	sm.ApplyGate(circuit.X(0), pr)

	if p := sm.Probability(0); math.Abs(p-1) > 1e-14 {
		t.Fatalf("marginal probability after X = %g, want 1", p)
	}
	if got := sm.Measure(0); got != 1 {
		t.Fatalf("measuring |1> returned %d", got)
	}
	// The collapse must make a re-measurement deterministic.
	if got := sm.Measure(0); got != 1 {
		t.Fatalf("re-measuring a collapsed qubit returned %d", got)
	}
	if got := sm.Measure(1); got != 0 {
		t.Fatalf("measuring an untouched qubit returned %d", got)
	}
}

func TestMeasureCollapsesSuperposition(t *testing.T) {
	t.Parallel()

	sm := NewSimulator(1, 42)
	pr := circuit.NewParameterResolver(nil)
	sm.ApplyGate(circuit.H(0), pr)
	out := sm.Measure(0)

	probs := sm.State().Diagonal()
	if !almostEqual(probs[out], 1, 1e-12) {
		t.Fatalf("post-measurement population of outcome %d is %g, want 1", out, probs[out])
	}
	if got := sm.Measure(0); got != out {
		t.Fatalf("second measurement flipped: %d then %d", out, got)
	}
}

func TestApplyCircuitRecordsNamedOutcomes(t *testing.T) {
	t.Parallel()

	c := circuit.New(2)
	c.Append(
		circuit.X(0),
		circuit.Measure("m0", 0),
		circuit.Measure("m1", 1),
	)
	sm := NewSimulator(2, 5)
	results := sm.ApplyCircuit(c, circuit.NewParameterResolver(nil))

	if len(results) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(results))
	}
	if results["m0"] != 1 || results["m1"] != 0 {
		t.Fatalf("unexpected outcomes: %v", results)
	}
}

func TestSimulatorResetReplaysMeasurements(t *testing.T) {
	t.Parallel()

	c := circuit.New(1)
	c.Append(circuit.H(0), circuit.Measure("m", 0))
	sm := NewSimulator(1, 99)
	pr := circuit.NewParameterResolver(nil)

	first := sm.ApplyCircuit(c, pr)["m"]
	sm.Reset()
	second := sm.ApplyCircuit(c, pr)["m"]
	if first != second {
		t.Fatalf("reset simulator did not replay: %d then %d", first, second)
	}
}

func TestSampleHadamardStatistics(t *testing.T) {
	t.Parallel()

	const shots = 10000
	c := circuit.New(1)
	c.Append(circuit.H(0), circuit.Measure("m", 0))
	sm := NewSimulator(1, 0)

	counts := sm.Sample(c, circuit.NewParameterResolver(nil), shots, 12345)
	total := 0
	for _, v := range counts {
		total += v
	}
	if total != shots {
		t.Fatalf("counts sum to %d, want %d", total, shots)
	}
	mean := float64(counts["1"]) / shots
	if math.Abs(mean-0.5) > 0.02 {
		t.Fatalf("H|0> one-fraction %g too far from 0.5", mean)
	}
}

func TestSampleBellPairCorrelations(t *testing.T) {
	t.Parallel()

	const shots = 5000
	c := circuit.New(2)
	c.Append(
		circuit.H(0),
		circuit.X(1, 0),
		circuit.Measure("a", 0),
		circuit.Measure("b", 1),
	)
	sm := NewSimulator(2, 0)
	counts := sm.Sample(c, circuit.NewParameterResolver(nil), shots, 777)

	if counts["01"] != 0 || counts["10"] != 0 {
		t.Fatalf("bell pair produced anti-correlated outcomes: %v", counts)
	}
	frac := float64(counts["00"]) / shots
	if math.Abs(frac-0.5) > 0.03 {
		t.Fatalf("bell pair 00-fraction %g too far from 0.5", frac)
	}
	if got := sm.State().Trace(); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("sampling disturbed the simulator state: trace %g", got)
	}
}
