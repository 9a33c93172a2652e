package sim

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
)

func TestGatesMatchDenseOracle(t *testing.T) {
	t.Parallel()

	const n = 3
	s2 := complex(math.Sqrt2/2, 0)
	rot := func(theta float64) (complex128, complex128) {
		return complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
	}
	cRX, sRX := rot(0.9)
	cRY, sRY := rot(1.3)
	cRZ, sRZ := rot(0.4)
	cXX, sXX := rot(0.8)
	cYY, sYY := rot(1.1)
	cZZ, sZZ := rot(0.5)
	ei := func(phi float64) complex128 { return complex(math.Cos(phi), math.Sin(phi)) }

	cases := []struct {
		name string
		gate *circuit.Gate
		u    []complex128
	}{
		{"x", circuit.X(1), []complex128{0, 1, 1, 0}},
		{"y", circuit.Y(0), []complex128{0, complex(0, -1), complex(0, 1), 0}},
		{"z", circuit.Z(2), []complex128{1, 0, 0, -1}},
		{"h", circuit.H(1), []complex128{s2, s2, s2, -s2}},
		{"s", circuit.S(0), []complex128{1, 0, 0, complex(0, 1)}},
		{"sdg", circuit.Sdg(0), []complex128{1, 0, 0, complex(0, -1)}},
		{"t", circuit.T(2), []complex128{1, 0, 0, complex(math.Sqrt2/2, math.Sqrt2/2)}},
		{"tdg", circuit.Tdg(2), []complex128{1, 0, 0, complex(math.Sqrt2/2, -math.Sqrt2/2)}},
		{"ps", circuit.PhaseShift(circuit.ConstExpr(0.7), 1), []complex128{1, 0, 0, ei(0.7)}},
		{"rx", circuit.RX(circuit.ConstExpr(0.9), 1), []complex128{cRX, complex(0, -1) * sRX, complex(0, -1) * sRX, cRX}},
		{"ry", circuit.RY(circuit.ConstExpr(1.3), 0), []complex128{cRY, -sRY, sRY, cRY}},
		{"rz", circuit.RZ(circuit.ConstExpr(0.4), 2), []complex128{cRZ - complex(0, 1)*sRZ, 0, 0, cRZ + complex(0, 1)*sRZ}},
		{"cnot", circuit.X(0, 2), []complex128{0, 1, 1, 0}},
		{"toffoli", circuit.X(0, 1, 2), []complex128{0, 1, 1, 0}},
		{"cz", circuit.Z(1, 0), []complex128{1, 0, 0, -1}},
		{"cps", circuit.PhaseShift(circuit.ConstExpr(-1.2), 2, 0), []complex128{1, 0, 0, ei(-1.2)}},
		{"crx", circuit.RX(circuit.ConstExpr(2.1), 1, 2), []complex128{complex(math.Cos(1.05), 0), complex(0, -math.Sin(1.05)), complex(0, -math.Sin(1.05)), complex(math.Cos(1.05), 0)}},
		{"crz", circuit.RZ(circuit.ConstExpr(0.6), 0, 1), []complex128{complex(math.Cos(0.3), -math.Sin(0.3)), 0, 0, complex(math.Cos(0.3), math.Sin(0.3))}},
		{"rxx", circuit.RXX(circuit.ConstExpr(0.8), 0, 2), []complex128{
			cXX, 0, 0, complex(0, -1) * sXX,
			0, cXX, complex(0, -1) * sXX, 0,
			0, complex(0, -1) * sXX, cXX, 0,
			complex(0, -1) * sXX, 0, 0, cXX,
		}},
		{"ryy", circuit.RYY(circuit.ConstExpr(1.1), 1, 2), []complex128{
			cYY, 0, 0, complex(0, 1) * sYY,
			0, cYY, complex(0, -1) * sYY, 0,
			0, complex(0, -1) * sYY, cYY, 0,
			complex(0, 1) * sYY, 0, 0, cYY,
		}},
		{"rzz", circuit.RZZ(circuit.ConstExpr(0.5), 0, 1), []complex128{
			cZZ - complex(0, 1)*sZZ, 0, 0, 0,
			0, cZZ + complex(0, 1)*sZZ, 0, 0,
			0, 0, cZZ + complex(0, 1)*sZZ, 0,
			0, 0, 0, cZZ - complex(0, 1)*sZZ,
		}},
		{"swap", circuit.Swap(0, 2), []complex128{
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 1, 0, 0,
			0, 0, 0, 1,
		}},
		{"cswap", circuit.Swap(0, 1, 2), []complex128{
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 1, 0, 0,
			0, 0, 0, 1,
		}},
	}

	pr := circuit.NewParameterResolver(nil)
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewSource(int64(100 + i)))
			dense := randomDensity(n, rng)
			d := loadDensity(n, dense)

			applyGate(d, tc.gate, pr)
			want := conjugateDense(dense, fullUnitary(n, tc.u, tc.gate.Targets, tc.gate.Controls), 1<<n)
			checkAgainstDense(t, d, want, 1e-12)

			if tr := d.Trace(); !almostEqual(tr, 1, 1e-12) {
				t.Fatalf("trace after gate: got %g, want 1", tr)
			}
		})
	}
}

func TestGateThenAdjointRestoresState(t *testing.T) {
	t.Parallel()

	c := circuit.New(3)
	c.Append(
		circuit.H(0),
		circuit.T(1),
		circuit.RX(circuit.ConstExpr(0.7), 2),
		circuit.X(1, 0),
		circuit.RZZ(circuit.ConstExpr(-0.4), 0, 2),
		circuit.PhaseShift(circuit.ConstExpr(1.9), 2, 1),
		circuit.Swap(0, 1),
		circuit.RYY(circuit.ConstExpr(0.3), 0, 1),
		circuit.Sdg(2),
	)
	pr := circuit.NewParameterResolver(nil)

	rng := rand.New(rand.NewSource(7))
	dense := randomDensity(3, rng)
	d := loadDensity(3, dense)

	for _, g := range c.Gates {
		applyGate(d, g, pr)
	}
	for _, g := range c.Adjoint().Gates {
		applyGate(d, g, pr)
	}
	checkAgainstDense(t, d, dense, 1e-12)
}

func TestSTwiceEqualsZ(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	dense := randomDensity(2, rng)
	viaS := loadDensity(2, dense)
	viaZ := loadDensity(2, dense)
	pr := circuit.NewParameterResolver(nil)

	applyGate(viaS, circuit.S(1), pr)
	applyGate(viaS, circuit.S(1), pr)
	applyGate(viaZ, circuit.Z(1), pr)

	for i := range viaS.Dim() {
		for j := range viaS.Dim() {
			if delta := cmplx.Abs(viaS.At(i, j) - viaZ.At(i, j)); delta > 1e-14 {
				t.Fatalf("S.S and Z disagree at (%d,%d): %v vs %v", i, j, viaS.At(i, j), viaZ.At(i, j))
			}
		}
	}
}

func TestControlledGateLeavesOffSubspaceAlone(t *testing.T) {
	t.Parallel()

	// With the control qubit never excited, a controlled rotation must be
	// the identity.
	d := NewDensityMatrix(2)
	pr := circuit.NewParameterResolver(nil)
	applyGate(d, circuit.RX(circuit.ConstExpr(2.5), 0, 1), pr)

	if got := real(d.At(0, 0)); !almostEqual(got, 1, 1e-14) {
		t.Fatalf("population left |00>: At(0,0) = %g", got)
	}
}
