package sim

import "sort"

// GateMask decomposes a gate's target/control qubit sets into the bit masks
// its kernels iterate with. Iteration runs over a reduced index space of
// size dim/2^|targets|; Lift reinserts a zero bit at every target position
// so the reduced index becomes a full basis index with all target bits
// clear, and Obj (or the individual target bits) flips them back on.
type GateMask struct {
	Obj  int // OR of target qubit bits
	Ctrl int // OR of control qubit bits

	// ObjLow/ObjHigh split an index at the lowest target qubit: for a
	// single-target gate, Lift(k) == ((k & ObjHigh) << 1) + (k & ObjLow).
	ObjLow  int
	ObjHigh int

	targets []int // target bit positions, ascending
}

// NewGateMask builds the masks for the given target and control sets. The
// sets were validated disjoint and duplicate-free at gate construction.
func NewGateMask(targets, controls []int) GateMask {
	m := GateMask{targets: make([]int, len(targets))}
	copy(m.targets, targets)
	sort.Ints(m.targets)
	for _, q := range m.targets {
		m.Obj |= 1 << q
	}
	for _, q := range controls {
		m.Ctrl |= 1 << q
	}
	if len(m.targets) > 0 {
		m.ObjLow = 1<<m.targets[0] - 1
		m.ObjHigh = ^m.ObjLow
	}
	return m
}

// NumTargets returns the number of target qubits.
func (m *GateMask) NumTargets() int { return len(m.targets) }

// TargetBit returns the bit mask of the idx-th target in ascending order.
func (m *GateMask) TargetBit(idx int) int { return 1 << m.targets[idx] }

// Lift maps a reduced iteration index to the basis index with every target
// bit cleared, preserving all other bits in order.
func (m *GateMask) Lift(k int) int {
	for _, q := range m.targets {
		low := 1<<q - 1
		k = (k&^low)<<1 | k&low
	}
	return k
}

// Insert returns Lift(k) with the target bits set according to sub: bit t of
// sub controls the t-th (ascending) target qubit.
func (m *GateMask) Insert(k, sub int) int {
	i := m.Lift(k)
	for t, q := range m.targets {
		if sub>>t&1 == 1 {
			i |= 1 << q
		}
	}
	return i
}

// CtrlOK reports whether every control bit is set in the basis index.
func (m *GateMask) CtrlOK(i int) bool {
	return i&m.Ctrl == m.Ctrl
}
