// Package ops provides Pauli-string observables for expectation and
// gradient evaluation against density-matrix states.
package ops

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/donghufeng/mindquantum-1/internal/sim"
)

// Term is one weighted Pauli string. The X, Y and Z bit masks record which
// qubits carry each factor; the empty word is the identity.
type Term struct {
	Coeff float64
	X     int
	Y     int
	Z     int
}

// NewTerm parses a Pauli word such as "Z0 Z1" or "X0 Y2" into a weighted
// term. Tokens are an axis letter followed by a qubit index; the empty
// word is the identity. A qubit may appear at most once.
func NewTerm(coeff float64, word string) (Term, error) {
	t := Term{Coeff: coeff}
	seen := 0
	for _, tok := range strings.Fields(word) {
		if len(tok) < 2 {
			return Term{}, fmt.Errorf("ops: malformed pauli token %q", tok)
		}
		q, err := strconv.Atoi(tok[1:])
		if err != nil || q < 0 {
			return Term{}, fmt.Errorf("ops: malformed qubit index in token %q", tok)
		}
		bit := 1 << q
		if seen&bit != 0 {
			return Term{}, fmt.Errorf("ops: qubit %d appears twice in %q", q, word)
		}
		seen |= bit
		switch tok[0] {
		case 'X', 'x':
			t.X |= bit
		case 'Y', 'y':
			t.Y |= bit
		case 'Z', 'z':
			t.Z |= bit
		default:
			return Term{}, fmt.Errorf("ops: unknown pauli axis in token %q", tok)
		}
	}
	return t, nil
}

// MustTerm is NewTerm panicking on a malformed word.
func MustTerm(coeff float64, word string) Term {
	t, err := NewTerm(coeff, word)
	if err != nil {
		panic(err)
	}
	return t
}

// Word renders the term's Pauli string with qubits in ascending order.
func (t Term) Word() string {
	var sb strings.Builder
	for q := 0; 1<<q <= t.X|t.Y|t.Z; q++ {
		bit := 1 << q
		var axis byte
		switch {
		case t.X&bit != 0:
			axis = 'X'
		case t.Y&bit != 0:
			axis = 'Y'
		case t.Z&bit != 0:
			axis = 'Z'
		default:
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(axis)
		sb.WriteString(strconv.Itoa(q))
	}
	return sb.String()
}

// mask is the off-diagonal index flip of the term: X and Y factors swap the
// basis state on their qubit, Z factors do not.
func (t Term) mask() int { return t.X | t.Y }

// phase returns the matrix entry of the Pauli string in column j, i.e.
// P[j, j^mask]. It folds each Y factor's +-i and each Z factor's sign.
func (t Term) phase(j int) complex128 {
	s := bits.OnesCount(uint(j&t.Y)) + bits.OnesCount(uint(j&t.Z))
	var p complex128 = 1
	switch bits.OnesCount(uint(t.Y)) % 4 {
	case 1:
		p = complex(0, -1)
	case 2:
		p = -1
	case 3:
		p = complex(0, 1)
	}
	if s%2 == 1 {
		p = -p
	}
	return complex(t.Coeff, 0) * p
}

// Hamiltonian is a real-weighted sum of Pauli strings. It is Hermitian by
// construction and implements sim.Observable.
type Hamiltonian struct {
	Terms []Term
}

// New builds a Hamiltonian from its terms.
func New(terms ...Term) *Hamiltonian {
	return &Hamiltonian{Terms: terms}
}

// MaxQubit returns the highest qubit index referenced, or -1 for a purely
// scalar operator.
func (h *Hamiltonian) MaxQubit() int {
	hi := 0
	for _, t := range h.Terms {
		hi |= t.X | t.Y | t.Z
	}
	return bits.Len(uint(hi)) - 1
}

// Dense returns the row-major dim x dim matrix of the operator. Each term
// touches exactly one entry per column.
func (h *Hamiltonian) Dense(dim int) []complex128 {
	out := make([]complex128, dim*dim)
	for _, t := range h.Terms {
		mask := t.mask()
		if mask >= dim {
			panic(fmt.Sprintf("ops: term %q does not fit in dimension %d", t.Word(), dim))
		}
		for j := range dim {
			out[j*dim+(j^mask)] += t.phase(j)
		}
	}
	return out
}

// Expectation returns Tr(rho * H) directly from the packed state, without
// materializing the dense matrix: each term contributes one stored entry
// (or its mirror) per basis state.
func (h *Hamiltonian) Expectation(d *sim.DensityMatrix) complex128 {
	dim := d.Dim()
	var total complex128
	for _, t := range h.Terms {
		mask := t.mask()
		if mask >= dim {
			panic(fmt.Sprintf("ops: term %q does not fit in dimension %d", t.Word(), dim))
		}
		var acc complex128
		for i := range dim {
			acc += t.phase(i) * d.At(i^mask, i)
		}
		total += acc
	}
	return total
}

// Compress merges terms with identical Pauli words and drops zero
// coefficients, returning the receiver for chaining.
func (h *Hamiltonian) Compress() *Hamiltonian {
	type key struct{ x, y, z int }
	sums := make(map[key]float64, len(h.Terms))
	order := make([]key, 0, len(h.Terms))
	for _, t := range h.Terms {
		k := key{t.X, t.Y, t.Z}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += t.Coeff
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := order[a], order[b]
		if ka.x != kb.x {
			return ka.x < kb.x
		}
		if ka.y != kb.y {
			return ka.y < kb.y
		}
		return ka.z < kb.z
	})
	out := h.Terms[:0]
	for _, k := range order {
		if c := sums[k]; c != 0 {
			out = append(out, Term{Coeff: c, X: k.x, Y: k.y, Z: k.z})
		}
	}
	h.Terms = out
	return h
}
