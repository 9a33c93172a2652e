package ops

import (
	"fmt"

	"github.com/goccy/go-json"
)

// termJSON is the wire form of one weighted Pauli string. An empty or
// absent word is the identity term.
type termJSON struct {
	Coeff float64 `json:"coeff"`
	Word  string  `json:"word,omitempty"`
}

type hamJSON struct {
	Terms []termJSON `json:"terms"`
}

// Parse decodes a Hamiltonian from its JSON wire form.
func Parse(data []byte) (*Hamiltonian, error) {
	var raw hamJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ops: decode hamiltonian: %w", err)
	}
	if len(raw.Terms) == 0 {
		return nil, fmt.Errorf("ops: hamiltonian has no terms")
	}
	terms := make([]Term, len(raw.Terms))
	for i, t := range raw.Terms {
		term, err := NewTerm(t.Coeff, t.Word)
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return New(terms...), nil
}

// Marshal encodes the Hamiltonian to its JSON wire form.
func (h *Hamiltonian) Marshal() ([]byte, error) {
	raw := hamJSON{Terms: make([]termJSON, len(h.Terms))}
	for i, t := range h.Terms {
		raw.Terms[i] = termJSON{Coeff: t.Coeff, Word: t.Word()}
	}
	return json.Marshal(raw)
}
