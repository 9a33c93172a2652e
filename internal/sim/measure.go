package sim

import "math/rand"

// prob1 returns the probability of reading 1 on the target qubit, i.e. the
// summed population of the target-set basis states.
func (d *DensityMatrix) prob1(target int) float64 {
	bit := 1 << target
	p := 0.0
	for i := bit; i < d.dim; i++ {
		if i&bit != 0 {
			p += real(d.data[idxMap(i, i)])
		}
	}
	return p
}

// measure samples a computational-basis measurement on the target qubit
// from rng, projects the state onto the observed outcome and renormalizes.
// The collapsed state keeps a second measurement of the same qubit
// deterministic.
func (d *DensityMatrix) measure(target int, rng *rand.Rand) int {
	bit := 1 << target
	p1 := d.prob1(target)
	outcome := 0
	p := 1 - p1
	if rng.Float64() < p1 {
		outcome = 1
		p = p1
	}
	want := 0
	if outcome == 1 {
		want = bit
	}
	// p can reach 0 or 1 exactly; the division is left unguarded.
	inv := complex(1/p, 0)
	parRange(d.dim, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			base := idxMap(i, 0)
			if i&bit != want {
				clear(d.data[base : base+i+1])
				continue
			}
			for j := 0; j <= i; j++ {
				if j&bit != want {
					d.data[base+j] = 0
					continue
				}
				d.data[base+j] *= inv
			}
		}
	})
	return outcome
}
