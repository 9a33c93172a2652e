package sim

import "math/cmplx"

// DensityMatrix stores the lower triangle (row >= col) of a Hermitian
// dim x dim matrix as a packed slice of complex amplitudes, dim = 2^n.
// The logical value at (i, j) with i < j is the conjugate of the stored
// value at (j, i); every kernel goes through the mirror-aware accessors
// below so a triangle-direction mistake cannot silently corrupt the state.
type DensityMatrix struct {
	n    int
	dim  int
	data []complex128
}

// idxMap addresses the packed triangle. Callers must have row >= col.
func idxMap(row, col int) int {
	return row*(row+1)/2 + col
}

// PackedLen returns the packed buffer length for a given dimension.
func PackedLen(dim int) int {
	return dim * (dim + 1) / 2
}

// NewDensityMatrix allocates the state for n qubits, initialized to the
// all-zero basis state |0..0><0..0|.
func NewDensityMatrix(n int) *DensityMatrix {
	if n <= 0 || n > 30 {
		panic("sim: qubit count out of range")
	}
	dim := 1 << n
	d := &DensityMatrix{
		n:    n,
		dim:  dim,
		data: make([]complex128, PackedLen(dim)),
	}
	d.data[0] = 1
	return d
}

// NumQubits returns the register size.
func (d *DensityMatrix) NumQubits() int { return d.n }

// Dim returns the Hilbert-space dimension 2^n.
func (d *DensityMatrix) Dim() int { return d.dim }

// Clone returns a deep copy.
func (d *DensityMatrix) Clone() *DensityMatrix {
	out := &DensityMatrix{n: d.n, dim: d.dim, data: make([]complex128, len(d.data))}
	copy(out.data, d.data)
	return out
}

// CopyFrom overwrites the state with a deep copy of src.
func (d *DensityMatrix) CopyFrom(src *DensityMatrix) {
	if d.dim != src.dim {
		panic("sim: dimension mismatch in CopyFrom")
	}
	copy(d.data, src.data)
}

// Reset zeroes the buffer and reinitializes to the all-zero basis state.
func (d *DensityMatrix) Reset() {
	clear(d.data)
	d.data[0] = 1
}

// Zero clears every amplitude. Used for channel accumulation.
func (d *DensityMatrix) Zero() {
	clear(d.data)
}

// At returns the logical value at (i, j), reading the conjugate from the
// stored triangle when i < j.
func (d *DensityMatrix) At(i, j int) complex128 {
	if i >= j {
		return d.data[idxMap(i, j)]
	}
	return cmplx.Conj(d.data[idxMap(j, i)])
}

// Set writes the logical value at (i, j), storing the conjugate in the
// mirror slot when i < j.
func (d *DensityMatrix) Set(i, j int, v complex128) {
	if i >= j {
		d.data[idxMap(i, j)] = v
		return
	}
	d.data[idxMap(j, i)] = cmplx.Conj(v)
}

// MulAssign multiplies the logical (i, j) entry by v, conjugating the factor
// for a mirror write.
func (d *DensityMatrix) MulAssign(i, j int, v complex128) {
	if i >= j {
		d.data[idxMap(i, j)] *= v
		return
	}
	d.data[idxMap(j, i)] *= cmplx.Conj(v)
}

// mulStored multiplies the stored slot (row >= col) directly.
func (d *DensityMatrix) mulStored(row, col int, v complex128) {
	d.data[idxMap(row, col)] *= v
}

// Diagonal returns a copy of the diagonal (basis-state populations).
func (d *DensityMatrix) Diagonal() []float64 {
	out := make([]float64, d.dim)
	for i := range d.dim {
		out[i] = real(d.data[idxMap(i, i)])
	}
	return out
}

// Trace returns the trace of the matrix. It is real for any physical state.
func (d *DensityMatrix) Trace() float64 {
	t := 0.0
	for i := range d.dim {
		t += real(d.data[idxMap(i, i)])
	}
	return t
}

// Add accumulates o into d entrywise.
func (d *DensityMatrix) Add(o *DensityMatrix) {
	if d.dim != o.dim {
		panic("sim: dimension mismatch in Add")
	}
	for k, v := range o.data {
		d.data[k] += v
	}
}

// LoadDense overwrites the state from a row-major dim x dim Hermitian
// matrix, keeping only the lower triangle. Used to seed shadow co-states
// from an observable's dense form.
func (d *DensityMatrix) LoadDense(m []complex128) {
	if len(m) != d.dim*d.dim {
		panic("sim: dense matrix size mismatch in LoadDense")
	}
	for i := range d.dim {
		base := idxMap(i, 0)
		copy(d.data[base:base+i+1], m[i*d.dim:i*d.dim+i+1])
	}
}

// TraceWith returns Tr(d * o) for two packed Hermitian matrices. The result
// is real because both operands are Hermitian.
func (d *DensityMatrix) TraceWith(o *DensityMatrix) float64 {
	if d.dim != o.dim {
		panic("sim: dimension mismatch in TraceWith")
	}
	t := 0.0
	for i := range d.dim {
		row := idxMap(i, 0)
		for j := range i {
			a := d.data[row+j]
			b := o.data[row+j]
			// off-diagonal pair (i,j) and (j,i): a*conj(b) + conj(a)*b
			t += 2 * (real(a)*real(b) + imag(a)*imag(b))
		}
		t += real(d.data[row+i]) * real(o.data[row+i])
	}
	return t
}
