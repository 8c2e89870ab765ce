// Package cnmf - column-shift primitives shared by the convolutive model.
//
// The convolution in CH-CNMF is realized entirely through these shifts:
// frame t of the model multiplies the encoding shifted right by t, and the
// H-update gradient shifts the split terms left by t. Both directions
// zero-fill vacated columns and drop columns pushed past the edge.
package cnmf

import "gonum.org/v1/gonum/mat"

// Panic messages for the *To destination contracts. The allocating
// wrappers report the same conditions as sentinel errors instead.
const (
	panicShiftNil  = "cnmf: shift source and destination must be non-nil"
	panicShiftDims = "cnmf: shift destination dimensions must match the source"
	panicShiftNeg  = "cnmf: shift amount must be non-negative"
)

// ShiftRight returns a copy of a with every column moved s positions to
// the right: column j of the result is column j−s of a, and the first s
// columns are zero. s ≥ cols(a) yields an all-zero matrix; s == 0 a plain
// copy.
//
// Errors:
//   - ErrEmptyMatrix   — a is nil or has no rows or columns.
//   - ErrNegativeShift — s < 0.
//
// Complexity: O(r·c) time, O(r·c) space.
func ShiftRight(a *mat.Dense, s int) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrEmptyMatrix
	}
	r, c := a.Dims()
	if r < 1 || c < 1 {
		return nil, ErrEmptyMatrix
	}
	if s < 0 {
		return nil, ErrNegativeShift
	}
	out := mat.NewDense(r, c, nil)
	ShiftRightTo(out, a, s)
	return out, nil
}

// ShiftLeft returns a copy of a with every column moved s positions to
// the left: column j of the result is column j+s of a, and the last s
// columns are zero. Errors as for ShiftRight.
//
// Complexity: O(r·c) time, O(r·c) space.
func ShiftLeft(a *mat.Dense, s int) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrEmptyMatrix
	}
	r, c := a.Dims()
	if r < 1 || c < 1 {
		return nil, ErrEmptyMatrix
	}
	if s < 0 {
		return nil, ErrNegativeShift
	}
	out := mat.NewDense(r, c, nil)
	ShiftLeftTo(out, a, s)
	return out, nil
}

// ShiftRightTo writes the right-shift of a into dst without allocating.
// dst must match a's dimensions and may alias a (the shift is then
// performed in place).
//
// Contract violations panic: nil arguments, mismatched dimensions, or a
// negative shift. Hot-path counterpart of ShiftRight.
//
// Complexity: O(r·c) time, O(1) extra space.
func ShiftRightTo(dst, a *mat.Dense, s int) {
	checkShiftTo(dst, a, s)
	r, c := a.Dims()
	if s > c {
		s = c
	}
	for i := 0; i < r; i++ {
		src := a.RawRowView(i)
		row := dst.RawRowView(i)
		// Overlap-safe: copy first (memmove semantics), then zero the gap.
		copy(row[s:], src[:c-s])
		for j := 0; j < s; j++ {
			row[j] = 0
		}
	}
}

// ShiftLeftTo writes the left-shift of a into dst without allocating.
// Same contract as ShiftRightTo.
//
// Complexity: O(r·c) time, O(1) extra space.
func ShiftLeftTo(dst, a *mat.Dense, s int) {
	checkShiftTo(dst, a, s)
	r, c := a.Dims()
	if s > c {
		s = c
	}
	for i := 0; i < r; i++ {
		src := a.RawRowView(i)
		row := dst.RawRowView(i)
		copy(row[:c-s], src[s:])
		for j := c - s; j < c; j++ {
			row[j] = 0
		}
	}
}

// checkShiftTo enforces the shared *To contract.
func checkShiftTo(dst, a *mat.Dense, s int) {
	if dst == nil || a == nil {
		panic(panicShiftNil)
	}
	dr, dc := dst.Dims()
	ar, ac := a.Dims()
	if dr != ar || dc != ac {
		panic(panicShiftDims)
	}
	if s < 0 {
		panic(panicShiftNeg)
	}
}
