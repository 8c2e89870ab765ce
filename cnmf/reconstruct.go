package cnmf

import "gonum.org/v1/gonum/mat"

// Reconstruct — convolutive model reconstruction
//
// Description:
//
//	Rebuilds the approximation of the input from a basis tensor and an
//	encoding matrix:
//
//	    V̂ = Σₜ w[t] · shift→(h, t),   t = 0..w.Frames()-1
//
//	Frame t contributes its basis applied to the encoding delayed by t
//	columns, which is what makes the model convolutive. Reconstruct is
//	the package-default Reconstructor; Factorize calls it for the cost
//	trace unless Options.Reconstruct overrides it.
//
// Contracts:
//   - w and h are read-only; the result is freshly allocated.
//   - all frames of w share one shape m×k and h is k×n; the result is m×n.
//
// Errors:
//   - ErrEmptyTensor       — w has no frames or a nil frame.
//   - ErrEmptyMatrix       — h is nil or has no rows or columns.
//   - ErrDimensionMismatch — frame shapes disagree, or cols(w[t]) ≠ rows(h).
//
// Complexity: O(T·m·k·n) time, O(k·n) scratch.
func Reconstruct(w Tensor, h *mat.Dense) (*mat.Dense, error) {
	if w.Frames() == 0 {
		return nil, ErrEmptyTensor
	}
	if h == nil {
		return nil, ErrEmptyMatrix
	}
	kh, n := h.Dims()
	if kh < 1 || n < 1 {
		return nil, ErrEmptyMatrix
	}
	m, k := w.Dims()
	if m < 1 || k < 1 {
		return nil, ErrEmptyTensor
	}
	if k != kh {
		return nil, ErrDimensionMismatch
	}
	for _, fr := range w {
		if fr == nil {
			return nil, ErrEmptyTensor
		}
		rr, cc := fr.Dims()
		if rr != m || cc != k {
			return nil, ErrDimensionMismatch
		}
	}

	vhat := mat.NewDense(m, n, nil)
	hs := mat.NewDense(kh, n, nil)
	var term mat.Dense
	for t := range w {
		ShiftRightTo(hs, h, t)
		term.Mul(w[t], hs)
		vhat.Add(vhat, &term)
	}
	return vhat, nil
}

// frobCost returns ½‖v−vhat‖²_F, reusing resid as the residual scratch.
// resid must be sized like v.
func frobCost(v mat.Matrix, vhat, resid *mat.Dense) float64 {
	resid.Sub(v, vhat)
	nrm := mat.Norm(resid, 2)
	return 0.5 * nrm * nrm
}
