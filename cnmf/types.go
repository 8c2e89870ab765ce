// Package cnmf - option, result and tensor types shared by the optimizer.
package cnmf

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// DefaultMaxIter bounds the multiplicative-update loop when
// Options.MaxIter is zero or negative at resolution time.
const DefaultMaxIter = 100

// DefaultTolerance is the convergence threshold on the cost decrease
// when Options.Tolerance is zero or negative at resolution time.
const DefaultTolerance = 1e-3

var (
	// ErrEmptyMatrix indicates a nil input or one with no rows or columns.
	ErrEmptyMatrix = errors.New("cnmf: input matrix must have at least one row and one column")
	// ErrEmptyTensor indicates a tensor with no frames or a nil frame slab.
	ErrEmptyTensor = errors.New("cnmf: tensor must hold at least one non-nil frame")
	// ErrBasisCount indicates a non-positive number of basis elements.
	ErrBasisCount = errors.New("cnmf: number of basis elements must be at least 1")
	// ErrFrameCount indicates a non-positive number of convolution frames.
	ErrFrameCount = errors.New("cnmf: number of frames must be at least 1")
	// ErrDimensionMismatch indicates initializer shapes that disagree with
	// the factorization shape derived from V, S and the basis count.
	ErrDimensionMismatch = errors.New("cnmf: initializer dimensions disagree with factorization shape")
	// ErrNegativeSparsity indicates a negative sparsity weight.
	ErrNegativeSparsity = errors.New("cnmf: sparsity weights must be non-negative")
	// ErrNegativeShift indicates a negative column-shift amount.
	ErrNegativeShift = errors.New("cnmf: column shift must be non-negative")
)

// Tensor is an ordered stack of equally sized dense matrices, one per
// convolution frame: Tensor[t] addresses the frame-t slab of the
// conceptual three-way array X[:,:,t]. Frame order is significant.
type Tensor []*mat.Dense

// NewTensor returns a Tensor of frames zeroed r×c slabs.
func NewTensor(frames, r, c int) Tensor {
	x := make(Tensor, frames)
	for t := range x {
		x[t] = mat.NewDense(r, c, nil)
	}
	return x
}

// Frames returns the number of frame slabs.
func (x Tensor) Frames() int { return len(x) }

// Dims returns the row/column size of the frame slabs, (0,0) when the
// tensor is empty or its first frame is nil.
func (x Tensor) Dims() (r, c int) {
	if len(x) == 0 || x[0] == nil {
		return 0, 0
	}
	return x[0].Dims()
}

// Clone returns a deep copy of the tensor; nil frames stay nil.
func (x Tensor) Clone() Tensor {
	out := make(Tensor, len(x))
	for t, fr := range x {
		if fr != nil {
			out[t] = mat.DenseCopyOf(fr)
		}
	}
	return out
}

// CopyFrom overwrites each frame of x with the corresponding frame of
// src. Contract: src has at least as many frames as x and matching slab
// shapes; the frames of x must be non-nil.
func (x Tensor) CopyFrom(src Tensor) {
	for t := range x {
		x[t].Copy(src[t])
	}
}

// Reconstructor rebuilds an approximation of the input from a basis
// tensor and an encoding matrix. Implementations must treat both
// arguments as read-only and return a freshly allocated m×n matrix.
// The package default is Reconstruct.
type Reconstructor func(w Tensor, h *mat.Dense) (*mat.Dense, error)

// Options configures Factorize.
//
// Fields:
//   - SInit       — anchor matrix override (m×p). Nil selects anchors from
//     the convex hull of V (see package hull). Cloned, never mutated.
//   - GInit       — convex-weight tensor override (numFrames slabs of p×k).
//     Nil draws Uniform(0,1) entries and renormalizes every column onto
//     the simplex. Cloned, never mutated.
//   - HInit       — encoding override (k×n). Nil draws Uniform(0,1)
//     entries. Cloned, never mutated. Entry signs are NOT validated;
//     negative warm starts propagate through the multiplicative rules
//     exactly as provided.
//   - GFixed      — freeze G (and therefore W): the G update is skipped and
//     the returned G is bit-identical to its initialization.
//   - HFixed      — freeze H likewise.
//   - GSparsity   — additive denominator weight in the G update (≥ 0).
//   - HSparsity   — additive denominator weight in the H update (≥ 0).
//   - MaxIter     — iteration cap; ≤ 0 resolves to DefaultMaxIter.
//   - Tolerance   — convergence threshold; ≤ 0 resolves to DefaultTolerance.
//   - Seed        — RNG seed for random initialization; 0 selects the fixed
//     default stream so runs are reproducible by default.
//   - Reconstruct — Reconstructor used for the cost trace; nil selects the
//     package default.
//
// Example:
//
//	opts := &cnmf.Options{
//	  HSparsity: 0.1,          // discourage dense encodings
//	  MaxIter:   250,          // allow a longer run
//	  Tolerance: 1e-5,         // tighter stop
//	  Seed:      42,           // reproducible non-default draw
//	}
//	dec, err := cnmf.Factorize(v, 4, 3, opts)
type Options struct {
	SInit       *mat.Dense
	GInit       Tensor
	HInit       *mat.Dense
	GFixed      bool
	HFixed      bool
	GSparsity   float64
	HSparsity   float64
	MaxIter     int
	Tolerance   float64
	Seed        int64
	Reconstruct Reconstructor
}

// DefaultOptions returns the canonical configuration: free G and H,
// no sparsity, DefaultMaxIter, DefaultTolerance, the fixed default
// seed and the package Reconstruct.
func DefaultOptions() *Options {
	return &Options{
		MaxIter:   DefaultMaxIter,
		Tolerance: DefaultTolerance,
	}
}

// Decomposition is the result of Factorize.
//
// Invariants on return:
//   - W.Frames() == G.Frames() == numFrames, W[t] = S·G[t] exactly;
//   - every column of every G frame is non-negative and sums to 1
//     (up to the last update's floating-point arithmetic);
//   - Cost[0] is the pre-loop reconstruction cost and Cost has one
//     entry per completed iteration after it.
type Decomposition struct {
	// W stacks the per-frame bases, numFrames slabs of m×k.
	W Tensor
	// H is the k×n non-negative encoding.
	H *mat.Dense
	// S is the m×p anchor matrix, fixed after initialization.
	S *mat.Dense
	// G stacks the per-frame convex weights, numFrames slabs of p×k.
	G Tensor
	// Cost traces ½‖V−V̂‖²_F, index 0 before the first iteration.
	Cost []float64
}
