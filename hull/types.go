// Package hull - functional configuration and sentinel errors.
//
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions helper (internal) that applies defaults then setters.
package hull

import (
	"errors"
	"math"
)

// Defaults - single source of truth for zero-value behavior.
const (
	// DefaultEigenTolerance bounds the truncated eigensolver's per-column
	// residual ‖Σ·q − λ·q‖₂ relative to max(1, |λ|).
	DefaultEigenTolerance = 1e-10

	// DefaultMaxSweeps caps subspace-iteration sweeps before the solver
	// reports ErrEigenFailed.
	DefaultMaxSweeps = 500
)

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

var (
	// ErrEmptyMatrix indicates a nil input or one with no rows or columns.
	ErrEmptyMatrix = errors.New("hull: input matrix must have at least one row and one column")
	// ErrBasisCount indicates a non-positive number of basis elements.
	ErrBasisCount = errors.New("hull: number of basis elements must be at least 1")
	// ErrNoPlane indicates too few eigenvectors to form any projection plane.
	ErrNoPlane = errors.New("hull: at least two eigenvectors are needed to form a projection plane")
	// ErrEigenFailed indicates the eigendecomposition did not converge.
	ErrEigenFailed = errors.New("hull: eigendecomposition failed to converge")
)

// Internal panic messages (no magic strings).
const (
	panicEigenTolInvalid  = "hull: WithEigenTolerance: tolerance must be finite and positive"
	panicMaxSweepsInvalid = "hull: WithMaxSweeps: sweep cap must be at least 1"
)

// Option mutates internal options. Constructors panic only on
// nonsensical values (programmer error); data problems surface as
// sentinel errors from Points instead.
type Option func(*Options)

// Options stores the effective configuration after applying Option
// setters. Fields are unexported; public entry points accept ...Option
// and resolve them via gatherOptions.
type Options struct {
	seed      int64   // 0 ⇒ defaultRNGSeed
	eigenTol  float64 // > 0; DefaultEigenTolerance
	maxSweeps int     // ≥ 1; DefaultMaxSweeps
}

// WithSeed fixes the RNG seed of the truncated eigensolver's start
// block. Seed 0 keeps the deterministic default stream.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithEigenTolerance overrides DefaultEigenTolerance.
// Panics if tol is NaN, infinite or not positive.
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicEigenTolInvalid)
	}
	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxSweeps overrides DefaultMaxSweeps. Panics if n < 1.
func WithMaxSweeps(n int) Option {
	if n < 1 {
		panic(panicMaxSweepsInvalid)
	}
	return func(o *Options) { o.maxSweeps = n }
}

// gatherOptions applies defaults, then the provided setters in order.
func gatherOptions(opts ...Option) Options {
	o := Options{
		seed:      0,
		eigenTol:  DefaultEigenTolerance,
		maxSweeps: DefaultMaxSweeps,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
