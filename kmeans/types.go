// Package kmeans - functional configuration, result type and sentinels.
package kmeans

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Defaults - single source of truth for zero-value behavior.
const (
	// DefaultMaxIter caps Lloyd iterations per restart.
	DefaultMaxIter = 100

	// DefaultRestarts is the number of independently seeded runs; the
	// lowest-inertia run wins.
	DefaultRestarts = 1

	// DefaultJitter scales the Uniform(0,1) perturbation Encoding adds to
	// every entry, keeping the one-hot memberships strictly positive.
	DefaultJitter = 0.2
)

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

var (
	// ErrEmptyMatrix indicates a nil input or one with no rows or columns.
	ErrEmptyMatrix = errors.New("kmeans: input matrix must have at least one row and one column")
	// ErrBadK indicates a cluster count outside 1..n.
	ErrBadK = errors.New("kmeans: cluster count must be between 1 and the number of columns")
)

// Internal panic messages (no magic strings).
const (
	panicMaxIterInvalid  = "kmeans: WithMaxIter: iteration cap must be at least 1"
	panicRestartsInvalid = "kmeans: WithRestarts: restart count must be at least 1"
	panicJitterInvalid   = "kmeans: WithJitter: jitter must be finite and non-negative"
)

// Result holds one clustering of the input's columns.
type Result struct {
	// Centroids is m×k; column c is the centroid of cluster c.
	Centroids *mat.Dense
	// Assign maps each input column to its cluster, len n.
	Assign []int
	// Inertia is the summed squared distance of columns to their centroids.
	Inertia float64
	// Iters is the Lloyd iteration count of the winning restart.
	Iters int
}

// Option mutates internal options. Constructors panic only on
// nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option
// setters. Fields are unexported; public entry points accept ...Option.
type Options struct {
	seed     int64   // 0 ⇒ defaultRNGSeed
	maxIter  int     // ≥ 1; DefaultMaxIter
	restarts int     // ≥ 1; DefaultRestarts
	jitter   float64 // ≥ 0; DefaultJitter (Encoding only)
}

// WithSeed fixes the base RNG seed. Seed 0 keeps the deterministic
// default stream. Restarts derive independent substreams from it.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithMaxIter overrides DefaultMaxIter. Panics if n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(panicMaxIterInvalid)
	}
	return func(o *Options) { o.maxIter = n }
}

// WithRestarts overrides DefaultRestarts. Panics if n < 1.
func WithRestarts(n int) Option {
	if n < 1 {
		panic(panicRestartsInvalid)
	}
	return func(o *Options) { o.restarts = n }
}

// WithJitter overrides DefaultJitter for Encoding. Zero disables the
// perturbation (exact one-hot rows). Panics on NaN, Inf or negatives.
func WithJitter(j float64) Option {
	if math.IsNaN(j) || math.IsInf(j, 0) || j < 0 {
		panic(panicJitterInvalid)
	}
	return func(o *Options) { o.jitter = j }
}

// gatherOptions applies defaults, then the provided setters in order.
func gatherOptions(opts ...Option) Options {
	o := Options{
		seed:     0,
		maxIter:  DefaultMaxIter,
		restarts: DefaultRestarts,
		jitter:   DefaultJitter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
