// Package cnmf - deterministic RNG utilities for factor initialization.
//
// This file centralizes random generation for the optimizer.
//
// Goals:
//   - Determinism: same Seed ⇒ identical factorizations across platforms.
//   - Encapsulation: a single seeding policy; no time-based sources hidden anywhere.
//   - Independence: G and H draw from decorrelated substreams, so providing
//     one initializer never shifts the draws of the other.
//
// Concurrency:
//   - rand sources are NOT goroutine-safe; each Factorize call builds its own.
package cnmf

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// defaultRNGSeed is the fixed “zero” seed used when callers pass Seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultRNGSeed int64 = 1

// Substream identifiers for the independent initialization draws.
const (
	rngStreamG uint64 = 1
	rngStreamH uint64 = 2
)

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
//
// Rationale:
//   - G and H initialization must be independent substreams of one base seed
//     so that freezing or overriding one factor leaves the other's draw intact.
//   - A SplitMix64-style avalanche mix eliminates correlations between streams.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	// SplitMix64-style finalizer; see Vigna 2014 for the constants and rationale.
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// uniformStream returns a Uniform(0,1) sampler on its own deterministic
// substream. Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used
// verbatim before stream derivation.
//
// Complexity: O(1).
func uniformStream(seed int64, stream uint64) distuv.Uniform {
	base := seed
	if base == 0 {
		base = defaultRNGSeed
	}
	return distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewSource(uint64(deriveSeed(base, stream))),
	}
}

// fillUniform overwrites every entry of dst with draws from u, row-major.
//
// Complexity: O(r·c).
func fillUniform(dst *mat.Dense, u distuv.Uniform) {
	r, c := dst.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, u.Rand())
		}
	}
}
