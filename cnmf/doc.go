// Package cnmf implements convex-hull convolutive non-negative matrix
// factorization (CH-CNMF): a decomposition of a mixed-sign matrix into
// convex combinations of its own extreme columns, convolved over time.
//
// 🚀 What is CH-CNMF?
//
//	Given V (m×n) and a frame count T, the factorization learns
//
//	    V ≈ Σₜ W[:,:,t] · shift→(H, t),   W[:,:,t] = S · G[:,:,t]
//
//	where S (m×p) holds anchor columns picked from the convex hull of
//	the data, every column of every G frame lies on the probability
//	simplex (entries ≥ 0, summing to 1), and H (k×n) is a non-negative
//	encoding.  Each basis vector is therefore a convex combination of
//	real data points — directly interpretable, even when V itself has
//	negative entries.  It’s useful in:
//	  • Audio & spectrogram decomposition into shifted templates
//	  • Endmember extraction / archetypal analysis
//	  • Parts-based summaries of signed feature matrices
//
// ✨ Key features:
//   - mixed-sign input: positive/negative split matrices keep the
//     multiplicative updates valid on data plain NMF rejects
//   - convexity invariant: G columns are renormalized onto the simplex
//     after every update, so bases never leave the hull of S
//   - convolutive model: temporal structure via column-shifted copies
//     of H (shift utilities are exported for custom reconstructions)
//   - pluggable Reconstructor and initializers (hull anchors by
//     default; bring your own S, G, H to warm-start or freeze factors)
//   - deterministic: fixed default seed, explicit Seed option
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/hullnmf/cnmf"
//
//	dec, err := cnmf.Factorize(v, 4, 3, nil) // 4 bases, 3 frames, defaults
//	if err != nil {
//	  // handle ErrEmptyMatrix / ErrBasisCount / ...
//	}
//	vhat, _ := cnmf.Reconstruct(dec.W, dec.H)
//	fmt.Println("iterations:", len(dec.Cost)-1)
//
// Performance:
//
//   - Time:   O(maxIter · T · p·k·n) multiplicative work plus the
//     one-off hull selection
//   - Memory: O((m+p+k)·n) scratch beyond the factors themselves
//
// The loop is strictly sequential; frame order inside the G update is
// part of the algorithm (later frames see earlier frames' updates).
// See example_test.go for runnable scenarios.
package cnmf
