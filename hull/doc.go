// Package hull selects convex-hull anchor columns from a data matrix —
// the extreme points that convex-combination factorizations (see
// package cnmf) mix to rebuild everything in between.
//
// 🚀 What does it do?
//
//	Points(v, k) inspects the data cloud formed by the columns of
//	V (m×n) and returns S (m×p): a deduplicated set of original columns
//	that lie on the cloud's convex hull.  Exhaustively hulling an
//	m-dimensional cloud is exponential in m, so the search follows the
//	classic pairwise-projection scheme instead:
//	  1. covariance of V's rows, then its leading eigenvectors
//	     (all of them when k ≥ m, a truncated top-k solve otherwise);
//	  2. for every eigenvector pair, project the columns onto the 2D
//	     eigenplane and take the planar convex hull;
//	  3. pool the hull vertices' original columns, dropping duplicates.
//
// ✨ Key features:
//   - mixed-sign data welcome; only covariance structure matters
//   - truncated top-k eigensolver (seeded subspace iteration) avoids the
//     full spectrum when k ≪ m
//   - exact duplicate-column removal, first-seen order kept
//   - deterministic: fixed default seed, WithSeed to vary draws
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/hullnmf/hull"
//
//	s, err := hull.Points(v, 4, hull.WithSeed(7))
//	if err != nil {
//	  // ErrEmptyMatrix / ErrBasisCount / ErrNoPlane / ErrEigenFailed
//	}
//	_, p := s.Dims() // anchor count is data-dependent
//
// Performance:
//
//   - Time:   O(k²·(n log n + m·n)) over eigenplanes, plus the
//     eigendecomposition (O(m³) full, O(sweeps·m²·k) truncated)
//   - Memory: O(m·n) for projections and pooled anchors
//
// The anchor count p depends on the data: expect p ≥ k for clouds in
// general position, but no minimum is enforced.
package hull
