// Package kmeans clusters the columns of a matrix with Lloyd's
// algorithm and turns the result into warm-start encodings for
// factorization (see package cnmf).
//
// 🚀 What does it do?
//
//	Partition(x, k) groups the n columns of x (m×n) into k clusters:
//	k-means++ seeding, Lloyd refinement, optional multi-restart with
//	the best inertia winning.  Encoding(v, k) goes one step further and
//	emits a k×n matrix of one-hot memberships softened by uniform
//	jitter — the classic "cluster then perturb" initialization for the
//	encoding factor H, where exact zeros would stay frozen under
//	multiplicative updates.
//
// ✨ Key features:
//   - columns are the observations, matching the data layout of cnmf
//   - deterministic: fixed default seed, independent restart substreams
//   - empty clusters are reseeded to the farthest column, never dropped
//   - jitter keeps every encoding entry strictly positive by default
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/hullnmf/kmeans"
//
//	h, err := kmeans.Encoding(v, 4, kmeans.WithRestarts(5))
//	if err != nil {
//	  // ErrEmptyMatrix / ErrBadK
//	}
//	dec, err := cnmf.Factorize(v, 4, 3, &cnmf.Options{HInit: h})
//
// Performance:
//
//   - Time:   O(restarts · iters · k·m·n) plus O(k²·m·n) seeding
//   - Memory: O(m·n) for the extracted columns
package kmeans
