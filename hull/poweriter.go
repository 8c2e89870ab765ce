package hull

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// degenerateNorm is the column-norm floor below which a Gram–Schmidt
// column counts as rank-deficient and is replaced by a fresh draw.
const degenerateNorm = 1e-12

// topEigenvectors — truncated symmetric eigensolver (top-k)
//
// Description:
//
//	Returns the k eigenvectors of the symmetric PSD matrix sym (m×m)
//	with the largest eigenvalues, as the columns of an m×k matrix in
//	descending eigenvalue order. Used for k < m, where factorizing the
//	full spectrum is wasted work; covariance matrices are PSD, so the
//	largest-magnitude and largest-value eigenpairs coincide.
//
// Algorithm Outline (orthogonal/subspace iteration with Ritz values):
//  1. Seed an m×k start block with Uniform(−1,1) draws and
//     orthonormalize it (modified Gram–Schmidt).
//  2. Per sweep: form AQ = sym·Q and the Rayleigh block B = Qᵀ·AQ;
//     eigendecompose B (k×k), rotate Q into the Ritz vectors.
//  3. Stop when every column satisfies ‖sym·q − λ·q‖₂ ≤ tol·max(1,|λ|);
//     otherwise advance the subspace, Q ← orth(AQ), and repeat.
//  4. Rank-deficient Gram–Schmidt columns are refreshed with new random
//     draws once; a second failure reports ErrEigenFailed.
//
// Errors:
//   - ErrEigenFailed — the k×k Ritz factorization failed, a column stayed
//     degenerate after a refresh, or maxSweeps ran out.
//
// Complexity: O(sweeps·(m²·k + m·k²)) time, O(m·k) space.
func topEigenvectors(sym *mat.SymDense, k int, o Options) (*mat.Dense, error) {
	m := sym.SymmetricDim()

	seed := o.seed
	if seed == 0 {
		seed = defaultRNGSeed
	}
	u := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(uint64(seed))}

	// Stage 1: seeded orthonormal start block.
	q := mat.NewDense(m, k, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			q.Set(i, j, u.Rand())
		}
	}
	if err := orthonormalize(q, u); err != nil {
		return nil, err
	}

	aq := mat.NewDense(m, k, nil)
	b := mat.NewDense(k, k, nil)
	bs := mat.NewSymDense(k, nil)
	ritz := mat.NewDense(m, k, nil)
	var (
		eig  mat.EigenSym
		rot  mat.Dense
		vals []float64
	)

	for sweep := 1; sweep <= o.maxSweeps; sweep++ {
		// Stage 2: Rayleigh–Ritz on the current subspace.
		aq.Mul(sym, q)
		b.Mul(q.T(), aq)
		for i := 0; i < k; i++ {
			for j := i; j < k; j++ {
				bs.SetSym(i, j, 0.5*(b.At(i, j)+b.At(j, i)))
			}
		}
		if !eig.Factorize(bs, true) {
			return nil, ErrEigenFailed
		}
		vals = eig.Values(vals)
		eig.VectorsTo(&rot)
		ritz.Mul(q, &rot)

		// Stage 3: residual test, aq·rot = sym·ritz by associativity.
		done := true
		for c := 0; c < k && done; c++ {
			var ss float64
			for r := 0; r < m; r++ {
				var av float64
				for rr := 0; rr < k; rr++ {
					av += aq.At(r, rr) * rot.At(rr, c)
				}
				d := av - vals[c]*ritz.At(r, c)
				ss += d * d
			}
			if math.Sqrt(ss) > o.eigenTol*math.Max(1, math.Abs(vals[c])) {
				done = false
			}
		}
		if done {
			// EigenSym orders ascending; flip to descending eigenvalue order.
			out := mat.NewDense(m, k, nil)
			for c := 0; c < k; c++ {
				src := k - 1 - c
				for r := 0; r < m; r++ {
					out.Set(r, c, ritz.At(r, src))
				}
			}
			return out, nil
		}

		// Stage 4: advance the subspace.
		q.Copy(aq)
		if err := orthonormalize(q, u); err != nil {
			return nil, err
		}
	}
	return nil, ErrEigenFailed
}

// orthonormalize applies modified Gram–Schmidt to the columns of q in
// place. A column whose remainder drops below degenerateNorm is
// replaced by a fresh draw from u and re-projected once; a repeat
// failure returns ErrEigenFailed.
func orthonormalize(q *mat.Dense, u distuv.Uniform) error {
	m, k := q.Dims()
	col := make([]float64, m)
	prev := make([]float64, m)
	for j := 0; j < k; j++ {
		mat.Col(col, j, q)
		projectOut(col, prev, q, j)
		nrm := floats.Norm(col, 2)
		if nrm < degenerateNorm {
			// Rank-deficient remainder: refresh and retry once.
			for i := range col {
				col[i] = u.Rand()
			}
			projectOut(col, prev, q, j)
			nrm = floats.Norm(col, 2)
			if nrm < degenerateNorm {
				return ErrEigenFailed
			}
		}
		floats.Scale(1/nrm, col)
		q.SetCol(j, col)
	}
	return nil
}

// projectOut subtracts from col its projections onto the first j
// (already orthonormal) columns of q, using prev as scratch.
func projectOut(col, prev []float64, q *mat.Dense, j int) {
	for i := 0; i < j; i++ {
		mat.Col(prev, i, q)
		floats.AddScaled(col, -floats.Dot(prev, col), prev)
	}
}
