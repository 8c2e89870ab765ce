package hull

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Points — convex-hull anchor selection
//
// Description:
//
//	Points returns S (m×p): columns of v that lie on the convex hull of
//	the data cloud, pooled over two-dimensional eigenplane projections
//	and deduplicated. numBasis controls how many leading eigenvectors
//	span the projection planes; the anchor count p is data-dependent.
//
// Algorithm Outline:
//  1. m == 1 degenerates to the interval hull: S = [min(v), max(v)].
//  2. Σ = covariance of v's rows (the n columns are the observations).
//  3. Leading eigenvectors of Σ: the full spectrum when numBasis ≥ m
//     (gonum EigenSym), else the top numBasis by truncated subspace
//     iteration. Fewer than two eigenvectors ⇒ ErrNoPlane.
//  4. For every eigenvector pair (i < j): project all columns onto the
//     plane, take the planar convex hull, pool the hull vertices'
//     original columns. Duplicates (exact float64 bits) are dropped,
//     first-seen order kept.
//
// Contracts:
//   - v is read-only; the result is freshly allocated.
//   - Deterministic for a fixed seed: projections, hulls and pooling
//     order do not depend on map iteration or time.
//
// Errors:
//   - ErrEmptyMatrix — v is nil or has no rows or columns.
//   - ErrBasisCount  — numBasis < 1.
//   - ErrNoPlane     — a single eigenvector (numBasis == 1 with m ≥ 2)
//     spans no plane.
//   - ErrEigenFailed — either eigensolver failed to converge.
//
// Complexity: O(numBasis²·(n log n + m·n)) plus the eigendecomposition.
func Points(v mat.Matrix, numBasis int, opts ...Option) (*mat.Dense, error) {
	if v == nil {
		return nil, ErrEmptyMatrix
	}
	m, n := v.Dims()
	if m < 1 || n < 1 {
		return nil, ErrEmptyMatrix
	}
	if numBasis < 1 {
		return nil, ErrBasisCount
	}
	o := gatherOptions(opts...)

	// Stage 1: one-dimensional data reduces to the interval hull.
	if m == 1 {
		lo, hi := v.At(0, 0), v.At(0, 0)
		for j := 1; j < n; j++ {
			val := v.At(0, j)
			if val < lo {
				lo = val
			}
			if val > hi {
				hi = val
			}
		}
		return mat.NewDense(1, 2, []float64{lo, hi}), nil
	}

	// Stage 2: covariance across the column observations.
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, v.T(), nil)

	// Stage 3: leading eigenvectors of the covariance.
	var ev *mat.Dense
	if numBasis >= m {
		var eig mat.EigenSym
		if !eig.Factorize(&cov, true) {
			return nil, ErrEigenFailed
		}
		var full mat.Dense
		eig.VectorsTo(&full)
		ev = &full
	} else {
		trunc, err := topEigenvectors(&cov, numBasis, o)
		if err != nil {
			return nil, err
		}
		ev = trunc
	}
	_, nv := ev.Dims()
	if nv < 2 {
		return nil, ErrNoPlane
	}

	// Stage 4: pool hull vertices over every eigenplane.
	pool := newColumnPool(m)
	plane := mat.NewDense(2, m, nil)
	proj := mat.NewDense(2, n, nil)
	for i := 0; i < nv-1; i++ {
		for j := i + 1; j < nv; j++ {
			for r := 0; r < m; r++ {
				plane.Set(0, r, ev.At(r, i))
				plane.Set(1, r, ev.At(r, j))
			}
			proj.Mul(plane, v)
			for _, idx := range convexHull2D(proj.RawRowView(0), proj.RawRowView(1)) {
				pool.add(v, idx)
			}
		}
	}
	return pool.matrix(), nil
}

// columnPool accumulates matrix columns in first-seen order, dropping
// exact (bit-level) duplicates.
type columnPool struct {
	dim  int
	cols [][]float64
	seen map[string]struct{}
	buf  []float64
	key  []byte
}

func newColumnPool(dim int) *columnPool {
	return &columnPool{
		dim:  dim,
		seen: make(map[string]struct{}),
		buf:  make([]float64, dim),
		key:  make([]byte, 8*dim),
	}
}

// add pools column idx of v unless an identical column was pooled before.
func (p *columnPool) add(v mat.Matrix, idx int) {
	mat.Col(p.buf, idx, v)
	for r, val := range p.buf {
		binary.LittleEndian.PutUint64(p.key[8*r:], math.Float64bits(val))
	}
	if _, ok := p.seen[string(p.key)]; ok {
		return
	}
	p.seen[string(p.key)] = struct{}{}
	col := make([]float64, p.dim)
	copy(col, p.buf)
	p.cols = append(p.cols, col)
}

// matrix materializes the pooled anchors as an m×p dense matrix.
// The pool is never empty: every eigenplane hull yields at least one vertex.
func (p *columnPool) matrix() *mat.Dense {
	out := mat.NewDense(p.dim, len(p.cols), nil)
	for c, col := range p.cols {
		out.SetCol(c, col)
	}
	return out
}
