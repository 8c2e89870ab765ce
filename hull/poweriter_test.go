package hull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// rayleigh returns qⱼᵀ·A·qⱼ for column j of q, the Ritz estimate of the
// eigenvalue that column converged to.
func rayleigh(sym *mat.SymDense, q *mat.Dense, j int) float64 {
	m, _ := q.Dims()
	col := make([]float64, m)
	mat.Col(col, j, q)
	v := mat.NewVecDense(m, col)
	var av mat.VecDense
	av.MulVec(sym, v)
	return mat.Dot(v, &av)
}

// columnDot returns the inner product of column j of q with ref.
func columnDot(q *mat.Dense, j int, ref []float64) float64 {
	total := 0.0
	for i, r := range ref {
		total += q.At(i, j) * r
	}
	return total
}

// TestTopEigenvectors_DiagonalSpectrum solves diag(5,3,1) for its top
// two eigenpairs: the columns must align with the first two axes, in
// descending eigenvalue order.
func TestTopEigenvectors_DiagonalSpectrum(t *testing.T) {
	sym := mat.NewSymDense(3, []float64{
		5, 0, 0,
		0, 3, 0,
		0, 0, 1,
	})

	q, err := topEigenvectors(sym, 2, gatherOptions())
	require.NoError(t, err, "a well-separated spectrum must converge")

	m, k := q.Dims()
	assert.Equal(t, 3, m, "eigenvectors live in the input space")
	assert.Equal(t, 2, k, "exactly k columns come back")

	assert.InDelta(t, 5.0, rayleigh(sym, q, 0), 1e-6, "column 0 must carry the largest eigenvalue")
	assert.InDelta(t, 3.0, rayleigh(sym, q, 1), 1e-6, "column 1 must carry the second eigenvalue")

	assert.InDelta(t, 1.0, abs(columnDot(q, 0, []float64{1, 0, 0})), 1e-6, "column 0 must align with e1")
	assert.InDelta(t, 1.0, abs(columnDot(q, 1, []float64{0, 1, 0})), 1e-6, "column 1 must align with e2")
}

// TestTopEigenvectors_KnownSpectrum uses A = 5·u₁u₁ᵀ + 3·u₂u₂ᵀ + u₃u₃ᵀ
// over the exact orthonormal triple (1,2,2)/3, (2,1,−2)/3, (2,−2,1)/3,
// so the true eigenpairs are known in closed form.
func TestTopEigenvectors_KnownSpectrum(t *testing.T) {
	sym := mat.NewSymDense(3, []float64{
		7.0 / 3.0, 4.0 / 3.0, 0,
		4.0 / 3.0, 3, 4.0 / 3.0,
		0, 4.0 / 3.0, 11.0 / 3.0,
	})
	u1 := []float64{1.0 / 3.0, 2.0 / 3.0, 2.0 / 3.0}
	u2 := []float64{2.0 / 3.0, 1.0 / 3.0, -2.0 / 3.0}
	u3 := []float64{2.0 / 3.0, -2.0 / 3.0, 1.0 / 3.0}

	rebuilt := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rebuilt.Set(i, j, 5*u1[i]*u1[j]+3*u2[i]*u2[j]+u3[i]*u3[j])
		}
	}
	require.True(t, mat.EqualApprox(sym, rebuilt, 1e-12), "fixture must equal its spectral sum")

	q, err := topEigenvectors(sym, 2, gatherOptions())
	require.NoError(t, err, "a well-separated spectrum must converge")

	assert.InDelta(t, 5.0, rayleigh(sym, q, 0), 1e-6, "column 0 must carry eigenvalue 5")
	assert.InDelta(t, 3.0, rayleigh(sym, q, 1), 1e-6, "column 1 must carry eigenvalue 3")
	assert.InDelta(t, 1.0, abs(columnDot(q, 0, u1)), 1e-6, "column 0 must align with u₁ up to sign")
	assert.InDelta(t, 1.0, abs(columnDot(q, 1, u2)), 1e-6, "column 1 must align with u₂ up to sign")

	for i := 0; i < 2; i++ {
		for j := i; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			got := 0.0
			for r := 0; r < 3; r++ {
				got += q.At(r, i) * q.At(r, j)
			}
			assert.InDelta(t, want, got, 1e-8, "columns must stay orthonormal")
		}
	}
}

// TestTopEigenvectors_SeedDeterminism checks the solver is a pure
// function of its seed: same seed, bit-identical block.
func TestTopEigenvectors_SeedDeterminism(t *testing.T) {
	sym := mat.NewSymDense(3, []float64{
		5, 1, 0,
		1, 3, 1,
		0, 1, 1,
	})

	a, err := topEigenvectors(sym, 2, gatherOptions(WithSeed(9)))
	require.NoError(t, err)
	b, err := topEigenvectors(sym, 2, gatherOptions(WithSeed(9)))
	require.NoError(t, err)

	assert.True(t, mat.Equal(a, b), "equal seeds must reproduce the block exactly")
}

// TestOrthonormalize_RefreshesDegenerateColumn feeds Gram–Schmidt two
// identical columns: the second must be replaced by a fresh draw and the
// result must still be orthonormal.
func TestOrthonormalize_RefreshesDegenerateColumn(t *testing.T) {
	q := mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		2, 2,
	})
	u := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(7)}

	err := orthonormalize(q, u)
	require.NoError(t, err, "a refresh must rescue one collapsed column")

	for i := 0; i < 2; i++ {
		for j := i; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			got := 0.0
			for r := 0; r < 3; r++ {
				got += q.At(r, i) * q.At(r, j)
			}
			assert.InDelta(t, want, got, 1e-12, "columns must come out orthonormal")
		}
	}
}

// TestOrthonormalize_ReportsUnrecoverableRank asks for two orthonormal
// columns in a one-dimensional space, which no refresh can provide.
func TestOrthonormalize_ReportsUnrecoverableRank(t *testing.T) {
	q := mat.NewDense(1, 2, []float64{2, 3})
	u := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(7)}

	err := orthonormalize(q, u)
	assert.ErrorIs(t, err, ErrEigenFailed, "rank collapse past the refresh must error")
}

// abs returns |v|.
func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
