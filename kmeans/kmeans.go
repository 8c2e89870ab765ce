package kmeans

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Partition — column clustering (k-means++ / Lloyd)
//
// Description:
//
//	Partition groups the n columns of x (m×n) into k clusters and
//	returns the centroids, the per-column assignment and the inertia.
//	With WithRestarts(r), r independently seeded runs race and the
//	lowest inertia wins; ties keep the earliest restart.
//
// Algorithm Outline:
//  1. Extract the columns once (column slices are the observations).
//  2. Seed k centroids with k-means++: first uniform, the rest sampled
//     proportionally to the squared distance from the chosen set.
//  3. Lloyd refinement: assign columns to the nearest centroid, move
//     each centroid to its members' mean, repeat until assignments
//     stabilize or the iteration cap is hit. An emptied cluster is
//     reseeded to the column farthest from its centroid.
//
// Errors:
//   - ErrEmptyMatrix — x is nil or has no rows or columns.
//   - ErrBadK        — k < 1 or k > n.
//
// Complexity: O(restarts·iters·k·m·n) time, O(m·n) space.
func Partition(x mat.Matrix, k int, opts ...Option) (*Result, error) {
	if x == nil {
		return nil, ErrEmptyMatrix
	}
	m, n := x.Dims()
	if m < 1 || n < 1 {
		return nil, ErrEmptyMatrix
	}
	if k < 1 || k > n {
		return nil, ErrBadK
	}
	o := gatherOptions(opts...)
	base := o.seed
	if base == 0 {
		base = defaultRNGSeed
	}

	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = make([]float64, m)
		mat.Col(cols[j], j, x)
	}

	var best *Result
	for r := 1; r <= o.restarts; r++ {
		rng := rand.New(rand.NewSource(uint64(deriveSeed(base, uint64(r)))))
		res := lloyd(cols, m, k, o.maxIter, rng)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// Encoding — one-hot cluster memberships as a warm-start encoding
//
// Description:
//
//	Encoding clusters the columns of v into k groups and returns the
//	k×n matrix H with H[c][j] = 1 where column j belongs to cluster c,
//	plus jitter·Uniform(0,1) on every entry. The jitter (DefaultJitter
//	unless WithJitter overrides it) keeps all entries strictly positive:
//	multiplicative update rules can scale positive entries but never
//	revive exact zeros.
//
// Errors: as Partition.
//
// Complexity: Partition plus O(k·n).
func Encoding(v mat.Matrix, k int, opts ...Option) (*mat.Dense, error) {
	res, err := Partition(v, k, opts...)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	base := o.seed
	if base == 0 {
		base = defaultRNGSeed
	}

	_, n := v.Dims()
	h := mat.NewDense(k, n, nil)
	for j, c := range res.Assign {
		h.Set(c, j, 1)
	}
	if o.jitter > 0 {
		// The jitter stream id sits just past the restart streams 1..restarts.
		u := distuv.Uniform{
			Min: 0,
			Max: 1,
			Src: rand.NewSource(uint64(deriveSeed(base, uint64(o.restarts)+1))),
		}
		h.Apply(func(_, _ int, val float64) float64 { return val + o.jitter*u.Rand() }, h)
	}
	return h, nil
}

// lloyd runs one seeded k-means refinement over the column slices.
func lloyd(cols [][]float64, m, k, maxIter int, rng *rand.Rand) *Result {
	n := len(cols)
	cents := seedPlusPlus(cols, m, k, rng)
	assign := make([]int, n)
	prev := make([]int, n)
	for j := range prev {
		prev[j] = -1
	}
	dist := make([]float64, n)
	counts := make([]int, k)

	iters := 0
	for it := 1; it <= maxIter; it++ {
		iters = it

		// Assignment step.
		changed := false
		for j, col := range cols {
			bi, bd := 0, math.MaxFloat64
			for c, cent := range cents {
				if d := sqDist(col, cent); d < bd {
					bd, bi = d, c
				}
			}
			assign[j] = bi
			dist[j] = bd
			if bi != prev[j] {
				changed = true
			}
		}
		if !changed {
			break
		}
		copy(prev, assign)

		// Update step.
		for c := range cents {
			counts[c] = 0
			for i := range cents[c] {
				cents[c][i] = 0
			}
		}
		for j, col := range cols {
			counts[assign[j]]++
			floats.Add(cents[assign[j]], col)
		}
		for c := range cents {
			if counts[c] == 0 {
				// Reseed an emptied cluster to the worst-covered column.
				far := argmax(dist)
				copy(cents[c], cols[far])
				dist[far] = 0
				continue
			}
			floats.Scale(1/float64(counts[c]), cents[c])
		}
	}

	centroids := mat.NewDense(m, k, nil)
	for c, cent := range cents {
		centroids.SetCol(c, cent)
	}
	out := make([]int, n)
	copy(out, assign)
	return &Result{
		Centroids: centroids,
		Assign:    out,
		Inertia:   floats.Sum(dist),
		Iters:     iters,
	}
}

// seedPlusPlus picks k starting centroids: the first uniformly, the
// rest proportionally to the squared distance from the picked set.
func seedPlusPlus(cols [][]float64, m, k int, rng *rand.Rand) [][]float64 {
	n := len(cols)
	cents := make([][]float64, 0, k)
	first := make([]float64, m)
	copy(first, cols[rng.Intn(n)])
	cents = append(cents, first)

	d2 := make([]float64, n)
	for len(cents) < k {
		var total float64
		for j, col := range cols {
			nearest := math.MaxFloat64
			for _, cent := range cents {
				if d := sqDist(col, cent); d < nearest {
					nearest = d
				}
			}
			d2[j] = nearest
			total += nearest
		}
		var pick int
		if total == 0 {
			// Every column coincides with a centroid already.
			pick = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			acc := 0.0
			pick = n - 1
			for j, w := range d2 {
				acc += w
				if acc >= target {
					pick = j
					break
				}
			}
		}
		next := make([]float64, m)
		copy(next, cols[pick])
		cents = append(cents, next)
	}
	return cents
}

// deriveSeed mixes a parent seed and a stream identifier into a new
// 64-bit seed (SplitMix64-style finalizer; see Vigna 2014). Restart
// substreams derived this way stay decorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// sqDist returns the squared euclidean distance between equal-length slices.
func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// argmax returns the index of the largest value in s.
func argmax(s []float64) int {
	best := 0
	for i, v := range s {
		if v > s[best] {
			best = i
		}
	}
	return best
}
