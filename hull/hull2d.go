package hull

import "sort"

// convexHull2D — planar convex hull (Andrew's monotone chain)
//
// Description:
//
//	Returns the indices of the points (xs[i], ys[i]) that form the
//	vertices of their convex hull, counterclockwise starting from the
//	lexicographically smallest point. Interior and collinear boundary
//	points are excluded; exact duplicates collapse onto one vertex
//	representative (which one is determined by the index tie-break).
//
// Algorithm Outline:
//  1. Sort point indices by (x, y), ties by index — a total order, so
//     the result is deterministic for any input permutation.
//  2. Build the lower chain left→right, popping while the last turn is
//     non-left (cross ≤ 0).
//  3. Build the upper chain right→left the same way.
//  4. Concatenate both chains, dropping each chain's final point
//     (it opens the other chain).
//
// Degenerate inputs: n == 0 ⇒ nil; n == 1 ⇒ [i₀]; all points collinear
// (or equal) ⇒ the two extreme indices.
//
// Complexity: O(n log n) time, O(n) space.
func convexHull2D(xs, ys []float64) []int {
	n := len(xs)
	switch n {
	case 0:
		return nil
	case 1:
		return []int{0}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if xs[ia] != xs[ib] {
			return xs[ia] < xs[ib]
		}
		if ys[ia] != ys[ib] {
			return ys[ia] < ys[ib]
		}
		return ia < ib
	})

	// Lower chain.
	lower := make([]int, 0, n)
	for _, idx := range order {
		for len(lower) >= 2 && cross2D(xs, ys, lower[len(lower)-2], lower[len(lower)-1], idx) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, idx)
	}

	// Upper chain.
	upper := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		idx := order[i]
		for len(upper) >= 2 && cross2D(xs, ys, upper[len(upper)-2], upper[len(upper)-1], idx) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, idx)
	}

	// Each chain's last point is the other chain's first.
	hull := lower[:len(lower)-1]
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

// cross2D returns the z-component of (a−o)×(b−o): positive for a left
// turn o→a→b, zero for collinear points.
func cross2D(xs, ys []float64, o, a, b int) float64 {
	return (xs[a]-xs[o])*(ys[b]-ys[o]) - (ys[a]-ys[o])*(xs[b]-xs[o])
}
