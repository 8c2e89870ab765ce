package hull_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hullnmf/hull"
)

// //////////////////////////////////////////////////////////////////////////////
// ExamplePoints
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A planar cloud of ten 2-D points: four rectangle corners plus six
//	strictly interior points. The pairwise eigenplane projection is an
//	isometry here, so the anchors are exactly the rectangle corners.
//
// Options:
//   - none (full covariance spectrum, default tolerances)
//
// Use case:
//
//	Picking the extreme columns of a data matrix as a convex basis for
//	archetypal-style decompositions.
//
// Complexity: O(m³) for the spectrum plus O(n log n) per eigenplane.
func ExamplePoints() {
	v := mat.NewDense(2, 10, []float64{
		-2, 0, 1, 2, -1, 0.5, 2, 1, -1, -2,
		-1, 0, 0, -1, 1, -0.5, 2, 1, -0.5, 2,
	})

	s, err := hull.Points(v, 2)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	_, p := s.Dims()
	fmt.Println("anchors:", p)

	// Every anchor is a verbatim copy of one input column.
	fromData := true
	col := make([]float64, 2)
	for j := 0; j < p; j++ {
		mat.Col(col, j, s)
		match := false
		for c := 0; c < 10 && !match; c++ {
			match = v.At(0, c) == col[0] && v.At(1, c) == col[1]
		}
		fromData = fromData && match
	}
	fmt.Println("anchors drawn from data:", fromData)
	// Output:
	// anchors: 4
	// anchors drawn from data: true
}

// //////////////////////////////////////////////////////////////////////////////
// ExamplePoints_interval
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A single-row observation matrix. The convex hull of scalars is the
//	closed interval spanned by the data, so the anchors collapse to
//	[min, max] with no eigenwork at all.
//
// Use case:
//
//	Degenerate inputs from upstream pipelines that sometimes hand over
//	one feature row.
//
// Complexity: O(n).
func ExamplePoints_interval() {
	v := mat.NewDense(1, 6, []float64{3, -1, 4, 1, -5, 9})

	s, err := hull.Points(v, 2)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("S = [%g %g]\n", s.At(0, 0), s.At(0, 1))
	// Output:
	// S = [-5 9]
}
