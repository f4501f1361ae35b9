// Package grid generates regular sample lattices over axis-aligned bounds.
package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// DefaultDecimals is the coordinate rounding applied when callers pass no
// explicit precision. Rounding makes repeated derivations of the same
// rectangle produce bit-identical point sequences.
const DefaultDecimals = 6

// InvalidGridSpecError reports a grid request with fewer than one column or
// row.
type InvalidGridSpecError struct {
	NCols, NRows int
}

func (e *InvalidGridSpecError) Error() string {
	return fmt.Sprintf("grid needs at least 1 column and 1 row, got %dx%d", e.NCols, e.NRows)
}

// Populate lays a full nCols x nRows lattice over the bound: nCols evenly
// spaced x values crossed with nRows evenly spaced y values, both endpoints
// inclusive, every coordinate rounded to decimals digits. Points are emitted
// column by column (outer loop over x, inner over y); consumers that reshape
// the flat sequence rely on this order.
func Populate(b orb.Bound, nCols, nRows, decimals int) ([]orb.Point, error) {
	if nCols < 1 || nRows < 1 {
		return nil, &InvalidGridSpecError{NCols: nCols, NRows: nRows}
	}

	xs := linspace(b.Min[0], b.Max[0], nCols)
	ys := linspace(b.Min[1], b.Max[1], nRows)

	pts := make([]orb.Point, 0, nCols*nRows)
	for _, x := range xs {
		for _, y := range ys {
			pts = append(pts, orb.Point{round(x, decimals), round(y, decimals)})
		}
	}
	return pts, nil
}

// linspace returns n evenly spaced values over [lo, hi], endpoints inclusive.
// n == 1 yields just lo.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	out[0] = lo
	if n == 1 {
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
