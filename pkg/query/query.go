// Package query reduces sampled terrain elevations against segment sight-line
// planes into per-point clearances or obstruction fractions.
package query

import (
	"fmt"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"

	"sightline/pkg/grid"
	"sightline/pkg/raster"
	"sightline/pkg/rect"
)

// Result carries the per-point signed clearances for one rectangle, aligned
// with the grid order that produced them. Positive clearance means the sight
// line passes above the terrain at that point.
type Result struct {
	ID         int
	Clearances []float64
}

// Clearances compares plane-predicted elevation against sampled terrain at
// every grid point.
func Clearances(rc rect.OrientedRectangle, plane rect.ElevationPlane, pts []orb.Point, vals []float64) Result {
	diffs := make([]float64, len(pts))
	for i, p := range pts {
		diffs[i] = plane.At(p[0]) - vals[i]
	}
	return Result{ID: rc.ID, Clearances: diffs}
}

// Options control obstruction queries.
type Options struct {
	// NRows is the number of grid rows across the rectangle's short axis.
	// 1 degenerates the rectangle to a single transect, making the query a
	// plain two-point line-of-sight check.
	NRows int
	// DistPerCol is the segment distance covered by each grid column. The
	// column count is floor(length/DistPerCol)+1, so even very short segments
	// get at least one column.
	DistPerCol float64
	// Decimals is the grid coordinate rounding; grid.DefaultDecimals when 0.
	Decimals int
	// Fill is the elevation substituted for no-data samples. A large value
	// counts unknown terrain as obstructed.
	Fill float64
}

func (o Options) decimals() int {
	if o.Decimals == 0 {
		return grid.DefaultDecimals
	}
	return o.Decimals
}

// ClearanceGrid populates an explicit nCols x nRows grid over the rectangle,
// samples the raster and returns the grid together with the per-point
// clearances. No-data samples are kept as-is; callers needing a fill policy
// use MeanObstruction.
func ClearanceGrid(s raster.Sampler, rc rect.OrientedRectangle, plane rect.ElevationPlane, nCols, nRows, decimals int) ([]orb.Point, Result, error) {
	pts, err := grid.Populate(rc.Bound, nCols, nRows, decimals)
	if err != nil {
		return nil, Result{}, err
	}
	vals := raster.SamplePoints(s, rc, pts)
	return pts, Clearances(rc, plane, pts, vals), nil
}

// MeanObstruction samples the rectangle's grid and returns the fraction of
// points where the terrain reaches or exceeds the sight-line plane.
func MeanObstruction(s raster.Sampler, rc rect.OrientedRectangle, plane rect.ElevationPlane, opts Options) (float64, error) {
	if opts.DistPerCol <= 0 {
		return 0, fmt.Errorf("rectangle %d: distance per column must be positive, got %g", rc.ID, opts.DistPerCol)
	}

	nCols := int(rc.Length/opts.DistPerCol) + 1
	pts, err := grid.Populate(rc.Bound, nCols, opts.NRows, opts.decimals())
	if err != nil {
		return 0, err
	}

	vals := raster.SamplePoints(s, rc, pts)
	noData := s.NoData()
	for i, v := range vals {
		if v == noData {
			vals[i] = opts.Fill
		}
	}

	res := Clearances(rc, plane, pts, vals)
	under := make([]float64, len(res.Clearances))
	for i, c := range res.Clearances {
		if c < 0 {
			under[i] = 1
		}
	}
	return stat.Mean(under, nil), nil
}
