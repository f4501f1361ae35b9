// Package raster provides nearest-sample elevation lookups against gridded
// surface models.
package raster

import (
	"math"

	"github.com/paulmach/orb"

	"sightline/pkg/geom"
	"sightline/pkg/rect"
)

// Sampler queries a surface model at planar coordinates. Sampling never
// fails: coordinates the model cannot answer (out of bounds, missing cells)
// yield the model's own no-data value. Lookups are nearest-sample, no
// interpolation.
type Sampler interface {
	// Sample returns one elevation per point, aligned with the input order.
	Sample(pts []orb.Point) []float64
	// NoData reports the sentinel this model uses for missing values.
	NoData() float64
}

// Const is a Sampler that reports a fixed elevation everywhere. Useful for
// calibration runs and tests.
type Const struct {
	Elevation float64
}

func (c Const) Sample(pts []orb.Point) []float64 {
	vals := make([]float64, len(pts))
	for i := range vals {
		vals[i] = c.Elevation
	}
	return vals
}

// NoData returns a sentinel Const never emits.
func (c Const) NoData() float64 {
	return math.Inf(-1)
}

// SamplePoints maps grid points from the rectangle's rotated frame back into
// the raster frame and samples them. The inverse rotation is by +angle about
// the rectangle's own origin, exactly undoing the rotation that built it.
func SamplePoints(s Sampler, rc rect.OrientedRectangle, pts []orb.Point) []float64 {
	world := geom.RotatePoints(pts, rc.Origin, rc.Angle)
	return s.Sample(world)
}
