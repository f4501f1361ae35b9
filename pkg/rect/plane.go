package rect

import "sightline/pkg/geom"

// ElevationPlane is the linear elevation model of a segment along the rotated
// x axis: predicted elevation at x is Const + Slope*x. It is derived once per
// segment and never mutated.
type ElevationPlane struct {
	Const float64
	Slope float64
}

// At returns the plane-predicted elevation at rotated-frame x.
func (p ElevationPlane) At(x float64) float64 {
	return p.Const + p.Slope*x
}

// FitPlane computes the elevation plane through the segment's endpoint
// elevations. The intercept is anchored so that evaluating the plane at the
// rotated head and tail x coordinates reproduces ZHead and ZTail.
func FitPlane(seg geom.Segment, angle float64) (ElevationPlane, error) {
	length := seg.Length()
	if length == 0 {
		return ElevationPlane{}, &ZeroLengthSegmentError{ID: seg.ID}
	}

	slope := (seg.ZTail - seg.ZHead) / length
	head := geom.Rotate(seg.Head, seg.Midpoint(), -angle)

	return ElevationPlane{
		Const: seg.ZHead - slope*head[0],
		Slope: slope,
	}, nil
}
