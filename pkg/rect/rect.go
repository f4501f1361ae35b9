package rect

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"sightline/pkg/geom"
)

// Angle returns the angle theta (radians) such that rotating the segment by
// -theta about any fixed point makes it parallel to the x axis with the tail
// at larger x than the head. The pi correction resolves the two-quadrant
// ambiguity of atan so the head always ends up left of the tail.
func Angle(seg geom.Segment) (float64, error) {
	dx := seg.Tail[0] - seg.Head[0]
	if dx == 0 {
		return 0, &DegenerateSegmentError{ID: seg.ID}
	}

	theta := math.Atan((seg.Tail[1] - seg.Head[1]) / dx)
	if seg.Head[0] > seg.Tail[0] {
		theta += math.Pi
	}
	return theta, nil
}

// OrientedRectangle is an axis-aligned query rectangle in the rotated frame of
// its source segment. Origin is the rotation origin shared by the forward
// (build) and inverse (sample) rotations; it is the segment midpoint and is
// therefore the same point in both frames.
type OrientedRectangle struct {
	ID     int
	Bound  orb.Bound
	Angle  float64
	Origin orb.Point
	Length float64
}

// Build constructs the query rectangle for a segment: rotate the segment by
// -angle about its midpoint so it becomes axis-parallel, buffer it by buffer
// on both sides, and take the bounding box. Flat caps keep the long-axis
// extent exactly equal to the segment length, so the short-axis extent is
// exactly 2*buffer.
func Build(seg geom.Segment, angle, buffer float64) (OrientedRectangle, error) {
	if buffer <= 0 {
		return OrientedRectangle{}, fmt.Errorf("segment %d: buffer must be positive, got %g", seg.ID, buffer)
	}

	origin := seg.Midpoint()
	head := geom.Rotate(seg.Head, origin, -angle)
	tail := geom.Rotate(seg.Tail, origin, -angle)

	sausage := geom.Buffer(head, tail, buffer, geom.CapFlat)
	if sausage == nil {
		return OrientedRectangle{}, &ZeroLengthSegmentError{ID: seg.ID}
	}

	return OrientedRectangle{
		ID:     seg.ID,
		Bound:  sausage.Bound(),
		Angle:  angle,
		Origin: origin,
		Length: seg.Length(),
	}, nil
}
