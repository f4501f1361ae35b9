package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Segment is a directed 3D link between two points on a shared planar
// reference frame. Head and Tail carry the planar coordinates; ZHead and
// ZTail are the endpoint elevations in the same distance units.
type Segment struct {
	ID    int
	Head  orb.Point
	Tail  orb.Point
	ZHead float64
	ZTail float64
}

// Length returns the planar Euclidean length of the segment.
// Elevations are ignored.
func (s Segment) Length() float64 {
	return planar.Distance(s.Head, s.Tail)
}

// Midpoint returns the planar midpoint of the segment.
func (s Segment) Midpoint() orb.Point {
	return orb.Point{
		(s.Head[0] + s.Tail[0]) / 2,
		(s.Head[1] + s.Tail[1]) / 2,
	}
}
