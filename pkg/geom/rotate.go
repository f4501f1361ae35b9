package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Rotate returns p rotated counter-clockwise by angle radians about origin.
func Rotate(p, origin orb.Point, angle float64) orb.Point {
	sin, cos := math.Sincos(angle)
	dx := p[0] - origin[0]
	dy := p[1] - origin[1]
	return orb.Point{
		origin[0] + dx*cos - dy*sin,
		origin[1] + dx*sin + dy*cos,
	}
}

// RotatePoints rotates every point about a shared origin.
func RotatePoints(pts []orb.Point, origin orb.Point, angle float64) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[i] = Rotate(p, origin, angle)
	}
	return out
}
