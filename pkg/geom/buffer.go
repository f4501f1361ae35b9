package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// CapStyle selects how Buffer closes the ends of the offset shape.
type CapStyle int

const (
	// CapRound closes each end with a semicircular arc around the endpoint.
	CapRound CapStyle = iota
	// CapFlat cuts each end off at the endpoint, perpendicular to the segment.
	CapFlat
)

// capSegments is the number of chords used to approximate a quarter arc.
const capSegments = 8

// Buffer offsets the segment head->tail by dist on both sides and returns the
// resulting sausage polygon. dist must be positive; a non-positive distance
// yields a nil polygon. A zero-length segment buffers to a circle around head
// for CapRound and to nil for CapFlat.
func Buffer(head, tail orb.Point, dist float64, style CapStyle) orb.Polygon {
	if dist <= 0 {
		return nil
	}

	dx := tail[0] - head[0]
	dy := tail[1] - head[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		if style == CapFlat {
			return nil
		}
		return orb.Polygon{arc(head, dist, 0, 2*math.Pi)}
	}

	// Unit normal, left of the head->tail direction.
	nx := -dy / length
	ny := dx / length

	var ring orb.Ring
	ring = append(ring, orb.Point{head[0] + nx*dist, head[1] + ny*dist})
	ring = append(ring, orb.Point{tail[0] + nx*dist, tail[1] + ny*dist})

	phi := math.Atan2(dy, dx)
	if style == CapRound {
		// Half circle around the tail, from +normal through the tail direction.
		ring = append(ring, arc(tail, dist, phi+math.Pi/2, -math.Pi)[1:]...)
	} else {
		ring = append(ring, orb.Point{tail[0] - nx*dist, tail[1] - ny*dist})
	}

	if style == CapRound {
		ring = append(ring, arc(head, dist, phi-math.Pi/2, -math.Pi)[1:]...)
	} else {
		ring = append(ring, orb.Point{head[0] - nx*dist, head[1] - ny*dist})
	}

	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// arc approximates a circular arc around center, starting at angle from and
// sweeping by sweep radians. Both endpoints are included.
func arc(center orb.Point, radius, from, sweep float64) orb.Ring {
	steps := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2) * capSegments))
	if steps < 1 {
		steps = 1
	}
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + sweep*float64(i)/float64(steps)
		sin, cos := math.Sincos(a)
		ring = append(ring, orb.Point{center[0] + radius*cos, center[1] + radius*sin})
	}
	return ring
}
