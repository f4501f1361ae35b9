package segio

import (
	"fmt"
	"strconv"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"sightline/pkg/geom"
)

// LoadShapefile reads two-point polylines and their elevation attributes from
// a link shapefile. headField and tailField name the DBF columns holding the
// endpoint elevations.
func LoadShapefile(path, headField, tailField string) ([]geom.Segment, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	headIdx, tailIdx := -1, -1
	for i, f := range shape.Fields() {
		switch f.String() {
		case headField:
			headIdx = i
		case tailField:
			tailIdx = i
		}
	}
	if headIdx < 0 {
		return nil, fmt.Errorf("shapefile has no %q field", headField)
	}
	if tailIdx < 0 {
		return nil, fmt.Errorf("shapefile has no %q field", tailField)
	}

	var segments []geom.Segment
	for shape.Next() {
		n, p := shape.Shape()

		line, ok := p.(*shp.PolyLine)
		if !ok {
			return nil, fmt.Errorf("shape %d: expected polyline, got %T", n, p)
		}
		if line.NumPoints != 2 {
			return nil, fmt.Errorf("shape %d: expected 2 points, got %d", n, line.NumPoints)
		}

		zHead, err := strconv.ParseFloat(shape.ReadAttribute(n, headIdx), 64)
		if err != nil {
			return nil, fmt.Errorf("shape %d: bad %s attribute: %w", n, headField, err)
		}
		zTail, err := strconv.ParseFloat(shape.ReadAttribute(n, tailIdx), 64)
		if err != nil {
			return nil, fmt.Errorf("shape %d: bad %s attribute: %w", n, tailField, err)
		}

		segments = append(segments, geom.Segment{
			ID:    len(segments),
			Head:  orb.Point{line.Points[0].X, line.Points[0].Y},
			Tail:  orb.Point{line.Points[1].X, line.Points[1].Y},
			ZHead: zHead,
			ZTail: zTail,
		})
	}
	if err := shape.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shapes: %w", err)
	}
	return segments, nil
}
