// Package segio loads link segments from vector sources. A link is a
// two-point LineString with head and tail elevation attributes; coordinates
// must already share the raster's reference frame.
package segio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"sightline/pkg/geom"
)

// Property keys carrying endpoint elevations on link features.
const (
	PropHeadElevation = "elevation_tx"
	PropTailElevation = "elevation_rx"
)

// LoadGeoJSON reads a feature collection of two-point LineStrings. Segment
// ids follow feature order.
func LoadGeoJSON(path string) ([]geom.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse links file: %w", err)
	}

	segments := make([]geom.Segment, 0, len(fc.Features))
	for i, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("feature %d: expected LineString, got %T", i, f.Geometry)
		}
		if len(ls) != 2 {
			return nil, fmt.Errorf("feature %d: expected 2 points, got %d", i, len(ls))
		}

		zHead, ok := floatProp(f.Properties, PropHeadElevation)
		if !ok {
			return nil, fmt.Errorf("feature %d: missing %s property", i, PropHeadElevation)
		}
		zTail, ok := floatProp(f.Properties, PropTailElevation)
		if !ok {
			return nil, fmt.Errorf("feature %d: missing %s property", i, PropTailElevation)
		}

		segments = append(segments, geom.Segment{
			ID:    i,
			Head:  ls[0],
			Tail:  ls[1],
			ZHead: zHead,
			ZTail: zTail,
		})
	}
	return segments, nil
}

// floatProp extracts a numeric property, tolerating the JSON representations
// produced by different writers.
func floatProp(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}
