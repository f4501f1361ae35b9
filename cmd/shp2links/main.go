// Command shp2links converts a link shapefile into the segments GeoJSON
// consumed by sightline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"sightline/pkg/segio"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .shp file")
	outputPath := flag.String("output", "", "Path to output .geojson file")
	headField := flag.String("head-field", "elev_tx", "DBF field with head elevations")
	tailField := flag.String("tail-field", "elev_rx", "DBF field with tail elevations")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Input and output paths are required")
	}

	if err := run(*inputPath, *outputPath, *headField, *tailField); err != nil {
		log.Fatal(err)
	}
}

func run(inputPath, outputPath, headField, tailField string) error {
	segments, err := segio.LoadShapefile(inputPath, headField, tailField)
	if err != nil {
		return err
	}

	fc := geojson.NewFeatureCollection()
	for _, seg := range segments {
		f := geojson.NewFeature(orb.LineString{seg.Head, seg.Tail})
		f.Properties["id"] = seg.ID
		f.Properties[segio.PropHeadElevation] = seg.ZHead
		f.Properties[segio.PropTailElevation] = seg.ZTail
		fc.Append(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Converted %d links to %s\n", len(segments), outputPath)
	return nil
}
