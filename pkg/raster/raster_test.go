package raster

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"sightline/pkg/rect"
)

// writeGrid writes a rows x cols float32 grid plus its sidecar and returns
// the sidecar path.
func writeGrid(t *testing.T, meta Meta, cells []float32) string {
	t.Helper()

	dir := t.TempDir()
	meta.Data = "grid.bin"

	buf := make([]byte, len(cells)*4)
	for i, v := range cells {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	if err := os.WriteFile(filepath.Join(dir, meta.Data), buf, 0o644); err != nil {
		t.Fatalf("failed to write grid: %v", err)
	}

	raw, err := yaml.Marshal(meta)
	if err != nil {
		t.Fatalf("failed to marshal sidecar: %v", err)
	}
	sidecar := filepath.Join(dir, "grid.yaml")
	if err := os.WriteFile(sidecar, raw, 0o644); err != nil {
		t.Fatalf("failed to write sidecar: %v", err)
	}
	return sidecar
}

func TestFileSample(t *testing.T) {
	// 2x3 grid, origin at the NW cell center (0, 10), cell size 10:
	//   row 0 (y=10):  1  2  3
	//   row 1 (y=0):   4  5 -9999
	sidecar := writeGrid(t, Meta{
		Rows: 2, Cols: 3,
		OriginX: 0, OriginY: 10, CellSize: 10,
		NoData: -9999,
	}, []float32{1, 2, 3, 4, 5, -9999})

	f, err := Open(sidecar)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if got := f.NoData(); got != -9999 {
		t.Fatalf("NoData() = %g, want -9999", got)
	}

	tests := []struct {
		name string
		p    orb.Point
		want float64
	}{
		{"NWCorner", orb.Point{0, 10}, 1},
		{"NECorner", orb.Point{20, 10}, 3},
		{"SWCorner", orb.Point{0, 0}, 4},
		{"NearestRoundsToCell", orb.Point{11, 3}, 5},
		{"NoDataCell", orb.Point{20, 0}, -9999},
		{"WestOfGrid", orb.Point{-8, 0}, -9999},
		{"NorthOfGrid", orb.Point{0, 25}, -9999},
		{"SouthOfGrid", orb.Point{0, -8}, -9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := f.Sample([]orb.Point{tt.p})
			if vals[0] != tt.want {
				t.Errorf("Sample(%v) = %g, want %g", tt.p, vals[0], tt.want)
			}
		})
	}
}

func TestFileSampleBatchOrder(t *testing.T) {
	sidecar := writeGrid(t, Meta{
		Rows: 1, Cols: 3,
		OriginX: 0, OriginY: 0, CellSize: 1,
		NoData: -1,
	}, []float32{10, 20, 30})

	f, err := Open(sidecar)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	vals := f.Sample([]orb.Point{{2, 0}, {0, 0}, {1, 0}})
	want := []float64{30, 10, 20}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %g, want %g", i, vals[i], want[i])
		}
	}
}

func TestOpenValidation(t *testing.T) {
	t.Run("TruncatedData", func(t *testing.T) {
		sidecar := writeGrid(t, Meta{
			Rows: 4, Cols: 4,
			OriginX: 0, OriginY: 0, CellSize: 1,
			NoData: -1,
		}, []float32{1, 2, 3}) // 3 cells instead of 16
		if _, err := Open(sidecar); err == nil {
			t.Error("expected size mismatch error, got nil")
		}
	})

	t.Run("BadDimensions", func(t *testing.T) {
		sidecar := writeGrid(t, Meta{
			Rows: 0, Cols: 3,
			OriginX: 0, OriginY: 0, CellSize: 1,
		}, nil)
		if _, err := Open(sidecar); err == nil {
			t.Error("expected dimension error, got nil")
		}
	})

	t.Run("MissingSidecar", func(t *testing.T) {
		if _, err := Open(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestConstSampler(t *testing.T) {
	c := Const{Elevation: 42}

	vals := c.Sample([]orb.Point{{0, 0}, {100, -5}})
	for i, v := range vals {
		if v != 42 {
			t.Errorf("vals[%d] = %g, want 42", i, v)
		}
	}
	if !math.IsInf(c.NoData(), -1) {
		t.Errorf("NoData() = %g, want -Inf", c.NoData())
	}
}

// captureSampler records the coordinates it is asked for.
type captureSampler struct {
	got []orb.Point
}

func (c *captureSampler) Sample(pts []orb.Point) []float64 {
	c.got = append([]orb.Point(nil), pts...)
	return make([]float64, len(pts))
}

func (c *captureSampler) NoData() float64 { return math.NaN() }

func TestSamplePointsInverseRotation(t *testing.T) {
	// A rectangle rotated 90 degrees about (5, 5): a rotated-frame point one
	// unit right of the origin maps one unit above it in world coordinates.
	rc := rect.OrientedRectangle{
		Angle:  math.Pi / 2,
		Origin: orb.Point{5, 5},
	}

	cap := &captureSampler{}
	SamplePoints(cap, rc, []orb.Point{{6, 5}, {5, 5}})

	if len(cap.got) != 2 {
		t.Fatalf("sampler saw %d points, want 2", len(cap.got))
	}
	if math.Abs(cap.got[0][0]-5) > 1e-9 || math.Abs(cap.got[0][1]-6) > 1e-9 {
		t.Errorf("rotated point = %v, want {5 6}", cap.got[0])
	}
	if cap.got[1] != rc.Origin {
		t.Errorf("origin moved to %v, want %v", cap.got[1], rc.Origin)
	}
}
