package raster

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Meta describes a raster grid: a headerless file of little-endian float32
// samples, row-major from the north-west corner. It lives in a YAML sidecar
// next to the data file, so the no-data sentinel is reported by the raster
// source itself rather than assumed by callers.
type Meta struct {
	Data     string  `yaml:"data"`      // data file, relative to the sidecar
	Rows     int     `yaml:"rows"`      // grid height
	Cols     int     `yaml:"cols"`      // grid width
	OriginX  float64 `yaml:"origin_x"`  // x of the north-west cell center
	OriginY  float64 `yaml:"origin_y"`  // y of the north-west cell center
	CellSize float64 `yaml:"cell_size"` // spacing between cell centers
	NoData   float64 `yaml:"nodata"`    // sentinel stored for missing cells
}

// File samples a raster grid file. It holds a single read handle; handles are
// not shared between workers, each worker opens its own.
type File struct {
	file *os.File
	meta Meta
}

// Open reads the YAML sidecar at path and opens the grid file it describes.
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raster sidecar: %w", err)
	}

	var meta Meta
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse raster sidecar: %w", err)
	}
	if meta.Rows < 1 || meta.Cols < 1 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", meta.Cols, meta.Rows)
	}
	if meta.CellSize <= 0 {
		return nil, fmt.Errorf("invalid raster cell size %g", meta.CellSize)
	}

	f, err := os.Open(filepath.Join(filepath.Dir(path), meta.Data))
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if want := int64(meta.Rows) * int64(meta.Cols) * 4; info.Size() != want {
		f.Close()
		return nil, fmt.Errorf("invalid raster file size: expected %d, got %d", want, info.Size())
	}

	return &File{file: f, meta: meta}, nil
}

// Close releases the read handle.
func (f *File) Close() error {
	return f.file.Close()
}

// Meta returns the grid description.
func (f *File) Meta() Meta {
	return f.meta
}

// NoData reports the sidecar-declared sentinel.
func (f *File) NoData() float64 {
	return f.meta.NoData
}

// Sample returns the nearest grid sample for every point. Points outside the
// grid extent, and read failures, yield the no-data sentinel.
func (f *File) Sample(pts []orb.Point) []float64 {
	vals := make([]float64, len(pts))
	b := make([]byte, 4)

	for i, p := range pts {
		col := int(math.Round((p[0] - f.meta.OriginX) / f.meta.CellSize))
		row := int(math.Round((f.meta.OriginY - p[1]) / f.meta.CellSize))

		if row < 0 || row >= f.meta.Rows || col < 0 || col >= f.meta.Cols {
			vals[i] = f.meta.NoData
			continue
		}

		offset := int64(row*f.meta.Cols+col) * 4
		if _, err := f.file.ReadAt(b, offset); err != nil {
			vals[i] = f.meta.NoData
			continue
		}

		v := math.Float32frombits(binary.LittleEndian.Uint32(b))
		if v == float32(f.meta.NoData) {
			// Stored cells are float32; report the sidecar value exactly so
			// callers can compare against NoData().
			vals[i] = f.meta.NoData
			continue
		}
		vals[i] = float64(v)
	}
	return vals
}
