package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightline.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Query.DistPerCol != DefaultConfig().Query.DistPerCol {
		t.Errorf("dist_per_col = %g, want default %g", cfg.Query.DistPerCol, DefaultConfig().Query.DistPerCol)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file was not created: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightline.yaml")
	body := `
raster:
  path: data/antwerp.yaml
query:
  buffer: 12.5
  rows: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Raster.Path != "data/antwerp.yaml" {
		t.Errorf("raster path = %q", cfg.Raster.Path)
	}
	if cfg.Query.Buffer != 12.5 || cfg.Query.Rows != 3 {
		t.Errorf("query = %+v, want buffer 12.5 rows 3", cfg.Query)
	}
	// Untouched keys keep defaults.
	if cfg.Query.DistPerCol != 5 {
		t.Errorf("dist_per_col = %g, want default 5", cfg.Query.DistPerCol)
	}
}

func TestLoadRasterFromEnv(t *testing.T) {
	t.Setenv("SIGHTLINE_RASTER", "env/raster.yaml")

	cfg, err := Load(filepath.Join(t.TempDir(), "sightline.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Raster.Path != "env/raster.yaml" {
		t.Errorf("raster path = %q, want env value", cfg.Raster.Path)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"ZeroRows", "query:\n  rows: 0\n"},
		{"NegativeDistPerCol", "query:\n  dist_per_col: -1\n"},
		{"NoBuffer", "query:\n  buffer: 0\n  relative_buffer: 0\n"},
		{"NegativeMaxDist", "query:\n  max_dist: -5\n"},
		{"Garbage", "query: [nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sightline.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGenerateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightline.yaml")

	if err := GenerateDefault(path); err != nil {
		t.Fatalf("GenerateDefault failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}

	// A second call must not touch the existing file.
	if err := GenerateDefault(path); err != nil {
		t.Fatalf("second GenerateDefault failed: %v", err)
	}
	info2, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info2.ModTime().Before(info.ModTime()) {
		t.Error("existing config was rewritten")
	}
}
