package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"sightline/pkg/batch"
	"sightline/pkg/config"
	"sightline/pkg/geom"
	"sightline/pkg/logging"
	"sightline/pkg/query"
	"sightline/pkg/raster"
	"sightline/pkg/rect"
	"sightline/pkg/segio"
	"sightline/pkg/store"
	"sightline/pkg/version"
)

var (
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	configPath = flag.String("config", "configs/sightline.yaml", "Path to config file")
	linksPath  = flag.String("links", "", "Path to links file (.geojson or .shp)")
	headField  = flag.String("head-field", "elev_tx", "DBF field with head elevations (shapefiles)")
	tailField  = flag.String("tail-field", "elev_rx", "DBF field with tail elevations (shapefiles)")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Sightline started", "version", version.Version)

	if *linksPath == "" {
		return fmt.Errorf("no links file given, use -links")
	}
	if cfg.Raster.Path == "" {
		return fmt.Errorf("no raster configured (raster.path or SIGHTLINE_RASTER)")
	}

	segments, err := loadSegments(*linksPath)
	if err != nil {
		return err
	}
	slog.Info("Links loaded", "path", *linksPath, "segments", len(segments))

	if cfg.Query.MaxDist > 0 {
		kept := segments[:0]
		for _, seg := range segments {
			if seg.Length() <= cfg.Query.MaxDist {
				kept = append(kept, seg)
			}
		}
		slog.Info("Length filter applied", "max_dist", cfg.Query.MaxDist, "kept", len(kept), "dropped", len(segments)-len(kept))
		segments = kept
	}

	st, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer st.Close()

	runID, err := st.BeginRun(cfg.Raster.Path, len(segments))
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Workers:        cfg.Batch.Workers,
		Open:           func() (raster.Sampler, error) { return raster.Open(cfg.Raster.Path) },
		Buffer:         cfg.Query.Buffer,
		RelativeBuffer: cfg.Query.RelativeBuffer,
		Opts: query.Options{
			NRows:      cfg.Query.Rows,
			DistPerCol: cfg.Query.DistPerCol,
			Decimals:   cfg.Query.Decimals,
			Fill:       cfg.Raster.Fill,
		},
	}

	outcomes, err := runner.Run(ctx, segments)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	if err := st.WriteOutcomes(runID, outcomes); err != nil {
		return err
	}

	skipped := 0
	for _, o := range outcomes {
		if o.Err != nil {
			skipped++
			slog.Warn("Segment skipped", "segment", o.ID, "reason", o.Err)
		}
	}
	slog.Info("Batch complete",
		"run", runID,
		"segments", len(outcomes),
		"skipped", skipped,
		"mean_obstruction", fmt.Sprintf("%.4f", batch.MeanOf(outcomes)))

	if cfg.Store.ClearanceDir != "" {
		if err := exportClearances(cfg, segments); err != nil {
			return fmt.Errorf("clearance export failed: %w", err)
		}
		slog.Info("Clearance grids written", "dir", cfg.Store.ClearanceDir)
	}
	return nil
}

func loadSegments(path string) ([]geom.Segment, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return segio.LoadShapefile(path, *headField, *tailField)
	}
	return segio.LoadGeoJSON(path)
}

// exportClearances writes a per-segment clearance CSV grid for every segment
// the pipeline can process. Runs sequentially over a single raster handle.
func exportClearances(cfg *config.Config, segments []geom.Segment) error {
	sampler, err := raster.Open(cfg.Raster.Path)
	if err != nil {
		return err
	}
	defer sampler.Close()

	for _, seg := range segments {
		angle, err := rect.Angle(seg)
		if err != nil {
			continue
		}
		buffer := cfg.Query.Buffer
		if buffer == 0 {
			buffer = seg.Length() * cfg.Query.RelativeBuffer
		}
		rc, err := rect.Build(seg, angle, buffer)
		if err != nil {
			continue
		}
		plane, err := rect.FitPlane(seg, angle)
		if err != nil {
			continue
		}

		nCols := int(rc.Length/cfg.Query.DistPerCol) + 1
		_, res, err := query.ClearanceGrid(sampler, rc, plane, nCols, cfg.Query.Rows, cfg.Query.Decimals)
		if err != nil {
			return err
		}
		if err := store.WriteClearanceCSV(cfg.Store.ClearanceDir, res, nCols, cfg.Query.Rows); err != nil {
			return err
		}
	}
	return nil
}
