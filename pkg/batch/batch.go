// Package batch fans line-of-sight obstruction queries out over a worker
// pool. Segments are independent of one another, so workers share nothing
// except the segment feed; every worker holds its own raster handle for the
// lifetime of its share of the batch.
package batch

import (
	"context"
	"io"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"sightline/pkg/geom"
	"sightline/pkg/query"
	"sightline/pkg/raster"
	"sightline/pkg/rect"
)

// Outcome is the terminal record for one segment. A non-nil Err marks a
// segment that was skipped (degenerate geometry, bad grid spec); it never
// aborts the rest of the batch.
type Outcome struct {
	ID          int
	Obstruction float64
	Err         error
}

// Runner runs obstruction queries over a segment collection.
type Runner struct {
	// Workers is the pool size; values below 1 run a single worker.
	Workers int
	// Open acquires a raster handle for one worker. Handles implementing
	// io.Closer are released when the worker finishes.
	Open func() (raster.Sampler, error)
	// Buffer is the absolute rectangle half-width. When 0, RelativeBuffer
	// scales each segment's own length instead.
	Buffer         float64
	RelativeBuffer float64
	// Opts are passed through to every obstruction query.
	Opts query.Options
}

// Run queries every segment and returns one outcome per segment, in no
// particular order. The only error returned directly is a raster handle that
// could not be opened or a cancelled context; per-segment failures are
// reported in their outcomes.
func (r *Runner) Run(ctx context.Context, segments []geom.Segment) ([]Outcome, error) {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(segments) && len(segments) > 0 {
		workers = len(segments)
	}

	jobs := make(chan geom.Segment)
	results := make(chan Outcome, len(segments))

	var wg sync.WaitGroup
	var openErr error
	var openMu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sampler, err := r.Open()
			if err != nil {
				openMu.Lock()
				openErr = err
				openMu.Unlock()
				// Drain so the feeder is never blocked on a dead worker.
				for range jobs {
				}
				return
			}
			if closer, ok := sampler.(io.Closer); ok {
				defer closer.Close()
			}

			for seg := range jobs {
				frac, err := r.query(sampler, seg)
				results <- Outcome{ID: seg.ID, Obstruction: frac, Err: err}
			}
		}()
	}

feed:
	for _, seg := range segments {
		select {
		case jobs <- seg:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	outcomes := make([]Outcome, 0, len(segments))
	for o := range results {
		outcomes = append(outcomes, o)
	}

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	openMu.Lock()
	defer openMu.Unlock()
	return outcomes, openErr
}

// query runs the full pipeline for a single segment.
func (r *Runner) query(s raster.Sampler, seg geom.Segment) (float64, error) {
	angle, err := rect.Angle(seg)
	if err != nil {
		return 0, err
	}

	buffer := r.Buffer
	if buffer == 0 {
		buffer = seg.Length() * r.RelativeBuffer
	}

	rc, err := rect.Build(seg, angle, buffer)
	if err != nil {
		return 0, err
	}

	plane, err := rect.FitPlane(seg, angle)
	if err != nil {
		return 0, err
	}

	return query.MeanObstruction(s, rc, plane, r.Opts)
}

// MeanOf returns the mean obstruction across successful outcomes, or NaN when
// every outcome failed.
func MeanOf(outcomes []Outcome) float64 {
	fracs := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			fracs = append(fracs, o.Obstruction)
		}
	}
	if len(fracs) == 0 {
		return math.NaN()
	}
	return stat.Mean(fracs, nil)
}
