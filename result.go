package tilestat

import (
	"slices"
	"time"

	"github.com/arloliu/tilestat/arena"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/grid"
	"github.com/arloliu/tilestat/tile"
)

// Result is the outcome of one Analyzer.Run.
//
// Frame and Maps alias arena memory and are valid until the next Run of the
// analyzer that produced them.
type Result struct {
	Layout     tile.Layout
	Thresholds tile.Thresholds
	Pattern    frame.Pattern

	Frame grid.Grid[uint8]
	Maps  tile.Maps

	Anomalies int

	// Elapsed is the duration of the statistics pass, excluding frame generation.
	Elapsed time.Duration

	arena  *arena.Arena
	handle arena.Handle
}

// Stale reports whether a later Run has reclaimed the result's memory.
// Detached results are never stale.
func (r *Result) Stale() bool {
	if r.arena == nil {
		return false
	}

	return !r.arena.Valid(r.handle)
}

// Check returns errs.ErrStaleResult when the result is stale.
func (r *Result) Check() error {
	if r.Stale() {
		return errs.ErrStaleResult
	}

	return nil
}

// Generation returns the arena generation the result was produced in.
func (r *Result) Generation() uint64 {
	return r.handle.Generation()
}

// Seed returns the frame seed and true for a seeded pattern.
func (r *Result) Seed() (uint32, bool) {
	return r.Pattern.Seed()
}

// Detach copies the frame and the maps to the heap so the result outlives
// the analyzer's next run.
func (r *Result) Detach() (*Result, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}

	cp := *r
	pixels := make([]uint8, r.Frame.W*r.Frame.H)
	cp.Frame = grid.Dense(pixels, r.Frame.W, r.Frame.H)
	for y := range r.Frame.H {
		copy(cp.Frame.Row(y), r.Frame.Row(y))
	}
	cp.Maps = tile.Maps{
		Mean:     slices.Clone(r.Maps.Mean),
		Variance: slices.Clone(r.Maps.Variance),
		Anomaly:  slices.Clone(r.Maps.Anomaly),
	}
	cp.arena = nil

	return &cp, nil
}

// AnomalousTiles returns the indices of the flagged tiles in row-major order.
func (r *Result) AnomalousTiles() []int {
	var idx []int
	for i, f := range r.Maps.Anomaly {
		if f != 0 {
			idx = append(idx, i)
		}
	}

	return idx
}
