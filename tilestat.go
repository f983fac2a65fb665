// Package tilestat computes per-tile brightness and variance statistics over a
// synthetic grayscale frame and flags anomalous tiles.
//
// All memory of a pass comes from a fixed-size arena owned by an Analyzer:
// the frame and the three result maps are carved from it, and every Run
// resets it. No heap allocation happens inside the statistics kernel.
//
// # Basic Usage
//
//	cfg, _ := config.New(config.WithFixedPattern())
//	an, err := tilestat.NewAnalyzer(cfg)
//	if err != nil {
//	    return err
//	}
//
//	res, err := an.Run()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Layout.TilesX, res.Layout.TilesY, res.Anomalies)
//
// # Result Lifetime
//
// A Result borrows the analyzer's arena. The next Run invalidates it:
// Result.Stale reports this and Result.Check returns errs.ErrStaleResult.
// Copy the maps out (Result.Detach) to keep them across runs.
package tilestat

import (
	"fmt"
	"time"

	"github.com/arloliu/tilestat/arena"
	"github.com/arloliu/tilestat/config"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/grid"
	"github.com/arloliu/tilestat/internal/options"
	"github.com/arloliu/tilestat/tile"
)

// Analyzer runs tile statistics passes over arena-backed memory.
//
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	cfg    *config.Config
	layout tile.Layout
	arena  *arena.Arena
	buf    []byte
	now    func() time.Time
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption = options.Option[*Analyzer]

// WithBuffer makes the analyzer use buf as its arena instead of allocating
// config.ArenaSize bytes. The analyzer borrows buf for its whole lifetime.
func WithBuffer(buf []byte) AnalyzerOption {
	return options.New(func(a *Analyzer) error {
		if len(buf) == 0 {
			return fmt.Errorf("%w: empty arena buffer", errs.ErrInvalidConfig)
		}
		a.buf = buf

		return nil
	})
}

// WithClock replaces the clock used to time the statistics pass.
func WithClock(now func() time.Time) AnalyzerOption {
	return options.NoError(func(a *Analyzer) {
		a.now = now
	})
}

// NewAnalyzer validates cfg and creates an analyzer for it.
//
// Parameters:
//   - cfg: configuration of every pass; it is copied
//   - opts: optional buffer and clock overrides
//
// Returns:
//   - *Analyzer: the analyzer
//   - error: errs.ErrInvalidConfig or errs.ErrInvalidLayout
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", errs.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:    cfg.Clone(),
		layout: layout,
		now:    time.Now,
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}
	if a.buf == nil {
		a.buf = make([]byte, cfg.ArenaSize)
	}
	a.arena = arena.New(a.buf)

	return a, nil
}

// RequiredArenaSize returns the arena size that always suffices for one pass
// over a frame of the given layout, whatever the buffer alignment.
func RequiredArenaSize(layout tile.Layout) int {
	reqs := append([]arena.Request{{Size: layout.Width * layout.Height, Align: 1}},
		tile.MapsRequests(layout.Count())...)

	return arena.Footprint(reqs...)
}

// Config returns a copy of the analyzer configuration.
func (a *Analyzer) Config() *config.Config {
	return a.cfg.Clone()
}

// Layout returns the tile layout of every pass.
func (a *Analyzer) Layout() tile.Layout {
	return a.layout
}

// Metrics returns the arena usage after the latest pass.
func (a *Analyzer) Metrics() arena.Metrics {
	return a.arena.Metrics()
}

// Run resets the arena, generates the configured frame, and analyzes it.
//
// Results of earlier runs become stale.
//
// Returns:
//   - *Result: frame, maps and anomaly count of this pass
//   - error: errs.ErrOutOfMemory (wrapped) if the arena cannot hold the pass
func (a *Analyzer) Run() (*Result, error) {
	a.arena.Reset()

	if need := RequiredArenaSize(a.layout); need > a.arena.Cap() {
		return nil, fmt.Errorf("pass needs %d bytes, arena holds %d: %w", need, a.arena.Cap(), errs.ErrOutOfMemory)
	}

	w, h := a.layout.Width, a.layout.Height
	frameHandle, err := a.arena.AllocHandle(w*h, 1)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	pixels, err := a.arena.Bytes(frameHandle)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	img, err := grid.New(pixels, w, h, w)
	if err != nil {
		return nil, err
	}

	maps, err := tile.MapsFromArena(a.arena, a.layout.Count())
	if err != nil {
		return nil, err
	}

	if err := frame.Generate(img, a.cfg.Pattern); err != nil {
		return nil, err
	}

	thr := a.cfg.Thresholds()
	start := a.now()
	count, err := tile.Analyze(img, a.layout, thr, maps)
	if err != nil {
		return nil, err
	}
	elapsed := a.now().Sub(start)

	return &Result{
		Layout:     a.layout,
		Thresholds: thr,
		Pattern:    a.cfg.Pattern,
		Frame:      img,
		Maps:       maps,
		Anomalies:  count,
		Elapsed:    elapsed,
		arena:      a.arena,
		handle:     frameHandle,
	}, nil
}
