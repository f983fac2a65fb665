// Package config holds the runtime configuration of a tile statistics pass.
//
// A Config is built from Default() with functional options:
//
//	cfg, err := config.New(
//	    config.WithSize(160, 120),
//	    config.WithTile(32),
//	    config.WithVarianceThreshold(400),
//	    config.WithFixedPattern(),
//	)
//
// or loaded from an HCL attribute file with Load / Parse, whose keys mirror
// the option names (width, height, tile, var_threshold,
// brightness_threshold, seed, pattern, arena_size).
package config

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/tile"
)

// Defaults.
const (
	DefaultWidth               = 160
	DefaultHeight              = 120
	DefaultTile                = 32
	DefaultVarThreshold        = 400.0
	DefaultBrightnessThreshold = 9999.0
	DefaultSeed                = 1
	DefaultArenaSize           = 64 * 1024
)

// Config describes one analysis pass.
type Config struct {
	Width  int
	Height int
	Tile   int

	VarThreshold        float64
	BrightnessThreshold float64
	BrightnessEnabled   bool

	Pattern frame.Pattern

	// ArenaSize is the byte budget for the frame and the result maps.
	ArenaSize int

	ignored []string
}

// Default returns the default configuration: a seeded 160x120 frame, 32-pixel
// tiles, variance threshold 400 and brightness threshold 9999.
func Default() *Config {
	return &Config{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		Tile:                DefaultTile,
		VarThreshold:        DefaultVarThreshold,
		BrightnessThreshold: DefaultBrightnessThreshold,
		BrightnessEnabled:   true,
		Pattern:             frame.Seeded(DefaultSeed),
		ArenaSize:           DefaultArenaSize,
	}
}

// New applies opts over Default() and validates the result.
func New(opts ...Option) (*Config, error) {
	c := Default()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Apply applies opts to c and validates the result.
func (c *Config) Apply(opts ...Option) error {
	if err := applyOptions(c, opts...); err != nil {
		return err
	}

	return c.Validate()
}

// Validate checks the configuration.
//
// Returns:
//   - error: errs.ErrInvalidConfig wrapped with the offending field
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d must be positive", errs.ErrInvalidConfig, c.Width, c.Height)
	case c.Tile <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", errs.ErrInvalidConfig, c.Tile)
	case !finite(c.VarThreshold):
		return fmt.Errorf("%w: var_threshold %v must be finite", errs.ErrInvalidConfig, c.VarThreshold)
	case c.BrightnessEnabled && !finite(c.BrightnessThreshold):
		return fmt.Errorf("%w: brightness_threshold %v must be finite", errs.ErrInvalidConfig, c.BrightnessThreshold)
	case !c.Pattern.Valid():
		return fmt.Errorf("%w: pattern is not set", errs.ErrInvalidConfig)
	case c.ArenaSize <= 0:
		return fmt.Errorf("%w: arena_size %d must be positive", errs.ErrInvalidConfig, c.ArenaSize)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Layout returns the tile layout of the configured frame.
func (c *Config) Layout() (tile.Layout, error) {
	return tile.NewLayout(c.Width, c.Height, c.Tile)
}

// Thresholds returns the classification thresholds at engine precision.
func (c *Config) Thresholds() tile.Thresholds {
	return tile.Thresholds{
		Variance:          float32(c.VarThreshold),
		Brightness:        float32(c.BrightnessThreshold),
		BrightnessEnabled: c.BrightnessEnabled,
	}
}

// Seed returns the frame seed and true for a seeded pattern.
func (c *Config) Seed() (uint32, bool) {
	return c.Pattern.Seed()
}

// Ignored returns the keys of a loaded file that are not configuration keys,
// sorted. They are skipped rather than rejected.
func (c *Config) Ignored() []string {
	return slices.Clone(c.ignored)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.ignored = slices.Clone(c.ignored)

	return &cp
}
