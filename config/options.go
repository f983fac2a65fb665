package config

import (
	"fmt"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/internal/options"
)

// Option configures a Config.
type Option = options.Option[*Config]

func applyOptions(c *Config, opts ...Option) error {
	return options.Apply(c, opts...)
}

func (c *Config) setSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: frame size %dx%d must be positive", errs.ErrInvalidConfig, w, h)
	}
	c.Width, c.Height = w, h

	return nil
}

func (c *Config) setTile(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: tile size %d must be positive", errs.ErrInvalidConfig, n)
	}
	c.Tile = n

	return nil
}

func (c *Config) setArenaSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: arena_size %d must be positive", errs.ErrInvalidConfig, n)
	}
	c.ArenaSize = n

	return nil
}

func (c *Config) setPattern(p frame.Pattern) error {
	if !p.Valid() {
		return fmt.Errorf("%w: invalid pattern %s", errs.ErrInvalidConfig, p)
	}
	c.Pattern = p

	return nil
}

// WithSize sets the frame width and height.
func WithSize(w, h int) Option {
	return options.New(func(c *Config) error {
		return c.setSize(w, h)
	})
}

// WithTile sets the tile edge length in pixels.
func WithTile(n int) Option {
	return options.New(func(c *Config) error {
		return c.setTile(n)
	})
}

// WithVarianceThreshold sets the variance above which a tile is anomalous.
func WithVarianceThreshold(v float64) Option {
	return options.NoError(func(c *Config) {
		c.VarThreshold = v
	})
}

// WithBrightnessThreshold enables brightness classification: tiles whose mean
// exceeds v are anomalous.
func WithBrightnessThreshold(v float64) Option {
	return options.NoError(func(c *Config) {
		c.BrightnessThreshold = v
		c.BrightnessEnabled = true
	})
}

// WithoutBrightnessThreshold disables brightness classification.
func WithoutBrightnessThreshold() Option {
	return options.NoError(func(c *Config) {
		c.BrightnessEnabled = false
	})
}

// WithSeed selects the seeded pattern with the given seed.
func WithSeed(seed uint32) Option {
	return options.NoError(func(c *Config) {
		c.Pattern = frame.Seeded(seed)
	})
}

// WithFixedPattern selects the unseeded pattern.
func WithFixedPattern() Option {
	return options.NoError(func(c *Config) {
		c.Pattern = frame.Fixed()
	})
}

// WithPattern sets the frame pattern.
func WithPattern(p frame.Pattern) Option {
	return options.New(func(c *Config) error {
		return c.setPattern(p)
	})
}

// WithArenaSize sets the arena byte budget.
func WithArenaSize(n int) Option {
	return options.New(func(c *Config) error {
		return c.setArenaSize(n)
	})
}
