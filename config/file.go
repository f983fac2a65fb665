package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
)

// Pattern names accepted by the pattern key.
const (
	PatternSeeded = "seeded"
	PatternFixed  = "fixed"
)

// fileConfig is the decoding target for a configuration file. Absent keys
// keep their defaults; unknown keys end up in Remain.
type fileConfig struct {
	Width               *int     `hcl:"width,optional"`
	Height              *int     `hcl:"height,optional"`
	Tile                *int     `hcl:"tile,optional"`
	VarThreshold        *float64 `hcl:"var_threshold,optional"`
	BrightnessThreshold *float64 `hcl:"brightness_threshold,optional"`
	Seed                *uint32  `hcl:"seed,optional"`
	Pattern             *string  `hcl:"pattern,optional"`
	ArenaSize           *int     `hcl:"arena_size,optional"`

	Remain hcl.Body `hcl:",remain"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfigFile, err)
	}

	return Parse(src, path)
}

// Parse parses configuration source in HCL attribute syntax:
//
//	# 160x120 frame, 16-pixel tiles
//	width = 160
//	height = 120
//	tile = 16
//	var_threshold = 200.0
//	brightness_threshold = 180.0
//	seed = 123
//
// filename is only used in diagnostics. Keys that are not configuration keys
// are ignored and reported by Config.Ignored.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfigFile, diags)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(f.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", errs.ErrConfigFile, diags)
	}

	opts, err := fc.options()
	if err != nil {
		return nil, err
	}

	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	c.ignored = fc.ignoredKeys()

	return c, nil
}

func (fc *fileConfig) options() ([]Option, error) {
	var opts []Option

	if fc.Width != nil || fc.Height != nil {
		w, h := DefaultWidth, DefaultHeight
		if fc.Width != nil {
			w = *fc.Width
		}
		if fc.Height != nil {
			h = *fc.Height
		}
		opts = append(opts, WithSize(w, h))
	}
	if fc.Tile != nil {
		opts = append(opts, WithTile(*fc.Tile))
	}
	if fc.VarThreshold != nil {
		opts = append(opts, WithVarianceThreshold(*fc.VarThreshold))
	}
	if fc.BrightnessThreshold != nil {
		opts = append(opts, WithBrightnessThreshold(*fc.BrightnessThreshold))
	}
	if fc.ArenaSize != nil {
		opts = append(opts, WithArenaSize(*fc.ArenaSize))
	}

	seed := uint32(DefaultSeed)
	if fc.Seed != nil {
		seed = *fc.Seed
	}
	pattern := PatternSeeded
	if fc.Pattern != nil {
		pattern = *fc.Pattern
	}
	switch pattern {
	case PatternSeeded:
		opts = append(opts, WithPattern(frame.Seeded(seed)))
	case PatternFixed:
		opts = append(opts, WithPattern(frame.Fixed()))
	default:
		return nil, fmt.Errorf("%w: pattern %q must be %q or %q", errs.ErrInvalidConfig, pattern, PatternSeeded, PatternFixed)
	}

	return opts, nil
}

func (fc *fileConfig) ignoredKeys() []string {
	if fc.Remain == nil {
		return nil
	}
	attrs, diags := fc.Remain.JustAttributes()
	if diags.HasErrors() || len(attrs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(attrs))
	for name := range attrs {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	return keys
}
