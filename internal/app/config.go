package app

import (
	"errors"
	"fmt"

	"github.com/arloliu/tilestat/format"
)

// DefaultOutPath is the JSON dump written when no -out flag is given.
const DefaultOutPath = "out.json"

// Config holds the command-line settings of one invocation.
type Config struct {
	ConfigPath string // optional HCL configuration file

	OutPath     string // JSON dump
	ReportPath  string // optional binary report
	HeatmapPath string // optional variance heatmap PNG
	FramePath   string // optional frame PNG

	Compression format.CompressionType

	FixedPattern bool
	Seed         uint32
	SeedSet      bool
	NoBrightness bool

	LogFormat string
	LogLevel  string
}

// NewConfig fills defaults into cfg and validates it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OutPath == "" {
		cfg.OutPath = DefaultOutPath
	}
	if cfg.Compression == 0 {
		cfg.Compression = format.CompressionZstd
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if !cfg.Compression.Valid() {
		return nil, fmt.Errorf("invalid compression: %s", cfg.Compression)
	}
	if cfg.FixedPattern && cfg.SeedSet {
		return nil, errors.New("-fixed and -seed are mutually exclusive")
	}

	return &cfg, nil
}
