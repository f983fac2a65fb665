package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/tilestat/config"
	"github.com/arloliu/tilestat/internal/ctxlog"
)

// App runs one analysis and writes its outputs.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
}

// NewApp creates an App that prints console output to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
	}
}

// loadConfig reads the configuration file, if any, and applies the flag
// overrides on top of it.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	logger := ctxlog.FromContext(ctx)

	cfg := config.Default()
	if a.cfg.ConfigPath != "" {
		loaded, err := config.Load(a.cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("Configuration file loaded.", "path", a.cfg.ConfigPath)
		if ignored := cfg.Ignored(); len(ignored) > 0 {
			logger.Warn("Ignoring unknown configuration keys.", "path", a.cfg.ConfigPath, "keys", ignored)
		}
	}

	var overrides []config.Option
	if a.cfg.FixedPattern {
		overrides = append(overrides, config.WithFixedPattern())
	}
	if a.cfg.SeedSet {
		overrides = append(overrides, config.WithSeed(a.cfg.Seed))
	}
	if a.cfg.NoBrightness {
		overrides = append(overrides, config.WithoutBrightnessThreshold())
	}
	if err := cfg.Apply(overrides...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return write(f)
}

// Logger returns the application logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
