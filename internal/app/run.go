package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/tilestat"
	"github.com/arloliu/tilestat/dump"
	"github.com/arloliu/tilestat/internal/ctxlog"
	"github.com/arloliu/tilestat/render"
)

// Run loads the configuration, runs one analysis pass, prints the summary
// and writes every requested output file.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("Configuration resolved.",
		"width", cfg.Width, "height", cfg.Height, "tile", cfg.Tile,
		"pattern", cfg.Pattern.String(), "arena_size", cfg.ArenaSize)

	an, err := tilestat.NewAnalyzer(cfg)
	if err != nil {
		return err
	}
	res, err := an.Run()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	m := an.Metrics()
	a.logger.Debug("Analysis finished.",
		"anomalies", res.Anomalies, "elapsed", res.Elapsed,
		"arena_in_use", m.InUse, "arena_capacity", m.Capacity, "arena_utilization", m.Utilization)

	report, err := dump.FromResult(res)
	if err != nil {
		return err
	}
	if err := render.Summary(a.outW, report, res.Elapsed); err != nil {
		return err
	}

	if err := a.writeOutputs(ctx, res, report); err != nil {
		return err
	}

	l := report.Layout
	if _, err := fmt.Fprintf(a.outW, "wrote %s (%dx%d tiles)\n", a.cfg.OutPath, l.TilesX, l.TilesY); err != nil {
		return err
	}
	a.logger.Debug("App.Run finished.")

	return nil
}

func (a *App) writeOutputs(ctx context.Context, res *tilestat.Result, report *dump.Report) error {
	logger := ctxlog.FromContext(ctx)

	if err := dump.WriteJSONFile(a.cfg.OutPath, report); err != nil {
		return err
	}
	logger.Info("JSON report written.", "path", a.cfg.OutPath)

	if a.cfg.ReportPath != "" {
		data, err := dump.Encode(report, dump.WithCompression(a.cfg.Compression))
		if err != nil {
			return fmt.Errorf("encode binary report: %w", err)
		}
		if err := os.WriteFile(a.cfg.ReportPath, data, 0o644); err != nil {
			return fmt.Errorf("write binary report: %w", err)
		}
		if _, stats, err := dump.Inspect(data); err == nil {
			logger.Info("Binary report written.",
				"path", a.cfg.ReportPath, "compression", stats.Algorithm.String(),
				"payload_bytes", stats.OriginalSize, "compressed_bytes", stats.CompressedSize,
				"space_savings_pct", stats.SpaceSavings())
		}
	}

	if a.cfg.HeatmapPath != "" {
		title := fmt.Sprintf("tile variance (%dx%d, tile=%d)", report.Layout.Width, report.Layout.Height, report.Layout.Size)
		err := writeFile(a.cfg.HeatmapPath, func(w io.Writer) error {
			return render.Heatmap(w, report.Layout, report.Maps.Variance, title)
		})
		if err != nil {
			return fmt.Errorf("write heatmap: %w", err)
		}
		logger.Info("Variance heatmap written.", "path", a.cfg.HeatmapPath)
	}

	if a.cfg.FramePath != "" {
		if err := res.Check(); err != nil {
			return err
		}
		err := writeFile(a.cfg.FramePath, func(w io.Writer) error {
			return render.FramePNG(w, res.Frame)
		})
		if err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		logger.Info("Frame image written.", "path", a.cfg.FramePath)
	}

	return nil
}
