// Package dump serializes analysis results.
//
// Two formats are supported:
//
//   - JSON (WriteJSON / ReadJSON): a flat object with the keys width,
//     height, tile, tiles_x, tiles_y, var_threshold, brightness_threshold,
//     seed, anomalies, mean_map, var_map and anom_map, in that order.
//   - Binary (Encode / Decode): a 64-byte section.ReportHeader followed by
//     the compressed map payload, checksummed with xxHash64.
//
// Both start from a Report, a heap copy of a tilestat.Result that outlives
// the analyzer pass it came from.
package dump

import (
	"fmt"
	"slices"

	"github.com/arloliu/tilestat"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/tile"
)

// Report is a self-contained analysis result.
type Report struct {
	Layout tile.Layout

	// VarThreshold and BrightnessThreshold are kept at engine precision.
	// BrightnessThreshold is zero unless BrightnessEnabled is set.
	VarThreshold        float32
	BrightnessThreshold float32
	BrightnessEnabled   bool

	Seed   uint32
	Seeded bool

	Anomalies int
	Maps      tile.Maps
}

// FromResult copies res into a Report.
//
// Returns:
//   - *Report: the report
//   - error: errs.ErrStaleResult if res was invalidated by a later run
func FromResult(res *tilestat.Result) (*Report, error) {
	if err := res.Check(); err != nil {
		return nil, err
	}

	r := &Report{
		Layout:              res.Layout,
		VarThreshold:        res.Thresholds.Variance,
		BrightnessThreshold: res.Thresholds.Brightness,
		BrightnessEnabled:   res.Thresholds.BrightnessEnabled,
		Anomalies:           res.Anomalies,
		Maps: tile.Maps{
			Mean:     slices.Clone(res.Maps.Mean),
			Variance: slices.Clone(res.Maps.Variance),
			Anomaly:  slices.Clone(res.Maps.Anomaly),
		},
	}
	if !r.BrightnessEnabled {
		r.BrightnessThreshold = 0
	}
	r.Seed, r.Seeded = res.Seed()

	return r, nil
}

// Thresholds returns the classification thresholds of the report.
func (r *Report) Thresholds() tile.Thresholds {
	return tile.Thresholds{
		Variance:          r.VarThreshold,
		Brightness:        r.BrightnessThreshold,
		BrightnessEnabled: r.BrightnessEnabled,
	}
}

// Validate checks that the layout, the maps and the anomaly count agree.
func (r *Report) Validate() error {
	l := r.Layout
	want, err := tile.NewLayout(l.Width, l.Height, l.Size)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}
	if want != l {
		return fmt.Errorf("%w: %dx%d tiles do not match %dx%d frame with tile %d",
			errs.ErrInvalidReport, l.TilesX, l.TilesY, l.Width, l.Height, l.Size)
	}
	if err := r.Maps.Validate(l.Count()); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}
	for i, f := range r.Maps.Anomaly {
		if f > 1 {
			return fmt.Errorf("%w: anomaly flag %d at tile %d", errs.ErrInvalidReport, f, i)
		}
	}
	if n := tile.CountAnomalies(r.Maps); n != r.Anomalies {
		return fmt.Errorf("%w: anomaly count %d, map flags %d", errs.ErrInvalidReport, r.Anomalies, n)
	}

	return nil
}
