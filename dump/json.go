package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/tile"
)

// jsonReport mirrors the JSON object; field order is the key order.
type jsonReport struct {
	Width               int       `json:"width"`
	Height              int       `json:"height"`
	Tile                int       `json:"tile"`
	TilesX              int       `json:"tiles_x"`
	TilesY              int       `json:"tiles_y"`
	VarThreshold        float64   `json:"var_threshold"`
	BrightnessThreshold *float64  `json:"brightness_threshold"`
	Seed                *uint32   `json:"seed"`
	Anomalies           int       `json:"anomalies"`
	MeanMap             []float64 `json:"mean_map"`
	VarMap              []float64 `json:"var_map"`
	AnomMap             []int     `json:"anom_map"`
}

func widen(vals []float32) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}

	return out
}

// MarshalJSON encodes the report. Floats are the float32 values widened to
// float64; brightness_threshold is null when disabled and seed is null for
// the fixed pattern.
func (r *Report) MarshalJSON() ([]byte, error) {
	jr := jsonReport{
		Width:        r.Layout.Width,
		Height:       r.Layout.Height,
		Tile:         r.Layout.Size,
		TilesX:       r.Layout.TilesX,
		TilesY:       r.Layout.TilesY,
		VarThreshold: float64(r.VarThreshold),
		Anomalies:    r.Anomalies,
		MeanMap:      widen(r.Maps.Mean),
		VarMap:       widen(r.Maps.Variance),
		AnomMap:      make([]int, len(r.Maps.Anomaly)),
	}
	if r.BrightnessEnabled {
		b := float64(r.BrightnessThreshold)
		jr.BrightnessThreshold = &b
	}
	if r.Seeded {
		s := r.Seed
		jr.Seed = &s
	}
	for i, f := range r.Maps.Anomaly {
		jr.AnomMap[i] = int(f)
	}

	return json.Marshal(jr)
}

// UnmarshalJSON decodes and validates a report.
func (r *Report) UnmarshalJSON(data []byte) error {
	var jr jsonReport
	if err := json.Unmarshal(data, &jr); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}

	out := Report{
		Layout: tile.Layout{
			Width:  jr.Width,
			Height: jr.Height,
			Size:   jr.Tile,
			TilesX: jr.TilesX,
			TilesY: jr.TilesY,
		},
		VarThreshold: float32(jr.VarThreshold),
		Anomalies:    jr.Anomalies,
		Maps: tile.Maps{
			Mean:     make([]float32, len(jr.MeanMap)),
			Variance: make([]float32, len(jr.VarMap)),
			Anomaly:  make([]uint8, len(jr.AnomMap)),
		},
	}
	if jr.BrightnessThreshold != nil {
		out.BrightnessThreshold = float32(*jr.BrightnessThreshold)
		out.BrightnessEnabled = true
	}
	if jr.Seed != nil {
		out.Seed = *jr.Seed
		out.Seeded = true
	}
	for i, v := range jr.MeanMap {
		out.Maps.Mean[i] = float32(v)
	}
	for i, v := range jr.VarMap {
		out.Maps.Variance[i] = float32(v)
	}
	for i, f := range jr.AnomMap {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: anomaly flag %d at tile %d", errs.ErrInvalidReport, f, i)
		}
		out.Maps.Anomaly[i] = uint8(f)
	}
	if err := out.Validate(); err != nil {
		return err
	}

	*r = out

	return nil
}

// WriteJSON writes r to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	return nil
}

// WriteJSONFile writes r to the file at path, replacing it.
func WriteJSONFile(path string, r *Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write json report: %w", cerr)
		}
	}()

	return WriteJSON(f, r)
}

// ReadJSON reads and validates a JSON report.
func ReadJSON(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		if errors.Is(err, errs.ErrInvalidReport) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}

	return &r, nil
}
