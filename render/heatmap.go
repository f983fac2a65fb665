package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/tile"
)

// Heatmap image geometry.
const (
	HeatmapWidth  = 6 * vg.Inch
	HeatmapHeight = 4.5 * vg.Inch

	heatmapColors = 64
)

// tileGrid exposes a per-tile map as a plotter.GridXYZ. Columns and rows are
// tile coordinates; X and Y place each cell at its tile origin in pixels.
type tileGrid struct {
	layout tile.Layout
	values []float32
}

var _ plotter.GridXYZ = tileGrid{}

func (g tileGrid) Dims() (c, r int) {
	return g.layout.TilesX, g.layout.TilesY
}

func (g tileGrid) Z(c, r int) float64 {
	return float64(g.values[g.layout.Index(c, r)])
}

func (g tileGrid) X(c int) float64 {
	return float64(c * g.layout.Size)
}

func (g tileGrid) Y(r int) float64 {
	return float64(r * g.layout.Size)
}

// Heatmap writes a PNG heatmap of one per-tile map (mean or variance) to w.
// Tile row 0 is drawn at the top, matching the frame orientation.
//
// Returns:
//   - error: errs.ErrMapSize if values does not hold layout.Count() entries,
//     or a rendering error
func Heatmap(w io.Writer, layout tile.Layout, values []float32, title string) error {
	if len(values) != layout.Count() || len(values) == 0 {
		return fmt.Errorf("%w: %d values for %dx%d tiles", errs.ErrMapSize, len(values), layout.TilesX, layout.TilesY)
	}

	p, err := newHeatmapPlot(layout, values, title)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(HeatmapWidth, HeatmapHeight, "png")
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}

	return nil
}

func newHeatmapPlot(layout tile.Layout, values []float32, title string) (*plot.Plot, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, float64(v))
		hi = math.Max(hi, float64(v))
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("render heatmap: map values must be finite")
	}

	hm := plotter.NewHeatMap(tileGrid{layout: layout, values: values}, palette.Heat(heatmapColors, 1))
	hm.Min, hm.Max = lo, hi
	if hi == lo {
		hm.Max = lo + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(hm)

	return p, nil
}
