package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tilestat"
	"github.com/arloliu/tilestat/config"
	"github.com/arloliu/tilestat/dump"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/grid"
	"github.com/arloliu/tilestat/tile"
)

func analyze(t *testing.T, opts ...config.Option) (*tilestat.Result, *dump.Report) {
	t.Helper()
	cfg, err := config.New(opts...)
	require.NoError(t, err)
	an, err := tilestat.NewAnalyzer(cfg)
	require.NoError(t, err)
	res, err := an.Run()
	require.NoError(t, err)
	r, err := dump.FromResult(res)
	require.NoError(t, err)

	return res, r
}

func TestSummary(t *testing.T) {
	_, r := analyze(t,
		config.WithTile(16),
		config.WithVarianceThreshold(200),
		config.WithBrightnessThreshold(180),
		config.WithSeed(123),
	)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, r, 1234*time.Microsecond))

	want := "cfg: 160x120 tile=16 var_thr=200.0 bright_thr=180.0 seed=123\n" +
		"tile_stats_demo: 160x120, tile=16 => tiles=10x8\n" +
		"time: 1.234 ms, anomalies: 37\n"
	require.Equal(t, want, buf.String())
}

func TestSummaryFixedWithoutBrightness(t *testing.T) {
	_, r := analyze(t, config.WithFixedPattern(), config.WithoutBrightnessThreshold())

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, r, 0))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "cfg: 160x120 tile=32 var_thr=400.0 bright_thr=off seed=fixed", lines[0])
	require.Equal(t, "tile_stats_demo: 160x120, tile=32 => tiles=5x4", lines[1])
	require.Equal(t, "time: 0.000 ms, anomalies: 4", lines[2])
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return img
}

func TestHeatmap(t *testing.T) {
	_, r := analyze(t)

	for name, values := range map[string][]float32{"mean": r.Maps.Mean, "variance": r.Maps.Variance} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Heatmap(&buf, r.Layout, values, name))

			b := decodePNG(t, buf.Bytes()).Bounds()
			require.Positive(t, b.Dx())
			require.Greater(t, b.Dx(), b.Dy())
		})
	}
}

func TestHeatmapUniformValues(t *testing.T) {
	layout, err := tile.NewLayout(64, 64, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Heatmap(&buf, layout, []float32{5, 5, 5, 5}, "flat"))
	decodePNG(t, buf.Bytes())
}

func TestHeatmapSingleTile(t *testing.T) {
	layout, err := tile.NewLayout(10, 10, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Heatmap(&buf, layout, []float32{42}, "one"))
}

func TestHeatmapErrors(t *testing.T) {
	layout, err := tile.NewLayout(64, 64, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.ErrorIs(t, Heatmap(&buf, layout, []float32{1, 2}, "short"), errs.ErrMapSize)
	require.Error(t, Heatmap(&buf, layout, []float32{1, 2, float32(math.NaN()), 4}, "nan"))
}

func TestTileGrid(t *testing.T) {
	layout, err := tile.NewLayout(64, 32, 16)
	require.NoError(t, err)
	g := tileGrid{layout: layout, values: []float32{0, 1, 2, 3, 4, 5, 6, 7}}

	c, r := g.Dims()
	require.Equal(t, 4, c)
	require.Equal(t, 2, r)
	require.Equal(t, 6.0, g.Z(2, 1))
	require.Equal(t, 48.0, g.X(3))
	require.Equal(t, 16.0, g.Y(1))
}

func TestFramePNG(t *testing.T) {
	res, _ := analyze(t, config.WithFixedPattern())

	var buf bytes.Buffer
	require.NoError(t, FramePNG(&buf, res.Frame))

	img := decodePNG(t, buf.Bytes())
	require.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())

	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	for _, p := range []image.Point{{0, 0}, {85, 45}, {159, 119}} {
		require.Equal(t, res.Frame.At(p.X, p.Y), gray.GrayAt(p.X, p.Y).Y, "pixel %v", p)
	}
}

func TestFramePNGSubView(t *testing.T) {
	data := make([]uint8, 8*4)
	for i := range data {
		data[i] = uint8(i)
	}
	g := grid.Dense(data, 8, 4).Sub(2, 1, 3, 2)

	var buf bytes.Buffer
	require.NoError(t, FramePNG(&buf, g))

	gray, ok := decodePNG(t, buf.Bytes()).(*image.Gray)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 0, 3, 2), gray.Bounds())
	require.Equal(t, uint8(10), gray.GrayAt(0, 0).Y)
	require.Equal(t, uint8(20), gray.GrayAt(2, 1).Y)
}
