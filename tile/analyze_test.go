package tile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tilestat/arena"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/grid"
)

func TestAnalyzeFixedScenario(t *testing.T) {
	g := testFrame(t, 160, 120, frame.Fixed())
	l, err := NewLayout(160, 120, 32)
	require.NoError(t, err)
	require.Equal(t, 5, l.TilesX)
	require.Equal(t, 4, l.TilesY)

	maps := NewMaps(l.Count())
	count, err := Analyze(g, l, Thresholds{Variance: 400}, maps)
	require.NoError(t, err)

	patchTile := l.TileAt(80, 40)
	require.True(t, maps.Anomalous(patchTile), "tile over the injected patch must be flagged")
	require.GreaterOrEqual(t, count, 1)
	require.Equal(t, 4, count)
	require.Equal(t, []uint8{
		0, 0, 0, 0, 0,
		0, 0, 1, 1, 0,
		0, 0, 1, 1, 0,
		0, 0, 0, 0, 0,
	}, maps.Anomaly)
	require.Equal(t, count, CountAnomalies(maps))
}

func TestAnalyzeMatchesCompute(t *testing.T) {
	g := testFrame(t, 50, 37, frame.Seeded(5))
	l, err := NewLayout(50, 37, 16)
	require.NoError(t, err)

	maps := NewMaps(l.Count())
	_, err = Analyze(g, l, Thresholds{Variance: 300}, maps)
	require.NoError(t, err)

	for idx := 0; idx < l.Count(); idx++ {
		o := l.Origin(idx)
		require.Equal(t, Compute(g, o.X, o.Y, l.Size, l.Size), maps.Stats(idx), "tile %d", idx)
	}
}

func TestAnalyzeBrightnessThreshold(t *testing.T) {
	g := testFrame(t, 160, 120, frame.Seeded(123))
	l, err := NewLayout(160, 120, 16)
	require.NoError(t, err)
	maps := NewMaps(l.Count())

	count, err := Analyze(g, l, Thresholds{Variance: 200, Brightness: 180, BrightnessEnabled: true}, maps)
	require.NoError(t, err)
	require.Equal(t, 37, count)

	for idx := 0; idx < l.Count(); idx++ {
		st := maps.Stats(idx)
		want := st.Variance > 200 || st.Mean > 180
		require.Equal(t, want, maps.Anomalous(idx), "tile %d", idx)
	}
}

func TestAnalyzeMonotoneInThresholds(t *testing.T) {
	g := testFrame(t, 160, 120, frame.Seeded(77))
	l, err := NewLayout(160, 120, 16)
	require.NoError(t, err)
	maps := NewMaps(l.Count())

	prev := -1
	for v := float32(4000); v >= 0; v -= 50 {
		count, err := Analyze(g, l, Thresholds{Variance: v}, maps)
		require.NoError(t, err)
		require.GreaterOrEqual(t, count, prev, "variance threshold %v", v)
		prev = count
	}

	prev = -1
	for b := float32(256); b >= 0; b -= 8 {
		count, err := Analyze(g, l, Thresholds{Variance: 1e9, Brightness: b, BrightnessEnabled: true}, maps)
		require.NoError(t, err)
		require.GreaterOrEqual(t, count, prev, "brightness threshold %v", b)
		prev = count
	}
}

func TestAnalyzeErrors(t *testing.T) {
	g := testFrame(t, 32, 32, frame.Fixed())
	l, err := NewLayout(32, 32, 8)
	require.NoError(t, err)

	_, err = Analyze(g, l, Thresholds{}, NewMaps(l.Count()-1))
	require.ErrorIs(t, err, errs.ErrMapSize)

	bad := NewMaps(l.Count())
	bad.Anomaly = bad.Anomaly[:3]
	_, err = Analyze(g, l, Thresholds{}, bad)
	require.ErrorIs(t, err, errs.ErrMapSize)

	other, err := NewLayout(32, 16, 8)
	require.NoError(t, err)
	_, err = Analyze(g, other, Thresholds{}, NewMaps(other.Count()))
	require.ErrorIs(t, err, errs.ErrFrameMismatch)
}

func TestMapsFromArena(t *testing.T) {
	const n = 20
	size := arena.Footprint(MapsRequests(n)...)
	a := arena.New(make([]byte, size))

	maps, err := MapsFromArena(a, n)
	require.NoError(t, err)
	require.NoError(t, maps.Validate(n))
	require.LessOrEqual(t, a.Len(), size)

	g := grid.Dense(make([]uint8, 160*120), 160, 120)
	require.NoError(t, frame.Generate(g, frame.Fixed()))
	l, err := NewLayout(160, 120, 32)
	require.NoError(t, err)
	count, err := Analyze(g, l, Thresholds{Variance: 400}, maps)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	_, err = MapsFromArena(a, n)
	require.ErrorIs(t, err, errs.ErrOutOfMemory)
}

func BenchmarkAnalyze(b *testing.B) {
	g := grid.Dense(make([]uint8, 160*120), 160, 120)
	_ = frame.Generate(g, frame.Seeded(123))
	l, _ := NewLayout(160, 120, 16)
	maps := NewMaps(l.Count())
	thr := Thresholds{Variance: 200, Brightness: 180, BrightnessEnabled: true}
	b.ResetTimer()
	for b.Loop() {
		_, _ = Analyze(g, l, thr, maps)
	}
}
