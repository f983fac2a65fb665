package tilestat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tilestat/config"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/frame"
	"github.com/arloliu/tilestat/tile"
)

func mustConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	cfg, err := config.New(opts...)
	require.NoError(t, err)

	return cfg
}

func TestRunFixedPattern(t *testing.T) {
	cfg := mustConfig(t, config.WithFixedPattern())
	an, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	res, err := an.Run()
	require.NoError(t, err)

	require.Equal(t, 5, res.Layout.TilesX)
	require.Equal(t, 4, res.Layout.TilesY)
	require.Equal(t, 4, res.Anomalies)
	require.Equal(t, []int{7, 8, 12, 13}, res.AnomalousTiles())
	require.Equal(t, res.Anomalies, tile.CountAnomalies(res.Maps))

	// The tile covering the fixed patch origin is anomalous.
	require.True(t, res.Maps.Anomalous(res.Layout.TileAt(80, 40)))

	require.Equal(t, float32(129.4140625), res.Maps.Mean[7])
	require.Equal(t, float32(2232.14892578125), res.Maps.Variance[7])
	require.Equal(t, float32(35.03125), res.Maps.Mean[0])
	require.Equal(t, float32(307.5615234375), res.Maps.Variance[0])

	_, seeded := res.Seed()
	require.False(t, seeded)
}

func TestRunSeededDefaults(t *testing.T) {
	an, err := NewAnalyzer(config.Default())
	require.NoError(t, err)

	res, err := an.Run()
	require.NoError(t, err)
	require.Equal(t, []int{6, 7, 12, 18}, res.AnomalousTiles())

	seed, ok := res.Seed()
	require.True(t, ok)
	require.Equal(t, uint32(1), seed)
}

func TestRunDemoConfiguration(t *testing.T) {
	cfg := mustConfig(t,
		config.WithTile(16),
		config.WithVarianceThreshold(200),
		config.WithBrightnessThreshold(180),
		config.WithSeed(123),
	)
	an, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	res, err := an.Run()
	require.NoError(t, err)
	require.Equal(t, 10, res.Layout.TilesX)
	require.Equal(t, 8, res.Layout.TilesY)
	require.Equal(t, 37, res.Anomalies)
	require.Equal(t, []uint8{8, 16, 12, 28, 34}, res.Frame.Row(0)[:5])
}

func TestRunDeterministic(t *testing.T) {
	cfg := mustConfig(t, config.WithSeed(99))
	a1, err := NewAnalyzer(cfg)
	require.NoError(t, err)
	a2, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	r1, err := a1.Run()
	require.NoError(t, err)
	r2, err := a2.Run()
	require.NoError(t, err)

	require.Equal(t, r1.Maps, r2.Maps)
	require.Equal(t, r1.Frame.Data, r2.Frame.Data)
}

func TestRunThresholdMonotonic(t *testing.T) {
	prev := -1
	for _, thr := range []float64{5000, 2000, 1000, 400, 100, 0} {
		cfg := mustConfig(t, config.WithVarianceThreshold(thr), config.WithoutBrightnessThreshold())
		an, err := NewAnalyzer(cfg)
		require.NoError(t, err)

		res, err := an.Run()
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Anomalies, prev, "threshold %v", thr)
		prev = res.Anomalies
	}
}

func TestRunStaleResult(t *testing.T) {
	an, err := NewAnalyzer(mustConfig(t, config.WithFixedPattern()))
	require.NoError(t, err)

	first, err := an.Run()
	require.NoError(t, err)
	require.False(t, first.Stale())
	require.NoError(t, first.Check())

	kept, err := first.Detach()
	require.NoError(t, err)

	second, err := an.Run()
	require.NoError(t, err)
	require.True(t, first.Stale())
	require.ErrorIs(t, first.Check(), errs.ErrStaleResult)
	require.False(t, second.Stale())
	require.Greater(t, second.Generation(), first.Generation())

	_, err = first.Detach()
	require.ErrorIs(t, err, errs.ErrStaleResult)

	require.False(t, kept.Stale())
	require.Equal(t, second.Maps, kept.Maps)
	require.Equal(t, second.Frame.Data, kept.Frame.Data)
}

func TestRunReusesArena(t *testing.T) {
	an, err := NewAnalyzer(config.Default())
	require.NoError(t, err)

	first, err := an.Run()
	require.NoError(t, err)
	used := an.Metrics().InUse

	second, err := an.Run()
	require.NoError(t, err)
	require.Equal(t, used, an.Metrics().InUse)
	require.Same(t, &first.Frame.Data[0], &second.Frame.Data[0])
	require.Same(t, &first.Maps.Mean[0], &second.Maps.Mean[0])
}

func TestRunOutOfMemory(t *testing.T) {
	cfg := mustConfig(t, config.WithArenaSize(1024))
	an, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	_, err = an.Run()
	require.ErrorIs(t, err, errs.ErrOutOfMemory)
}

func TestRequiredArenaSize(t *testing.T) {
	layout, err := tile.NewLayout(160, 120, 32)
	require.NoError(t, err)

	// frame 19200 + two float maps (80 + 3 padding) + anomaly map 20
	require.Equal(t, 19386, RequiredArenaSize(layout))

	cfg := mustConfig(t, config.WithArenaSize(RequiredArenaSize(layout)))
	an, err := NewAnalyzer(cfg)
	require.NoError(t, err)
	_, err = an.Run()
	require.NoError(t, err)
}

func TestNewAnalyzerWithBuffer(t *testing.T) {
	buf := make([]byte, 32*1024)
	an, err := NewAnalyzer(config.Default(), WithBuffer(buf))
	require.NoError(t, err)

	res, err := an.Run()
	require.NoError(t, err)
	require.Same(t, &buf[0], &res.Frame.Data[0])

	_, err = NewAnalyzer(config.Default(), WithBuffer(nil))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestNewAnalyzerInvalid(t *testing.T) {
	_, err := NewAnalyzer(nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	cfg := config.Default()
	cfg.Tile = 0
	_, err = NewAnalyzer(cfg)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestAnalyzerCopiesConfig(t *testing.T) {
	cfg := config.Default()
	an, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	cfg.Pattern = frame.Fixed()
	require.Equal(t, frame.Seeded(1), an.Config().Pattern)
}

func TestWithClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}

	an, err := NewAnalyzer(config.Default(), WithClock(clock))
	require.NoError(t, err)

	res, err := an.Run()
	require.NoError(t, err)
	require.Equal(t, time.Millisecond, res.Elapsed)
}

func BenchmarkRun(b *testing.B) {
	an, err := NewAnalyzer(config.Default())
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := an.Run(); err != nil {
			b.Fatal(err)
		}
	}
}
