// Package render turns analysis results into console text and PNG images.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arloliu/tilestat/dump"
)

// Summary writes the three console lines of a run:
//
//	cfg: 160x120 tile=16 var_thr=200.0 bright_thr=180.0 seed=123
//	tile_stats_demo: 160x120, tile=16 => tiles=10x8
//	time: 0.041 ms, anomalies: 37
//
// A disabled brightness threshold prints as bright_thr=off and the fixed
// pattern as seed=fixed.
func Summary(w io.Writer, r *dump.Report, elapsed time.Duration) error {
	l := r.Layout

	bright := "off"
	if r.BrightnessEnabled {
		bright = strconv.FormatFloat(float64(r.BrightnessThreshold), 'f', 1, 64)
	}
	seed := "fixed"
	if r.Seeded {
		seed = strconv.FormatUint(uint64(r.Seed), 10)
	}
	ms := float64(elapsed) / float64(time.Millisecond)

	_, err := fmt.Fprintf(w,
		"cfg: %dx%d tile=%d var_thr=%.1f bright_thr=%s seed=%s\n"+
			"tile_stats_demo: %dx%d, tile=%d => tiles=%dx%d\n"+
			"time: %.3f ms, anomalies: %d\n",
		l.Width, l.Height, l.Size, float64(r.VarThreshold), bright, seed,
		l.Width, l.Height, l.Size, l.TilesX, l.TilesY,
		ms, r.Anomalies)

	return err
}
