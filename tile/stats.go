package tile

import "github.com/arloliu/tilestat/grid"

// Stats holds the mean and population variance of the pixels of one tile.
type Stats struct {
	Mean     float32
	Variance float32
}

// Compute returns the statistics of the sub-rectangle
// [x0, min(x0+tw, W)) x [y0, min(y0+th, H)) of g.
//
// Accumulation is done in float64 in row-major order and the results are
// rounded to float32. An empty rectangle yields the zero Stats.
func Compute(g grid.Grid[uint8], x0, y0, tw, th int) Stats {
	x1 := min(x0+tw, g.W)
	y1 := min(y0+th, g.H)
	if x1 <= x0 || y1 <= y0 {
		return Stats{}
	}
	n := float64((x1 - x0) * (y1 - y0))

	var sum float64
	for y := y0; y < y1; y++ {
		start := y * g.Stride
		for _, v := range g.Data[start+x0 : start+x1] {
			sum += float64(v)
		}
	}
	mean := sum / n

	var s2 float64
	for y := y0; y < y1; y++ {
		start := y * g.Stride
		for _, v := range g.Data[start+x0 : start+x1] {
			d := float64(v) - mean
			// The conversion forbids fusing into an FMA.
			s2 += float64(d * d)
		}
	}

	return Stats{Mean: float32(mean), Variance: float32(s2 / n)}
}

// Thresholds configures anomaly classification.
type Thresholds struct {
	// Variance flags tiles whose variance is strictly greater.
	Variance float32
	// Brightness flags tiles whose mean is strictly greater, when
	// BrightnessEnabled is set.
	Brightness        float32
	BrightnessEnabled bool
}

// Classify reports whether st is anomalous under thr.
func Classify(st Stats, thr Thresholds) bool {
	if st.Variance > thr.Variance {
		return true
	}

	return thr.BrightnessEnabled && st.Mean > thr.Brightness
}
