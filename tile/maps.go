package tile

import (
	"fmt"

	"github.com/arloliu/tilestat/arena"
	"github.com/arloliu/tilestat/errs"
)

// Maps holds per-tile results in three parallel slices indexed by tile.
// The caller owns the storage.
type Maps struct {
	Mean     []float32
	Variance []float32
	Anomaly  []uint8 // 1 for anomalous tiles, 0 otherwise
}

// NewMaps allocates maps for n tiles on the heap.
func NewMaps(n int) Maps {
	return Maps{
		Mean:     make([]float32, n),
		Variance: make([]float32, n),
		Anomaly:  make([]uint8, n),
	}
}

// MapsFromArena carves maps for n tiles out of a.
func MapsFromArena(a *arena.Arena, n int) (Maps, error) {
	mean, err := arena.AllocSlice[float32](a, n)
	if err != nil {
		return Maps{}, fmt.Errorf("mean map: %w", err)
	}
	variance, err := arena.AllocSlice[float32](a, n)
	if err != nil {
		return Maps{}, fmt.Errorf("variance map: %w", err)
	}
	anomaly, err := arena.AllocSlice[uint8](a, n)
	if err != nil {
		return Maps{}, fmt.Errorf("anomaly map: %w", err)
	}

	return Maps{Mean: mean, Variance: variance, Anomaly: anomaly}, nil
}

// MapsRequests returns the arena requests MapsFromArena makes for n tiles.
func MapsRequests(n int) []arena.Request {
	return []arena.Request{
		arena.SliceRequest[float32](n),
		arena.SliceRequest[float32](n),
		arena.SliceRequest[uint8](n),
	}
}

// Len returns the number of tiles the maps hold.
func (m Maps) Len() int {
	return len(m.Mean)
}

// Validate checks that all three maps hold exactly n tiles.
func (m Maps) Validate(n int) error {
	if len(m.Mean) != n || len(m.Variance) != n || len(m.Anomaly) != n {
		return fmt.Errorf("%w: want %d, have mean=%d variance=%d anomaly=%d",
			errs.ErrMapSize, n, len(m.Mean), len(m.Variance), len(m.Anomaly))
	}

	return nil
}

// Stats returns the statistics stored for tile idx.
func (m Maps) Stats(idx int) Stats {
	return Stats{Mean: m.Mean[idx], Variance: m.Variance[idx]}
}

// Anomalous reports whether tile idx is flagged.
func (m Maps) Anomalous(idx int) bool {
	return m.Anomaly[idx] != 0
}

// CountAnomalies returns the number of flagged tiles.
func CountAnomalies(m Maps) int {
	count := 0
	for _, f := range m.Anomaly {
		count += int(f)
	}

	return count
}
