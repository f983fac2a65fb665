package arena

// Len returns the number of bytes consumed by allocations since the last
// Reset, including alignment padding.
func (a *Arena) Len() int {
	return a.off
}

// Cap returns the capacity of the bound region in bytes.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Available returns the number of bytes left before the cursor hits the end
// of the region. Alignment padding may make less than that usable.
func (a *Arena) Available() int {
	return len(a.buf) - a.off
}

// Peak returns the high-water mark of Len since Init. Reset does not clear it.
func (a *Arena) Peak() int {
	return a.peak
}

// Generation returns the current generation. It advances on every Init and
// Reset.
func (a *Arena) Generation() uint64 {
	return a.gen
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	if len(a.buf) == 0 {
		return 0
	}

	return float64(a.off) / float64(len(a.buf))
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		InUse:       a.Len(),
		Capacity:    a.Cap(),
		Available:   a.Available(),
		Peak:        a.Peak(),
		Generation:  a.Generation(),
		Utilization: a.Utilization(),
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	InUse       int     // Bytes currently allocated
	Capacity    int     // Region size in bytes
	Available   int     // Bytes after the cursor
	Peak        int     // High-water mark since Init
	Generation  uint64  // Reset/Init counter
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
