package frame

// LCG constants (Numerical Recipes).
const (
	LCGMultiplier uint32 = 1664525
	LCGIncrement  uint32 = 1013904223
)

// LCG is a 32-bit linear congruential generator:
// s' = 1664525*s + 1013904223 (mod 2^32).
//
// The zero value is a generator seeded with 0.
type LCG struct {
	state uint32
}

// NewLCG returns a generator seeded with seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the state and returns it.
func (g *LCG) Next() uint32 {
	g.state = LCGMultiplier*g.state + LCGIncrement
	return g.state
}

// State returns the current state without advancing.
func (g *LCG) State() uint32 {
	return g.state
}

// Noise maps a draw to the additive pixel noise used by the seeded pattern:
// bits 24-28 of r, in [0, 31].
func Noise(r uint32) uint8 {
	return uint8((r >> 24) & 0x1F)
}
