package frame

import "strconv"

// Kind identifies a frame pattern.
type Kind uint8

const (
	KindFixed  Kind = 0x1 // KindFixed is the gradient + checkerboard + fixed patch pattern.
	KindSeeded Kind = 0x2 // KindSeeded is the gradient + LCG noise + hot patches pattern.
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindSeeded:
		return "seeded"
	default:
		return "unknown"
	}
}

// Pattern selects how Generate fills a frame: Fixed() or Seeded(seed).
// The zero Pattern is invalid.
type Pattern struct {
	kind Kind
	seed uint32
}

// Fixed returns the unseeded pattern.
func Fixed() Pattern {
	return Pattern{kind: KindFixed}
}

// Seeded returns the noise pattern driven by an LCG seeded with seed.
func Seeded(seed uint32) Pattern {
	return Pattern{kind: KindSeeded, seed: seed}
}

// Kind returns the pattern kind.
func (p Pattern) Kind() Kind {
	return p.kind
}

// Seed returns the seed and true for a seeded pattern, or 0 and false.
func (p Pattern) Seed() (uint32, bool) {
	if p.kind != KindSeeded {
		return 0, false
	}

	return p.seed, true
}

// Valid reports whether p was built by Fixed or Seeded.
func (p Pattern) Valid() bool {
	return p.kind == KindFixed || p.kind == KindSeeded
}

func (p Pattern) String() string {
	if p.kind == KindSeeded {
		return "seeded(" + strconv.FormatUint(uint64(p.seed), 10) + ")"
	}

	return p.kind.String()
}
