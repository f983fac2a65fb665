//go:build arenadebug

package arena

// PoisonEnabled reports whether Reset overwrites released memory.
const PoisonEnabled = true

// PoisonByte is written over released memory in arenadebug builds.
const PoisonByte = 0xA5

// poison overwrites released memory so stale slices are easy to spot.
func poison(b []byte) {
	for i := range b {
		b[i] = PoisonByte
	}
}
