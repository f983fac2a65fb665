package arena

import (
	"fmt"

	"github.com/arloliu/tilestat/errs"
)

// Handle refers to an allocation by offset and the generation it was
// issued in. The zero Handle is never valid.
type Handle struct {
	off int
	n   int
	gen uint64
}

// Len returns the size in bytes of the allocation.
func (h Handle) Len() int {
	return h.n
}

// Generation returns the arena generation the handle was issued in.
func (h Handle) Generation() uint64 {
	return h.gen
}

// AllocHandle allocates like TryAlloc and returns a generation-checked handle
// instead of a slice.
func (a *Arena) AllocHandle(n, align int) (Handle, error) {
	p, err := a.reserve(n, align)
	if err != nil {
		return Handle{}, fmt.Errorf("alloc handle %d bytes: %w", n, err)
	}

	return Handle{off: p, n: n, gen: a.gen}, nil
}

// Bytes resolves h to its backing bytes.
//
// Returns:
//   - []byte: the allocation, capped to its length
//   - error: errs.ErrStaleHandle if the arena was reset or re-initialized
//     after h was issued, errs.ErrForeignHandle if h lies outside the region
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	if h.gen != a.gen {
		return nil, errs.ErrStaleHandle
	}
	if h.off < 0 || h.n < 0 || h.off+h.n > len(a.buf) {
		return nil, errs.ErrForeignHandle
	}

	return a.buf[h.off : h.off+h.n : h.off+h.n], nil
}

// Valid reports whether h belongs to the current generation.
func (a *Arena) Valid(h Handle) bool {
	return h.gen == a.gen
}
