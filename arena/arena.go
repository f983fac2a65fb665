// Package arena implements a bump allocator over a caller-supplied buffer.
//
// An Arena never grows and never frees individual allocations. Every
// allocation is carved sequentially from the bound region, aligned to a
// power-of-two boundary, and all of them are reclaimed at once by Reset.
//
// # Basic Usage
//
//	var mem [32 * 1024]byte
//	a := arena.New(mem[:])
//
//	buf := a.Alloc(1024, 8)  // nil when the region is exhausted
//	if buf == nil {
//	    // handle out of memory
//	}
//
//	vals, err := arena.AllocSlice[float32](a, 20)
//
//	a.Reset() // O(1); every slice handed out above is now invalid
//
// # Generations
//
// Each Reset (and each Init) advances the arena generation. Allocations made
// through AllocHandle remember the generation they were issued in, and
// Bytes refuses to resolve a handle from an older generation. The raw Alloc
// path carries no such bookkeeping; building with the arenadebug tag adds
// poisoning of released memory so stale raw slices read garbage instead of
// plausible data.
//
// # Thread Safety
//
// Arena is not safe for concurrent use.
package arena

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/tilestat/errs"
)

// DefaultAlignment is the alignment used when a caller passes align <= 0.
const DefaultAlignment = 8

// Arena is a bump allocator bound to a fixed byte region.
type Arena struct {
	buf  []byte
	off  int
	peak int
	gen  uint64
}

// New creates an arena bound to buf. The arena borrows buf; the caller keeps
// ownership and must not use it for anything else while the arena is live.
func New(buf []byte) *Arena {
	a := &Arena{}
	a.Init(buf)

	return a
}

// Init binds the arena to buf and rewinds the cursor to zero.
// Handles issued before Init become stale.
func (a *Arena) Init(buf []byte) {
	a.buf = buf
	a.off = 0
	a.peak = 0
	a.gen++
}

// Reset discards all outstanding allocations in O(1) by rewinding the cursor.
// Memory contents are left untouched. Callers must not use slices obtained
// before Reset.
func (a *Arena) Reset() {
	poison(a.buf[:a.off])
	a.off = 0
	a.gen++
}

// Alloc returns n bytes aligned to align, carved from the remaining capacity.
//
// align <= 0 selects DefaultAlignment. Alloc returns nil when align is not a
// power of two, when n is negative, or when the aligned request does not fit;
// in every failure case the cursor is left unchanged. A zero-sized request on
// a non-empty arena yields an empty, non-nil slice.
func (a *Arena) Alloc(n, align int) []byte {
	p, err := a.reserve(n, align)
	if err != nil {
		return nil
	}

	return a.buf[p : p+n : p+n]
}

// TryAlloc is like Alloc but reports why an allocation failed.
//
// Returns:
//   - []byte: the allocated region
//   - error: errs.ErrInvalidAlignment, errs.ErrInvalidSize or errs.ErrOutOfMemory
func (a *Arena) TryAlloc(n, align int) ([]byte, error) {
	p, err := a.reserve(n, align)
	if err != nil {
		return nil, fmt.Errorf("alloc %d bytes (align %d, used %d of %d): %w", n, align, a.off, len(a.buf), err)
	}

	return a.buf[p : p+n : p+n], nil
}

// reserve advances the cursor past an aligned region of n bytes and returns
// its offset. Alignment is computed on the absolute address so typed views
// over the region are correctly aligned even for sub-sliced buffers.
func (a *Arena) reserve(n, align int) (int, error) {
	if align <= 0 {
		align = DefaultAlignment
	}
	if align&(align-1) != 0 {
		return 0, errs.ErrInvalidAlignment
	}
	if n < 0 {
		return 0, errs.ErrInvalidSize
	}

	p := a.off
	if len(a.buf) > 0 {
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf))) + uintptr(p)
		p += int(-addr & uintptr(align-1))
	}
	if p > len(a.buf) || n > len(a.buf)-p {
		return 0, errs.ErrOutOfMemory
	}

	a.off = p + n
	if a.off > a.peak {
		a.peak = a.off
	}

	return p, nil
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the arena,
// aligned to the natural alignment of T.
//
// T must not contain Go pointers: the garbage collector does not scan arena
// memory.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if n < 0 {
		return nil, errs.ErrInvalidSize
	}
	if n == 0 || size == 0 {
		return []T{}, nil
	}
	if n > (len(a.buf)-a.off)/size {
		return nil, fmt.Errorf("alloc %d x %d bytes (used %d of %d): %w", n, size, a.off, len(a.buf), errs.ErrOutOfMemory)
	}

	b, err := a.TryAlloc(n*size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(b)

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// Request describes one allocation for Footprint.
type Request struct {
	Size  int
	Align int
}

// SliceRequest returns the Request matching AllocSlice[T](a, n).
func SliceRequest[T any](n int) Request {
	var zero T
	return Request{Size: n * int(unsafe.Sizeof(zero)), Align: int(unsafe.Alignof(zero))}
}

// Footprint returns the number of bytes an arena needs to satisfy reqs in
// order regardless of where its buffer starts: each request is charged its
// size plus the worst-case alignment padding.
func Footprint(reqs ...Request) int {
	total := 0
	for _, r := range reqs {
		align := r.Align
		if align <= 0 {
			align = DefaultAlignment
		}
		total += r.Size + align - 1
	}

	return total
}
