// Package grid provides Grid, a non-owning strided 2D view over a flat slice.
//
// A Grid never owns its data: copying a Grid copies the view (slice header
// and dimensions), never the elements. Stride is the row pitch in elements,
// which lets a Grid address a sub-rectangle of a larger buffer.
package grid

import (
	"fmt"
	"image"

	"github.com/arloliu/tilestat/errs"
)

// Grid is a W x H view over Data with row pitch Stride (Stride >= W).
// Element (x, y) lives at Data[y*Stride+x].
//
// At, Set and Ptr do no bounds checking of their own; out-of-range
// coordinates are the caller's responsibility.
type Grid[T any] struct {
	Data   []T
	W      int
	H      int
	Stride int
}

// New returns a view over data after checking that the dimensions are
// consistent with the slice length.
//
// Returns:
//   - Grid[T]: the view
//   - error: errs.ErrInvalidGrid if w or h is negative, stride < w, or data is
//     too short to hold the last row
func New[T any](data []T, w, h, stride int) (Grid[T], error) {
	if w < 0 || h < 0 || stride < w {
		return Grid[T]{}, fmt.Errorf("%w: %dx%d stride %d", errs.ErrInvalidGrid, w, h, stride)
	}
	if w > 0 && h > 0 && len(data) < (h-1)*stride+w {
		return Grid[T]{}, fmt.Errorf("%w: %dx%d stride %d needs %d elements, have %d",
			errs.ErrInvalidGrid, w, h, stride, (h-1)*stride+w, len(data))
	}

	return Grid[T]{Data: data, W: w, H: h, Stride: stride}, nil
}

// Dense returns a view with Stride == w. It panics if data is too short,
// which makes it convenient for buffers the caller has just sized.
func Dense[T any](data []T, w, h int) Grid[T] {
	g, err := New(data, w, h, w)
	if err != nil {
		panic(err)
	}

	return g
}

// At returns the element at (x, y).
func (g Grid[T]) At(x, y int) T {
	return g.Data[y*g.Stride+x]
}

// Set stores v at (x, y).
func (g Grid[T]) Set(x, y int, v T) {
	g.Data[y*g.Stride+x] = v
}

// Ptr returns a pointer to the element at (x, y).
func (g Grid[T]) Ptr(x, y int) *T {
	return &g.Data[y*g.Stride+x]
}

// Row returns the W elements of row y.
func (g Grid[T]) Row(y int) []T {
	start := y * g.Stride
	return g.Data[start : start+g.W : start+g.W]
}

// Sub returns a view of the w x h rectangle starting at (x0, y0), sharing
// the underlying data and stride. The rectangle is clipped to the grid.
func (g Grid[T]) Sub(x0, y0, w, h int) Grid[T] {
	r := image.Rect(x0, y0, x0+w, y0+h).Intersect(g.Bounds())
	if r.Empty() {
		return Grid[T]{Stride: g.Stride}
	}
	start := r.Min.Y*g.Stride + r.Min.X

	return Grid[T]{
		Data:   g.Data[start:],
		W:      r.Dx(),
		H:      r.Dy(),
		Stride: g.Stride,
	}
}

// Bounds returns the rectangle [0,W) x [0,H).
func (g Grid[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.W, g.H)
}

// Len returns the number of addressable elements, W*H.
func (g Grid[T]) Len() int {
	return g.W * g.H
}

// Fill sets every addressable element to v. Padding between rows is left alone.
func (g Grid[T]) Fill(v T) {
	for y := 0; y < g.H; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// Gray returns an image.Gray sharing g's pixels. No data is copied.
func Gray(g Grid[uint8]) *image.Gray {
	return &image.Gray{
		Pix:    g.Data,
		Stride: g.Stride,
		Rect:   g.Bounds(),
	}
}
