package tile

import (
	"fmt"
	"image"

	"github.com/arloliu/tilestat/errs"
)

// Layout partitions a Width x Height frame into Size x Size tiles.
type Layout struct {
	Width  int
	Height int
	Size   int
	TilesX int // ceil(Width / Size)
	TilesY int // ceil(Height / Size)
}

// NewLayout returns the tiling of a w x h frame with square tiles of size.
//
// Returns:
//   - Layout: the tiling
//   - error: errs.ErrInvalidLayout if any argument is not positive
func NewLayout(w, h, size int) (Layout, error) {
	if w <= 0 || h <= 0 || size <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d tile %d", errs.ErrInvalidLayout, w, h, size)
	}

	return Layout{
		Width:  w,
		Height: h,
		Size:   size,
		TilesX: (w + size - 1) / size,
		TilesY: (h + size - 1) / size,
	}, nil
}

// Count returns the number of tiles, TilesX*TilesY.
func (l Layout) Count() int {
	return l.TilesX * l.TilesY
}

// Index returns the map index of tile (tx, ty).
func (l Layout) Index(tx, ty int) int {
	return ty*l.TilesX + tx
}

// Coords returns the tile coordinates of map index idx.
func (l Layout) Coords(idx int) (tx, ty int) {
	return idx % l.TilesX, idx / l.TilesX
}

// Origin returns the top-left pixel of tile idx.
func (l Layout) Origin(idx int) image.Point {
	tx, ty := l.Coords(idx)
	return image.Pt(tx*l.Size, ty*l.Size)
}

// Rect returns the unclipped Size x Size rectangle of tile idx.
func (l Layout) Rect(idx int) image.Rectangle {
	o := l.Origin(idx)
	return image.Rect(o.X, o.Y, o.X+l.Size, o.Y+l.Size)
}

// Clamped returns the rectangle of tile idx clipped to the frame.
func (l Layout) Clamped(idx int) image.Rectangle {
	return l.Rect(idx).Intersect(image.Rect(0, 0, l.Width, l.Height))
}

// Area returns the number of frame pixels inside tile idx.
func (l Layout) Area(idx int) int {
	r := l.Clamped(idx)
	return r.Dx() * r.Dy()
}

// TileAt returns the index of the tile containing pixel (x, y), or -1 when
// the pixel is outside the frame.
func (l Layout) TileAt(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1
	}

	return l.Index(x/l.Size, y/l.Size)
}
