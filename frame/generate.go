// Package frame generates deterministic synthetic grayscale frames.
//
// Two patterns exist, selected by an explicit Pattern value:
//
//   - Fixed(): a horizontal gradient brightened on a 10-pixel checkerboard,
//     with a fixed high-variance patch at rows 40-71, columns 80-111.
//   - Seeded(seed): the same gradient plus 5-bit LCG noise per pixel, then
//     three 7x7 hot patches at LCG-chosen centers.
//
// Both are pure functions of the frame dimensions and the pattern.
package frame

import (
	"fmt"
	"image"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/grid"
)

// Fixed pattern geometry.
const (
	CheckerCell  = 10 // checkerboard cell size in pixels
	CheckerBoost = 20 // brightness added to even checkerboard cells

	PatchX0 = 80  // first column of the fixed patch
	PatchX1 = 112 // column past the fixed patch
	PatchY0 = 40  // first row of the fixed patch
	PatchY1 = 72  // row past the fixed patch
)

// Seeded pattern geometry.
const (
	HotPatchCount  = 3   // number of hot patches
	HotPatchRadius = 3   // patch spans center +/- radius
	HotPatchBoost  = 120 // brightness added inside a patch
)

// Generate fills g according to p.
//
// Returns:
//   - error: errs.ErrInvalidPattern if p is the zero Pattern
func Generate(g grid.Grid[uint8], p Pattern) error {
	switch p.kind {
	case KindFixed:
		generateFixed(g)
	case KindSeeded:
		generateSeeded(g, p.seed)
	default:
		return fmt.Errorf("%w: kind %d", errs.ErrInvalidPattern, p.kind)
	}

	return nil
}

// gradient returns the horizontal ramp value x*255/(w-1).
func gradient(x, w int) int {
	denom := w - 1
	if denom < 1 {
		denom = 1
	}

	return x * 255 / denom
}

func clamp255(v int) uint8 {
	if v > 255 {
		return 255
	}

	return uint8(v)
}

func generateFixed(g grid.Grid[uint8]) {
	for y := 0; y < g.H; y++ {
		row := g.Row(y)
		for x := range row {
			v := gradient(x, g.W)
			if (x/CheckerCell+y/CheckerCell)%2 == 0 {
				v += CheckerBoost
			}
			row[x] = clamp255(v)
		}
	}

	patch := FixedPatch().Intersect(g.Bounds())
	for y := patch.Min.Y; y < patch.Max.Y; y++ {
		for x := patch.Min.X; x < patch.Max.X; x++ {
			g.Set(x, y, uint8((x*37+y*91)&255))
		}
	}
}

func generateSeeded(g grid.Grid[uint8], seed uint32) {
	rng := NewLCG(seed)

	for y := 0; y < g.H; y++ {
		row := g.Row(y)
		for x := range row {
			row[x] = clamp255(gradient(x, g.W) + int(Noise(rng.Next())))
		}
	}

	if g.W == 0 || g.H == 0 {
		return
	}
	bounds := g.Bounds()
	for k := 0; k < HotPatchCount; k++ {
		c := nextHotSpot(rng, g.W, g.H)
		r := hotPatchRect(c).Intersect(bounds)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				p := g.Ptr(x, y)
				*p = clamp255(int(*p) + HotPatchBoost)
			}
		}
	}
}

func nextHotSpot(rng *LCG, w, h int) image.Point {
	cx := int(rng.Next() % uint32(w))
	cy := int(rng.Next() % uint32(h))

	return image.Pt(cx, cy)
}

func hotPatchRect(c image.Point) image.Rectangle {
	return image.Rect(c.X-HotPatchRadius, c.Y-HotPatchRadius, c.X+HotPatchRadius+1, c.Y+HotPatchRadius+1)
}

// FixedPatch returns the unclipped rectangle of the fixed pattern's
// high-variance patch.
func FixedPatch() image.Rectangle {
	return image.Rect(PatchX0, PatchY0, PatchX1, PatchY1)
}

// HotSpots replays the LCG of Seeded(seed) over a w x h frame and returns the
// centers of its hot patches in the order they are applied. It returns nil
// for an empty frame.
func HotSpots(w, h int, seed uint32) []image.Point {
	if w <= 0 || h <= 0 {
		return nil
	}

	rng := NewLCG(seed)
	for i := 0; i < w*h; i++ {
		rng.Next()
	}

	spots := make([]image.Point, 0, HotPatchCount)
	for k := 0; k < HotPatchCount; k++ {
		spots = append(spots, nextHotSpot(rng, w, h))
	}

	return spots
}
