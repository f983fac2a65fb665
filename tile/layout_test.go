package tile

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tilestat/errs"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name           string
		w, h, size     int
		tilesX, tilesY int
	}{
		{"even division", 160, 120, 40, 4, 3},
		{"default frame", 160, 120, 32, 5, 4},
		{"original demo", 160, 120, 16, 10, 8},
		{"ragged", 50, 37, 16, 4, 3},
		{"tile larger than frame", 10, 10, 64, 1, 1},
		{"single pixel tiles", 3, 2, 1, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.w, tt.h, tt.size)
			require.NoError(t, err)
			require.Equal(t, tt.tilesX, l.TilesX)
			require.Equal(t, tt.tilesY, l.TilesY)
			require.Equal(t, tt.tilesX*tt.tilesY, l.Count())
		})
	}
}

func TestNewLayoutInvalid(t *testing.T) {
	for _, args := range [][3]int{{0, 10, 4}, {10, 0, 4}, {10, 10, 0}, {-1, 10, 4}, {10, 10, -8}} {
		_, err := NewLayout(args[0], args[1], args[2])
		require.ErrorIs(t, err, errs.ErrInvalidLayout, "args %v", args)
	}
}

func TestLayoutIndexing(t *testing.T) {
	l, err := NewLayout(160, 120, 32)
	require.NoError(t, err)

	require.Equal(t, 7, l.Index(2, 1))
	tx, ty := l.Coords(7)
	require.Equal(t, 2, tx)
	require.Equal(t, 1, ty)
	require.Equal(t, image.Pt(64, 32), l.Origin(7))
	require.Equal(t, image.Rect(64, 32, 96, 64), l.Rect(7))

	require.Equal(t, 7, l.TileAt(80, 40))
	require.Equal(t, 19, l.TileAt(159, 119))
	require.Equal(t, -1, l.TileAt(160, 0))
	require.Equal(t, -1, l.TileAt(0, -1))
}

func TestLayoutPartitionCoversFrameOnce(t *testing.T) {
	for _, dims := range [][3]int{{160, 120, 32}, {160, 120, 16}, {50, 37, 16}, {7, 5, 3}, {10, 10, 64}} {
		l, err := NewLayout(dims[0], dims[1], dims[2])
		require.NoError(t, err)

		covered := make([]int, l.Width*l.Height)
		for idx := 0; idx < l.Count(); idx++ {
			r := l.Rect(idx)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					if x < l.Width && y < l.Height {
						covered[y*l.Width+x]++
					}
				}
			}
		}
		for i, c := range covered {
			require.Equal(t, 1, c, "layout %v pixel %d", dims, i)
		}

		// Unclipped rectangles are pairwise disjoint.
		for i := 0; i < l.Count(); i++ {
			for j := i + 1; j < l.Count(); j++ {
				require.False(t, l.Rect(i).Overlaps(l.Rect(j)), "tiles %d and %d overlap", i, j)
			}
		}
	}
}

func TestLayoutEdgeTileArea(t *testing.T) {
	l, err := NewLayout(50, 37, 16)
	require.NoError(t, err)

	full := l.Size * l.Size
	total := 0
	for idx := 0; idx < l.Count(); idx++ {
		tx, ty := l.Coords(idx)
		area := l.Area(idx)
		total += area

		require.Positive(t, area)
		if tx == l.TilesX-1 || ty == l.TilesY-1 {
			require.Less(t, area, full, "edge tile %d", idx)
		} else {
			require.Equal(t, full, area)
		}
	}
	require.Equal(t, 50*37, total)
	require.Equal(t, 2*5, l.Area(l.Count()-1))
}
