package render

import (
	"fmt"
	"image/png"
	"io"

	"github.com/arloliu/tilestat/grid"
)

// FramePNG writes the frame as an 8-bit grayscale PNG. The image shares the
// frame memory; nothing is copied.
func FramePNG(w io.Writer, g grid.Grid[uint8]) error {
	if err := png.Encode(w, grid.Gray(g)); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	return nil
}
