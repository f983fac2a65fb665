package tile

import (
	"fmt"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/grid"
)

// Analyze computes the statistics of every tile of g, writes them into maps,
// and returns the number of anomalous tiles.
//
// Tiles are visited in row-major order (ty outer, tx inner) with origin
// (tx*Size, ty*Size).
//
// Returns:
//   - int: anomaly count
//   - error: errs.ErrFrameMismatch if g does not match layout,
//     errs.ErrMapSize if maps do not hold layout.Count() tiles
func Analyze(g grid.Grid[uint8], layout Layout, thr Thresholds, maps Maps) (int, error) {
	if g.W != layout.Width || g.H != layout.Height {
		return 0, fmt.Errorf("%w: frame %dx%d, layout %dx%d",
			errs.ErrFrameMismatch, g.W, g.H, layout.Width, layout.Height)
	}
	if err := maps.Validate(layout.Count()); err != nil {
		return 0, err
	}

	count := 0
	idx := 0
	for ty := 0; ty < layout.TilesY; ty++ {
		for tx := 0; tx < layout.TilesX; tx++ {
			st := Compute(g, tx*layout.Size, ty*layout.Size, layout.Size, layout.Size)
			maps.Mean[idx] = st.Mean
			maps.Variance[idx] = st.Variance

			var flag uint8
			if Classify(st, thr) {
				flag = 1
				count++
			}
			maps.Anomaly[idx] = flag
			idx++
		}
	}

	return count, nil
}
