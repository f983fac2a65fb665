// Package tile computes per-tile brightness and variance statistics over a
// grayscale frame and classifies tiles as anomalous.
//
// A Layout partitions a W x H frame into Size x Size tiles visited in
// row-major order; the last column and row of tiles are clipped when the
// frame dimensions are not multiples of Size. For every tile, Compute makes
// two passes over its pixels, first for the mean and then for the squared
// deviations, and reports the population variance (divisor n).
//
// Results land in caller-owned Maps, three parallel slices indexed by
// ty*TilesX+tx. Nothing in this package allocates during Analyze.
package tile
