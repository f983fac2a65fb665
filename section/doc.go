// Package section defines the fixed 64-byte header of a binary result report.
//
// Layout (offsets in bytes):
//
//	0   magic "TSR1"
//	4   flags: bit 0 big-endian, bit 1 brightness threshold set, bit 2 seeded
//	5   compression type (format.CompressionType)
//	6   reserved, zero
//	8   width, height, tile, tiles_x, tiles_y (uint32 each)
//	28  variance threshold (float64 bits)
//	36  brightness threshold (float64 bits)
//	44  seed (uint32)
//	48  anomaly count (uint32)
//	52  raw payload length (uint32)
//	56  xxHash64 of the raw payload
//
// Bytes 0-7 are byte-order independent; every later field uses the byte order
// named by the big-endian flag.
package section
