package compress

// ZstdCompressor provides Zstandard compression, the default for reports.
//
// The backend is selected at build time: klauspost/compress/zstd normally,
// valyala/gozstd when built with the gozstd tag and cgo.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// zstdLevel is the compression level of the cgo backend. It matches the
// SpeedDefault level of the pure Go encoder.
const zstdLevel = 3

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
