// Package compress provides the codecs that compress binary result report
// payloads.
//
// A report payload is the concatenation of the mean map, the variance map
// (float32 each) and the anomaly map (one byte per tile). Neighbouring tiles
// of a synthetic frame have similar statistics, so the float maps share
// exponent and high mantissa bytes and the anomaly map is mostly zeros;
// general purpose codecs shrink them well.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as-is
//   - Zstd (format.CompressionZstd): best ratio, the default for reports
//   - S2 (format.CompressionS2): fast with good compression
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Obtain a codec by type:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// # Zstd Backends
//
// Zstd uses the pure Go klauspost/compress implementation by default.
// Building with the gozstd tag on a cgo-enabled toolchain switches to the
// libzstd bindings of valyala/gozstd. Both produce standard zstd frames, so
// reports written by one backend decode with the other.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use.
package compress
