package dump

import (
	"fmt"
	"math"

	"github.com/arloliu/tilestat/compress"
	"github.com/arloliu/tilestat/endian"
	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/format"
	"github.com/arloliu/tilestat/internal/hash"
	"github.com/arloliu/tilestat/internal/options"
	"github.com/arloliu/tilestat/internal/pool"
	"github.com/arloliu/tilestat/section"
	"github.com/arloliu/tilestat/tile"
)

// DefaultCompression is the payload compression used by Encode.
const DefaultCompression = format.CompressionZstd

// bytesPerTile is the payload size of one tile: mean, variance and flag.
const bytesPerTile = 4 + 4 + 1

type encodeConfig struct {
	compression format.CompressionType
	engine      endian.EndianEngine
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*encodeConfig]

// WithCompression selects the payload codec.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *encodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCodec, c, uint8(c))
		}
		cfg.compression = c

		return nil
	})
}

// WithBigEndian writes header fields and payload values big-endian.
func WithBigEndian() EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian writes header fields and payload values little-endian.
// This is the default.
func WithLittleEndian() EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

func toUint32(name string, v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s %d does not fit in 32 bits", errs.ErrInvalidReport, name, v)
	}

	return uint32(v), nil
}

func newHeader(r *Report, cfg *encodeConfig) (section.ReportHeader, error) {
	h := section.ReportHeader{
		Compression:  cfg.compression,
		VarThreshold: float64(r.VarThreshold),
		Seed:         r.Seed,
	}
	if endian.IsBigEndian(cfg.engine) {
		h.Flag.WithBigEndian()
	}
	h.Flag.SetBrightness(r.BrightnessEnabled)
	if r.BrightnessEnabled {
		h.BrightnessThreshold = float64(r.BrightnessThreshold)
	}
	h.Flag.SetSeeded(r.Seeded)

	fields := []struct {
		name string
		v    int
		dst  *uint32
	}{
		{"width", r.Layout.Width, &h.Width},
		{"height", r.Layout.Height, &h.Height},
		{"tile", r.Layout.Size, &h.Tile},
		{"tiles_x", r.Layout.TilesX, &h.TilesX},
		{"tiles_y", r.Layout.TilesY, &h.TilesY},
		{"anomalies", r.Anomalies, &h.Anomalies},
	}
	for _, f := range fields {
		v, err := toUint32(f.name, f.v)
		if err != nil {
			return section.ReportHeader{}, err
		}
		*f.dst = v
	}

	return h, nil
}

// Encode serializes r into a binary report.
//
// Parameters:
//   - r: the report; it is validated first
//   - opts: compression (default zstd) and byte order (default little-endian)
//
// Returns:
//   - []byte: header followed by the compressed payload
//   - error: errs.ErrInvalidReport, errs.ErrInvalidCodec or a codec error
func Encode(r *Report, opts ...EncodeOption) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cfg := &encodeConfig{
		compression: DefaultCompression,
		engine:      endian.GetLittleEndianEngine(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := newHeader(r, cfg)
	if err != nil {
		return nil, err
	}

	bb := pool.GetReportBuffer()
	defer pool.PutReportBuffer(bb)

	n := r.Layout.Count()
	bb.Grow(bytesPerTile * n)
	bb.B = endian.AppendFloat32s(cfg.engine, bb.B, r.Maps.Mean)
	bb.B = endian.AppendFloat32s(cfg.engine, bb.B, r.Maps.Variance)
	bb.B = append(bb.B, r.Maps.Anomaly...)
	raw := bb.Bytes()

	if header.PayloadLength, err = toUint32("payload length", len(raw)); err != nil {
		return nil, err
	}
	header.Checksum = hash.Checksum(raw)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress report payload: %w", err)
	}

	out := make([]byte, 0, section.HeaderSize+len(packed))
	out = header.AppendTo(out)
	out = append(out, packed...)

	return out, nil
}

// Decode parses a binary report produced by Encode.
//
// Returns:
//   - *Report: the decoded and validated report
//   - error: section header errors, errs.ErrChecksumMismatch, or
//     errs.ErrInvalidReport for inconsistent sizes
func Decode(data []byte) (*Report, error) {
	h, err := section.ParseReportHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(data[section.HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidReport, err)
	}
	if len(raw) != int(h.PayloadLength) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidReport, len(raw), h.PayloadLength)
	}
	if !hash.Verify(raw, h.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	tiles := uint64(h.TilesX) * uint64(h.TilesY)
	if tiles*bytesPerTile != uint64(len(raw)) {
		return nil, fmt.Errorf("%w: %d bytes of payload for %dx%d tiles", errs.ErrInvalidReport, len(raw), h.TilesX, h.TilesY)
	}
	n := int(tiles)

	r := &Report{
		Layout: tile.Layout{
			Width:  int(h.Width),
			Height: int(h.Height),
			Size:   int(h.Tile),
			TilesX: int(h.TilesX),
			TilesY: int(h.TilesY),
		},
		VarThreshold:      float32(h.VarThreshold),
		BrightnessEnabled: h.Flag.HasBrightness(),
		Seeded:            h.Flag.IsSeeded(),
		Anomalies:         int(h.Anomalies),
		Maps:              tile.NewMaps(n),
	}
	if r.BrightnessEnabled {
		r.BrightnessThreshold = float32(h.BrightnessThreshold)
	}
	if r.Seeded {
		r.Seed = h.Seed
	}

	engine := h.Flag.GetEndianEngine()
	endian.Float32s(engine, r.Maps.Mean, raw[:4*n])
	endian.Float32s(engine, r.Maps.Variance, raw[4*n:8*n])
	copy(r.Maps.Anomaly, raw[8*n:])

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Inspect parses the header of a binary report without decoding the payload.
//
// Returns:
//   - section.ReportHeader: the header
//   - compress.Stats: payload sizes before and after compression
//   - error: section header errors
func Inspect(data []byte) (section.ReportHeader, compress.Stats, error) {
	h, err := section.ParseReportHeader(data)
	if err != nil {
		return section.ReportHeader{}, compress.Stats{}, err
	}

	return h, compress.Stats{
		Algorithm:      h.Compression,
		OriginalSize:   int64(h.PayloadLength),
		CompressedSize: int64(len(data) - section.HeaderSize),
	}, nil
}
