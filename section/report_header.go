package section

import (
	"fmt"
	"math"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/format"
)

// ReportHeader is the fixed-size header at the start of a binary report.
type ReportHeader struct {
	Flag        ReportFlag             // byte offset 4
	Compression format.CompressionType // byte offset 5

	Width  uint32 // byte offset 8-11
	Height uint32 // byte offset 12-15
	Tile   uint32 // byte offset 16-19
	TilesX uint32 // byte offset 20-23
	TilesY uint32 // byte offset 24-27

	// VarThreshold and BrightnessThreshold hold float32 thresholds widened
	// to float64.
	VarThreshold        float64 // byte offset 28-35
	BrightnessThreshold float64 // byte offset 36-43

	Seed      uint32 // byte offset 44-47
	Anomalies uint32 // byte offset 48-51

	// PayloadLength is the length of the payload before compression.
	PayloadLength uint32 // byte offset 52-55
	// Checksum is the xxHash64 of the payload before compression.
	Checksum uint64 // byte offset 56-63
}

// TileCount returns TilesX * TilesY.
func (h *ReportHeader) TileCount() int {
	return int(h.TilesX) * int(h.TilesY)
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagic, errs.ErrInvalidCodec
//     or errs.ErrInvalidReport for unknown flag bits
func (h *ReportHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[:4]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[:4])
	}

	h.Flag = ReportFlag(data[offFlags])
	if !h.Flag.IsValid() {
		return fmt.Errorf("%w: unknown flag bits 0x%02x", errs.ErrInvalidReport, uint8(h.Flag))
	}
	h.Compression = format.CompressionType(data[offCompression])
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: compression 0x%02x", errs.ErrInvalidCodec, data[offCompression])
	}

	engine := h.Flag.GetEndianEngine()
	h.Width = engine.Uint32(data[offWidth:])
	h.Height = engine.Uint32(data[offHeight:])
	h.Tile = engine.Uint32(data[offTile:])
	h.TilesX = engine.Uint32(data[offTilesX:])
	h.TilesY = engine.Uint32(data[offTilesY:])
	h.VarThreshold = math.Float64frombits(engine.Uint64(data[offVar:]))
	h.BrightnessThreshold = math.Float64frombits(engine.Uint64(data[offBrightness:]))
	h.Seed = engine.Uint32(data[offSeed:])
	h.Anomalies = engine.Uint32(data[offAnomalies:])
	h.PayloadLength = engine.Uint32(data[offPayloadLen:])
	h.Checksum = engine.Uint64(data[offChecksum:])

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *ReportHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf.
func (h *ReportHeader) AppendTo(buf []byte) []byte {
	start := len(buf)
	buf = append(buf, make([]byte, HeaderSize)...)
	b := buf[start:]

	copy(b, Magic)
	b[offFlags] = uint8(h.Flag)
	b[offCompression] = uint8(h.Compression)

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[offWidth:], h.Width)
	engine.PutUint32(b[offHeight:], h.Height)
	engine.PutUint32(b[offTile:], h.Tile)
	engine.PutUint32(b[offTilesX:], h.TilesX)
	engine.PutUint32(b[offTilesY:], h.TilesY)
	engine.PutUint64(b[offVar:], math.Float64bits(h.VarThreshold))
	engine.PutUint64(b[offBrightness:], math.Float64bits(h.BrightnessThreshold))
	engine.PutUint32(b[offSeed:], h.Seed)
	engine.PutUint32(b[offAnomalies:], h.Anomalies)
	engine.PutUint32(b[offPayloadLen:], h.PayloadLength)
	engine.PutUint64(b[offChecksum:], h.Checksum)

	return buf
}

// ParseReportHeader parses a ReportHeader from the start of data.
//
// Returns:
//   - ReportHeader: Parsed header struct
//   - error: errs.ErrInvalidHeaderSize if data is shorter than HeaderSize, or Parse errors
func ParseReportHeader(data []byte) (ReportHeader, error) {
	if len(data) < HeaderSize {
		return ReportHeader{}, errs.ErrInvalidHeaderSize
	}

	h := ReportHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return ReportHeader{}, err
	}

	return h, nil
}
