package section

// Magic identifies a version 1 report.
const Magic = "TSR1"

// Flag bits.
const (
	FlagBigEndian  uint8 = 0x01
	FlagBrightness uint8 = 0x02
	FlagSeeded     uint8 = 0x04

	flagKnownMask = FlagBigEndian | FlagBrightness | FlagSeeded
)

// HeaderSize is the fixed header size in bytes.
const HeaderSize = 64

// Field offsets.
const (
	offFlags       = 4
	offCompression = 5
	offWidth       = 8
	offHeight      = 12
	offTile        = 16
	offTilesX      = 20
	offTilesY      = 24
	offVar         = 28
	offBrightness  = 36
	offSeed        = 44
	offAnomalies   = 48
	offPayloadLen  = 52
	offChecksum    = 56
)
