package section

import (
	"github.com/arloliu/tilestat/endian"
)

// ReportFlag is the packed flag byte of a report header.
type ReportFlag uint8

// IsBigEndian returns whether the fields after byte 8 are big-endian.
func (f ReportFlag) IsBigEndian() bool {
	return uint8(f)&FlagBigEndian != 0
}

// IsLittleEndian returns whether the fields after byte 8 are little-endian.
func (f ReportFlag) IsLittleEndian() bool {
	return !f.IsBigEndian()
}

// WithBigEndian sets big-endian byte order.
func (f *ReportFlag) WithBigEndian() {
	*f |= ReportFlag(FlagBigEndian)
}

// WithLittleEndian sets little-endian byte order.
func (f *ReportFlag) WithLittleEndian() {
	*f &^= ReportFlag(FlagBigEndian)
}

// HasBrightness returns whether the brightness threshold was enabled.
func (f ReportFlag) HasBrightness() bool {
	return uint8(f)&FlagBrightness != 0
}

// SetBrightness enables or disables the brightness threshold bit.
func (f *ReportFlag) SetBrightness(enabled bool) {
	f.set(FlagBrightness, enabled)
}

// IsSeeded returns whether the frame used the seeded pattern.
func (f ReportFlag) IsSeeded() bool {
	return uint8(f)&FlagSeeded != 0
}

// SetSeeded sets or clears the seeded pattern bit.
func (f *ReportFlag) SetSeeded(seeded bool) {
	f.set(FlagSeeded, seeded)
}

func (f *ReportFlag) set(bit uint8, on bool) {
	if on {
		*f |= ReportFlag(bit)
	} else {
		*f &^= ReportFlag(bit)
	}
}

// IsValid reports whether only known bits are set.
func (f ReportFlag) IsValid() bool {
	return uint8(f)&^flagKnownMask == 0
}

// GetEndianEngine returns the engine matching the byte order bit.
func (f ReportFlag) GetEndianEngine() endian.EndianEngine {
	return endian.FromBigEndianFlag(f.IsBigEndian())
}
