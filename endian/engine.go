// Package endian provides the byte order engines used by binary result
// reports, plus float32 helpers for the tile map payload.
//
// Reports are little-endian unless the writer asks otherwise:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendFloat32s(engine, buf, maps.Mean)
//
// The engine a report was written with is recorded in its header flags and
// recovered with FromBigEndianFlag.
//
// All functions are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256: a little-endian host stores the 0x00 byte first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromBigEndianFlag returns the big-endian engine when big is set, the
// little-endian engine otherwise.
func FromBigEndianFlag(big bool) EndianEngine {
	if big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// AppendFloat32s appends the IEEE-754 bits of every value in vals to buf.
func AppendFloat32s(engine EndianEngine, buf []byte, vals []float32) []byte {
	buf = growBy(buf, 4*len(vals))
	for _, v := range vals {
		buf = engine.AppendUint32(buf, math.Float32bits(v))
	}

	return buf
}

// Float32s decodes len(dst) float32 values from src into dst.
// src must hold at least 4*len(dst) bytes.
func Float32s(engine EndianEngine, dst []float32, src []byte) {
	_ = src[:4*len(dst)]
	for i := range dst {
		dst[i] = math.Float32frombits(engine.Uint32(src[4*i:]))
	}
}

func growBy(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	grown := make([]byte, len(buf), len(buf)+n)
	copy(grown, buf)

	return grown
}
