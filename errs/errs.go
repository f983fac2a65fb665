// Package errs defines the sentinel errors shared by tilestat packages.
//
// Callers match them with errors.Is; packages wrap them with context using
// fmt.Errorf("...: %w", err).
package errs

import "errors"

// Arena errors.
var (
	ErrOutOfMemory      = errors.New("arena: out of memory")
	ErrInvalidAlignment = errors.New("arena: alignment must be a power of two")
	ErrInvalidSize      = errors.New("arena: allocation size must not be negative")
	ErrStaleHandle      = errors.New("arena: handle used after reset")
	ErrForeignHandle    = errors.New("arena: handle exceeds arena bounds")
	ErrNotInitialized   = errors.New("arena: not initialized")
)

// Grid and tile errors.
var (
	ErrInvalidGrid    = errors.New("grid: invalid dimensions")
	ErrInvalidLayout  = errors.New("tile: invalid layout")
	ErrMapSize        = errors.New("tile: result map length does not match tile count")
	ErrFrameMismatch  = errors.New("tile: frame dimensions do not match layout")
	ErrInvalidPattern = errors.New("frame: invalid pattern")
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrConfigFile    = errors.New("config: cannot parse configuration file")
)

// Result and report errors.
var (
	ErrStaleResult       = errors.New("tilestat: result invalidated by a later run")
	ErrInvalidReport     = errors.New("dump: invalid report")
	ErrInvalidHeaderSize = errors.New("dump: invalid report header size")
	ErrInvalidMagic      = errors.New("dump: invalid report magic")
	ErrChecksumMismatch  = errors.New("dump: payload checksum mismatch")
	ErrInvalidCodec      = errors.New("dump: invalid compression")
)
