// Package textframe packs values rendered as text into checksummed frames.
//
// A data frame is laid out as
//
//	magic "CT" | type | u32 length | flags | uvarint count | payload | crc32
//
// where the payload is the values written with charconv.ToChars and joined
// by Separator, optionally zstd compressed. The length covers the whole
// frame and the CRC (IEEE, little endian) covers everything after the magic.
// An error frame carries a code and a message in place of flags, count and
// payload.
package textframe

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/docker/go-units"
	"github.com/rawbytedev/charconv/internal/common"
)

type FrameType byte

const (
	TypeData  FrameType = 0x01
	TypeError FrameType = 0x02
)

func (t FrameType) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeError:
		return "error"
	default:
		return fmt.Sprintf("type(%#x)", byte(t))
	}
}

const (
	// FlagZstd marks a zstd compressed payload.
	FlagZstd byte = 1 << 0

	Separator = ','

	// DefaultMaxFrameSize applies when Options.MaxFrameSize is empty.
	DefaultMaxFrameSize = "1MiB"
)

var magic = [2]byte{'C', 'T'}

const (
	headerSize   = len(magic) + 1 + 4
	crcSize      = 4
	minFrameSize = headerSize + 1 + 1 + crcSize
)

var (
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrCRCMismatch      = errors.New("crc mismatch")
	ErrFrameTooLarge    = errors.New("frame too large")
	ErrSeparatorInValue = errors.New("value contains separator")
	ErrCountMismatch    = errors.New("destination count mismatch")
	ErrInvalidValue     = errors.New("invalid value")
)

// ErrorFrame reports a failure to the peer instead of data.
type ErrorFrame struct {
	Code    byte
	Message string
}

func (e ErrorFrame) Error() string {
	return fmt.Sprintf("error frame %d: %s", e.Code, e.Message)
}

// Peek returns the type of frame without validating the rest of it.
func Peek(frame []byte) (FrameType, error) {
	if len(frame) < headerSize || frame[0] != magic[0] || frame[1] != magic[1] {
		return 0, fmt.Errorf("%w: missing preamble", ErrMalformedFrame)
	}
	return FrameType(frame[2]), nil
}

func writePreamble(dst []byte, t FrameType) []byte {
	return append(dst, magic[0], magic[1], byte(t))
}

func maxFrameSize(s string) (int64, error) {
	if s == "" {
		s = DefaultMaxFrameSize
	}
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("max frame size: %w", err)
	}
	if n < int64(minFrameSize) {
		return 0, fmt.Errorf("max frame size %q is below %d bytes", s, minFrameSize)
	}
	return n, nil
}

// encodable reports whether ToChars can render v.
func encodable(v any) bool {
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case common.IsNumericKind(k), k == reflect.Bool, k == reflect.String:
		return true
	case k == reflect.Slice:
		return rv.Type().Elem().Kind() == reflect.Uint8
	}
	return false
}
