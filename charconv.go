// Package charconv converts between text and fixed-width numbers.
//
// Every producing function writes into a caller buffer and returns the
// number of bytes the complete representation needs, whether or not the
// buffer was large enough. Nothing is written past len(buf), so a nil buffer
// can be used to size the output:
//
//	n := charconv.Itoa(nil, v)
//	buf := make([]byte, n)
//	charconv.Itoa(buf, v)
//
// Parsing functions take strings or byte slices, never read past the given
// span and report success with a bool. Functions are stateless and safe for
// concurrent use on disjoint buffers.
package charconv

import (
	"errors"

	"github.com/rawbytedev/charconv/internal/common"
)

// NPos is returned by the *First parsers when no value could be read.
const NPos = -1

var (
	// ErrUnsupportedType is the panic value of ToChars and FromChars for
	// non-numeric values.
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNotPointer      = errors.New("expected non-nil pointer")
)

// Signed is any signed fixed-width integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is any unsigned fixed-width integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is any fixed-width integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is any floating-point type.
type Float interface {
	~float32 | ~float64
}

// Number is any type the generic converters accept.
type Number interface {
	Integer | Float
}

// Text is any read-only span of characters: a string or a byte slice.
type Text = common.Text

// Radix selects the digit alphabet and prefix of an integer.
type Radix uint8

const (
	Bin Radix = 2
	Oct Radix = 8
	Dec Radix = 10
	Hex Radix = 16
)

// Prefix returns the literal prefix for r: "0b", "0o", "" or "0x".
func (r Radix) Prefix() string {
	switch r {
	case Bin:
		return "0b"
	case Oct:
		return "0o"
	case Hex:
		return "0x"
	default:
		return ""
	}
}

// Valid reports whether r is one of Bin, Oct, Dec or Hex.
func (r Radix) Valid() bool {
	return r == Bin || r == Oct || r == Dec || r == Hex
}

// String names the radix, e.g. "hex".
func (r Radix) String() string {
	switch r {
	case Bin:
		return "bin"
	case Oct:
		return "oct"
	case Dec:
		return "dec"
	case Hex:
		return "hex"
	default:
		return "radix(" + string(appendUint(nil, uint64(r))) + ")"
	}
}

// ParseRadix accepts the names returned by String as well as "2", "8",
// "10" and "16".
func ParseRadix(s string) (Radix, bool) {
	switch s {
	case "bin", "2":
		return Bin, true
	case "oct", "8":
		return Oct, true
	case "dec", "10", "":
		return Dec, true
	case "hex", "16":
		return Hex, true
	}
	return 0, false
}

// RealFormat selects how floats are written.
type RealFormat byte

const (
	FormatFixed      RealFormat = 'f'
	FormatScientific RealFormat = 'e'
	FormatFlex       RealFormat = 'g'
	FormatHex        RealFormat = 'a'
)

// String names the format, e.g. "scientific".
func (f RealFormat) String() string {
	switch f {
	case FormatFixed:
		return "fixed"
	case FormatScientific:
		return "scientific"
	case FormatFlex:
		return "flex"
	case FormatHex:
		return "hex"
	default:
		return "format(" + string([]byte{byte(f)}) + ")"
	}
}

// ParseRealFormat accepts the names returned by String and the single
// letters f, e, g and a.
func ParseRealFormat(s string) (RealFormat, bool) {
	switch s {
	case "fixed", "f":
		return FormatFixed, true
	case "scientific", "sci", "e":
		return FormatScientific, true
	case "flex", "g", "":
		return FormatFlex, true
	case "hex", "a":
		return FormatHex, true
	}
	return 0, false
}

func appendUint(dst []byte, v uint64) []byte {
	var scratch [20]byte
	n := WriteDec(scratch[:], v)
	return append(dst, scratch[:n]...)
}
