package format

import (
	"unsafe"

	"github.com/rawbytedev/charconv"
)

// IntegralArg writes an integer with a radix prefix and optional zero
// padding of the digits.
type IntegralArg struct {
	neg   bool
	mag   uint64
	radix charconv.Radix
	width int
}

// Integral formats v in the given radix.
func Integral[T charconv.Integer](v T, radix charconv.Radix) IntegralArg {
	a := IntegralArg{radix: radix}
	if v < 0 {
		a.neg = true
		a.mag = -uint64(int64(v))
	} else {
		a.mag = uint64(v)
	}
	return a
}

// Bin, Oct and Hex wrap an integer for prefixed output in that radix.
func Bin[T charconv.Integer](v T) IntegralArg { return Integral(v, charconv.Bin) }
func Oct[T charconv.Integer](v T) IntegralArg { return Integral(v, charconv.Oct) }
func Hex[T charconv.Integer](v T) IntegralArg { return Integral(v, charconv.Hex) }

// Zpad formats v in decimal with at least width digits.
func Zpad[T charconv.Integer](v T, width int) IntegralArg {
	return Integral(v, charconv.Dec).Pad(width)
}

// Pad returns a copy of a that zero pads its digits to width.
func (a IntegralArg) Pad(width int) IntegralArg {
	a.width = width
	return a
}

func (a IntegralArg) WriteChars(buf []byte) int {
	if a.neg {
		return charconv.ItoaPadded(buf, -int64(a.mag), a.radix, a.width)
	}
	return charconv.UtoaPadded(buf, a.mag, a.radix, a.width)
}

// RealArg writes a float with a fixed precision and format.
type RealArg struct {
	v         float64
	bits      int
	precision int
	format    charconv.RealFormat
}

// Real formats v with the given precision and format; a negative precision
// selects the shortest text.
func Real[T charconv.Float](v T, precision int, format charconv.RealFormat) RealArg {
	bits := 64
	if unsafe.Sizeof(v) == 4 {
		bits = 32
	}
	return RealArg{v: float64(v), bits: bits, precision: precision, format: format}
}

func (a RealArg) WriteChars(buf []byte) int {
	if a.bits == 32 {
		return charconv.Ftoa(buf, float32(a.v), a.precision, a.format)
	}
	return charconv.Dtoa(buf, a.v, a.precision, a.format)
}

// BoolArg writes "true" or "false".
type BoolArg bool

func Boolalpha(b bool) BoolArg { return BoolArg(b) }

func (b BoolArg) WriteChars(buf []byte) int {
	s := "false"
	if b {
		s = "true"
	}
	copy(buf, s)
	return len(s)
}
