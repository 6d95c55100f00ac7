package charconv

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/rawbytedev/charconv/internal/common"
)

// Ftoa writes v using format with the given precision and returns the
// length the full text needs. For FormatFixed and FormatScientific the
// precision counts fraction digits, for FormatHex hex fraction digits and
// for FormatFlex significant digits. A negative precision selects the
// shortest text that parses back to v.
//
// NaN and infinities are written as "nan", "inf" and "-inf".
func Ftoa(buf []byte, v float32, precision int, format RealFormat) int {
	return formatReal(buf, float64(v), precision, format, 32)
}

// Dtoa is Ftoa for float64.
func Dtoa(buf []byte, v float64, precision int, format RealFormat) int {
	return formatReal(buf, v, precision, format, 64)
}

func formatReal(buf []byte, v float64, precision int, format RealFormat, bitSize int) int {
	bound := maxRealLen(v, precision, format, bitSize)
	if bound <= len(buf) {
		return len(appendReal(buf[:0:len(buf)], v, precision, format, bitSize))
	}
	// short buffer: format aside and copy the prefix that fits
	var scratch [512]byte
	dst := scratch[:0]
	if bound > len(scratch) {
		dst = make([]byte, 0, bound)
	}
	out := appendReal(dst, v, precision, format, bitSize)
	copy(buf, out)
	return len(out)
}

// maxRealLen bounds the length appendReal produces for v.
func maxRealLen(v float64, precision int, format RealFormat, bitSize int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 4
	}
	const sign, point, exponent = 1, 1, 6
	shortest := 17
	if bitSize == 32 {
		shortest = 9
	}
	// |v| < 2^e2, and 30103/100000 is just above log10(2)
	_, e2 := math.Frexp(v)
	switch format {
	case FormatFixed:
		intDigits := 1
		if e2 > 0 {
			intDigits = e2*30103/100000 + 2
		}
		fracDigits := precision
		if precision < 0 {
			fracDigits = shortest
			if e2 < 0 {
				fracDigits += -e2*30103/100000 + 1
			}
		}
		return sign + intDigits + point + fracDigits
	case FormatScientific:
		digits := precision
		if precision < 0 {
			digits = shortest
		}
		return sign + 1 + point + digits + exponent
	case FormatHex:
		digits := precision
		if precision < 0 {
			digits = 13
		}
		return sign + len("0x1") + point + digits + exponent
	default:
		// flex is never longer than scientific plus four leading zeros
		digits := precision
		if precision < 0 {
			digits = shortest
		}
		return sign + len("0.0000") + digits + exponent
	}
}

func appendReal(dst []byte, v float64, precision int, format RealFormat, bitSize int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	switch format {
	case FormatFixed, FormatScientific:
		return strconv.AppendFloat(dst, v, byte(format), precision, bitSize)
	case FormatFlex:
		if precision >= 0 {
			return strconv.AppendFloat(dst, v, 'g', precision, bitSize)
		}
		return appendShortest(dst, v, bitSize)
	case FormatHex:
		start := len(dst)
		dst = strconv.AppendFloat(dst, v, 'x', precision, bitSize)
		return trimExponent(dst, start)
	default:
		panic("unsupported real format")
	}
}

// appendShortest writes whichever of the shortest fixed and shortest
// scientific forms is shorter, preferring fixed on a tie.
func appendShortest(dst []byte, v float64, bitSize int) []byte {
	var scratch [32]byte
	sci := strconv.AppendFloat(scratch[:0], v, 'e', -1, bitSize)
	if len(sci) < fixedLen(sci) {
		return append(dst, sci...)
	}
	return strconv.AppendFloat(dst, v, 'f', -1, bitSize)
}

// fixedLen returns the length of the fixed form carrying the same digits as
// the scientific text sci, such as "-1.25e-03" for "-0.00125".
func fixedLen(sci []byte) int {
	n := 0
	if sci[0] == '-' {
		n, sci = 1, sci[1:]
	}
	e := bytes.IndexByte(sci, 'e')
	digits := e
	if digits > 1 {
		digits-- // the point
	}
	exp := 0
	for _, c := range sci[e+2:] {
		exp = exp*10 + int(c-'0')
	}
	if sci[e+1] == '-' {
		exp = -exp
	}
	switch {
	case exp >= digits-1:
		return n + exp + 1
	case exp >= 0:
		return n + digits + 1
	default:
		return n + len("0.") - exp - 1 + digits
	}
}

// trimExponent drops the leading zeros of a hex float exponent so that
// "0x1p+00" becomes "0x1p+0".
func trimExponent(dst []byte, start int) []byte {
	p := bytes.LastIndexByte(dst[start:], 'p')
	if p < 0 {
		return dst
	}
	digits := start + p + 2
	i := digits
	for i < len(dst)-1 && dst[i] == '0' {
		i++
	}
	return append(dst[:digits], dst[i:]...)
}

// viewString returns s as a string without copying when s is a []byte.
// The result must not outlive s.
func viewString[S Text](s S) string {
	switch v := any(s).(type) {
	case string:
		return v
	case []byte:
		return unsafe.String(unsafe.SliceData(v), len(v))
	}
	return string(s)
}

func parseReal[S Text](s S, bitSize int) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			return 0, false
		}
	}
	text := viewString(s)
	if isHexMantissaOnly(text) {
		text += "p0"
	}
	v, err := strconv.ParseFloat(text, bitSize)
	if err != nil {
		// out of range saturates to ±Inf or zero
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// isHexMantissaOnly reports a hex float without a binary exponent, such as
// "0x1.8", which strconv only accepts with a 'p' suffix.
func isHexMantissaOnly(s string) bool {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if len(s) < 3 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	return strings.IndexAny(s, "pP") < 0
}

// Atof parses s as a float32. It accepts decimal, exponent and hex float
// text as well as "nan" and "inf", and reads exactly len(s) bytes.
func Atof[S Text](s S) (float32, bool) {
	v, ok := parseReal(s, 32)
	return float32(v), ok
}

// Atod parses s as a float64. See Atof.
func Atod[S Text](s S) (float64, bool) {
	return parseReal(s, 64)
}

// AtofFirst skips leading blanks and parses the first span of s that
// reads as a real number. It returns the bytes consumed, or NPos.
func AtofFirst[S Text](s S) (float32, int) {
	start, end := common.FirstRealSpan(s)
	if start == end {
		return 0, NPos
	}
	v, ok := Atof(s[start:end])
	if !ok {
		return 0, NPos
	}
	return v, end
}

// AtodFirst is AtofFirst for float64.
func AtodFirst[S Text](s S) (float64, int) {
	start, end := common.FirstRealSpan(s)
	if start == end {
		return 0, NPos
	}
	v, ok := Atod(s[start:end])
	if !ok {
		return 0, NPos
	}
	return v, end
}
