package charconv

import "math"

// Itoa writes v in decimal and returns the length the full text needs.
func Itoa[T Signed](buf []byte, v T) int {
	return ItoaPadded(buf, v, Dec, 0)
}

// ItoaRadix writes v in the given radix, prefixed with 0b, 0o or 0x.
func ItoaRadix[T Signed](buf []byte, v T, radix Radix) int {
	return ItoaPadded(buf, v, radix, 0)
}

// ItoaPadded writes the sign, the radix prefix and then the digits of v
// left-padded with '0' to numDigits. The sign and prefix are not counted in
// numDigits. ItoaPadded panics if radix is not one of Bin, Oct, Dec or Hex,
// or when the padded length does not fit in an int.
func ItoaPadded[T Signed](buf []byte, v T, radix Radix, numDigits int) int {
	// magnitude in the unsigned domain, valid for the minimum value too
	u := uint64(int64(v))
	if v < 0 {
		u = -u
	}
	return writeInteger(buf, v < 0, u, radix, numDigits)
}

// Utoa writes v in decimal and returns the length the full text needs.
func Utoa[T Unsigned](buf []byte, v T) int {
	return writeInteger(buf, false, uint64(v), Dec, 0)
}

// UtoaRadix writes v in the given radix, prefixed with 0b, 0o or 0x.
func UtoaRadix[T Unsigned](buf []byte, v T, radix Radix) int {
	return writeInteger(buf, false, uint64(v), radix, 0)
}

// UtoaPadded is the unsigned counterpart of ItoaPadded.
func UtoaPadded[T Unsigned](buf []byte, v T, radix Radix, numDigits int) int {
	return writeInteger(buf, false, uint64(v), radix, numDigits)
}

func writeInteger(buf []byte, neg bool, u uint64, radix Radix, numDigits int) int {
	if !radix.Valid() {
		panic("unsupported radix")
	}
	pos := 0
	if neg {
		if len(buf) > 0 {
			buf[0] = '-'
		}
		pos++
	}
	prefix := radix.Prefix()
	for i := 0; i < len(prefix); i++ {
		if pos < len(buf) {
			buf[pos] = prefix[i]
		}
		pos++
	}
	if numDigits > math.MaxInt-pos {
		panic("padding too wide")
	}
	n := countDigits(u, radix)
	if numDigits > n {
		n = numDigits
	}
	putDigits(buf, pos, u, n, radix)
	return pos + n
}
