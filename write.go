package charconv

const digitChars = "0123456789abcdef"

// countDigits returns the natural digit count of v in radix r.
func countDigits(v uint64, r Radix) int {
	n := 1
	switch r {
	case Hex:
		for v >= 16 {
			v >>= 4
			n++
		}
	case Oct:
		for v >= 8 {
			v >>= 3
			n++
		}
	case Bin:
		for v >= 2 {
			v >>= 1
			n++
		}
	default:
		for v >= 10 {
			v /= 10
			n++
		}
	}
	return n
}

// putDigits writes exactly n digits of v into buf[pos:pos+n], most
// significant first. Positions at or past len(buf) are skipped, which keeps
// a short buffer holding a valid prefix of the full output.
func putDigits(buf []byte, pos int, v uint64, n int, r Radix) {
	if pos >= len(buf) {
		return
	}
	base := uint64(r)
	end := pos + n
	// digits landing past the buffer only shift v
	for ; end > len(buf) && v != 0; end-- {
		v /= base
	}
	end = min(end, len(buf))
	for i := end - 1; i >= pos; i-- {
		buf[i] = digitChars[v%base]
		v /= base
	}
}

func writeDigits(buf []byte, v uint64, r Radix, numDigits int) int {
	n := countDigits(v, r)
	if numDigits > n {
		n = numDigits
	}
	putDigits(buf, 0, v, n, r)
	return n
}

// WriteDec writes the decimal digits of v with no sign or prefix.
func WriteDec[T Unsigned](buf []byte, v T) int {
	return writeDigits(buf, uint64(v), Dec, 0)
}

// WriteHex writes lowercase hex digits of v without the 0x prefix.
func WriteHex[T Unsigned](buf []byte, v T) int {
	return writeDigits(buf, uint64(v), Hex, 0)
}

// WriteOct writes the octal digits of v without the 0o prefix.
func WriteOct[T Unsigned](buf []byte, v T) int {
	return writeDigits(buf, uint64(v), Oct, 0)
}

// WriteBin writes the binary digits of v without the 0b prefix.
func WriteBin[T Unsigned](buf []byte, v T) int {
	return writeDigits(buf, uint64(v), Bin, 0)
}

// WriteDecPadded is WriteDec left-padded with '0' up to numDigits digits.
func WriteDecPadded[T Unsigned](buf []byte, v T, numDigits int) int {
	return writeDigits(buf, uint64(v), Dec, numDigits)
}

// WriteHexPadded is WriteHex left-padded with '0' up to numDigits digits.
func WriteHexPadded[T Unsigned](buf []byte, v T, numDigits int) int {
	return writeDigits(buf, uint64(v), Hex, numDigits)
}

// WriteOctPadded is WriteOct left-padded with '0' up to numDigits digits.
func WriteOctPadded[T Unsigned](buf []byte, v T, numDigits int) int {
	return writeDigits(buf, uint64(v), Oct, numDigits)
}

// WriteBinPadded is WriteBin left-padded with '0' up to numDigits digits.
func WriteBinPadded[T Unsigned](buf []byte, v T, numDigits int) int {
	return writeDigits(buf, uint64(v), Bin, numDigits)
}
