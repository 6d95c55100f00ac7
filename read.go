package charconv

// digitValue maps '0'-'9', 'a'-'f' and 'A'-'F' to their values and every
// other byte to 0xff.
func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10
	}
	return 0xff
}

// readDigits consumes all of s as digits of radix r. Accumulation happens
// in T so out-of-range literals wrap modulo the width of T.
func readDigits[T Integer, S Text](s S, r Radix) (T, bool) {
	var v T
	if len(s) == 0 {
		return v, false
	}
	base := uint64(r)
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			var zero T
			return zero, false
		}
		v = v*T(base) + T(d)
	}
	return v, true
}

// ReadDec parses s as decimal digits only. Any other byte, including a sign
// or surrounding space, makes the whole span fail.
func ReadDec[T Integer, S Text](s S) (T, bool) {
	return readDigits[T](s, Dec)
}

// ReadHex parses s as hex digits (either case) with no 0x prefix.
func ReadHex[T Integer, S Text](s S) (T, bool) {
	return readDigits[T](s, Hex)
}

// ReadOct parses s as octal digits with no 0o prefix.
func ReadOct[T Integer, S Text](s S) (T, bool) {
	return readDigits[T](s, Oct)
}

// ReadBin parses s as binary digits with no 0b prefix.
func ReadBin[T Integer, S Text](s S) (T, bool) {
	return readDigits[T](s, Bin)
}
