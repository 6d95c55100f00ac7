package charconv

import "github.com/rawbytedev/charconv/internal/common"

// detectRadix inspects the start of s for a 0x, 0o or 0b prefix (either
// case) and returns the radix with the prefix length. Text without a known
// prefix is decimal, including text with leading zeros.
func detectRadix[S Text](s S) (Radix, int) {
	if len(s) < 2 || s[0] != '0' {
		return Dec, 0
	}
	switch s[1] {
	case 'x', 'X':
		return Hex, 2
	case 'o', 'O':
		return Oct, 2
	case 'b', 'B':
		return Bin, 2
	}
	return Dec, 0
}

// parseMagnitude reads an unsigned literal with an optional radix prefix.
func parseMagnitude[T Integer, S Text](s S) (T, bool) {
	radix, skip := detectRadix(s)
	// a bare prefix fails inside readDigits on the empty remainder
	return readDigits[T](s[skip:], radix)
}

// Atoi parses a signed integer in decimal or with a 0x, 0o or 0b prefix.
// A leading '-' precedes the prefix ("-0x1f"). Literals outside the range of
// T wrap around using two's complement, so "128" as int8 is -128.
func Atoi[T Signed, S Text](s S) (T, bool) {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	v, ok := parseMagnitude[T](s)
	if !ok {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// Atou parses an unsigned integer like Atoi. Any leading '-' fails, "-0"
// included. Literals outside the range of T wrap around; uint64 is never
// range checked.
func Atou[T Unsigned, S Text](s S) (T, bool) {
	if len(s) > 0 && s[0] == '-' {
		return 0, false
	}
	return parseMagnitude[T](s)
}

// AtoiFirst skips leading blanks, selects the first span that reads as a
// signed integer and parses it. It returns the value and the number of bytes
// of s consumed, or NPos.
func AtoiFirst[T Signed, S Text](s S) (T, int) {
	start, end := common.FirstIntSpan(s)
	if start == end {
		return 0, NPos
	}
	v, ok := Atoi[T](trimPlus(s[start:end]))
	if !ok {
		return 0, NPos
	}
	return v, end
}

// AtouFirst is the unsigned counterpart of AtoiFirst.
func AtouFirst[T Unsigned, S Text](s S) (T, int) {
	start, end := common.FirstUintSpan(s)
	if start == end {
		return 0, NPos
	}
	v, ok := Atou[T](trimPlus(s[start:end]))
	if !ok {
		return 0, NPos
	}
	return v, end
}

func trimPlus[S Text](s S) S {
	if len(s) > 0 && s[0] == '+' {
		return s[1:]
	}
	return s
}
