package common

// IsBlank reports the characters skipped around a value: space, \n, \r, \t.
func IsBlank(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// IsDelim reports whether c may terminate a numeric span.
func IsDelim(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', 0, ']', ')', '}', ',', ';':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOct(c byte) bool { return c >= '0' && c <= '7' }
func isBin(c byte) bool { return c == '0' || c == '1' }
func isDec(c byte) bool { return c >= '0' && c <= '9' }

// FirstNonEmptySpan returns the bounds [start, end) of the first run of
// non-blank characters in s. start == end when there is none.
func FirstNonEmptySpan[S Text](s S) (int, int) {
	start := 0
	for start < len(s) && IsBlank(s[start]) {
		start++
	}
	end := start
	for end < len(s) && !IsBlank(s[end]) {
		end++
	}
	return start, end
}

// FirstIntSpan returns the bounds of the first span of s that reads as a
// signed integer: an optional sign, an optional 0x/0o/0b prefix and digits
// ending at a delimiter or at the end of s.
func FirstIntSpan[S Text](s S) (int, int) {
	start, end := FirstNonEmptySpan(s)
	if start == end {
		return start, start
	}
	skip := start
	if s[skip] == '+' || s[skip] == '-' {
		skip++
	}
	return start, integralEnd(s, start, skip, end)
}

// FirstUintSpan is FirstIntSpan without the minus sign: a span starting
// with '-' is empty. A leading '+' is allowed.
func FirstUintSpan[S Text](s S) (int, int) {
	start, end := FirstNonEmptySpan(s)
	if start == end || s[start] == '-' {
		return start, start
	}
	skip := start
	if s[skip] == '+' {
		skip++
	}
	return start, integralEnd(s, start, skip, end)
}

// integralEnd scans digits from skip and returns the end of the span, or
// start when the digits stop at a character that is not a delimiter.
func integralEnd[S Text](s S, start, skip, end int) int {
	digit := isDec
	if end-skip >= 2 && s[skip] == '0' {
		switch s[skip+1] {
		case 'x', 'X':
			digit, skip = isHex, skip+2
		case 'o', 'O':
			digit, skip = isOct, skip+2
		case 'b', 'B':
			digit, skip = isBin, skip+2
		}
	}
	if skip >= end {
		return start
	}
	for i := skip; i < end; i++ {
		if !digit(s[i]) {
			if i > skip && IsDelim(s[i]) {
				return i
			}
			return start
		}
	}
	return end
}

// FirstRealSpan returns the bounds of the first span of s that reads as a
// real number: hex digits with '.', binary digits with '.', or decimal
// digits with '.', 'e', 'E' and a sign following the exponent marker.
func FirstRealSpan[S Text](s S) (int, int) {
	start, end := FirstNonEmptySpan(s)
	if start == end {
		return start, start
	}
	skip := start
	if s[skip] == '+' || s[skip] == '-' {
		skip++
	}
	lead := isDec
	accept := func(i int) bool {
		c := s[i]
		if isDec(c) || c == '.' || c == 'e' || c == 'E' {
			return true
		}
		return (c == '+' || c == '-') && i > skip && (s[i-1] == 'e' || s[i-1] == 'E')
	}
	if end-skip >= 2 && s[skip] == '0' {
		switch s[skip+1] {
		case 'x', 'X':
			skip += 2
			lead = isHex
			accept = func(i int) bool {
				c := s[i]
				if isHex(c) || c == '.' || c == 'p' || c == 'P' {
					return true
				}
				return (c == '+' || c == '-') && (s[i-1] == 'p' || s[i-1] == 'P')
			}
		case 'b', 'B':
			skip += 2
			lead = isBin
			accept = func(i int) bool { return isBin(s[i]) || s[i] == '.' }
		}
	}
	if skip >= end {
		return start, start
	}
	if c := s[skip]; !lead(c) && c != '.' {
		return start, start
	}
	for i := skip; i < end; i++ {
		if !accept(i) {
			if i > skip && IsDelim(s[i]) {
				return start, i
			}
			return start, start
		}
	}
	return start, end
}
