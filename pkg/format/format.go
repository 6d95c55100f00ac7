// Package format builds and splits text out of values using charconv.
//
// The writers follow the charconv contract: they fill the caller buffer as
// far as it goes and return the length the complete text needs. The
// *Append variants grow a slice and retry instead.
//
// Separators and literals are strings. A byte or rune argument is a number
// and is written as one.
package format

import (
	"bytes"
	"slices"
	"strings"

	"github.com/rawbytedev/charconv"
)

// Writer is implemented by arguments that write themselves.
type Writer interface {
	WriteChars(buf []byte) int
}

func tail(buf []byte, pos int) []byte {
	if pos >= len(buf) {
		return nil
	}
	return buf[pos:]
}

func writeArg(buf []byte, arg any) int {
	if w, ok := arg.(Writer); ok {
		return w.WriteChars(buf)
	}
	return charconv.ToChars(buf, arg)
}

// Cat writes every argument in turn.
func Cat(buf []byte, args ...any) int {
	pos := 0
	for _, a := range args {
		pos += writeArg(tail(buf, pos), a)
	}
	return pos
}

// CatSep writes the arguments with sep between each pair.
func CatSep(buf []byte, sep any, args ...any) int {
	pos := 0
	for i, a := range args {
		if i > 0 {
			pos += writeArg(tail(buf, pos), sep)
		}
		pos += writeArg(tail(buf, pos), a)
	}
	return pos
}

// Format replaces each "{}" in fmt with the next argument. Arguments left
// over are ignored and a "{}" with no argument left is written as is.
func Format(buf []byte, fmt string, args ...any) int {
	pos := 0
	for {
		i := indexPlaceholder(fmt)
		if i < 0 || len(args) == 0 {
			return pos + copyTo(buf, pos, fmt)
		}
		pos += copyTo(buf, pos, fmt[:i])
		pos += writeArg(tail(buf, pos), args[0])
		args = args[1:]
		fmt = fmt[i+2:]
	}
}

func indexPlaceholder(fmt string) int {
	for i := 0; i+1 < len(fmt); i++ {
		if fmt[i] == '{' && fmt[i+1] == '}' {
			return i
		}
	}
	return -1
}

func copyTo(buf []byte, pos int, s string) int {
	copy(tail(buf, pos), s)
	return len(s)
}

func grow(dst []byte, write func(buf []byte) int) []byte {
	n := write(dst[len(dst):cap(dst)])
	if len(dst)+n > cap(dst) {
		dst = slices.Grow(dst, n)
		write(dst[len(dst) : len(dst)+n])
	}
	return dst[:len(dst)+n]
}

// CatAppend is Cat appending to dst.
func CatAppend(dst []byte, args ...any) []byte {
	return grow(dst, func(buf []byte) int { return Cat(buf, args...) })
}

func CatSepAppend(dst []byte, sep any, args ...any) []byte {
	return grow(dst, func(buf []byte) int { return CatSep(buf, sep, args...) })
}

func FormatAppend(dst []byte, fmt string, args ...any) []byte {
	return grow(dst, func(buf []byte) int { return Format(buf, fmt, args...) })
}

// Uncat reads one value per destination from s, skipping blanks before
// each, and returns the bytes consumed or charconv.NPos.
func Uncat[S charconv.Text](s S, dsts ...any) int {
	pos := 0
	for _, dst := range dsts {
		n := charconv.FromCharsFirst(s[pos:], dst)
		if n == charconv.NPos {
			return charconv.NPos
		}
		pos += n
	}
	return pos
}

// UncatSep reads values separated by sep. Each value runs up to the next
// sep or to the end of s.
func UncatSep[S charconv.Text](s S, sep string, dsts ...any) int {
	pos := 0
	for i, dst := range dsts {
		if i > 0 {
			if !hasPrefixAt(s, pos, sep) {
				return charconv.NPos
			}
			pos += len(sep)
		}
		end := indexFrom(s, pos, sep)
		if !charconv.FromChars(s[pos:end], dst) {
			return charconv.NPos
		}
		pos = end
	}
	return pos
}

// Unformat matches s against fmt, reading one value for each "{}". A value
// runs up to the literal text that follows its placeholder in fmt. It
// returns the bytes consumed or charconv.NPos when s does not match.
func Unformat[S charconv.Text](s S, fmt string, dsts ...any) int {
	pos := 0
	for {
		i := indexPlaceholder(fmt)
		if i < 0 || len(dsts) == 0 {
			if !hasPrefixAt(s, pos, fmt) {
				return charconv.NPos
			}
			return pos + len(fmt)
		}
		if !hasPrefixAt(s, pos, fmt[:i]) {
			return charconv.NPos
		}
		pos += i
		fmt = fmt[i+2:]
		literal := fmt
		if j := indexPlaceholder(fmt); j >= 0 {
			literal = fmt[:j]
		}
		end := len(s)
		if literal != "" {
			end = indexFrom(s, pos, literal)
		}
		if !charconv.FromChars(s[pos:end], dsts[0]) {
			return charconv.NPos
		}
		dsts = dsts[1:]
		pos = end
	}
}

func hasPrefixAt[S charconv.Text](s S, pos int, prefix string) bool {
	return len(s)-pos >= len(prefix) && string(s[pos:pos+len(prefix)]) == prefix
}

// indexFrom returns the index of the first sep in s at or after pos, or
// len(s).
func indexFrom[S charconv.Text](s S, pos int, sep string) int {
	if sep == "" {
		return len(s)
	}
	var i int
	switch v := any(s).(type) {
	case string:
		i = strings.Index(v[pos:], sep)
	case []byte:
		i = bytes.Index(v[pos:], []byte(sep))
	default:
		i = strings.Index(string(s[pos:]), sep)
	}
	if i < 0 {
		return len(s)
	}
	return pos + i
}
