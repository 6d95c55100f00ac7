// Package enumtab maps enumerated values and bitmasks to names and back
// through static tables.
package enumtab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rawbytedev/charconv"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

// Symbol names one value of an enumeration.
type Symbol[T charconv.Integer] struct {
	Value T
	Name  string
}

// Table is a static list of symbols. Names usually share Prefix (for
// example "BM_"); lookups by name accept the name with or without it.
type Table[T charconv.Integer] struct {
	Prefix  string
	Symbols []Symbol[T]
}

// New builds a table over symbols; the slice is kept, not copied.
func New[T charconv.Integer](prefix string, symbols ...Symbol[T]) *Table[T] {
	return &Table[T]{Prefix: prefix, Symbols: symbols}
}

// Describe returns the name of the first symbol with value v.
func (t *Table[T]) Describe(v T) (string, bool) {
	for _, s := range t.Symbols {
		if s.Value == v {
			return s.Name, true
		}
	}
	return "", false
}

// ShortName is Describe with the table prefix removed.
func (t *Table[T]) ShortName(v T) (string, bool) {
	name, ok := t.Describe(v)
	return strings.TrimPrefix(name, t.Prefix), ok
}

func (t *Table[T]) lookup(name string) (T, bool) {
	for _, s := range t.Symbols {
		if s.Name == name || (t.Prefix != "" && strings.TrimPrefix(s.Name, t.Prefix) == name) {
			return s.Value, true
		}
	}
	return 0, false
}

// Lookup is Parse reporting ErrUnknownSymbol.
func (t *Table[T]) Lookup(name string) (T, error) {
	v, ok := t.Parse(name)
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	return v, nil
}

// Parse returns the value named by name, or the number name spells.
func (t *Table[T]) Parse(name string) (T, bool) {
	if v, ok := t.lookup(name); ok {
		return v, true
	}
	return charconv.Atox[T](name)
}

// FormatMask writes v as symbol names joined by '|' and returns the length
// the full text needs. A value with its own symbol is written by that name.
// Otherwise symbols whose bits are all set in v are taken in table order,
// and any bits left over are written in hex. Zero without a symbol is "0".
func (t *Table[T]) FormatMask(buf []byte, v T) int {
	if name, ok := t.Describe(v); ok {
		return put(buf, 0, name)
	}
	if v == 0 {
		return put(buf, 0, "0")
	}
	pos := 0
	rest := v
	for _, s := range t.Symbols {
		if s.Value == 0 || s.Value&rest != s.Value {
			continue
		}
		if pos > 0 {
			pos += put(buf, pos, "|")
		}
		pos += put(buf, pos, s.Name)
		rest &^= s.Value
		if rest == 0 {
			return pos
		}
	}
	if pos > 0 {
		pos += put(buf, pos, "|")
	}
	return pos + charconv.UtoaRadix(tail(buf, pos), uint64(rest), charconv.Hex)
}

func put(buf []byte, pos int, s string) int {
	copy(tail(buf, pos), s)
	return len(s)
}

func tail(buf []byte, pos int) []byte {
	if pos >= len(buf) {
		return nil
	}
	return buf[pos:]
}

// AppendMask is FormatMask appending to dst.
func (t *Table[T]) AppendMask(dst []byte, v T) []byte {
	n := t.FormatMask(nil, v)
	dst = append(dst, make([]byte, n)...)
	t.FormatMask(dst[len(dst)-n:], v)
	return dst
}

// ParseMask ORs together the '|' separated names and numbers in s.
// Surrounding blanks are ignored around each part and negative numbers
// are rejected.
func (t *Table[T]) ParseMask(s string) (T, bool) {
	var v T
	if strings.TrimSpace(s) == "" {
		return v, false
	}
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || part[0] == '-' {
			return 0, false
		}
		bits, ok := t.Parse(part)
		if !ok {
			return 0, false
		}
		v |= bits
	}
	return v, true
}
