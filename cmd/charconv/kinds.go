package main

import (
	"fmt"

	"github.com/rawbytedev/charconv"
	"github.com/rawbytedev/charconv/pkg/enumtab"
)

// kind is the fixed-width type a value is converted through.
type kind uint8

const (
	kindI8 kind = iota + 1
	kindI16
	kindI32
	kindI64
	kindU8
	kindU16
	kindU32
	kindU64
	kindF32
	kindF64
)

var kinds = enumtab.New("",
	enumtab.Symbol[kind]{Value: kindI8, Name: "i8"},
	enumtab.Symbol[kind]{Value: kindI16, Name: "i16"},
	enumtab.Symbol[kind]{Value: kindI32, Name: "i32"},
	enumtab.Symbol[kind]{Value: kindI64, Name: "i64"},
	enumtab.Symbol[kind]{Value: kindU8, Name: "u8"},
	enumtab.Symbol[kind]{Value: kindU16, Name: "u16"},
	enumtab.Symbol[kind]{Value: kindU32, Name: "u32"},
	enumtab.Symbol[kind]{Value: kindU64, Name: "u64"},
	enumtab.Symbol[kind]{Value: kindF32, Name: "f32"},
	enumtab.Symbol[kind]{Value: kindF64, Name: "f64"},
)

var radixes = enumtab.New("",
	enumtab.Symbol[charconv.Radix]{Value: charconv.Bin, Name: "bin"},
	enumtab.Symbol[charconv.Radix]{Value: charconv.Oct, Name: "oct"},
	enumtab.Symbol[charconv.Radix]{Value: charconv.Dec, Name: "dec"},
	enumtab.Symbol[charconv.Radix]{Value: charconv.Hex, Name: "hex"},
)

func (k kind) String() string {
	name, _ := kinds.Describe(k)
	return name
}

func parseKind(name string) (kind, error) {
	k, err := kinds.Lookup(name)
	if err != nil {
		return 0, err
	}
	if _, ok := kinds.Describe(k); !ok {
		return 0, fmt.Errorf("%w: %q", enumtab.ErrUnknownSymbol, name)
	}
	return k, nil
}

// parseRadix accepts the table names and the bases 2, 8, 10 and 16.
func parseRadix(name string) (charconv.Radix, error) {
	r, err := radixes.Lookup(name)
	if err != nil {
		return 0, err
	}
	if !r.Valid() {
		return 0, fmt.Errorf("%w: radix %q", enumtab.ErrUnknownSymbol, name)
	}
	return r, nil
}

// style holds how values are written back out.
type style struct {
	radix     charconv.Radix
	digits    int
	format    charconv.RealFormat
	precision int
}

// parse reads in as a value of kind k.
func (k kind) parse(in string) (any, bool) {
	switch k {
	case kindI8:
		return charconv.Atox[int8](in)
	case kindI16:
		return charconv.Atox[int16](in)
	case kindI32:
		return charconv.Atox[int32](in)
	case kindI64:
		return charconv.Atox[int64](in)
	case kindU8:
		return charconv.Atox[uint8](in)
	case kindU16:
		return charconv.Atox[uint16](in)
	case kindU32:
		return charconv.Atox[uint32](in)
	case kindU64:
		return charconv.Atox[uint64](in)
	case kindF32:
		return charconv.Atox[float32](in)
	case kindF64:
		return charconv.Atox[float64](in)
	}
	return nil, false
}

// convert parses in as kind k and writes it in style s.
func (k kind) convert(in string, s style) (string, bool) {
	v, ok := k.parse(in)
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case int8:
		return render(func(b []byte) int { return charconv.ItoaPadded(b, x, s.radix, s.digits) }), true
	case int16:
		return render(func(b []byte) int { return charconv.ItoaPadded(b, x, s.radix, s.digits) }), true
	case int32:
		return render(func(b []byte) int { return charconv.ItoaPadded(b, x, s.radix, s.digits) }), true
	case int64:
		return render(func(b []byte) int { return charconv.ItoaPadded(b, x, s.radix, s.digits) }), true
	case uint8:
		return render(func(b []byte) int { return charconv.UtoaPadded(b, x, s.radix, s.digits) }), true
	case uint16:
		return render(func(b []byte) int { return charconv.UtoaPadded(b, x, s.radix, s.digits) }), true
	case uint32:
		return render(func(b []byte) int { return charconv.UtoaPadded(b, x, s.radix, s.digits) }), true
	case uint64:
		return render(func(b []byte) int { return charconv.UtoaPadded(b, x, s.radix, s.digits) }), true
	case float32:
		return render(func(b []byte) int { return charconv.Ftoa(b, x, s.precision, s.format) }), true
	case float64:
		return render(func(b []byte) int { return charconv.Dtoa(b, x, s.precision, s.format) }), true
	}
	return "", false
}

// render runs write against a stack buffer, retrying with the size it
// asked for when the text did not fit.
func render(write func([]byte) int) string {
	var scratch [128]byte
	n := write(scratch[:])
	if n <= len(scratch) {
		return string(scratch[:n])
	}
	buf := make([]byte, n)
	write(buf)
	return string(buf)
}
