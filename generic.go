package charconv

import (
	"math"
	"reflect"
	"slices"

	"github.com/rawbytedev/charconv/internal/common"
)

func kindOf[T any]() reflect.Kind {
	var zero T
	return reflect.TypeOf(zero).Kind()
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// Xtoa writes v in its default form: decimal for integers and the shortest
// round-tripping flex text for floats.
func Xtoa[T Number](buf []byte, v T) int {
	switch k := kindOf[T](); {
	case k == reflect.Float32:
		return Ftoa(buf, float32(v), -1, FormatFlex)
	case k == reflect.Float64:
		return Dtoa(buf, float64(v), -1, FormatFlex)
	case isSignedKind(k):
		return ItoaPadded(buf, int64(v), Dec, 0)
	default:
		return writeInteger(buf, false, uint64(v), Dec, 0)
	}
}

// Atox parses s into any number type, sniffing the format. It fails only
// when both the integer and the real parser reject s.
//
// Integer targets try Atoi or Atou first and then a real parse. A finite
// real result is truncated and wraps modulo the width of T like an
// out-of-range integer literal does, so "300", "300.0" and "3e2" all give
// 44 as uint8. NaN and infinities fail for integer targets. Float targets
// try the real parse first and then a prefixed integer such as "0b101".
func Atox[T Number, S Text](s S) (T, bool) {
	k := kindOf[T]()
	if k == reflect.Float32 || k == reflect.Float64 {
		if f, ok := parseReal(s, common.BitSize(k)); ok {
			return T(f), true
		}
		if u, neg, ok := parseSignedMagnitude(s); ok {
			f := float64(u)
			if neg {
				f = -f
			}
			return T(f), true
		}
		return 0, false
	}
	if isSignedKind(k) {
		if v, ok := Atoi[int64](s); ok {
			return T(v), true
		}
	} else if v, ok := Atou[uint64](s); ok {
		return T(v), true
	}
	f, ok := parseReal(s, 64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return T(wrapReal(f)), true
}

// wrapReal truncates f and reduces it modulo 2^64 in two's complement.
// Converting the result to a narrower integer keeps the low bits.
func wrapReal(f float64) uint64 {
	u := uint64(math.Mod(math.Abs(math.Trunc(f)), 1<<64))
	if f < 0 {
		u = -u
	}
	return u
}

func parseSignedMagnitude[S Text](s S) (uint64, bool, bool) {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	u, ok := parseMagnitude[uint64](s)
	return u, neg, ok
}

// ToChars writes v into buf and returns the length the full text needs.
// Integers are written in decimal, floats with the shortest flex text, bools
// as "1" or "0", and strings and byte slices are copied. Named types are
// handled by their underlying kind. ToChars panics on any other type.
func ToChars(buf []byte, v any) int {
	switch x := v.(type) {
	case int:
		return Itoa(buf, x)
	case int8:
		return Itoa(buf, x)
	case int16:
		return Itoa(buf, x)
	case int32:
		return Itoa(buf, x)
	case int64:
		return Itoa(buf, x)
	case uint:
		return Utoa(buf, x)
	case uint8:
		return Utoa(buf, x)
	case uint16:
		return Utoa(buf, x)
	case uint32:
		return Utoa(buf, x)
	case uint64:
		return Utoa(buf, x)
	case uintptr:
		return Utoa(buf, x)
	case float32:
		return Ftoa(buf, x, -1, FormatFlex)
	case float64:
		return Dtoa(buf, x, -1, FormatFlex)
	case bool:
		return boolToChars(buf, x)
	case string:
		copy(buf, x)
		return len(x)
	case []byte:
		copy(buf, x)
		return len(x)
	}
	return toCharsValue(buf, reflect.ValueOf(v))
}

func boolToChars(buf []byte, b bool) int {
	if len(buf) > 0 {
		buf[0] = '0'
		if b {
			buf[0] = '1'
		}
	}
	return 1
}

func toCharsValue(buf []byte, rv reflect.Value) int {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Itoa(buf, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Utoa(buf, rv.Uint())
	case reflect.Float32:
		return Ftoa(buf, float32(rv.Float()), -1, FormatFlex)
	case reflect.Float64:
		return Dtoa(buf, rv.Float(), -1, FormatFlex)
	case reflect.Bool:
		return boolToChars(buf, rv.Bool())
	case reflect.String:
		copy(buf, rv.String())
		return rv.Len()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			copy(buf, rv.Bytes())
			return rv.Len()
		}
	}
	panic(ErrUnsupportedType)
}

// ToCharsSub is ToChars returning the written part of buf, which is
// shorter than the full text when buf was too small.
func ToCharsSub(buf []byte, v any) []byte {
	n := ToChars(buf, v)
	return buf[:min(n, len(buf))]
}

// AppendChars appends the text of v to dst, growing it when needed.
func AppendChars(dst []byte, v any) []byte {
	n := ToChars(dst[len(dst):cap(dst)], v)
	if len(dst)+n > cap(dst) {
		dst = slices.Grow(dst, n)
		ToChars(dst[len(dst):len(dst)+n], v)
	}
	return dst[:len(dst)+n]
}

// FromChars parses s into the value dst points to and reports success.
// Numbers are parsed with Atox. A bool accepts 0, 1, true, True, TRUE,
// false, False and FALSE, and any other integer is true when non-zero. A
// *string receives a copy of s. A *[]byte receives a copy into its current
// length; when s does not fit, the prefix that fits is copied and false is
// returned. On any other failure dst is left unchanged.
//
// FromChars panics when dst is not a non-nil pointer to a supported type.
func FromChars[S Text](s S, dst any) bool {
	switch p := dst.(type) {
	case *int:
		return store(s, p)
	case *int8:
		return store(s, p)
	case *int16:
		return store(s, p)
	case *int32:
		return store(s, p)
	case *int64:
		return store(s, p)
	case *uint:
		return store(s, p)
	case *uint8:
		return store(s, p)
	case *uint16:
		return store(s, p)
	case *uint32:
		return store(s, p)
	case *uint64:
		return store(s, p)
	case *uintptr:
		return store(s, p)
	case *float32:
		return store(s, p)
	case *float64:
		return store(s, p)
	case *bool:
		b, ok := parseBool(s)
		if ok {
			*p = b
		}
		return ok
	case *string:
		*p = string(s)
		return true
	case *[]byte:
		n := copy(*p, s)
		if n < len(s) {
			return false
		}
		*p = (*p)[:n]
		return true
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic(ErrNotPointer)
	}
	return fromCharsValue(s, rv.Elem())
}

func store[T Number, S Text](s S, p *T) bool {
	v, ok := Atox[T](s)
	if ok {
		*p = v
	}
	return ok
}

func parseBool[S Text](s S) (bool, bool) {
	switch viewString(s) {
	case "0", "false", "False", "FALSE":
		return false, true
	case "1", "true", "True", "TRUE":
		return true, true
	}
	v, ok := Atoi[int64](s)
	return v != 0, ok
}

func fromCharsValue[S Text](s S, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int:
		return setInt[int](s, rv)
	case reflect.Int8:
		return setInt[int8](s, rv)
	case reflect.Int16:
		return setInt[int16](s, rv)
	case reflect.Int32:
		return setInt[int32](s, rv)
	case reflect.Int64:
		return setInt[int64](s, rv)
	case reflect.Uint:
		return setUint[uint](s, rv)
	case reflect.Uint8:
		return setUint[uint8](s, rv)
	case reflect.Uint16:
		return setUint[uint16](s, rv)
	case reflect.Uint32:
		return setUint[uint32](s, rv)
	case reflect.Uint64:
		return setUint[uint64](s, rv)
	case reflect.Uintptr:
		return setUint[uintptr](s, rv)
	case reflect.Float32:
		return setFloat[float32](s, rv)
	case reflect.Float64:
		return setFloat[float64](s, rv)
	case reflect.Bool:
		b, ok := parseBool(s)
		if ok {
			rv.SetBool(b)
		}
		return ok
	case reflect.String:
		rv.SetString(string(s))
		return true
	}
	panic(ErrUnsupportedType)
}

func setInt[T Signed, S Text](s S, rv reflect.Value) bool {
	v, ok := Atox[T](s)
	if ok {
		rv.SetInt(int64(v))
	}
	return ok
}

func setUint[T Unsigned, S Text](s S, rv reflect.Value) bool {
	v, ok := Atox[T](s)
	if ok {
		rv.SetUint(uint64(v))
	}
	return ok
}

func setFloat[T Float, S Text](s S, rv reflect.Value) bool {
	v, ok := Atox[T](s)
	if ok {
		rv.SetFloat(float64(v))
	}
	return ok
}

// FromCharsFirst skips leading blanks, parses the first value of s into dst
// and returns the number of bytes consumed, or NPos. Strings and byte
// slices take the first run of non-blank characters.
func FromCharsFirst[S Text](s S, dst any) int {
	switch p := dst.(type) {
	case *int:
		return storeFirst(s, p)
	case *int8:
		return storeFirst(s, p)
	case *int16:
		return storeFirst(s, p)
	case *int32:
		return storeFirst(s, p)
	case *int64:
		return storeFirst(s, p)
	case *uint:
		return storeFirst(s, p)
	case *uint8:
		return storeFirst(s, p)
	case *uint16:
		return storeFirst(s, p)
	case *uint32:
		return storeFirst(s, p)
	case *uint64:
		return storeFirst(s, p)
	case *uintptr:
		return storeFirst(s, p)
	case *float32:
		return storeFirst(s, p)
	case *float64:
		return storeFirst(s, p)
	}
	start, end := common.FirstNonEmptySpan(s)
	if start == end {
		return NPos
	}
	if !FromChars(s[start:end], dst) {
		return NPos
	}
	return end
}

func storeFirst[T Number, S Text](s S, p *T) int {
	k := kindOf[T]()
	switch {
	case k == reflect.Float32:
		v, n := AtofFirst(s)
		if n != NPos {
			*p = T(v)
		}
		return n
	case k == reflect.Float64:
		v, n := AtodFirst(s)
		if n != NPos {
			*p = T(v)
		}
		return n
	case isSignedKind(k):
		v, n := AtoiFirst[int64](s)
		if n != NPos {
			*p = T(v)
		}
		return n
	default:
		v, n := AtouFirst[uint64](s)
		if n != NPos {
			*p = T(v)
		}
		return n
	}
}
