package charconv

import (
	"math"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestItoaRadixPrefix(t *testing.T) {
	cases := []struct {
		v     int64
		radix Radix
		want  string
	}{
		{0, Dec, "0"},
		{0, Hex, "0x0"},
		{-1, Hex, "-0x1"},
		{255, Hex, "0xff"},
		{-10, Hex, "-0xa"},
		{-4096, Hex, "-0x1000"},
		{-4096, Bin, "-0b1000000000000"},
		{21, Bin, "0b10101"},
		{65, Oct, "0o101"},
		{-1234, Dec, "-1234"},
	}
	for _, c := range cases {
		buf := make([]byte, 32)
		n := ItoaRadix(buf, c.v, c.radix)
		require.Equal(t, c.want, string(buf[:n]), "v=%d radix=%s", c.v, c.radix)
	}
}

func TestItoaPadded(t *testing.T) {
	cases := []struct {
		v      int64
		radix  Radix
		digits int
		want   string
	}{
		{10, Dec, 3, "010"},
		{10, Dec, 4, "0010"},
		{-10, Dec, 4, "-0010"},
		{1234, Dec, 5, "01234"},
		{12345, Dec, 3, "12345"},
		{-10, Hex, 10, "-0x000000000a"},
		{-10, Oct, 10, "-0o0000000012"},
		{-10, Bin, 10, "-0b0000001010"},
		{0x7f, Hex, 5, "0x0007f"},
	}
	for _, c := range cases {
		buf := make([]byte, 32)
		n := ItoaPadded(buf, c.v, c.radix, c.digits)
		require.Equal(t, c.want, string(buf[:n]))
	}
	buf := make([]byte, 16)
	n := UtoaPadded(buf, uint8(21), Bin, 8)
	require.Equal(t, "0b00010101", string(buf[:n]))
}

func TestItoaMinValues(t *testing.T) {
	check := func(n int, buf []byte, want string) {
		t.Helper()
		require.Equal(t, want, string(buf[:n]))
	}
	buf := make([]byte, 80)
	check(Itoa(buf, int8(math.MinInt8)), buf, "-128")
	check(ItoaRadix(buf, int8(math.MinInt8), Hex), buf, "-0x80")
	check(ItoaRadix(buf, int8(math.MinInt8), Oct), buf, "-0o200")
	check(ItoaRadix(buf, int8(math.MinInt8), Bin), buf, "-0b10000000")
	check(ItoaRadix(buf, int16(math.MinInt16), Hex), buf, "-0x8000")
	check(Itoa(buf, int32(math.MinInt32)), buf, "-2147483648")
	check(ItoaRadix(buf, int32(math.MinInt32), Hex), buf, "-0x80000000")
	check(Itoa(buf, int64(math.MinInt64)), buf, "-9223372036854775808")
	check(ItoaRadix(buf, int64(math.MinInt64), Hex), buf, "-0x8000000000000000")
	check(ItoaRadix(buf, int64(math.MinInt64), Oct), buf, "-0o1000000000000000000000")
	check(ItoaRadix(buf, int64(math.MinInt64), Bin), buf, "-0b1"+strings.Repeat("0", 63))
	// padding adds sign and prefix on top of the digit count
	require.Equal(t, 1+2+70, ItoaPadded(nil, int64(math.MinInt64), Bin, 70))
}

func TestItoaShortBuffer(t *testing.T) {
	cases := []struct {
		v      int64
		radix  Radix
		digits int
	}{
		{0, Hex, 0},
		{-1, Hex, 0},
		{255, Hex, 0},
		{-4096, Hex, 0},
		{-10, Bin, 10},
		{math.MinInt64, Dec, 0},
		{math.MaxInt64, Oct, 25},
	}
	for _, c := range cases {
		full := make([]byte, 128)
		want := ItoaPadded(full, c.v, c.radix, c.digits)
		for l := 0; l <= want; l++ {
			buf := []byte(strings.Repeat("?", l+4))
			got := ItoaPadded(buf[:l], c.v, c.radix, c.digits)
			require.Equal(t, want, got)
			require.Equal(t, string(full[:l]), string(buf[:l]))
			require.Equal(t, "????", string(buf[l:]), "wrote past %d", l)
		}
	}
}

func TestItoaNilBufferSizes(t *testing.T) {
	require.Equal(t, 4, Itoa(nil, -123))
	require.Equal(t, 4, UtoaRadix([]byte{}, uint16(0xff), Hex))
	require.Equal(t, 20, Utoa(nil, uint64(math.MaxUint64)))
}

func TestItoaHugePadding(t *testing.T) {
	require.PanicsWithValue(t, "padding too wide", func() {
		ItoaPadded(nil, int64(-1), Hex, math.MaxInt)
	})
	require.PanicsWithValue(t, "padding too wide", func() {
		UtoaPadded(nil, uint8(1), Bin, math.MaxInt-1)
	})

	// only the padding inside the buffer is visited
	wide := math.MaxInt / 2
	require.Equal(t, 3+wide, ItoaPadded(nil, int64(-1), Hex, wide))
	buf := make([]byte, 8)
	require.Equal(t, 3+wide, ItoaPadded(buf, int64(-255), Hex, wide))
	require.Equal(t, "-0x00000", string(buf))
	require.Equal(t, math.MaxInt, UtoaPadded(nil, uint(7), Dec, math.MaxInt))
	require.Equal(t, math.MaxInt, WriteHexPadded(buf, uint(0xabc), math.MaxInt))
	require.Equal(t, "00000000", string(buf))
}

func TestItoaInvalidRadix(t *testing.T) {
	require.PanicsWithValue(t, "unsupported radix", func() {
		ItoaRadix(nil, 1, Radix(3))
	})
}

func TestWriteDigits(t *testing.T) {
	buf := make([]byte, 32)
	require.Equal(t, "1234", string(buf[:WriteDec(buf, uint(1234))]))
	require.Equal(t, "deadbeef", string(buf[:WriteHex(buf, uint32(0xdeadbeef))]))
	require.Equal(t, "777", string(buf[:WriteOct(buf, uint16(0o777))]))
	require.Equal(t, "101", string(buf[:WriteBin(buf, uint8(5))]))
	require.Equal(t, "00042", string(buf[:WriteDecPadded(buf, uint(42), 5)]))
	require.Equal(t, "00ff", string(buf[:WriteHexPadded(buf, uint(255), 4)]))
	require.Equal(t, "007", string(buf[:WriteOctPadded(buf, uint(7), 3)]))
	require.Equal(t, "0011", string(buf[:WriteBinPadded(buf, uint(3), 4)]))
}

func roundTripSigned[T Signed](t *testing.T, vals ...T) {
	t.Helper()
	buf := make([]byte, 80)
	for _, radix := range []Radix{Bin, Oct, Dec, Hex} {
		for _, v := range vals {
			n := ItoaRadix(buf, v, radix)
			got, ok := Atoi[T](buf[:n])
			require.True(t, ok, "%q", buf[:n])
			require.Equal(t, v, got)
		}
	}
}

func roundTripUnsigned[T Unsigned](t *testing.T, vals ...T) {
	t.Helper()
	buf := make([]byte, 80)
	for _, radix := range []Radix{Bin, Oct, Dec, Hex} {
		for _, v := range vals {
			n := UtoaRadix(buf, v, radix)
			got, ok := Atou[T](string(buf[:n]))
			require.True(t, ok, "%q", buf[:n])
			require.Equal(t, v, got)
		}
	}
}

func TestIntegerRoundTripBoundaries(t *testing.T) {
	roundTripSigned(t, int8(math.MinInt8), math.MinInt8+1, math.MaxInt8-1, math.MaxInt8, 0, -1)
	roundTripSigned(t, int16(math.MinInt16), math.MinInt16+1, math.MaxInt16-1, math.MaxInt16, 0, -1)
	roundTripSigned(t, int32(math.MinInt32), math.MinInt32+1, math.MaxInt32-1, math.MaxInt32, 0, -1)
	roundTripSigned(t, int64(math.MinInt64), math.MinInt64+1, math.MaxInt64-1, math.MaxInt64, 0, -1)
	roundTripUnsigned(t, uint8(0), 1, math.MaxUint8-1, math.MaxUint8)
	roundTripUnsigned(t, uint16(0), 1, math.MaxUint16-1, math.MaxUint16)
	roundTripUnsigned(t, uint32(0), 1, math.MaxUint32-1, math.MaxUint32)
	roundTripUnsigned(t, uint64(0), 1, math.MaxUint64-1, math.MaxUint64)
}

func TestIntegerRoundTripQuick(t *testing.T) {
	buf := make([]byte, 80)
	signed := func(v int64, r uint8) bool {
		radix := []Radix{Bin, Oct, Dec, Hex}[r%4]
		n := ItoaRadix(buf, v, radix)
		got, ok := Atoi[int64](buf[:n])
		return ok && got == v
	}
	require.NoError(t, quick.Check(signed, &quick.Config{}))
	unsigned := func(v uint32, r uint8) bool {
		radix := []Radix{Bin, Oct, Dec, Hex}[r%4]
		n := UtoaRadix(buf, v, radix)
		got, ok := Atou[uint32](buf[:n])
		return ok && got == v
	}
	require.NoError(t, quick.Check(unsigned, &quick.Config{}))
}

func FuzzItoaRoundTrip(f *testing.F) {
	f.Add(int64(0), uint8(0), 0)
	f.Add(int64(math.MinInt64), uint8(3), 30)
	f.Fuzz(func(t *testing.T, v int64, r uint8, digits int) {
		digits %= 70
		radix := []Radix{Bin, Oct, Dec, Hex}[r%4]
		n := ItoaPadded(nil, v, radix, digits)
		buf := make([]byte, n)
		require.Equal(t, n, ItoaPadded(buf, v, radix, digits))
		got, ok := Atoi[int64](buf)
		require.True(t, ok)
		require.Equal(t, v, got)
	})
}
