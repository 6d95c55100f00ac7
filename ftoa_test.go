package charconv

import (
	"math"
	"strconv"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ftoaString(v float32, prec int, f RealFormat) string {
	buf := make([]byte, 64)
	return string(buf[:Ftoa(buf, v, prec, f)])
}

func dtoaString(v float64, prec int, f RealFormat) string {
	buf := make([]byte, 64)
	return string(buf[:Dtoa(buf, v, prec, f)])
}

func TestFtoaFormats(t *testing.T) {
	f := float32(1.1234123)
	cases := []struct {
		prec                  int
		sci, fixed, flex, hex string
	}{
		{0, "1e+00", "1", "1", "0x1p+0"},
		{1, "1.1e+00", "1.1", "1.1", "0x1.2p+0"},
		{2, "1.12e+00", "1.12", "1.12", "0x1.20p+0"},
		{3, "1.123e+00", "1.123", "1.123", "0x1.1f9p+0"},
		{4, "1.1234e+00", "1.1234", "1.1234", "0x1.1f98p+0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.sci, ftoaString(f, c.prec, FormatScientific))
		assert.Equal(t, c.fixed, ftoaString(f, c.prec, FormatFixed))
		assert.Equal(t, c.flex, ftoaString(f, c.prec+1, FormatFlex))
		assert.Equal(t, c.hex, ftoaString(f, c.prec, FormatHex))
	}

	g := float32(1.01234123)
	assert.Equal(t, "1.0e+00", ftoaString(g, 1, FormatScientific))
	assert.Equal(t, "1.0", ftoaString(g, 1, FormatFixed))
	assert.Equal(t, "1", ftoaString(g, 2, FormatFlex))
	assert.Equal(t, "0x1.0p+0", ftoaString(g, 1, FormatHex))
	assert.Equal(t, "0x1.033p+0", ftoaString(g, 3, FormatHex))
	assert.Equal(t, "0x1.0329p+0", ftoaString(g, 4, FormatHex))
}

func TestDtoaPrecision(t *testing.T) {
	fixed := []string{"256", "256.1", "256.06", "256.064", "256.0640", "256.06400"}
	for prec, want := range fixed {
		require.Equal(t, want, dtoaString(256.064, prec, FormatFixed))
	}
	require.Equal(t, "3e+02", dtoaString(256.064, 0, FormatScientific))
	require.Equal(t, "2.6e+02", dtoaString(256.064, 1, FormatScientific))
	require.Equal(t, "2.56e+02", dtoaString(256.064, 2, FormatScientific))
	require.Equal(t, "-0x1p-2", dtoaString(-0.25, -1, FormatHex))
	require.Equal(t, "0x0p+0", dtoaString(0, -1, FormatHex))
	require.Equal(t, "0x1p+10", dtoaString(1024, -1, FormatHex))
}

func TestDtoaShortestFlex(t *testing.T) {
	cases := map[float64]string{
		0:        "0",
		4:        "4",
		0.375:    "0.375",
		12.375:   "12.375",
		12345678: "12345678",
		100:      "100",
		1e21:     "1e+21",
		-1.5e-9:  "-1.5e-09",
	}
	for v, want := range cases {
		require.Equal(t, want, dtoaString(v, -1, FormatFlex))
	}
}

func TestFtoaNonFinite(t *testing.T) {
	require.Equal(t, "nan", dtoaString(math.NaN(), 3, FormatFixed))
	require.Equal(t, "inf", dtoaString(math.Inf(1), 3, FormatHex))
	require.Equal(t, "-inf", ftoaString(float32(math.Inf(-1)), -1, FormatFlex))
	v, ok := Atod("nan")
	require.True(t, ok)
	require.True(t, math.IsNaN(v))
	v, ok = Atod("-inf")
	require.True(t, ok)
	require.True(t, math.IsInf(v, -1))
}

func TestRealWritersDoNotAllocate(t *testing.T) {
	buf := make([]byte, 512)
	cases := []struct {
		name string
		fn   func() int
	}{
		{"fixed shortest huge", func() int { return Dtoa(buf, 1e300, -1, FormatFixed) }},
		{"fixed shortest tiny", func() int { return Dtoa(buf, 5e-324, -1, FormatFixed) }},
		{"fixed long precision", func() int { return Dtoa(buf, 0.1, 100, FormatFixed) }},
		{"flex long precision", func() int { return Dtoa(buf, math.MaxFloat64, 80, FormatFlex) }},
		{"flex shortest", func() int { return Dtoa(buf, -1.5e-9, -1, FormatFlex) }},
		{"scientific", func() int { return Dtoa(buf, math.SmallestNonzeroFloat64, 40, FormatScientific) }},
		{"hex", func() int { return Dtoa(buf, -math.MaxFloat64, -1, FormatHex) }},
		{"float32 fixed", func() int { return Ftoa(buf, math.MaxFloat32, 3, FormatFixed) }},
		{"nil buffer sizing", func() int { return Dtoa(nil, 1e300, -1, FormatFixed) }},
		{"short buffer", func() int { return Dtoa(buf[:10], 0.1, 100, FormatFixed) }},
	}
	for _, c := range cases {
		allocs := testing.AllocsPerRun(50, func() { c.fn() })
		assert.Zero(t, allocs, c.name)
	}
}

func TestMaxRealLenBoundsOutput(t *testing.T) {
	formats := []RealFormat{FormatFixed, FormatScientific, FormatFlex, FormatHex}
	f := func(bits uint64, p uint8) bool {
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		for _, format := range formats {
			for _, prec := range []int{-1, 0, int(p)} {
				out := appendReal(nil, v, prec, format, 64)
				if len(out) > maxRealLen(v, prec, format, 64) {
					return false
				}
			}
		}
		return true
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))
}

func TestShortestPicksShorterForm(t *testing.T) {
	f := func(bits uint64) bool {
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		fixed := strconv.FormatFloat(v, 'f', -1, 64)
		sci := strconv.FormatFloat(v, 'e', -1, 64)
		want := fixed
		if len(sci) < len(fixed) {
			want = sci
		}
		return string(appendShortest(nil, v, 64)) == want && fixedLen([]byte(sci)) == len(fixed)
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))
}

func TestFtoaShortBuffer(t *testing.T) {
	full := dtoaString(256.064, 3, FormatFixed)
	for l := 0; l <= len(full); l++ {
		buf := []byte("????????????")
		n := Dtoa(buf[:l], 256.064, 3, FormatFixed)
		require.Equal(t, len(full), n)
		require.Equal(t, full[:l], string(buf[:l]))
		require.Equal(t, byte('?'), buf[l])
	}
}

func TestAtofPrefixes(t *testing.T) {
	s := []byte("12345678")
	want := float32(0)
	for k := 1; k <= len(s); k++ {
		want = want*10 + float32(k)
		v, ok := Atof(s[:k])
		require.True(t, ok)
		require.Equal(t, want, v)
		d, ok := Atod(string(s[:k]))
		require.True(t, ok)
		require.Equal(t, float64(want), d)
	}
}

func TestAtofInputs(t *testing.T) {
	v, ok := Atod("0x1.8p+1")
	require.True(t, ok)
	require.Equal(t, 3.0, v)
	v, ok = Atod("0x1.8")
	require.True(t, ok)
	require.Equal(t, 1.5, v)
	v, ok = Atod("1e400")
	require.True(t, ok)
	require.True(t, math.IsInf(v, 1))
	for _, bad := range []string{"", "1_000", "1.5f", " 1", "0x", "--1", "e5"} {
		_, ok := Atod(bad)
		assert.False(t, ok, "%q", bad)
	}
}

func TestFloatFixedRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	n := Ftoa(buf, 1.1234123, 2, FormatFixed)
	require.Equal(t, "1.12", string(buf[:n]))
	v, ok := Atof(buf[:n])
	require.True(t, ok)
	require.Equal(t, float32(1.12), v)
}

func TestFloatShortestRoundTripQuick(t *testing.T) {
	buf := make([]byte, 1024)
	formats := []RealFormat{FormatFixed, FormatScientific, FormatFlex, FormatHex}
	f64 := func(v float64, which uint8) bool {
		n := Dtoa(buf, v, -1, formats[which%4])
		got, ok := Atod(buf[:n])
		return ok && math.Float64bits(got) == math.Float64bits(v)
	}
	require.NoError(t, quick.Check(f64, &quick.Config{}))
	f32 := func(v float32, which uint8) bool {
		n := Ftoa(buf, v, -1, formats[which%4])
		got, ok := Atof(buf[:n])
		return ok && math.Float32bits(got) == math.Float32bits(v)
	}
	require.NoError(t, quick.Check(f32, &quick.Config{}))
}

func TestAtodFirst(t *testing.T) {
	v, n := AtodFirst("  -1.5e+3, 7")
	require.Equal(t, -1500.0, v)
	require.Equal(t, 9, n)
	f, n := AtofFirst([]byte("0x1.8p1]"))
	require.Equal(t, float32(3), f)
	require.Equal(t, 7, n)
	_, n = AtodFirst("1.5x")
	require.Equal(t, NPos, n)
}

func FuzzDtoaRoundTrip(f *testing.F) {
	f.Add(0.1, uint8(0))
	f.Add(-1e300, uint8(3))
	f.Fuzz(func(t *testing.T, v float64, which uint8) {
		if math.IsNaN(v) {
			return
		}
		format := []RealFormat{FormatFixed, FormatScientific, FormatFlex, FormatHex}[which%4]
		n := Dtoa(nil, v, -1, format)
		buf := make([]byte, n)
		require.Equal(t, n, Dtoa(buf, v, -1, format))
		got, ok := Atod(buf)
		require.True(t, ok)
		require.Equal(t, v, got)
	})
}

func BenchmarkDtoa(b *testing.B) {
	var buf [64]byte
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Dtoa(buf[:], 256.064, 3, FormatFixed)
	}
}
