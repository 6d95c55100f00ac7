package common

import (
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestVarUintRoundTrip(t *testing.T) {
	f := func(x uint64) bool {
		b := WriteVarUintTo(nil, x)
		got, n := ReadVarUint(b)
		return got == x && n == len(b)
	}
	require.NoError(t, quick.Check(f, &quick.Config{}))

	got, n := ReadVarUint([]byte{0x80, 0x80})
	require.Zero(t, got)
	require.Zero(t, n)
}

func TestKinds(t *testing.T) {
	require.True(t, IsNumericKind(reflect.Uintptr))
	require.False(t, IsNumericKind(reflect.Bool))
	require.False(t, IsNumericKind(reflect.String))
	require.Equal(t, 8, BitSize(reflect.Int8))
	require.Equal(t, 32, BitSize(reflect.Float32))
	require.Equal(t, 64, BitSize(reflect.Uint64))
	require.Equal(t, int(reflect.TypeOf(0).Size()*8), BitSize(reflect.Int))
	require.Equal(t, -1, BitSize(reflect.Slice))
}
