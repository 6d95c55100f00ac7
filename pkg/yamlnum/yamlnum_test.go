package yamlnum

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type limits struct {
	Mask    Hex[uint32]      `yaml:"mask"`
	Offset  Number[int8]     `yaml:"offset"`
	Scale   Number[float64]  `yaml:"scale"`
	Weights []Number[uint16] `yaml:"weights"`
}

func TestDecodePrefixedScalars(t *testing.T) {
	doc := []byte(`
mask: 0xff00
offset: -0b101
scale: 0.25
weights: [0o17, 10, 0x10, 1e2]
`)
	var l limits
	require.NoError(t, yaml.Unmarshal(doc, &l))
	require.Equal(t, uint32(0xff00), l.Mask.V)
	require.Equal(t, int8(-5), l.Offset.V)
	require.Equal(t, 0.25, l.Scale.V)
	require.Equal(t, []Number[uint16]{{15}, {10}, {16}, {100}}, l.Weights)
}

func TestEncodeRoundTrip(t *testing.T) {
	in := limits{
		Mask:    Hex[uint32]{V: 0xbeef},
		Offset:  Of(int8(-128)),
		Scale:   Of(1.5e-9),
		Weights: []Number[uint16]{Of(uint16(65535))},
	}
	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(out), "mask: 0xbeef\n")
	require.Contains(t, string(out), "offset: -128\n")

	var back limits
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, in, back)
}

func TestDecodeErrors(t *testing.T) {
	var l limits
	err := yaml.Unmarshal([]byte("offset: twelve\n"), &l)
	require.ErrorIs(t, err, ErrNotNumber)
	err = yaml.Unmarshal([]byte("offset: [1]\n"), &l)
	require.ErrorIs(t, err, ErrNotNumber)
}

func TestText(t *testing.T) {
	var n Number[int64]
	require.NoError(t, n.UnmarshalText([]byte("-0x10")))
	require.Equal(t, int64(-16), n.V)
	text, err := n.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "-16", string(text))

	h := Hex[int16]{V: -1}
	require.Equal(t, "-0x1", h.String())
	require.Error(t, h.UnmarshalText([]byte("0x")))
}
