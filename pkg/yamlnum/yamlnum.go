// Package yamlnum carries numbers through YAML and TOML documents using
// charconv, so that scalars such as 0x1f, 0o17 and 0b101 decode into any
// integer or float type with the same rules as charconv.Atox.
package yamlnum

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/charconv"
	"gopkg.in/yaml.v3"
)

var ErrNotNumber = errors.New("not a number")

// Number holds a value decoded from or encoded to a YAML scalar. It also
// implements encoding.TextMarshaler and encoding.TextUnmarshaler, which
// TOML decoders use.
type Number[T charconv.Number] struct {
	V T
}

// Of wraps v.
func Of[T charconv.Number](v T) Number[T] { return Number[T]{V: v} }

func (n Number[T]) String() string {
	return string(appendNumber(nil, n.V))
}

func appendNumber[T charconv.Number](dst []byte, v T) []byte {
	var scratch [64]byte
	k := charconv.Xtoa(scratch[:], v)
	if k > len(scratch) {
		buf := make([]byte, k)
		charconv.Xtoa(buf, v)
		return append(dst, buf...)
	}
	return append(dst, scratch[:k]...)
}

// scalarTag is !!float for float types; halving one is zero only for
// integers.
func scalarTag[T charconv.Number]() string {
	var one T = 1
	if one/2 != 0 {
		return "!!float"
	}
	return "!!int"
}

func (n Number[T]) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: scalarTag[T](), Value: n.String()}, nil
}

func (n *Number[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", value.Line, ErrNotNumber)
	}
	return n.UnmarshalText([]byte(value.Value))
}

func (n Number[T]) MarshalText() ([]byte, error) {
	return appendNumber(nil, n.V), nil
}

func (n *Number[T]) UnmarshalText(text []byte) error {
	v, ok := charconv.Atox[T](text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotNumber, text)
	}
	n.V = v
	return nil
}

// Hex is an integer that encodes with a 0x prefix and decodes like Number.
type Hex[T charconv.Integer] struct {
	V T
}

func (h Hex[T]) String() string {
	var scratch [24]byte
	var k int
	if h.V < 0 {
		k = charconv.ItoaRadix(scratch[:], int64(h.V), charconv.Hex)
	} else {
		k = charconv.UtoaRadix(scratch[:], uint64(h.V), charconv.Hex)
	}
	return string(scratch[:k])
}

func (h Hex[T]) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: h.String()}, nil
}

func (h *Hex[T]) UnmarshalYAML(value *yaml.Node) error {
	n := Number[T]{}
	if err := n.UnmarshalYAML(value); err != nil {
		return err
	}
	h.V = n.V
	return nil
}

func (h Hex[T]) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hex[T]) UnmarshalText(text []byte) error {
	n := Number[T]{}
	if err := n.UnmarshalText(text); err != nil {
		return err
	}
	h.V = n.V
	return nil
}
