// Package config loads the defaults of the charconv tool from a TOML or YAML
// file. Numeric fields go through yamlnum, so 0x, 0o and 0b literals are
// accepted in both formats.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rawbytedev/charconv"
	"github.com/rawbytedev/charconv/pkg/yamlnum"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrInvalidValue is returned when a field holds a value the tool cannot use.
	ErrInvalidValue = errors.New("invalid config value")
)

type Frame struct {
	MaxSize  string `toml:"max_size" yaml:"max_size"`
	Compress bool   `toml:"compress" yaml:"compress"`
}

type Log struct {
	Level string `toml:"level" yaml:"level"`
}

// Config mirrors the flags of the convert and frame commands.
type Config struct {
	Type      string              `toml:"type" yaml:"type"`
	Radix     string              `toml:"radix" yaml:"radix"`
	Digits    yamlnum.Number[int] `toml:"digits" yaml:"digits"`
	Format    string              `toml:"format" yaml:"format"`
	Precision yamlnum.Number[int] `toml:"precision" yaml:"precision"`
	Frame     Frame               `toml:"frame" yaml:"frame"`
	Log       Log                 `toml:"log" yaml:"log"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Type:      "i64",
		Radix:     "dec",
		Format:    "flex",
		Precision: yamlnum.Of(-1),
		Frame:     Frame{MaxSize: "1MiB"},
		Log:       Log{Level: "info"},
	}
}

// Load reads path over the defaults. The decoder is chosen by extension:
// .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(filepath.Ext(path), content)
}

// Parse decodes content in the format named by ext over the defaults.
func Parse(ext string, content []byte) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	if _, ok := charconv.ParseRadix(c.Radix); !ok {
		return fmt.Errorf("%w: radix %q", ErrInvalidValue, c.Radix)
	}
	if _, ok := charconv.ParseRealFormat(c.Format); !ok {
		return fmt.Errorf("%w: format %q", ErrInvalidValue, c.Format)
	}
	if c.Digits.V < 0 {
		return fmt.Errorf("%w: digits %d", ErrInvalidValue, c.Digits.V)
	}
	if c.Precision.V < -1 {
		return fmt.Errorf("%w: precision %d", ErrInvalidValue, c.Precision.V)
	}
	return nil
}
