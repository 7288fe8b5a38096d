package panel

import (
	"errors"
	"fmt"
	"io"

	"github.com/bjaus/fixfmt"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for configs that cannot drive a panel.
var ErrInvalidConfig = errors.New("invalid panel config")

// Config describes a character display and the lines shown on it.
type Config struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	Capacity int     `yaml:"capacity"` // bytes of the shared line buffer
	Truncate string  `yaml:"truncate"`
	Counter  Counter `yaml:"counter"`
	Lines    []Line  `yaml:"lines"`
}

// Counter is the value substituted for "$counter" arguments. Frame n shows
// Start + n*Step.
type Counter struct {
	Start float64 `yaml:"start"`
	Step  float64 `yaml:"step"`
}

// Line is one row of text rendered with fixfmt brace placeholders.
type Line struct {
	Template string `yaml:"template"`
	Args     []any  `yaml:"args"`
}

// DefaultConfig matches a 240x240 display with a 10x20 font.
func DefaultConfig() Config {
	return Config{
		Cols:     24,
		Rows:     12,
		Capacity: 64,
		Truncate: fixfmt.TruncateRunes.String(),
		Counter:  Counter{Start: 1, Step: 1},
	}
}

// LoadConfig decodes YAML from r on top of [DefaultConfig] and validates
// the result. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the geometry, buffer size and truncation policy.
func (c Config) Validate() error {
	switch {
	case c.Cols <= 0:
		return fmt.Errorf("%w: cols must be positive, got %d", ErrInvalidConfig, c.Cols)
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, c.Rows)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case len(c.Lines) > c.Rows:
		return fmt.Errorf("%w: %d lines do not fit in %d rows", ErrInvalidConfig, len(c.Lines), c.Rows)
	}
	if _, err := fixfmt.ParseTruncation(c.Truncate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
