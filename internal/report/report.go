// Package report writes command results in a selectable output format.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
)

// Format is an output format name.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	Plain Format = "plain"
)

var formats = []Format{Table, JSON, JSONL, YAML, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Rower provides the cells of one table row. Required for Table.
type Rower interface {
	Row() []string
}

// Headed provides column headers for Table.
type Headed interface {
	Header() []string
}

// Write renders items to w in format f.
func Write[T any](w io.Writer, f Format, items ...T) error {
	switch f {
	case Table:
		return writeTable(w, items)
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, items)
	case Plain:
		return writePlain(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func writeJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(items) == 1 {
		return enc.Encode(items[0])
	}
	return enc.Encode(items)
}

func writeJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var err error
	if len(items) == 1 {
		err = enc.Encode(items[0])
	} else {
		err = enc.Encode(items)
	}
	if err != nil {
		return err
	}
	return enc.Close()
}

func writePlain[T any](w io.Writer, items []T) error {
	for _, item := range items {
		var err error
		if s, ok := any(item).(fmt.Stringer); ok {
			_, err = fmt.Fprintln(w, s.String())
		} else {
			_, err = fmt.Fprintf(w, "%v\n", item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
