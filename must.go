package fixfmt

import (
	"errors"
	"fmt"
)

// Must renders format and args with [Buffer.Format] into a new buffer of the
// given capacity. It panics if the output does not fit, with an error
// wrapping [ErrFatalOverflow], and with the plain error on any other
// failure. Use it where the capacity is chosen to fit every possible
// output, so an overflow is a bug.
func Must(capacity int, format string, args ...any) *Buffer {
	b := New(capacity)
	if err := b.Format(format, args...); err != nil {
		panic(fatal(err))
	}
	return b
}

// MustInterpolate is like [Must] but renders a brace template with
// [Buffer.Interpolate].
func MustInterpolate(capacity int, tmpl string, args ...any) *Buffer {
	b := New(capacity)
	if err := b.Interpolate(tmpl, args...); err != nil {
		panic(fatal(err))
	}
	return b
}

// MustInto is like [Must] but renders into caller-owned storage.
func MustInto(storage []byte, format string, args ...any) Buffer {
	b := Make(storage)
	if err := b.Format(format, args...); err != nil {
		panic(fatal(err))
	}
	return b
}

func fatal(err error) error {
	if !errors.Is(err, ErrOverflow) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFatalOverflow, err)
}
