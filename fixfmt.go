package fixfmt

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrOverflow              = errors.New("buffer capacity exceeded")
	ErrFatalOverflow         = errors.New("buffer overflow")
	ErrInvalidText           = errors.New("invalid utf-8 text")
	ErrInvalidTemplate       = errors.New("invalid template")
	ErrMissingArgument       = errors.New("missing argument")
	ErrUnusedArgument        = errors.New("unused argument")
	ErrUnsupportedTruncation = errors.New("unsupported truncation")
)

// OverflowError reports a write that did not fit in the remaining capacity.
// It matches [ErrOverflow] with errors.Is.
type OverflowError struct {
	Capacity int // total buffer capacity
	Written  int // bytes of the failing fragment that were kept
	Dropped  int // bytes of the failing fragment that were discarded
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: capacity %d, kept %d, dropped %d", ErrOverflow, e.Capacity, e.Written, e.Dropped)
}

// Is reports whether target is [ErrOverflow].
func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// Truncation selects how much of an overflowing fragment is kept.
type Truncation int

const (
	// TruncateRunes keeps as many whole UTF-8 runes as fit. Default.
	TruncateRunes Truncation = iota
	// TruncateBytes fills the buffer exactly, possibly splitting a rune.
	TruncateBytes
	// TruncateNone rejects the whole fragment.
	TruncateNone
)

var truncationNames = map[Truncation]string{
	TruncateRunes: "runes",
	TruncateBytes: "bytes",
	TruncateNone:  "none",
}

// String returns the policy name.
func (t Truncation) String() string {
	if s, ok := truncationNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Truncation(%d)", int(t))
}

// ParseTruncation parses a policy name as returned by [Truncation.String].
func ParseTruncation(s string) (Truncation, error) {
	for t, name := range truncationNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedTruncation, s)
}
