package fixfmt

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// Buffer is a fixed-capacity text sink. The storage is sized once and never
// grows; writes past the end fail with an [*OverflowError].
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	storage []byte
	used    int
	policy  Truncation
	halted  bool
}

// New returns an empty buffer with capacity bytes of zeroed storage.
func New(capacity int) *Buffer {
	if capacity < 0 {
		panic("fixfmt: negative capacity")
	}
	b := Make(make([]byte, capacity))
	return &b
}

// Make wraps caller-owned storage. The whole length of storage is usable
// capacity, so an array declared in the calling function can back it:
//
//	var arr [64]byte
//	b := fixfmt.Make(arr[:])
//
// The returned value must not be copied after first use.
func Make(storage []byte) Buffer {
	return Buffer{storage: storage[:len(storage):len(storage)]}
}

// SetTruncation selects the overflow policy for subsequent writes.
func (b *Buffer) SetTruncation(t Truncation) { b.policy = t }

// Truncation returns the overflow policy.
func (b *Buffer) Truncation() Truncation { return b.policy }

// Reset discards the contents so the storage can be reused for a new pass.
func (b *Buffer) Reset() {
	b.used = 0
	b.halted = false
}

// Cap of the buffer.
func (b *Buffer) Cap() int { return len(b.storage) }

// Len is the number of bytes written in the current pass.
func (b *Buffer) Len() int { return b.used }

// Available is the number of bytes that still fit.
func (b *Buffer) Available() int { return len(b.storage) - b.used }

// Overflowed reports whether a write in the current pass failed.
func (b *Buffer) Overflowed() bool { return b.halted }

// Write appends p. If p does not fit, the prefix allowed by the truncation
// policy is kept, the pass is halted and an [*OverflowError] is returned.
// Once halted, Write keeps failing without copying until [Buffer.Reset].
func (b *Buffer) Write(p []byte) (int, error) {
	if b.halted {
		return 0, b.overflow(0, len(p))
	}
	remaining := b.storage[b.used:]
	if len(p) <= len(remaining) {
		n := copy(remaining, p)
		b.used += n
		return n, nil
	}
	n := copy(remaining, p[:cut(p, len(remaining), b.policy)])
	b.used += n
	b.halted = true
	return n, b.overflow(n, len(p)-n)
}

// WriteString appends s with the same semantics as [Buffer.Write].
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func (b *Buffer) overflow(written, dropped int) error {
	return &OverflowError{Capacity: len(b.storage), Written: written, Dropped: dropped}
}

// cut returns how many leading bytes of p to keep when only room bytes fit.
func cut(p []byte, room int, policy Truncation) int {
	switch policy {
	case TruncateBytes:
		return room
	case TruncateNone:
		return 0
	default:
		// p[room] is inside p because the fragment did not fit.
		n := room
		for n > 0 && !utf8.RuneStart(p[n]) {
			n--
		}
		return n
	}
}

// Bytes returns the written bytes. The slice aliases the storage and is
// only valid until the next write or reset.
func (b *Buffer) Bytes() []byte { return b.storage[:b.used] }

// String returns a copy of the written bytes.
func (b *Buffer) String() string { return string(b.storage[:b.used]) }

// View returns the written bytes as a string without copying. It fails
// with [ErrInvalidText] if the contents are not valid UTF-8, which can only
// happen with [TruncateBytes] or when invalid bytes were written.
//
// The string aliases the storage: it changes if the buffer is written
// again, so it must not be retained past the next write or reset.
func (b *Buffer) View() (string, error) {
	p := b.storage[:b.used]
	if !utf8.Valid(p) {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidText, len(p))
	}
	if len(p) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(p), len(p)), nil
}

// Format resets the buffer and renders format and args with the fmt
// package. On success the contents equal fmt.Sprintf(format, args...).
func (b *Buffer) Format(format string, args ...any) error {
	b.Reset()
	_, err := fmt.Fprintf(b, format, args...)
	return err
}
