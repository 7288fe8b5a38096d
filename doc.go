// Package fixfmt formats text into fixed-capacity buffers.
//
// A [Buffer] owns storage whose size is chosen once, either by [New] or by
// wrapping an array the caller declares with [Make]. Writes never grow the
// storage: a fragment that does not fit fails with an [*OverflowError]
// that matches [ErrOverflow].
//
//	var arr [64]byte
//	b := fixfmt.Make(arr[:])
//	if err := b.Format("write some stuff %s: %.2f", "foo", 42.3456); err != nil {
//		// handle overflow
//	}
//	fmt.Println(b.String())
//
// # Formatting
//
// Two entry points reset the buffer and render into it:
//
//   - [Buffer.Format] uses the fmt package verbs (%s, %.2f, ...)
//   - [Buffer.Interpolate] uses brace placeholders ({}, {:.2}, {0:>8}, ...)
//
// Both can be called any number of times on the same buffer; each call
// starts from an empty buffer.
//
// # Overflow
//
// The part of an overflowing fragment that is kept depends on the
// [Truncation] policy set with [Buffer.SetTruncation]:
//
//   - [TruncateRunes] (default) keeps whole UTF-8 runes only
//   - [TruncateBytes] fills the buffer exactly
//   - [TruncateNone] keeps nothing of the fragment
//
// After the first overflow the buffer refuses further writes until the
// next reset, so the contents are always a prefix of the full output.
//
// # Must
//
// [Must], [MustInterpolate] and [MustInto] build and fill a buffer in one
// call and panic with an error wrapping [ErrFatalOverflow] when the output
// does not fit:
//
//	b := fixfmt.Must(64, "int %d", 4711)
//
// # Reading
//
// [Buffer.Bytes] and [Buffer.View] return the contents without copying and
// are only valid until the buffer is written again. [Buffer.View] checks
// that the contents are valid UTF-8. [Buffer.String] returns a copy.
package fixfmt
