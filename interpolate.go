package fixfmt

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Interpolate resets the buffer and renders a brace template:
//
//	b.Interpolate("write some stuff {}: {:.2}", "foo", 42.3456)
//
// Literal text and each rendered argument are written as separate
// fragments, left to right. The template and the arguments are checked
// before anything is written, so a template error leaves the buffer empty.
//
// Placeholders have the form {[index][:[[fill]align][0][width][.precision][type]]}
// where align is one of < ^ > and type is one of ? x X o b e. Use {{ and }}
// for literal braces. Precision sets the decimals of a float and the maximum
// number of runes of a string; integers ignore it. Width and precision are
// at most 65535. The x, X, o and b types render negative integers in two's
// complement at the width of their type, so int8(-1) formats as ff.
func (b *Buffer) Interpolate(tmpl string, args ...any) error {
	b.Reset()
	if err := checkTemplate(tmpl, args); err != nil {
		return err
	}
	var seg segment
	var err error
	for pos, auto := 0, 0; pos < len(tmpl); {
		seg, pos, auto, err = nextSegment(tmpl, pos, auto)
		if err != nil {
			return err
		}
		if !seg.isArg {
			if _, err := b.WriteString(seg.literal); err != nil {
				return err
			}
			continue
		}
		if err := b.writeArg(args[seg.index], seg.spec); err != nil {
			return err
		}
	}
	return nil
}

type placeholder struct {
	fill  rune
	align byte // 0, '<', '^' or '>'
	zero  bool
	width int
	prec  int // -1 when absent
	verb  byte
}

type segment struct {
	literal string
	isArg   bool
	index   int
	spec    placeholder
}

func checkTemplate(tmpl string, args []any) error {
	var small [64]bool
	var used []bool
	if len(args) <= len(small) {
		used = small[:len(args)]
	} else {
		used = make([]bool, len(args))
	}
	var seg segment
	var err error
	for pos, auto := 0, 0; pos < len(tmpl); {
		seg, pos, auto, err = nextSegment(tmpl, pos, auto)
		if err != nil {
			return err
		}
		if !seg.isArg {
			continue
		}
		if seg.index >= len(args) {
			return fmt.Errorf("%w: index %d with %d arguments", ErrMissingArgument, seg.index, len(args))
		}
		if !supports(args[seg.index], seg.spec.verb) {
			return fmt.Errorf("%w: type %q cannot format %T", ErrInvalidTemplate, seg.spec.verb, args[seg.index])
		}
		used[seg.index] = true
	}
	for i, ok := range used {
		if !ok {
			return fmt.Errorf("%w: argument %d (%T)", ErrUnusedArgument, i, args[i])
		}
	}
	return nil
}

// nextSegment scans one literal span or placeholder starting at pos.
func nextSegment(tmpl string, pos, auto int) (segment, int, int, error) {
	switch tmpl[pos] {
	case '{':
		if pos+1 < len(tmpl) && tmpl[pos+1] == '{' {
			return segment{literal: "{"}, pos + 2, auto, nil
		}
		end := strings.IndexByte(tmpl[pos+1:], '}')
		if end < 0 {
			return segment{}, 0, 0, fmt.Errorf("%w: unclosed '{' at offset %d", ErrInvalidTemplate, pos)
		}
		body := tmpl[pos+1 : pos+1+end]
		if strings.IndexByte(body, '{') >= 0 {
			return segment{}, 0, 0, fmt.Errorf("%w: nested '{' at offset %d", ErrInvalidTemplate, pos)
		}
		seg, auto, err := parsePlaceholder(body, auto)
		if err != nil {
			return segment{}, 0, 0, fmt.Errorf("%w at offset %d", err, pos)
		}
		return seg, pos + end + 2, auto, nil
	case '}':
		if pos+1 < len(tmpl) && tmpl[pos+1] == '}' {
			return segment{literal: "}"}, pos + 2, auto, nil
		}
		return segment{}, 0, 0, fmt.Errorf("%w: unmatched '}' at offset %d", ErrInvalidTemplate, pos)
	}
	end := strings.IndexAny(tmpl[pos:], "{}")
	if end < 0 {
		return segment{literal: tmpl[pos:]}, len(tmpl), auto, nil
	}
	return segment{literal: tmpl[pos : pos+end]}, pos + end, auto, nil
}

func parsePlaceholder(body string, auto int) (segment, int, error) {
	idx, spec, _ := strings.Cut(body, ":")
	seg := segment{isArg: true}
	if idx == "" {
		seg.index = auto
		auto++
	} else {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return segment{}, 0, fmt.Errorf("%w: bad argument index %q", ErrInvalidTemplate, idx)
		}
		seg.index = n
	}
	p, err := parseSpec(spec)
	if err != nil {
		return segment{}, 0, err
	}
	seg.spec = p
	return seg, auto, nil
}

func parseSpec(s string) (placeholder, error) {
	p := placeholder{fill: ' ', prec: -1}
	orig := s
	if r, size := utf8.DecodeRuneInString(s); size < len(s) && isAlign(s[size]) {
		p.fill, p.align = r, s[size]
		s = s[size+1:]
	} else if s != "" && isAlign(s[0]) {
		p.align = s[0]
		s = s[1:]
	}
	if strings.HasPrefix(s, "0") {
		p.zero = true
		s = s[1:]
	}
	var ok bool
	if p.width, s, ok = leadingInt(s); !ok {
		return placeholder{}, fmt.Errorf("%w: width too large in %q", ErrInvalidTemplate, orig)
	}
	if rest, found := strings.CutPrefix(s, "."); found {
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return placeholder{}, fmt.Errorf("%w: missing precision in %q", ErrInvalidTemplate, orig)
		}
		if p.prec, s, ok = leadingInt(rest); !ok {
			return placeholder{}, fmt.Errorf("%w: precision too large in %q", ErrInvalidTemplate, orig)
		}
	}
	switch s {
	case "":
	case "?", "x", "X", "o", "b", "e":
		p.verb = s[0]
	default:
		return placeholder{}, fmt.Errorf("%w: unknown format spec %q", ErrInvalidTemplate, orig)
	}
	return p, nil
}

func isAlign(c byte) bool { return c == '<' || c == '^' || c == '>' }

// maxCount bounds width and precision.
const maxCount = 1<<16 - 1

// leadingInt parses the decimal digits at the start of s. It reports false
// when the value exceeds maxCount.
func leadingInt(s string) (int, string, bool) {
	n, i := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > maxCount {
			return 0, s, false
		}
	}
	return n, s[i:], true
}

func supports(v any, verb byte) bool {
	switch verb {
	case 'x', 'X', 'o', 'b':
		return isInteger(v)
	case 'e':
		return isFloat(v)
	default:
		return true
	}
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	}
	return false
}

// finite reports false for NaN and infinite floats.
func finite(v any) bool {
	switch x := v.(type) {
	case float32:
		return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	}
	return true
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// writeArg renders one argument and writes it, padding included, as a
// single fragment. Fill runs longer than the room left in the buffer are
// cut to one rune past it: the fragment overflows with the same prefix.
func (b *Buffer) writeArg(v any, p placeholder) error {
	var valBuf, fragBuf [64]byte
	val := appendValue(valBuf[:0], v, p)
	numeric := isInteger(v) || isFloat(v)

	pad := p.width - utf8.RuneCount(val)
	if pad <= 0 {
		_, err := b.Write(val)
		return err
	}
	limit := b.Available() + 1
	out := fragBuf[:0]
	if p.zero && numeric && finite(v) {
		if len(val) > 0 && (val[0] == '-' || val[0] == '+') {
			out = append(out, val[0])
			val = val[1:]
		}
		for range min(pad, limit) {
			out = append(out, '0')
		}
		out = append(out, val...)
		_, err := b.Write(out)
		return err
	}
	fill := p.fill
	if p.zero && !numeric {
		fill = '0'
	}
	align := p.align
	if align == 0 {
		align = '<'
		if numeric {
			align = '>'
		}
	}
	left := 0
	switch align {
	case '>':
		left = pad
	case '^':
		left = pad / 2
	}
	for range min(left, limit) {
		out = utf8.AppendRune(out, fill)
	}
	out = append(out, val...)
	for range min(pad-left, limit) {
		out = utf8.AppendRune(out, fill)
	}
	_, err := b.Write(out)
	return err
}

func appendValue(dst []byte, v any, p placeholder) []byte {
	switch x := v.(type) {
	case string:
		return appendString(dst, x, p)
	case []byte:
		return appendString(dst, string(x), p)
	case bool:
		return strconv.AppendBool(dst, x)
	case int:
		return appendInt(dst, int64(x), strconv.IntSize, p.verb)
	case int8:
		return appendInt(dst, int64(x), 8, p.verb)
	case int16:
		return appendInt(dst, int64(x), 16, p.verb)
	case int32:
		return appendInt(dst, int64(x), 32, p.verb)
	case int64:
		return appendInt(dst, x, 64, p.verb)
	case uint:
		return appendUint(dst, uint64(x), p.verb)
	case uint8:
		return appendUint(dst, uint64(x), p.verb)
	case uint16:
		return appendUint(dst, uint64(x), p.verb)
	case uint32:
		return appendUint(dst, uint64(x), p.verb)
	case uint64:
		return appendUint(dst, x, p.verb)
	case uintptr:
		return appendUint(dst, uint64(x), p.verb)
	case float32:
		return appendFloat(dst, float64(x), 32, p)
	case float64:
		return appendFloat(dst, x, 64, p)
	case error:
		return appendString(dst, x.Error(), p)
	case fmt.Stringer:
		return appendString(dst, x.String(), p)
	}
	if p.verb == '?' {
		return fmt.Appendf(dst, "%+v", v)
	}
	return fmt.Append(dst, v)
}

func appendString(dst []byte, s string, p placeholder) []byte {
	if p.verb == '?' {
		return strconv.AppendQuote(dst, s)
	}
	if p.prec >= 0 {
		n := 0
		for i := range s {
			if n == p.prec {
				s = s[:i]
				break
			}
			n++
		}
	}
	return append(dst, s...)
}

func appendInt(dst []byte, i int64, bits int, verb byte) []byte {
	if i < 0 && intBase(verb) != 10 {
		return appendUint(dst, uint64(i)&(1<<bits-1), verb)
	}
	start := len(dst)
	dst = strconv.AppendInt(dst, i, intBase(verb))
	return upper(dst, start, verb)
}

func appendUint(dst []byte, u uint64, verb byte) []byte {
	start := len(dst)
	dst = strconv.AppendUint(dst, u, intBase(verb))
	return upper(dst, start, verb)
}

func intBase(verb byte) int {
	switch verb {
	case 'x', 'X':
		return 16
	case 'o':
		return 8
	case 'b':
		return 2
	}
	return 10
}

func upper(dst []byte, start int, verb byte) []byte {
	if verb != 'X' {
		return dst
	}
	for i := start; i < len(dst); i++ {
		if c := dst[i]; c >= 'a' && c <= 'f' {
			dst[i] = c - 'a' + 'A'
		}
	}
	return dst
}

func appendFloat(dst []byte, f float64, bits int, p placeholder) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	}
	if p.verb == 'e' {
		start := len(dst)
		dst = strconv.AppendFloat(dst, f, 'e', p.prec, bits)
		return trimExponent(dst, start)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'f', p.prec, bits)
	if p.verb == '?' && p.prec < 0 && bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, ".0"...)
	}
	return dst
}

// trimExponent rewrites "1.5e+03" as "1.5e3" and "1.5e-07" as "1.5e-7".
func trimExponent(dst []byte, start int) []byte {
	e := start
	for e < len(dst) && dst[e] != 'e' {
		e++
	}
	if e == len(dst) {
		return dst
	}
	i := e + 1
	out := i
	if dst[i] == '-' {
		out++
	}
	i++ // skip the sign
	for i < len(dst)-1 && dst[i] == '0' {
		i++
	}
	return append(dst[:out], dst[i:]...)
}
