package fixfmt_test

import (
	"testing"

	"github.com/bjaus/fixfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recovered runs fn and returns the error it panicked with.
func recovered(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %T is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func TestMust(t *testing.T) {
	t.Parallel()
	b := fixfmt.Must(64, "write some stuff %s: %.2f", "foo", 42.3456)
	assert.Equal(t, "write some stuff foo: 42.35", b.String())
	assert.Equal(t, 27, b.Len())
	assert.Equal(t, 64, b.Cap())
}

func TestMustInterpolate(t *testing.T) {
	t.Parallel()
	b := fixfmt.MustInterpolate(64, "write some {}, int {}, float {:.3}", "stuff", 4711, 3.1415)
	assert.Equal(t, "write some stuff, int 4711, float 3.142", b.String())
}

func TestMustInto(t *testing.T) {
	t.Parallel()
	var arr [16]byte
	b := fixfmt.MustInto(arr[:], "int %d", 4711)
	assert.Equal(t, "int 4711", b.String())
	assert.Equal(t, "int 4711", string(arr[:b.Len()]))
}

func TestMustPanicsOnOverflow(t *testing.T) {
	t.Parallel()
	tests := map[string]func(){
		"must":        func() { fixfmt.Must(10, "%s", "abcdefghijklmno") },
		"interpolate": func() { fixfmt.MustInterpolate(10, "{}", "abcdefghijklmno") },
		"into": func() {
			var arr [4]byte
			fixfmt.MustInto(arr[:], "%d", 123456)
		},
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := recovered(t, fn)
			require.ErrorIs(t, err, fixfmt.ErrFatalOverflow)
			require.ErrorIs(t, err, fixfmt.ErrOverflow)
			assert.Contains(t, err.Error(), "buffer overflow")
		})
	}
}

func TestMustInterpolatePanicsOnBadTemplate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		tmpl    string
		args    []any
		wantErr error
	}{
		"missing argument": {tmpl: "{} {}", args: []any{1}, wantErr: fixfmt.ErrMissingArgument},
		"unknown type":     {tmpl: "{:q}", args: []any{1}, wantErr: fixfmt.ErrInvalidTemplate},
		"unused argument":  {tmpl: "{}", args: []any{1, 2}, wantErr: fixfmt.ErrUnusedArgument},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := recovered(t, func() { fixfmt.MustInterpolate(64, tt.tmpl, tt.args...) })
			require.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, fixfmt.ErrFatalOverflow)
			assert.NotContains(t, err.Error(), "buffer overflow")
		})
	}
}
