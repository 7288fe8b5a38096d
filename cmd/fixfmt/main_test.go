package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the app without letting exit errors terminate the test.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}
	err = app.Run(append([]string{"fixfmt"}, args...))
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	require.ErrorAs(t, err, &ec)
	return ec.ExitCode()
}

func TestRenderInterpolate(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "-o", "plain", "render", "write some stuff {}: {:.2}", "foo", "42.3456")
	require.NoError(t, err)
	assert.Equal(t, "write some stuff foo: 42.35\n", out)
}

func TestRenderPrintf(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "-o", "plain", "render", "--printf", "same buffer, new %s, int %d, float %.1f", "text", "123", "4.1234")
	require.NoError(t, err)
	assert.Equal(t, "same buffer, new text, int 123, float 4.1\n", out)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "", "render", "int {}", "4711")
	require.NoError(t, err)
	assert.Contains(t, out, "│ Template │ Capacity │ Len │ Overflow │ Text     │")
	assert.Contains(t, out, "│ int {}   │ 64       │ 8   │ false    │ int 4711 │")
}

func TestRenderOverflow(t *testing.T) {
	t.Parallel()
	out, logs, err := run(t, "", "-o", "json", "render", "--capacity", "10", "{}", "abcdefghijklmno")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, `"text": "abcdefghij"`)
	assert.Contains(t, out, `"overflow": true`)
	assert.Contains(t, out, `"dropped": 5`)
	assert.Contains(t, logs, "output truncated")
}

func TestRenderMustAborts(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		_, _, _ = run(t, "", "render", "--must", "--capacity", "4", "{}", "too long")
	})
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	tests := map[string][]string{
		"no template":       {"render"},
		"bad truncate":      {"render", "--truncate", "words", "x"},
		"bad output":        {"-o", "xml", "render", "x"},
		"bad template":      {"render", "{"},
		"negative capacity": {"render", "--capacity", "-1", "x"},
		"bad log level":     {"--log-level", "loud", "render", "x"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := run(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestParseArg(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"42":     42,
		"-7":     -7,
		"4.1234": 4.1234,
		"1e3":    1000.0,
		"true":   true,
		"false":  false,
		"t":      "t",
		"foo":    "foo",
		"":       "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, parseArg(in))
		})
	}
}

const panelConfig = `
cols: 10
rows: 2
capacity: 32
lines:
  - template: "float {:.1}"
    args: ["$counter"]
`

func TestPanelDraw(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(panelConfig), 0o600))

	out, _, err := run(t, "", "panel", "--config", path, "--frames", "2")
	require.NoError(t, err)
	want := "┌──────────┐\n│float 1.0 │\n│          │\n└──────────┘\n" +
		"┌──────────┐\n│float 2.0 │\n│          │\n└──────────┘\n"
	assert.Equal(t, want, out)
}

func TestPanelStdinJSONL(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, panelConfig, "-o", "jsonl", "panel", "--config", "-", "--frames", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `{"frame":2,"counter":3,"lines":["float 3.0 ","          "]}`, lines[2])
}

func TestPanelErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		code  int
	}{
		"missing file":    {args: []string{"panel", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, code: 2},
		"invalid config":  {stdin: "cols: 0\n", args: []string{"panel", "--config", "-"}, code: 2},
		"negative frames": {stdin: panelConfig, args: []string{"panel", "--config", "-", "--frames", "-1"}, code: 2},
		"bad template":    {stdin: "lines:\n  - template: \"{}\"\n", args: []string{"panel", "--config", "-"}, code: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}
