// Package panel simulates a character display whose lines are rendered
// through a single reused fixfmt buffer.
package panel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bjaus/fixfmt"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

const (
	counterArg = "$counter"
	frameArg   = "$frame"
	ellipsis   = "…"
)

// Panel renders frames for a [Config]. It is not safe for concurrent use.
type Panel struct {
	cfg  Config
	buf  *fixfmt.Buffer
	args []any
	log  zerolog.Logger
}

// Frame is the text shown on the display at one point in time. Every line
// is exactly Cols cells wide.
type Frame struct {
	Number  int      `json:"frame" yaml:"frame"`
	Counter float64  `json:"counter" yaml:"counter"`
	Lines   []string `json:"lines" yaml:"lines"`
}

// New validates cfg and allocates the line buffer.
func New(cfg Config, logger zerolog.Logger) (*Panel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := fixfmt.ParseTruncation(cfg.Truncate)
	buf := fixfmt.New(cfg.Capacity)
	buf.SetTruncation(policy)
	return &Panel{cfg: cfg, buf: buf, log: logger}, nil
}

// Render produces frame n. A line that overflows the buffer is shown
// truncated and logged as a warning; any other formatting error fails
// the frame.
func (p *Panel) Render(n int) (Frame, error) {
	counter := p.cfg.Counter.Start + float64(n)*p.cfg.Counter.Step
	f := Frame{Number: n, Counter: counter, Lines: make([]string, p.cfg.Rows)}
	for i, line := range p.cfg.Lines {
		p.args = p.args[:0]
		for _, a := range line.Args {
			if s, ok := a.(string); ok {
				switch s {
				case counterArg:
					a = counter
				case frameArg:
					a = n
				}
			}
			p.args = append(p.args, a)
		}
		err := p.buf.Interpolate(line.Template, p.args...)
		var oe *fixfmt.OverflowError
		switch {
		case errors.As(err, &oe):
			p.log.Warn().
				Int("frame", n).
				Int("line", i+1).
				Int("capacity", oe.Capacity).
				Int("dropped", oe.Dropped).
				Msg("line truncated")
		case err != nil:
			return Frame{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		f.Lines[i] = p.fit(p.buf.String())
	}
	for i := len(p.cfg.Lines); i < p.cfg.Rows; i++ {
		f.Lines[i] = strings.Repeat(" ", p.cfg.Cols)
	}
	p.log.Debug().Int("frame", n).Float64("counter", counter).Msg("frame rendered")
	return f, nil
}

func (p *Panel) fit(s string) string {
	s = runewidth.Truncate(s, p.cfg.Cols, ellipsis)
	return runewidth.FillRight(s, p.cfg.Cols)
}

// Header names the table columns.
func (f Frame) Header() []string { return []string{"Frame", "Counter", "Lines"} }

// Row is the frame as one table row, its lines joined by " / ".
func (f Frame) Row() []string {
	return []string{
		strconv.Itoa(f.Number),
		strconv.FormatFloat(f.Counter, 'g', -1, 64),
		strings.Join(f.Lines, " / "),
	}
}

// String joins the lines with newlines.
func (f Frame) String() string { return strings.Join(f.Lines, "\n") }

// Draw writes the frame inside a box.
func (f Frame) Draw(w io.Writer) error {
	width := 0
	for _, l := range f.Lines {
		width = max(width, runewidth.StringWidth(l))
	}
	edge := strings.Repeat("─", width)
	if _, err := fmt.Fprintf(w, "┌%s┐\n", edge); err != nil {
		return err
	}
	for _, l := range f.Lines {
		if _, err := fmt.Fprintf(w, "│%s│\n", l); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "└%s┘\n", edge)
	return err
}
