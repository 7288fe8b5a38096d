package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bjaus/fixfmt"
	"github.com/bjaus/fixfmt/internal/report"
	"github.com/urfave/cli/v2"
)

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "Render a template into a fixed-capacity buffer",
	ArgsUsage: "TEMPLATE [ARGS...]",
	Description: `Renders TEMPLATE with brace placeholders ({}, {:.2}, {0:>8}) or, with
--printf, fmt verbs (%s, %.2f). ARGS are passed as integers, floats or
booleans when they parse as one, otherwise as strings.

An overflowing result is printed truncated and the command exits 1. With
--must an overflow aborts the process instead.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "capacity",
			Aliases: []string{"c"},
			Usage:   "buffer capacity in `BYTES`",
			Value:   64,
		},
		&cli.StringFlag{
			Name:    "truncate",
			Aliases: []string{"t"},
			Usage:   "overflow `POLICY` (runes, bytes, none)",
			Value:   fixfmt.TruncateRunes.String(),
		},
		&cli.BoolFlag{
			Name:  "printf",
			Usage: "use fmt verbs instead of brace placeholders",
		},
		&cli.BoolFlag{
			Name:  "must",
			Usage: "abort on overflow instead of reporting it",
		},
	},
	Action: renderCmd,
}

// Result is the outcome of one render.
type Result struct {
	Template string `json:"template" yaml:"template"`
	Capacity int    `json:"capacity" yaml:"capacity"`
	Len      int    `json:"len" yaml:"len"`
	Text     string `json:"text" yaml:"text"`
	Overflow bool   `json:"overflow" yaml:"overflow"`
	Dropped  int    `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

func (r Result) Header() []string {
	return []string{"Template", "Capacity", "Len", "Overflow", "Text"}
}

func (r Result) Row() []string {
	return []string{r.Template, strconv.Itoa(r.Capacity), strconv.Itoa(r.Len), strconv.FormatBool(r.Overflow), r.Text}
}

func (r Result) String() string { return r.Text }

func renderCmd(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Error: missing TEMPLATE argument.", 2)
	}
	format, err := outputFormat(c)
	if err != nil {
		return err
	}
	policy, err := fixfmt.ParseTruncation(c.String("truncate"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	capacity := c.Int("capacity")
	if capacity < 0 {
		return cli.Exit("Error: --capacity must not be negative.", 2)
	}
	tmpl := c.Args().First()
	args := parseArgs(c.Args().Tail())
	log := loggerFrom(c)

	var b *fixfmt.Buffer
	if c.Bool("must") {
		if c.Bool("printf") {
			b = fixfmt.Must(capacity, tmpl, args...)
		} else {
			b = fixfmt.MustInterpolate(capacity, tmpl, args...)
		}
	} else {
		b = fixfmt.New(capacity)
		b.SetTruncation(policy)
		if c.Bool("printf") {
			err = b.Format(tmpl, args...)
		} else {
			err = b.Interpolate(tmpl, args...)
		}
	}

	res := Result{Template: tmpl, Capacity: b.Cap(), Len: b.Len(), Text: b.String(), Overflow: b.Overflowed()}
	var oe *fixfmt.OverflowError
	switch {
	case errors.As(err, &oe):
		res.Dropped = oe.Dropped
		log.Warn().
			Int("capacity", oe.Capacity).
			Int("kept", oe.Written).
			Int("dropped", oe.Dropped).
			Str("policy", policy.String()).
			Msg("output truncated")
	case err != nil:
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	log.Debug().Int("len", res.Len).Msg("rendered")

	if err := report.Write(c.App.Writer, format, res); err != nil {
		return err
	}
	if res.Overflow {
		return cli.Exit("", 1)
	}
	return nil
}

// parseArgs types each argument as the first of int, float, bool or
// string it parses as.
func parseArgs(ss []string) []any {
	args := make([]any, len(ss))
	for i, s := range ss {
		args[i] = parseArg(s)
	}
	return args
}

func parseArg(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
