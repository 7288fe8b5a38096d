// Command fixfmt renders templates into fixed-capacity buffers and drives a
// simulated character display.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bjaus/fixfmt/internal/report"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const loggerKey = "logger"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fixfmt",
		Usage: "format text into fixed-capacity buffers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (trace, debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("output `FORMAT` %v", report.Formats()),
				Value:   string(report.Table),
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{renderCommand, panelCommand},
	}
}

func setupLogger(c *cli.Context) error {
	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	out := zerolog.ConsoleWriter{Out: c.App.ErrWriter, NoColor: true, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[loggerKey] = logger
	return nil
}

func loggerFrom(c *cli.Context) zerolog.Logger {
	if l, ok := c.App.Metadata[loggerKey].(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}

func outputFormat(c *cli.Context) (report.Format, error) {
	f, err := report.ParseFormat(c.String("output"))
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	return f, nil
}
