package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bjaus/fixfmt/internal/panel"
	"github.com/bjaus/fixfmt/internal/report"
	"github.com/urfave/cli/v2"
)

var panelCommand = &cli.Command{
	Name:      "panel",
	Usage:     "Render frames of a simulated character display",
	UsageText: "fixfmt panel --config FILE [--frames N] [--interval D]",
	Description: `Loads a YAML display description and renders its lines frame by frame.
Arguments "$counter" and "$frame" are replaced by the frame counter and
frame number. Use "-" as FILE to read the config from stdin.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"f"},
			Usage:    "display config `FILE`",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "frames",
			Aliases: []string{"n"},
			Usage:   "number of frames `N`",
			Value:   1,
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "delay between frames",
		},
	},
	Action: panelCmd,
}

func panelCmd(c *cli.Context) error {
	format, err := outputFormat(c)
	if err != nil {
		return err
	}
	frames := c.Int("frames")
	if frames < 0 {
		return cli.Exit("Error: --frames must not be negative.", 2)
	}
	cfg, err := loadPanelConfig(c.String("config"), c.App.Reader)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	log := loggerFrom(c)
	p, err := panel.New(cfg, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	log.Debug().Int("cols", cfg.Cols).Int("rows", cfg.Rows).Int("capacity", cfg.Capacity).Msg("panel ready")

	interval := c.Duration("interval")
	for n := range frames {
		if n > 0 && interval > 0 {
			select {
			case <-c.Context.Done():
				return c.Context.Err()
			case <-time.After(interval):
			}
		}
		f, err := p.Render(n)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: frame %d: %v", n, err), 1)
		}
		if format == report.Table {
			err = f.Draw(c.App.Writer)
		} else {
			err = report.Write(c.App.Writer, format, f)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func loadPanelConfig(path string, stdin io.Reader) (panel.Config, error) {
	if path == "-" {
		return panel.LoadConfig(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return panel.Config{}, err
	}
	defer f.Close()
	return panel.LoadConfig(f)
}
