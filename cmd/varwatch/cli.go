package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/varwatch/varwatch/internal/analysis"
	"github.com/varwatch/varwatch/internal/config"
	"github.com/varwatch/varwatch/internal/errors"
	"github.com/varwatch/varwatch/internal/fasta"
	"github.com/varwatch/varwatch/internal/report"
	"github.com/varwatch/varwatch/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := &cli.App{
		Name:    "varwatch",
		Usage:   "Sequence comparison and variant risk triage",
		Version: Version,
		Commands: []*cli.Command{
			analyzeCmd(cfg),
			serveCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// analyzeCmd creates the analyze command.
func analyzeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Compare a sample sequence against a reference",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ref", Aliases: []string{"r"}, Required: true, Usage: "Reference sequence file, FASTA or raw (.gz ok, '-' for stdin)"},
			&cli.StringFlag{Name: "sample", Aliases: []string{"s"}, Required: true, Usage: "Sample sequence file, FASTA or raw (.gz ok, '-' for stdin)"},
			&cli.BoolFlag{Name: "json", Usage: "Output the full result as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
			&cli.IntFlag{Name: "max-chars", Usage: "Override the per-sequence size cap (0 = uncapped)"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("no-color") || !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}

			runCfg := *cfg
			if c.IsSet("max-chars") {
				runCfg.MaxSequenceChars = c.Int("max-chars")
			}

			ref, err := fasta.ReadFile(c.String("ref"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			sample, err := fasta.ReadFile(c.String("sample"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			spin := newSpinner(c.Bool("json"))
			if spin != nil {
				spin.Start()
			}
			result, err := analysis.Analyze(&runCfg, analysis.Input{
				Reference: ref,
				Sample:    sample,
			})
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(result)
			}

			report.Render(os.Stdout, result)
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the analysis web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: cfg.Bind, Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: cfg.Port, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// newSpinner returns a progress spinner when stderr is a terminal and the
// output is meant for humans, nil otherwise.
func newSpinner(jsonOutput bool) *spinner.Spinner {
	if jsonOutput || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " aligning sequences..."
	return s
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if vErr, ok := err.(*errors.VarwatchError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", vErr.Code, vErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
