package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/strata/cli/reader"
	"github.com/pithecene-io/strata/cli/render"
)

// listWarningThreshold is the number of items above which we warn about long sessions.
const listWarningThreshold = 100

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ListCommand returns the list command with subcommands.
// List returns thin slices (not inspect-level detail).
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List session artifacts (steps)",
		Subcommands: []*cli.Command{
			listStepsCommand(),
		},
	}
}

func listStepsCommand() *cli.Command {
	return &cli.Command{
		Name:   "steps",
		Usage:  "List steps with persisted artifacts",
		Flags:  append(ReadOnlyFlags(), SessionFlags()...),
		Action: listStepsAction,
	}
}

func listStepsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	// TUI not supported for list commands
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for list commands", 1)
	}

	cfg, err := resolveSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	results, err := reader.ListSteps(cfg.Dir, cfg.AgentID)
	if err != nil {
		return fmt.Errorf("failed to list steps: %w", err)
	}

	// Warn on very long sessions (TTY only to avoid noise in pipelines)
	if len(results) > listWarningThreshold && isStderrTTY() {
		fmt.Fprintf(os.Stderr, "Warning: returning %d steps.\n\n", len(results))
	}

	return r.Render(results)
}
