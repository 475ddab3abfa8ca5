package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/strata/cli/reader"
	"github.com/pithecene-io/strata/cli/render"
)

// InspectCommand returns the inspect command with subcommands.
// Inspect returns a deep view of a single entity.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a single step's artifacts",
		Subcommands: []*cli.Command{
			inspectStepCommand(),
		},
	}
}

func inspectStepCommand() *cli.Command {
	return &cli.Command{
		Name:      "step",
		Usage:     "Inspect a step by number",
		ArgsUsage: "<step>",
		Flags:     append(TUIReadOnlyFlags(), SessionFlags()...),
		Action:    inspectStepAction,
	}
}

func inspectStepAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("step number required", 1)
	}
	step, err := strconv.Atoi(c.Args().First())
	if err != nil || step < 0 {
		return cli.Exit(fmt.Sprintf("invalid step number: %s", c.Args().First()), 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := resolveSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	resp, err := reader.InspectStep(cfg.Dir, cfg.AgentID, step)
	if err != nil {
		return fmt.Errorf("failed to inspect step %d: %w", step, err)
	}

	// Handle TUI mode
	if c.Bool("tui") {
		return r.RenderTUI("inspect_step", resp)
	}

	return r.Render(resp)
}
