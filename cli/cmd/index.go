package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/strata/artifacts"
	"github.com/pithecene-io/strata/log"
	"github.com/pithecene-io/strata/metrics"
	"github.com/pithecene-io/strata/types"
)

// IndexCommand returns the index command.
// It rebuilds the screenshot index from whatever screenshots exist on disk.
func IndexCommand() *cli.Command {
	return &cli.Command{
		Name:   "index",
		Usage:  "Rebuild the screenshot index for a session directory",
		Flags:  SessionFlags(),
		Action: indexAction,
	}
}

func indexAction(c *cli.Context) error {
	cfg, err := resolveSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	session := &types.Session{AgentID: cfg.AgentID, Dir: cfg.Dir}
	logger := log.NewLogger(session)
	collector := metrics.NewCollector(cfg.AgentID, cfg.Dir, "none")

	writer, err := artifacts.NewWriter(artifacts.Config{
		Dir:     cfg.Dir,
		AgentID: cfg.AgentID,
		Logger:  logger,
		Metrics: collector,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create writer: %v", err), 1)
	}

	writer.CreateScreenshotIndex()
	return nil
}
