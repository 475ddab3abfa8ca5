// Package cmd provides CLI commands for the strata binary.
package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/strata/cli/config"
)

// Shared flags for read-only commands.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for select read-only commands (inspect).
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (inspect only)",
	}
)

// ReadOnlyFlags returns the shared flags for all read-only commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// TUIReadOnlyFlags returns flags for commands that support TUI mode.
// This is an alias for ReadOnlyFlags, kept for documentation clarity.
func TUIReadOnlyFlags() []cli.Flag {
	return ReadOnlyFlags()
}

// SessionFlags returns the flags identifying an agent session on disk.
// Every command that touches a session directory takes these.
func SessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Session directory holding transcripts and screenshots",
		},
		&cli.StringFlag{
			Name:    "agent-id",
			Aliases: []string{"a"},
			Usage:   "Agent identifier for artifact filenames",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to YAML config file",
		},
	}
}

// resolveSession loads the optional config file and applies flag overrides.
// Flags always win over config file values.
func resolveSession(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}

	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if dir := c.String("dir"); dir != "" {
		cfg.Dir = dir
	}
	if agentID := c.String("agent-id"); agentID != "" {
		cfg.AgentID = agentID
	}

	if cfg.Dir == "" {
		return nil, fmt.Errorf("session directory required (--dir or config file)")
	}
	if cfg.AgentID == "" {
		return nil, fmt.Errorf("agent id required (--agent-id or config file)")
	}

	return cfg, nil
}
