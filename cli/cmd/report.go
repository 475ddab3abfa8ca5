package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pithecene-io/strata/cli/config"
	"github.com/pithecene-io/strata/metrics"
)

// SessionReport is the structured JSON report written by ingest --report.
type SessionReport struct {
	AgentID    string `json:"agent_id"`
	Dir        string `json:"dir"`
	Steps      int    `json:"steps"`
	DurationMs int64  `json:"duration_ms"`

	// Clean is true when the stream ended with an explicit session_end frame.
	Clean bool `json:"clean"`

	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"`

	Metrics *metrics.Snapshot `json:"metrics"`
}

// buildSessionReport composes a SessionReport from an ingest result and
// the collector's snapshot.
func buildSessionReport(cfg *config.Config, collector *metrics.Collector, result ingestResult, duration time.Duration) *SessionReport {
	snap := collector.Snapshot()
	report := &SessionReport{
		AgentID:    cfg.AgentID,
		Dir:        cfg.Dir,
		Steps:      result.steps,
		DurationMs: duration.Milliseconds(),
		Clean:      result.clean,
		ExitCode:   result.exitCode,
		Metrics:    &snap,
	}
	if result.err != nil {
		report.Error = result.err.Error()
	}
	return report
}

// writeSessionReport writes the report as JSON to the specified path.
// If path is "-", writes to stderr.
func writeSessionReport(report *SessionReport, path string) error {
	if path == "" {
		return errors.New("report path must not be empty")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		if _, err := os.Stderr.Write(data); err != nil {
			return fmt.Errorf("failed to write report to stderr: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

// writeSessionReportTo writes report JSON to any writer (for testing).
func writeSessionReportTo(report *SessionReport, w io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
