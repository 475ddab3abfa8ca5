// Package reader provides read-only views over a session directory for the
// CLI. It never writes; all commands built on it are safe against live
// sessions (modulo torn reads of a file mid-write).
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pithecene-io/strata/artifacts"
)

// StepSummary is a thin per-step slice for list output.
type StepSummary struct {
	Step       int    `json:"step"`
	Transcript string `json:"transcript,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
}

// InspectStepResponse is the deep view of a single step.
type InspectStepResponse struct {
	AgentID        string `json:"agent_id"`
	Step           int    `json:"step"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
}

// ListSteps scans a session directory and returns one summary per step that
// has at least one artifact, ordered by step number ascending.
//
// Files whose embedded step number does not parse are ignored: the directory
// may hold foreign files, and listing is a read-only convenience.
func ListSteps(dir, agentID string) ([]StepSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read session dir %s: %w", dir, err)
	}

	steps := make(map[int]*StepSummary)
	get := func(step int) *StepSummary {
		s, ok := steps[step]
		if !ok {
			s = &StepSummary{Step: step}
			steps[step] = s
		}
		return s
	}

	convPrefix := fmt.Sprintf("conversation_%s_", agentID)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, convPrefix) || !strings.HasSuffix(name, ".txt") {
			continue
		}
		step, ok := artifacts.StepFromFilename(name)
		if !ok {
			continue
		}
		get(step).Transcript = name
	}

	shotPrefix := fmt.Sprintf("screenshot_%s_", agentID)
	shotEntries, err := os.ReadDir(filepath.Join(dir, artifacts.ScreenshotsDirName))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read screenshots dir: %w", err)
	}
	for _, e := range shotEntries {
		name := e.Name()
		if !strings.HasPrefix(name, shotPrefix) || !strings.HasSuffix(name, ".png") {
			continue
		}
		step, ok := artifacts.StepFromFilename(name)
		if !ok {
			continue
		}
		get(step).Screenshot = name
	}

	out := make([]StepSummary, 0, len(steps))
	for _, s := range steps {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out, nil
}

// InspectStep returns the deep view of one step, including the transcript
// text when present. A step with neither artifact is an error.
func InspectStep(dir, agentID string, step int) (*InspectStepResponse, error) {
	resp := &InspectStepResponse{AgentID: agentID, Step: step}

	convPath := filepath.Join(dir, artifacts.ConversationFilename(agentID, step))
	data, err := os.ReadFile(convPath)
	switch {
	case err == nil:
		resp.TranscriptPath = convPath
		resp.Transcript = string(data)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read transcript %s: %w", convPath, err)
	}

	shotPath := filepath.Join(dir, artifacts.ScreenshotsDirName, artifacts.ScreenshotFilename(agentID, step))
	if _, err := os.Stat(shotPath); err == nil {
		resp.ScreenshotPath = shotPath
	}

	if resp.TranscriptPath == "" && resp.ScreenshotPath == "" {
		return nil, fmt.Errorf("no artifacts for agent %s step %d in %s", agentID, step, dir)
	}
	return resp, nil
}
