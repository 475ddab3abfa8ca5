// Package artifacts persists per-step agent session artifacts to local disk.
//
// For each step of an agent loop the writer lands up to two files under a
// target directory: a conversation transcript (text) and a screenshot (PNG),
// named deterministically from the agent ID and step number. A regenerable
// index over saved screenshots can be rebuilt at any time.
//
// Failure handling is two-tiered. Transcript directory creation and
// transcript writes are fatal and propagate to the caller. Screenshot saves
// and index rebuilds are best-effort: errors are warn-logged and swallowed so
// that a failed artifact never aborts the surrounding step loop.
package artifacts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"

	"github.com/pithecene-io/strata/log"
	"github.com/pithecene-io/strata/metrics"
	"github.com/pithecene-io/strata/mirror"
	"github.com/pithecene-io/strata/types"
)

// ScreenshotsDirName is the subdirectory under the target directory that
// holds screenshot files and the index.
const ScreenshotsDirName = "screenshots"

// indexFilename is the screenshot index file within the screenshots dir.
const indexFilename = "index.md"

// ScreenshotFilename returns the deterministic screenshot filename for a
// step. Distinct steps and distinct agent IDs never collide.
func ScreenshotFilename(agentID string, step int) string {
	return fmt.Sprintf("screenshot_%s_%d.png", agentID, step)
}

// ConversationFilename returns the deterministic transcript filename for a
// step.
func ConversationFilename(agentID string, step int) string {
	return fmt.Sprintf("conversation_%s_%d.txt", agentID, step)
}

// Config holds Writer construction parameters.
type Config struct {
	// Dir is the base directory artifacts are written under (required).
	Dir string
	// AgentID is the session identifier embedded verbatim in filenames
	// (required). The caller must supply a filesystem-safe value.
	AgentID string
	// Logger receives warn/debug persistence events. Nil discards them.
	Logger *log.Logger
	// Metrics counts persistence outcomes. Nil-safe.
	Metrics *metrics.Collector
	// Mirror receives a best-effort copy of every file written.
	// Nil disables mirroring.
	Mirror mirror.Mirror
}

// Writer persists per-step artifacts for one agent session.
//
// A Writer holds no mutable state beyond its identity; every call recomputes
// paths fresh. It assumes at most one in-flight call per (Dir, AgentID) pair:
// concurrent calls for the same step race with last-write-wins semantics.
type Writer struct {
	dir            string
	agentID        string
	screenshotsDir string
	logger         *log.Logger
	metrics        *metrics.Collector
	mirror         mirror.Mirror
}

// NewWriter creates a Writer for one agent session.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.Dir == "" {
		return nil, errors.New("artifacts: dir is required")
	}
	if cfg.AgentID == "" {
		return nil, errors.New("artifacts: agent id is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}

	return &Writer{
		dir:            cfg.Dir,
		agentID:        cfg.AgentID,
		screenshotsDir: filepath.Join(cfg.Dir, ScreenshotsDirName),
		logger:         logger,
		metrics:        cfg.Metrics,
		mirror:         cfg.Mirror,
	}, nil
}

// AgentID returns the session identifier the writer was built with.
func (w *Writer) AgentID() string { return w.agentID }

// Dir returns the target directory the writer was built with.
func (w *Writer) Dir() string { return w.dir }

// SaveStepScreenshot decodes the base64 screenshot payload from state and
// writes it to screenshots/screenshot_{agentID}_{step}.png, overwriting any
// existing file. It returns the written path and true on success.
//
// A missing payload returns ("", false) without logging a warning: steps
// without screenshots are expected. All errors (directory creation, base64
// decode, write) are warn-logged and converted to ("", false); this method
// never propagates an error.
func (w *Writer) SaveStepScreenshot(state *types.BrowserStateSummary, step int) (string, bool) {
	if state == nil || state.Screenshot == "" {
		w.logger.Debug("no screenshot for step", map[string]any{"step": step})
		w.metrics.IncScreenshotSkipped()
		return "", false
	}

	if err := os.MkdirAll(w.screenshotsDir, 0o755); err != nil {
		w.warnScreenshot(step, err)
		return "", false
	}

	data, err := base64.StdEncoding.DecodeString(state.Screenshot)
	if err != nil {
		w.warnScreenshot(step, err)
		return "", false
	}

	name := ScreenshotFilename(w.agentID, step)
	path := filepath.Join(w.screenshotsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.warnScreenshot(step, err)
		return "", false
	}

	w.logger.Debug("screenshot saved", map[string]any{"step": step, "path": path})
	w.metrics.IncScreenshotSaved()
	w.mirrorFile(ScreenshotsDirName+"/"+name, data)
	return path, true
}

func (w *Writer) warnScreenshot(step int, err error) {
	w.logger.Warn("screenshot save failed", map[string]any{
		"step":  step,
		"error": err.Error(),
	})
	w.metrics.IncScreenshotFailure()
}

// SaveConversationWithScreenshots writes the transcript for a step and then
// saves its screenshot.
//
// The transcript lands at {dir}/conversation_{agentID}_{step}.txt, encoded
// with enc when non-nil (UTF-8 otherwise), overwriting any existing file.
// Directory creation and transcript write failures are fatal and propagate.
// The nested screenshot save is failure-isolated: its path is returned empty
// when the step carried no screenshot or saving failed.
func (w *Writer) SaveConversationWithScreenshots(
	msgs []types.Message,
	resp *types.AgentOutput,
	state *types.BrowserStateSummary,
	step int,
	enc encoding.Encoding,
) (string, string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create conversation dir %s: %w", w.dir, err)
	}

	text, err := FormatTranscript(w.agentID, msgs, resp, step)
	if err != nil {
		return "", "", fmt.Errorf("format transcript for step %d: %w", step, err)
	}

	data := []byte(text)
	if enc != nil {
		data, err = enc.NewEncoder().Bytes(data)
		if err != nil {
			return "", "", fmt.Errorf("encode transcript for step %d: %w", step, err)
		}
	}

	name := ConversationFilename(w.agentID, step)
	convPath := filepath.Join(w.dir, name)
	if err := os.WriteFile(convPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write transcript %s: %w", convPath, err)
	}

	w.metrics.IncTranscriptSaved()
	w.mirrorFile(name, data)

	shotPath, _ := w.SaveStepScreenshot(state, step)
	return convPath, shotPath, nil
}

// mirrorFile pushes a best-effort copy of a written artifact to the mirror.
// Mirror failures are warn-logged and counted; the local file is already the
// source of truth.
func (w *Writer) mirrorFile(key string, data []byte) {
	if w.mirror == nil {
		return
	}
	if err := w.mirror.Put(context.Background(), key, data); err != nil {
		w.logger.Warn("mirror write failed", map[string]any{
			"file":  key,
			"error": err.Error(),
		})
		w.metrics.IncMirrorFailure()
		return
	}
	w.metrics.IncMirrorSuccess()
}

// SaveConversationWithScreenshots is a stateless convenience for callers
// that do not hold a Writer across calls. It constructs a Writer for
// (dir, agentID) and saves the step immediately.
func SaveConversationWithScreenshots(
	dir, agentID string,
	msgs []types.Message,
	resp *types.AgentOutput,
	state *types.BrowserStateSummary,
	step int,
	enc encoding.Encoding,
) (string, string, error) {
	w, err := NewWriter(Config{Dir: dir, AgentID: agentID})
	if err != nil {
		return "", "", err
	}
	return w.SaveConversationWithScreenshots(msgs, resp, state, step, enc)
}
