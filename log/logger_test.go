package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pithecene-io/strata/types"
)

func testSession() *types.Session {
	return &types.Session{AgentID: "A1", Dir: "/tmp/session"}
}

func TestLogger_SessionContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(testSession()).WithOutput(&buf)

	logger.Info("screenshot saved", map[string]any{"step": 3})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["agent_id"] != "A1" {
		t.Errorf("agent_id = %v, want A1", entry["agent_id"])
	}
	if entry["dir"] != "/tmp/session" {
		t.Errorf("dir = %v, want /tmp/session", entry["dir"])
	}
	if entry["message"] != "screenshot saved" {
		t.Errorf("message = %v, want screenshot saved", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLogger_WarnLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(testSession()).WithOutput(&buf)

	logger.Warn("screenshot save failed", map[string]any{"step": 1, "error": "bad payload"})

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("output missing warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "bad payload") {
		t.Errorf("output missing error field: %s", buf.String())
	}
}

func TestNop_DiscardsEntries(t *testing.T) {
	logger := Nop()
	// Must not panic and must accept all levels.
	logger.Debug("d", nil)
	logger.Info("i", nil)
	logger.Warn("w", nil)
	logger.Error("e", nil)
}

func TestSugaredLogger(t *testing.T) {
	var buf bytes.Buffer
	sugar := NewLogger(testSession()).WithOutput(&buf).Sugar()

	sugar.Infof("saved %d screenshots", 4)

	if !strings.Contains(buf.String(), "saved 4 screenshots") {
		t.Errorf("output missing formatted message: %s", buf.String())
	}
}
