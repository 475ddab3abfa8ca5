package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pithecene-io/strata/artifacts"
	"github.com/pithecene-io/strata/cli/config"
	"github.com/pithecene-io/strata/ipc"
	"github.com/pithecene-io/strata/log"
	"github.com/pithecene-io/strata/metrics"
	"github.com/pithecene-io/strata/types"
)

// encodeStream builds a frame stream from the given frames.
func encodeStream(t *testing.T, frames ...any) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	for _, f := range frames {
		data, err := ipc.EncodeFrame(f)
		if err != nil {
			t.Fatalf("encode frame: %v", err)
		}
		buf.Write(data)
	}
	return &buf
}

// newIngestWriter creates a writer into a fresh temp dir.
func newIngestWriter(t *testing.T, collector *metrics.Collector) (*artifacts.Writer, string) {
	t.Helper()

	dir := t.TempDir()
	w, err := artifacts.NewWriter(artifacts.Config{
		Dir:     dir,
		AgentID: "a1",
		Logger:  log.Nop(),
		Metrics: collector,
	})
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	return w, dir
}

func TestIngestLoop_CleanSession(t *testing.T) {
	reason := "task complete"
	stream := encodeStream(t,
		&types.StepFrame{
			Type:     types.StepFrameType,
			Step:     0,
			Messages: []types.Message{{Role: types.RoleUser, Text: "go"}},
			Response: &types.AgentOutput{},
			State: types.BrowserStateSummary{
				Screenshot: base64.StdEncoding.EncodeToString([]byte("png-bytes")),
			},
		},
		&types.SessionEndFrame{Type: types.SessionEndType, Reason: &reason},
	)

	collector := metrics.NewCollector("a1", "", "none")
	w, dir := newIngestWriter(t, collector)

	result := ingestLoop(stream, w, nil, log.Nop(), collector)

	if result.exitCode != exitSuccess {
		t.Fatalf("exitCode = %d, want %d (err: %v)", result.exitCode, exitSuccess, result.err)
	}
	if !result.clean {
		t.Error("expected clean session end")
	}
	if result.steps != 1 {
		t.Errorf("steps = %d, want 1", result.steps)
	}

	if _, err := os.Stat(filepath.Join(dir, "conversation_a1_0.txt")); err != nil {
		t.Errorf("transcript missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "screenshots", "screenshot_a1_0.png")); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}
}

func TestIngestLoop_EOFWithoutSessionEnd(t *testing.T) {
	stream := encodeStream(t,
		&types.StepFrame{
			Type:     types.StepFrameType,
			Step:     2,
			Messages: []types.Message{{Role: types.RoleUser, Text: "hi"}},
		},
	)

	collector := metrics.NewCollector("a1", "", "none")
	w, _ := newIngestWriter(t, collector)

	result := ingestLoop(stream, w, nil, log.Nop(), collector)

	if result.exitCode != exitSuccess {
		t.Fatalf("exitCode = %d, want %d", result.exitCode, exitSuccess)
	}
	if result.clean {
		t.Error("EOF without session_end should not be clean")
	}
	if result.steps != 1 {
		t.Errorf("steps = %d, want 1", result.steps)
	}
}

func TestIngestLoop_ScreenshotOnlyFrame(t *testing.T) {
	stream := encodeStream(t,
		&types.ScreenshotFrame{
			Type: types.ScreenshotFrameType,
			Step: 5,
			State: types.BrowserStateSummary{
				Screenshot: base64.StdEncoding.EncodeToString([]byte("capture")),
			},
		},
		&types.SessionEndFrame{Type: types.SessionEndType},
	)

	collector := metrics.NewCollector("a1", "", "none")
	w, dir := newIngestWriter(t, collector)

	result := ingestLoop(stream, w, nil, log.Nop(), collector)

	if result.exitCode != exitSuccess {
		t.Fatalf("exitCode = %d, want %d", result.exitCode, exitSuccess)
	}
	// Screenshot frames are not steps
	if result.steps != 0 {
		t.Errorf("steps = %d, want 0", result.steps)
	}
	if _, err := os.Stat(filepath.Join(dir, "screenshots", "screenshot_a1_5.png")); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}
}

func TestIngestLoop_TruncatedFrameIsFatal(t *testing.T) {
	stream := encodeStream(t,
		&types.StepFrame{Type: types.StepFrameType, Step: 0},
	)
	// Chop the last frame mid-payload
	full := stream.Bytes()
	truncated := bytes.NewBuffer(full[:len(full)-3])

	collector := metrics.NewCollector("a1", "", "none")
	w, _ := newIngestWriter(t, collector)

	result := ingestLoop(truncated, w, nil, log.Nop(), collector)

	if result.exitCode != exitStreamFailure {
		t.Fatalf("exitCode = %d, want %d", result.exitCode, exitStreamFailure)
	}
	if result.err == nil {
		t.Error("expected error for truncated frame")
	}
}

func TestIngestLoop_UnknownFrameTypeIsSkipped(t *testing.T) {
	stream := encodeStream(t,
		&struct {
			Type string `msgpack:"type"`
		}{Type: "heartbeat"},
		&types.SessionEndFrame{Type: types.SessionEndType},
	)

	collector := metrics.NewCollector("a1", "", "none")
	w, _ := newIngestWriter(t, collector)

	result := ingestLoop(stream, w, nil, log.Nop(), collector)

	if result.exitCode != exitSuccess {
		t.Fatalf("exitCode = %d, want %d (err: %v)", result.exitCode, exitSuccess, result.err)
	}
	if !result.clean {
		t.Error("expected clean session end after skipped frame")
	}

	snap := collector.Snapshot()
	if snap.FrameDecodeErrors != 1 {
		t.Errorf("FrameDecodeErrors = %d, want 1", snap.FrameDecodeErrors)
	}
}

func TestIngestLoop_PersistFailureIsFatal(t *testing.T) {
	stream := encodeStream(t,
		&types.StepFrame{Type: types.StepFrameType, Step: 0},
	)

	// Point the writer at a path occupied by a regular file so MkdirAll fails
	parent := t.TempDir()
	blocked := filepath.Join(parent, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	collector := metrics.NewCollector("a1", "", "none")
	w, err := artifacts.NewWriter(artifacts.Config{
		Dir:     blocked,
		AgentID: "a1",
		Logger:  log.Nop(),
		Metrics: collector,
	})
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	result := ingestLoop(stream, w, nil, log.Nop(), collector)

	if result.exitCode != exitPersistError {
		t.Fatalf("exitCode = %d, want %d", result.exitCode, exitPersistError)
	}
	if result.err == nil {
		t.Error("expected error for persistence failure")
	}
}

func TestBuildMirror_None(t *testing.T) {
	cfg := &config.Config{}

	m, err := buildMirror(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildMirror failed: %v", err)
	}
	if m != nil {
		t.Error("expected nil mirror for empty backend")
	}
}

func TestBuildMirror_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Mirror: config.MirrorConfig{Backend: "ftp"}}

	if _, err := buildMirror(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestWriteSessionReport(t *testing.T) {
	collector := metrics.NewCollector("a1", "/tmp/s", "none")
	collector.IncTranscriptSaved()

	report := buildSessionReport(
		&config.Config{Dir: "/tmp/s", AgentID: "a1"},
		collector,
		ingestResult{steps: 3, clean: true, exitCode: exitSuccess},
		1500*time.Millisecond,
	)

	var buf bytes.Buffer
	if err := writeSessionReportTo(report, &buf); err != nil {
		t.Fatalf("writeSessionReportTo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"agent_id": "a1"`, `"steps": 3`, `"duration_ms": 1500`, `"clean": true`, `"transcripts_saved": 1`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("report missing %s, got: %s", want, out)
		}
	}
}
