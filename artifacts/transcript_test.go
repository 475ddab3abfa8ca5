package artifacts

import (
	"strings"
	"testing"

	"github.com/pithecene-io/strata/types"
)

func strptr(s string) *string { return &s }

func TestFormatTranscript_ExactLayout(t *testing.T) {
	msgs := []types.Message{
		{Role: types.RoleUser, Text: "hi"},
		{Role: types.RoleAssistant, Text: "ok"},
	}
	resp := &types.AgentOutput{Action: strptr("click")}

	got, err := FormatTranscript("A1", msgs, resp, 3)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}

	want := strings.Join([]string{
		"SCREENSHOT: screenshots/screenshot_A1_3.png",
		"",
		" user ",
		"hi",
		"",
		" assistant ",
		"ok",
		"",
		" RESPONSE",
		"{\n  \"action\": \"click\"\n}",
	}, "\n")

	if got != want {
		t.Errorf("transcript mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTranscript_NoTrailingNewline(t *testing.T) {
	got, err := FormatTranscript("A1", nil, &types.AgentOutput{}, 0)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("transcript has trailing newline: %q", got)
	}
}

func TestFormatTranscript_ScreenshotRefIsPredicted(t *testing.T) {
	// The reference line is written even when no screenshot exists.
	got, err := FormatTranscript("A1", nil, &types.AgentOutput{}, 12)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}
	if !strings.HasPrefix(got, "SCREENSHOT: screenshots/screenshot_A1_12.png\n") {
		t.Errorf("missing predicted screenshot reference:\n%s", got)
	}
}

func TestFormatTranscript_OmitsUnsetResponseFields(t *testing.T) {
	resp := &types.AgentOutput{
		NextGoal: strptr("open settings"),
		Action:   strptr("navigate"),
	}

	got, err := FormatTranscript("A1", nil, resp, 1)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}

	if strings.Contains(got, "thinking") || strings.Contains(got, "memory") {
		t.Errorf("unset fields present in output:\n%s", got)
	}
	if !strings.Contains(got, "\"next_goal\": \"open settings\"") {
		t.Errorf("set field missing from output:\n%s", got)
	}
}

func TestFormatTranscript_NilResponse(t *testing.T) {
	got, err := FormatTranscript("A1", nil, nil, 0)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}
	if !strings.HasSuffix(got, " RESPONSE\n{}") {
		t.Errorf("nil response should render as {}:\n%s", got)
	}
}

func TestFormatTranscript_EmptyMessages(t *testing.T) {
	got, err := FormatTranscript("A1", nil, &types.AgentOutput{}, 0)
	if err != nil {
		t.Fatalf("FormatTranscript: %v", err)
	}

	want := strings.Join([]string{
		"SCREENSHOT: screenshots/screenshot_A1_0.png",
		"",
		" RESPONSE",
		"{}",
	}, "\n")
	if got != want {
		t.Errorf("transcript mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
