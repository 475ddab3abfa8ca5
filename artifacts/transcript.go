package artifacts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pithecene-io/strata/types"
)

// FormatTranscript renders the transcript text for one step. It is a pure
// function of its inputs and performs no I/O.
//
// Layout: a SCREENSHOT reference line (the predicted path, written whether or
// not the screenshot ends up on disk), a blank line, then per message the
// role enclosed in single spaces, the text, and a blank line, then the
// " RESPONSE" marker followed by the response serialized as 2-space-indented
// JSON with unset fields omitted (a nil response renders as "{}"). Lines are joined with single newlines and
// no trailing newline is appended.
func FormatTranscript(agentID string, msgs []types.Message, resp *types.AgentOutput, step int) (string, error) {
	lines := make([]string, 0, 4+3*len(msgs))

	lines = append(lines,
		fmt.Sprintf("SCREENSHOT: %s/%s", ScreenshotsDirName, ScreenshotFilename(agentID, step)),
		"",
	)

	for _, m := range msgs {
		lines = append(lines,
			fmt.Sprintf(" %s ", m.Role),
			m.Text,
			"",
		)
	}

	lines = append(lines, " RESPONSE")

	if resp == nil {
		resp = &types.AgentOutput{}
	}
	body, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}
	lines = append(lines, string(body))

	return strings.Join(lines, "\n"), nil
}
