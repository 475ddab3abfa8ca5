package types

// Frame type discriminants for the artifact feed.
const (
	// StepFrameType identifies a full step frame (conversation + state).
	StepFrameType = "step"
	// ScreenshotFrameType identifies a screenshot-only frame.
	ScreenshotFrameType = "screenshot"
	// SessionEndType identifies the session end control frame.
	SessionEndType = "session_end"
)

// StepFrame carries one full step of the agent loop: the input messages,
// the model response, and the browser state. Persisting it produces a
// conversation transcript and, when a screenshot is present, a PNG.
type StepFrame struct {
	// Type is always "step" for step frames.
	Type string `msgpack:"type" json:"type"`
	// Step is the agent loop iteration, non-negative and increasing.
	Step int `msgpack:"step" json:"step"`
	// Messages is the ordered conversation input for this step.
	Messages []Message `msgpack:"messages" json:"messages"`
	// Response is the model output for this step.
	Response *AgentOutput `msgpack:"response,omitempty" json:"response,omitempty"`
	// State is the browser state captured for this step.
	State BrowserStateSummary `msgpack:"state" json:"state"`
}

// ScreenshotFrame carries a screenshot capture without conversation text.
// Agents emit these for steps that re-render the page without a model call.
type ScreenshotFrame struct {
	// Type is always "screenshot" for screenshot frames.
	Type string `msgpack:"type" json:"type"`
	// Step is the agent loop iteration the capture belongs to.
	Step int `msgpack:"step" json:"step"`
	// State is the browser state holding the screenshot payload.
	State BrowserStateSummary `msgpack:"state" json:"state"`
}

// SessionEndFrame signals that the agent loop has finished and no further
// frames follow. This is a control frame, not a step.
type SessionEndFrame struct {
	// Type is always "session_end" for session end frames.
	Type string `msgpack:"type" json:"type"`
	// Reason is an optional human-readable completion note.
	Reason *string `msgpack:"reason,omitempty" json:"reason,omitempty"`
}
