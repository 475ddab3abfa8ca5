// Package types defines core domain types for strata artifact persistence.
//
//nolint:revive // types is a common Go package naming convention
package types

// Session identifies one agent session against a target directory.
// It is immutable for the lifetime of a writer and determines all
// artifact paths.
type Session struct {
	// AgentID is the opaque session identifier embedded verbatim in
	// filenames. The caller must supply a filesystem-safe value; strata
	// performs no sanitization.
	AgentID string
	// Dir is the base directory all artifact paths derive from.
	Dir string
}

// Role labels the author of a conversation message.
type Role string

// Conversation roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role+text pair in the conversation sent to the model.
// Strata treats messages as opaque input; it owns neither their order
// nor their content.
type Message struct {
	Role Role   `msgpack:"role" json:"role"`
	Text string `msgpack:"text" json:"text"`
}

// BrowserStateSummary is the browser state captured for a step.
type BrowserStateSummary struct {
	// URL is the page URL at capture time.
	URL string `msgpack:"url,omitempty" json:"url,omitempty"`
	// Title is the page title at capture time.
	Title string `msgpack:"title,omitempty" json:"title,omitempty"`
	// Screenshot is the base64-encoded PNG for this step.
	// Empty means the browser produced no screenshot, which is an
	// expected, common case rather than an error.
	Screenshot string `msgpack:"screenshot,omitempty" json:"screenshot,omitempty"`
}
