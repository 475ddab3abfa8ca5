// Package mirror provides best-effort remote copies of persisted artifacts.
//
// A Mirror receives every file the artifact writer lands on local disk. The
// local file is always the source of truth; mirror failures are reported to
// the caller for warn-logging and counting but never abort persistence.
package mirror

import (
	"context"
	"strings"
	"sync"
)

// Mirror receives a copy of each artifact file after a successful local
// write. The key is the artifact path relative to the session target
// directory, always slash-separated (e.g. "screenshots/screenshot_A1_3.png").
type Mirror interface {
	// Put uploads a single artifact. The key must not contain path
	// separators other than "/" and must not contain "..".
	Put(ctx context.Context, key string, data []byte) error
}

// contentTypeFor maps an artifact key to its MIME type.
// Strata writes exactly three artifact kinds.
func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".md"):
		return "text/markdown"
	default:
		return "text/plain"
	}
}

// Stub records Put calls for testing.
type Stub struct {
	mu   sync.Mutex
	Puts []StubPut
	// Err, when non-nil, is returned by every Put.
	Err error
}

// StubPut is a recorded mirror write for testing.
type StubPut struct {
	Key  string
	Data []byte
}

// NewStub creates a new stub mirror.
func NewStub() *Stub {
	return &Stub{}
}

// Put implements Mirror by recording the call.
func (s *Stub) Put(_ context.Context, key string, data []byte) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Puts = append(s.Puts, StubPut{Key: key, Data: data})
	return nil
}

// Keys returns the recorded keys in write order.
func (s *Stub) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, len(s.Puts))
	for i, p := range s.Puts {
		keys[i] = p.Key
	}
	return keys
}

// Verify Stub implements Mirror.
var _ Mirror = (*Stub)(nil)
