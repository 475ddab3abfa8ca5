// Package metrics provides per-session artifact persistence counters.
//
// The Collector accumulates counters during a single agent session. It is a
// leaf package with no internal dependencies. All increment methods are
// nil-receiver safe so that callers without a collector need no guards.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all session counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Screenshots
	ScreenshotsSaved   int64 `json:"screenshots_saved"`
	ScreenshotsSkipped int64 `json:"screenshots_skipped"`
	ScreenshotFailures int64 `json:"screenshot_failures"`

	// Transcripts
	TranscriptsSaved int64 `json:"transcripts_saved"`

	// Index rebuilds
	IndexBuilds   int64 `json:"index_builds"`
	IndexSkips    int64 `json:"index_skips"`
	IndexFailures int64 `json:"index_failures"`

	// Mirroring
	MirrorSuccess int64 `json:"mirror_success"`
	MirrorFailure int64 `json:"mirror_failure"`

	// Artifact feed
	FramesDecoded     int64 `json:"frames_decoded"`
	FrameDecodeErrors int64 `json:"frame_decode_errors"`

	// Dimensions (informational, set at construction)
	AgentID       string `json:"agent_id"`
	Dir           string `json:"dir"`
	MirrorBackend string `json:"mirror_backend"`
}

// Collector accumulates counters during a single session.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	screenshotsSaved   int64
	screenshotsSkipped int64
	screenshotFailures int64

	transcriptsSaved int64

	indexBuilds   int64
	indexSkips    int64
	indexFailures int64

	mirrorSuccess int64
	mirrorFailure int64

	framesDecoded     int64
	frameDecodeErrors int64

	agentID       string
	dir           string
	mirrorBackend string
}

// NewCollector creates a Collector with dimension labels.
// mirrorBackend is "none" when mirroring is disabled.
func NewCollector(agentID, dir, mirrorBackend string) *Collector {
	return &Collector{
		agentID:       agentID,
		dir:           dir,
		mirrorBackend: mirrorBackend,
	}
}

// IncScreenshotSaved records a successful screenshot write.
func (c *Collector) IncScreenshotSaved() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.screenshotsSaved++
	c.mu.Unlock()
}

// IncScreenshotSkipped records a step that carried no screenshot payload.
func (c *Collector) IncScreenshotSkipped() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.screenshotsSkipped++
	c.mu.Unlock()
}

// IncScreenshotFailure records a swallowed screenshot save error.
func (c *Collector) IncScreenshotFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.screenshotFailures++
	c.mu.Unlock()
}

// IncTranscriptSaved records a successful transcript write.
func (c *Collector) IncTranscriptSaved() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.transcriptsSaved++
	c.mu.Unlock()
}

// IncIndexBuilt records a successful index rebuild.
func (c *Collector) IncIndexBuilt() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.indexBuilds++
	c.mu.Unlock()
}

// IncIndexSkipped records an index rebuild that found nothing to write.
func (c *Collector) IncIndexSkipped() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.indexSkips++
	c.mu.Unlock()
}

// IncIndexFailure records a swallowed index rebuild error.
func (c *Collector) IncIndexFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.indexFailures++
	c.mu.Unlock()
}

// IncMirrorSuccess records a successful mirror write.
func (c *Collector) IncMirrorSuccess() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.mirrorSuccess++
	c.mu.Unlock()
}

// IncMirrorFailure records a swallowed mirror write error.
func (c *Collector) IncMirrorFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.mirrorFailure++
	c.mu.Unlock()
}

// IncFrameDecoded records a successfully decoded feed frame.
func (c *Collector) IncFrameDecoded() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesDecoded++
	c.mu.Unlock()
}

// IncFrameDecodeError records a feed frame that failed to decode.
func (c *Collector) IncFrameDecodeError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.frameDecodeErrors++
	c.mu.Unlock()
}

// Snapshot returns an immutable view of the current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		ScreenshotsSaved:   c.screenshotsSaved,
		ScreenshotsSkipped: c.screenshotsSkipped,
		ScreenshotFailures: c.screenshotFailures,

		TranscriptsSaved: c.transcriptsSaved,

		IndexBuilds:   c.indexBuilds,
		IndexSkips:    c.indexSkips,
		IndexFailures: c.indexFailures,

		MirrorSuccess: c.mirrorSuccess,
		MirrorFailure: c.mirrorFailure,

		FramesDecoded:     c.framesDecoded,
		FrameDecodeErrors: c.frameDecodeErrors,

		AgentID:       c.agentID,
		Dir:           c.dir,
		MirrorBackend: c.mirrorBackend,
	}
}
