package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CreateScreenshotIndex rebuilds screenshots/index.md from the current
// contents of the screenshots subdirectory. The index is always rebuilt in
// full, never incrementally patched.
//
// Best-effort: a missing subdirectory or an empty selection returns silently
// (a stale index from a differently-scoped run is left untouched), and all
// errors are warn-logged and swallowed. Filenames whose embedded step number
// does not parse are skipped with a warning rather than failing the rebuild;
// names written by this module always round-trip.
func (w *Writer) CreateScreenshotIndex() {
	entries, err := os.ReadDir(w.screenshotsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		w.warnIndex(err)
		return
	}

	prefix := fmt.Sprintf("screenshot_%s_", w.agentID)

	type shot struct {
		name string
		step int
	}
	var shots []shot
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".png") || !strings.HasPrefix(name, prefix) {
			continue
		}
		step, ok := StepFromFilename(name)
		if !ok {
			w.logger.Warn("skipping screenshot with malformed step number", map[string]any{
				"file": name,
			})
			continue
		}
		shots = append(shots, shot{name: name, step: step})
	}

	if len(shots) == 0 {
		w.metrics.IncIndexSkipped()
		return
	}

	// Numeric order, not lexicographic: step 10 sorts after step 2.
	sort.Slice(shots, func(i, j int) bool { return shots[i].step < shots[j].step })

	lines := make([]string, 0, 5+len(shots))
	lines = append(lines,
		"# Screenshot Index",
		"",
		"Agent ID: "+w.agentID,
		fmt.Sprintf("Total Screenshots: %d", len(shots)),
		"",
	)
	for _, s := range shots {
		lines = append(lines, fmt.Sprintf("Step %d: %s", s.step, s.name))
	}

	content := []byte(strings.Join(lines, "\n"))
	indexPath := filepath.Join(w.screenshotsDir, indexFilename)
	if err := os.WriteFile(indexPath, content, 0o644); err != nil {
		w.warnIndex(err)
		return
	}

	w.logger.Info("screenshot index created", map[string]any{
		"path":  indexPath,
		"count": len(shots),
	})
	w.metrics.IncIndexBuilt()
	w.mirrorFile(ScreenshotsDirName+"/"+indexFilename, content)
}

func (w *Writer) warnIndex(err error) {
	w.logger.Warn("screenshot index rebuild failed", map[string]any{
		"error": err.Error(),
	})
	w.metrics.IncIndexFailure()
}

// StepFromFilename extracts the step number embedded in an artifact
// filename: the integer between the last "_" and the first following ".".
// This is the single isolation point for the split-and-parse scheme; callers
// treat a false return as "not an artifact of this module".
func StepFromFilename(name string) (int, bool) {
	parts := strings.Split(name, "_")
	last := parts[len(parts)-1]
	seg, _, _ := strings.Cut(last, ".")

	step, err := strconv.Atoi(seg)
	if err != nil || step < 0 {
		return 0, false
	}
	return step, true
}
