package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/encoding"

	"github.com/pithecene-io/strata/artifacts"
	"github.com/pithecene-io/strata/cli/config"
	"github.com/pithecene-io/strata/ipc"
	"github.com/pithecene-io/strata/log"
	"github.com/pithecene-io/strata/metrics"
	"github.com/pithecene-io/strata/mirror"
	"github.com/pithecene-io/strata/types"
)

// Exit codes for ingest.
const (
	exitSuccess       = 0
	exitPersistError  = 1
	exitStreamFailure = 2
)

// IngestCommand returns the ingest command.
// This is the only command that writes artifacts: it consumes a frame
// stream from stdin and persists per-step transcripts and screenshots.
func IngestCommand() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Consume a step frame stream from stdin and persist artifacts",
		Flags: append(SessionFlags(),
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Character encoding for transcript files (IANA name, default utf-8)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON session report to this path ('-' for stderr)",
			},
		),
		Action: ingestAction,
	}
}

func ingestAction(c *cli.Context) error {
	cfg, err := resolveSession(c)
	if err != nil {
		return cli.Exit(err.Error(), exitStreamFailure)
	}

	if enc := c.String("encoding"); enc != "" {
		cfg.Encoding = enc
	}

	session := &types.Session{AgentID: cfg.AgentID, Dir: cfg.Dir}
	logger := log.NewLogger(session)

	enc, err := config.ResolveEncoding(cfg.Encoding)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid encoding: %v", err), exitStreamFailure)
	}

	m, err := buildMirror(c.Context, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create mirror: %v", err), exitStreamFailure)
	}

	collector := metrics.NewCollector(cfg.AgentID, cfg.Dir, cfg.Mirror.Backend)

	writer, err := artifacts.NewWriter(artifacts.Config{
		Dir:     cfg.Dir,
		AgentID: cfg.AgentID,
		Logger:  logger,
		Metrics: collector,
		Mirror:  m,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create writer: %v", err), exitStreamFailure)
	}

	startTime := time.Now()
	result := ingestLoop(os.Stdin, writer, enc, logger, collector)

	// Index rebuild is best-effort, always attempted after the stream ends.
	writer.CreateScreenshotIndex()

	if path := c.String("report"); path != "" {
		report := buildSessionReport(cfg, collector, result, time.Since(startTime))
		if err := writeSessionReport(report, path); err != nil {
			logger.Warn("failed to write session report", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}
	}

	if result.exitCode != exitSuccess {
		return cli.Exit(result.err.Error(), result.exitCode)
	}
	return nil
}

// ingestResult summarizes a completed ingest loop.
type ingestResult struct {
	steps    int
	clean    bool
	exitCode int
	err      error
}

// ingestLoop drains the frame stream, persisting artifacts per frame.
//
// Error policy:
//   - transcript persistence failures are fatal (exit 1)
//   - fatal frame errors (partial or oversized frames) are fatal (exit 2)
//   - non-fatal decode errors are logged and the frame is skipped
//   - screenshot and index failures never stop the loop
func ingestLoop(r io.Reader, w *artifacts.Writer, enc encoding.Encoding, logger *log.Logger, collector *metrics.Collector) ingestResult {
	dec := ipc.NewFrameDecoder(r)
	steps := 0

	for {
		payload, err := dec.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Stream ended without a session_end frame. Still a success,
				// the agent process may have exited abruptly after its last step.
				logger.Debug("stream ended without session_end frame", nil)
				return ingestResult{steps: steps, clean: false, exitCode: exitSuccess}
			}
			collector.IncFrameDecodeError()
			if ipc.IsFatalFrameError(err) {
				return ingestResult{steps: steps, exitCode: exitStreamFailure, err: fmt.Errorf("frame stream failed: %w", err)}
			}
			logger.Warn("skipping unreadable frame", map[string]any{"error": err.Error()})
			continue
		}

		frame, err := ipc.DecodeFrame(payload)
		if err != nil {
			collector.IncFrameDecodeError()
			if ipc.IsFatalFrameError(err) {
				return ingestResult{steps: steps, exitCode: exitStreamFailure, err: fmt.Errorf("frame decode failed: %w", err)}
			}
			logger.Warn("skipping undecodable frame", map[string]any{"error": err.Error()})
			continue
		}
		collector.IncFrameDecoded()

		switch f := frame.(type) {
		case *types.StepFrame:
			_, _, err := w.SaveConversationWithScreenshots(f.Messages, f.Response, &f.State, f.Step, enc)
			if err != nil {
				return ingestResult{steps: steps, exitCode: exitPersistError, err: fmt.Errorf("step %d: %w", f.Step, err)}
			}
			steps++

		case *types.ScreenshotFrame:
			w.SaveStepScreenshot(&f.State, f.Step)

		case *types.SessionEndFrame:
			logger.Info("session ended", map[string]any{"reason": f.Reason, "steps": steps})
			return ingestResult{steps: steps, clean: true, exitCode: exitSuccess}
		}
	}
}

// buildMirror creates the configured mirror backend, or nil for "none".
func buildMirror(ctx context.Context, cfg *config.Config) (mirror.Mirror, error) {
	switch cfg.Mirror.Backend {
	case "", "none":
		return nil, nil
	case "s3":
		bucket, prefix := mirror.ParseS3Path(cfg.Mirror.Path)
		s3cfg := mirror.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       cfg.Mirror.Region,
			Endpoint:     cfg.Mirror.Endpoint,
			UsePathStyle: cfg.Mirror.S3PathStyle,
		}
		return mirror.NewS3(ctx, s3cfg)
	default:
		return nil, fmt.Errorf("unknown mirror backend: %s (must be none or s3)", cfg.Mirror.Backend)
	}
}
