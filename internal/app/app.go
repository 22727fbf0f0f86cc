// Package app wires the engine together for the standalone playback binary:
// sequence loading, the logging router and sinks, metrics, the controller,
// and the tick loop.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"tactics-board/engine/contract"
	"tactics-board/engine/internal/analytics"
	"tactics-board/engine/internal/anim"
	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/telemetry"
	"tactics-board/engine/logging"
	loggingsinks "tactics-board/engine/logging/sinks"
)

// Config carries the file and view selection from the command line.
type Config struct {
	SequencePath string
	View         string
	FrameSeconds float64
	Logger       telemetry.Logger
}

// Run plays a stored sequence to completion, logging playback events and
// printing the expected-score curve of the play's keyframes.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	view, ok := court.ParseViewMode(cfg.View)
	if !ok {
		return fmt.Errorf("unknown view mode %q", cfg.View)
	}

	frames, err := loadSequence(cfg.SequencePath)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("sequence needs at least 2 frames, got %d", len(frames))
	}

	logConfig := logging.DefaultConfig()
	sinks := []logging.NamedSink{
		{Name: "console", Sink: loggingsinks.NewConsole(os.Stdout)},
	}
	if logConfig.HasSink("json") && logConfig.JSON.FilePath != "" {
		file, err := os.OpenFile(logConfig.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open json log: %w", err)
		}
		defer file.Close()
		sinks = append(sinks, logging.NamedSink{Name: "json", Sink: loggingsinks.NewJSON(file, logConfig.JSON.FlushInterval)})
	}

	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := logging.NewMetrics()
	controller := anim.NewController(frames, view, cfg.FrameSeconds, router)

	loopCfg := anim.DefaultLoopConfig()
	if raw := os.Getenv("PLAYBACK_TICK_RATE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			loopCfg.TickRate = value
		} else {
			telemetryLogger.Printf("invalid PLAYBACK_TICK_RATE=%q: %v", raw, err)
		}
	}

	stop := make(chan struct{})
	loop := anim.NewLoop(controller, loopCfg, anim.Deps{
		Logger:    telemetryLogger,
		Metrics:   telemetry.WrapMetrics(metrics),
		Publisher: router,
	}, anim.LoopHooks{
		AfterTick: func(step anim.LoopStepResult) {
			if step.State == anim.StateIdle {
				select {
				case <-stop:
				default:
					close(stop)
				}
			}
		},
	})

	controller.Play(ctx)
	loop.Run(ctx, stop)

	printCurve(telemetryLogger, frames, view)

	snapshot := metrics.TelemetrySnapshot()
	telemetryLogger.Printf("playback complete ticks=%d overruns=%d",
		snapshot["playback.ticks"], snapshot["playback.tick_budget_overruns"])
	return nil
}

func loadSequence(path string) ([]board.FrameSet, error) {
	if path == "" {
		return nil, fmt.Errorf("no sequence file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}
	var doc contract.SequenceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sequence: %w", err)
	}
	frames, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}
	return frames, nil
}

// printCurve evaluates the expected-score model at each keyframe.
func printCurve(logger telemetry.Logger, frames []board.FrameSet, view court.ViewMode) {
	snapshots := make([]analytics.Snapshot, 0, len(frames))
	for _, fs := range frames {
		frame := fs.View(view)
		snap := analytics.Snapshot{Ball: frame.Ball.Pos}
		for _, p := range frame.Players {
			snap.Players = append(snap.Players, analytics.PlayerSample{
				ID: p.ID, Team: p.Team, Pos: p.Pos,
			})
		}
		snapshots = append(snapshots, snap)
	}
	curve := analytics.SmoothCurve(analytics.ExpectedScoreCurve(snapshots, view, nil), 3)
	for _, point := range curve {
		logger.Printf("epv frame=%d value=%.3f", point.Frame, point.EPV)
	}
}
