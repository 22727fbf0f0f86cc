package anim

import (
	"context"
	"testing"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/geom"
	"tactics-board/engine/logging"
	"tactics-board/engine/logging/playback"
)

func sequence(n int) []board.FrameSet {
	frames := make([]board.FrameSet, 0, n)
	for i := 0; i < n; i++ {
		frame := board.Frame{
			Players: []board.Player{
				{ID: "p1", Team: board.TeamOffense, Pos: geom.Vec2{X: float64(100 * i), Y: 100}},
			},
			Ball: board.Ball{ID: "ball", Pos: geom.Vec2{X: float64(100 * i), Y: 100}, OwnerID: "p1"},
		}
		frames = append(frames, board.FrameSet{Full: frame, Half: frame})
	}
	return frames
}

type eventRecorder struct {
	events []logging.Event
}

func (r *eventRecorder) Publish(_ context.Context, event logging.Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []logging.EventType {
	out := make([]logging.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func TestPlayIsNoOpWithoutEnoughFrames(t *testing.T) {
	rec := &eventRecorder{}
	c := NewController(sequence(1), court.ViewFull, 0, rec)
	c.Play(context.Background())
	if c.State() != StateIdle {
		t.Fatalf("expected single-frame sequence to stay idle, got %s", c.State())
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no events, got %v", rec.types())
	}
}

func TestPlayPauseResume(t *testing.T) {
	ctx := context.Background()
	rec := &eventRecorder{}
	c := NewController(sequence(3), court.ViewFull, 1.0, rec)

	c.Play(ctx)
	if c.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", c.State())
	}

	c.Advance(ctx, 0.4)
	c.Pause(ctx)
	if c.State() != StatePaused {
		t.Fatalf("expected paused, got %s", c.State())
	}
	index, progress := c.FrameIndex(), c.Progress()

	// Paused advances recompute without moving time.
	c.Advance(ctx, 10)
	if c.FrameIndex() != index || c.Progress() != progress {
		t.Fatalf("expected paused position to hold, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}

	// Resume keeps the position instead of restarting.
	c.Play(ctx)
	if c.FrameIndex() != index || c.Progress() != progress {
		t.Fatalf("expected resume to keep position, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}
}

func TestAdvanceCrossesFrameBoundary(t *testing.T) {
	ctx := context.Background()
	rec := &eventRecorder{}
	c := NewController(sequence(3), court.ViewFull, 1.0, rec)

	c.Play(ctx)
	c.Advance(ctx, 1.25)
	if c.FrameIndex() != 1 {
		t.Fatalf("expected to enter frame pair 1, got %d", c.FrameIndex())
	}
	if got := c.Progress(); got < 0.2499 || got > 0.2501 {
		t.Fatalf("expected leftover progress 0.25, got %f", got)
	}

	var sawAdvance bool
	for _, typ := range rec.types() {
		if typ == playback.EventFrameAdvanced {
			sawAdvance = true
		}
	}
	if !sawAdvance {
		t.Fatalf("expected a frame_advanced event, got %v", rec.types())
	}
}

func TestFinishSettlesOnFinalFrameAndGoesIdle(t *testing.T) {
	ctx := context.Background()
	rec := &eventRecorder{}
	c := NewController(sequence(3), court.ViewFull, 1.0, rec)

	c.Play(ctx)
	c.Advance(ctx, 5.0) // well past the end even with catch-up

	if c.State() != StateIdle {
		t.Fatalf("expected idle after finishing, got %s", c.State())
	}
	if c.FrameIndex() != 2 || c.Progress() != 0 {
		t.Fatalf("expected to settle on the final frame, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}
	types := rec.types()
	if types[len(types)-1] != playback.EventFinished {
		t.Fatalf("expected finished event last, got %v", types)
	}

	// Poses on the settled frame are the final keyframe positions.
	result := c.Compute()
	p1 := poseByID(t, result.Poses, "p1")
	if p1.Position != (geom.Vec2{X: 200, Y: 100}) {
		t.Fatalf("expected final keyframe position, got %+v", p1.Position)
	}
}

func TestReplayAfterFinishRestartsFromFirstFrame(t *testing.T) {
	ctx := context.Background()
	c := NewController(sequence(3), court.ViewFull, 1.0, nil)

	c.Play(ctx)
	c.Advance(ctx, 5.0)
	c.Play(ctx)
	if c.FrameIndex() != 0 || c.Progress() != 0 {
		t.Fatalf("expected replay from the start, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}
	if c.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", c.State())
	}
}

func TestScrubClampsAndPausesPlayback(t *testing.T) {
	ctx := context.Background()
	c := NewController(sequence(3), court.ViewFull, 1.0, nil)
	c.Play(ctx)

	c.Scrub(7, 1.8)
	if c.State() != StateScrubbing {
		t.Fatalf("expected scrubbing, got %s", c.State())
	}
	if c.FrameIndex() != 2 || c.Progress() != 1 {
		t.Fatalf("expected clamped scrub target, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}

	c.Scrub(-3, -0.5)
	if c.FrameIndex() != 0 || c.Progress() != 0 {
		t.Fatalf("expected clamp to the first frame, got index=%d progress=%f", c.FrameIndex(), c.Progress())
	}
}

func TestScrubbedComputeSkipsCollisionResolution(t *testing.T) {
	frames := sequence(3)
	// Add a second player overlapping p1 in every frame.
	for i := range frames {
		overlap := board.Player{ID: "p2", Team: board.TeamOffense, Pos: frames[i].Full.Players[0].Pos}
		frames[i].Full.Players = append(frames[i].Full.Players, overlap)
		frames[i].Half.Players = append(frames[i].Half.Players, overlap)
	}
	c := NewController(frames, court.ViewFull, 1.0, nil)
	c.Scrub(0, 0.5)

	result := c.Compute()
	p1 := poseByID(t, result.Poses, "p1")
	p2 := poseByID(t, result.Poses, "p2")
	if p1.Position != p2.Position {
		t.Fatalf("expected scrubbed poses to stay raw, got %+v vs %+v", p1.Position, p2.Position)
	}
}

func TestStopResetsPosition(t *testing.T) {
	ctx := context.Background()
	rec := &eventRecorder{}
	c := NewController(sequence(3), court.ViewFull, 1.0, rec)

	c.Play(ctx)
	c.Advance(ctx, 1.3)
	c.Stop(ctx)

	if c.State() != StateIdle || c.FrameIndex() != 0 || c.Progress() != 0 {
		t.Fatalf("expected reset to start, got state=%s index=%d progress=%f", c.State(), c.FrameIndex(), c.Progress())
	}
	types := rec.types()
	if types[len(types)-1] != playback.EventStopped {
		t.Fatalf("expected stopped event last, got %v", types)
	}
}

func TestNilControllerIsSafe(t *testing.T) {
	var c *Controller
	c.Play(context.Background())
	c.Pause(context.Background())
	c.Stop(context.Background())
	c.Scrub(1, 0.5)
	if got := c.Advance(context.Background(), 0.1); len(got.Poses) != 0 {
		t.Fatalf("expected empty result from nil controller, got %+v", got)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle state from nil controller")
	}
}
