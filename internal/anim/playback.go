package anim

import (
	"context"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/logging"
	"tactics-board/engine/logging/playback"
)

// State is the playback phase of the controller.
type State string

const (
	StateIdle      State = "idle"
	StatePlaying   State = "playing"
	StatePaused    State = "paused"
	StateScrubbing State = "scrubbing"
)

// Controller owns playback position over an ordered frame sequence: which
// frame pair is active, the normalized progress t in [0, 1] across it, and
// the state machine Idle -> Playing -> (Paused | Scrubbing | Idle).
//
// The controller reads frames and never writes them. All pose output is
// recomputed per tick and discarded.
type Controller struct {
	frames []board.FrameSet
	view   court.ViewMode

	state    State
	index    int
	progress float64
	tick     uint64

	// frameSeconds is the nominal time budget of one frame transition.
	frameSeconds float64

	publisher logging.Publisher
}

// DefaultFrameSeconds is the nominal duration of one frame-to-frame
// transition.
const DefaultFrameSeconds = 1.5

// NewController builds a controller over a frame sequence. A nil publisher
// disables playback events.
func NewController(frames []board.FrameSet, view court.ViewMode, frameSeconds float64, pub logging.Publisher) *Controller {
	if frameSeconds <= 0 {
		frameSeconds = DefaultFrameSeconds
	}
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &Controller{
		frames:       frames,
		view:         view,
		state:        StateIdle,
		frameSeconds: frameSeconds,
		publisher:    pub,
	}
}

func (c *Controller) State() State {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// FrameIndex returns the index of the frame currently being left.
func (c *Controller) FrameIndex() int {
	if c == nil {
		return 0
	}
	return c.index
}

// Progress returns the normalized time across the active frame pair.
func (c *Controller) Progress() float64 {
	if c == nil {
		return 0
	}
	return c.progress
}

// Play starts playback from the beginning when idle, or resumes from the
// current position when paused or scrubbing. It is a no-op with fewer than
// two frames.
func (c *Controller) Play(ctx context.Context) {
	if c == nil || len(c.frames) < 2 {
		return
	}
	switch c.state {
	case StatePlaying:
		return
	case StateIdle:
		c.index = 0
		c.progress = 0
	}
	c.state = StatePlaying
	playback.Started(ctx, c.publisher, c.tick, c.framePayload())
}

// Pause freezes playback at the current position.
func (c *Controller) Pause(ctx context.Context) {
	if c == nil || c.state != StatePlaying {
		return
	}
	c.state = StatePaused
	playback.Paused(ctx, c.publisher, c.tick, c.framePayload())
}

// Stop resets playback to the first frame.
func (c *Controller) Stop(ctx context.Context) {
	if c == nil {
		return
	}
	c.state = StateIdle
	c.index = 0
	c.progress = 0
	playback.Stopped(ctx, c.publisher, c.tick, c.framePayload())
}

// Scrub jumps to a frame pair and progress value directly. Scrubbing pauses
// playback; the next Play resumes from here. The computation performed on
// the following tick is identical to a playing tick, minus collision
// resolution.
func (c *Controller) Scrub(frameIndex int, t float64) {
	if c == nil || len(c.frames) == 0 {
		return
	}
	if frameIndex < 0 {
		frameIndex = 0
	}
	if frameIndex > len(c.frames)-1 {
		frameIndex = len(c.frames) - 1
	}
	c.index = frameIndex
	c.progress = clamp01(t)
	c.state = StateScrubbing
}

// Advance moves playback time forward by dt seconds and computes the tick.
// Outside of Playing it recomputes the current position without advancing.
func (c *Controller) Advance(ctx context.Context, dt float64) TickResult {
	if c == nil {
		return TickResult{}
	}
	c.tick++

	if c.state == StatePlaying {
		c.progress += dt / c.frameSeconds
		for c.progress >= 1 {
			if c.index >= len(c.frames)-2 {
				// Reached the final frame: settle there and go idle.
				c.index = len(c.frames) - 1
				c.progress = 0
				c.state = StateIdle
				playback.Finished(ctx, c.publisher, c.tick, c.framePayload())
				break
			}
			c.progress -= 1
			c.index++
			playback.FrameAdvanced(ctx, c.publisher, c.tick, c.framePayload())
		}
	}

	return c.Compute()
}

// Compute interpolates the current playback position. Collision resolution
// runs only while actively playing; static editing and scrubbing see the
// raw interpolated poses.
func (c *Controller) Compute() TickResult {
	if c == nil || len(c.frames) == 0 {
		return TickResult{}
	}
	cur := c.frames[c.index].View(c.view)
	next := cur
	if c.index+1 < len(c.frames) {
		next = c.frames[c.index+1].View(c.view)
	}
	return ComputeTick(cur, next, c.view, c.progress, c.state == StatePlaying)
}

func (c *Controller) framePayload() playback.FramePayload {
	return playback.FramePayload{
		FrameIndex: c.index,
		FrameCount: len(c.frames),
		Progress:   c.progress,
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
