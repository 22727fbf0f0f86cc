// Package playback defines the event vocabulary for the animation loop.
package playback

import (
	"context"

	"tactics-board/engine/logging"
)

const (
	// EventStarted is emitted when playback leaves Idle.
	EventStarted logging.EventType = "playback.started"
	// EventStopped is emitted when playback is stopped and reset.
	EventStopped logging.EventType = "playback.stopped"
	// EventPaused is emitted on a user pause.
	EventPaused logging.EventType = "playback.paused"
	// EventFrameAdvanced is emitted when interpolation crosses into the
	// next frame pair.
	EventFrameAdvanced logging.EventType = "playback.frame_advanced"
	// EventFinished is emitted when playback reaches the final frame.
	EventFinished logging.EventType = "playback.finished"
	// EventTickBudgetOverrun is emitted when a tick exceeds its time budget.
	EventTickBudgetOverrun logging.EventType = "playback.tick_budget_overrun"
)

// FramePayload carries frame-pair context for transport-level events.
type FramePayload struct {
	FrameIndex int     `json:"frameIndex"`
	FrameCount int     `json:"frameCount"`
	Progress   float64 `json:"progress"`
}

// Started publishes the playback-start event.
func Started(ctx context.Context, pub logging.Publisher, tick uint64, payload FramePayload) {
	publish(ctx, pub, EventStarted, tick, logging.SeverityInfo, payload)
}

// Stopped publishes the playback-stop event.
func Stopped(ctx context.Context, pub logging.Publisher, tick uint64, payload FramePayload) {
	publish(ctx, pub, EventStopped, tick, logging.SeverityInfo, payload)
}

// Paused publishes the pause event.
func Paused(ctx context.Context, pub logging.Publisher, tick uint64, payload FramePayload) {
	publish(ctx, pub, EventPaused, tick, logging.SeverityInfo, payload)
}

// FrameAdvanced publishes a frame-boundary crossing.
func FrameAdvanced(ctx context.Context, pub logging.Publisher, tick uint64, payload FramePayload) {
	publish(ctx, pub, EventFrameAdvanced, tick, logging.SeverityDebug, payload)
}

// Finished publishes the end-of-sequence event.
func Finished(ctx context.Context, pub logging.Publisher, tick uint64, payload FramePayload) {
	publish(ctx, pub, EventFinished, tick, logging.SeverityInfo, payload)
}

// TickBudgetOverrunPayload captures timing details for a budget breach.
type TickBudgetOverrunPayload struct {
	DurationMillis int64   `json:"durationMillis"`
	BudgetMillis   int64   `json:"budgetMillis"`
	Ratio          float64 `json:"ratio"`
}

// TickBudgetOverrun publishes a warning when a tick exceeds its budget.
func TickBudgetOverrun(ctx context.Context, pub logging.Publisher, tick uint64, payload TickBudgetOverrunPayload) {
	publish(ctx, pub, EventTickBudgetOverrun, tick, logging.SeverityWarn, payload)
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, tick uint64, severity logging.Severity, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Tick:     tick,
		Severity: severity,
		Category: logging.CategoryPlayback,
		Subject:  logging.EntityRef{Kind: logging.EntityKindBoard},
		Payload:  payload,
	})
}
