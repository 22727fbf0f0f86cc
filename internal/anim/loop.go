package anim

import (
	"context"
	"time"

	"tactics-board/engine/internal/telemetry"
	"tactics-board/engine/logging"
	"tactics-board/engine/logging/playback"
)

// Deps carries shared infrastructure dependencies for the playback loop.
type Deps struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Clock     logging.Clock
	Publisher logging.Publisher
}

// LoopConfig tunes the playback tick loop.
type LoopConfig struct {
	// TickRate is ticks per second; it stands in for the host's
	// frame-presentation rate.
	TickRate int
	// CatchupMaxTicks clamps the delta applied after a stall, in tick
	// budgets.
	CatchupMaxTicks int
}

func DefaultLoopConfig() LoopConfig {
	return LoopConfig{TickRate: 30, CatchupMaxTicks: 3}
}

// LoopStepResult is delivered to the AfterTick hook once per tick.
type LoopStepResult struct {
	Tick     uint64
	Now      time.Time
	Delta    float64
	Result   TickResult
	State    State
	Duration time.Duration
	Budget   time.Duration
}

// LoopHooks let the embedding surface observe ticks without the loop
// knowing about rendering.
type LoopHooks struct {
	AfterTick func(LoopStepResult)
}

// Loop drives a Controller on a repeating clock. Each tick is one
// synchronous computation: advance playback time, interpolate, estimate
// ghost defenders, resolve collisions, hand the result to the hook. There is
// exactly one writer per tick and ticks never overlap, so no locking is
// needed around the controller.
type Loop struct {
	controller *Controller
	config     LoopConfig
	hooks      LoopHooks
	deps       Deps
	tick       uint64
}

// NewLoop wraps a controller with a fixed-rate scheduler.
func NewLoop(controller *Controller, cfg LoopConfig, deps Deps, hooks LoopHooks) *Loop {
	if controller == nil {
		return nil
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultLoopConfig().TickRate
	}
	if deps.Clock == nil {
		deps.Clock = logging.SystemClock{}
	}
	if deps.Publisher == nil {
		deps.Publisher = logging.NopPublisher()
	}
	return &Loop{controller: controller, config: cfg, hooks: hooks, deps: deps}
}

// Controller exposes the wrapped controller for command surfaces.
func (l *Loop) Controller() *Controller {
	if l == nil {
		return nil
	}
	return l.controller
}

// Run drives ticks until the stop channel closes. Stopping is immediate
// between ticks; there is no in-flight work to cancel.
func (l *Loop) Run(ctx context.Context, stop <-chan struct{}) {
	if l == nil {
		return
	}
	ticker := time.NewTicker(time.Second / time.Duration(l.config.TickRate))
	defer ticker.Stop()

	clock := l.deps.Clock
	last := clock.Now()
	budgetSeconds := 1.0 / float64(l.config.TickRate)
	maxDt := budgetSeconds
	if l.config.CatchupMaxTicks > 1 {
		maxDt = budgetSeconds * float64(l.config.CatchupMaxTicks)
	}
	budget := time.Second / time.Duration(l.config.TickRate)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := clock.Now()
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = budgetSeconds
			} else if dt > maxDt {
				dt = maxDt
			}
			last = now

			l.tick++
			start := clock.Now()
			result := l.controller.Advance(ctx, dt)
			duration := clock.Now().Sub(start)

			l.observe(ctx, duration, budget)

			if l.hooks.AfterTick != nil {
				l.hooks.AfterTick(LoopStepResult{
					Tick:     l.tick,
					Now:      now,
					Delta:    dt,
					Result:   result,
					State:    l.controller.State(),
					Duration: duration,
					Budget:   budget,
				})
			}
		}
	}
}

func (l *Loop) observe(ctx context.Context, duration, budget time.Duration) {
	if l.deps.Metrics != nil {
		l.deps.Metrics.Add("playback.ticks", 1)
		l.deps.Metrics.Store("playback.last_tick_micros", uint64(duration.Microseconds()))
	}
	if duration <= budget {
		return
	}
	if l.deps.Metrics != nil {
		l.deps.Metrics.Add("playback.tick_budget_overruns", 1)
	}
	playback.TickBudgetOverrun(ctx, l.deps.Publisher, l.tick, playback.TickBudgetOverrunPayload{
		DurationMillis: duration.Milliseconds(),
		BudgetMillis:   budget.Milliseconds(),
		Ratio:          float64(duration) / float64(budget),
	})
	if l.deps.Logger != nil {
		l.deps.Logger.Printf("[playback] tick budget overrun duration=%s budget=%s", duration, budget)
	}
}
