package logging_test

import (
	"context"
	"testing"
	"time"

	"tactics-board/engine/logging"
	"tactics-board/engine/logging/sinks"
)

func fixedClock() logging.Clock {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return logging.ClockFunc(func() time.Time { return at })
}

func newTestRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.Memory) {
	t.Helper()
	memory := sinks.NewMemory()
	router, err := logging.NewRouter(fixedClock(), cfg, []logging.NamedSink{
		{Name: "memory", Sink: memory},
	})
	if err != nil {
		t.Fatalf("router setup failed: %v", err)
	}
	return router, memory
}

func closeRouter(t *testing.T, router *logging.Router) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("router close failed: %v", err)
	}
}

func TestRouterDeliversEventsInOrder(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	ctx := context.Background()
	for _, typ := range []logging.EventType{"playback.started", "playback.frame_advanced", "playback.finished"} {
		router.Publish(ctx, logging.Event{Type: typ, Severity: logging.SeverityInfo})
	}
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	want := []logging.EventType{"playback.started", "playback.frame_advanced", "playback.finished"}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, events[i].Type)
		}
	}
	if stats := router.Stats(); stats.EventsTotal != 3 || stats.DroppedTotal != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRouterStampsMissingTimestamps(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Type: "playback.started", Severity: logging.SeverityInfo})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected the router to stamp a timestamp")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newTestRouter(t, cfg)

	ctx := context.Background()
	router.Publish(ctx, logging.Event{Type: "playback.frame_advanced", Severity: logging.SeverityDebug})
	router.Publish(ctx, logging.Event{Type: "playback.started", Severity: logging.SeverityInfo})
	router.Publish(ctx, logging.Event{Type: "playback.tick_budget_overrun", Severity: logging.SeverityWarn})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected only the warning through, got %d events", len(events))
	}
	if events[0].Type != "playback.tick_budget_overrun" {
		t.Fatalf("expected the warning event, got %s", events[0].Type)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityError})
	closeRouter(t, router)

	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("expected untyped event to be dropped, got %d", len(events))
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"board": "demo"}
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "playback.started", Severity: logging.SeverityInfo})
	closeRouter(t, router)

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Extra["board"] != "demo" {
		t.Fatalf("expected configured field on the event, got %+v", events[0].Extra)
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	closeRouter(t, router)

	router.Publish(context.Background(), logging.Event{Type: "playback.started", Severity: logging.SeverityInfo})
	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("expected publish after close to be ignored, got %d events", len(events))
	}
}

func TestWithFieldsDoesNotOverrideExisting(t *testing.T) {
	var got logging.Event
	pub := logging.WithFields(logging.PublisherFunc(func(_ context.Context, event logging.Event) {
		got = event
	}), map[string]any{"source": "wrapper", "view": "full"})

	pub.Publish(context.Background(), logging.Event{
		Type:  "playback.started",
		Extra: map[string]any{"source": "original"},
	})

	if got.Extra["source"] != "original" {
		t.Fatalf("expected existing field to win, got %v", got.Extra["source"])
	}
	if got.Extra["view"] != "full" {
		t.Fatalf("expected wrapper field to be added, got %+v", got.Extra)
	}
}

func TestSinkLookupByName(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	defer closeRouter(t, router)

	if got := router.Sink("memory"); got != logging.Sink(memory) {
		t.Fatalf("expected sink lookup to return the registered sink")
	}
	if got := router.Sink("missing"); got != nil {
		t.Fatalf("expected nil for unknown sink name, got %v", got)
	}
}
