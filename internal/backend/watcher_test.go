package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for watcher event")
	}
	return Event{}
}

func TestWatcherPublishesReloadedMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	if err := os.WriteFile(path, []byte(`{"A": {"1": "One"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(`{"A": {"1": "One"}, "B": ["x"]}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	evt := waitForEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	if got := evt.Options.Keys(); len(got) != 2 || got[1] != "B" {
		t.Fatalf("unexpected keys %v", got)
	}
	if evt.Path != path || w.Path() != path {
		t.Fatalf("unexpected path %q", evt.Path)
	}
}

func TestWatcherReportsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	evt := waitForEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected load error")
	}
	if evt.Options != nil {
		t.Fatalf("expected no map alongside the error")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	w := NewWatcher(path, time.Hour)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !th.wait(ctx) || !th.wait(ctx) {
		t.Fatalf("expected both waits to claim a slot")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %s", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) {
		t.Fatalf("expected nil throttle not to block")
	}
}

func TestThrottleWaitStopsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected first wait to pass immediately")
	}
	done := make(chan bool, 1)
	go func() { done <- th.wait(ctx) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not return after cancel")
	}
}
