package backend

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/options"
)

// Event carries a freshly loaded option map or the error that prevented it.
type Event struct {
	Path    string
	Options *options.Map
	Err     error
}

// Watcher polls an option map file at a fixed interval and publishes a new map
// whenever the file changes. The state at construction time is the baseline
// and is not published.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

type fileStamp struct {
	size    int64
	modTime time.Time
	missing bool
}

// NewWatcher creates a watcher that checks path every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll(newThrottle(250 * time.Millisecond))

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher. The poller exits after its current check; use
// Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(throttle *throttle) {
	defer w.wg.Done()

	last := stat(w.path)
	var lastErr string

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		current := stat(w.path)
		if current.equal(last) {
			continue
		}
		if !throttle.wait(w.ctx) {
			return
		}
		current = stat(w.path)
		last = current
		m, err := options.Load(w.path)
		if err != nil {
			if err.Error() == lastErr {
				continue
			}
			lastErr = err.Error()
			events.Watch.Error(w.path, err)
		} else {
			lastErr = ""
			events.Watch.Reload(w.path, m.Len())
		}
		evt := Event{Path: w.path, Options: m, Err: err}
		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}

func stat(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{missing: true}
	}
	return fileStamp{size: info.Size(), modTime: info.ModTime()}
}

func (s fileStamp) equal(other fileStamp) bool {
	return s.missing == other.missing && s.size == other.size && s.modTime.Equal(other.modTime)
}
