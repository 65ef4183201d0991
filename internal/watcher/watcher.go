package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bit set of the change kinds reported for a path.
type Op uint8

const (
	Create Op = 1 << iota
	Write
	Remove
	Rename
)

func (op Op) Has(flag Op) bool {
	return op&flag != 0
}

// Event is a change to a watched path.
type Event struct {
	Path string
	Op   Op
}

// Watcher reports changes on watched paths using OS-native notifications.
// Editors often generate bursts of events for a single save, so events for
// the same path within the debounce interval are coalesced into one event
// carrying the union of their ops.
type Watcher struct {
	inner    *fsnotify.Watcher
	debounce time.Duration
	events   chan Event
	errors   chan error
}

// New creates a watcher. A zero debounce forwards events as they arrive.
func New(debounce time.Duration) (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		inner:    inner,
		debounce: debounce,
		events:   make(chan Event, 128),
		errors:   make(chan error, 1),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel of coalesced change events. It is closed when
// the watcher is closed.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the channel of errors from the underlying watcher.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Add starts watching a file or directory.
func (w *Watcher) Add(name string) error { return w.inner.Add(name) }

// Remove stops watching a file or directory.
func (w *Watcher) Remove(name string) error { return w.inner.Remove(name) }

// Close stops the watcher. Pending coalesced events are flushed first.
func (w *Watcher) Close() error { return w.inner.Close() }

func (w *Watcher) loop() {
	var pending coalescer
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.inner.Events:
			if !ok {
				w.shutdown(&pending)
				return
			}
			op := opOf(ev.Op)
			if op == 0 {
				continue
			}
			if w.debounce <= 0 {
				w.events <- Event{Path: ev.Name, Op: op}
				continue
			}
			pending.add(ev.Name, op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}

		case <-timerC:
			for _, event := range pending.take() {
				w.events <- event
			}

		case err, ok := <-w.inner.Errors:
			if !ok {
				w.shutdown(&pending)
				return
			}
			w.errors <- err
		}
	}
}

func (w *Watcher) shutdown(pending *coalescer) {
	for _, event := range pending.take() {
		w.events <- event
	}
	close(w.events)
}

func opOf(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= Create
	}
	if op&fsnotify.Write != 0 {
		out |= Write
	}
	if op&fsnotify.Remove != 0 {
		out |= Remove
	}
	if op&fsnotify.Rename != 0 {
		out |= Rename
	}
	// A chmod alone doesn't change contents, so it is dropped
	return out
}

// coalescer accumulates events per path, unioning ops and preserving the
// order in which paths first appeared.
type coalescer struct {
	pending map[string]Op
	order   []string
}

func (c *coalescer) add(path string, op Op) {
	if c.pending == nil {
		c.pending = map[string]Op{}
	}
	if prev, ok := c.pending[path]; ok {
		c.pending[path] = prev | op
		return
	}
	c.pending[path] = op
	c.order = append(c.order, path)
}

func (c *coalescer) take() []Event {
	if len(c.order) == 0 {
		return nil
	}
	events := make([]Event, 0, len(c.order))
	for _, path := range c.order {
		events = append(events, Event{Path: path, Op: c.pending[path]})
	}
	c.pending = nil
	c.order = nil
	return events
}
