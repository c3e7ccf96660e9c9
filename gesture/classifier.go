// Package gesture turns per-pointer down/up/leave event streams into discrete
// tap and long-press signals.
package gesture

import (
	"sync"
	"time"
)

type (
	// PointerID identifies one interaction source, e.g. a touch point or a
	// MIDI pad note.
	PointerID int

	// Kind is the kind of a classified gesture.
	Kind int

	// Event is a classified gesture on a target label.
	Event struct {
		Kind  Kind
		Label string
	}

	// Timer is a single-shot timer handle. Stop prevents the timer from
	// firing if it has not fired yet.
	Timer interface {
		Stop()
	}

	// TimerFactory creates a single-shot timer that calls fire after d.
	// Tests inject manual factories; the default uses time.AfterFunc.
	TimerFactory func(d time.Duration, fire func()) Timer

	// Classifier is the per-pointer tap/long-press state machine. A press
	// held past the long-press delay emits LongPress and swallows the
	// following pointer-up; releasing earlier emits Tap; leaving while
	// pressed abandons the interaction. At most one timer is outstanding per
	// pointer, and no timer callback can emit after Close.
	Classifier struct {
		mu       sync.Mutex
		delay    time.Duration
		newTimer TimerFactory
		emit     func(Event)
		pressed  map[PointerID]*press
		closed   bool
	}

	press struct {
		label     string
		timer     Timer
		longFired bool
		cancelled bool
	}

	// Option configures a Classifier.
	Option func(*Classifier)
)

const (
	Tap Kind = iota
	LongPress
)

// DefaultLongPressDelay is how long a press must be held to count as a long
// press.
const DefaultLongPressDelay = 400 * time.Millisecond

// WithDelay overrides the long-press delay.
func WithDelay(d time.Duration) Option {
	return func(c *Classifier) { c.delay = d }
}

// WithTimerFactory overrides how single-shot timers are created.
func WithTimerFactory(f TimerFactory) Option {
	return func(c *Classifier) { c.newTimer = f }
}

type afterFuncTimer struct{ t *time.Timer }

func (a afterFuncTimer) Stop() { a.t.Stop() }

// NewClassifier creates a classifier emitting classified gestures through
// emit. Events are emitted outside the classifier's lock, so the handler may
// call back into the classifier.
func NewClassifier(emit func(Event), opts ...Option) *Classifier {
	c := &Classifier{
		delay: DefaultLongPressDelay,
		newTimer: func(d time.Duration, fire func()) Timer {
			return afterFuncTimer{time.AfterFunc(d, fire)}
		},
		emit:    emit,
		pressed: make(map[PointerID]*press),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PointerDown starts a press on the label. A down for a pointer that is
// already pressed is ignored; there are no re-entrant presses per pointer.
func (c *Classifier) PointerDown(id PointerID, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.pressed[id] != nil {
		return
	}
	p := &press{label: label}
	c.pressed[id] = p
	p.timer = c.newTimer(c.delay, func() { c.expire(id, p) })
}

// PointerUp ends a press. If the long-press already fired, the up is
// swallowed; otherwise the pending timer is cancelled and a Tap is emitted.
func (c *Classifier) PointerUp(id PointerID) {
	c.mu.Lock()
	p := c.pressed[id]
	if p == nil {
		c.mu.Unlock()
		return
	}
	delete(c.pressed, id)
	if p.longFired {
		c.mu.Unlock()
		return
	}
	c.cancel(p)
	c.mu.Unlock()
	c.emit(Event{Kind: Tap, Label: p.label})
}

// PointerLeave abandons a press without emitting anything.
func (c *Classifier) PointerLeave(id PointerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pressed[id]
	if p == nil {
		return
	}
	delete(c.pressed, id)
	c.cancel(p)
}

// Close cancels every pending timer. No event is emitted afterwards, even by
// a timer callback that was already queued.
func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, p := range c.pressed {
		c.cancel(p)
		delete(c.pressed, id)
	}
}

// cancel invalidates the press before stopping its timer, so a callback that
// already fired concurrently observes the cancellation and does nothing.
func (c *Classifier) cancel(p *press) {
	p.cancelled = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (c *Classifier) expire(id PointerID, p *press) {
	c.mu.Lock()
	if c.closed || p.cancelled || c.pressed[id] != p || p.longFired {
		c.mu.Unlock()
		return
	}
	p.longFired = true
	p.timer = nil
	c.mu.Unlock()
	c.emit(Event{Kind: LongPress, Label: p.label})
}
