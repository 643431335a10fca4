package internal

import (
	"time"
)

const (
	// RedrawOffset places each clock repaint just past the minute boundary
	RedrawOffset = 1 * time.Second

	// RedrawInterval is the clock repaint period
	RedrawInterval = 60 * time.Second
)

// timer is the subset of *time.Timer the schedulers rely on
type timer interface {
	C() <-chan time.Time
	Reset(d time.Duration) bool
	Stop() bool
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) C() <-chan time.Time        { return r.t.C }
func (r realTimer) Reset(d time.Duration) bool { return r.t.Reset(d) }
func (r realTimer) Stop() bool                 { return r.t.Stop() }

func newRealTimer(d time.Duration) timer {
	return realTimer{t: time.NewTimer(d)}
}

// newStoppedTimer returns a timer that will not fire until Reset
func newStoppedTimer(factory func(time.Duration) timer) timer {
	t := factory(time.Hour)
	t.Stop()
	return t
}

// rearm stops t, discards a pending fire and schedules it d from now
func rearm(t timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C():
		default:
		}
	}
	t.Reset(d)
}

// nextDelay returns how long until the next instant that lies offset past a
// multiple of interval on the wall clock.
func nextDelay(now time.Time, offset, interval time.Duration) time.Duration {
	next := now.Truncate(interval).Add(offset)
	for !next.After(now) {
		next = next.Add(interval)
	}
	return next.Sub(now)
}

// RedrawTicker drives the periodic clock repaint. It owns a single timer for
// the life of the session; Start re-arms it rather than adding another.
// The owner reads C from its event loop and calls Start again after each fire.
type RedrawTicker struct {
	Offset   time.Duration
	Interval time.Duration

	now      func() time.Time
	newTimer func(time.Duration) timer
	timer    timer
	never    chan time.Time
}

// NewRedrawTicker creates an unarmed ticker firing at hh:mm:01
func NewRedrawTicker() *RedrawTicker {
	return &RedrawTicker{
		Offset:   RedrawOffset,
		Interval: RedrawInterval,
		now:      time.Now,
		newTimer: newRealTimer,
		never:    make(chan time.Time),
	}
}

// Start arms the ticker, or resets its schedule if it is already armed
func (r *RedrawTicker) Start() {
	delay := nextDelay(r.now(), r.Offset, r.Interval)

	if r.timer == nil {
		r.timer = r.newTimer(delay)
		Debug("Clock redraw armed, first tick in %v", delay)
		return
	}

	rearm(r.timer, delay)
	Debug("Clock redraw re-armed, next tick in %v", delay)
}

// Armed reports whether Start has been called
func (r *RedrawTicker) Armed() bool {
	return r.timer != nil
}

// C delivers a value at every scheduled tick. Before Start it never fires.
func (r *RedrawTicker) C() <-chan time.Time {
	if r.timer == nil {
		return r.never
	}
	return r.timer.C()
}
