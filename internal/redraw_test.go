package internal

import (
	"testing"
	"time"
)

// fakeTimer records schedule changes instead of firing on its own
type fakeTimer struct {
	c      chan time.Time
	active bool
	resets []time.Duration
	stops  int
}

func newFakeTimer(d time.Duration) *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1), active: true}
}

func (f *fakeTimer) C() <-chan time.Time { return f.c }

func (f *fakeTimer) Reset(d time.Duration) bool {
	was := f.active
	f.active = true
	f.resets = append(f.resets, d)
	return was
}

func (f *fakeTimer) Stop() bool {
	was := f.active
	f.active = false
	f.stops++
	return was
}

// fakeTimers is a timer factory that keeps every timer it creates
type fakeTimers struct {
	created []*fakeTimer
}

func (f *fakeTimers) factory(d time.Duration) timer {
	t := newFakeTimer(d)
	f.created = append(f.created, t)
	return t
}

func TestNextDelay(t *testing.T) {
	base := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"on the minute", base, time.Second},
		{"just after the minute", base.Add(500 * time.Millisecond), 500 * time.Millisecond},
		{"exactly at the offset", base.Add(time.Second), time.Minute},
		{"mid minute", base.Add(30 * time.Second), 31 * time.Second},
		{"end of minute", base.Add(59 * time.Second), 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextDelay(tt.now, RedrawOffset, RedrawInterval); got != tt.want {
				t.Errorf("nextDelay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRedrawTickerStartIsIdempotent(t *testing.T) {
	timers := &fakeTimers{}
	ticker := NewRedrawTicker()
	ticker.newTimer = timers.factory
	ticker.now = func() time.Time {
		return time.Date(2024, 3, 5, 12, 0, 30, 0, time.UTC)
	}

	if ticker.Armed() {
		t.Fatal("ticker armed before Start")
	}
	select {
	case <-ticker.C():
		t.Fatal("unarmed ticker fired")
	default:
	}

	ticker.Start()
	ticker.Start()

	if !ticker.Armed() {
		t.Fatal("ticker not armed after Start")
	}
	if len(timers.created) != 1 {
		t.Fatalf("Start created %d timers, want 1", len(timers.created))
	}

	tm := timers.created[0]
	if len(tm.resets) != 1 || tm.resets[0] != 31*time.Second {
		t.Errorf("resets = %v, want [31s]", tm.resets)
	}
	if ticker.C() != tm.C() {
		t.Error("C does not deliver the timer's channel")
	}
}

func TestRearmDrainsPendingFire(t *testing.T) {
	tm := newFakeTimer(time.Minute)
	tm.active = false
	tm.c <- time.Now()

	rearm(tm, time.Second)

	select {
	case <-tm.C():
		t.Error("stale fire survived rearm")
	default:
	}
	if !tm.active || len(tm.resets) != 1 || tm.resets[0] != time.Second {
		t.Errorf("timer not rescheduled: %+v", tm)
	}
}
