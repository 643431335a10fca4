package internal

import (
	"errors"
	"image"
	"testing"
	"time"
)

type fakePresenter struct {
	presents int
	last     *image.RGBA
	err      error
}

func (p *fakePresenter) Present(canvas *image.RGBA) error {
	p.presents++
	p.last = canvas
	return p.err
}

type fakeGeometry []Monitor

func (g fakeGeometry) Monitors() []Monitor { return g }

func newTestScreen(presenter Presenter, geometry GeometryProvider, res Resolution) *Screen {
	cfg := DefaultConfig()
	s := NewScreen(cfg, nil, nil, geometry, presenter, res)
	s.Angle = fixedAngle(0)
	s.Now = func() time.Time { return time.Date(2024, 3, 5, 14, 5, 0, 0, time.UTC) }
	return s
}

func TestClearIndicator(t *testing.T) {
	tests := []struct {
		name     string
		keys     int
		want     ActivityState
		presents int
	}{
		{"no input goes idle", 0, ActivityIdle, 1},
		{"pending input stays pressed", 2, ActivityPressed, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePresenter{}
			s := newTestScreen(p, nil, Resolution{200, 200})
			for i := 0; i < tt.keys; i++ {
				s.KeyAccepted()
			}

			s.ClearIndicator()

			if s.Activity() != tt.want {
				t.Errorf("activity = %s, want %s", s.Activity(), tt.want)
			}
			if p.presents != tt.presents {
				t.Errorf("presented %d times, want %d", p.presents, tt.presents)
			}
		})
	}
}

func TestKeyDeletedStopsAtZero(t *testing.T) {
	s := newTestScreen(&fakePresenter{}, nil, Resolution{200, 200})

	s.KeyAccepted()
	s.KeyDeleted()
	s.KeyDeleted()

	if s.InputLen() != 0 {
		t.Errorf("InputLen = %d, want 0", s.InputLen())
	}
	if s.Activity() != ActivityBackspaceActive {
		t.Errorf("activity = %s, want backspace-active", s.Activity())
	}

	s.ResetInput()
	if s.Activity() != ActivityIdle {
		t.Errorf("activity after reset = %s, want idle", s.Activity())
	}
}

func TestSetResolution(t *testing.T) {
	p := &fakePresenter{}
	s := newTestScreen(p, nil, Resolution{200, 200})

	s.Redraw()
	first := p.last

	s.SetResolution(Resolution{200, 200})
	if p.presents != 1 {
		t.Fatalf("unchanged resolution repainted, presents = %d", p.presents)
	}

	s.Redraw()
	if p.last != first {
		t.Error("canvas of the same size was reallocated")
	}

	s.SetResolution(Resolution{300, 250})
	if p.presents != 3 {
		t.Fatalf("presents = %d, want 3", p.presents)
	}
	if b := p.last.Bounds(); b.Dx() != 300 || b.Dy() != 250 {
		t.Errorf("canvas is %v after resize, want 300x250", b)
	}
	if s.Resolution() != (Resolution{300, 250}) {
		t.Errorf("Resolution = %v", s.Resolution())
	}
}

func TestRenderStampsEveryMonitor(t *testing.T) {
	geometry := fakeGeometry{{0, 0, 300, 300}, {300, 0, 300, 300}}
	s := newTestScreen(nil, geometry, Resolution{600, 300})

	canvas := s.Render()

	white := ParseHexColor("ffffff")
	for _, m := range geometry {
		x, y := m.X+m.Width/2, m.Y+m.Height/2-60
		c := canvas.RGBAAt(x, y)
		if c.R == white.R && c.G == white.G && c.B == white.B {
			t.Errorf("no badge over monitor at %d,%d", m.X, m.Y)
		}
	}
	if got := canvas.RGBAAt(5, 5); got.R != 0xff || got.G != 0xff || got.B != 0xff {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestRedrawSurvivesPresentFailure(t *testing.T) {
	p := &fakePresenter{err: errors.New("connection lost")}
	s := newTestScreen(p, nil, Resolution{200, 200})

	s.Redraw()
	s.Redraw()

	if s.Repaints() != 2 || p.presents != 2 {
		t.Errorf("repaints = %d, presents = %d, want 2 and 2", s.Repaints(), p.presents)
	}
}
