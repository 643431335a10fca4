package internal

import (
	"image"
	"time"
)

// Screen is the render context: the Visual State written by collaborators plus
// everything a repaint reads. All methods must be called from one goroutine.
type Screen struct {
	activity   ActivityState
	credential CredentialState
	inputLen   int

	resolution Resolution
	canvas     *image.RGBA

	showClock  bool
	color      string
	background image.Image
	tile       bool

	fonts     *FontSet
	geometry  GeometryProvider
	presenter Presenter

	// Angle picks the highlight start; tests pin it
	Angle func() float64
	// Now supplies the wall-clock time; tests pin it
	Now func() time.Time

	repaints int
}

// NewScreen creates the render context for cfg. background may be nil.
func NewScreen(cfg Configuration, background image.Image, fonts *FontSet, geometry GeometryProvider, presenter Presenter, res Resolution) *Screen {
	return &Screen{
		activity:   ActivityIdle,
		credential: CredentialIdle,
		resolution: res,
		showClock:  cfg.ShowClock,
		color:      cfg.Color,
		background: background,
		tile:       cfg.Tile,
		fonts:      fonts,
		geometry:   geometry,
		presenter:  presenter,
		Angle:      RandomAngle,
		Now:        time.Now,
	}
}

// Activity returns the current Visual Activity State
func (s *Screen) Activity() ActivityState { return s.activity }

// Credential returns the current Credential Check State
func (s *Screen) Credential() CredentialState { return s.credential }

// InputLen returns the number of characters the input collaborator reported
func (s *Screen) InputLen() int { return s.inputLen }

// Resolution returns the last known display resolution
func (s *Screen) Resolution() Resolution { return s.resolution }

// Repaints returns how many full repaints have run
func (s *Screen) Repaints() int { return s.repaints }

// ShowClock reports whether the clock is drawn, and therefore whether the
// periodic repaint is needed
func (s *Screen) ShowClock() bool { return s.showClock }

// SetResolution records a new display resolution and repaints
func (s *Screen) SetResolution(res Resolution) {
	if res == s.resolution {
		return
	}
	Info("Resolution changed: %dx%d -> %dx%d", s.resolution.Width, s.resolution.Height, res.Width, res.Height)
	s.resolution = res
	s.Redraw()
}

// KeyAccepted flashes the ring for a newly accepted key and repaints
func (s *Screen) KeyAccepted() {
	s.inputLen++
	s.activity = ActivityKeyActive
	s.Redraw()
}

// KeyDeleted flashes the ring for an accepted deletion and repaints
func (s *Screen) KeyDeleted() {
	if s.inputLen > 0 {
		s.inputLen--
	}
	s.activity = ActivityBackspaceActive
	s.Redraw()
}

// ResetInput records an emptied input buffer and clears the indicator
func (s *Screen) ResetInput() {
	s.inputLen = 0
	s.ClearIndicator()
}

// SetCredentialState records the credential check state and repaints
func (s *Screen) SetCredentialState(state CredentialState) {
	s.credential = state
	s.Redraw()
}

// ClearIndicator drops any pending flash: Idle when no input is left,
// Pressed otherwise. It always repaints exactly once.
func (s *Screen) ClearIndicator() {
	if s.inputLen == 0 {
		s.activity = ActivityIdle
	} else {
		s.activity = ActivityPressed
	}
	s.Redraw()
}

// canvasFor returns a canvas of the current resolution, reusing the last one
// when the size has not changed.
func (s *Screen) canvasFor(res Resolution) *image.RGBA {
	if s.canvas != nil && s.canvas.Rect.Dx() == res.Width && s.canvas.Rect.Dy() == res.Height {
		return s.canvas
	}
	Debug("Allocating %dx%d canvas", res.Width, res.Height)
	s.canvas = image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	return s.canvas
}

// Render runs background, badge and compositing for the current state and
// returns the finished canvas without presenting it.
func (s *Screen) Render() *image.RGBA {
	canvas := s.canvasFor(s.resolution)
	PaintBackground(canvas, s.background, s.tile, s.color)

	badge := BuildBadge(s.activity, s.credential, s.showClock, s.Now(), s.Angle)
	buf := badge.Render(s.fonts)

	var monitors []Monitor
	if s.geometry != nil {
		monitors = s.geometry.Monitors()
	}
	Composite(canvas, buf, monitors, s.resolution)

	return canvas
}

// Redraw runs the full repaint pipeline and presents the result.
// Presentation failures are logged; the session keeps running.
func (s *Screen) Redraw() {
	Debug("Redrawing: activity=%s credential=%s", s.activity, s.credential)
	canvas := s.Render()
	s.repaints++

	if s.presenter == nil {
		return
	}
	if err := s.presenter.Present(canvas); err != nil {
		Error("Failed to present canvas: %v", err)
	}
}
