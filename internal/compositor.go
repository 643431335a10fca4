package internal

import (
	"image"

	"golang.org/x/image/draw"
)

// stampOrigin returns the top-left corner that centers a badge of side d in m
func stampOrigin(m Monitor, d int) image.Point {
	return image.Point{
		X: m.X + (m.Width/2 - d/2),
		Y: m.Y + (m.Height/2 - d/2),
	}
}

// Composite stamps badge centered on every monitor, or once centered on res
// when the monitor list is empty. It returns the stamped regions.
func Composite(canvas draw.Image, badge image.Image, monitors []Monitor, res Resolution) []image.Rectangle {
	src := badge.Bounds()
	d := src.Dx()

	targets := monitors
	if len(targets) == 0 {
		// Nothing is known about the outputs, center on the root window and hope for the best
		targets = []Monitor{{X: 0, Y: 0, Width: res.Width, Height: res.Height}}
	}

	stamps := make([]image.Rectangle, 0, len(targets))
	for _, m := range targets {
		p := stampOrigin(m, d)
		r := image.Rectangle{Min: p, Max: p.Add(image.Pt(d, src.Dy()))}
		draw.Draw(canvas, r, badge, src.Min, draw.Over)
		stamps = append(stamps, r)
	}

	Debug("Composited %d badge(s) onto %dx%d canvas", len(stamps), res.Width, res.Height)
	return stamps
}
