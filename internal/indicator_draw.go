package internal

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Render draws the badge into a fresh BadgeDiameter×BadgeDiameter buffer
func (b *Badge) Render(fonts *FontSet) *image.RGBA {
	dc := gg.NewContext(BadgeDiameter, BadgeDiameter)
	c := float64(badgeCenter)

	// Ring fill and outline
	dc.SetLineWidth(ringLineWidth)
	dc.DrawCircle(c, c, BadgeRadius)
	dc.SetColor(b.Fill)
	dc.FillPreserve()
	dc.SetColor(b.Stroke)
	dc.Stroke()

	if fonts != nil && b.Primary != "" {
		dc.SetColor(textColor)

		dc.SetFontFace(fonts.Primary)
		x, y := measureCentered(fonts.Primary, b.Primary, c)
		if b.Secondary != "" {
			y += timeShift
		}
		dc.DrawString(b.Primary, x, y)

		if b.Secondary != "" {
			dc.SetFontFace(fonts.Secondary)
			x, y := measureCentered(fonts.Secondary, b.Secondary, c)
			dc.DrawString(b.Secondary, x, y+dateShift)
		}
	}

	for _, a := range b.Arcs {
		dc.NewSubPath()
		dc.SetLineWidth(a.LineWidth)
		dc.SetColor(a.Color)
		dc.DrawArc(c, c, a.Radius, a.Start, a.End)
		dc.Stroke()
	}

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}

	// gg always hands back an *image.RGBA today; copy in case that changes
	out := image.NewRGBA(image.Rect(0, 0, BadgeDiameter, BadgeDiameter))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}
