package internal

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// isHexColor reports whether s is exactly six hex digits after an optional '#'
func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// hexChannel parses the two-digit group starting at i, 0 when missing or malformed
func hexChannel(s string, i int) uint8 {
	if len(s) < i+2 {
		return 0
	}
	v, err := strconv.ParseUint(s[i:i+2], 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

// ParseHexColor converts "RRGGBB" (or "#RRGGBB") to an opaque color.
// Each malformed channel group decodes as 0.
func ParseHexColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	return color.NRGBA{
		R: hexChannel(hex, 0),
		G: hexChannel(hex, 2),
		B: hexChannel(hex, 4),
		A: 0xff,
	}
}

// ColorChannels returns the red, green and blue channels of hex normalized to [0,1]
func ColorChannels(hex string) (r, g, b float64) {
	c := ParseHexColor(hex)
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// PaintBackground fills the whole canvas with img (anchored or tiled) or, without
// an image, with the color given as six hex digits.
func PaintBackground(canvas *image.RGBA, img image.Image, tile bool, hex string) {
	bounds := canvas.Bounds()

	if img == nil {
		draw.Draw(canvas, bounds, image.NewUniform(ParseHexColor(hex)), image.Point{}, draw.Src)
		return
	}

	// Anchored or tiled, the image is laid over opaque black so pixels it
	// does not cover (or leaves translucent) are well defined.
	draw.Draw(canvas, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)

	if !tile {
		draw.Draw(canvas, bounds, img, img.Bounds().Min, draw.Over)
		return
	}

	src := img.Bounds()
	if src.Empty() {
		return
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += src.Dy() {
		for x := bounds.Min.X; x < bounds.Max.X; x += src.Dx() {
			cell := image.Rect(x, y, x+src.Dx(), y+src.Dy()).Intersect(bounds)
			draw.Draw(canvas, cell, img, src.Min, draw.Over)
		}
	}
}
