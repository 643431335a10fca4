package internal

import (
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// PrimaryFontSize is used for the state text and the time
	PrimaryFontSize = 28.0

	// SecondaryFontSize is used for the date below the time
	SecondaryFontSize = 14.0
)

// FontSet holds the two faces the badge text is drawn with
type FontSet struct {
	Primary   font.Face
	Secondary font.Face
}

// NewFontSet builds the badge faces from the TTF at path, or from the
// embedded Go Regular font when path is empty.
func NewFontSet(path string) (*FontSet, error) {
	if path != "" {
		primary, err := gg.LoadFontFace(path, PrimaryFontSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", path, err)
		}
		secondary, err := gg.LoadFontFace(path, SecondaryFontSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", path, err)
		}
		Debug("Loaded badge font from %s", path)
		return &FontSet{Primary: primary, Secondary: secondary}, nil
	}

	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}

	primary, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    PrimaryFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create primary face: %w", err)
	}

	secondary, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    SecondaryFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("failed to create secondary face: %w", err)
	}

	return &FontSet{Primary: primary, Secondary: secondary}, nil
}

// Close releases both faces
func (f *FontSet) Close() {
	if f.Primary != nil {
		f.Primary.Close()
	}
	if f.Secondary != nil {
		f.Secondary.Close()
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// CenterText returns the baseline origin that centers ink bounds on (center, center):
// the center minus half the measured extent minus the bearing, on both axes.
func CenterText(bounds fixed.Rectangle26_6, center float64) (x, y float64) {
	width := fixedToFloat(bounds.Max.X - bounds.Min.X)
	height := fixedToFloat(bounds.Max.Y - bounds.Min.Y)
	xBearing := fixedToFloat(bounds.Min.X)
	yBearing := fixedToFloat(bounds.Min.Y)

	x = center - (width/2 + xBearing)
	y = center - (height/2 + yBearing)
	return x, y
}

// measureCentered measures text in face and returns its centered origin
func measureCentered(face font.Face, text string, center float64) (x, y float64) {
	bounds, _ := font.BoundString(face, text)
	return CenterText(bounds, center)
}
