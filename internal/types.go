package internal

import (
	"image"
)

// Monitor represents a physical display in canvas coordinates
type Monitor struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Resolution is the size of the full-screen canvas in pixels
type Resolution struct {
	Width  int
	Height int
}

// ActivityState reflects recent keystroke activity
type ActivityState int

const (
	// ActivityIdle means no input has been registered yet
	ActivityIdle ActivityState = iota

	// ActivityPressed means at least one key was registered, no flash pending
	ActivityPressed

	// ActivityKeyActive flashes the ring after an accepted key
	ActivityKeyActive

	// ActivityBackspaceActive flashes the ring after an accepted deletion
	ActivityBackspaceActive
)

func (s ActivityState) String() string {
	switch s {
	case ActivityIdle:
		return "idle"
	case ActivityPressed:
		return "pressed"
	case ActivityKeyActive:
		return "key-active"
	case ActivityBackspaceActive:
		return "backspace-active"
	default:
		return "unknown"
	}
}

// CredentialState reflects the progress of a credential check
type CredentialState int

const (
	// CredentialIdle means no check is running
	CredentialIdle CredentialState = iota

	// CredentialVerifying means a check is in progress
	CredentialVerifying

	// CredentialWrong means the last check failed
	CredentialWrong
)

func (s CredentialState) String() string {
	switch s {
	case CredentialIdle:
		return "idle"
	case CredentialVerifying:
		return "verifying"
	case CredentialWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// Configuration holds the application settings
type Configuration struct {
	// Background color as six hex digits, optionally prefixed with '#'
	Color string `json:"color" toml:"color"`

	// Background image drawn instead of the color when set
	ImagePath string `json:"image" toml:"image"`

	// Whether the background image is repeated over the whole canvas
	Tile bool `json:"tile" toml:"tile"`

	// Whether the badge shows the time, date and clock face
	ShowClock bool `json:"show_clock" toml:"show_clock"`

	// TrueType font for the badge text, the embedded Go font when empty
	FontPath string `json:"font_path" toml:"font_path"`

	// Hide the pointer while the indicator window is mapped
	HideCursor bool `json:"hide_cursor" toml:"hide_cursor"`

	// Repaint after the system resumes from suspend
	RedrawOnResume bool `json:"redraw_on_resume" toml:"redraw_on_resume"`
}

// Presenter puts a finished canvas on screen
type Presenter interface {
	// Present makes canvas the visible content and flushes it to the display
	Present(canvas *image.RGBA) error
}

// GeometryProvider supplies the active monitor rectangles.
// An empty slice means the layout is unknown.
type GeometryProvider interface {
	Monitors() []Monitor
}
