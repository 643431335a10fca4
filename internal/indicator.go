package internal

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

const (
	// BadgeRadius is the radius of the ring
	BadgeRadius = 90

	// BadgeMargin leaves room around the ring for the stroke and clock ticks
	BadgeMargin = 5

	// BadgeDiameter is the side of the square Badge Buffer
	BadgeDiameter = 2 * (BadgeRadius + BadgeMargin)

	badgeCenter = BadgeRadius + BadgeMargin

	ringLineWidth = 10.0

	// FlashSpan is the length of the highlight arc shown after a keystroke
	FlashSpan = math.Pi / 3

	// separatorSpan is the length of the black marks framing the highlight
	separatorSpan = math.Pi / 128

	// TextVerifying is shown while a credential check runs
	TextVerifying = "wait for it…"

	// TextWrong is shown after a failed credential check
	TextWrong = "Nope."

	timeLayout = "15:04"
	dateLayout = "Mon 02 Jan"

	// The time moves up and the date down so the pair reads as one centered block
	timeShift = -6.0
	dateShift = 14.0
)

var (
	fillVerifying = color.NRGBA{0, 114, 255, 191}
	fillWrong     = color.NRGBA{250, 0, 0, 191}
	fillIdle      = color.NRGBA{100, 100, 100, 191}

	strokeVerifying = color.NRGBA{51, 0, 250, 255}
	strokeWrong     = color.NRGBA{125, 51, 0, 255}
	strokeIdle      = color.NRGBA{0, 229, 253, 255}

	flashKey       = color.NRGBA{0, 60, 172, 255}
	flashBackspace = color.NRGBA{219, 51, 0, 255}

	hourHandColor   = color.NRGBA{0, 60, 172, 255}
	minuteHandColor = color.NRGBA{1, 3, 16, 255}

	textColor  = color.NRGBA{0, 0, 0, 255}
	blackColor = color.NRGBA{0, 0, 0, 255}
)

// Arc is one stroked piece of the ring. Angles are radians, 0 at three
// o'clock and increasing clockwise.
type Arc struct {
	Radius    float64
	Start     float64
	End       float64
	LineWidth float64
	Color     color.NRGBA
}

// Mid returns the angle halfway along the arc
func (a Arc) Mid() float64 {
	return (a.Start + a.End) / 2
}

// Badge describes everything drawn into one Badge Buffer, in drawing order
type Badge struct {
	Fill   color.NRGBA
	Stroke color.NRGBA

	// Primary is the large centered text, empty for none
	Primary string
	// Secondary is the date line under the time, empty for none
	Secondary string

	// Flash is the highlight arc, nil when no key flash is active
	Flash *Arc
	// Hands holds the hour hand pair followed by the minute hand pair
	Hands []Arc
	// Ticks holds the twelve clock-face marks
	Ticks []Arc
	// Arcs is every stroke drawn after the text, in order, ending with the
	// inner separator circle
	Arcs []Arc
}

// RandomAngle returns a uniformly distributed angle in [0, 2π)
func RandomAngle() float64 {
	return rand.Float64() * 2 * math.Pi
}

// ringColors returns the fill and stroke keyed by the credential state
func ringColors(cred CredentialState) (fill, stroke color.NRGBA) {
	switch cred {
	case CredentialVerifying:
		return fillVerifying, strokeVerifying
	case CredentialWrong:
		return fillWrong, strokeWrong
	default:
		return fillIdle, strokeIdle
	}
}

// HandAngles returns the hour and minute hand angles for t, measured from
// three o'clock with twelve o'clock at -π/2.
func HandAngles(t time.Time) (hour, minute float64) {
	h := float64(t.Hour() % 12)
	m := float64(t.Minute())

	hour = (2*math.Pi/12)*h + (2*math.Pi/12)*(m/60) - math.Pi/2
	minute = (2*math.Pi/60)*m - math.Pi/2
	return hour, minute
}

// BuildBadge lays out the badge for the given state and time. angle supplies
// the highlight start and is only called when a flash is shown.
func BuildBadge(activity ActivityState, cred CredentialState, showClock bool, now time.Time, angle func() float64) Badge {
	b := Badge{}
	b.Fill, b.Stroke = ringColors(cred)

	switch cred {
	case CredentialVerifying:
		b.Primary = TextVerifying
	case CredentialWrong:
		b.Primary = TextWrong
	default:
		if showClock {
			b.Primary = now.Format(timeLayout)
			b.Secondary = now.Format(dateLayout)
		}
	}

	if activity == ActivityKeyActive || activity == ActivityBackspaceActive {
		if angle == nil {
			angle = RandomAngle
		}
		start := angle()

		flash := Arc{
			Radius:    BadgeRadius,
			Start:     start,
			End:       start + FlashSpan,
			LineWidth: ringLineWidth,
			Color:     flashKey,
		}
		if activity == ActivityBackspaceActive {
			flash.Color = flashBackspace
		}
		b.Flash = &flash

		b.Arcs = append(b.Arcs,
			flash,
			Arc{BadgeRadius, start, start + separatorSpan, ringLineWidth, blackColor},
			Arc{BadgeRadius, start + FlashSpan, start + FlashSpan + separatorSpan, ringLineWidth, blackColor},
		)
	} else if showClock {
		b.Hands = clockHands(now)
		b.Ticks = clockTicks()
		b.Arcs = append(b.Arcs, b.Hands...)
		b.Arcs = append(b.Arcs, b.Ticks...)
	}

	b.Arcs = append(b.Arcs, Arc{
		Radius:    BadgeRadius - 5,
		Start:     0,
		End:       2 * math.Pi,
		LineWidth: 2,
		Color:     blackColor,
	})

	return b
}

// clockHands returns each hand as two short arcs either side of its angle,
// leaving a hairline gap at the exact position.
func clockHands(now time.Time) []Arc {
	hour, minute := HandAngles(now)

	return []Arc{
		{BadgeRadius, hour - math.Pi/32, hour - math.Pi/512, ringLineWidth, hourHandColor},
		{BadgeRadius, hour + math.Pi/512, hour + math.Pi/32, ringLineWidth, hourHandColor},
		{BadgeRadius, minute - math.Pi/64, minute - math.Pi/512, ringLineWidth, minuteHandColor},
		{BadgeRadius, minute + math.Pi/512, minute + math.Pi/64, ringLineWidth, minuteHandColor},
	}
}

// clockTicks returns twelve marks on the outer edge, every third one heavier
func clockTicks() []Arc {
	ticks := make([]Arc, 0, 12)
	for i := 0; i < 12; i++ {
		pos := (2 * math.Pi / 12) * float64(i)
		tick := Arc{
			Radius:    BadgeRadius + 3,
			Start:     pos - math.Pi/256,
			End:       pos + math.Pi/256,
			LineWidth: 4,
			Color:     blackColor,
		}
		if i%3 == 0 {
			tick.Radius = BadgeRadius + 1
			tick.LineWidth = 8
		}
		ticks = append(ticks, tick)
	}
	return ticks
}
