package internal

import (
	"testing"
)

const xrandrOutput = `Screen 0: minimum 320 x 200, current 3840 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.00*+  59.97
HDMI-1 connected 1920x1080+1920+0 (normal left inverted right x axis y axis) 527mm x 296mm
   1920x1080     60.00*+
DP-1 disconnected (normal left inverted right x axis y axis)
DP-2 connected (normal left inverted right x axis y axis)
`

func TestParseXrandrMonitors(t *testing.T) {
	got := parseXrandrMonitors(xrandrOutput)
	want := []Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d monitors, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("monitor %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if m := parseXrandrMonitors(""); len(m) != 0 {
		t.Errorf("empty output gave %+v", m)
	}
}

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in   string
		want Monitor
		ok   bool
	}{
		{"2560x1440+1920+120", Monitor{X: 1920, Y: 120, Width: 2560, Height: 1440}, true},
		{"800x600+0+0", Monitor{Width: 800, Height: 600}, true},
		{"(normal", Monitor{}, false},
		{"800x600", Monitor{}, false},
		{"axb+0+0", Monitor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseGeometry(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseGeometry(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
