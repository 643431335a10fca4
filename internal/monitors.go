package internal

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xinerama"
)

// X11Geometry reports monitor rectangles on an X11 display. The layout is
// cached and only re-queried by Refresh, which the host calls on screen changes.
type X11Geometry struct {
	xu           *xgbutil.XUtil
	conn         *xgb.Conn
	root         xproto.Window
	haveRandr    bool
	haveXinerama bool
	monitors     []Monitor
}

// NewX11Geometry probes the RandR and Xinerama extensions and queries the layout once
func NewX11Geometry(xu *xgbutil.XUtil) *X11Geometry {
	g := &X11Geometry{
		xu:   xu,
		conn: xu.Conn(),
		root: xu.RootWin(),
	}

	if err := randr.Init(g.conn); err != nil {
		Warn("RandR extension unavailable: %v", err)
	} else if ver, err := randr.QueryVersion(g.conn, 1, 3).Reply(); err != nil {
		Warn("RandR version query failed: %v", err)
	} else if ver.MajorVersion < 1 || (ver.MajorVersion == 1 && ver.MinorVersion < 3) {
		Warn("RandR %d.%d is too old for CRTC queries", ver.MajorVersion, ver.MinorVersion)
	} else {
		g.haveRandr = true
	}

	if err := xgbxinerama.Init(g.conn); err != nil {
		Warn("Xinerama extension unavailable: %v", err)
	} else {
		g.haveXinerama = true
	}

	g.Refresh()
	return g
}

// Monitors returns the cached layout, empty when it is unknown
func (g *X11Geometry) Monitors() []Monitor {
	return g.monitors
}

// Refresh re-queries the layout: RandR CRTCs first, then Xinerama heads, then
// the xrandr tool. When all fail the layout becomes unknown.
func (g *X11Geometry) Refresh() {
	if g.haveRandr {
		monitors, err := g.randrMonitors()
		if err == nil && len(monitors) > 0 {
			g.setMonitors("randr", monitors)
			return
		}
		if err != nil {
			Warn("RandR monitor query failed: %v", err)
		}
	}

	if g.haveXinerama {
		monitors, err := g.xineramaMonitors()
		if err == nil && len(monitors) > 0 {
			g.setMonitors("xinerama", monitors)
			return
		}
		if err != nil {
			Warn("Xinerama monitor query failed: %v", err)
		}
	}

	monitors, err := xrandrMonitors()
	if err == nil && len(monitors) > 0 {
		g.setMonitors("xrandr", monitors)
		return
	}
	if err != nil {
		Warn("xrandr monitor query failed: %v", err)
	}

	Info("Monitor layout unknown, the indicator will be centered on the root window")
	g.monitors = nil
}

func (g *X11Geometry) setMonitors(source string, monitors []Monitor) {
	g.monitors = monitors
	Info("Detected %d monitor(s) via %s", len(monitors), source)
	for i, m := range monitors {
		Debug("Monitor %d: x=%d, y=%d, width=%d, height=%d", i, m.X, m.Y, m.Width, m.Height)
	}
}

// randrMonitors lists every active CRTC
func (g *X11Geometry) randrMonitors() ([]Monitor, error) {
	res, err := randr.GetScreenResourcesCurrent(g.conn, g.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(g.conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			Debug("Skipping CRTC %d: %v", crtc, err)
			continue
		}
		// Disabled CRTCs have no mode and no outputs
		if info.Mode == 0 || info.NumOutputs == 0 || info.Width == 0 || info.Height == 0 {
			continue
		}
		monitors = append(monitors, Monitor{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// xineramaMonitors lists the physical heads Xinerama reports
func (g *X11Geometry) xineramaMonitors() ([]Monitor, error) {
	heads, err := xinerama.PhysicalHeads(g.xu)
	if err != nil {
		return nil, err
	}

	monitors := make([]Monitor, 0, len(heads))
	for _, head := range heads {
		monitors = append(monitors, Monitor{
			X:      head.X(),
			Y:      head.Y(),
			Width:  head.Width(),
			Height: head.Height(),
		})
	}
	return monitors, nil
}

// xrandrMonitors runs `xrandr --current` and parses its output
func xrandrMonitors() ([]Monitor, error) {
	cmd := exec.Command("xrandr", "--current")
	Debug("Executing command: %s", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to run xrandr: %w", err)
	}

	return parseXrandrMonitors(string(output)), nil
}

// parseXrandrMonitors extracts WxH+X+Y geometries of connected outputs from
// `xrandr --current` output. Connected outputs without a mode are skipped.
func parseXrandrMonitors(output string) []Monitor {
	var monitors []Monitor

	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, " connected")
		if idx < 0 {
			continue
		}

		// Primary outputs carry the "primary" keyword before the geometry
		fields := strings.Fields(line[idx+len(" connected"):])
		if len(fields) > 0 && fields[0] == "primary" {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}

		m, ok := parseGeometry(fields[0])
		if !ok {
			Debug("No geometry in xrandr line: %s", line)
			continue
		}
		monitors = append(monitors, m)
	}

	return monitors
}

// parseGeometry parses "1920x1080+0+0"
func parseGeometry(s string) (Monitor, bool) {
	parts := strings.Split(s, "+")
	if len(parts) != 3 {
		return Monitor{}, false
	}
	size := strings.Split(parts[0], "x")
	if len(size) != 2 {
		return Monitor{}, false
	}

	var vals [4]int
	for i, str := range []string{size[0], size[1], parts[1], parts[2]} {
		v, err := strconv.Atoi(str)
		if err != nil {
			return Monitor{}, false
		}
		vals[i] = v
	}

	return Monitor{X: vals[2], Y: vals[3], Width: vals[0], Height: vals[1]}, true
}
