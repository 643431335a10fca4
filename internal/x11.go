package internal

import (
	"fmt"
	"image"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
	"golang.org/x/sys/unix"
)

const windowName = "ringlock"

// X11Host shows the indicator in a full-screen override-redirect window and
// runs the single event loop every repaint happens on.
type X11Host struct {
	xu           *xgbutil.XUtil
	conn         *xgb.Conn
	window       *xwindow.Window
	width        int
	height       int
	cursorHidden bool

	// Geometry is the monitor layout of this display
	Geometry *X11Geometry
}

// EventSources are the external triggers the event loop listens to besides X11.
// Nil channels are never selected.
type EventSources struct {
	Commands <-chan Command
	Resumed  <-chan struct{}
	Signals  <-chan os.Signal
}

// NewX11Host connects to the X server and maps the indicator window
func NewX11Host(config Configuration) (*X11Host, error) {
	Info("Initializing X11 connection and resources")

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	h := &X11Host{
		xu:     xu,
		conn:   xu.Conn(),
		width:  int(xu.Screen().WidthInPixels),
		height: int(xu.Screen().HeightInPixels),
	}
	Info("Screen dimensions: %dx%d", h.width, h.height)

	if err := h.createWindow(); err != nil {
		xu.Conn().Close()
		return nil, err
	}

	h.Geometry = NewX11Geometry(xu)

	// Root window reconfigurations announce resolution changes
	if err := xwindow.New(xu, xu.RootWin()).Listen(xproto.EventMaskStructureNotify); err != nil {
		Warn("Failed to listen for root window changes: %v", err)
	}

	if config.HideCursor {
		if err := h.hideCursor(); err != nil {
			Warn("Failed to hide cursor: %v", err)
		}
	}

	Info("X11 initialization completed successfully")
	return h, nil
}

// createWindow creates and maps the full-screen indicator window
func (h *X11Host) createWindow() error {
	win, err := xwindow.Generate(h.xu)
	if err != nil {
		return fmt.Errorf("failed to allocate window ID: %w", err)
	}

	err = win.CreateChecked(h.xu.RootWin(), 0, 0, h.width, h.height,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		0, // Black until the first repaint
		1, // Override redirect
		xproto.EventMaskExposure|xproto.EventMaskVisibilityChange,
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	h.window = win

	if err := ewmh.WmNameSet(h.xu, win.Id, windowName); err != nil {
		Debug("Failed to set _NET_WM_NAME: %v", err)
	}
	if err := icccm.WmClassSet(h.xu, win.Id, &icccm.WmClass{Instance: windowName, Class: windowName}); err != nil {
		Debug("Failed to set WM_CLASS: %v", err)
	}

	win.Map()
	xproto.ConfigureWindow(h.conn, win.Id, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})

	Info("Indicator window %d mapped", win.Id)
	return nil
}

// hideCursor gives the window an invisible cursor and hides the pointer via XFixes
func (h *X11Host) hideCursor() error {
	cursor, err := xproto.NewCursorId(h.conn)
	if err != nil {
		return fmt.Errorf("failed to allocate cursor ID: %w", err)
	}
	pixmap, err := xproto.NewPixmapId(h.conn)
	if err != nil {
		return fmt.Errorf("failed to allocate pixmap ID: %w", err)
	}

	// A 1x1 depth-1 pixmap used as both source and mask makes an empty cursor
	err = xproto.CreatePixmapChecked(h.conn, 1, pixmap, xproto.Drawable(h.xu.RootWin()), 1, 1).Check()
	if err != nil {
		return fmt.Errorf("failed to create pixmap: %w", err)
	}
	err = xproto.CreateCursorChecked(h.conn, cursor, pixmap, pixmap, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	xproto.FreePixmap(h.conn, pixmap)
	if err != nil {
		return fmt.Errorf("failed to create cursor: %w", err)
	}

	err = xproto.ChangeWindowAttributesChecked(h.conn, h.window.Id, xproto.CwCursor, []uint32{uint32(cursor)}).Check()
	if err != nil {
		return fmt.Errorf("failed to set invisible cursor: %w", err)
	}

	if err := xfixes.Init(h.conn); err != nil {
		Debug("XFixes unavailable, relying on the window cursor: %v", err)
		return nil
	}
	// HideCursor needs XFixes 4 negotiated first
	if _, err := xfixes.QueryVersion(h.conn, 4, 0).Reply(); err != nil {
		Debug("XFixes version query failed: %v", err)
		return nil
	}
	xfixes.HideCursor(h.conn, h.xu.RootWin())
	h.cursorHidden = true

	Debug("Cursor hidden")
	return nil
}

// Resolution returns the current root window size
func (h *X11Host) Resolution() Resolution {
	return Resolution{Width: h.width, Height: h.height}
}

// Present uploads canvas into a pixmap, makes it the window background and
// clears the window so the server repaints it. The pixmap is freed right
// away; the server keeps it alive while it is the background.
func (h *X11Host) Present(canvas *image.RGBA) error {
	ximg := xgraphics.NewConvert(h.xu, canvas)
	defer ximg.Destroy()

	if err := ximg.XSurfaceSet(h.window.Id); err != nil {
		return fmt.Errorf("failed to create background pixmap: %w", err)
	}
	ximg.XDraw()
	ximg.XPaint(h.window.Id)

	h.conn.Sync()
	return nil
}

// Run processes X11 events, the clock ticker, control commands, resumes and
// signals on one loop until SIGINT or SIGTERM. Every repaint happens here.
func (h *X11Host) Run(screen *Screen, ctl *Controller, ticker *RedrawTicker, src EventSources) {
	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		res := Resolution{Width: int(ev.Width), Height: int(ev.Height)}
		Debug("Root window configured: %dx%d", res.Width, res.Height)

		h.width, h.height = res.Width, res.Height
		h.window.MoveResize(0, 0, res.Width, res.Height)
		h.Geometry.Refresh()

		if res == screen.Resolution() {
			// Same size, the monitor layout may still have moved
			screen.Redraw()
			return
		}
		screen.SetResolution(res)
	}).Connect(h.xu, h.xu.RootWin())

	pingBefore, pingAfter, pingQuit := xevent.MainPing(h.xu)

	screen.Redraw()
	if screen.ShowClock() {
		ticker.Start()
	}

	Info("Entering main event loop")
	for {
		select {
		case <-pingBefore:
			// X event handlers run between the two pings
			<-pingAfter

		case <-pingQuit:
			Info("X event loop stopped")
			return

		case <-ticker.C():
			ticker.Start()
			screen.Redraw()

		case cmd := <-src.Commands:
			ctl.Apply(cmd)

		case <-ctl.FlashExpired():
			ctl.ExpireFlash()

		case <-ctl.WrongExpired():
			ctl.ExpireWrong()

		case <-src.Resumed:
			// The wall clock jumped while asleep
			if screen.ShowClock() {
				ticker.Start()
			}
			h.Geometry.Refresh()
			screen.Redraw()

		case sig := <-src.Signals:
			switch sig {
			case unix.SIGUSR1:
				Info("Received %v, redrawing", sig)
				screen.Redraw()
			case unix.SIGHUP:
				Info("Received %v, refreshing monitors", sig)
				h.Geometry.Refresh()
				screen.Redraw()
			default:
				Info("Received %v, shutting down", sig)
				return
			}
		}
	}
}

// Close restores the cursor, destroys the window and closes the connection
func (h *X11Host) Close() {
	Info("Cleaning up X11 resources")

	if h.cursorHidden {
		xfixes.ShowCursor(h.conn, h.xu.RootWin())
	}
	if h.window != nil {
		h.window.Destroy()
	}
	xevent.Quit(h.xu)
	h.conn.Close()
}
