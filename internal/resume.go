package internal

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	login1Path      = "/org/freedesktop/login1"
	login1Interface = "org.freedesktop.login1.Manager"
	prepareForSleep = "PrepareForSleep"
)

// ResumeWatcher reports system resumes announced by logind on the system bus
type ResumeWatcher struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	resumed chan struct{}
	done    chan struct{}
}

// NewResumeWatcher subscribes to logind's PrepareForSleep signal
func NewResumeWatcher() (*ResumeWatcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchInterface(login1Interface),
		dbus.WithMatchMember(prepareForSleep),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", prepareForSleep, err)
	}

	w := &ResumeWatcher{
		conn:    conn,
		signals: make(chan *dbus.Signal, 4),
		resumed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	conn.Signal(w.signals)

	go w.watch()

	Info("Watching logind for resume from sleep")
	return w, nil
}

func (w *ResumeWatcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case sig, ok := <-w.signals:
			if !ok {
				return
			}
			if !isResumeSignal(sig) {
				continue
			}
			Info("System resumed from sleep")
			// Several resumes before the loop catches up collapse into one
			select {
			case w.resumed <- struct{}{}:
			default:
			}
		}
	}
}

// C delivers a value after each resume
func (w *ResumeWatcher) C() <-chan struct{} {
	return w.resumed
}

// Close stops watching and closes the bus connection
func (w *ResumeWatcher) Close() {
	close(w.done)
	w.conn.RemoveSignal(w.signals)
	w.conn.Close()
}

// isResumeSignal reports whether sig is PrepareForSleep(false)
func isResumeSignal(sig *dbus.Signal) bool {
	if sig == nil || sig.Name != login1Interface+"."+prepareForSleep {
		return false
	}
	if len(sig.Body) != 1 {
		return false
	}
	sleeping, ok := sig.Body[0].(bool)
	return ok && !sleeping
}
