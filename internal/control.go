package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// FlashTimeout is how long a key flash stays before the indicator clears
	FlashTimeout = 1 * time.Second

	// WrongTimeout is how long "Nope." stays before returning to idle
	WrongTimeout = 2 * time.Second
)

// Command is a state change requested by an input or authentication collaborator
type Command int

const (
	// CommandKey reports an accepted key
	CommandKey Command = iota
	// CommandBackspace reports an accepted deletion
	CommandBackspace
	// CommandClear reports that the input buffer was emptied
	CommandClear
	// CommandVerify reports that a credential check started
	CommandVerify
	// CommandWrong reports that a credential check failed
	CommandWrong
	// CommandIdle reports that no credential check is running
	CommandIdle
	// CommandRedraw requests a repaint without a state change
	CommandRedraw
)

var commandNames = map[string]Command{
	"key":       CommandKey,
	"backspace": CommandBackspace,
	"clear":     CommandClear,
	"verify":    CommandVerify,
	"wrong":     CommandWrong,
	"idle":      CommandIdle,
	"redraw":    CommandRedraw,
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "unknown"
}

// ParseCommand parses one control line, ignoring case and surrounding space
func ParseCommand(line string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(line))
	cmd, ok := commandNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown command %q", name)
	}
	return cmd, nil
}

// ReadCommands parses control lines from r into out until r is exhausted.
// Blank lines and lines starting with '#' are skipped, bad lines are logged.
func ReadCommands(r io.Reader, out chan<- Command) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			Warn("Ignoring control line: %v", err)
			continue
		}
		out <- cmd
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read control input: %w", err)
	}
	return nil
}

// Controller applies commands to a Screen and owns the one-shot timers that
// expire key flashes and failed-check messages.
type Controller struct {
	screen *Screen
	flash  timer
	wrong  timer
}

// NewController creates a controller for screen with idle expiry timers
func NewController(screen *Screen) *Controller {
	return newController(screen, newRealTimer)
}

func newController(screen *Screen, factory func(time.Duration) timer) *Controller {
	return &Controller{
		screen: screen,
		flash:  newStoppedTimer(factory),
		wrong:  newStoppedTimer(factory),
	}
}

// FlashExpired fires when a key flash should be cleared
func (c *Controller) FlashExpired() <-chan time.Time { return c.flash.C() }

// WrongExpired fires when the failed-check message should be cleared
func (c *Controller) WrongExpired() <-chan time.Time { return c.wrong.C() }

// Apply performs cmd on the screen, arming expiry timers as needed
func (c *Controller) Apply(cmd Command) {
	Debug("Applying control command: %s", cmd)

	switch cmd {
	case CommandKey:
		c.screen.KeyAccepted()
		rearm(c.flash, FlashTimeout)
	case CommandBackspace:
		c.screen.KeyDeleted()
		rearm(c.flash, FlashTimeout)
	case CommandClear:
		c.flash.Stop()
		c.screen.ResetInput()
	case CommandVerify:
		c.wrong.Stop()
		c.screen.SetCredentialState(CredentialVerifying)
	case CommandWrong:
		c.screen.SetCredentialState(CredentialWrong)
		rearm(c.wrong, WrongTimeout)
	case CommandIdle:
		c.wrong.Stop()
		c.screen.SetCredentialState(CredentialIdle)
	case CommandRedraw:
		c.screen.Redraw()
	}
}

// ExpireFlash clears the indicator after a key flash
func (c *Controller) ExpireFlash() {
	c.screen.ClearIndicator()
}

// ExpireWrong returns to the idle credential state and clears the indicator
func (c *Controller) ExpireWrong() {
	c.screen.credential = CredentialIdle
	c.screen.ClearIndicator()
}
