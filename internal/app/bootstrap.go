package app

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrWindowNotFound is returned by Setup when the window to toggle does not exist.
var ErrWindowNotFound = errors.New("window not found")

// Window is the slice of a host window the shell drives. Visibility state
// belongs to the host; the shell only reads it and requests transitions.
type Window interface {
	IsVisible() bool
	Show() error
	Hide() error
	Focus() error
}

// TrayEvent is a user interaction with the system tray icon.
type TrayEvent int

const (
	TrayClick TrayEvent = iota + 1
	TrayDoubleClick
	TrayRightClick
	TrayMouseEnter
	TrayMouseLeave
)

func (e TrayEvent) String() string {
	switch e {
	case TrayClick:
		return "click"
	case TrayDoubleClick:
		return "double-click"
	case TrayRightClick:
		return "right-click"
	case TrayMouseEnter:
		return "mouse-enter"
	case TrayMouseLeave:
		return "mouse-leave"
	default:
		return fmt.Sprintf("TrayEvent(%d)", int(e))
	}
}

// Host is the desktop runtime as seen from the setup hook.
type Host interface {
	// Window looks up a window by name.
	Window(name string) (Window, bool)
	// SupportsTray reports whether the platform has a system tray.
	SupportsTray() bool
	// OnTrayEvent registers fn for every tray event. fn runs on the
	// host's dispatch goroutine and must not block.
	OnTrayEvent(fn func(TrayEvent))
}

// Setup wires the tray icon to toggle the named window. It runs once, after
// the host created its windows. On platforms without a tray it does nothing.
// A missing window is an error and no listener is registered.
func Setup(host Host, windowName string) error {
	if !host.SupportsTray() {
		slog.Info("no system tray on this platform, skipping tray setup")
		return nil
	}

	window, ok := host.Window(windowName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, windowName)
	}

	toggle := NewTrayToggle(window)
	host.OnTrayEvent(toggle.Handle)
	slog.Debug("tray toggle registered", "window", windowName)
	return nil
}
