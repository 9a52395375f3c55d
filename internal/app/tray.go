package app

import "log/slog"

// TrayToggle shows or hides a window when the tray icon is clicked.
type TrayToggle struct {
	window Window
}

// NewTrayToggle returns a listener bound to window.
func NewTrayToggle(window Window) *TrayToggle {
	return &TrayToggle{window: window}
}

// Handle reacts to a tray event. Only clicks do anything.
func (t *TrayToggle) Handle(ev TrayEvent) {
	if ev != TrayClick {
		return
	}
	toggleWindow(t.window)
}

// toggleWindow hides a visible window, or shows and focuses a hidden one.
// Failures leave the window as it was; the user can simply click again.
func toggleWindow(w Window) {
	if w.IsVisible() {
		if err := w.Hide(); err != nil {
			slog.Debug("hide window", "error", err)
		}
		return
	}
	showWindow(w)
}

func showWindow(w Window) {
	if err := w.Show(); err != nil {
		slog.Debug("show window", "error", err)
	}
	if err := w.Focus(); err != nil {
		slog.Debug("focus window", "error", err)
	}
}
