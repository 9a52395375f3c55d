package app

import (
	"fmt"
	"runtime"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// WailsHost adapts a Wails application and its tray to Host.
type WailsHost struct {
	app  *application.App
	tray *application.SystemTray
}

// NewWailsHost returns a Host for app. tray may be nil when the tray is disabled.
func NewWailsHost(app *application.App, tray *application.SystemTray) *WailsHost {
	return &WailsHost{app: app, tray: tray}
}

// Window looks up a window by name.
func (h *WailsHost) Window(name string) (Window, bool) {
	w, ok := h.app.Window.GetByName(name)
	if !ok || w == nil {
		return nil, false
	}
	return &wailsWindow{w: w}, true
}

// SupportsTray reports whether a tray icon exists on a desktop platform.
func (h *WailsHost) SupportsTray() bool {
	if h.tray == nil {
		return false
	}
	switch runtime.GOOS {
	case "darwin", "windows", "linux":
		return true
	}
	return false
}

// OnTrayEvent forwards tray interactions to fn. Right clicks are left to the
// tray so its menu still opens.
func (h *WailsHost) OnTrayEvent(fn func(TrayEvent)) {
	h.tray.OnClick(func() { fn(TrayClick) })
	h.tray.OnDoubleClick(func() { fn(TrayDoubleClick) })
	h.tray.OnMouseEnter(func() { fn(TrayMouseEnter) })
	h.tray.OnMouseLeave(func() { fn(TrayMouseLeave) })
}

// wailsWindow turns panics from a destroyed window into errors.
type wailsWindow struct {
	w application.Window
}

func (w *wailsWindow) IsVisible() bool { return w.w.IsVisible() }

func (w *wailsWindow) Show() error {
	return guard("show", func() { w.w.Show() })
}

func (w *wailsWindow) Hide() error {
	return guard("hide", func() { w.w.Hide() })
}

func (w *wailsWindow) Focus() error {
	return guard("focus", func() { w.w.Focus() })
}

func (w *wailsWindow) Position() (int, int) { return w.w.Position() }

func (w *wailsWindow) Size() (int, int) { return w.w.Size() }

func (w *wailsWindow) SetPosition(x, y int) { w.w.SetPosition(x, y) }

func (w *wailsWindow) SetSize(width, height int) { w.w.SetSize(width, height) }

func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s window: %v", op, r)
		}
	}()
	fn()
	return nil
}
