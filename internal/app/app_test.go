package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jarvis-agent/desktop/config"
	"github.com/jarvis-agent/desktop/hotkey"
	"github.com/jarvis-agent/desktop/internal/types"
	"github.com/jarvis-agent/desktop/shell"
	"github.com/jarvis-agent/desktop/store"
)

func newTestService(t *testing.T) (*Service, *fakeWindow, *fakeHost) {
	t.Helper()

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	cfg.Shortcuts = []types.Shortcut{
		{ID: "1", Accelerator: "Ctrl+Shift+J", Action: types.ActionToggleWindow},
	}

	st, err := store.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}

	s := New("1.2.3", cfg, hotkey.NewService(nil), shell.NewService(nil))
	s.store = st
	t.Cleanup(s.Shutdown)

	w := &fakeWindow{visible: true, width: 800, height: 600}
	host := &fakeHost{windows: map[string]Window{config.MainWindow: w}}
	return s, w, host
}

func TestServiceSetup(t *testing.T) {
	s, w, host := newTestService(t)

	if err := s.Setup(host); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if s.GetVersion() != "1.2.3" {
		t.Errorf("GetVersion() = %q", s.GetVersion())
	}
	if got := s.shortcuts.Registered(); len(got) != 1 || got[0] != "ctrl+shift+j" {
		t.Errorf("Registered() = %v, want [ctrl+shift+j]", got)
	}

	host.dispatch(TrayClick)
	if w.visible || s.IsWindowVisible() {
		t.Error("tray click did not hide the main window")
	}

	s.ToggleWindow()
	if !w.visible {
		t.Error("ToggleWindow() did not show the main window")
	}
	s.HideWindow()
	s.ShowWindow()
	want := []string{"hide", "show", "focus", "hide", "show", "focus"}
	if len(w.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", w.calls, want)
	}
	for i := range want {
		if w.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", w.calls, want)
		}
	}
}

func TestServiceSetupMissingMainWindow(t *testing.T) {
	s, _, _ := newTestService(t)

	err := s.Setup(&fakeHost{windows: map[string]Window{}})
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("Setup() error = %v, want ErrWindowNotFound", err)
	}
	if len(s.shortcuts.Registered()) != 0 {
		t.Error("shortcuts bound although setup failed")
	}
}

func TestServiceWindowState(t *testing.T) {
	s, w, host := newTestService(t)

	if err := s.Setup(host); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	w.x, w.y, w.width, w.height = 40, 50, 900, 700
	s.SaveWindowState()

	// A fresh window picks up the saved geometry on setup.
	w2 := &fakeWindow{width: 100, height: 100}
	s.window = nil
	if err := s.Setup(&fakeHost{windows: map[string]Window{config.MainWindow: w2}}); err != nil {
		t.Fatalf("second Setup() error = %v", err)
	}
	if w2.x != 40 || w2.y != 50 || w2.width != 900 || w2.height != 700 {
		t.Errorf("restored geometry = %d,%d %dx%d", w2.x, w2.y, w2.width, w2.height)
	}
}

func TestServiceShortcutManagement(t *testing.T) {
	s, _, host := newTestService(t)
	if err := s.Setup(host); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if err := s.AddShortcut(types.Shortcut{Accelerator: "Ctrl+Banana", Action: types.ActionShowWindow}); !errors.Is(err, hotkey.ErrUnknownKey) {
		t.Errorf("AddShortcut() error = %v, want ErrUnknownKey", err)
	}
	if err := s.AddShortcut(types.Shortcut{Accelerator: "Alt+F1", Action: types.ActionHideWindow}); err != nil {
		t.Fatalf("AddShortcut() error = %v", err)
	}
	if len(s.GetShortcuts()) != 2 || len(s.shortcuts.Registered()) != 2 {
		t.Fatalf("shortcuts = %v, registered = %v", s.GetShortcuts(), s.shortcuts.Registered())
	}

	if err := s.RemoveShortcut("1"); err != nil {
		t.Fatalf("RemoveShortcut() error = %v", err)
	}
	if got := s.shortcuts.Registered(); len(got) != 1 || got[0] != "alt+f1" {
		t.Errorf("Registered() = %v, want [alt+f1]", got)
	}
}

func TestServiceApplyConfig(t *testing.T) {
	s, _, host := newTestService(t)
	if err := s.Setup(host); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	reloaded, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	reloaded.Shell.Open = `^https://docs\.example\.com/`
	s.applyConfig(reloaded)

	if len(s.shortcuts.Registered()) != 0 {
		t.Errorf("Registered() = %v, want none after reload", s.shortcuts.Registered())
	}
	if err := s.shell.Open("https://example.com"); !errors.Is(err, shell.ErrNotAllowed) {
		t.Errorf("Open() error = %v, want ErrNotAllowed under reloaded scope", err)
	}
}
