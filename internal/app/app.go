package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jarvis-agent/desktop/config"
	"github.com/jarvis-agent/desktop/hotkey"
	"github.com/jarvis-agent/desktop/internal/types"
	"github.com/jarvis-agent/desktop/shell"
	"github.com/jarvis-agent/desktop/store"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// Service provides the shell's window and settings API bound to Wails.
// This struct focuses on orchestration; the plugins do the actual work.
type Service struct {
	mu  sync.RWMutex
	cfg *config.Config

	shortcuts *hotkey.Service
	shell     *shell.Service
	store     *store.Store

	// UI references - set via Init and Setup
	app    *application.App
	window Window

	stopWatch context.CancelFunc

	// Version info (set by caller)
	version string
}

// New creates a new Service. Call Init() after the Wails app is created.
func New(version string, cfg *config.Config, shortcuts *hotkey.Service, sh *shell.Service) *Service {
	return &Service{
		version:   version,
		cfg:       cfg,
		shortcuts: shortcuts,
		shell:     sh,
	}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// Init stores the app reference and opens the state store.
func (s *Service) Init(app *application.App) {
	s.app = app
	s.setupStore()
}

// Setup is the one-time hook run after the host created its windows. It wires
// the tray toggle for the main window, then restores the window geometry and
// applies shortcut bindings.
func (s *Service) Setup(host Host) error {
	if err := Setup(host, config.MainWindow); err != nil {
		return fmt.Errorf("tray setup: %w", err)
	}

	if w, ok := host.Window(config.MainWindow); ok {
		s.mu.Lock()
		s.window = w
		s.mu.Unlock()
		s.restoreWindowState()
	}

	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	s.applyShortcuts(cfg)
	return nil
}

// ServiceShutdown persists window state and releases resources.
func (s *Service) ServiceShutdown() error {
	s.Shutdown()
	return nil
}

// Shutdown persists window state and releases resources.
func (s *Service) Shutdown() {
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.SaveWindowState()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Error("close state store", "error", err)
		}
		s.store = nil
	}
}

func (s *Service) setupStore() {
	dir, err := config.DataDir()
	if err != nil {
		slog.Error("get data dir for state store", "error", err)
		return
	}

	st, err := store.New(dir)
	if err != nil {
		slog.Error("init state store", "error", err)
		return
	}
	s.store = st
	slog.Info("state store initialized", "path", dir)
}

// emit is a safe wrapper around app.Event.Emit
func (s *Service) emit(name string, data any) {
	if s.app != nil {
		s.app.Event.Emit(name, data)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Window
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) mainWindow() Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// ShowWindow shows and focuses the main window.
func (s *Service) ShowWindow() {
	if w := s.mainWindow(); w != nil {
		showWindow(w)
		s.emit(EventWindowVisible, true)
	}
}

// HideWindow hides the main window.
func (s *Service) HideWindow() {
	if w := s.mainWindow(); w != nil {
		if err := w.Hide(); err != nil {
			slog.Debug("hide window", "error", err)
		}
		s.emit(EventWindowVisible, false)
	}
}

// ToggleWindow hides the main window if visible, otherwise shows it.
func (s *Service) ToggleWindow() {
	if w := s.mainWindow(); w != nil {
		toggleWindow(w)
		s.emit(EventWindowVisible, w.IsVisible())
	}
}

// IsWindowVisible reports whether the main window is visible.
func (s *Service) IsWindowVisible() bool {
	if w := s.mainWindow(); w != nil {
		return w.IsVisible()
	}
	return false
}

// SaveWindowState persists the main window geometry.
func (s *Service) SaveWindowState() {
	p, ok := s.mainWindow().(placement)
	if !ok || s.store == nil {
		return
	}
	saveGeometry(s.store, config.MainWindow, p)
}

func (s *Service) restoreWindowState() {
	p, ok := s.mainWindow().(placement)
	if !ok || s.store == nil {
		return
	}
	restoreGeometry(s.store, config.MainWindow, p)
}

// ─────────────────────────────────────────────────────────────────────────────
// Shortcuts
// ─────────────────────────────────────────────────────────────────────────────

// GetShortcuts returns the configured shortcut bindings.
func (s *Service) GetShortcuts() []types.Shortcut {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.GetShortcuts()
}

// AddShortcut binds an accelerator to a window action and saves it.
func (s *Service) AddShortcut(sc types.Shortcut) error {
	if _, err := hotkey.ParseAccelerator(sc.Accelerator); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.cfg.AddShortcut(sc)
	cfg := s.cfg
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.applyShortcuts(cfg)
	return nil
}

// RemoveShortcut removes a shortcut binding by ID and saves the config.
func (s *Service) RemoveShortcut(id string) error {
	s.mu.Lock()
	err := s.cfg.RemoveShortcut(id)
	cfg := s.cfg
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.applyShortcuts(cfg)
	return nil
}

func (s *Service) applyShortcuts(cfg *config.Config) {
	if s.shortcuts == nil {
		return
	}

	bindings := make(map[string]func(), len(cfg.Shortcuts))
	for _, sc := range cfg.Shortcuts {
		if action := s.action(sc.Action); action != nil {
			bindings[sc.Accelerator] = action
		}
	}
	if err := s.shortcuts.SetBindings(bindings); err != nil {
		slog.Warn("bind shortcuts", "error", err)
	}
}

func (s *Service) action(name string) func() {
	switch name {
	case types.ActionToggleWindow:
		return s.ToggleWindow
	case types.ActionShowWindow:
		return s.ShowWindow
	case types.ActionHideWindow:
		return s.HideWindow
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Config reload
// ─────────────────────────────────────────────────────────────────────────────

// WatchConfig reapplies the config file whenever it changes on disk.
func (s *Service) WatchConfig() {
	s.mu.RLock()
	path := s.cfg.FilePath()
	s.mu.RUnlock()
	if path == "" || s.stopWatch != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := config.Watch(ctx, path, s.applyConfig); err != nil {
		cancel()
		slog.Warn("watch config", "error", err)
		return
	}
	s.stopWatch = cancel
}

// applyConfig swaps in a reloaded config. Window and tray definitions only
// take effect on restart; shortcuts and the shell scope apply immediately.
func (s *Service) applyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.applyShortcuts(cfg)
	if s.shell != nil {
		if err := s.shell.SetScope(cfg.Shell); err != nil {
			slog.Warn("apply shell scope", "error", err)
		}
	}
	s.emit(EventConfigReloaded, cfg.FilePath())
	slog.Info("config applied", "shortcuts", len(cfg.Shortcuts), "commands", len(cfg.Shell.Commands))
}
