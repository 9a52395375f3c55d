// Package config handles the application manifest and user configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/google/uuid"
	"github.com/jarvis-agent/desktop/internal/types"
)

const (
	appName        = "jarvis"
	configFileName = "config.json"

	// MainWindow is the name of the window the tray toggles.
	MainWindow = "main"
)

// Config represents the application manifest merged with user settings.
type Config struct {
	Windows   []types.WindowConfig `json:"windows"`
	Tray      types.TrayConfig     `json:"tray"`
	Shell     types.ShellScope     `json:"shell"`
	Shortcuts []types.Shortcut     `json:"shortcuts,omitempty"`

	// Locale overrides the system locale for tray labels, e.g. "zh-CN".
	Locale string `json:"locale,omitempty"`
	// CloseToTray hides the main window on close instead of quitting.
	CloseToTray bool `json:"close_to_tray,omitempty"`

	path string
}

// Load loads configuration from the config file.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from path.
// Returns default config bound to path if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			cfg.path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Keys missing from the file keep their defaults.
	cfg := *defaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.path = path

	// A manifest without windows still gets the main window.
	if len(cfg.Windows) == 0 {
		cfg.Windows = defaultWindows()
	}
	for i := range cfg.Windows {
		applyWindowDefaults(&cfg.Windows[i])
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := Path()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		path = p
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// FilePath returns the file this config was loaded from.
func (c *Config) FilePath() string {
	return c.path
}

// Validate checks the manifest for inconsistencies.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Windows))
	for _, w := range c.Windows {
		if w.Name == "" {
			errs = append(errs, errors.New("window name required"))
			continue
		}
		if seen[w.Name] {
			errs = append(errs, fmt.Errorf("duplicate window: %s", w.Name))
		}
		seen[w.Name] = true
	}

	if c.Shell.Open != "" {
		if _, err := regexp.Compile(c.Shell.Open); err != nil {
			errs = append(errs, fmt.Errorf("shell open scope: %w", err))
		}
	}

	names := make(map[string]bool, len(c.Shell.Commands))
	for _, cmd := range c.Shell.Commands {
		if cmd.Name == "" || cmd.Program == "" {
			errs = append(errs, fmt.Errorf("shell command %q: name and program required", cmd.Name))
			continue
		}
		if names[cmd.Name] {
			errs = append(errs, fmt.Errorf("duplicate shell command: %s", cmd.Name))
		}
		names[cmd.Name] = true
		for _, a := range cmd.Args {
			if a.Validator == "" {
				continue
			}
			if _, err := regexp.Compile(a.Validator); err != nil {
				errs = append(errs, fmt.Errorf("shell command %q validator: %w", cmd.Name, err))
			}
		}
	}

	for _, s := range c.Shortcuts {
		if s.Accelerator == "" {
			errs = append(errs, errors.New("shortcut accelerator required"))
		}
		if !validAction(s.Action) {
			errs = append(errs, fmt.Errorf("shortcut %q: unknown action %q", s.Accelerator, s.Action))
		}
	}

	return errors.Join(errs...)
}

// Window returns the window definition with the given name.
func (c *Config) Window(name string) *types.WindowConfig {
	for i := range c.Windows {
		if c.Windows[i].Name == name {
			return &c.Windows[i]
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Shortcut Management
// ─────────────────────────────────────────────────────────────────────────────

// GetShortcuts returns all configured shortcuts.
func (c *Config) GetShortcuts() []types.Shortcut {
	return c.Shortcuts
}

// AddShortcut adds a new shortcut binding.
func (c *Config) AddShortcut(s types.Shortcut) error {
	if s.Accelerator == "" {
		return fmt.Errorf("accelerator required")
	}
	if !validAction(s.Action) {
		return fmt.Errorf("unknown action: %s", s.Action)
	}
	if slices.ContainsFunc(c.Shortcuts, func(x types.Shortcut) bool {
		return x.Accelerator == s.Accelerator
	}) {
		return fmt.Errorf("accelerator already bound: %s", s.Accelerator)
	}

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	c.Shortcuts = append(c.Shortcuts, s)
	return c.Save()
}

// RemoveShortcut removes a shortcut by ID.
func (c *Config) RemoveShortcut(id string) error {
	idx := slices.IndexFunc(c.Shortcuts, func(x types.Shortcut) bool {
		return x.ID == id
	})
	if idx == -1 {
		return fmt.Errorf("shortcut not found: %s", id)
	}

	c.Shortcuts = slices.Delete(c.Shortcuts, idx, idx+1)
	return c.Save()
}

// Helper functions

func validAction(action string) bool {
	switch action {
	case types.ActionToggleWindow, types.ActionShowWindow, types.ActionHideWindow:
		return true
	}
	return false
}

func applyWindowDefaults(w *types.WindowConfig) {
	if w.Width == 0 {
		w.Width = types.DefaultWindowWidth
	}
	if w.Height == 0 {
		w.Height = types.DefaultWindowHeight
	}
	if w.URL == "" {
		w.URL = "/"
	}
}

// Path returns the location of the user config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// DataDir returns the directory for application state next to the config.
func DataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, "state"), nil
}

// Default returns the built-in manifest, not bound to any file.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Windows: defaultWindows(),
		Tray: types.TrayConfig{
			Enabled: true,
			Tooltip: "Jarvis Agent",
		},
		Shortcuts: []types.Shortcut{},
	}
}

func defaultWindows() []types.WindowConfig {
	return []types.WindowConfig{{
		Name:   MainWindow,
		Title:  "Jarvis Agent",
		URL:    "/",
		Width:  types.DefaultWindowWidth,
		Height: types.DefaultWindowHeight,
	}}
}
