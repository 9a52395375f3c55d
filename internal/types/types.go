// Package types provides shared type definitions for the application.
package types

// WindowConfig describes a window declared in the application manifest.
type WindowConfig struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MinWidth  int    `json:"min_width,omitempty"`
	MinHeight int    `json:"min_height,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
	Frameless bool   `json:"frameless,omitempty"`
}

// DefaultWindowWidth and DefaultWindowHeight apply when a window omits its size.
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
)

// TrayConfig configures the system tray icon.
type TrayConfig struct {
	Enabled bool   `json:"enabled"`
	Tooltip string `json:"tooltip,omitempty"`
	Label   string `json:"label,omitempty"`
}

// ShellScope restricts what the shell plugin may open or execute.
type ShellScope struct {
	// Open is a regular expression every URL passed to Open must match.
	// Empty means the default (mailto, tel, http and https).
	Open     string         `json:"open,omitempty"`
	Commands []ShellCommand `json:"commands,omitempty"`
}

// ShellCommand is a program the frontend is allowed to run by name.
type ShellCommand struct {
	Name    string     `json:"name"`
	Program string     `json:"program"`
	Args    []ShellArg `json:"args,omitempty"`
	// TimeoutSeconds bounds a single run. Zero means DefaultCommandTimeout.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// ShellArg is either a fixed argument or a validator for a caller supplied one.
type ShellArg struct {
	Value     string `json:"value,omitempty"`
	Validator string `json:"validator,omitempty"`
}

// DefaultCommandTimeout is the per-run limit in seconds for scoped commands.
const DefaultCommandTimeout = 30

// CommandOutput is the result of running a scoped command.
type CommandOutput struct {
	Code   int    `json:"code"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Shortcut binds a global accelerator to a built-in action.
type Shortcut struct {
	ID          string `json:"id"`
	Accelerator string `json:"accelerator"`
	Action      string `json:"action"`
}

// Built-in shortcut actions.
const (
	ActionToggleWindow = "toggle-window"
	ActionShowWindow   = "show-window"
	ActionHideWindow   = "hide-window"
)

// WindowGeometry is the persisted position and size of a window.
type WindowGeometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the geometry is worth restoring.
func (g WindowGeometry) Valid() bool {
	return g.Width >= 200 && g.Height >= 150
}
