// Package hotkey captures global keyboard shortcuts while the app is in the background.
package hotkey

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	hook "github.com/robotn/gohook"
)

var (
	// ErrUnknownKey is returned for accelerator keys the hook cannot report.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidAccelerator is returned for accelerators without exactly one main key.
	ErrInvalidAccelerator = errors.New("invalid accelerator")
)

// modifier order used for canonical names
var modifierOrder = []string{"ctrl", "alt", "shift", "cmd"}

// right-hand variants accepted for each modifier
var modifierVariants = map[string][]string{
	"ctrl":  {"ctrl", "rctrl"},
	"alt":   {"alt", "ralt"},
	"shift": {"shift", "rshift"},
	"cmd":   {"cmd", "rcmd"},
}

// Accelerator is a parsed key combination such as "CmdOrCtrl+Shift+J".
type Accelerator struct {
	name string
	// keys holds, per key of the combination, every keycode that satisfies it.
	keys [][]uint16
}

// String returns the canonical form, e.g. "ctrl+shift+j".
func (a Accelerator) String() string {
	return a.name
}

func (a Accelerator) uses(code uint16) bool {
	for _, codes := range a.keys {
		if slices.Contains(codes, code) {
			return true
		}
	}
	return false
}

// ParseAccelerator parses an accelerator for the current platform.
func ParseAccelerator(accel string) (Accelerator, error) {
	return parseAccelerator(accel, runtime.GOOS)
}

func parseAccelerator(accel, goos string) (Accelerator, error) {
	mods := make(map[string]bool)
	var key string

	for _, part := range strings.Split(accel, "+") {
		tok := normalizeKey(strings.TrimSpace(part), goos)
		if tok == "" {
			return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, accel)
		}
		if _, ok := modifierVariants[tok]; ok {
			mods[tok] = true
			continue
		}
		if key != "" {
			return Accelerator{}, fmt.Errorf("%w: %q has more than one key", ErrInvalidAccelerator, accel)
		}
		key = tok
	}
	if key == "" {
		return Accelerator{}, fmt.Errorf("%w: %q has no key", ErrInvalidAccelerator, accel)
	}

	var (
		names []string
		keys  [][]uint16
	)
	for _, m := range modifierOrder {
		if !mods[m] {
			continue
		}
		var codes []uint16
		for _, v := range modifierVariants[m] {
			if code, ok := hook.Keycode[v]; ok {
				codes = append(codes, code)
			}
		}
		if len(codes) == 0 {
			return Accelerator{}, fmt.Errorf("%w: %s", ErrUnknownKey, m)
		}
		names = append(names, m)
		keys = append(keys, codes)
	}

	code, ok := hook.Keycode[key]
	if !ok {
		return Accelerator{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	names = append(names, key)
	keys = append(keys, []uint16{code})

	return Accelerator{name: strings.Join(names, "+"), keys: keys}, nil
}

func normalizeKey(tok, goos string) string {
	switch t := strings.ToLower(tok); t {
	case "cmdorctrl", "commandorcontrol", "cmdorcontrol", "commandorctrl":
		if goos == "darwin" {
			return "cmd"
		}
		return "ctrl"
	case "control", "ctrl":
		return "ctrl"
	case "command", "cmd", "super", "meta":
		return "cmd"
	case "option", "alt":
		return "alt"
	case "escape", "esc":
		return "esc"
	case "return", "enter":
		return "enter"
	default:
		return t
	}
}
