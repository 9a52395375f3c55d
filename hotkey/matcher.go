package hotkey

import (
	"slices"
	"sync"

	hook "github.com/robotn/gohook"
)

// Matcher turns raw key events into fired accelerators.
// A binding fires once per press; it re-arms when one of its keys is released.
type Matcher struct {
	mu       sync.Mutex
	pressed  map[uint16]bool
	bindings map[string]*binding
}

type binding struct {
	accel  Accelerator
	active bool
}

// NewMatcher returns an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		pressed:  make(map[uint16]bool),
		bindings: make(map[string]*binding),
	}
}

// Add registers a. It reports false if a was already registered.
func (m *Matcher) Add(a Accelerator) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[a.name]; ok {
		return false
	}
	m.bindings[a.name] = &binding{accel: a}
	return true
}

// Remove unregisters the accelerator with the given canonical name.
func (m *Matcher) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[name]; !ok {
		return false
	}
	delete(m.bindings, name)
	return true
}

// Has reports whether the canonical name is registered.
func (m *Matcher) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.bindings[name]
	return ok
}

// Names returns the registered canonical names, sorted.
func (m *Matcher) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.bindings))
	for name := range m.bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Feed processes one hook event and returns the bindings it fired.
func (m *Matcher) Feed(ev hook.Event) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		m.pressed[ev.Keycode] = true
	case hook.KeyUp:
		delete(m.pressed, ev.Keycode)
		for _, b := range m.bindings {
			if b.active && !m.satisfied(b.accel) {
				b.active = false
			}
		}
		return nil
	default:
		return nil
	}

	var fired []string
	for name, b := range m.bindings {
		if b.active || !m.satisfied(b.accel) {
			continue
		}
		b.active = true
		fired = append(fired, name)
	}
	slices.Sort(fired)
	return fired
}

// Reset forgets every pressed key, e.g. after the listener restarts.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.pressed)
	for _, b := range m.bindings {
		b.active = false
	}
}

// satisfied reports whether every key of a is down and no extra modifier is.
func (m *Matcher) satisfied(a Accelerator) bool {
	for _, codes := range a.keys {
		if !slices.ContainsFunc(codes, func(c uint16) bool { return m.pressed[c] }) {
			return false
		}
	}
	for code := range m.pressed {
		if modifierCodes[code] && !a.uses(code) {
			return false
		}
	}
	return true
}

var modifierCodes = func() map[uint16]bool {
	codes := make(map[uint16]bool)
	for _, variants := range modifierVariants {
		for _, v := range variants {
			if code, ok := hook.Keycode[v]; ok {
				codes[code] = true
			}
		}
	}
	return codes
}()
