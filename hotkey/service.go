package hotkey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
	"github.com/wailsapp/wails/v3/pkg/application"
)

// EventShortcut is emitted to the frontend when a registered shortcut fires.
const EventShortcut = "global-shortcut"

// Service is the global shortcut plugin bound to Wails.
// With no bindings it only listens; shortcuts come from config or the frontend.
type Service struct {
	matcher *Matcher
	emit    func(name string, data any)

	mu       sync.Mutex
	actions  map[string]func() // canonical name -> config action
	labels   map[string]string // canonical name -> accelerator as registered by the frontend
	done     chan struct{}
	running  bool
	startFn  func() chan hook.Event
	endFn    func()
	dispatch sync.WaitGroup
}

// NewService creates the shortcut plugin with default configuration.
// emit may be nil until the application exists.
func NewService(emit func(name string, data any)) *Service {
	return &Service{
		matcher: NewMatcher(),
		emit:    emit,
		actions: make(map[string]func()),
		labels:  make(map[string]string),
		startFn: hook.Start,
		endFn:   hook.End,
	}
}

// SetEmitter sets the function used to notify the frontend.
func (s *Service) SetEmitter(emit func(name string, data any)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit = emit
}

// ServiceStartup starts the keyboard listener.
func (s *Service) ServiceStartup(_ context.Context, _ application.ServiceOptions) error {
	s.Start()
	return nil
}

// ServiceShutdown stops the keyboard listener.
func (s *Service) ServiceShutdown() error {
	s.Stop()
	return nil
}

// Start begins listening for key events. Calling Start twice is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.matcher.Reset()
	events := s.startFn()
	done := make(chan struct{})
	s.done = done
	s.running = true

	s.dispatch.Add(1)
	go s.listen(events, done)
	slog.Info("global shortcut listener started")
}

// Stop ends the keyboard listener.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	s.endFn()
	s.dispatch.Wait()
	slog.Info("global shortcut listener stopped")
}

func (s *Service) listen(events chan hook.Event, done chan struct{}) {
	defer s.dispatch.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, name := range s.matcher.Feed(ev) {
				s.fire(name)
			}
		}
	}
}

func (s *Service) fire(name string) {
	s.mu.Lock()
	action := s.actions[name]
	label, fromFrontend := s.labels[name]
	emit := s.emit
	s.mu.Unlock()

	slog.Debug("shortcut fired", "accelerator", name)
	if action != nil {
		action()
	}
	if fromFrontend && emit != nil {
		emit(EventShortcut, label)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Frontend API
// ─────────────────────────────────────────────────────────────────────────────

// Register registers a global shortcut; presses are emitted as EventShortcut.
func (s *Service) Register(accel string) error {
	a, err := ParseAccelerator(accel)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labels[a.name]; ok {
		return fmt.Errorf("shortcut already registered: %s", accel)
	}
	s.labels[a.name] = accel
	s.matcher.Add(a)
	return nil
}

// Unregister removes a shortcut registered with Register.
func (s *Service) Unregister(accel string) error {
	a, err := ParseAccelerator(accel)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.labels[a.name]; !ok {
		return fmt.Errorf("shortcut not registered: %s", accel)
	}
	delete(s.labels, a.name)
	s.release(a.name)
	return nil
}

// UnregisterAll removes every shortcut registered with Register.
func (s *Service) UnregisterAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.labels {
		delete(s.labels, name)
		s.release(name)
	}
}

// IsRegistered reports whether accel is registered by the frontend.
func (s *Service) IsRegistered(accel string) bool {
	a, err := ParseAccelerator(accel)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.labels[a.name]
	return ok
}

// Registered returns the canonical names of all active shortcuts.
func (s *Service) Registered() []string {
	return s.matcher.Names()
}

// ─────────────────────────────────────────────────────────────────────────────
// Config bindings
// ─────────────────────────────────────────────────────────────────────────────

// SetBindings replaces the config driven shortcuts. Invalid accelerators are
// skipped and reported together; valid ones are still bound.
func (s *Service) SetBindings(bindings map[string]func()) error {
	parsed := make(map[string]func(), len(bindings))
	var errs []error
	for accel, action := range bindings {
		a, err := ParseAccelerator(accel)
		if err != nil {
			errs = append(errs, fmt.Errorf("shortcut %q: %w", accel, err))
			continue
		}
		parsed[a.name] = action
		s.matcher.Add(a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.actions {
		if _, keep := parsed[name]; keep {
			continue
		}
		delete(s.actions, name)
		s.release(name)
	}
	for name, action := range parsed {
		s.actions[name] = action
	}
	return errors.Join(errs...)
}

// release drops name from the matcher once nothing refers to it.
// s.mu must be held.
func (s *Service) release(name string) {
	if _, ok := s.labels[name]; ok {
		return
	}
	if _, ok := s.actions[name]; ok {
		return
	}
	s.matcher.Remove(name)
}
