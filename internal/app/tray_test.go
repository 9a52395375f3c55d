package app

import (
	"errors"
	"slices"
	"testing"
)

// fakeWindow records the calls the shell makes and keeps host-like state.
type fakeWindow struct {
	visible bool
	calls   []string
	failAll bool

	x, y, width, height int
}

var errWindow = errors.New("window gone")

func (w *fakeWindow) IsVisible() bool { return w.visible }

func (w *fakeWindow) Show() error {
	w.calls = append(w.calls, "show")
	if w.failAll {
		return errWindow
	}
	w.visible = true
	return nil
}

func (w *fakeWindow) Hide() error {
	w.calls = append(w.calls, "hide")
	if w.failAll {
		return errWindow
	}
	w.visible = false
	return nil
}

func (w *fakeWindow) Focus() error {
	w.calls = append(w.calls, "focus")
	if w.failAll {
		return errWindow
	}
	return nil
}

func (w *fakeWindow) Position() (int, int)      { return w.x, w.y }
func (w *fakeWindow) Size() (int, int)          { return w.width, w.height }
func (w *fakeWindow) SetPosition(x, y int)      { w.x, w.y = x, y }
func (w *fakeWindow) SetSize(width, height int) { w.width, w.height = width, height }

func TestTrayToggleClick(t *testing.T) {
	tests := []struct {
		name      string
		visible   bool
		wantCalls []string
		wantShown bool
	}{
		{
			name:      "visible window is hidden",
			visible:   true,
			wantCalls: []string{"hide"},
			wantShown: false,
		},
		{
			name:      "hidden window is shown then focused",
			visible:   false,
			wantCalls: []string{"show", "focus"},
			wantShown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWindow{visible: tt.visible}
			NewTrayToggle(w).Handle(TrayClick)

			if !slices.Equal(w.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", w.calls, tt.wantCalls)
			}
			if w.visible != tt.wantShown {
				t.Errorf("visible = %v, want %v", w.visible, tt.wantShown)
			}
		})
	}
}

func TestTrayToggleIgnoresOtherEvents(t *testing.T) {
	for _, ev := range []TrayEvent{TrayDoubleClick, TrayRightClick, TrayMouseEnter, TrayMouseLeave, TrayEvent(99)} {
		t.Run(ev.String(), func(t *testing.T) {
			for _, visible := range []bool{true, false} {
				w := &fakeWindow{visible: visible}
				NewTrayToggle(w).Handle(ev)
				if len(w.calls) != 0 {
					t.Errorf("visible=%v: calls = %v, want none", visible, w.calls)
				}
				if w.visible != visible {
					t.Errorf("visibility changed on %s", ev)
				}
			}
		})
	}
}

func TestTrayToggleAlternates(t *testing.T) {
	w := &fakeWindow{visible: true}
	toggle := NewTrayToggle(w)

	var states []bool
	for range 4 {
		toggle.Handle(TrayClick)
		states = append(states, w.visible)
	}

	want := []bool{false, true, false, true}
	if !slices.Equal(states, want) {
		t.Errorf("visibility after each click = %v, want %v", states, want)
	}
	wantCalls := []string{"hide", "show", "focus", "hide", "show", "focus"}
	if !slices.Equal(w.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", w.calls, wantCalls)
	}
}

func TestTrayToggleSwallowsFailures(t *testing.T) {
	w := &fakeWindow{visible: false, failAll: true}
	toggle := NewTrayToggle(w)

	toggle.Handle(TrayClick)
	if !slices.Equal(w.calls, []string{"show", "focus"}) {
		t.Errorf("focus must still be requested after a failed show: %v", w.calls)
	}

	// The failed show left the window hidden, so the next click retries.
	w.calls = nil
	toggle.Handle(TrayClick)
	if !slices.Equal(w.calls, []string{"show", "focus"}) {
		t.Errorf("calls on retry = %v", w.calls)
	}
}
