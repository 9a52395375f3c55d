package hotkey

import (
	"errors"
	"testing"
)

func TestParseAccelerator(t *testing.T) {
	tests := []struct {
		name    string
		accel   string
		goos    string
		want    string
		wantErr error
	}{
		{name: "cmd or ctrl on linux", accel: "CmdOrCtrl+Shift+J", goos: "linux", want: "ctrl+shift+j"},
		{name: "cmd or ctrl on darwin", accel: "CmdOrCtrl+Shift+J", goos: "darwin", want: "shift+cmd+j"},
		{name: "modifier order is canonical", accel: "Shift+Alt+Control+K", goos: "windows", want: "ctrl+alt+shift+k"},
		{name: "aliases", accel: "Option+Super+Space", goos: "linux", want: "alt+cmd+space"},
		{name: "whitespace and case", accel: " ctrl + F1 ", goos: "linux", want: "ctrl+f1"},
		{name: "single key", accel: "Escape", goos: "linux", want: "esc"},
		{name: "modifiers only", accel: "Ctrl+Shift", goos: "linux", wantErr: ErrInvalidAccelerator},
		{name: "two keys", accel: "Ctrl+A+B", goos: "linux", wantErr: ErrInvalidAccelerator},
		{name: "empty part", accel: "Ctrl++J", goos: "linux", wantErr: ErrInvalidAccelerator},
		{name: "unknown key", accel: "Ctrl+Banana", goos: "linux", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAccelerator(tt.accel, tt.goos)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseAccelerator(%q) error = %v, want %v", tt.accel, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAccelerator(%q) error = %v", tt.accel, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseAccelerator(%q) = %q, want %q", tt.accel, got.String(), tt.want)
			}
		})
	}
}
