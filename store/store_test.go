package store

import (
	"testing"

	"github.com/jarvis-agent/desktop/internal/types"
)

func TestStoreJSON(t *testing.T) {
	s, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	defer s.Close()

	var got types.WindowGeometry
	found, err := s.GetJSON("window/main", &got)
	if err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if found {
		t.Fatal("GetJSON() found a key in an empty store")
	}

	want := types.WindowGeometry{X: 10, Y: 20, Width: 800, Height: 600}
	if err := s.SetJSON("window/main", want); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}

	found, err = s.GetJSON("window/main", &got)
	if err != nil || !found {
		t.Fatalf("GetJSON() = %v, %v; want found", found, err)
	}
	if got != want {
		t.Errorf("GetJSON() = %+v, want %+v", got, want)
	}

	if err := s.Delete("window/main"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if found, _ := s.GetJSON("window/main", &got); found {
		t.Error("key still present after Delete()")
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.SetJSON("k", map[string]int{"a": 1}); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = New(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	var got map[string]int
	found, err := s.GetJSON("k", &got)
	if err != nil || !found || got["a"] != 1 {
		t.Errorf("GetJSON() after reopen = %v, %v, %v", got, found, err)
	}
}
