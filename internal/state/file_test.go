package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoppxi/brightkeep/pkg/brightness"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "brightkeep", "state.yaml"), nil)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	for v := -50; v <= 150; v++ {
		if err := store.Save(brightness.Level(v)); err != nil {
			t.Fatalf("Save(%d) error = %v", v, err)
		}
		if got, want := store.Load(), brightness.Clamp(v); got != want {
			t.Fatalf("Load() after Save(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store := NewFileStore(filepath.Join(dir, "state.yaml"), nil)

	if err := store.Save(42); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("state file not created: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "brightness_level: 42") {
		t.Errorf("state file = %q, want brightness_level: 42", data)
	}
}

func TestFileStoreLoadDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    brightness.Level
	}{
		{"empty file", "", 100},
		{"corrupt yaml", "::: not yaml [", 100},
		{"missing key", "other: 3\n", 100},
		{"null value", "brightness_level:\n", 100},
		{"not an integer", "brightness_level: bright\n", 100},
		{"float", "brightness_level: 35.5\n", 100},
		{"list", "brightness_level: [1, 2]\n", 100},
		{"quoted integer", "brightness_level: \"35\"\n", 35},
		{"integer", "brightness_level: 35\n", 35},
		{"above range", "brightness_level: 250\n", 100},
		{"below range", "brightness_level: -7\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(store.Path(), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			if got := store.Load(); got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	if got := newTestStore(t).Load(); got != brightness.Default {
		t.Errorf("Load() = %d, want %d", got, brightness.Default)
	}
}

func TestFileStoreSaveFailure(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail even
	// when the tests run as root.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(filepath.Join(blocker, "state.yaml"), nil)

	err := store.Save(50)
	if err == nil {
		t.Fatal("Save() expected error")
	}

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Save() error = %T, want *PersistenceError", err)
	}
	if perr.Op != "save" {
		t.Errorf("PersistenceError.Op = %q, want save", perr.Op)
	}
	if got := store.Load(); got != brightness.Default {
		t.Errorf("Load() after failed save = %d, want default", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    brightness.Level
		wantErr bool
	}{
		{"int", 35, 35, false},
		{"int64", int64(-3), 0, false},
		{"huge uint64", uint64(1 << 63), 100, false},
		{"string", " 70 ", 70, false},
		{"bad string", "7o", 100, true},
		{"bool", true, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformed) {
				t.Errorf("parseValue(%v) error = %v, want ErrMalformed", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseValue(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
