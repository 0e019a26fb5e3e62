package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadMissingFile verifies a missing settings file yields the
// defaults.
func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "absent.json"))
	if s != Default() {
		t.Errorf("Load = %+v, want defaults", s)
	}
}

// TestLoadMergesOverDefaults verifies a partial file only changes the
// keys it carries.
func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"tooltip_font_size": 18, "always_on": true, "hotkey": {"device": "mouse", "key": "x2"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.FontSize != 18 || !s.AlwaysOn {
		t.Errorf("overridden keys not applied: %+v", s)
	}
	if s.Hotkey.Device != "mouse" || s.Hotkey.Key != "x2" {
		t.Errorf("Hotkey = %+v", s.Hotkey)
	}
	if s.Alpha != Default().Alpha || s.PanelColor != Default().PanelColor {
		t.Errorf("defaults not preserved: %+v", s)
	}
	if s.CycleHotkey != Default().CycleHotkey {
		t.Errorf("CycleHotkey = %+v, want default", s.CycleHotkey)
	}
}

// TestLoadClampsValues verifies out-of-range values are pulled back.
func TestLoadClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"tooltip_font_size": 96, "tooltip_alpha": 7.5, "tooltip_keep_color": ""}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if s.FontSize != 32 {
		t.Errorf("FontSize = %d, want clamped 32", s.FontSize)
	}
	if s.Alpha != Default().Alpha {
		t.Errorf("Alpha = %v, want default", s.Alpha)
	}
	if s.KeepColor != Default().KeepColor {
		t.Errorf("KeepColor = %q, want default", s.KeepColor)
	}

	data = `{"tooltip_font_size": 4}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := Load(path); s.FontSize != 10 {
		t.Errorf("FontSize = %d, want clamped 10", s.FontSize)
	}
}

// TestLoadMalformed verifies unparseable files fall back to defaults.
func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := Load(path); s != Default() {
		t.Errorf("Load malformed = %+v, want defaults", s)
	}
}

// TestWatcherDetectsChange verifies the watcher fires once per
// modification and once on first appearance.
func TestWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	w := NewWatcher(path)

	if w.Changed() {
		t.Fatal("Changed = true with no file")
	}

	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Fatal("Changed = false after file appeared")
	}
	if w.Changed() {
		t.Fatal("Changed = true without further writes")
	}

	// Push the mtime forward explicitly so the test does not depend on
	// filesystem timestamp resolution.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if !w.Changed() {
		t.Fatal("Changed = false after mtime advanced")
	}
	if w.Changed() {
		t.Fatal("Changed = true twice for one modification")
	}
}
