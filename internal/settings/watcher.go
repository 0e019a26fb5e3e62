package settings

import (
	"os"
	"time"
)

// Watcher tracks the settings file's modification time so the
// detection loop can cheaply poll for edits made by the settings UI.
type Watcher struct {
	path    string
	lastMod time.Time
	known   bool
}

// NewWatcher creates a watcher primed with the file's current state,
// so only subsequent edits report as changes.
func NewWatcher(path string) *Watcher {
	w := &Watcher{path: path}
	if info, err := os.Stat(path); err == nil {
		w.lastMod = info.ModTime()
		w.known = true
	}
	return w
}

// Changed returns true once per observed modification. A file that
// appears for the first time also counts as a change.
func (w *Watcher) Changed() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}

	mod := info.ModTime()
	if !w.known || mod.After(w.lastMod) {
		w.lastMod = mod
		w.known = true
		return true
	}
	return false
}
