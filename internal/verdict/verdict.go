// Package verdict stores per-item action overrides. The base verdict
// comes from the item database; the user can cycle it per item and the
// override persists across runs.
package verdict

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"loot-lens/internal/itemdb"
)

// The three actions, in cycle order.
const (
	Keep    = "KEEP"
	Recycle = "RECYCLE"
	Sell    = "SELL"

	// Unknown is reported when neither the database nor the user has
	// an opinion.
	Unknown = "UNKNOWN"
)

var cycle = []string{Keep, Recycle, Sell}

// Store holds the user's verdict overrides, keyed by item name.
type Store struct {
	mu        sync.RWMutex
	path      string
	overrides map[string]string
}

// Open loads the override file at path. A missing or malformed file
// yields an empty store; overrides are a convenience, not critical
// state.
func Open(path string) *Store {
	s := &Store{path: path, overrides: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}
	for k, v := range raw {
		s.overrides[k] = strings.ToUpper(v)
	}
	return s
}

// Len returns the number of stored overrides.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overrides)
}

// Get returns the override for an item name, if any.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.overrides[name]
	return v, ok
}

// Effective returns the verdict to display for a row: the user
// override when present, otherwise the database verdict, otherwise
// Unknown. detectedName keys the override lookup when the row is nil.
func (s *Store) Effective(row *itemdb.Row, detectedName string) string {
	base := ""
	key := strings.TrimSpace(detectedName)
	if row != nil {
		base = strings.ToUpper(row.Verdict)
		key = strings.TrimSpace(row.Name)
	}

	if key != "" {
		if override, ok := s.Get(key); ok && override != "" {
			return override
		}
	}
	if base != "" {
		return base
	}
	return Unknown
}

// IsOverridden reports whether the shown verdict for a row comes from
// the user rather than the database.
func (s *Store) IsOverridden(row *itemdb.Row, detectedName string) bool {
	key := strings.TrimSpace(detectedName)
	base := ""
	if row != nil {
		key = strings.TrimSpace(row.Name)
		base = strings.ToUpper(row.Verdict)
	}
	if key == "" {
		return false
	}

	override, ok := s.Get(key)
	if !ok || override == "" {
		return false
	}
	if base != "" && override == base {
		return false
	}
	return s.Effective(row, detectedName) == override
}

// CycleForward advances the verdict for an item to the next action and
// persists the override. base is the database verdict used as the
// starting point when no override exists yet.
func (s *Store) CycleForward(name, base string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("cycle verdict: empty item name")
	}

	s.mu.Lock()
	current := s.overrides[name]
	if current == "" {
		current = strings.ToUpper(base)
	}

	idx := 0
	for i, v := range cycle {
		if v == current {
			idx = i
			break
		}
	}
	next := cycle[(idx+1)%len(cycle)]
	s.overrides[name] = next

	data, err := json.MarshalIndent(s.overrides, "", "  ")
	s.mu.Unlock()

	if err != nil {
		return next, fmt.Errorf("encode verdict overrides: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return next, fmt.Errorf("save verdict overrides: %w", err)
	}
	return next, nil
}
