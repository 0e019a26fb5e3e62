package pipeline

import (
	"time"

	"loot-lens/internal/itemdb"
	"loot-lens/pkg/geometry"
)

// State is the loop's mutable detection state, gathered in one place
// so transitions are explicit and testable.
type State struct {
	// HotkeyHeld mirrors the show-overlay hotkey.
	HotkeyHeld bool

	// Last successful OCR match.
	LastName          string
	LastRow           *itemdb.Row
	LastUsedSecondary bool

	// LastPanel is the most recent detected panel box, monitor-local.
	LastPanel *geometry.Box

	// MissingFrames counts consecutive frames without a panel; the
	// overlay hides once it reaches the configured threshold.
	MissingFrames int

	// LastHashKey is the name-region content key of the last OCR
	// submission.
	LastHashKey string
	// LastOCRTime throttles OCR submissions.
	LastOCRTime time.Time

	// Task id generator and the newest result id seen, for dropping
	// stale results that arrive out of order.
	NextTaskID     int64
	LatestResultID int64

	// What the overlay currently shows.
	ShownRow   *itemdb.Row
	ShownPanel *geometry.Box
	// NeedsRefresh forces a redraw even when row and panel are
	// unchanged (settings edits, verdict cycling).
	NeedsRefresh bool

	// OverlayRect is the overlay's on-screen box, monitor-local, fed
	// back into the detector so the overlay never detects itself.
	OverlayRect *geometry.Box
}

// NewState returns the initial loop state.
func NewState() State {
	return State{LatestResultID: -1}
}

// ResetItem clears the matched item and OCR bookkeeping, keeping the
// hotkey state.
func (s *State) ResetItem() {
	s.LastName = ""
	s.LastRow = nil
	s.LastPanel = nil
	s.LastUsedSecondary = false
	s.LastHashKey = ""
}

// AcceptResult reports whether a result id is fresh enough to apply
// and records it as the newest seen.
func (s *State) AcceptResult(id int64) bool {
	if id < s.LatestResultID {
		return false
	}
	s.LatestResultID = id
	return true
}
