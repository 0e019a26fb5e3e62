package pipeline

import (
	"testing"

	"loot-lens/internal/itemdb"
	"loot-lens/pkg/geometry"
)

// TestAcceptResult verifies stale out-of-order results are dropped.
func TestAcceptResult(t *testing.T) {
	s := NewState()

	steps := []struct {
		id   int64
		want bool
	}{
		{5, true},
		{3, false},
		{7, true},
		{6, false},
		{7, true}, // same id is fresh, not stale
		{8, true},
	}
	for _, step := range steps {
		if got := s.AcceptResult(step.id); got != step.want {
			t.Errorf("AcceptResult(%d) = %v, want %v", step.id, got, step.want)
		}
	}
	if s.LatestResultID != 8 {
		t.Errorf("LatestResultID = %d, want 8", s.LatestResultID)
	}
}

// TestResetItem verifies the item bookkeeping clears while hotkey and
// result ordering survive.
func TestResetItem(t *testing.T) {
	s := NewState()
	s.HotkeyHeld = true
	s.LastName = "Rusted Gear"
	s.LastRow = &itemdb.Row{Name: "Rusted Gear"}
	s.LastUsedSecondary = true
	s.LastHashKey = "key"
	panel := geometry.NewBox(1, 2, 3, 4)
	s.LastPanel = &panel
	s.AcceptResult(9)

	s.ResetItem()

	if s.LastName != "" || s.LastRow != nil || s.LastPanel != nil {
		t.Errorf("item state not cleared: %+v", s)
	}
	if s.LastUsedSecondary || s.LastHashKey != "" {
		t.Errorf("OCR bookkeeping not cleared: %+v", s)
	}
	if !s.HotkeyHeld {
		t.Error("HotkeyHeld cleared by ResetItem")
	}
	if s.LatestResultID != 9 {
		t.Error("result ordering reset by ResetItem")
	}
}
