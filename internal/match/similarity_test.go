package match

import "testing"

// TestRatioBounds verifies identical and disjoint strings hit the
// extremes of the score range.
func TestRatioBounds(t *testing.T) {
	if got := Ratio("anvil", "anvil"); got != 1 {
		t.Errorf("Ratio(anvil, anvil) = %v, want 1", got)
	}
	if got := Ratio("abc", "xyz"); got != 0 {
		t.Errorf("Ratio(abc, xyz) = %v, want 0", got)
	}
	if got := Ratio("", ""); got != 1 {
		t.Errorf("Ratio of two empty strings = %v, want 1", got)
	}
	if got := Ratio("abc", ""); got != 0 {
		t.Errorf("Ratio(abc, \"\") = %v, want 0", got)
	}
}

// TestRatioKnownValues checks scores against hand-computed matches.
func TestRatioKnownValues(t *testing.T) {
	// "abcd" vs "bcde": longest common substring "bcd" (3 chars),
	// nothing else matches. 2*3/(4+4) = 0.75.
	if got := Ratio("abcd", "bcde"); got != 0.75 {
		t.Errorf("Ratio(abcd, bcde) = %v, want 0.75", got)
	}
	// One dropped character out of six: 2*5/11.
	want := 2.0 * 5.0 / 11.0
	if got := Ratio("anvill", "anvil"); got != want {
		t.Errorf("Ratio(anvill, anvil) = %v, want %v", got, want)
	}
}

// TestRatioSymmetricEnough verifies near-misses still score above the
// resolver cutoffs while unrelated names stay below.
func TestRatioSymmetricEnough(t *testing.T) {
	if got := Ratio("rusted gear", "rustedgear"); got < 0.9 {
		t.Errorf("Ratio for whitespace-only difference = %v, want >= 0.9", got)
	}
	if got := Ratio("medkit", "heavy ammo crate"); got >= 0.6 {
		t.Errorf("Ratio for unrelated names = %v, want < 0.6", got)
	}
}
