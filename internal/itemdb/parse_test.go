package itemdb

import (
	"reflect"
	"testing"
)

func parseTestTable() (*Table, IndexFunc) {
	t := &Table{Rows: []Row{
		{Name: "Anvil 3", Category: "weapons"},
		{Name: "Anvil 9", Category: "weapons"},
		{Name: "Rubber", Category: "loot"},
		{Name: "Wire", Category: "loot"},
		{Name: "Gun Oil", Category: "crafting"},
	}}
	byName := map[string]int{
		"anvil 3": 0, "anvil 9": 1, "rubber": 2, "wire": 3, "gun oil": 4,
	}
	indexOf := func(name string) (int, bool) {
		idx, ok := byName[normKey(name)]
		return idx, ok
	}
	return t, indexOf
}

func normKey(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// TestParseReverseRecycleGrouping verifies trailing-number variants
// collapse into a count range and categories drive the sort.
func TestParseReverseRecycleGrouping(t *testing.T) {
	tbl, indexOf := parseTestTable()
	row := Row{ReverseRecycle: `[["Anvil 3", 3], ["Anvil 9", 9], ["Rubber", 12], ["Mystery Box", 1]]`}

	got := ParseReverseRecycle(row, tbl, indexOf)
	want := []string{"12x Rubber", "3-9x Anvil", "1x Mystery Box"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseReverseRecycle = %v, want %v", got, want)
	}
}

// TestParseReverseRecycleLoneVariant verifies a single numbered variant
// keeps its suffix instead of forming a degenerate range.
func TestParseReverseRecycleLoneVariant(t *testing.T) {
	tbl, indexOf := parseTestTable()
	row := Row{ReverseRecycle: `[["Anvil 3", 3]]`}

	got := ParseReverseRecycle(row, tbl, indexOf)
	want := []string{"3x Anvil 3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseReverseRecycle = %v, want %v", got, want)
	}
}

// TestParseReverseRecycleMalformed verifies a non-JSON cell passes
// through verbatim instead of disappearing.
func TestParseReverseRecycleMalformed(t *testing.T) {
	tbl, indexOf := parseTestTable()
	row := Row{ReverseRecycle: "not a list"}

	got := ParseReverseRecycle(row, tbl, indexOf)
	if len(got) != 1 || got[0] != "not a list" {
		t.Fatalf("ParseReverseRecycle = %v, want verbatim passthrough", got)
	}

	if got := ParseReverseRecycle(Row{ReverseRecycle: "[]"}, tbl, indexOf); got != nil {
		t.Fatalf("ParseReverseRecycle(empty) = %v, want nil", got)
	}
}

// TestParseCraftingOrder verifies contributors sort by table position
// with unknown items last.
func TestParseCraftingOrder(t *testing.T) {
	tbl, indexOf := parseTestTable()
	row := Row{Crafting: `[["Gun Oil", 2], ["Unknown Thing", 5], ["Rubber", 4]]`}

	got := ParseCrafting(row, tbl, indexOf)
	if len(got) != 3 {
		t.Fatalf("ParseCrafting returned %d entries, want 3", len(got))
	}
	if got[0].Name != "Rubber" || got[1].Name != "Gun Oil" {
		t.Errorf("known items out of table order: %v, %v", got[0], got[1])
	}
	if got[2].Name != "Unknown Thing" || got[2].Index != -1 {
		t.Errorf("unknown item not last: %+v", got[2])
	}
	if got[2].Line != "5x Unknown Thing" {
		t.Errorf("Line = %q, want 5x Unknown Thing", got[2].Line)
	}
	if got[1].Category != "crafting" {
		t.Errorf("Category = %q, want crafting", got[1].Category)
	}
}

// TestParseCraftingCommaFallback verifies non-JSON cells split on commas.
func TestParseCraftingCommaFallback(t *testing.T) {
	tbl, indexOf := parseTestTable()
	row := Row{Crafting: "Rubber, Wire"}

	got := ParseCrafting(row, tbl, indexOf)
	if len(got) != 2 || got[0].Name != "Rubber" || got[1].Name != "Wire" {
		t.Fatalf("ParseCrafting fallback = %+v", got)
	}
}

// TestParseWorkshopRequirements covers the two and three element forms.
func TestParseWorkshopRequirements(t *testing.T) {
	row := Row{WorkshopRequirement: `[["Scrap Bench", 2, 6], ["Toolkit", 3]]`}

	got := ParseWorkshopRequirements(row)
	want := []string{"6x Scrap Bench - Level 2", "3x Toolkit"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseWorkshopRequirements = %v, want %v", got, want)
	}
}

// TestParseQuestUsage covers the count/name pair form.
func TestParseQuestUsage(t *testing.T) {
	row := Row{QuestUsage: `[[2, "Signal Lost"], ["odd entry"]]`}

	got := ParseQuestUsage(row)
	want := []string{"2x Quest - Signal Lost", "odd entry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseQuestUsage = %v, want %v", got, want)
	}
}

// TestParseKeepForQuests covers the count form, the bare mention form
// and the normalization of plurals.
func TestParseKeepForQuests(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Keep 3x Expeditions and 2x Scrappy", []string{"3x Expedition", "2x Scrappy"}},
		{"Needs 4 Expeditions", []string{"4x Expedition"}},
		{"Used for expedition upgrades", []string{"Expedition"}},
		{"scrappy wants this", []string{"Scrappy"}},
		{"", nil},
		{"nothing relevant", nil},
	}
	for _, c := range cases {
		got := ParseKeepForQuests(Row{KeepForQuests: c.in})
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseKeepForQuests(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestSplitItemsList covers count markers, comma fallback and the
// single-blob case.
func TestSplitItemsList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"12x Rubber 3x Wire", []string{"12x Rubber", "3x Wire"}},
		{"12x Rubber, 3x Wire", []string{"12x Rubber", "3x Wire"}},
		{"Rubber, Wire", []string{"Rubber", "Wire"}},
		{"Cannot be recycled", []string{"Cannot be recycled"}},
		{"", nil},
	}
	for _, c := range cases {
		if got := SplitItemsList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitItemsList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestFormatPercentage covers sign, whole-number and passthrough rules.
func TestFormatPercentage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"25", "+25%"},
		{"25.0", "+25%"},
		{"-12.5", "-12.5%"},
		{"0", "0%"},
		{"", "N/A"},
		{"-", "N/A"},
		{"nan", "N/A"},
		{"varies", "varies"},
	}
	for _, c := range cases {
		if got := FormatPercentage(c.in); got != c.want {
			t.Errorf("FormatPercentage(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestRowFromRecordSellPriceFallback verifies the legacy sell price
// column names are honored in order.
func TestRowFromRecordSellPriceFallback(t *testing.T) {
	row := rowFromRecord(map[string]string{
		"Name":       "Gadget",
		"Sell Value": "120",
		"Mystery":    "yes",
	})
	if row.SellPrice != "120" {
		t.Errorf("SellPrice = %q, want 120", row.SellPrice)
	}
	if row.Extra["Mystery"] != "yes" {
		t.Errorf("Extra = %v, want Mystery retained", row.Extra)
	}

	row = rowFromRecord(map[string]string{"Name": "Gadget", "Sell Price": "80", "Sell Value": "120"})
	if row.SellPrice != "80" {
		t.Errorf("SellPrice = %q, want Sell Price to win", row.SellPrice)
	}
}
