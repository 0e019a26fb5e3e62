// Package itemdb loads and parses the item database that backs the
// advisor overlay. Rows come from a remote JSON endpoint with a local
// CSV file as fallback.
package itemdb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is a single item record. Well-known columns are typed fields,
// anything else the source carries ends up in Extra.
type Row struct {
	Name                string            `json:"name"`
	Category            string            `json:"category"`
	Verdict             string            `json:"verdict"`
	RecyclesTo          string            `json:"recycles_to"`
	SalvagesTo          string            `json:"salvages_to"`
	RecycleValueGain    string            `json:"recycle_value_gain"`
	SellValueGain       string            `json:"sell_value_gain"`
	SellPrice           string            `json:"sell_price"`
	ReverseRecycle      string            `json:"reverse_recycle"`
	Crafting            string            `json:"crafting"`
	WorkshopRequirement string            `json:"workshop_requirement"`
	KeepForQuests       string            `json:"keep_for_quests"`
	QuestUsage          string            `json:"quest_usage"`
	Extra               map[string]string `json:"extra,omitempty"`
}

// Table is an ordered collection of rows. Order matters: several
// overlay sections sort by the row's position in the source.
type Table struct {
	Rows []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// CategoryAt returns the category of the row at idx, or "" when out of range.
func (t *Table) CategoryAt(idx int) string {
	if t == nil || idx < 0 || idx >= len(t.Rows) {
		return ""
	}
	return t.Rows[idx].Category
}

func rowFromRecord(rec map[string]string) Row {
	row := Row{
		Name:                strings.TrimSpace(rec["Name"]),
		Category:            rec["Category"],
		Verdict:             rec["Verdict"],
		RecyclesTo:          rec["Recycles To"],
		SalvagesTo:          rec["Salvages To"],
		RecycleValueGain:    rec["Recycle Value Gain %"],
		SellValueGain:       rec["Sell Value Gain %"],
		ReverseRecycle:      rec["Reverse Recycle"],
		Crafting:            rec["Crafting"],
		WorkshopRequirement: rec["Workshop Requirement"],
		KeepForQuests:       rec["Keep for Quests/Workshop"],
		QuestUsage:          rec["Quest Usage"],
	}

	// Sell price has appeared under several column names over the
	// lifetime of the source sheet.
	for _, col := range []string{"Sell Price", "Sell Value", "Sell Price (Base)"} {
		if v := strings.TrimSpace(rec[col]); v != "" {
			row.SellPrice = v
			break
		}
	}

	known := map[string]bool{
		"Name": true, "Category": true, "Verdict": true,
		"Recycles To": true, "Salvages To": true,
		"Recycle Value Gain %": true, "Sell Value Gain %": true,
		"Sell Price": true, "Sell Value": true, "Sell Price (Base)": true,
		"Reverse Recycle": true, "Crafting": true,
		"Workshop Requirement": true, "Keep for Quests/Workshop": true,
		"Quest Usage": true,
	}
	for k, v := range rec {
		if !known[k] {
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[k] = v
		}
	}
	return row
}

// FormatPercentage renders a raw percentage cell for display. Positive
// values get an explicit sign, whole numbers drop the fraction, and
// unparseable non-empty values pass through untouched.
func FormatPercentage(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return "N/A"
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}

	sign := ""
	if v > 0 {
		sign = "+"
	}
	if math.Abs(v-math.Trunc(v)) < 1e-6 {
		return fmt.Sprintf("%s%d%%", sign, int(v))
	}
	return fmt.Sprintf("%s%.1f%%", sign, v)
}
