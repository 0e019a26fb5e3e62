package itemdb

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// IndexFunc resolves an item name to its row index in the source table.
type IndexFunc func(name string) (int, bool)

// CraftEntry is one parsed "Crafting" contributor with its display line
// and enough metadata to sort and regroup it.
type CraftEntry struct {
	Line     string
	Name     string
	Count    int
	Index    int // -1 when the item is not in the table
	Category string
}

var trailingNumberRe = regexp.MustCompile(`^(.*\D)(\d+)$`)

// ParseReverseRecycle parses the "Reverse Recycle" column into display
// lines. Items that differ only by a trailing number are grouped into a
// count range ("3-9x Anvil"), and the result is sorted by category
// (unknown last, "loot" first), then count descending, then text.
func ParseReverseRecycle(row Row, t *Table, indexOf IndexFunc) []string {
	raw := strings.TrimSpace(row.ReverseRecycle)
	if raw == "" || raw == "[]" {
		return nil
	}

	data, ok := decodeEntryList(raw)
	if !ok {
		// Malformed cell, show it verbatim rather than dropping it.
		return []string{raw}
	}

	type entry struct {
		name     string
		count    int
		index    int
		category string
	}

	var entries []entry
	for _, e := range data {
		name := strings.TrimSpace(asString(e[0]))
		count := 0
		if len(e) >= 2 {
			count = asInt(e[1])
		}

		idx := -1
		category := ""
		if i, found := indexOf(name); found {
			idx = i
			category = t.CategoryAt(i)
		}
		entries = append(entries, entry{name: name, count: count, index: idx, category: category})
	}
	if len(entries) == 0 {
		return nil
	}

	type group struct {
		line     string
		countKey int
		category string
	}

	numericGroups := make(map[string]*struct {
		base    string
		entries []entry
	})
	var groupOrder []string
	var plain []entry

	for _, ent := range entries {
		m := trailingNumberRe.FindStringSubmatch(ent.name)
		if m == nil {
			plain = append(plain, ent)
			continue
		}
		base := strings.TrimSpace(m[1])
		key := strings.ToLower(base)
		g, ok := numericGroups[key]
		if !ok {
			g = &struct {
				base    string
				entries []entry
			}{base: base}
			numericGroups[key] = g
			groupOrder = append(groupOrder, key)
		}
		g.entries = append(g.entries, ent)
	}

	var out []group

	for _, key := range groupOrder {
		g := numericGroups[key]
		if len(g.entries) == 1 {
			// A lone "Anvil 3" keeps its suffix.
			plain = append(plain, g.entries[0])
			continue
		}

		minC, maxC := g.entries[0].count, g.entries[0].count
		for _, e := range g.entries[1:] {
			if e.count < minC {
				minC = e.count
			}
			if e.count > maxC {
				maxC = e.count
			}
		}

		countText := fmt.Sprintf("%d-%dx", minC, maxC)
		if minC == maxC {
			countText = fmt.Sprintf("%dx", minC)
		}

		category := ""
		for _, e := range g.entries {
			if e.category != "" {
				category = e.category
				break
			}
		}

		out = append(out, group{
			line:     countText + " " + g.base,
			countKey: maxC,
			category: category,
		})
	}

	for _, ent := range plain {
		line := ent.name
		if ent.count > 0 {
			line = fmt.Sprintf("%dx %s", ent.count, ent.name)
		}
		out = append(out, group{line: line, countKey: ent.count, category: ent.category})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		aUnknown, bUnknown := a.category == "", b.category == ""
		if aUnknown != bUnknown {
			return bUnknown
		}

		aCat, bCat := strings.ToLower(a.category), strings.ToLower(b.category)
		aLoot, bLoot := aCat == "loot", bCat == "loot"
		if aLoot != bLoot {
			return aLoot
		}
		if aCat != bCat {
			return aCat < bCat
		}
		if a.countKey != b.countKey {
			return a.countKey > b.countKey
		}
		return strings.ToLower(a.line) < strings.ToLower(b.line)
	})

	lines := make([]string, len(out))
	for i, g := range out {
		lines[i] = g.line
	}
	return lines
}

// ParseCrafting parses the "Crafting" column into contributor entries
// sorted by the item's position in the source table, unknown items last
// by descending count then name.
func ParseCrafting(row Row, t *Table, indexOf IndexFunc) []CraftEntry {
	raw := strings.TrimSpace(row.Crafting)
	if raw == "" || raw == "[]" {
		return nil
	}

	data, ok := decodeEntryList(raw)
	if !ok {
		// Not JSON, treat it as a plain comma-separated list.
		var out []CraftEntry
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, newCraftEntry(p, 0, t, indexOf))
		}
		if out == nil {
			out = []CraftEntry{{Line: raw, Name: raw, Index: -1}}
		}
		return out
	}

	var entries []CraftEntry
	for _, e := range data {
		name := strings.TrimSpace(asString(e[0]))
		count := 0
		if len(e) >= 2 {
			count = asInt(e[1])
		}
		entries = append(entries, newCraftEntry(name, count, t, indexOf))
	}
	if len(entries) == 0 {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		aKnown, bKnown := a.Index >= 0, b.Index >= 0
		if aKnown != bKnown {
			return aKnown
		}
		if aKnown {
			if a.Index != b.Index {
				return a.Index < b.Index
			}
		} else if a.Count != b.Count {
			return a.Count > b.Count
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return entries
}

func newCraftEntry(name string, count int, t *Table, indexOf IndexFunc) CraftEntry {
	e := CraftEntry{Name: name, Count: count, Index: -1}
	if i, found := indexOf(name); found {
		e.Index = i
		e.Category = t.CategoryAt(i)
	}
	e.Line = name
	if count > 0 {
		e.Line = fmt.Sprintf("%dx %s", count, name)
	}
	return e
}

// ParseWorkshopRequirements parses the "Workshop Requirement" column.
func ParseWorkshopRequirements(row Row) []string {
	raw := strings.TrimSpace(row.WorkshopRequirement)
	if raw == "" || raw == "[]" {
		return nil
	}

	data, ok := decodeEntryList(raw)
	if !ok {
		return []string{raw}
	}

	var lines []string
	for _, e := range data {
		switch len(e) {
		case 3:
			lines = append(lines, fmt.Sprintf("%sx %s - Level %s", asString(e[2]), asString(e[0]), asString(e[1])))
		case 2:
			lines = append(lines, fmt.Sprintf("%sx %s", asString(e[1]), asString(e[0])))
		default:
			parts := make([]string, len(e))
			for i, v := range e {
				parts[i] = asString(v)
			}
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return lines
}

// ParseQuestUsage parses the "Quest Usage" column.
func ParseQuestUsage(row Row) []string {
	raw := strings.TrimSpace(row.QuestUsage)
	if raw == "" || raw == "[]" {
		return nil
	}

	data, ok := decodeEntryList(raw)
	if !ok {
		return []string{raw}
	}

	var lines []string
	for _, e := range data {
		if len(e) == 2 {
			lines = append(lines, fmt.Sprintf("%sx Quest - %s", asString(e[0]), asString(e[1])))
			continue
		}
		parts := make([]string, len(e))
		for i, v := range e {
			parts[i] = asString(v)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

var (
	keepCountXRe = regexp.MustCompile(`(?i)(\d+)\s*x\s*(Expeditions?|Scrappy)`)
	keepCountRe  = regexp.MustCompile(`(?i)(\d+)\s+(Expeditions?|Scrappy)`)
)

// ParseKeepForQuests parses the free-text "Keep for Quests/Workshop"
// column into bullet lines.
func ParseKeepForQuests(row Row) []string {
	raw := strings.TrimSpace(row.KeepForQuests)
	if raw == "" {
		return nil
	}
	s := strings.Join(strings.Fields(raw), " ")

	normalize := func(name string) string {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "expedition") {
			return "Expedition"
		}
		if strings.HasPrefix(lower, "scrappy") {
			return "Scrappy"
		}
		return name
	}

	var bullets []string
	for _, m := range keepCountXRe.FindAllStringSubmatch(s, -1) {
		bullets = append(bullets, fmt.Sprintf("%sx %s", m[1], normalize(m[2])))
	}
	if bullets == nil {
		for _, m := range keepCountRe.FindAllStringSubmatch(s, -1) {
			bullets = append(bullets, fmt.Sprintf("%sx %s", m[1], normalize(m[2])))
		}
	}
	if bullets == nil {
		if strings.Contains(strings.ToLower(s), "expedition") {
			bullets = append(bullets, "Expedition")
		}
		if strings.Contains(strings.ToLower(s), "scrappy") {
			bullets = append(bullets, "Scrappy")
		}
	}
	return bullets
}

// SplitItemsList splits a "12x Rubber 3x Wire" style cell into parts,
// falling back to comma splitting when no count markers are present.
func SplitItemsList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	locs := countMarkerRe.FindAllStringIndex(s, -1)
	if len(locs) > 0 {
		var parts []string
		for i, loc := range locs {
			end := len(s)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			part := strings.Trim(strings.TrimSpace(s[loc[0]:end]), ",")
			if part != "" {
				parts = append(parts, part)
			}
		}
		return parts
	}

	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if parts == nil {
		return []string{s}
	}
	return parts
}

var countMarkerRe = regexp.MustCompile(`\d+\s*x\s+`)

// decodeEntryList decodes a JSON array-of-arrays cell. Scalar elements
// become single-value entries, empty ones are dropped.
func decodeEntryList(raw string) ([][]any, bool) {
	var data []any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false
	}

	out := make([][]any, 0, len(data))
	for _, e := range data {
		switch v := e.(type) {
		case nil:
			continue
		case []any:
			if len(v) > 0 {
				out = append(out, v)
			}
		default:
			out = append(out, []any{v})
		}
	}
	return out, true
}

func asString(v any) string {
	return stringifyValue(v)
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
