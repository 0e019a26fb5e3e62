// Package overlay builds, renders and places the advisor panel that is
// drawn next to the detected in-game tooltip.
package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"loot-lens/internal/itemdb"
	"loot-lens/internal/match"
	"loot-lens/internal/verdict"
)

// maxListLines caps the reverse recycle and crafting columns; overflow
// collapses into a "+N more items..." line.
const maxListLines = 14

// Content is everything the overlay shows for one item, shaped and
// sorted but not yet laid out.
type Content struct {
	Title string

	NeededLines []string
	HasNeeded   bool

	VerdictLabel string
	VerdictText  string
	Verdict      string // effective verdict, selects the accent color

	RecycleLines []string
	SalvageLines []string

	RecGain   string
	SellGain  string
	SellPrice string

	ReverseRecycle []string
	Crafting       []string
}

// CacheKey identifies a rendered content variant.
func (c *Content) CacheKey(compact bool) string {
	return fmt.Sprintf("%s|%s|%t", c.Title, c.Verdict, compact)
}

// HasColumns reports whether the content grows extra columns, which
// disables the compact percent layout.
func (c *Content) HasColumns() bool {
	return len(c.ReverseRecycle) > 0 || len(c.Crafting) > 0
}

// Build assembles the overlay content for a matched row. row may be
// nil when only the raw OCR name is known.
func Build(row *itemdb.Row, detectedName string, res *match.Resolver, store *verdict.Store, showRRCrafting bool) Content {
	var c Content

	c.Title = detectedName
	if row != nil && strings.TrimSpace(row.Name) != "" {
		c.Title = row.Name
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "Unknown Item"
	}

	// Needed-for-tasks bullets.
	if row != nil {
		c.NeededLines = append(c.NeededLines, itemdb.ParseKeepForQuests(*row)...)
		c.NeededLines = append(c.NeededLines, itemdb.ParseWorkshopRequirements(*row)...)
		c.NeededLines = append(c.NeededLines, itemdb.ParseQuestUsage(*row)...)
	}
	c.HasNeeded = len(c.NeededLines) > 0
	if !c.HasNeeded {
		c.NeededLines = []string{"No uses known"}
	}

	// Verdict line.
	c.Verdict = store.Effective(row, detectedName)
	c.VerdictText = c.Verdict
	if c.Verdict == verdict.Unknown {
		c.VerdictText = "Unknown"
	}

	label := "Suggested action:"
	if store.IsOverridden(row, detectedName) {
		label = "My Suggested action:"
	}
	if c.HasNeeded {
		label += " (When Tasks done)"
	}
	c.VerdictLabel = label

	// Recycle / salvage outputs.
	var recyclesTo, salvagesTo string
	if row != nil {
		recyclesTo = strings.TrimSpace(row.RecyclesTo)
		salvagesTo = strings.TrimSpace(row.SalvagesTo)
	}

	c.RecycleLines = itemdb.SplitItemsList(recyclesTo)
	if len(c.RecycleLines) == 0 {
		c.RecycleLines = []string{"Cannot be recycled"}
	}
	c.SalvageLines = itemdb.SplitItemsList(salvagesTo)
	if len(c.SalvageLines) == 0 {
		c.SalvageLines = []string{"Cannot be salvaged"}
	}

	c.RecGain = dashIfNA(formatGain(row, func(r *itemdb.Row) string { return r.RecycleValueGain }))
	c.SellGain = dashIfNA(formatGain(row, func(r *itemdb.Row) string { return r.SellValueGain }))
	c.SellPrice = sellPriceText(row)

	// Extended columns.
	if showRRCrafting && row != nil {
		rr := itemdb.ParseReverseRecycle(*row, res.Table(), res.IndexOf)
		rr = CondenseRomanVariants(rr, false)
		c.ReverseRecycle = capLines(rr)

		entries := itemdb.ParseCrafting(*row, res.Table(), res.IndexOf)
		var weapons, others []string
		for _, e := range entries {
			if strings.EqualFold(e.Category, "weapon") {
				weapons = append(weapons, e.Line)
			} else {
				others = append(others, e.Line)
			}
		}
		if len(weapons) > 0 {
			weapons = CondenseRomanVariants(weapons, true)
			weapons = CondenseNumericSuffixes(weapons)
		}
		c.Crafting = capLines(append(weapons, others...))
	}

	return c
}

func capLines(lines []string) []string {
	if len(lines) <= maxListLines {
		return lines
	}
	hidden := len(lines) - maxListLines
	out := append([]string{}, lines[:maxListLines]...)
	return append(out, fmt.Sprintf("+%d more items...", hidden))
}

func formatGain(row *itemdb.Row, field func(*itemdb.Row) string) string {
	if row == nil {
		return "N/A"
	}
	return itemdb.FormatPercentage(field(row))
}

func dashIfNA(s string) string {
	if s == "N/A" {
		return "-"
	}
	return s
}

func sellPriceText(row *itemdb.Row) string {
	if row == nil {
		return "-"
	}
	s := strings.TrimSpace(row.SellPrice)
	if s == "" {
		return "-"
	}
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}
