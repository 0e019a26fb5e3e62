package overlay

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var romanSuffixes = []string{"I", "II", "III", "IV"}

var romanOrder = func() map[string]int {
	m := make(map[string]int, len(romanSuffixes))
	for i, r := range romanSuffixes {
		m[r] = i
	}
	return m
}()

var (
	qtyPrefixRe      = regexp.MustCompile(`^\s*(\d+)\s*x\s*(.+)$`)
	numericSuffixRe  = regexp.MustCompile(`^(.*\D)(\d+)$`)
)

// CondenseRomanVariants groups lines that differ only by a trailing
// roman numeral into one line like "Anvil I, II, III". Quantities are
// preserved while uniform across the group; lines with differing
// quantities stay separate. With dropSuffix the numerals are omitted
// entirely. Output keeps the position of each group's first line.
func CondenseRomanVariants(lines []string, dropSuffix bool) []string {
	type group struct {
		base       string
		qty        string
		hasQty     bool
		romans     []string
		firstIndex int
	}

	groups := make(map[string]*group)
	var order []string
	type indexed struct {
		idx  int
		text string
	}
	var passthrough []indexed

	for idx, original := range lines {
		line := strings.TrimSpace(original)
		if line == "" {
			continue
		}

		qty := ""
		hasQty := false
		rest := line
		if m := qtyPrefixRe.FindStringSubmatch(line); m != nil {
			qty = m[1]
			hasQty = true
			rest = strings.TrimSpace(m[2])
		}

		tokens := strings.Fields(strings.TrimRight(rest, ",.;: "))
		if len(tokens) >= 2 {
			last := strings.NewReplacer("|", "I", "L", "I").Replace(strings.ToUpper(tokens[len(tokens)-1]))
			if _, isRoman := romanOrder[last]; isRoman {
				base := strings.Join(tokens[:len(tokens)-1], " ")
				key := strings.ToLower(base) + "\x00" + qty

				g, ok := groups[key]
				if !ok {
					g = &group{base: base, qty: qty, hasQty: hasQty, firstIndex: idx}
					groups[key] = g
					order = append(order, key)
				}
				if !contains(g.romans, last) {
					g.romans = append(g.romans, last)
				}
				continue
			}
		}

		passthrough = append(passthrough, indexed{idx: idx, text: original})
	}

	var out []indexed
	for _, key := range order {
		g := groups[key]
		sort.Slice(g.romans, func(i, j int) bool {
			return romanOrder[g.romans[i]] < romanOrder[g.romans[j]]
		})

		var text string
		if dropSuffix {
			text = g.base
			if g.hasQty {
				text = fmt.Sprintf("%sx %s", g.qty, g.base)
			}
		} else {
			romanPart := strings.Join(g.romans, ", ")
			text = fmt.Sprintf("%s %s", g.base, romanPart)
			if g.hasQty {
				text = fmt.Sprintf("%sx %s %s", g.qty, g.base, romanPart)
			}
		}
		out = append(out, indexed{idx: g.firstIndex, text: text})
	}
	out = append(out, passthrough...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	result := make([]string, len(out))
	for i, e := range out {
		result[i] = e.text
	}
	return result
}

// CondenseNumericSuffixes merges lines whose item name differs only by
// a trailing integer ("Vulcano 1", "Vulcano 3") into the base name,
// summarising quantities as a range ("2-4x Vulcano"). Duplicates after
// merging are dropped.
func CondenseNumericSuffixes(lines []string) []string {
	type group struct {
		base       string
		qtys       []int
		firstIndex int
	}

	groups := make(map[string]*group)
	var order []string
	type indexed struct {
		idx  int
		text string
	}
	var passthrough []indexed

	for idx, original := range lines {
		line := strings.TrimSpace(original)
		if line == "" {
			continue
		}

		qty := 0
		rest := line
		if m := qtyPrefixRe.FindStringSubmatch(line); m != nil {
			qty, _ = strconv.Atoi(m[1])
			rest = strings.TrimSpace(m[2])
		}

		m := numericSuffixRe.FindStringSubmatch(rest)
		if m == nil {
			passthrough = append(passthrough, indexed{idx: idx, text: original})
			continue
		}

		base := strings.TrimSpace(m[1])
		key := strings.ToLower(base)
		g, ok := groups[key]
		if !ok {
			g = &group{base: base, firstIndex: idx}
			groups[key] = g
			order = append(order, key)
		}
		if qty > 0 {
			g.qtys = append(g.qtys, qty)
		}
		if idx < g.firstIndex {
			g.firstIndex = idx
		}
	}

	var out []indexed
	for _, key := range order {
		g := groups[key]

		text := g.base
		if len(g.qtys) > 0 {
			mn, mx := g.qtys[0], g.qtys[0]
			for _, q := range g.qtys[1:] {
				if q < mn {
					mn = q
				}
				if q > mx {
					mx = q
				}
			}
			if mn == mx {
				text = fmt.Sprintf("%dx %s", mn, g.base)
			} else {
				text = fmt.Sprintf("%d-%dx %s", mn, mx, g.base)
			}
		}
		out = append(out, indexed{idx: g.firstIndex, text: text})
	}
	out = append(out, passthrough...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	seen := make(map[string]bool)
	var result []string
	for _, e := range out {
		if seen[e.text] {
			continue
		}
		seen[e.text] = true
		result = append(result, e.text)
	}
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
