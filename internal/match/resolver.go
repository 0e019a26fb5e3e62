package match

import (
	"strings"

	"loot-lens/internal/itemdb"
)

// Match thresholds for the fallback strategies. Token-overlap matches
// are already constrained to candidates containing every token, so they
// tolerate a lower ratio than the purely fuzzy strategies.
const (
	tokenOverlapCutoff = 0.60
	substringCutoff    = 0.70
	closestCutoff      = 0.70
)

// Resolver maps noisy item names to rows of the item table.
type Resolver struct {
	table  *itemdb.Table
	lookup map[string]*itemdb.Row
	order  map[string]int
	keys   []string
}

// NewResolver indexes the table by normalized name. When two rows
// normalize to the same key the later row wins the lookup, but the
// ordering index keeps the first occurrence.
func NewResolver(t *itemdb.Table) *Resolver {
	r := &Resolver{
		table:  t,
		lookup: make(map[string]*itemdb.Row, t.Len()),
		order:  make(map[string]int, t.Len()),
	}

	for i := range t.Rows {
		row := &t.Rows[i]
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		norm := Normalize(row.Name)

		if _, seen := r.lookup[norm]; !seen {
			r.keys = append(r.keys, norm)
			r.order[norm] = i
		}
		r.lookup[norm] = row
	}
	return r
}

// IndexOf returns the table position of an exact (normalized) name.
func (r *Resolver) IndexOf(name string) (int, bool) {
	idx, ok := r.order[Normalize(name)]
	return idx, ok
}

// Table returns the underlying item table.
func (r *Resolver) Table() *itemdb.Table {
	return r.table
}

// Resolve finds the row for an OCR-read name. Strategies are tried in
// order: exact normalized match, token overlap, substring containment,
// then closest key overall. Each fallback has its own similarity
// cutoff; below all cutoffs the name stays unresolved.
func (r *Resolver) Resolve(name string) (*itemdb.Row, bool) {
	if name == "" || len(r.lookup) == 0 {
		return nil, false
	}

	norm := Normalize(name)
	if row, ok := r.lookup[norm]; ok {
		return row, true
	}

	var tokens []string
	for _, t := range strings.Fields(norm) {
		if len(t) >= 3 {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) > 0 {
		if key, ratio := r.bestKey(norm, func(k string) bool {
			for _, t := range tokens {
				if !strings.Contains(k, t) {
					return false
				}
			}
			return true
		}); key != "" && ratio >= tokenOverlapCutoff {
			return r.lookup[key], true
		}
	}

	if key, ratio := r.bestKey(norm, func(k string) bool {
		return strings.Contains(k, norm) || strings.Contains(norm, k)
	}); key != "" && ratio >= substringCutoff {
		return r.lookup[key], true
	}

	if key, ratio := r.bestKey(norm, nil); key != "" && ratio >= closestCutoff {
		return r.lookup[key], true
	}

	return nil, false
}

// bestKey returns the candidate key with the highest similarity to
// norm. A nil filter considers every key. Ties keep the earliest key in
// table order.
func (r *Resolver) bestKey(norm string, filter func(string) bool) (string, float64) {
	best := ""
	bestRatio := -1.0
	for _, k := range r.keys {
		if filter != nil && !filter(k) {
			continue
		}
		if ratio := Ratio(norm, k); ratio > bestRatio {
			best, bestRatio = k, ratio
		}
	}
	return best, bestRatio
}
