// Package match resolves OCR-read item names against the item database.
// OCR output is noisy (I vs l, 0 vs O, roman numerals read as digits),
// so both sides are folded through the same normalization before any
// comparison.
package match

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var trailingTierRe = regexp.MustCompile(`(?i)(\b[IVXLCDM]+\b|\b\d+\b)$`)

var romanTiers = map[string]string{
	"I":   "1",
	"II":  "2",
	"III": "3",
	"IV":  "4",
}

// Normalize folds a display or OCR name into a canonical matching key.
// A trailing roman numeral or integer is rewritten to a plain digit, so
// "Extended Light Mag II" and "EXTENDED LIGHT MAG 2" share a key.
//
// Very short names (3 or fewer non-space characters, e.g. "OIL") skip
// the I/|/1 -> l folding so "OIL" and "Oil" both become "oil".
func Normalize(name string) string {
	s := strings.TrimSpace(name)

	if s != "" {
		if loc := trailingTierRe.FindStringSubmatchIndex(s); loc != nil {
			token := s[loc[2]:loc[3]]
			clean := strings.NewReplacer("|", "I", "L", "I").Replace(strings.ToUpper(token))

			digit := ""
			if d, ok := romanTiers[clean]; ok {
				digit = d
			} else if isDigits(clean) {
				digit = clean
			}

			if digit != "" {
				s = s[:loc[2]] + digit
			}
		}
	}

	core := strings.Join(strings.Fields(s), "")
	short := utf8.RuneCountInString(core) <= 3

	s = strings.Map(func(r rune) rune {
		switch r {
		case '0':
			return 'o'
		case 'I', '|', '1':
			if short {
				return r
			}
			return 'l'
		}
		return r
	}, s)

	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
