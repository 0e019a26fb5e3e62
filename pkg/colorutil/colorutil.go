// Package colorutil provides shared color helpers for overlay styling
// and panel color tuning.
package colorutil

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" into an RGBA color.
// Six-digit colors are fully opaque. Anything unparseable falls back
// to def.
func ParseHex(value string, def color.RGBA) color.RGBA {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return def
	}

	parse := func(part string) (uint8, bool) {
		n, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(n), true
	}

	r, ok1 := parse(s[0:2])
	g, ok2 := parse(s[2:4])
	b, ok3 := parse(s[4:6])
	if !ok1 || !ok2 || !ok3 {
		return def
	}

	a := uint8(255)
	if len(s) == 8 {
		v, ok := parse(s[6:8])
		if !ok {
			return def
		}
		a = v
	}
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
// Useful for picking inRange bounds from a sampled panel pixel.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}
