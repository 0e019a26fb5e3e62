package colorutil

import (
	"image/color"
	"math"
	"testing"
)

// TestParseHex covers opaque, alpha and fallback parsing.
func TestParseHex(t *testing.T) {
	def := color.RGBA{R: 1, G: 2, B: 3, A: 4}

	if got := ParseHex("#ff2828", def); got != (color.RGBA{R: 0xff, G: 0x28, B: 0x28, A: 0xff}) {
		t.Errorf("opaque = %v", got)
	}
	if got := ParseHex("#3737370f", def); got != (color.RGBA{R: 0x37, G: 0x37, B: 0x37, A: 0x0f}) {
		t.Errorf("alpha = %v", got)
	}
	if got := ParseHex("  #00ff00  ", def); got != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("trimmed = %v", got)
	}
	for _, bad := range []string{"", "#fff", "red", "#zzzzzz"} {
		if got := ParseHex(bad, def); got != def {
			t.Errorf("ParseHex(%q) = %v, want fallback", bad, got)
		}
	}
}

// TestRGBToHSV checks the conversion against hand-computed values in
// OpenCV's H 0-180 convention.
func TestRGBToHSV(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"pure red", 255, 0, 0, 0, 255, 255},
		{"pure green", 0, 255, 0, 60, 255, 255},
		{"pure blue", 0, 0, 255, 120, 255, 255},
		{"item panel tone", 245, 230, 210, 17.14, 36.43, 245},
	}
	for _, c := range cases {
		h, s, v := RGBToHSV(c.r, c.g, c.b)
		if math.Abs(h-c.h) > 0.1 || math.Abs(s-c.s) > 0.1 || math.Abs(v-c.v) > 0.1 {
			t.Errorf("%s: RGBToHSV = (%.2f, %.2f, %.2f), want (%.2f, %.2f, %.2f)",
				c.name, h, s, v, c.h, c.s, c.v)
		}
	}
}
