package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"loot-lens/internal/settings"
	"loot-lens/pkg/colorutil"
)

// Layout constants, in pixels.
const (
	padding       = 14
	lineGap       = 8
	indentWidth   = 14
	columnGap     = 10
	titleFontSize = 17
	cornerRadius  = 8
)

// craftOwnColumnMin is the reverse-recycle line count from which the
// crafting list moves into its own third column instead of stacking
// under the reverse-recycle one.
const craftOwnColumnMin = 8

// Style carries the colors and font size the panel is drawn with.
type Style struct {
	FontSize int
	Alpha    float64

	Panel         color.RGBA
	TextPrimary   color.RGBA
	TextSecondary color.RGBA
	KeepColor     color.RGBA
	RecycleColor  color.RGBA
	SellColor     color.RGBA
}

// StyleFromSettings resolves the configured color strings.
func StyleFromSettings(s settings.Snapshot) Style {
	return Style{
		FontSize:      s.FontSize,
		Alpha:         s.Alpha,
		Panel:         colorutil.ParseHex(s.PanelColor, color.RGBA{55, 55, 55, 15}),
		TextPrimary:   colorutil.ParseHex(s.TextPrimary, color.RGBA{20, 20, 20, 255}),
		TextSecondary: colorutil.ParseHex(s.TextSecondary, color.RGBA{80, 80, 80, 255}),
		KeepColor:     colorutil.ParseHex(s.KeepColor, color.RGBA{255, 40, 40, 255}),
		RecycleColor:  colorutil.ParseHex(s.RecycleColor, color.RGBA{40, 255, 255, 255}),
		SellColor:     colorutil.ParseHex(s.SellColor, color.RGBA{40, 255, 40, 255}),
	}
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

func face(size int) (font.Face, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse overlay font: %w", fontErr)
	}
	f, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create overlay font face: %w", err)
	}
	return f, nil
}

func textW(f font.Face, s string) int {
	return font.MeasureString(f, s).Ceil()
}

func textH(f font.Face) int {
	m := f.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// textItem is one positioned string, relative to its column.
type textItem struct {
	kind string // "header", "left", "right", "craft"
	xOff int
	y    int
	text string
	face font.Face
	fill color.RGBA
}

// Render lays the content out and draws the panel image. With
// percentInSecond the value-gain rows move into a second column to
// keep the panel short; content with extra columns ignores the flag.
func Render(c Content, st Style, percentInSecond bool) (*image.RGBA, error) {
	fontTitle, err := face(titleFontSize)
	if err != nil {
		return nil, err
	}
	fontLabel, err := face(st.FontSize)
	if err != nil {
		return nil, err
	}
	fontBody := fontLabel

	if c.HasColumns() {
		percentInSecond = false
	}

	verdictCol := st.TextSecondary
	switch c.Verdict {
	case "KEEP":
		verdictCol = st.KeepColor
	case "RECYCLE":
		verdictCol = st.RecycleColor
	case "SELL":
		verdictCol = st.SellColor
	}

	var items []textItem
	headerMaxW := 0
	leftMaxW := 0
	rrMaxW := 0
	craftMaxW := 0

	y := padding
	titleY := y

	// The game panel already displays the item name; the title only
	// contributes to the width so narrow panels do not look cramped.
	headerMaxW = max(headerMaxW, textW(fontTitle, c.Title))
	y = lineGap * 2

	neededLabel := "Needed for Tasks:"
	neededLabelY := y
	headerMaxW = max(headerMaxW, textW(fontLabel, neededLabel))
	items = append(items, textItem{kind: "header", y: y, text: neededLabel, face: fontLabel, fill: st.TextSecondary})
	y += textH(fontLabel) + lineGap

	for _, line := range c.NeededLines {
		headerMaxW = max(headerMaxW, indentWidth+textW(fontBody, line))
		items = append(items, textItem{kind: "header", xOff: indentWidth, y: y, text: line, face: fontBody, fill: st.TextPrimary})
		y += textH(fontBody) + lineGap
	}
	y += lineGap

	headerMaxW = max(headerMaxW, textW(fontLabel, c.VerdictLabel), indentWidth+textW(fontLabel, c.VerdictText))
	items = append(items, textItem{kind: "header", y: y, text: c.VerdictLabel, face: fontLabel, fill: st.TextSecondary})
	y += textH(fontLabel) + lineGap
	items = append(items, textItem{kind: "header", xOff: indentWidth, y: y, text: c.VerdictText, face: fontLabel, fill: verdictCol})
	y += textH(fontLabel) + lineGap*2

	columnsTop := y
	yLeft := columnsTop
	yRR := columnsTop
	yCraft := columnsTop

	rrDisplayCount := len(c.ReverseRecycle)

	if c.HasColumns() {
		yRR = titleY
		yCraft = titleY

		if len(c.ReverseRecycle) > 0 {
			label := "Reverse Recycle:"
			rrMaxW = max(rrMaxW, textW(fontLabel, label))
			items = append(items, textItem{kind: "right", y: yRR, text: label, face: fontLabel, fill: st.TextSecondary})
			yRR += textH(fontLabel) + lineGap

			for _, line := range c.ReverseRecycle {
				rrMaxW = max(rrMaxW, indentWidth+textW(fontBody, line))
				items = append(items, textItem{kind: "right", xOff: indentWidth, y: yRR, text: line, face: fontBody, fill: st.TextPrimary})
				yRR += textH(fontBody) + lineGap
			}
		}

		if len(c.Crafting) > 0 {
			label := "Used for Crafting/Upgrading:"
			if len(c.ReverseRecycle) > 0 && rrDisplayCount >= craftOwnColumnMin {
				craftMaxW = max(craftMaxW, textW(fontLabel, label))
				items = append(items, textItem{kind: "craft", y: yCraft, text: label, face: fontLabel, fill: st.TextSecondary})
				yCraft += textH(fontLabel) + lineGap

				for _, line := range c.Crafting {
					craftMaxW = max(craftMaxW, indentWidth+textW(fontBody, line))
					items = append(items, textItem{kind: "craft", xOff: indentWidth, y: yCraft, text: line, face: fontBody, fill: st.TextPrimary})
					yCraft += textH(fontBody) + lineGap
				}
			} else {
				if len(c.ReverseRecycle) > 0 {
					yRR += lineGap
				}
				rrMaxW = max(rrMaxW, textW(fontLabel, label))
				items = append(items, textItem{kind: "right", y: yRR, text: label, face: fontLabel, fill: st.TextSecondary})
				yRR += textH(fontLabel) + lineGap

				for _, line := range c.Crafting {
					rrMaxW = max(rrMaxW, indentWidth+textW(fontBody, line))
					items = append(items, textItem{kind: "right", xOff: indentWidth, y: yRR, text: line, face: fontBody, fill: st.TextPrimary})
					yRR += textH(fontBody) + lineGap
				}
			}
		}
	} else if percentInSecond {
		yRR = neededLabelY

		addPercent := func(label, value string) {
			rrMaxW = max(rrMaxW, textW(fontLabel, label))
			items = append(items, textItem{kind: "right", y: yRR, text: label, face: fontLabel, fill: st.TextSecondary})
			yRR += textH(fontLabel) + lineGap

			rrMaxW = max(rrMaxW, indentWidth+textW(fontBody, value))
			items = append(items, textItem{kind: "right", xOff: indentWidth, y: yRR, text: value, face: fontBody, fill: st.TextPrimary})
			yRR += textH(fontBody) + lineGap*2
		}
		addPercent("Recycle Value Gain (vs Salvage):", c.RecGain)
		addPercent("Sell Value Gain (vs Recycle):", c.SellGain)
	}

	// Left column: recycle and salvage outputs, then the value rows.
	addList := func(label string, lines []string) {
		leftMaxW = max(leftMaxW, textW(fontLabel, label))
		items = append(items, textItem{kind: "left", y: yLeft, text: label, face: fontLabel, fill: st.TextSecondary})
		yLeft += textH(fontLabel) + lineGap
		for _, line := range lines {
			leftMaxW = max(leftMaxW, indentWidth+textW(fontBody, line))
			items = append(items, textItem{kind: "left", xOff: indentWidth, y: yLeft, text: line, face: fontBody, fill: st.TextPrimary})
			yLeft += textH(fontBody) + lineGap
		}
		yLeft += lineGap
	}
	addValue := func(label, value string) {
		leftMaxW = max(leftMaxW, textW(fontLabel, label))
		items = append(items, textItem{kind: "left", y: yLeft, text: label, face: fontLabel, fill: st.TextSecondary})
		yLeft += textH(fontLabel) + lineGap

		leftMaxW = max(leftMaxW, indentWidth+textW(fontBody, value))
		items = append(items, textItem{kind: "left", xOff: indentWidth, y: yLeft, text: value, face: fontBody, fill: st.TextPrimary})
		yLeft += textH(fontBody) + lineGap*2
	}

	addList("Recycle:", c.RecycleLines)
	addList("Salvage:", c.SalvageLines)

	if !percentInSecond {
		addValue("Recycle Value Gain (vs Salvage):", c.RecGain)
		addValue("Sell Value Gain (vs Recycle):", c.SellGain)
	}
	addValue("Sell Price per Item:", c.SellPrice)

	contentBottom := yLeft
	if rrMaxW > 0 && yRR > contentBottom {
		contentBottom = yRR
	}
	if craftMaxW > 0 && yCraft > contentBottom {
		contentBottom = yCraft
	}

	leftColW := max(headerMaxW, leftMaxW)
	if leftColW <= 0 {
		leftColW = 50
	}

	contentW := leftColW
	rrXInner := -1
	craftXInner := -1

	if rrMaxW > 0 {
		rrXInner = leftColW + columnGap
		contentW = max(contentW, rrXInner+rrMaxW)
	}
	if craftMaxW > 0 {
		craftXInner = leftColW + columnGap
		if rrXInner >= 0 && rrDisplayCount >= craftOwnColumnMin {
			craftXInner = rrXInner + rrMaxW + columnGap
		}
		contentW = max(contentW, craftXInner+craftMaxW)
	}

	width := padding + contentW + padding
	height := contentBottom + padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRoundedRect(img, width, height, cornerRadius, st.Panel)

	leftX := padding
	rrX := -1
	craftX := -1
	if rrXInner >= 0 {
		rrX = leftX + rrXInner
	}
	if craftXInner >= 0 {
		craftX = leftX + craftXInner
	}

	for _, it := range items {
		x := leftX + it.xOff
		switch it.kind {
		case "right":
			if rrX < 0 {
				continue
			}
			x = rrX + it.xOff
		case "craft":
			if craftX < 0 {
				continue
			}
			x = craftX + it.xOff
		}

		if it.y < 0 || it.y >= height {
			continue
		}

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(it.fill),
			Face: it.face,
			Dot:  fixed.P(x, it.y+it.face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(it.text)
	}

	return img, nil
}

// fillRoundedRect paints the panel background, leaving the corner
// pixels outside the radius fully transparent.
func fillRoundedRect(img *image.RGBA, w, h, radius int, col color.RGBA) {
	inside := func(x, y int) bool {
		cx, cy := -1, -1
		if x < radius && y < radius {
			cx, cy = radius-1, radius-1
		} else if x >= w-radius && y < radius {
			cx, cy = w-radius, radius-1
		} else if x < radius && y >= h-radius {
			cx, cy = radius-1, h-radius
		} else if x >= w-radius && y >= h-radius {
			cx, cy = w-radius, h-radius
		} else {
			return true
		}
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inside(x, y) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
