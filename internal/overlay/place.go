package overlay

import (
	"math"

	"loot-lens/pkg/geometry"
)

// Placement margins, in pixels.
const (
	screenMargin = 10
	minSideGap   = 4
)

// Reference gaps between panel and overlay, measured on 1920x1080.
const (
	refGapX = 4
	refGapY = 46
)

// Gaps returns the panel-to-overlay gaps scaled to the given screen.
func Gaps(screenW, screenH int) (gapX, gapY int) {
	w, h := screenW, screenH
	if w <= 0 {
		w = 1920
	}
	if h <= 0 {
		h = 1080
	}
	gapX = int(math.Round(refGapX * float64(w) / 1920.0))
	gapY = int(math.Round(refGapY * float64(h) / 1080.0))
	if gapX < 1 {
		gapX = 1
	}
	if gapY < 1 {
		gapY = 1
	}
	return gapX, gapY
}

// PlaceRequest describes one placement problem, all in monitor-local
// coordinates.
type PlaceRequest struct {
	Panel   geometry.Box
	ScreenW int
	ScreenH int

	// Pointer is the cursor position; nil when unknown.
	Pointer *geometry.PointInt

	// UsedSecondary anchors the overlay at the panel top without the
	// vertical gap, matching the compact tooltip variant.
	UsedSecondary bool

	// Size reports the rendered overlay dimensions for the normal and
	// the compact (percent-in-second-column) variant.
	Size func(compact bool) (w, h int)
}

// Placement is the chosen overlay geometry.
type Placement struct {
	X, Y    int
	W, H    int
	Compact bool
}

// Place chooses where the overlay goes. The right side of the panel is
// preferred; when the full-width variant does not fit there, the
// compact variant is measured instead and the overlay falls back to
// the left side or a clamped position, dodging the pointer so the
// overlay never sits under the cursor it would re-trigger on.
func Place(req PlaceRequest) Placement {
	gapX, gapY := Gaps(req.ScreenW, req.ScreenH)
	sideGap := max(gapX, minSideGap)

	panel := req.Panel

	w, h := req.Size(false)
	compact := false
	xRightFull := panel.X2 + sideGap
	if xRightFull+w > req.ScreenW-screenMargin {
		compact = true
		w, h = req.Size(true)
	}

	y := panel.Y1 + gapY
	if req.UsedSecondary {
		y = panel.Y1
	}
	if y < screenMargin {
		y = screenMargin
	}
	if y+h > req.ScreenH-screenMargin {
		y = req.ScreenH - h - screenMargin
	}
	if y < screenMargin {
		y = screenMargin
	}

	xRight := panel.X2 + sideGap
	xLeft := panel.X1 - sideGap - w
	rightFits := xRight+w <= req.ScreenW-screenMargin

	panelCenterX := panel.X1 + (panel.X2-panel.X1)/2

	var x int
	placeLeft := false

	switch {
	case rightFits:
		x = xRight
		if req.Pointer != nil {
			dRight := horizontalDistance(req.Pointer.X, xRight, w)
			dLeft := horizontalDistance(req.Pointer.X, xLeft, w)
			if dRight < dLeft {
				x = xLeft
			}
		}
	case req.Pointer != nil && panelCenterX < req.Pointer.X:
		placeLeft = true
		x = xLeft
	case req.Pointer != nil:
		x = screenMargin
	default:
		x = panelCenterX - w/2
	}

	x = geometry.ClampInt(x, 0, req.ScreenW-w)
	y = geometry.ClampInt(y, 0, req.ScreenH-h)

	// Clamped placements can end up under the cursor; try below and
	// above the panel before giving up.
	if !placeLeft && !rightFits && req.Pointer != nil && x <= req.Pointer.X {
		px, py := req.Pointer.X, req.Pointer.Y

		clamp := func(cx, cy int) (int, int) {
			cx = geometry.ClampInt(cx, screenMargin, req.ScreenW-screenMargin-w)
			cy = geometry.ClampInt(cy, screenMargin, req.ScreenH-screenMargin-h)
			return cx, cy
		}
		tryPlace := func(cx, cy int) (int, int, bool) {
			cx, cy = clamp(cx, cy)
			if cx <= px && px <= cx+w && cy <= py && py <= cy+h {
				return 0, 0, false
			}
			return cx - 1, cy, true
		}

		alignX := panel.X1
		underY := panel.Y2 + sideGap
		aboveY := panel.Y1 - sideGap - h

		fitsUnder := underY+h <= req.ScreenH-screenMargin
		fitsAbove := aboveY >= screenMargin

		placed := false
		if fitsUnder {
			if nx, ny, ok := tryPlace(alignX, underY); ok {
				x, y = nx, ny
				placed = true
			}
		}
		if !placed && fitsAbove {
			if nx, ny, ok := tryPlace(alignX, aboveY); ok {
				x, y = nx, ny
				placed = true
			}
		}
		if !placed {
			if nx, ny, ok := tryPlace(alignX, underY); ok {
				x, y = nx, ny
			}
		}
	}

	return Placement{X: x, Y: y, W: w, H: h, Compact: compact}
}

// horizontalDistance is how far px lies outside the horizontal span
// [tx, tx+tw]; zero when inside.
func horizontalDistance(px, tx, tw int) int {
	if px < tx {
		return tx - px
	}
	if px > tx+tw {
		return px - (tx + tw)
	}
	return 0
}
