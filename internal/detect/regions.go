package detect

import (
	"image"

	"gocv.io/x/gocv"

	"loot-lens/pkg/geometry"
)

// Reference layout the name regions were measured on.
const (
	RefWidth  = 1920
	RefHeight = 1080
)

// Name regions inside the panel, in reference-canvas pixels. The
// primary region holds the item name on regular tooltips; the secondary
// sits higher and catches names on compact tooltips.
var (
	PrimaryNameRegion   = geometry.RectInt{X: 15, Y: 54, Width: 340, Height: 90}
	SecondaryNameRegion = geometry.RectInt{X: 15, Y: 4, Width: 340, Height: 90}
)

// ExtractNameRegion crops a name region out of the detected panel. The
// reference rectangle is scaled to the frame's resolution and clamped
// to the panel crop, keeping at least one pixel. The returned Mat is a
// copy and must be closed by the caller; on failure it is a valid
// empty Mat.
func ExtractNameRegion(frame gocv.Mat, panel geometry.Box, ref geometry.RectInt) (gocv.Mat, bool) {
	if frame.Empty() || panel.Empty() {
		return gocv.NewMat(), false
	}

	p := panel.Clamp(frame.Cols(), frame.Rows())
	tooltip := frame.Region(image.Rect(p.X1, p.Y1, p.X2, p.Y2))
	defer tooltip.Close()

	scaled := geometry.ScaleRect(ref, RefWidth, RefHeight, frame.Cols(), frame.Rows())
	crop := scaled.ToBox().Clamp(tooltip.Cols(), tooltip.Rows())
	if crop.Empty() {
		return gocv.NewMat(), false
	}

	region := tooltip.Region(image.Rect(crop.X1, crop.Y1, crop.X2, crop.Y2))
	defer region.Close()

	return region.Clone(), true
}
