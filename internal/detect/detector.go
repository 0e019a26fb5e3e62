// Package detect locates the in-game item panel in captured frames and
// carves out the name regions handed to OCR.
package detect

import (
	"image"
	"image/color"
	"sort"

	"gocv.io/x/gocv"

	"loot-lens/pkg/geometry"
)

// Options controls panel detection. The defaults are tuned for the
// warm, near-white item panel on the 1920x1080 reference layout and
// scale with the capture resolution through the contour area checks.
type Options struct {
	// LowerHSV and UpperHSV bound the panel background color.
	LowerHSV [3]float64
	UpperHSV [3]float64

	// MinArea rejects contours smaller than the panel can be.
	MinArea float64
	// MinFillRatio rejects ragged contours that fill too little of
	// their bounding box.
	MinFillRatio float64
	// MaxVertices rejects shapes that stay complex after polygon
	// simplification.
	MaxVertices int
	// KernelSize is the square opening kernel that removes speckle
	// from the color mask.
	KernelSize int
	// AspectMin and AspectMax bound the width/height ratio.
	AspectMin float64
	AspectMax float64
}

// DefaultOptions returns the tuned detection parameters.
func DefaultOptions() Options {
	return Options{
		LowerHSV:     [3]float64{10, 5, 200},
		UpperHSV:     [3]float64{30, 80, 255},
		MinArea:      30000,
		MinFillRatio: 0.80,
		MaxVertices:  6,
		KernelSize:   12,
		AspectMin:    0.4,
		AspectMax:    1.8,
	}
}

// Detector finds the item panel by color and shape.
type Detector struct {
	opts Options

	overlayRect *geometry.Box
}

// NewDetector creates a detector with the given options.
func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// SetOverlayRect marks the region our own overlay window occupies so it
// is blanked out of the mask and can never be detected as a panel.
func (d *Detector) SetOverlayRect(b geometry.Box) {
	d.overlayRect = &b
}

// ClearOverlayRect removes the overlay exclusion region.
func (d *Detector) ClearOverlayRect() {
	d.overlayRect = nil
}

// Detect returns the bounding box of the item panel in frame
// coordinates, or false when no acceptable candidate exists. The frame
// must be BGR.
func (d *Detector) Detect(frame gocv.Mat) (geometry.Box, bool) {
	if frame.Empty() {
		return geometry.Box{}, false
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	lower := gocv.NewScalar(d.opts.LowerHSV[0], d.opts.LowerHSV[1], d.opts.LowerHSV[2], 0)
	upper := gocv.NewScalar(d.opts.UpperHSV[0], d.opts.UpperHSV[1], d.opts.UpperHSV[2], 0)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	if d.overlayRect != nil {
		r := d.overlayRect.Clamp(mask.Cols(), mask.Rows())
		if !r.Empty() {
			gocv.Rectangle(&mask, image.Rect(r.X1, r.Y1, r.X2, r.Y2), color.RGBA{}, -1)
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(d.opts.KernelSize, d.opts.KernelSize))
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	type candidate struct {
		box   geometry.Box
		score float64 // area * fill ratio
	}
	var candidates []candidate

	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)

		rect := gocv.BoundingRect(c)
		if rect.Dx() <= 0 || rect.Dy() <= 0 {
			continue
		}

		area := gocv.ContourArea(c)
		if area < d.opts.MinArea {
			continue
		}

		fill := area / float64(rect.Dx()*rect.Dy())
		if fill < d.opts.MinFillRatio {
			continue
		}

		peri := gocv.ArcLength(c, true)
		approx := gocv.ApproxPolyDP(c, 0.03*peri, true)
		vertices := approx.Size()
		approx.Close()
		if vertices > d.opts.MaxVertices {
			continue
		}

		aspect := float64(rect.Dx()) / float64(rect.Dy())
		if aspect < d.opts.AspectMin || aspect > d.opts.AspectMax {
			continue
		}

		candidates = append(candidates, candidate{
			box:   geometry.NewBox(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y),
			score: area * fill,
		})
	}

	if len(candidates) == 0 {
		return geometry.Box{}, false
	}

	// Leftmost panel wins; among equals the strongest contour.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].box.X1 != candidates[j].box.X1 {
			return candidates[i].box.X1 < candidates[j].box.X1
		}
		return candidates[i].score > candidates[j].score
	})

	return candidates[0].box, true
}
