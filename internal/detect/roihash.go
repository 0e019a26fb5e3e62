package detect

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// roiHashWidth x roiHashHeight is the thumbnail the name region is
// reduced to before comparison.
const (
	roiHashWidth  = 64
	roiHashHeight = 16
)

// ROIHasher produces a stable key for the name region so unchanged
// panels do not trigger repeated OCR. Frames whose grayscale thumbnail
// differs from the previous one by less than the threshold (mean
// absolute pixel difference) reuse the previous key.
type ROIHasher struct {
	threshold float64

	prevGray []float64
	prevKey  string
}

// NewROIHasher creates a hasher with the given mean-difference
// threshold. 3.0 tolerates compression shimmer and cursor glow without
// missing an actual item change.
func NewROIHasher(threshold float64) *ROIHasher {
	return &ROIHasher{threshold: threshold}
}

// Key returns the content key for a name region. The boolean is false
// when the region is unusable.
func (h *ROIHasher) Key(roi gocv.Mat) (string, bool) {
	if roi.Empty() {
		return "", false
	}

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(roi, &small, image.Pt(roiHashWidth, roiHashHeight), 0, 0, gocv.InterpolationArea)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(small, &gray, gocv.ColorBGRToGray)

	pixels := gray.ToBytes()
	cur := make([]float64, len(pixels))
	for i, p := range pixels {
		cur[i] = float64(p)
	}

	if h.prevGray != nil && len(h.prevGray) == len(cur) {
		diffs := make([]float64, len(cur))
		for i := range cur {
			d := cur[i] - h.prevGray[i]
			if d < 0 {
				d = -d
			}
			diffs[i] = d
		}
		if stat.Mean(diffs, nil) < h.threshold {
			return h.prevKey, true
		}
	}

	h.prevGray = cur
	h.prevKey = string(pixels)
	return h.prevKey, true
}

// Reset forgets the previous region so the next frame always produces a
// fresh key.
func (h *ROIHasher) Reset() {
	h.prevGray = nil
	h.prevKey = ""
}
