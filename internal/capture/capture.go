// Package capture grabs screen frames for panel detection.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
	"gocv.io/x/gocv"
)

// Frame is one captured screen image in BGR order. All detection math
// runs in monitor-local coordinates; the monitor offset comes from the
// grabber's Bounds and is only applied when the overlay window is
// positioned.
type Frame struct {
	Mat gocv.Mat
}

// Close releases the frame's pixel buffer.
func (f *Frame) Close() {
	f.Mat.Close()
}

// Grabber produces frames of the monitored screen region.
type Grabber interface {
	// Grab captures the current screen contents. The caller owns the
	// returned frame.
	Grab() (Frame, error)
	// Bounds returns the captured region in virtual desktop
	// coordinates.
	Bounds() image.Rectangle
}

// ScreenGrabber captures the primary screen through the X/Win32
// screenshot API.
type ScreenGrabber struct {
	bounds image.Rectangle
}

// NewScreenGrabber determines the screen geometry and returns a
// grabber for it.
func NewScreenGrabber() (*ScreenGrabber, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("query screen geometry: %w", err)
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("degenerate screen geometry %v", r)
	}
	return &ScreenGrabber{bounds: r}, nil
}

// Bounds returns the captured region.
func (g *ScreenGrabber) Bounds() image.Rectangle {
	return g.bounds
}

// Grab captures the screen and converts it to a BGR Mat.
func (g *ScreenGrabber) Grab() (Frame, error) {
	img, err := screenshot.CaptureRect(g.bounds)
	if err != nil {
		return Frame{}, fmt.Errorf("capture screen: %w", err)
	}

	mat, err := rgbaToBGR(img)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Mat: mat}, nil
}

// rgbaToBGR converts a captured RGBA image into a 3-channel BGR Mat.
func rgbaToBGR(img *image.RGBA) (gocv.Mat, error) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	// NewMatFromBytes wants densely packed rows.
	pix := img.Pix
	if img.Stride != 4*w {
		pix = make([]uint8, 4*w*h)
		for y := 0; y < h; y++ {
			copy(pix[y*4*w:(y+1)*4*w], img.Pix[y*img.Stride:y*img.Stride+4*w])
		}
	}

	rgba, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("wrap captured frame: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}
