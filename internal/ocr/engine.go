// Package ocr reads item names out of panel crops with Tesseract and
// runs the recognition off the capture loop on a dedicated worker.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// PanelChars is the character set for item name OCR. Item names only
// use plain letters, digits and spaces; everything else is noise.
const PanelChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 "

// ocrTargetHeight is the text height Tesseract performs best at for
// this font; taller crops are downscaled to it.
const ocrTargetHeight = 40

// Engine wraps a Tesseract client configured for item name panels.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Item names are proper nouns, dictionary correction only hurts.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := client.SetWhitelist(PanelChars); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Lines performs OCR on a name region and returns the cleaned text
// lines top to bottom. Trailing roman numerals are rewritten to digits
// so tiered item names line up with the database.
func (e *Engine) Lines(roi gocv.Mat) ([]string, error) {
	if roi.Empty() {
		return nil, nil
	}

	processed := preprocess(roi)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line == "" {
			continue
		}
		lines = append(lines, ConvertTrailingRoman(line))
	}
	return lines, nil
}

// preprocess converts the region to grayscale and downscales tall
// crops to the target text height. The returned Mat must be closed.
func preprocess(roi gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	h := gray.Rows()
	if h <= ocrTargetHeight {
		return gray
	}

	scale := float64(ocrTargetHeight) / float64(h)
	scaled := gocv.NewMat()
	gocv.Resize(gray, &scaled, image.Pt(int(float64(gray.Cols())*scale), ocrTargetHeight), 0, 0, gocv.InterpolationArea)
	gray.Close()
	return scaled
}

var romanTails = []struct {
	roman string
	digit string
}{
	{"IV", "4"},
	{"III", "3"},
	{"II", "2"},
	{"I", "1"},
}

// ConvertTrailingRoman rewrites a trailing roman numeral to its digit,
// tolerating the glyphs OCR confuses with I ("|" and "l"). Single-word
// strings pass through so names like "I-Beam" are not mangled.
func ConvertTrailingRoman(name string) string {
	s := strings.TrimRight(name, " \t")
	if s == "" || len(strings.Fields(s)) < 2 {
		return name
	}

	for _, t := range romanTails {
		n := len(t.roman)
		if len(s) < n {
			continue
		}
		tail := strings.ToUpper(s[len(s)-n:])
		tail = strings.NewReplacer("|", "I", "L", "I").Replace(tail)
		if tail == t.roman {
			return s[:len(s)-n] + t.digit
		}
	}
	return name
}
