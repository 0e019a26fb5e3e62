// Command paneltest runs item panel detection on a screenshot and outputs results.
package main

import (
	"flag"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"loot-lens/internal/detect"
	"loot-lens/internal/ocr"
	"loot-lens/pkg/colorutil"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot (PNG or JPEG)")
	runOCR := flag.Bool("ocr", false, "Run OCR on the extracted name regions")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: paneltest -image <path> [-ocr]")
		os.Exit(1)
	}

	frame := gocv.IMRead(*imagePath, gocv.IMReadColor)
	if frame.Empty() {
		fmt.Fprintf(os.Stderr, "Failed to load image: %s\n", *imagePath)
		os.Exit(1)
	}
	defer frame.Close()

	fmt.Printf("Loaded image: %dx%d pixels\n", frame.Cols(), frame.Rows())

	opts := detect.DefaultOptions()
	fmt.Printf("\nDetection parameters:\n")
	fmt.Printf("  HSV: H(%.0f-%.0f) S(%.0f-%.0f) V(%.0f-%.0f)\n",
		opts.LowerHSV[0], opts.UpperHSV[0], opts.LowerHSV[1], opts.UpperHSV[1], opts.LowerHSV[2], opts.UpperHSV[2])
	fmt.Printf("  Min area: %.0f px\n", opts.MinArea)
	fmt.Printf("  Fill ratio min: %.2f\n", opts.MinFillRatio)
	fmt.Printf("  Aspect: %.2f - %.2f\n", opts.AspectMin, opts.AspectMax)

	fmt.Printf("\nDetecting panel...\n")
	det := detect.NewDetector(opts)
	panel, ok := det.Detect(frame)
	if !ok {
		fmt.Println("No item panel found")
		os.Exit(0)
	}

	fmt.Printf("Panel: (%d,%d)-(%d,%d) %dx%d\n",
		panel.X1, panel.Y1, panel.X2, panel.Y2, panel.Width(), panel.Height())

	// Sample the panel center so inRange bounds can be tuned against
	// the actual background tone.
	center := frame.GetVecbAt((panel.Y1+panel.Y2)/2, (panel.X1+panel.X2)/2)
	h, s, v := colorutil.RGBToHSV(float64(center[2]), float64(center[1]), float64(center[0]))
	fmt.Printf("Panel center HSV: (%.0f, %.0f, %.0f)\n", h, s, v)

	if !*runOCR {
		return
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR init failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	primary, ok := detect.ExtractNameRegion(frame, panel, detect.PrimaryNameRegion)
	if ok {
		defer primary.Close()
		lines, err := engine.Lines(primary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "OCR failed on primary region: %v\n", err)
		} else {
			fmt.Printf("Primary region lines: %q\n", lines)
		}
	}

	secondary, ok := detect.ExtractNameRegion(frame, panel, detect.SecondaryNameRegion)
	if ok {
		defer secondary.Close()
		lines, err := engine.Lines(secondary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "OCR failed on secondary region: %v\n", err)
		} else {
			fmt.Printf("Secondary region lines: %q\n", lines)
		}
	}
}
