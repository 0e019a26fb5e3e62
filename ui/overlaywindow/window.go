// Package overlaywindow hosts the rendered advisor panel in a
// borderless, always-on-top window that can be positioned anywhere on
// the virtual desktop.
package overlaywindow

import (
	"fmt"
	"image"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"loot-lens/pkg/geometry"
)

// Window implements the pipeline's Presenter on top of GTK. All GTK
// calls are marshalled onto the GTK main loop; the exported methods
// are safe to call from the detection goroutine.
type Window struct {
	win   *gtk.Window
	image *gtk.Image

	visible bool
	alpha   float64
}

// New initializes GTK and builds the overlay window. Run must be
// called afterwards on the main goroutine.
func New() (*Window, error) {
	gtk.Init(nil)

	// A popup window skips the window manager: no decorations, no
	// focus stealing, and Move positions it absolutely.
	win, err := gtk.WindowNew(gtk.WINDOW_POPUP)
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}
	win.SetDecorated(false)
	win.SetKeepAbove(true)
	win.SetAcceptFocus(false)
	win.SetSkipTaskbarHint(true)
	win.SetAppPaintable(true)

	if screen := win.GetScreen(); screen != nil {
		if visual, err := screen.GetRGBAVisual(); err == nil && visual != nil {
			win.SetVisual(visual)
		}
	}

	img, err := gtk.ImageNew()
	if err != nil {
		return nil, fmt.Errorf("create overlay image: %w", err)
	}
	win.Add(img)

	return &Window{win: win, image: img, alpha: 1.0}, nil
}

// Run enters the GTK main loop. It blocks until Quit is called and
// must run on the main goroutine.
func (w *Window) Run() {
	gtk.Main()
}

// Quit stops the GTK main loop.
func (w *Window) Quit() {
	glib.IdleAdd(func() {
		gtk.MainQuit()
	})
}

// Show displays the rendered panel at the given desktop position.
func (w *Window) Show(img *image.RGBA, x, y int) {
	glib.IdleAdd(func() {
		pb, err := pixbufFromRGBA(img)
		if err != nil {
			return
		}
		w.image.SetFromPixbuf(pb)
		w.win.Move(x, y)
		w.win.SetOpacity(w.alpha)
		if !w.visible {
			w.win.ShowAll()
			w.visible = true
		}
	})
}

// Hide withdraws the overlay.
func (w *Window) Hide() {
	glib.IdleAdd(func() {
		if w.visible {
			w.win.Hide()
			w.visible = false
		}
	})
}

// SetAlpha updates the window opacity.
func (w *Window) SetAlpha(alpha float64) {
	glib.IdleAdd(func() {
		w.alpha = alpha
		if w.visible {
			w.win.SetOpacity(alpha)
		}
	})
}

// Pointer queries the cursor position in desktop coordinates. The
// query runs on the GTK thread; a stalled main loop reports unknown.
func (w *Window) Pointer() (geometry.PointInt, bool) {
	type answer struct {
		pt geometry.PointInt
		ok bool
	}
	ch := make(chan answer, 1)

	glib.IdleAdd(func() {
		display, err := gdk.DisplayGetDefault()
		if err != nil || display == nil {
			ch <- answer{}
			return
		}
		seat, err := display.GetDefaultSeat()
		if err != nil || seat == nil {
			ch <- answer{}
			return
		}
		device, err := seat.GetPointer()
		if err != nil || device == nil {
			ch <- answer{}
			return
		}

		var screen *gdk.Screen
		var x, y int
		if err := device.GetPosition(&screen, &x, &y); err != nil {
			ch <- answer{}
			return
		}
		ch <- answer{pt: geometry.PointInt{X: x, Y: y}, ok: true}
	})

	select {
	case a := <-ch:
		return a.pt, a.ok
	case <-time.After(50 * time.Millisecond):
		return geometry.PointInt{}, false
	}
}

// pixbufFromRGBA copies an RGBA image into a Pixbuf, honoring the
// pixbuf's row stride.
func pixbufFromRGBA(img *image.RGBA) (*gdk.Pixbuf, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	pb, err := gdk.PixbufNew(gdk.COLORSPACE_RGB, true, 8, w, h)
	if err != nil {
		return nil, fmt.Errorf("allocate pixbuf: %w", err)
	}

	dst := pb.GetPixels()
	stride := pb.GetRowstride()
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+4*w]
		copy(dst[y*stride:y*stride+4*w], src)
	}
	return pb, nil
}
