// Package pipeline runs the live detection loop: capture, panel
// detection, OCR dispatch, and overlay presentation.
package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"loot-lens/internal/capture"
	"loot-lens/internal/detect"
	"loot-lens/internal/input"
	"loot-lens/internal/match"
	"loot-lens/internal/ocr"
	"loot-lens/internal/overlay"
	"loot-lens/internal/settings"
	"loot-lens/internal/verdict"
	"loot-lens/pkg/geometry"
)

// Presenter drives the actual overlay window. Coordinates passed to
// Show are virtual desktop coordinates.
type Presenter interface {
	Show(img *image.RGBA, x, y int)
	Hide()
	SetAlpha(alpha float64)
	// Pointer returns the cursor position in virtual desktop
	// coordinates, false when unknown.
	Pointer() (geometry.PointInt, bool)
}

// Config carries the loop's timing and thresholds.
type Config struct {
	SettingsPath string

	// Interval is the detection tick.
	Interval time.Duration
	// OCRMinInterval throttles how often a changed name region may be
	// submitted for OCR.
	OCRMinInterval time.Duration
	// MissingBeforeHide is how many consecutive panel-less frames are
	// tolerated before the overlay hides.
	MissingBeforeHide int
	// HashThreshold is the mean-difference threshold for treating the
	// name region as unchanged.
	HashThreshold float64
}

// DefaultConfig returns the tuned loop parameters.
func DefaultConfig() Config {
	return Config{
		Interval:          100 * time.Millisecond,
		OCRMinInterval:    350 * time.Millisecond,
		MissingBeforeHide: 2,
		HashThreshold:     3.0,
	}
}

// Pipeline owns the detection loop.
type Pipeline struct {
	cfg Config

	grabber   capture.Grabber
	detector  *detect.Detector
	hasher    *detect.ROIHasher
	worker    *ocr.Worker
	resolver  *match.Resolver
	store     *verdict.Store
	presenter Presenter
	source    input.Source

	watcher *settings.Watcher
	snap    settings.Snapshot
	cache   *overlay.ImageCache

	st State
}

// New wires a pipeline. The worker must already be started.
func New(cfg Config, grabber capture.Grabber, worker *ocr.Worker, resolver *match.Resolver, store *verdict.Store, presenter Presenter, source input.Source) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		grabber:   grabber,
		detector:  detect.NewDetector(detect.DefaultOptions()),
		hasher:    detect.NewROIHasher(cfg.HashThreshold),
		worker:    worker,
		resolver:  resolver,
		store:     store,
		presenter: presenter,
		source:    source,
		watcher:   settings.NewWatcher(cfg.SettingsPath),
		snap:      settings.Load(cfg.SettingsPath),
		cache:     overlay.NewImageCache(),
		st:        NewState(),
	}
}

// Settings returns the active settings snapshot.
func (p *Pipeline) Settings() settings.Snapshot {
	return p.snap
}

// Run executes the loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.presenter.SetAlpha(p.snap.Alpha)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	log.Info().
		Bool("always_on", p.snap.AlwaysOn).
		Str("hotkey", p.snap.Hotkey.Key).
		Msg("live detection started")

	for {
		select {
		case <-ctx.Done():
			p.hideOverlay()
			return ctx.Err()
		case ev, ok := <-p.source.Events():
			if !ok {
				p.hideOverlay()
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Pipeline) handleEvent(ev input.Event) {
	switch ev.Kind {
	case input.HoldStart:
		p.st.HotkeyHeld = true
	case input.HoldStop:
		p.st.HotkeyHeld = false
	case input.CycleVerdict:
		p.cycleVerdict()
	}
}

// cycleVerdict advances the override for the item currently shown.
func (p *Pipeline) cycleVerdict() {
	row := p.st.ShownRow
	if row == nil || row.Name == "" {
		return
	}

	next, err := p.store.CycleForward(row.Name, row.Verdict)
	if err != nil {
		log.Error().Err(err).Str("item", row.Name).Msg("cycling verdict")
		return
	}
	log.Info().Str("item", row.Name).Str("verdict", next).Msg("verdict override")

	p.cache.Clear()
	p.st.NeedsRefresh = true
}

// tick runs one detection cycle.
func (p *Pipeline) tick() {
	p.reloadSettings()

	gating := p.snap.AlwaysOn || p.st.HotkeyHeld

	if gating {
		p.scan()
	} else {
		if p.st.LastName != "" || p.st.LastRow != nil || p.st.LastPanel != nil {
			p.st.ResetItem()
			p.hasher.Reset()
			p.cache.Clear()
			p.hideOverlay()
		}
		p.st.MissingFrames = 0
	}

	tooltipActive := gating && p.st.LastPanel != nil

	p.drainResults(tooltipActive)
	p.present(tooltipActive)
}

// reloadSettings picks up edits made by the settings UI.
func (p *Pipeline) reloadSettings() {
	if !p.watcher.Changed() {
		return
	}
	p.snap = settings.Load(p.cfg.SettingsPath)
	p.cache.Clear()
	p.st.NeedsRefresh = true
	p.presenter.SetAlpha(p.snap.Alpha)
	log.Info().Msg("settings reloaded")
}

// scan captures a frame, finds the panel, and dispatches OCR when the
// name region changed.
func (p *Pipeline) scan() {
	frame, err := p.grabber.Grab()
	if err != nil {
		log.Error().Err(err).Msg("screen capture failed")
		return
	}
	defer frame.Close()

	panel, found := p.detector.Detect(frame.Mat)
	if !found {
		p.st.MissingFrames++
		if p.st.MissingFrames >= p.cfg.MissingBeforeHide {
			if p.st.LastName != "" || p.st.LastRow != nil {
				log.Debug().Msg("panel lost, hiding overlay")
			}
			p.st.ResetItem()
			p.hideOverlay()
		}
		return
	}

	p.st.MissingFrames = 0
	p.st.LastPanel = &panel

	primary, okP := detect.ExtractNameRegion(frame.Mat, panel, detect.PrimaryNameRegion)
	if !okP {
		primary.Close()
		return
	}
	secondary, _ := detect.ExtractNameRegion(frame.Mat, panel, detect.SecondaryNameRegion)

	key, okKey := p.hasher.Key(primary)
	now := time.Now()
	if okKey && key != p.st.LastHashKey && now.Sub(p.st.LastOCRTime) >= p.cfg.OCRMinInterval {
		p.st.LastHashKey = key
		p.st.LastOCRTime = now

		p.st.NextTaskID++
		task := ocr.Task{
			ID:        p.st.NextTaskID,
			Primary:   primary,
			Secondary: secondary,
			Panel:     panel,
		}
		if !p.worker.Submit(task) {
			// Queue full, a fresher frame will come soon.
			task.Close()
		}
		return
	}

	primary.Close()
	secondary.Close()
}

// drainResults consumes everything the OCR worker produced since the
// previous tick, keeping only the newest result.
func (p *Pipeline) drainResults(tooltipActive bool) {
	for {
		select {
		case res := <-p.worker.Results():
			if !p.st.AcceptResult(res.TaskID) {
				continue
			}
			if !tooltipActive {
				continue
			}
			if res.Err != nil {
				log.Warn().Err(res.Err).Int64("task", res.TaskID).Msg("OCR failed")
				continue
			}

			if res.Name != "" && res.Row != nil {
				p.st.LastName = res.Name
				p.st.LastRow = res.Row
				p.st.LastUsedSecondary = res.UsedSecondary
				log.Info().
					Str("read", res.Name).
					Str("matched", res.Row.Name).
					Bool("secondary", res.UsedSecondary).
					Msg("item detected")
			} else {
				p.st.LastName = ""
				p.st.LastRow = nil
				p.st.LastUsedSecondary = false
				p.hideOverlay()
			}
		default:
			return
		}
	}
}

// present redraws or hides the overlay according to the current state.
func (p *Pipeline) present(tooltipActive bool) {
	if tooltipActive && p.st.LastPanel != nil && p.st.LastRow != nil {
		changed := p.st.LastRow != p.st.ShownRow ||
			p.st.ShownPanel == nil || *p.st.LastPanel != *p.st.ShownPanel
		if changed || p.st.NeedsRefresh {
			p.showOverlay()
		}
		return
	}

	if p.st.ShownRow != nil || p.st.ShownPanel != nil {
		p.hideOverlay()
	}
}

func (p *Pipeline) showOverlay() {
	panel := *p.st.LastPanel
	bounds := p.grabber.Bounds()

	content := overlay.Build(p.st.LastRow, p.st.LastName, p.resolver, p.store, p.snap.ShowRRCrafting)
	style := overlay.StyleFromSettings(p.snap)

	imageFor := func(compact bool) *image.RGBA {
		key := content.CacheKey(compact)
		if img, ok := p.cache.Get(key); ok {
			return img
		}
		img, err := overlay.Render(content, style, compact)
		if err != nil {
			log.Error().Err(err).Msg("rendering overlay")
			return nil
		}
		p.cache.Put(key, img)
		return img
	}

	var pointer *geometry.PointInt
	if pt, ok := p.presenter.Pointer(); ok {
		// Placement math is monitor-local.
		local := geometry.PointInt{X: pt.X - bounds.Min.X, Y: pt.Y - bounds.Min.Y}
		pointer = &local
	}

	req := overlay.PlaceRequest{
		Panel:         panel,
		ScreenW:       bounds.Dx(),
		ScreenH:       bounds.Dy(),
		Pointer:       pointer,
		UsedSecondary: p.st.LastUsedSecondary,
		Size: func(compact bool) (int, int) {
			img := imageFor(compact)
			if img == nil {
				return 1, 1
			}
			b := img.Bounds()
			return b.Dx(), b.Dy()
		},
	}
	pl := overlay.Place(req)

	img := imageFor(pl.Compact)
	if img == nil {
		return
	}

	p.presenter.Show(img, pl.X+bounds.Min.X, pl.Y+bounds.Min.Y)

	rect := geometry.NewBox(pl.X, pl.Y, pl.X+pl.W, pl.Y+pl.H)
	p.st.OverlayRect = &rect
	p.detector.SetOverlayRect(rect)

	p.st.ShownRow = p.st.LastRow
	p.st.ShownPanel = p.st.LastPanel
	p.st.NeedsRefresh = false
}

func (p *Pipeline) hideOverlay() {
	p.presenter.Hide()
	p.detector.ClearOverlayRect()
	p.st.OverlayRect = nil
	p.st.ShownRow = nil
	p.st.ShownPanel = nil
}
