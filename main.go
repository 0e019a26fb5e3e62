// Package main provides the entry point for the loot advisor helper.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"loot-lens/internal/capture"
	"loot-lens/internal/input"
	"loot-lens/internal/itemdb"
	"loot-lens/internal/match"
	"loot-lens/internal/ocr"
	"loot-lens/internal/pipeline"
	"loot-lens/internal/settings"
	"loot-lens/internal/verdict"
	"loot-lens/internal/version"
	"loot-lens/ui/overlaywindow"
)

const appTitle = "Loot Lens"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	dbURL := flag.String("db", itemdb.DefaultURL, "item database endpoint")
	csvPath := flag.String("csv", "arc_raiders_items.csv", "local item database fallback")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		os.Stdout.WriteString(appTitle + " " + version.String() + "\n")
		return
	}

	log.Info().Str("version", version.Version).Msgf("starting %s", appTitle)

	dir, err := settings.Dir()
	if err != nil {
		log.Fatal().Err(err).Msg("resolving config directory")
	}
	settingsPath := filepath.Join(dir, settings.SettingsFile)
	verdictsPath := filepath.Join(dir, settings.VerdictsFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	table, err := itemdb.Load(ctx, *dbURL, *csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading item database")
	}
	log.Info().Int("items", table.Len()).Msg("item database loaded")

	resolver := match.NewResolver(table)
	store := verdict.Open(verdictsPath)
	if n := store.Len(); n > 0 {
		log.Info().Int("overrides", n).Msg("verdict overrides loaded")
	}

	grabber, err := capture.NewScreenGrabber()
	if err != nil {
		log.Fatal().Err(err).Msg("initializing screen capture")
	}

	worker := ocr.NewWorker(func() (ocr.Recognizer, error) {
		return ocr.NewEngine()
	}, resolver.Resolve)
	if err := worker.Start(); err != nil {
		log.Fatal().Err(err).Msg("initializing OCR engine")
	}

	win, err := overlaywindow.New()
	if err != nil {
		log.Fatal().Err(err).Msg("initializing overlay window")
	}

	cfg := pipeline.DefaultConfig()
	cfg.SettingsPath = settingsPath

	// Global hotkey capture needs a desktop-wide grab this build does
	// not carry; hold-to-show degrades to the always_on setting.
	source := input.NullSource{}
	pipe := pipeline.New(cfg, grabber, worker, resolver, store, win, source)
	if !pipe.Settings().AlwaysOn {
		log.Warn().Msg("global hotkeys unavailable, enable always_on in the settings file to show the overlay")
	}

	go func() {
		if err := pipe.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("detection loop stopped")
		}
		win.Quit()
	}()

	win.Run()

	cancel()
	worker.Stop()
	log.Info().Msg("stopped")
}
