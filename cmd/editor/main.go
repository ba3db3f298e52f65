package main

import (
	"flag"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/mapeditor/catalog"
	"github.com/milk9111/mapeditor/config"
	"github.com/milk9111/mapeditor/editor"
	"github.com/milk9111/mapeditor/logging"
	"golang.design/x/clipboard"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	configDir := flag.String("config", ".", "directory containing mapeditor.yaml")
	contentRoot := flag.String("content", "", "content root (overrides config)")
	mapName := flag.String("map", "", "map name to open from the content root's Maps folder")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		l := logging.New(os.Stderr, "info")
		l.Error().Err(err).Msg("failed to load config")
		return 1
	}
	if *contentRoot != "" {
		cfg.ContentRoot = *contentRoot
	}

	var extra []io.Writer
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			l := logging.New(os.Stderr, cfg.LogLevel)
			l.Error().Err(err).Str("path", cfg.LogFile).Msg("failed to open log file")
			return 1
		}
		defer f.Close()
		extra = append(extra, f)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, extra...)
	logger.Info().Str("contentRoot", cfg.ContentRoot).Msg("editor starting")

	cat, err := catalog.Load(cfg.ContentRoot, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load catalog")
		return 1
	}

	session := editor.NewSession(cat, editor.Options{
		MinLayer: cfg.Layers.Min,
		MaxLayer: cfg.Layers.Max,
		Logger:   logger,
	})
	for _, p := range cat.Packs() {
		if p == cfg.DefaultPack {
			session.SetPack(p)
		}
	}
	if *mapName != "" {
		if _, err := session.LoadMap(*mapName); err != nil {
			logger.Error().Err(err).Str("map", *mapName).Msg("failed to open map")
		}
	}

	var watcher *catalog.Watcher
	if cfg.Watch {
		watcher, err = catalog.NewWatcher(cfg.ContentRoot)
		if err != nil {
			logger.Warn().Err(err).Msg("content watch disabled")
		} else {
			defer watcher.Close()
		}
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		logger.Warn().Err(err).Msg("clipboard unavailable")
		clipboardOK = false
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("map editor")

	game, err := NewGame(session, watcher, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build editor ui")
		return 1
	}
	game.clipboard = clipboardOK
	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("editor exited")
		return 1
	}
	return 0
}
