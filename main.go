package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rocketflight/assets"
	"github.com/milk9111/rocketflight/config"
	"github.com/milk9111/rocketflight/levels"
	"github.com/milk9111/rocketflight/logging"
	"github.com/milk9111/rocketflight/prefabs"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	settings, err := config.Load(pflag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.DiskDir = settings.PrefabsDir
	levels.DiskDir = settings.LevelsDir

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.TPS)

	game, err := NewGame(settings, logger, assets.LoadClip)
	if err != nil {
		logger.Fatal("game: init", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game: exited", zap.Error(err))
	}
}
