// Command scenecheck loads every configured scene headlessly, runs it for a
// few seconds without input and reports where the rocket ends up.
package main

import (
	"fmt"
	"os"

	"github.com/milk9111/rocketflight/config"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/milk9111/rocketflight/ecs/entity"
	"github.com/milk9111/rocketflight/ecs/system"
	"github.com/milk9111/rocketflight/levels"
	"github.com/milk9111/rocketflight/logging"
	"github.com/milk9111/rocketflight/prefabs"
	"github.com/milk9111/rocketflight/scene"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type idleInput struct{}

func (idleInput) Poll() component.Input { return component.Input{} }

func main() {
	config.RegisterFlags(pflag.CommandLine)
	seconds := pflag.Float64("seconds", 3, "simulated seconds per scene")
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

	failed := 0
	for i := range settings.Scenes {
		if err := check(settings, i, *seconds, logger); err != nil {
			logger.Error("scenecheck: failed", zap.Int("index", i), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func check(settings config.Settings, index int, seconds float64, logger *zap.Logger) error {
	director, err := scene.NewDirector(settings.Scenes, index)
	if err != nil {
		return err
	}
	name, _ := director.Name(index)
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	ctx := &entity.BuildContext{
		Scenes: entity.ScenesPort(director, logger),
		Logger: logger,
	}
	if err := entity.SpawnLevel(w, lvl, index, ctx); err != nil {
		return err
	}

	scheduler := ecs.NewScheduler(
		system.NewClockSystem(settings.TPS),
		system.NewInputSystemWithSource(idleInput{}),
		system.NewTimerSystem(),
		system.NewBehaviourSystem(logger),
		system.NewPhysicsSystem(logger),
		system.NewParticleSystem(1),
		system.NewAudioSystem(),
	)
	ticks := int(seconds * float64(settings.TPS))
	for range ticks {
		scheduler.Update(w)
	}

	fields := []zap.Field{
		zap.Int("index", index),
		zap.String("name", lvl.Name),
		zap.Int("ticks", ticks),
		zap.Strings("hud", system.HUDLines(w)),
	}
	if next, ok := director.TakePending(); ok {
		fields = append(fields, zap.Int("requested_scene", next))
	}
	logger.Info("scenecheck: ok", fields...)
	return nil
}
