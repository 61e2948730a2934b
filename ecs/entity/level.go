package entity

import (
	"fmt"

	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/milk9111/rocketflight/levels"
	"github.com/milk9111/rocketflight/prefabs"
	"github.com/milk9111/rocketflight/timer"
	"go.uber.org/zap"
)

// SpawnLevel fills an empty world with a level: the clock and timer
// singletons, the level info and one entity per placement. The world gets its
// own timer queue, so callbacks scheduled in a previous world never fire here.
func SpawnLevel(w *ecs.World, lvl *levels.Level, index int, ctx *BuildContext) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("spawn level: world and level are required")
	}
	if err := lvl.Validate(); err != nil {
		return fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}

	local := BuildContext{}
	if ctx != nil {
		local = *ctx
	}
	queue := timer.NewQueue()
	local.Timers = queue
	log := local.logger()

	core := ecs.CreateEntity(w)
	if err := ecs.Add(w, core, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return err
	}
	if err := ecs.Add(w, core, component.TimersComponent.Kind(), &component.Timers{Queue: queue}); err != nil {
		return err
	}

	background, err := prefabs.ParseColor(lvl.Background)
	if err != nil {
		return fmt.Errorf("spawn level %q: background: %w", lvl.Name, err)
	}
	info := ecs.CreateEntity(w)
	if err := ecs.Add(w, info, component.LevelInfoComponent.Kind(), &component.LevelInfo{
		Name:       lvl.Name,
		Index:      index,
		Width:      lvl.Width,
		Height:     lvl.Height,
		Gravity:    lvl.Gravity,
		Background: background,
	}); err != nil {
		return err
	}

	for i, placement := range lvl.Entities {
		e, err := BuildEntity(w, placement.Prefab, placement.Overrides, &local)
		if err != nil {
			return fmt.Errorf("spawn level %q: entity %d: %w", lvl.Name, i, err)
		}
		if err := SetEntityTransform(w, e, placement.X, placement.Y, placement.Rotation); err != nil {
			return fmt.Errorf("spawn level %q: entity %d: %w", lvl.Name, i, err)
		}
	}

	log.Info("level: spawned",
		zap.String("name", lvl.Name),
		zap.Int("index", index),
		zap.Int("entities", len(lvl.Entities)))
	return nil
}
