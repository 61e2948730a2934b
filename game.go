package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rocketflight/config"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/milk9111/rocketflight/ecs/entity"
	"github.com/milk9111/rocketflight/ecs/system"
	"github.com/milk9111/rocketflight/levels"
	"github.com/milk9111/rocketflight/prefabs"
	"github.com/milk9111/rocketflight/scene"
	"go.uber.org/zap"
)

type Game struct {
	settings config.Settings
	logger   *zap.Logger
	director *scene.Director
	loadClip entity.ClipLoader
	input    system.InputSource

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	hud       *system.HUDSystem
	showHUD   bool

	watcher *prefabs.Watcher
}

func NewGame(settings config.Settings, logger *zap.Logger, loadClip entity.ClipLoader) (*Game, error) {
	return newGame(settings, logger, loadClip, nil)
}

// newGame builds the game and loads the start scene. A nil input source reads
// the keyboard and gamepads.
func newGame(settings config.Settings, logger *zap.Logger, loadClip entity.ClipLoader, input system.InputSource) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	director, err := scene.NewDirector(settings.Scenes, settings.StartScene)
	if err != nil {
		return nil, err
	}

	g := &Game{
		settings: settings,
		logger:   logger,
		director: director,
		loadClip: loadClip,
		input:    input,
		render:   system.NewRenderSystem(),
		showHUD:  settings.HUD,
	}

	if err := g.loadScene(settings.StartScene); err != nil {
		return nil, err
	}

	if config.DebugBuild {
		watcher, err := prefabs.NewWatcher(settings.PrefabsDir, settings.LevelsDir)
		if err != nil {
			logger.Warn("game: hot reload disabled", zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

// loadScene replaces the running world with a fresh one for scene i. On
// error the current world keeps running.
func (g *Game) loadScene(i int) error {
	name, err := g.director.Name(i)
	if err != nil {
		return err
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	physics := system.NewPhysicsSystem(g.logger)

	ctx := &entity.BuildContext{
		Scenes:   entity.ScenesPort(g.director, g.logger),
		LoadClip: g.loadClip,
		Logger:   g.logger,
		Debug:    config.DebugBuild,
	}
	if err := entity.SpawnLevel(world, lvl, i, ctx); err != nil {
		return err
	}

	inputSystem := system.NewInputSystem()
	if g.input != nil {
		inputSystem = system.NewInputSystemWithSource(g.input)
	}

	scheduler := ecs.NewScheduler(
		system.NewClockSystem(g.settings.TPS),
		inputSystem,
		system.NewTimerSystem(),
		system.NewBehaviourSystem(g.logger),
		physics,
		system.NewParticleSystem(uint64(time.Now().UnixNano())),
		system.NewAudioSystem(),
	)

	if err := g.director.SetCurrent(i); err != nil {
		return err
	}

	silence(g.world)
	g.world = world
	g.scheduler = scheduler
	g.hud = system.NewHUDSystem(physics)

	g.logger.Info("game: scene loaded", zap.Int("index", i), zap.String("file", name))
	return nil
}

// silence pauses every clip of a world that is being dropped.
func silence(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, a *component.Audio) {
		for _, player := range a.Players {
			if player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}

func (g *Game) Update() error {
	if config.DebugBuild && inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showHUD = !g.showHUD
	}

	g.scheduler.Update(g.world)

	if index, ok := g.director.TakePending(); ok {
		if err := g.loadScene(index); err != nil {
			g.logger.Error("game: scene load failed", zap.Int("index", index), zap.Error(err))
		}
	}

	if g.watcher != nil {
		if err := g.watcher.Err(); err != nil {
			g.logger.Warn("game: watcher", zap.Error(err))
		}
		if changed := g.watcher.Drain(); len(changed) > 0 {
			g.logger.Info("game: files changed, reloading scene", zap.Strings("files", changed))
			if err := g.loadScene(g.director.Current()); err != nil {
				g.logger.Error("game: reload failed", zap.Error(err))
			}
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.showHUD {
		g.hud.Draw(g.world, screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.settings.Window.Width), float64(g.settings.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}

// Close releases the file watcher.
func (g *Game) Close() error {
	silence(g.world)
	if g.watcher == nil {
		return nil
	}
	if err := g.watcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}
