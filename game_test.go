package main

import (
	"testing"

	"github.com/milk9111/rocketflight/config"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type idleInput struct{}

func (idleInput) Poll() component.Input { return component.Input{} }

func testSettings(scenes ...string) config.Settings {
	if len(scenes) == 0 {
		scenes = []string{"level_1.json", "level_2.json", "level_3.json"}
	}
	return config.Settings{
		Window:     config.WindowSettings{Title: "test", Width: 960, Height: 540},
		TPS:        60,
		LogLevel:   "info",
		Scenes:     scenes,
		PrefabsDir: "prefabs",
		LevelsDir:  "levels",
	}
}

func levelIndex(t *testing.T, w *ecs.World) int {
	t.Helper()
	e, ok := ecs.First(w, component.LevelInfoComponent.Kind())
	require.True(t, ok)
	info, _ := ecs.Get(w, e, component.LevelInfoComponent.Kind())
	return info.Index
}

func TestNewGameLoadsStartScene(t *testing.T) {
	settings := testSettings()
	settings.StartScene = 2

	g, err := newGame(settings, zap.NewNop(), nil, idleInput{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	assert.Equal(t, 2, g.director.Current())
	assert.Equal(t, 2, levelIndex(t, g.world))

	w, h := g.Layout(100, 100)
	assert.Equal(t, 960, w)
	assert.Equal(t, 540, h)
}

func TestNewGameRejectsBadSettings(t *testing.T) {
	_, err := newGame(testSettings("missing.json"), zap.NewNop(), nil, idleInput{})
	assert.Error(t, err)

	settings := testSettings()
	settings.StartScene = 5
	_, err = newGame(settings, zap.NewNop(), nil, idleInput{})
	assert.Error(t, err)
}

func TestUpdateAdvancesWorld(t *testing.T) {
	g, err := newGame(testSettings(), zap.NewNop(), nil, idleInput{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Update())
	}

	e, ok := ecs.First(g.world, component.ClockComponent.Kind())
	require.True(t, ok)
	clock, _ := ecs.Get(g.world, e, component.ClockComponent.Kind())
	assert.Equal(t, 3, clock.Frame)
}

func TestPendingLoadSwapsWorld(t *testing.T) {
	g, err := newGame(testSettings(), zap.NewNop(), nil, idleInput{})
	require.NoError(t, err)
	before := g.world

	require.NoError(t, g.director.Load(1))
	require.NoError(t, g.Update())

	assert.NotSame(t, before, g.world)
	assert.Equal(t, 1, g.director.Current())
	assert.Equal(t, 1, levelIndex(t, g.world))
}

func TestFailedLoadKeepsCurrentWorld(t *testing.T) {
	g, err := newGame(testSettings("level_1.json", "missing.json"), zap.NewNop(), nil, idleInput{})
	require.NoError(t, err)
	before := g.world

	require.NoError(t, g.director.Load(1))
	require.NoError(t, g.Update())

	assert.Same(t, before, g.world)
	assert.Equal(t, 0, g.director.Current())
}
