package entity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/rocketflight/behaviour"
	"github.com/milk9111/rocketflight/common"
	"github.com/milk9111/rocketflight/ecs"
	"github.com/milk9111/rocketflight/ecs/component"
	"github.com/milk9111/rocketflight/prefabs"
	"go.uber.org/zap"
)

var ErrMissingComponent = errors.New("entity: missing component")

// ClipLoader turns a clip spec into a player. A nil loader leaves players
// empty, which keeps audio requests working without an audio device.
type ClipLoader func(spec prefabs.AudioClipSpec) (*audio.Player, error)

// BuildContext carries what builders need beyond the prefab itself.
type BuildContext struct {
	PrefabPath string
	Scenes     behaviour.Scenes
	Timers     behaviour.Scheduler
	LoadClip   ClipLoader
	Logger     *zap.Logger
	Debug      bool
}

func (c *BuildContext) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"rocket_tag":       addRocketTag,
	"transform":        addTransform,
	"shape":            addShape,
	"render_layer":     addRenderLayer,
	"physics_body":     addPhysicsBody,
	"category":         addCategory,
	"collision_events": addCollisionEvents,
	"input":            addInput,
	"audio":            addAudio,
	"particles":        addParticles,
	"oscillator":       addOscillator,
	"rocket":           addRocket,
}

// Behaviours bind to components built before them.
var componentBuildOrder = []string{
	"rocket_tag",
	"transform",
	"shape",
	"render_layer",
	"physics_body",
	"category",
	"collision_events",
	"input",
	"audio",
	"particles",
	"oscillator",
	"rocket",
}

func BuildEntity(w *ecs.World, prefabPath string, overrides map[string]any, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}
	local := *ctx
	local.PrefabPath = prefabPath
	return BuildEntityFromSpec(w, spec, overrides, &local)
}

func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, overrides map[string]any, ctx *BuildContext) (ecs.Entity, error) {
	if ctx == nil {
		ctx = &BuildContext{}
	}
	label := ctx.PrefabPath
	if label == "" {
		label = spec.Name
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", label)
	}

	components := MergeComponents(spec.Components, overrides)

	for name := range components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", label, name)
		}
	}

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	for _, name := range componentBuildOrder {
		raw, ok := components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", label, name, err)
		}
	}

	return e, nil
}

// MergeComponents deep-merges overrides into a copy of base. Nested maps are
// merged key by key; any other override value replaces the base value.
func MergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		baseMap, baseOK := asMap(out[k])
		overMap, overOK := asMap(v)
		if baseOK && overOK {
			out[k] = MergeComponents(baseMap, overMap)
			continue
		}
		out[k] = v
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// SetEntityTransform places e, keeping its scale. Rotation is in degrees.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = common.DegToRad(rotation)
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addRocketTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.RocketTagComponent.Kind(), &component.RocketTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: common.DegToRad(spec.Rotation),
	})
}

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("shape size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.Color,
		Nose:   spec.Nose,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func parseBodyType(s string) (component.BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return component.BodyDynamic, nil
	case "kinematic":
		return component.BodyKinematic, nil
	case "static":
		return component.BodyStatic, nil
	}
	return 0, fmt.Errorf("unknown body type %q", s)
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	typ, err := parseBodyType(spec.Type)
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	if typ == component.BodyDynamic && spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:       typ,
		Width:      spec.Width,
		Height:     spec.Height,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
	})
}

func addCategory(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CategoryComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode category spec: %w", err)
	}
	c, err := behaviour.ParseCategory(spec.Category)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionCategoryComponent.Kind(), &component.CollisionCategory{Category: c})
}

func addCollisionEvents(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	comp, err := buildAudioComponentFromSpec(spec.Clips, ctx)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		i := comp.Index(name)
		if i < 0 {
			return fmt.Errorf("autoplay: unknown clip %q", name)
		}
		comp.Play[i] = true
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponentFromSpec(clips []prefabs.AudioClipSpec, ctx *BuildContext) (*component.Audio, error) {
	comp := &component.Audio{
		Names:   make([]string, 0, len(clips)),
		Players: make([]*audio.Player, 0, len(clips)),
		Volume:  make([]float64, 0, len(clips)),
		Play:    make([]bool, len(clips)),
		Stop:    make([]bool, len(clips)),
	}
	seen := make(map[string]struct{}, len(clips))
	for _, clip := range clips {
		if clip.Name == "" {
			return nil, fmt.Errorf("clip without a name")
		}
		if _, dup := seen[clip.Name]; dup {
			return nil, fmt.Errorf("duplicate clip %q", clip.Name)
		}
		seen[clip.Name] = struct{}{}
		if clip.File == "" && clip.Synth == nil {
			return nil, fmt.Errorf("clip %q: no file or synth", clip.Name)
		}

		var player *audio.Player
		if ctx != nil && ctx.LoadClip != nil {
			p, err := ctx.LoadClip(clip)
			if err != nil {
				return nil, err
			}
			player = p
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
	}
	return comp, nil
}

func addParticles(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticlesComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particles spec: %w", err)
	}
	comp := &component.Particles{Emitters: make([]component.ParticleEmitter, 0, len(spec.Emitters))}
	for _, em := range spec.Emitters {
		if em.Name == "" {
			return fmt.Errorf("emitter without a name")
		}
		if comp.Emitter(em.Name) != nil {
			return fmt.Errorf("duplicate emitter %q", em.Name)
		}
		comp.Emitters = append(comp.Emitters, component.ParticleEmitter{
			Name:      em.Name,
			Rate:      em.Rate,
			Burst:     em.Burst,
			Lifetime:  em.Lifetime,
			Speed:     em.Speed,
			Direction: common.DegToRad(em.Direction),
			Spread:    common.DegToRad(em.Spread),
			Size:      em.Size,
			OffsetX:   em.OffsetX,
			OffsetY:   em.OffsetY,
			Color:     em.Color.Color,
			Duration:  em.Duration,
			Loop:      em.Loop,
		})
	}
	return ecs.Add(w, e, component.ParticlesComponent.Kind(), comp)
}

func addOscillator(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.OscillatorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode oscillator spec: %w", err)
	}
	if math.IsNaN(spec.Period) || spec.Period < 0 {
		return fmt.Errorf("oscillator period must not be negative, got %v", spec.Period)
	}
	if err := requireComponents(w, e, "transform"); err != nil {
		return err
	}
	osc, err := behaviour.NewOscillator(behaviour.OscillatorConfig{
		Movement: common.Vec3{X: spec.Movement.X, Y: spec.Movement.Y, Z: spec.Movement.Z},
		Period:   spec.Period,
	}, transformPort{w: w, e: e})
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Behaviour: osc})
}

func addRocket(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RocketComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rocket spec: %w", err)
	}
	if err := requireComponents(w, e, "transform", "physics_body", "audio", "particles", "input", "collision_events"); err != nil {
		return err
	}

	audioComp, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	for _, clip := range []string{spec.EngineClip, spec.SuccessClip, spec.DeathClip} {
		if audioComp.Index(clip) < 0 {
			return fmt.Errorf("%w: audio clip %q", ErrMissingComponent, clip)
		}
	}

	particles, _ := ecs.Get(w, e, component.ParticlesComponent.Kind())
	emitter := func(name string) behaviour.Particles {
		if particles.Emitter(name) == nil {
			return nil
		}
		return particlesPort{w: w, e: e, name: name}
	}

	log := ctx.logger()
	rig := behaviour.RocketRig{
		Transform:        transformPort{w: w, e: e},
		Body:             bodyPort{w: w, e: e},
		Audio:            audioPort{w: w, e: e, log: log},
		EngineParticles:  emitter(spec.EngineParticles),
		SuccessParticles: emitter(spec.SuccessParticles),
		DeathParticles:   emitter(spec.DeathParticles),
		Input:            inputPort{w: w, e: e},
	}
	if ctx != nil {
		rig.Scenes = ctx.Scenes
		rig.Timers = ctx.Timers
	}

	rocket, err := behaviour.NewRocket(behaviour.RocketConfig{
		MainThrust:     spec.MainThrust,
		RCSThrust:      spec.RCSThrust,
		LevelLoadDelay: spec.LevelLoadDelay,
		EngineClip:     spec.EngineClip,
		SuccessClip:    spec.SuccessClip,
		DeathClip:      spec.DeathClip,
		Debug:          ctx != nil && ctx.Debug,
	}, rig, log.Named("rocket"))
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Behaviour: rocket})
}

var componentChecks = map[string]func(w *ecs.World, e ecs.Entity) bool{
	"transform":        func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.TransformComponent.Kind()) },
	"physics_body":     func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) },
	"audio":            func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.AudioComponent.Kind()) },
	"particles":        func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.ParticlesComponent.Kind()) },
	"input":            func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.InputComponent.Kind()) },
	"collision_events": func(w *ecs.World, e ecs.Entity) bool { return ecs.Has(w, e, component.CollisionEventsComponent.Kind()) },
}

func requireComponents(w *ecs.World, e ecs.Entity, names ...string) error {
	var missing []string
	for _, name := range names {
		if !componentChecks[name](w, e) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrMissingComponent, strings.Join(missing, ", "))
}
