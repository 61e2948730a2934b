package behaviour

import (
	"fmt"

	"github.com/milk9111/rocketflight/common"
	"go.uber.org/zap"
)

// Phase is the rocket's current mode.
type Phase int

const (
	PhaseFlying Phase = iota
	PhaseSucceeding
	PhaseDying
)

func (p Phase) String() string {
	switch p {
	case PhaseFlying:
		return "flying"
	case PhaseSucceeding:
		return "succeeding"
	case PhaseDying:
		return "dying"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type RocketConfig struct {
	// MainThrust is the force per second applied along the rocket's up axis.
	MainThrust float64
	// RCSThrust is the manual rotation rate in degrees per second.
	RCSThrust float64
	// LevelLoadDelay is the pause in seconds between landing or crashing and
	// the next scene load.
	LevelLoadDelay float64

	EngineClip  string
	SuccessClip string
	DeathClip   string

	// Debug enables the scene-skip and collision-toggle hotkeys.
	Debug bool
}

// RocketRig is everything the rocket drives.
type RocketRig struct {
	Transform        Transform
	Body             Body
	Audio            AudioSource
	EngineParticles  Particles
	SuccessParticles Particles
	DeathParticles   Particles
	Input            Input
	Scenes           Scenes
	Timers           Scheduler
}

func (r RocketRig) validate() error {
	missing := ""
	switch {
	case r.Transform == nil:
		missing = "transform"
	case r.Body == nil:
		missing = "body"
	case r.Audio == nil:
		missing = "audio"
	case r.EngineParticles == nil:
		missing = "engine particles"
	case r.SuccessParticles == nil:
		missing = "success particles"
	case r.DeathParticles == nil:
		missing = "death particles"
	case r.Input == nil:
		missing = "input"
	case r.Scenes == nil:
		missing = "scenes"
	case r.Timers == nil:
		missing = "timers"
	}
	if missing != "" {
		return fmt.Errorf("%w: rocket %s", ErrMissingPort, missing)
	}
	return nil
}

// Rocket is the player-controlled ship. It flies until it touches something;
// touching the finish pad loads the next scene, touching anything that is not
// friendly restarts from the first scene.
type Rocket struct {
	cfg RocketConfig
	rig RocketRig
	log *zap.Logger

	phase             Phase
	collisionsEnabled bool
}

var _ Behaviour = (*Rocket)(nil)

func NewRocket(cfg RocketConfig, rig RocketRig, logger *zap.Logger) (*Rocket, error) {
	if err := rig.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rocket{
		cfg:               cfg,
		rig:               rig,
		log:               logger,
		phase:             PhaseFlying,
		collisionsEnabled: true,
	}, nil
}

// NextSceneIndex returns the scene after current, wrapping to the first one
// past the end.
func NextSceneIndex(current, count int) int {
	next := current + 1
	if next >= count {
		return 0
	}
	return next
}

func (r *Rocket) Phase() Phase {
	return r.phase
}

func (r *Rocket) Transitioning() bool {
	return r.phase != PhaseFlying
}

func (r *Rocket) CollisionsEnabled() bool {
	return r.collisionsEnabled
}

func (r *Rocket) OnActivate() {
	r.phase = PhaseFlying
	r.collisionsEnabled = true
}

func (r *Rocket) OnTick(dt float64) {
	if !r.Transitioning() {
		r.respondToThrustInput(dt)
		r.respondToRotateInput(dt)
	}

	if r.cfg.Debug {
		r.respondToDebugKeys()
	}
}

func (r *Rocket) OnCollision(c Category) {
	if r.Transitioning() || !r.collisionsEnabled {
		return
	}

	switch c {
	case CategoryFriendly:
	case CategoryFinish:
		r.startSuccessSequence()
	default:
		r.startDeathSequence()
	}
}

func (r *Rocket) respondToDebugKeys() {
	if r.rig.Input.Pressed(ActionDebugNextScene) {
		r.loadNextScene()
	} else if r.rig.Input.Pressed(ActionDebugToggleCollision) {
		r.collisionsEnabled = !r.collisionsEnabled
		r.log.Debug("rocket: collisions toggled", zap.Bool("enabled", r.collisionsEnabled))
	}
}

func (r *Rocket) startSuccessSequence() {
	r.phase = PhaseSucceeding
	r.log.Debug("rocket: phase change", zap.Stringer("phase", r.phase))
	r.rig.Audio.Stop()
	r.rig.Audio.PlayOneShot(r.cfg.SuccessClip)
	r.rig.SuccessParticles.Play()
	r.rig.Timers.After(r.cfg.LevelLoadDelay, r.loadNextScene)
}

func (r *Rocket) startDeathSequence() {
	r.phase = PhaseDying
	r.log.Debug("rocket: phase change", zap.Stringer("phase", r.phase))
	r.rig.Audio.Stop()
	r.rig.Audio.PlayOneShot(r.cfg.DeathClip)
	r.rig.DeathParticles.Play()
	r.rig.Timers.After(r.cfg.LevelLoadDelay, r.loadFirstScene)
}

func (r *Rocket) loadNextScene() {
	scenes := r.rig.Scenes
	scenes.Load(NextSceneIndex(scenes.Current(), scenes.Count()))
}

func (r *Rocket) loadFirstScene() {
	r.rig.Scenes.Load(0)
}

func (r *Rocket) respondToThrustInput(dt float64) {
	if r.rig.Input.Held(ActionThrust) {
		r.applyThrust(dt)
	} else {
		r.stopApplyingThrust()
	}
}

func (r *Rocket) applyThrust(dt float64) {
	r.rig.Body.AddRelativeForce(common.Up.Scale(r.cfg.MainThrust * dt))

	if !r.rig.Audio.IsPlaying() {
		r.rig.Audio.PlayOneShot(r.cfg.EngineClip)
		r.rig.EngineParticles.Play()
	}
}

func (r *Rocket) stopApplyingThrust() {
	r.rig.Audio.Stop()
	r.rig.EngineParticles.Stop()
}

func (r *Rocket) respondToRotateInput(dt float64) {
	if r.rig.Input.Held(ActionRotateLeft) {
		r.rotateManually(r.cfg.RCSThrust * dt)
	} else if r.rig.Input.Held(ActionRotateRight) {
		r.rotateManually(-r.cfg.RCSThrust * dt)
	}
}

func (r *Rocket) rotateManually(degrees float64) {
	r.rig.Body.FreezeRotation(true)
	r.rig.Transform.RotateZ(degrees)
	r.rig.Body.FreezeRotation(false)
}
