package prefabs

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes a generic component value into its typed
// spec. Unknown fields are rejected so typos in prefabs fail loudly.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
	// Rotation is in degrees, clockwise on screen.
	Rotation float64 `yaml:"rotation"`
}

type ShapeComponentSpec struct {
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
	Nose   float64   `yaml:"nose"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	// Type is dynamic, kinematic or static.
	Type       string  `yaml:"type"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type CategoryComponentSpec struct {
	Category string `yaml:"category"`
}

// SynthSpec describes a generated tone used when a clip has no file.
type SynthSpec struct {
	// Wave is sine, square, saw or noise.
	Wave     string  `yaml:"wave"`
	Freq     float64 `yaml:"freq"`
	FreqEnd  float64 `yaml:"freq_end"`
	Duration float64 `yaml:"duration"`
}

type AudioClipSpec struct {
	Name   string     `yaml:"name"`
	File   string     `yaml:"file"`
	Volume float64    `yaml:"volume"`
	Synth  *SynthSpec `yaml:"synth"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type ParticleEmitterSpec struct {
	Name     string  `yaml:"name"`
	Rate     float64 `yaml:"rate"`
	Burst    int     `yaml:"burst"`
	Lifetime float64 `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
	// Direction and Spread are in degrees; 0 points along the entity's
	// local down axis.
	Direction float64   `yaml:"direction"`
	Spread    float64   `yaml:"spread"`
	Size      float64   `yaml:"size"`
	OffsetX   float64   `yaml:"offset_x"`
	OffsetY   float64   `yaml:"offset_y"`
	Color     YAMLColor `yaml:"color"`
	Duration  float64   `yaml:"duration"`
	Loop      bool      `yaml:"loop"`
}

type ParticlesComponentSpec struct {
	Emitters []ParticleEmitterSpec `yaml:"emitters"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type OscillatorComponentSpec struct {
	Movement VectorSpec `yaml:"movement"`
	Period   float64    `yaml:"period"`
}

type RocketComponentSpec struct {
	MainThrust     float64 `yaml:"main_thrust"`
	RCSThrust      float64 `yaml:"rcs_thrust"`
	LevelLoadDelay float64 `yaml:"level_load_delay"`

	EngineClip  string `yaml:"engine_clip"`
	SuccessClip string `yaml:"success_clip"`
	DeathClip   string `yaml:"death_clip"`

	EngineParticles  string `yaml:"engine_particles"`
	SuccessParticles string `yaml:"success_particles"`
	DeathParticles   string `yaml:"death_particles"`
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	clr, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = clr
	return nil
}

// MarshalYAML keeps colors intact when specs are re-encoded.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

func ParseColor(v string) (color.Color, error) {
	if v == "" {
		return nil, nil
	}
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
