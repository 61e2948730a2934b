package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrNoScenes = errors.New("config: no scenes configured")

type WindowSettings struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// Settings is the resolved application configuration.
type Settings struct {
	Window     WindowSettings `mapstructure:"window"`
	TPS        int            `mapstructure:"tps"`
	LogLevel   string         `mapstructure:"logLevel"`
	Scenes     []string       `mapstructure:"scenes"`
	StartScene int            `mapstructure:"startScene"`
	PrefabsDir string         `mapstructure:"prefabsDir"`
	LevelsDir  string         `mapstructure:"levelsDir"`
	HUD        bool           `mapstructure:"hud"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "Rocket Flight")
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 540)
	v.SetDefault("tps", 60)
	v.SetDefault("logLevel", "info")
	v.SetDefault("scenes", []string{"level_1.json", "level_2.json", "level_3.json"})
	v.SetDefault("startScene", 0)
	v.SetDefault("prefabsDir", "prefabs")
	v.SetDefault("levelsDir", "levels")
	v.SetDefault("hud", DebugBuild)
}

// RegisterFlags adds the command line overrides understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a settings file (yaml, json or toml)")
	fs.Int("scene", 0, "index of the first scene to load")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
}

// Load resolves settings from defaults, an optional settings file, ROCKET_*
// environment variables and changed flags, in increasing precedence. Without
// --config a settings.yaml in the working directory is used if present.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ROCKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
		for key, flag := range map[string]string{"startScene": "scene", "logLevel": "log-level"} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("config: bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("config: read settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if len(s.Scenes) == 0 {
		return ErrNoScenes
	}
	if s.StartScene < 0 || s.StartScene >= len(s.Scenes) {
		return fmt.Errorf("config: start scene %d out of range [0,%d)", s.StartScene, len(s.Scenes))
	}
	if s.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", s.TPS)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	return nil
}
