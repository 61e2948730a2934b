package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// DiskDir is checked before the embedded levels.
var DiskDir = "levels"

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name       string   `json:"name"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Gravity    float64  `json:"gravity,omitempty"`
	Background string   `json:"background,omitempty"`
	Entities   []Entity `json:"entities"`
}

// Entity places one prefab. Rotation is in degrees. Overrides are merged
// into the prefab's components before the entity is built.
type Entity struct {
	Prefab    string         `json:"prefab"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Rotation  float64        `json:"rotation,omitempty"`
	Overrides map[string]any `json:"overrides,omitempty"`
}

func Load(name string) (*Level, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	return Parse(name, data)
}

func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidLevel, l.Width, l.Height)
	}
	if len(l.Entities) == 0 {
		return fmt.Errorf("%w: no entities", ErrInvalidLevel)
	}
	for i, e := range l.Entities {
		if e.Prefab == "" {
			return fmt.Errorf("%w: entity %d has no prefab", ErrInvalidLevel, i)
		}
	}
	return nil
}

func read(name string) ([]byte, error) {
	clean := filepath.ToSlash(name)
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}
