package assets

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/rocketflight/prefabs"
)

const SampleRate = 44100

//go:embed README.md
var assetsFS embed.FS

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadClip builds a player for a prefab clip, decoding its wav file or
// synthesizing its tone.
func LoadClip(spec prefabs.AudioClipSpec) (*audio.Player, error) {
	ctx := AudioContext()
	if spec.File == "" {
		if spec.Synth == nil {
			return nil, fmt.Errorf("clip %q: no file or synth", spec.Name)
		}
		pcm, err := Synthesize(*spec.Synth, ctx.SampleRate())
		if err != nil {
			return nil, fmt.Errorf("clip %q: %w", spec.Name, err)
		}
		return ctx.NewPlayerFromBytes(pcm), nil
	}

	b, err := LoadFile(spec.File)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(spec.File))
	reader := bytes.NewReader(b)

	if strings.HasSuffix(clean, ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", spec.File, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Anything else is taken as PCM in ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
