package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	for _, name := range []string{"level_1.json", "level_2.json", "level_3.json"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			require.NoError(t, err)
			assert.NotEmpty(t, lvl.Name)
			assert.Positive(t, lvl.Width)
			assert.Positive(t, lvl.Height)

			rockets := 0
			for _, e := range lvl.Entities {
				if e.Prefab == "rocket.yaml" {
					rockets++
				}
			}
			assert.Equal(t, 1, rockets)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("nope.json")
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		invalid bool
	}{
		{name: "ok", data: `{"width":10,"height":10,"entities":[{"prefab":"rocket.yaml"}]}`},
		{name: "zero_size", data: `{"width":0,"height":10,"entities":[{"prefab":"rocket.yaml"}]}`, invalid: true},
		{name: "no_entities", data: `{"width":10,"height":10}`, invalid: true},
		{name: "no_prefab", data: `{"width":10,"height":10,"entities":[{"x":1}]}`, invalid: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl, err := Parse(c.name, []byte(c.data))
			if c.invalid {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.name, lvl.Name, "name defaults to the file name")
		})
	}

	_, err := Parse("bad", []byte("{"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLevel)
}

func TestParseKeepsOverrides(t *testing.T) {
	lvl, err := Parse("x", []byte(`{"name":"n","width":1,"height":1,"entities":[{"prefab":"p","rotation":30,"overrides":{"shape":{"height":5}}}]}`))
	require.NoError(t, err)
	e := lvl.Entities[0]
	assert.Equal(t, 30.0, e.Rotation)
	assert.Equal(t, map[string]any{"shape": map[string]any{"height": 5.0}}, e.Overrides)
}
