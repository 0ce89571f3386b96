package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "cfg.json", `{
  "numAgents": 7,
  "seed": 42,
  "autoControlled": false,
  "echolocation": {"pulsesPerEmission": 16, "detectForeignPulses": false},
  "obstacles": [{"x": 0, "y": 0, "w": 50, "h": 20, "interest": 0.5, "blocksAgents": true}]
}`},
		{"yaml", "cfg.yaml", `
numAgents: 7
seed: 42
autoControlled: false
echolocation:
  pulsesPerEmission: 16
  detectForeignPulses: false
obstacles:
  - {x: 0, y: 0, w: 50, h: 20, interest: 0.5, blocksAgents: true}
`},
		{"toml", "cfg.toml", `
numAgents = 7
seed = 42
autoControlled = false

[echolocation]
pulsesPerEmission = 16
detectForeignPulses = false

[[obstacles]]
x = 0
y = 0
w = 50
h = 20
interest = 0.5
blocksAgents = true
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 7, cfg.NumAgents)
			assert.Equal(t, uint64(42), cfg.Seed)
			assert.False(t, cfg.AutoControlled)
			assert.Equal(t, 16, cfg.Echolocation.PulsesPerEmission)
			assert.False(t, cfg.Echolocation.DetectForeignPulses)
			require.Len(t, cfg.Obstacles, 1)
			assert.Equal(t, ObstacleConfig{W: 50, H: 20, Interest: 0.5, BlocksAgents: true}, cfg.Obstacles[0])

			// untouched keys keep their defaults
			def := DefaultConfig()
			assert.Equal(t, def.WorldWidth, cfg.WorldWidth)
			assert.Equal(t, def.Echolocation.PulseStrength, cfg.Echolocation.PulseStrength)
			assert.Equal(t, def.Echolocation.EmissionSpread, cfg.Echolocation.EmissionSpread)
		})
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "cfg.json", `{"numBats": 3}`},
		{"negative agents", "cfg.yaml", "numAgents: -1\n"},
		{"friction below one", "cfg.toml", "[echolocation]\nfriction = 0.5\n"},
		{"fractional pulses", "cfg.json", `{"echolocation": {"pulsesPerEmission": 2.5}}`},
		{"negative obstacle width", "cfg.yaml", "obstacles:\n  - {x: 0, y: 0, w: -1, h: 1, interest: 0}\n"},
		{"manual without agents", "cfg.json", `{"numAgents": 0, "autoControlled": false}`},
		{"broken json", "cfg.json", `{"numAgents": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_InterestIsUnbounded(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "cfg.json",
		`{"obstacles": [{"x": 0, "y": 0, "w": 10, "h": 10, "interest": 2.5}, {"x": 20, "y": 0, "w": 10, "h": 10, "interest": -4}]}`))
	require.NoError(t, err)

	obstacles := cfg.BuildObstacles()
	require.Len(t, obstacles, 2)
	assert.Equal(t, 2.5, obstacles[0].Interest)
	assert.Equal(t, -4.0, obstacles[1].Interest)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "cfg.ini", "numAgents=3"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, "cfg.json", `{"numAgents": 0, "autoControlled": false}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveConfig_LoadsBack(t *testing.T) {
	tests := []struct {
		name      string
		obstacles ObstacleList
		built     int
	}{
		{"custom arena", ObstacleList{{X: 10, Y: 20, W: 30, H: 40, Interest: -0.25}}, 1},
		{"default arena", nil, 8},
		{"no obstacle", ObstacleList{}, 0},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.NumAgents = 5
		cfg.Seed = 9
		cfg.Echolocation.EchoGain = 12.5
		cfg.Obstacles = tt.obstacles

		for _, name := range []string{"out.json", "out.yaml", "out.toml"} {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), name)
				require.NoError(t, SaveConfig(cfg, path))
				got, err := LoadConfig(path)
				require.NoError(t, err)
				assert.Equal(t, cfg, got)
				assert.Equal(t, tt.obstacles == nil, got.Obstacles == nil)
				assert.Len(t, got.BuildObstacles(), tt.built)
			})
		}
	}

	assert.ErrorIs(t, SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "out.xml")), ErrUnsupportedFormat)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Echolocation.EmitInterval = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, echolocation.ErrInvalidParams)
}
