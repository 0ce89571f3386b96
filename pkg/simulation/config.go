package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config_schema.json
var configSchema []byte

const configSchemaURL = "config_schema.json"

var (
	// ErrUnsupportedFormat is returned for a config file extension other than
	// .json, .yaml, .yml or .toml.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidConfig wraps Config.Validate failures.
	ErrInvalidConfig = errors.New("invalid config")
)

// ObstacleConfig is one obstacle of the arena, in world coordinates.
type ObstacleConfig struct {
	X            float64 `json:"x" yaml:"x" toml:"x"`
	Y            float64 `json:"y" yaml:"y" toml:"y"`
	W            float64 `json:"w" yaml:"w" toml:"w"`
	H            float64 `json:"h" yaml:"h" toml:"h"`
	Interest     float64 `json:"interest" yaml:"interest" toml:"interest"`
	BlocksAgents bool    `json:"blocksAgents" yaml:"blocksAgents" toml:"blocksAgents"`
}

// ObstacleList keeps nil (default arena) apart from an empty list (no
// obstacle) when a config is written back.
type ObstacleList []ObstacleConfig

// IsZero reports a nil list. An empty list is still written out as [].
func (l ObstacleList) IsZero() bool { return l == nil }

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" yaml:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" yaml:"worldHeight" toml:"worldHeight"`

	// Population
	NumAgents int    `json:"numAgents" yaml:"numAgents" toml:"numAgents"`
	Seed      uint64 `json:"seed" yaml:"seed" toml:"seed"` // 0 picks one at startup

	// AutoControlled false hands the first agent to the keyboard.
	AutoControlled bool `json:"autoControlled" yaml:"autoControlled" toml:"autoControlled"`
	TicksPerFrame  int  `json:"ticksPerFrame" yaml:"ticksPerFrame" toml:"ticksPerFrame"`

	// Rendering
	DrawWalls          bool `json:"drawWalls" yaml:"drawWalls" toml:"drawWalls"`
	DrawPulses         bool `json:"drawPulses" yaml:"drawPulses" toml:"drawPulses"`
	DrawRelativeEchoes bool `json:"drawRelativeEchoes" yaml:"drawRelativeEchoes" toml:"drawRelativeEchoes"`
	DrawPositionEchoes bool `json:"drawPositionEchoes" yaml:"drawPositionEchoes" toml:"drawPositionEchoes"`
	DrawAggregate      bool `json:"drawAggregate" yaml:"drawAggregate" toml:"drawAggregate"`

	Echolocation echolocation.Params `json:"echolocation" yaml:"echolocation" toml:"echolocation"`

	// Obstacles replaces the default arena when set, an empty list means no obstacle at all.
	Obstacles ObstacleList `json:"obstacles,omitzero" yaml:"obstacles,omitempty" toml:"obstacles"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:         1280,
		WorldHeight:        720,
		NumAgents:          3,
		AutoControlled:     true,
		TicksPerFrame:      1,
		DrawWalls:          true,
		DrawPulses:         true,
		DrawRelativeEchoes: true,
		DrawPositionEchoes: true,
		DrawAggregate:      true,
		Echolocation:       echolocation.DefaultParams(),
	}
}

// Validate checks what the schema cannot express.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	}
	if c.NumAgents < 0 {
		return fmt.Errorf("%w: numAgents must be >= 0, got %d", ErrInvalidConfig, c.NumAgents)
	}
	if !c.AutoControlled && c.NumAgents < 1 {
		return fmt.Errorf("%w: manual control needs at least one agent", ErrInvalidConfig)
	}
	if c.TicksPerFrame < 1 {
		return fmt.Errorf("%w: ticksPerFrame must be >= 1, got %d", ErrInvalidConfig, c.TicksPerFrame)
	}
	if err := c.Echolocation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a JSON, YAML or TOML file, validates it against the
// embedded schema and applies it over DefaultConfig. Missing keys keep their
// default value.
func LoadConfig(configFile string) (*Config, error) {
	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := decodeDocument(configFormat(configFile), b)
	if err != nil {
		return nil, err
	}

	// the schema validator wants plain JSON values, whatever the source format
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(normalized, &v); err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(normalized, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg in the format given by the file extension.
func SaveConfig(cfg *Config, configFile string) error {
	var buf bytes.Buffer
	switch configFormat(configFile) {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode config yaml: %w", err)
		}
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(configFile))
	}
	if err := os.WriteFile(configFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(configSchemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	sch, err := c.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

func configFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

func decodeDocument(format string, b []byte) (interface{}, error) {
	switch format {
	case "json":
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("failed to decode config json: %w", err)
		}
		return v, nil
	case "yaml":
		var v interface{}
		if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		return v, nil
	case "toml":
		v := map[string]interface{}{}
		if _, err := toml.Decode(string(b), &v); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		return v, nil
	}
	return nil, ErrUnsupportedFormat
}
