package echolocation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams wraps every Params.Validate failure.
var ErrInvalidParams = errors.New("invalid echolocation params")

// Params holds the fixed constants of a run. A World keeps its own copy,
// changing a Params value after NewWorld has no effect.
type Params struct {
	// Pulses
	PulseStrength     float64 `json:"pulseStrength" yaml:"pulseStrength" toml:"pulseStrength"`
	PulseDecay        float64 `json:"pulseDecay" yaml:"pulseDecay" toml:"pulseDecay"`
	WallDecay         float64 `json:"wallDecay" yaml:"wallDecay" toml:"wallDecay"` // extra decay on obstacle contact
	PulseSpeed        float64 `json:"pulseSpeed" yaml:"pulseSpeed" toml:"pulseSpeed"`
	PulsesPerEmission int     `json:"pulsesPerEmission" yaml:"pulsesPerEmission" toml:"pulsesPerEmission"`
	EmissionSpread    float64 `json:"emissionSpread" yaml:"emissionSpread" toml:"emissionSpread"` // radians
	EmitInterval      int     `json:"emitInterval" yaml:"emitInterval" toml:"emitInterval"`       // ticks
	PulseRadius       float64 `json:"pulseRadius" yaml:"pulseRadius" toml:"pulseRadius"`

	// Echoes
	EchoDecay  float64 `json:"echoDecay" yaml:"echoDecay" toml:"echoDecay"`
	EchoLength float64 `json:"echoLength" yaml:"echoLength" toml:"echoLength"`
	EchoWidth  float64 `json:"echoWidth" yaml:"echoWidth" toml:"echoWidth"`

	// Agents
	AgentRadius    float64 `json:"agentRadius" yaml:"agentRadius" toml:"agentRadius"`
	Friction       float64 `json:"friction" yaml:"friction" toml:"friction"`
	TicksPerSecond float64 `json:"ticksPerSecond" yaml:"ticksPerSecond" toml:"ticksPerSecond"`

	// Steering
	BaseSpeed  float64 `json:"baseSpeed" yaml:"baseSpeed" toml:"baseSpeed"`
	EchoGain   float64 `json:"echoGain" yaml:"echoGain" toml:"echoGain"`
	SearchSpin float64 `json:"searchSpin" yaml:"searchSpin" toml:"searchSpin"`

	// Manual control
	ManualThrust  float64 `json:"manualThrust" yaml:"manualThrust" toml:"manualThrust"`
	ManualReverse float64 `json:"manualReverse" yaml:"manualReverse" toml:"manualReverse"`
	ManualTurn    float64 `json:"manualTurn" yaml:"manualTurn" toml:"manualTurn"`

	// DetectForeignPulses lets agents turn other agents' pulses into echoes.
	DetectForeignPulses bool `json:"detectForeignPulses" yaml:"detectForeignPulses" toml:"detectForeignPulses"`
}

// DefaultParams returns the tuning the steering policy was balanced against.
func DefaultParams() Params {
	return Params{
		PulseStrength:       200,
		PulseDecay:          1,
		WallDecay:           10,
		PulseSpeed:          8,
		PulsesPerEmission:   32,
		EmissionSpread:      5 * math.Pi / 4,
		EmitInterval:        16,
		PulseRadius:         4,
		EchoDecay:           2,
		EchoLength:          100,
		EchoWidth:           2,
		AgentRadius:         10,
		Friction:            1.1,
		TicksPerSecond:      60,
		BaseSpeed:           5,
		EchoGain:            20,
		SearchSpin:          math.Pi,
		ManualThrust:        20,
		ManualReverse:       10,
		ManualTurn:          math.Pi / 8,
		DetectForeignPulses: true,
	}
}

// Validate checks the constraints the loop relies on.
func (p Params) Validate() error {
	switch {
	case p.PulseStrength <= 0:
		return fmt.Errorf("%w: pulseStrength must be > 0, got %v", ErrInvalidParams, p.PulseStrength)
	case p.PulseDecay <= 0:
		return fmt.Errorf("%w: pulseDecay must be > 0, got %v", ErrInvalidParams, p.PulseDecay)
	case p.WallDecay < 0:
		return fmt.Errorf("%w: wallDecay must be >= 0, got %v", ErrInvalidParams, p.WallDecay)
	case p.EchoDecay <= 0:
		return fmt.Errorf("%w: echoDecay must be > 0, got %v", ErrInvalidParams, p.EchoDecay)
	case p.PulseSpeed < 0:
		return fmt.Errorf("%w: pulseSpeed must be >= 0, got %v", ErrInvalidParams, p.PulseSpeed)
	case p.PulsesPerEmission < 1:
		return fmt.Errorf("%w: pulsesPerEmission must be >= 1, got %d", ErrInvalidParams, p.PulsesPerEmission)
	case p.EmissionSpread < 0:
		return fmt.Errorf("%w: emissionSpread must be >= 0, got %v", ErrInvalidParams, p.EmissionSpread)
	case p.EmitInterval < 1:
		return fmt.Errorf("%w: emitInterval must be >= 1, got %d", ErrInvalidParams, p.EmitInterval)
	case p.AgentRadius <= 0 || p.PulseRadius <= 0:
		return fmt.Errorf("%w: agentRadius and pulseRadius must be > 0", ErrInvalidParams)
	case p.Friction <= 1:
		return fmt.Errorf("%w: friction must be > 1, got %v", ErrInvalidParams, p.Friction)
	case p.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticksPerSecond must be > 0, got %v", ErrInvalidParams, p.TicksPerSecond)
	}
	return nil
}
