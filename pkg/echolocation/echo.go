package echolocation

import "github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"

// Echo is the signal left by a returning pulse. It does not move, it fades.
type Echo struct {
	Owner     AgentID
	Origin    geometry.Vector2D // agent position when the pulse came back
	Direction geometry.Vector2D // unit, bearing the pulse came from
	Strength  float64
	Interest  float64
}

// Update decays the echo and reports whether it still carries a signal.
func (e *Echo) Update(env *Environment) bool {
	e.Strength -= env.Params.EchoDecay
	return e.Strength > 0
}

// Relative is the echo scaled by its remaining strength.
func (e *Echo) Relative(pulseStrength float64) geometry.Vector2D {
	return e.Direction.Mul(e.Strength / pulseStrength)
}
