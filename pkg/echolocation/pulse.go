package echolocation

import "github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"

// Pulse is a decaying probe travelling away from the agent that emitted it.
type Pulse struct {
	Owner    AgentID
	Pos      geometry.Vector2D
	Facing   geometry.Vector2D // unit
	Strength float64
	Interest float64

	// HitObstacle is set on the first obstacle contact, LeftOwner once the
	// pulse was seen outside an agent body. Both are needed to form an echo.
	HitObstacle bool
	LeftOwner   bool

	consumed bool
}

// NewPulse creates a full strength pulse at pos heading along facing.
func NewPulse(owner AgentID, pos, facing geometry.Vector2D, strength float64) *Pulse {
	return &Pulse{
		Owner:    owner,
		Pos:      pos,
		Facing:   facing,
		Strength: strength,
	}
}

// Box is the collision square of the pulse.
func (p *Pulse) Box(radius float64) geometry.Rect {
	return geometry.SquareAround(p.Pos, radius)
}

// Returning reports whether the pulse would turn into an echo on agent contact.
func (p *Pulse) Returning() bool {
	return p.HitObstacle && p.LeftOwner
}

// Update decays the pulse, reflects it off the first obstacle it overlaps and
// moves it. A pulse whose strength reaches zero this tick is not moved and
// reports false.
func (p *Pulse) Update(env *Environment) bool {
	if p.consumed {
		return false
	}
	prm := env.Params
	p.Strength -= prm.PulseDecay

	if i := firstOverlap(env.Obstacles, p.Box(prm.PulseRadius), false); i >= 0 {
		obstacle := env.Obstacles[i]
		p.HitObstacle = true
		p.Strength -= prm.WallDecay
		p.Interest = (p.Interest + obstacle.Interest) / 2
		// half step back out of the obstacle before bouncing
		p.Pos = p.Pos.Sub(p.Facing.Mul(prm.PulseSpeed / 2))
		p.Facing = obstacle.Bounds.ClosestEdge(p.Pos).ReflectAway(p.Facing)
	}

	if p.Strength <= 0 {
		return false
	}
	p.Pos = p.Pos.Add(p.Facing.Mul(prm.PulseSpeed))
	return true
}
