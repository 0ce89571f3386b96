package echolocation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
)

// Controller turns an agent's aggregate echo into motion for the next tick.
type Controller interface {
	Steer(a *Agent, aggregate geometry.Vector2D, prm *Params)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(a *Agent, aggregate geometry.Vector2D, prm *Params)

func (f ControllerFunc) Steer(a *Agent, aggregate geometry.Vector2D, prm *Params) {
	f(a, aggregate, prm)
}

// Autopilot is the proportional steering policy: accelerate along the facing
// in proportion to the echo intensity and turn toward the aggregate bearing.
// With no echo at all the agent spins in place to search.
type Autopilot struct{}

func (Autopilot) Steer(a *Agent, aggregate geometry.Vector2D, prm *Params) {
	gain := prm.EchoGain*aggregate.Len() + prm.BaseSpeed
	a.Vel = a.Vel.Add(a.Facing.Mul(gain))

	if aggregate.IsZero() {
		a.AngularVel += prm.SearchSpin
		return
	}
	angle, err := a.Facing.AngleTo(aggregate)
	if err != nil {
		// unreachable: facing is unit and aggregate is non zero
		return
	}
	// shortest signed turn
	if angle > math.Pi {
		angle -= geometry.TwoPi
	}
	a.AngularVel -= angle
}

// ManualCommand is the input for the agent under manual control. All fields
// are levels sampled for one tick.
type ManualCommand struct {
	Forward bool `json:"forward"`
	Reverse bool `json:"reverse"`
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Emit    bool `json:"emit"`
}

// IsZero reports whether the command asks for nothing.
func (c ManualCommand) IsZero() bool {
	return c == ManualCommand{}
}

// Apply pushes the agent according to the command. Emission is handled by the
// World since it needs the emission pass ordering.
func (c ManualCommand) Apply(a *Agent, prm *Params) {
	if c.Forward {
		a.Vel = a.Vel.Add(a.Facing.Mul(prm.ManualThrust))
	}
	if c.Reverse {
		a.Vel = a.Vel.Sub(a.Facing.Mul(prm.ManualReverse))
	}
	if c.Left {
		a.AngularVel -= prm.ManualTurn
	}
	if c.Right {
		a.AngularVel += prm.ManualTurn
	}
}
