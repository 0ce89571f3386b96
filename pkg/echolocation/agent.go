package echolocation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
)

// AgentID is a handle into the World's agent list. Pulses and echoes keep it
// instead of a pointer to their emitter.
type AgentID int

// NoAgent is the zero handle for "no agent".
const NoAgent AgentID = -1

func (id AgentID) String() string {
	return fmt.Sprintf("Bat-%03d", int(id))
}

// Spawn is the initial placement of an agent.
type Spawn struct {
	Pos     geometry.Vector2D `json:"pos"`
	Heading float64           `json:"heading"` // radians
}

// Agent is a bat: it moves, emits pulses and listens to echoes.
type Agent struct {
	ID         AgentID
	Pos        geometry.Vector2D
	Vel        geometry.Vector2D
	Facing     geometry.Vector2D // unit
	AngularVel float64

	pulses []*Pulse
	echoes []*Echo
}

// NewAgent places an agent at rest.
func NewAgent(id AgentID, s Spawn) *Agent {
	return &Agent{
		ID:     id,
		Pos:    s.Pos,
		Facing: geometry.NewVectorPolar(1, s.Heading),
	}
}

// Pulses returns the pulses emitted by the agent that are still alive.
func (a *Agent) Pulses() []*Pulse { return a.pulses }

// Echoes returns the echoes the agent currently hears.
func (a *Agent) Echoes() []*Echo { return a.echoes }

// Box is the collision square of the agent.
func (a *Agent) Box(radius float64) geometry.Rect {
	return geometry.SquareAround(a.Pos, radius)
}

// Update integrates position, resolves the first blocking obstacle contact,
// turns the agent and applies friction. Agents never die, it always returns true.
func (a *Agent) Update(env *Environment) bool {
	prm := env.Params
	step := a.Vel.Mul(1 / prm.TicksPerSecond)
	a.Pos = a.Pos.Add(step)

	if i := firstOverlap(env.Obstacles, a.Box(prm.AgentRadius), true); i >= 0 {
		a.Pos = a.Pos.Sub(step)
		a.Vel = env.Obstacles[i].Bounds.ClosestEdge(a.Pos).ReflectAway(a.Vel)
	}

	facing := a.Facing.Rotate(a.AngularVel / prm.TicksPerSecond)
	if unit, err := facing.Normalize(); err == nil {
		a.Facing = unit
	}

	a.Vel = a.Vel.Mul(1 / prm.Friction)
	a.AngularVel /= prm.Friction
	return true
}

// Emit fans PulsesPerEmission full strength pulses across EmissionSpread,
// centred on the current facing. It returns the number of pulses created.
func (a *Agent) Emit(prm *Params) int {
	n := prm.PulsesPerEmission
	start, step := 0.0, 0.0
	if n > 1 {
		start = -prm.EmissionSpread / 2
		step = prm.EmissionSpread / float64(n-1)
	}
	for i := 0; i < n; i++ {
		facing := a.Facing.Rotate(start + step*float64(i))
		a.pulses = append(a.pulses, NewPulse(a.ID, a.Pos, facing, prm.PulseStrength))
	}
	return n
}

// TestPulses checks candidates, possibly emitted by another agent, against
// the agent body. A returning pulse inside the body becomes an echo and is
// marked consumed; its owner drops it on the next compaction. A pulse outside
// the body is marked as having left. It returns the number of echoes created.
func (a *Agent) TestPulses(prm *Params, candidates []*Pulse) int {
	box := a.Box(prm.AgentRadius)
	created := 0
	for _, p := range candidates {
		if p.consumed {
			continue
		}
		if !box.Overlaps(p.Box(prm.PulseRadius)) {
			if !p.LeftOwner {
				p.LeftOwner = true
			}
			continue
		}
		if !p.Returning() {
			continue
		}
		p.consumed = true
		dir, err := p.Facing.Neg().Normalize()
		if err != nil {
			// a zero facing carries no bearing, the pulse is still used up
			continue
		}
		a.echoes = append(a.echoes, &Echo{
			Owner:     a.ID,
			Origin:    a.Pos,
			Direction: dir,
			Strength:  p.Strength,
			Interest:  p.Interest,
		})
		created++
	}
	return created
}

// AggregateEcho sums every echo weighted by relative strength and interest.
// It is the zero vector when the agent hears nothing.
func (a *Agent) AggregateEcho(prm *Params) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, e := range a.echoes {
		sum = sum.Add(e.Relative(prm.PulseStrength).Mul(e.Interest))
	}
	return sum
}

func (a *Agent) dropConsumedPulses() {
	a.pulses = compact(a.pulses, func(_ int, p *Pulse) bool { return !p.consumed })
}
