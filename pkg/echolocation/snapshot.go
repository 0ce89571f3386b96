package echolocation

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
)

// AgentView is the read-only state of an agent for one tick.
type AgentView struct {
	ID        AgentID
	Pos       geometry.Vector2D
	Facing    geometry.Vector2D
	Radius    float64
	Aggregate geometry.Vector2D
	Manual    bool
}

// PulseView is the read-only state of a pulse.
type PulseView struct {
	Owner    AgentID
	Pos      geometry.Vector2D
	Radius   float64
	Interest float64
	Color    color.RGBA
}

// EchoView is the read-only state of an echo. AgentPos is where the owner is
// now, Origin where it was when the pulse came back.
type EchoView struct {
	Owner     AgentID
	Origin    geometry.Vector2D
	AgentPos  geometry.Vector2D
	Direction geometry.Vector2D
	Strength  float64
	Interest  float64
	Color     color.RGBA
}

// ObstacleView is the read-only state of an obstacle.
type ObstacleView struct {
	Bounds       geometry.Rect
	Interest     float64
	BlocksAgents bool
	Color        color.RGBA
}

// Snapshot is a deep copy of the world, safe to hand to another goroutine.
type Snapshot struct {
	Tick      uint64
	Agents    []AgentView
	Pulses    []PulseView
	Echoes    []EchoView
	Obstacles []ObstacleView

	// rendering hints copied from Params
	PulseStrength float64
	EchoLength    float64
	EchoWidth     float64
}

// InterestColor maps interest to red (avoid) or green (attract) over a fixed blue.
func InterestColor(interest float64) color.RGBA {
	pos := math.Min(1, math.Max(0, interest))
	neg := math.Min(1, math.Max(0, -interest))
	return color.RGBA{
		R: uint8(math.Round(255 * neg)),
		G: uint8(math.Round(255 * pos)),
		B: 128,
		A: 255,
	}
}

// Snapshot copies the current state.
func (w *World) Snapshot() *Snapshot {
	prm := &w.params
	s := &Snapshot{
		Tick:          w.tick,
		Agents:        make([]AgentView, 0, len(w.agents)),
		Obstacles:     make([]ObstacleView, 0, len(w.env.Obstacles)),
		PulseStrength: prm.PulseStrength,
		EchoLength:    prm.EchoLength,
		EchoWidth:     prm.EchoWidth,
	}
	for _, o := range w.env.Obstacles {
		s.Obstacles = append(s.Obstacles, ObstacleView{
			Bounds:       o.Bounds,
			Interest:     o.Interest,
			BlocksAgents: o.BlocksAgents,
			Color:        InterestColor(o.Interest),
		})
	}
	for _, a := range w.agents {
		s.Agents = append(s.Agents, AgentView{
			ID:        a.ID,
			Pos:       a.Pos,
			Facing:    a.Facing,
			Radius:    prm.AgentRadius,
			Aggregate: a.AggregateEcho(prm),
			Manual:    a.ID == w.manual,
		})
		for _, p := range a.pulses {
			s.Pulses = append(s.Pulses, PulseView{
				Owner:    p.Owner,
				Pos:      p.Pos,
				Radius:   prm.PulseRadius,
				Interest: p.Interest,
				Color:    InterestColor(p.Interest),
			})
		}
		for _, e := range a.echoes {
			s.Echoes = append(s.Echoes, EchoView{
				Owner:     e.Owner,
				Origin:    e.Origin,
				AgentPos:  a.Pos,
				Direction: e.Direction,
				Strength:  e.Strength,
				Interest:  e.Interest,
				Color:     InterestColor(e.Interest),
			})
		}
	}
	return s
}

// Digest hashes the dynamic state with xxhash64. Two runs from the same
// inputs produce the same digest tick for tick.
func (s *Snapshot) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], s.Tick)
	_, _ = d.Write(buf[:])
	for _, a := range s.Agents {
		put(a.Pos.X)
		put(a.Pos.Y)
		put(a.Facing.X)
		put(a.Facing.Y)
	}
	for _, p := range s.Pulses {
		put(float64(p.Owner))
		put(p.Pos.X)
		put(p.Pos.Y)
		put(p.Interest)
	}
	for _, e := range s.Echoes {
		put(float64(e.Owner))
		put(e.Direction.X)
		put(e.Direction.Y)
		put(e.Strength)
		put(e.Interest)
	}
	return d.Sum64()
}

// EchoTip returns the end of the echo line drawn from start.
func (s *Snapshot) EchoTip(e EchoView, start geometry.Vector2D) geometry.Vector2D {
	return start.Add(e.Direction.Mul(s.EchoLength * e.Strength / s.PulseStrength))
}
