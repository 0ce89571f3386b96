// Package echolocation is the deterministic core of the bat simulation.
//
// Agents emit fans of pulses that travel, bounce off rectangular obstacles and
// come back as echoes. The weighted sum of an agent's echoes drives its
// steering. A World advances everything one fixed tick at a time and never
// performs I/O: hosts feed it ticks and commands and read Snapshots back.
package echolocation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

var (
	// ErrUnknownAgent is returned for an AgentID outside the world.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrNotManual is returned when a command targets the autopilot.
	ErrNotManual = errors.New("world has no manually controlled agent")
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for debug traces.
func WithLogger(l golog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithController replaces the Autopilot steering policy.
func WithController(c Controller) Option {
	return func(w *World) { w.controller = c }
}

// WithManualAgent hands one agent over to ManualCommand input. The autopilot
// skips it.
func WithManualAgent(id AgentID) Option {
	return func(w *World) { w.manual = id }
}

// World owns every agent and runs the per-tick pipeline.
type World struct {
	params     Params
	env        Environment
	agents     []*Agent
	controller Controller
	manual     AgentID
	pending    ManualCommand
	tick       uint64
	logger     golog.Logger
}

// NewWorld validates params and builds a world with one agent per spawn.
// Obstacles are copied and never change afterwards.
func NewWorld(params Params, obstacles []Obstacle, spawns []Spawn, opts ...Option) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		params:     params,
		controller: Autopilot{},
		manual:     NoAgent,
		logger:     golog.DiscardLogger,
	}
	w.env = Environment{
		Params:    &w.params,
		Obstacles: append([]Obstacle(nil), obstacles...),
	}
	w.agents = make([]*Agent, len(spawns))
	for i, s := range spawns {
		w.agents[i] = NewAgent(AgentID(i), s)
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.manual != NoAgent {
		if _, ok := w.Agent(w.manual); !ok {
			return nil, fmt.Errorf("manual agent %d: %w", int(w.manual), ErrUnknownAgent)
		}
	}
	w.logger.Debugf("world created: %d agents, %d obstacles", len(w.agents), len(w.env.Obstacles))
	return w, nil
}

// Params returns the world's constants.
func (w *World) Params() Params { return w.params }

// Obstacles returns the static obstacle list. Callers must not modify it.
func (w *World) Obstacles() []Obstacle { return w.env.Obstacles }

// Tick returns the number of ticks advanced so far.
func (w *World) Tick() uint64 { return w.tick }

// Agents returns the agents in ID order.
func (w *World) Agents() []*Agent { return w.agents }

// Agent resolves a handle.
func (w *World) Agent(id AgentID) (*Agent, bool) {
	if id < 0 || int(id) >= len(w.agents) {
		return nil, false
	}
	return w.agents[id], true
}

// ManualAgent returns the handle of the manually controlled agent, or NoAgent.
func (w *World) ManualAgent() AgentID { return w.manual }

// Command latches input for the manual agent. It is consumed by the next tick.
func (w *World) Command(c ManualCommand) error {
	if w.manual == NoAgent {
		return ErrNotManual
	}
	w.pending = c
	return nil
}

// Advance runs deltaTicks ticks, at least one.
func (w *World) Advance(deltaTicks int) {
	if deltaTicks < 1 {
		deltaTicks = 1
	}
	for i := 0; i < deltaTicks; i++ {
		w.step()
	}
}

// step runs one tick. Every phase finishes for all agents before the next
// phase starts, so the result does not depend on agent order except where a
// pulse is claimed by two agents in the same tick: the lower ID wins.
func (w *World) step() {
	cmd := w.pending
	w.pending = ManualCommand{}

	// 1. emission
	for _, a := range w.agents {
		if w.tick%uint64(w.params.EmitInterval) == 0 {
			n := a.Emit(&w.params)
			w.logger.Debugf("tick %d: %s emitted %d pulses", w.tick, a.ID, n)
		}
		// a manual emit on a cadence tick adds a second fan
		if a.ID == w.manual && cmd.Emit {
			n := a.Emit(&w.params)
			w.logger.Debugf("tick %d: %s emitted %d pulses on demand", w.tick, a.ID, n)
		}
	}

	// 2. agent physics
	w.agents = advance(&w.env, w.agents)

	// 3. pulse propagation
	for _, a := range w.agents {
		a.pulses = advance(&w.env, a.pulses)
	}

	// 4. return detection, removals applied once everyone listened
	for _, listener := range w.agents {
		for _, emitter := range w.agents {
			if !w.params.DetectForeignPulses && emitter != listener {
				continue
			}
			if n := listener.TestPulses(&w.params, emitter.pulses); n > 0 {
				w.logger.Debugf("tick %d: %s heard %d echoes from %s", w.tick, listener.ID, n, emitter.ID)
			}
		}
	}
	for _, a := range w.agents {
		a.dropConsumedPulses()
	}

	// 5. echo decay
	for _, a := range w.agents {
		a.echoes = advance(&w.env, a.echoes)
	}

	// 6. steering
	for _, a := range w.agents {
		if a.ID == w.manual {
			cmd.Apply(a, &w.params)
			continue
		}
		w.controller.Steer(a, a.AggregateEcho(&w.params), &w.params)
	}

	w.tick++
}

// Aggregate is a convenience for hosts that need the steering input of one agent.
func (w *World) Aggregate(id AgentID) (geometry.Vector2D, error) {
	a, ok := w.Agent(id)
	if !ok {
		return geometry.Vector2D{}, fmt.Errorf("aggregate of agent %d: %w", int(id), ErrUnknownAgent)
	}
	return a.AggregateEcho(&w.params), nil
}
