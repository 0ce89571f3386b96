package echolocation

import "github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"

// Environment is the read-only context handed to every entity update.
type Environment struct {
	Params    *Params
	Obstacles []Obstacle
}

// Entity is the capability agents, pulses and echoes expose to the loop.
// Update advances the entity one tick and reports whether it is still alive.
type Entity interface {
	Update(env *Environment) bool
}

// advance updates every item, then drops the dead ones. Removal happens after
// the whole pass so no item is skipped or visited twice.
func advance[E Entity](env *Environment, items []E) []E {
	alive := make([]bool, len(items))
	for i, it := range items {
		alive[i] = it.Update(env)
	}
	return compact(items, func(i int, _ E) bool { return alive[i] })
}

// compact keeps the items for which keep returns true, in order, reusing the
// backing array. Freed slots are zeroed so removed entities are not retained.
func compact[E any](items []E, keep func(int, E) bool) []E {
	n := 0
	for i, it := range items {
		if keep(i, it) {
			items[n] = it
			n++
		}
	}
	var zero E
	for i := n; i < len(items); i++ {
		items[i] = zero
	}
	return items[:n]
}

// Obstacle is a static axis-aligned rectangle. Pulses reflect off every
// obstacle, agents only collide with the ones that BlocksAgents.
type Obstacle struct {
	Bounds       geometry.Rect `json:"bounds"`
	Interest     float64       `json:"interest"`
	BlocksAgents bool          `json:"blocksAgents"`
}

// firstOverlap returns the index of the first obstacle overlapping box, or -1.
// Only the first match is resolved, simultaneous contacts are ignored.
func firstOverlap(obstacles []Obstacle, box geometry.Rect, blockingOnly bool) int {
	for i := range obstacles {
		if blockingOnly && !obstacles[i].BlocksAgents {
			continue
		}
		if obstacles[i].Bounds.Overlaps(box) {
			return i
		}
	}
	return -1
}
