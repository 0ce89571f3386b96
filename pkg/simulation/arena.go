package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
)

const (
	wallThickness = 10
	// the interior layout was drawn for this window size and is scaled from it
	referenceWidth  = 1280
	referenceHeight = 720
)

// DefaultObstacles returns the boundary walls of a w x h world and four
// interior obstacles of mixed interest.
func DefaultObstacles(w, h float64) []echolocation.Obstacle {
	sx, sy := w/referenceWidth, h/referenceHeight
	interior := func(x, y, ow, oh, interest float64, blocks bool) echolocation.Obstacle {
		return echolocation.Obstacle{
			Bounds:       geometry.NewRect(x*sx, y*sy, ow*sx, oh*sy),
			Interest:     interest,
			BlocksAgents: blocks,
		}
	}
	return []echolocation.Obstacle{
		{Bounds: geometry.NewRect(0, 0, w, wallThickness), Interest: -0.5, BlocksAgents: true},
		{Bounds: geometry.NewRect(0, wallThickness, wallThickness, h-wallThickness), Interest: -0.5, BlocksAgents: true},
		{Bounds: geometry.NewRect(w-wallThickness, wallThickness, wallThickness, h-wallThickness), Interest: -0.2, BlocksAgents: true},
		{Bounds: geometry.NewRect(wallThickness, h-wallThickness, w-2*wallThickness, wallThickness), Interest: -0.1, BlocksAgents: true},
		interior(150, 100, 50, 200, 0.2, false),
		interior(1000, 200, 10, 300, -1, false),
		interior(200, 500, 500, 10, -0.5, true),
		interior(1100, 600, 50, 50, 1, false),
	}
}

// BuildObstacles returns the configured obstacles, or the default arena.
func (c *Config) BuildObstacles() []echolocation.Obstacle {
	if c.Obstacles == nil {
		return DefaultObstacles(c.WorldWidth, c.WorldHeight)
	}
	obstacles := make([]echolocation.Obstacle, len(c.Obstacles))
	for i, o := range c.Obstacles {
		obstacles[i] = echolocation.Obstacle{
			Bounds:       geometry.NewRect(o.X, o.Y, o.W, o.H),
			Interest:     o.Interest,
			BlocksAgents: o.BlocksAgents,
		}
	}
	return obstacles
}

type gridKey struct {
	x, y int
}

// spawnGrid is a spatial hash of the spawns placed so far, with cells as
// large as the minimum spacing so only the 3x3 neighbourhood needs checking.
type spawnGrid struct {
	cellSize float64
	cells    map[gridKey][]geometry.Vector2D
}

func newSpawnGrid(spacing float64) *spawnGrid {
	return &spawnGrid{
		cellSize: math.Max(spacing, 1),
		cells:    make(map[gridKey][]geometry.Vector2D),
	}
}

func (g *spawnGrid) key(p geometry.Vector2D) gridKey {
	return gridKey{x: int(math.Floor(p.X / g.cellSize)), y: int(math.Floor(p.Y / g.cellSize))}
}

func (g *spawnGrid) add(p geometry.Vector2D) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], p)
}

// crowded reports whether another spawn lies closer than the cell size.
func (g *spawnGrid) crowded(p geometry.Vector2D) bool {
	k := g.key(p)
	minSq := g.cellSize * g.cellSize
	for i := k.x - 1; i <= k.x+1; i++ {
		for j := k.y - 1; j <= k.y+1; j++ {
			for _, other := range g.cells[gridKey{x: i, y: j}] {
				if p.DistanceSquaredTo(other) < minSq {
					return true
				}
			}
		}
	}
	return false
}

const maxSpawnAttempts = 200

// RandomSpawns places n agents at random positions and headings inside the
// world. Positions overlapping a blocking obstacle are redrawn, and so are
// positions crowding a previous spawn until the attempts run out.
func RandomSpawns(rng *rand.Rand, n int, w, h, radius float64, obstacles []echolocation.Obstacle) []echolocation.Spawn {
	grid := newSpawnGrid(4 * radius)
	spawns := make([]echolocation.Spawn, 0, n)

	blocked := func(p geometry.Vector2D) bool {
		box := geometry.SquareAround(p, radius)
		for _, o := range obstacles {
			if o.BlocksAgents && o.Bounds.Overlaps(box) {
				return true
			}
		}
		return false
	}
	draw := func() geometry.Vector2D {
		return geometry.Vector2D{
			X: radius + rng.Float64()*math.Max(w-2*radius, 0),
			Y: radius + rng.Float64()*math.Max(h-2*radius, 0),
		}
	}

	for len(spawns) < n {
		var p geometry.Vector2D
		found := false
		for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
			candidate := draw()
			if blocked(candidate) {
				continue
			}
			p, found = candidate, true
			if !grid.crowded(candidate) {
				break
			}
		}
		if !found {
			// the arena is full of walls, give up on the blocking check
			p = draw()
		}
		grid.add(p)
		spawns = append(spawns, echolocation.Spawn{Pos: p, Heading: geometry.TwoPi * rng.Float64()})
	}
	return spawns
}
