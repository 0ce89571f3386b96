package echolocation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(obstacles ...Obstacle) *Environment {
	prm := DefaultParams()
	return &Environment{Params: &prm, Obstacles: obstacles}
}

func TestPulse_LifetimeWithoutContact(t *testing.T) {
	env := testEnv()
	p := NewPulse(0, geometry.Vector2D{X: 100, Y: 100}, geometry.UnitX, 200)

	ticks := 0
	last := p.Strength
	for p.Update(env) {
		ticks++
		assert.LessOrEqual(t, p.Strength, last, "strength must never increase")
		last = p.Strength
		require.Less(t, ticks, 1000, "pulse never died")
	}
	ticks++ // the tick that killed it

	assert.Equal(t, 200, ticks)
	assert.LessOrEqual(t, p.Strength, 0.0)
	assert.False(t, p.HitObstacle)
}

func TestPulse_RemovedOnTheTickWallDecayKillsIt(t *testing.T) {
	wall := Obstacle{Bounds: geometry.NewRect(0, 100, 200, 50), Interest: -1}
	env := testEnv(wall)
	p := NewPulse(0, geometry.Vector2D{X: 100, Y: 98}, geometry.Vector2D{X: 0, Y: 1}, 11)

	assert.False(t, p.Update(env), "1 + 10 decay must kill it at once")
	assert.True(t, p.HitObstacle)
}

func TestPulse_BouncesUpOffObstacleBelow(t *testing.T) {
	// obstacle lying under the pulse, the pulse goes straight down onto its top edge
	wall := Obstacle{Bounds: geometry.NewRect(0, 100, 200, 50), Interest: 0.5}
	env := testEnv(wall)
	p := NewPulse(0, geometry.Vector2D{X: 100, Y: 94}, geometry.Vector2D{X: 0, Y: 1}, 200)

	require.True(t, p.Update(env))
	require.False(t, p.HitObstacle)
	require.InDelta(t, 102, p.Pos.Y, 1e-9)

	require.True(t, p.Update(env))
	assert.True(t, p.HitObstacle)
	assert.Less(t, p.Facing.Y, 0.0, "facing must point up after the bounce")
	assert.InDelta(t, 0.25, p.Interest, 1e-12)
	assert.InDelta(t, 200-2-10, p.Strength, 1e-12)
	assert.InDelta(t, 90, p.Pos.Y, 1e-9)
}

func TestPulse_NoStickingAfterReflection(t *testing.T) {
	box := geometry.NewRect(300, 300, 100, 100)
	env := testEnv(Obstacle{Bounds: box, Interest: 1, BlocksAgents: true})

	starts := []struct {
		pos, dir geometry.Vector2D
	}{
		{geometry.Vector2D{X: 250, Y: 350}, geometry.Vector2D{X: 1, Y: 0.2}},
		{geometry.Vector2D{X: 450, Y: 350}, geometry.Vector2D{X: -1, Y: -0.3}},
		{geometry.Vector2D{X: 350, Y: 250}, geometry.Vector2D{X: 0.1, Y: 1}},
		{geometry.Vector2D{X: 350, Y: 450}, geometry.Vector2D{X: -0.4, Y: -1}},
	}
	for _, s := range starts {
		dir, err := s.dir.Normalize()
		require.NoError(t, err)
		p := NewPulse(0, s.pos, dir, 200)

		bounced := false
		for i := 0; i < 40 && !bounced; i++ {
			hitBefore := p.HitObstacle
			require.True(t, p.Update(env))
			if !hitBefore && p.HitObstacle {
				bounced = true
			}
		}
		require.True(t, bounced, "pulse from %v never reached the obstacle", s.pos)

		d0 := distanceToRect(box, p.Pos)
		require.True(t, p.Update(env))
		assert.GreaterOrEqual(t, distanceToRect(box, p.Pos), d0, "pulse from %v moved back toward the obstacle", s.pos)
	}
}

func distanceToRect(r geometry.Rect, p geometry.Vector2D) float64 {
	dx := max(r.Left()-p.X, 0, p.X-r.Right())
	dy := max(r.Top()-p.Y, 0, p.Y-r.Bottom())
	return geometry.Vector2D{X: dx, Y: dy}.Len()
}

func TestPulse_ReflectsOffNonBlockingObstacles(t *testing.T) {
	glass := Obstacle{Bounds: geometry.NewRect(102, 0, 10, 200), Interest: 0.2, BlocksAgents: false}
	env := testEnv(glass)
	p := NewPulse(0, geometry.Vector2D{X: 100, Y: 50}, geometry.UnitX, 200)

	require.True(t, p.Update(env))
	assert.True(t, p.HitObstacle)
	assert.Less(t, p.Facing.X, 0.0)
}
