package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

func newTestSystem(t *testing.T) actor.ActorSystem {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("raysight-test", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })
	return system
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.WorldWidth, cfg.WorldHeight = 640, 360
	return cfg
}

func TestNewWorld_FromConfig(t *testing.T) {
	cfg := testConfig()
	w, seed, err := NewWorld(cfg, golog.DiscardLogger)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), seed)
	assert.Len(t, w.Agents(), 3)
	assert.Len(t, w.Obstacles(), 8)
	assert.Equal(t, echolocation.NoAgent, w.ManualAgent())

	cfg.AutoControlled = false
	w, _, err = NewWorld(cfg, golog.DiscardLogger)
	require.NoError(t, err)
	assert.Equal(t, echolocation.AgentID(0), w.ManualAgent())

	cfg.Seed = 0
	_, seed, err = NewWorld(cfg, golog.DiscardLogger)
	require.NoError(t, err)
	assert.NotZero(t, seed)

	cfg.TicksPerFrame = 0
	_, _, err = NewWorld(cfg, golog.DiscardLogger)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunHeadless(t *testing.T) {
	ctx := context.Background()

	run := func() *structpb.Struct {
		state, err := RunHeadless(ctx, newTestSystem(t), testConfig(), 150, 10*time.Second)
		require.NoError(t, err)
		return state
	}
	first := run()
	fields := first.GetFields()

	assert.Equal(t, 150.0, fields[StateTick].GetNumberValue())
	assert.Equal(t, 3.0, fields[StateAgents].GetNumberValue())
	assert.Greater(t, fields[StatePulses].GetNumberValue(), 0.0)
	assert.Len(t, fields[StateDigest].GetStringValue(), 16)
	assert.NotEmpty(t, fields[StateRunID].GetStringValue())

	second := run()
	assert.Equal(t, fields[StateDigest].GetStringValue(), second.GetFields()[StateDigest].GetStringValue(),
		"same seed must replay the same run")
	assert.NotEqual(t, fields[StateRunID].GetStringValue(), second.GetFields()[StateRunID].GetStringValue())
}

func TestWorldActor_PushesSnapshots(t *testing.T) {
	ctx := context.Background()
	system := newTestSystem(t)
	cfg := testConfig()
	cfg.AutoControlled = false
	cfg.Obstacles = []ObstacleConfig{} // nothing can echo, every pulse stays alive

	snapshots := make(chan *echolocation.Snapshot, 1)
	pid, err := system.Spawn(ctx, "world", NewWorldActor(snapshots, cfg))
	require.NoError(t, err)

	require.NoError(t, actor.Tell(ctx, pid, NewControl(echolocation.ManualCommand{Forward: true, Emit: true})))
	require.NoError(t, actor.Tell(ctx, pid, NewTick(1)))

	select {
	case snap := <-snapshots:
		assert.Equal(t, uint64(1), snap.Tick)
		require.Len(t, snap.Agents, 3)
		assert.True(t, snap.Agents[0].Manual)
		// cadence emission plus the manual one for agent 0
		assert.Len(t, snap.Pulses, 4*32)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot received")
	}

	// the buffer is full now, further ticks must not block the actor
	require.NoError(t, actor.Tell(ctx, pid, NewTick(2)))
	require.NoError(t, actor.Tell(ctx, pid, NewTick(2)))
	resp, err := actor.Ask(ctx, pid, NewGetState(), 5*time.Second)
	require.NoError(t, err)
	state, ok := resp.(*structpb.Struct)
	require.True(t, ok)
	assert.Equal(t, 5.0, state.GetFields()[StateTick].GetNumberValue())
}

func TestControlMessage(t *testing.T) {
	cmd := echolocation.ManualCommand{Forward: true, Right: true, Emit: true}
	assert.Equal(t, cmd, CommandFromControl(NewControl(cmd)))

	partial, err := structpb.NewStruct(map[string]interface{}{"left": true, "forward": "yes"})
	require.NoError(t, err)
	assert.Equal(t, echolocation.ManualCommand{Left: true}, CommandFromControl(partial))
	assert.True(t, CommandFromControl(nil).IsZero())
}

func TestKeyboardCommand(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyArrowLeft: true}
	cmd := keyboardCommand(func(k ebiten.Key) bool { return down[k] }, true)
	assert.Equal(t, echolocation.ManualCommand{Forward: true, Left: true, Emit: true}, cmd)

	none := keyboardCommand(func(ebiten.Key) bool { return false }, false)
	assert.True(t, none.IsZero())
}
