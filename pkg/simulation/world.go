package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor owns the echolocation World. Every read and write of the world
// goes through its mailbox, the renderer only sees snapshots.
type WorldActor struct {
	cfg        *Config
	world      *echolocation.World
	runID      uuid.UUID
	seed       uint64
	snapshotCh chan<- *echolocation.Snapshot

	// --- Benchmark Stats ---
	ticksSinceLog int
	lastLogTime   time.Time
}

// NewWorldActor creates the actor. snapshotCh may be nil when nobody renders.
func NewWorldActor(snapshotCh chan<- *echolocation.Snapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		cfg:        cfg,
		runID:      uuid.New(),
		snapshotCh: snapshotCh,
	}
}

// RunID identifies this run in the logs and the GetState reply.
func (w *WorldActor) RunID() uuid.UUID { return w.runID }

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	world, seed, err := NewWorld(w.cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build world: %w", err)
	}
	w.world = world
	w.seed = seed
	w.lastLogTime = time.Now()
	logger.Infof("run %s: %d agents, %d obstacles, seed %d",
		w.runID, len(world.Agents()), len(world.Obstacles()), seed)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("World started")

	// Tick
	case *wrapperspb.UInt32Value:
		n := int(msg.GetValue())
		w.world.Advance(n)
		w.ticksSinceLog += max(n, 1)
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	// Control
	case *structpb.Struct:
		if err := w.world.Command(CommandFromControl(msg)); err != nil {
			ctx.Logger().Warnf("control ignored: %v", err)
		}

	// GetState
	case *emptypb.Empty:
		state, err := w.state()
		if err != nil {
			ctx.Logger().Errorf("state: %v", err)
			return
		}
		ctx.Response(state)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("tick %d: %d ticks/sec", w.world.Tick(), w.ticksSinceLog)
		w.ticksSinceLog = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.world.Snapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) state() (*structpb.Struct, error) {
	snap := w.world.Snapshot()
	return structpb.NewStruct(map[string]interface{}{
		StateRunID:  w.runID.String(),
		StateTick:   float64(snap.Tick),
		StateAgents: len(snap.Agents),
		StatePulses: len(snap.Pulses),
		StateEchoes: len(snap.Echoes),
		StateDigest: fmt.Sprintf("%016x", snap.Digest()),
	})
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("run %s stopped at tick %d", w.runID, w.world.Tick())
	return nil
}

// NewWorld builds the echolocation world described by cfg. A zero seed is
// replaced by a time based one, the seed actually used is returned.
func NewWorld(cfg *Config, logger golog.Logger) (*echolocation.World, uint64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))

	obstacles := cfg.BuildObstacles()
	spawns := RandomSpawns(rng, cfg.NumAgents, cfg.WorldWidth, cfg.WorldHeight,
		cfg.Echolocation.AgentRadius, obstacles)

	opts := []echolocation.Option{echolocation.WithLogger(logger)}
	if !cfg.AutoControlled {
		opts = append(opts, echolocation.WithManualAgent(0))
	}
	world, err := echolocation.NewWorld(cfg.Echolocation, obstacles, spawns, opts...)
	if err != nil {
		return nil, 0, err
	}
	return world, seed, nil
}
