package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/structpb"
)

// headlessBatch is the number of ticks carried by a single Tick message.
const headlessBatch = 64

// RunHeadless spawns a WorldActor without renderer, advances it by ticks and
// returns its final GetState reply.
func RunHeadless(ctx context.Context, system actor.ActorSystem, cfg *Config, ticks int, timeout time.Duration) (*structpb.Struct, error) {
	pid, err := system.Spawn(ctx, "world", NewWorldActor(nil, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}
	defer func() {
		_ = pid.Shutdown(ctx)
	}()

	for sent := 0; sent < ticks; {
		n := min(headlessBatch, ticks-sent)
		if err := actor.Tell(ctx, pid, NewTick(uint32(n))); err != nil {
			return nil, fmt.Errorf("failed to send tick: %w", err)
		}
		sent += n
	}

	resp, err := actor.Ask(ctx, pid, NewGetState(), timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to query world state: %w", err)
	}
	state, ok := resp.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("unexpected state reply %T", resp)
	}
	return state, nil
}
