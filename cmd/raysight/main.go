package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/encoding/protojson"
)

func main() {
	flag.Parse()

	level := golog.InfoLevel
	if *debugFlag {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	if err := run(logger); err != nil {
		logger.Fatalf("raysight: %v", err)
	}
}

func run(logger golog.Logger) error {
	ctx := context.Background()

	cfg := simulation.DefaultConfig()
	if *configFlag != "" {
		loaded, err := simulation.LoadConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Infof("configuration loaded from %s", *configFlag)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *manualFlag {
		cfg.AutoControlled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *writeConfigFlag != "" {
		return simulation.SaveConfig(cfg, *writeConfigFlag)
	}

	system, err := actor.NewActorSystem("raysight", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		_ = system.Stop(ctx)
	}()

	if *headlessFlag {
		state, err := simulation.RunHeadless(ctx, system, cfg, *ticksFlag, time.Minute)
		if err != nil {
			return err
		}
		out, err := protojson.MarshalOptions{Multiline: true}.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	game, err := simulation.NewGame(ctx, cfg, system)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("RaySight: echolocation swarm")
	ebiten.SetTPS(int(cfg.Echolocation.TicksPerSecond))
	return ebiten.RunGame(game)
}
