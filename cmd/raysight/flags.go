package main

import "flag"

var (
	// configFlag points to a JSON, YAML or TOML file applied over the defaults.
	configFlag = flag.String("config", "", "configuration file (.json, .yaml, .yml or .toml)")

	// writeConfigFlag dumps the effective configuration and exits.
	writeConfigFlag = flag.String("write-config", "", "write the effective configuration to this file and exit")

	headlessFlag = flag.Bool("headless", false, "run without window for -ticks ticks and print the final state")
	ticksFlag    = flag.Int("ticks", 3600, "number of ticks of a headless run")

	// seedFlag overrides the configured seed when non zero.
	seedFlag = flag.Uint64("seed", 0, "random seed of the spawn positions, 0 keeps the configured one")

	manualFlag = flag.Bool("manual", false, "steer the first agent with the keyboard (arrows or WASD, space emits)")
	debugFlag  = flag.Bool("debug", false, "log every tick of the simulation")
)
