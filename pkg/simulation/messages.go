package simulation

import (
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The WorldActor protocol is built on protobuf well-known types:
//
//	Tick     *wrapperspb.UInt32Value  number of ticks to advance
//	Control  *structpb.Struct         manual command, one boolean per key
//	GetState *emptypb.Empty           answered with a *structpb.Struct summary

// Keys of the Control message.
const (
	keyForward = "forward"
	keyReverse = "reverse"
	keyLeft    = "left"
	keyRight   = "right"
	keyEmit    = "emit"
)

// Keys of the GetState reply.
const (
	StateRunID  = "runId"
	StateTick   = "tick"
	StateAgents = "agents"
	StatePulses = "pulses"
	StateEchoes = "echoes"
	StateDigest = "digest"
)

func NewTick(deltaTicks uint32) *wrapperspb.UInt32Value {
	return wrapperspb.UInt32(deltaTicks)
}

func NewGetState() *emptypb.Empty {
	return &emptypb.Empty{}
}

// NewControl encodes a manual command.
func NewControl(cmd echolocation.ManualCommand) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyForward: structpb.NewBoolValue(cmd.Forward),
		keyReverse: structpb.NewBoolValue(cmd.Reverse),
		keyLeft:    structpb.NewBoolValue(cmd.Left),
		keyRight:   structpb.NewBoolValue(cmd.Right),
		keyEmit:    structpb.NewBoolValue(cmd.Emit),
	}}
}

// CommandFromControl decodes a Control message. Missing or non boolean
// fields read as false.
func CommandFromControl(s *structpb.Struct) echolocation.ManualCommand {
	flag := func(key string) bool {
		return s.GetFields()[key].GetBoolValue()
	}
	return echolocation.ManualCommand{
		Forward: flag(keyForward),
		Reverse: flag(keyReverse),
		Left:    flag(keyLeft),
		Right:   flag(keyRight),
		Emit:    flag(keyEmit),
	}
}
