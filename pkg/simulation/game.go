package simulation

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/echolocation"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-raysight-simulation/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

var (
	agentColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	facingColor = color.RGBA{R: 164, G: 164, B: 255, A: 255}
	manualColor = color.RGBA{R: 255, G: 220, B: 90, A: 255}
)

type Game struct {
	ctx        context.Context
	worldPID   *actor.PID
	snapshotCh chan *echolocation.Snapshot
	lastState  *echolocation.Snapshot
	cfg        *Config
	paused     bool

	// UI Controls
	panel                    *ui.UIPanel
	widgetDrawWalls          *ui.Checkbox
	widgetDrawPulses         *ui.Checkbox
	widgetDrawRelativeEchoes *ui.Checkbox
	widgetDrawPositionEchoes *ui.Checkbox
	widgetDrawAggregate      *ui.Checkbox
	widgetTicksPerFrame      *ui.Slider

	// Timing instrumentation
	updateAvg float64 // rolling average in ms
	drawAvg   float64
}

// NewGame spawns the WorldActor in system and builds the window state around it.
func NewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	snapshotCh := make(chan *echolocation.Snapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  &echolocation.Snapshot{},
		cfg:        cfg,
	}

	panel := ui.NewUIPanel("RaySight  [H] hide", 20, 20, 240, 300)
	panel.AddSection("Display")
	g.widgetDrawWalls = panel.AddCheckbox("Walls", cfg.DrawWalls)
	g.widgetDrawPulses = panel.AddCheckbox("Pulses", cfg.DrawPulses)
	g.widgetDrawRelativeEchoes = panel.AddCheckbox("Echoes at agent", cfg.DrawRelativeEchoes)
	g.widgetDrawPositionEchoes = panel.AddCheckbox("Echoes at origin", cfg.DrawPositionEchoes)
	g.widgetDrawAggregate = panel.AddCheckbox("Aggregate echo", cfg.DrawAggregate)
	panel.AddSection("Speed")
	g.widgetTicksPerFrame = panel.AddIntSlider("Ticks per frame", 1, 16, cfg.TicksPerFrame)
	panel.AddButton("Pause / Resume  [P]", func() { g.paused = !g.paused })
	panel.EndSection()
	g.panel = panel

	return g, nil
}

// keyboardCommand samples the manual control keys.
func keyboardCommand(pressed func(ebiten.Key) bool, emit bool) echolocation.ManualCommand {
	either := func(a, b ebiten.Key) bool { return pressed(a) || pressed(b) }
	return echolocation.ManualCommand{
		Forward: either(ebiten.KeyArrowUp, ebiten.KeyW),
		Reverse: either(ebiten.KeyArrowDown, ebiten.KeyS),
		Left:    either(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   either(ebiten.KeyArrowRight, ebiten.KeyD),
		Emit:    emit,
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.panel.Hidden = !g.panel.Hidden
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// keep the previous state
	}

	if g.paused {
		return nil
	}

	if !g.cfg.AutoControlled {
		cmd := keyboardCommand(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed(ebiten.KeySpace))
		if !cmd.IsZero() {
			if err := actor.Tell(g.ctx, g.worldPID, NewControl(cmd)); err != nil {
				return fmt.Errorf("failed to send control: %w", err)
			}
		}
	}
	if err := actor.Tell(g.ctx, g.worldPID, NewTick(uint32(g.widgetTicksPerFrame.Int()))); err != nil {
		return fmt.Errorf("failed to send tick: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	s := g.lastState
	if g.widgetDrawWalls.Value {
		for _, o := range s.Obstacles {
			b := o.Bounds
			vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), o.Color, false)
		}
	}
	if g.widgetDrawPulses.Value {
		for _, p := range s.Pulses {
			vector.FillCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), p.Color, true)
		}
	}
	width := float32(s.EchoWidth)
	for _, e := range s.Echoes {
		if g.widgetDrawRelativeEchoes.Value {
			strokeSegment(screen, e.AgentPos, s.EchoTip(e, e.AgentPos), width, e.Color)
		}
		if g.widgetDrawPositionEchoes.Value {
			strokeSegment(screen, e.Origin, s.EchoTip(e, e.Origin), width, e.Color)
		}
	}
	for _, a := range s.Agents {
		if g.widgetDrawAggregate.Value {
			strokeSegment(screen, a.Pos, a.Pos.Add(a.Aggregate.Mul(s.EchoLength)), 2*width, agentColor)
		}
		body := agentColor
		if a.Manual {
			body = manualColor
		}
		vector.FillCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), float32(a.Radius), body, true)
		head := a.Pos.Add(a.Facing.Mul(a.Radius))
		vector.FillCircle(screen, float32(head.X), float32(head.Y), float32(a.Radius/2), facingColor, true)
	}

	g.panel.Draw(screen)

	status := ""
	if g.paused {
		status = "  PAUSED"
	}
	msg := fmt.Sprintf("Tick: %d%s\nAgents: %d  Pulses: %d  Echoes: %d\nFPS: %.1f  TPS: %.1f\nUpdate: %.2fms  Draw: %.2fms",
		s.Tick, status, len(s.Agents), len(s.Pulses), len(s.Echoes),
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-300, 20)
}

func strokeSegment(screen *ebiten.Image, from, to geometry.Vector2D, width float32, clr color.Color) {
	vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), width, clr, true)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
