package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/telemetry"
	"github.com/pthm-cable/slide/ui"
)

const (
	panelWidth    = 220
	controlLegend = "Arrows/WASD: move  Z/Up: jump  Space: pause  .: step  R: reset  Tab: panel"
)

// RaylibSink draws frames into a raylib window scaled up from the camera
// size, with debug overlays and panels on top.
type RaylibSink struct {
	scale    int32
	width    int32
	height   int32
	tiles    *TileRenderer
	keyboard KeyboardSource

	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	controls *ui.ControlsPanel
	actor    *ui.ActorPanel
	perf     *ui.PerfPanel

	actions Actions
}

// OpenRaylibSink opens a window of viewport*scale pixels.
func OpenRaylibSink(viewport geom.Size, scale, targetFPS int, title string) *RaylibSink {
	s := &RaylibSink{
		scale:    int32(max(scale, 1)),
		tiles:    NewTileRenderer(),
		overlays: ui.NewOverlayRegistry(),
		hud:      ui.NewHUD(),
	}
	s.width = int32(viewport.W.Floor()) * s.scale
	s.height = int32(viewport.H.Floor()) * s.scale

	rl.SetConfigFlags(rl.FlagVsyncHint)
	rl.InitWindow(s.width, s.height, title)
	rl.SetTargetFPS(int32(targetFPS))
	rl.SetExitKey(rl.KeyEscape)

	s.controls = ui.NewControlsPanel(s.width-panelWidth-10, 10, panelWidth)
	s.actor = ui.NewActorPanel(10, 80, panelWidth)
	s.perf = ui.NewPerfPanel(10, s.height-150)
	return s
}

// Poll reads the keyboard and handles debug keys.
func (s *RaylibSink) Poll() input.Buttons {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeySpace:
			s.actions.TogglePause = true
		case rl.KeyPeriod:
			s.actions.Step = true
		case rl.KeyR:
			s.actions.Reset = true
		case rl.KeyTab:
			s.controls.Toggle()
		default:
			s.overlays.HandleKeyPress(key)
		}
	}
	return s.keyboard.Poll()
}

// Done reports whether the window was closed.
func (s *RaylibSink) Done() bool { return rl.WindowShouldClose() }

// Actions returns and clears run controls requested since the last call.
func (s *RaylibSink) Actions() Actions {
	a := s.actions
	s.actions = Actions{}
	return a
}

// Present draws one frame.
func (s *RaylibSink) Present(f *Frame) error {
	ox, oy := f.Camera.Offset()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 16, G: 18, B: 24, A: 255})

	rl.BeginMode2D(rl.Camera2D{
		Target: rl.Vector2{X: float32(ox), Y: float32(oy)},
		Zoom:   float32(s.scale),
	})
	x0, y0, x1, y1 := f.VisibleCells()
	s.tiles.Draw(f.Map, x0, y0, x1, y1, s.overlays.IsEnabled(ui.OverlayGrid))
	for _, a := range f.Actors {
		s.drawActor(f, a)
	}
	rl.EndMode2D()

	s.drawUI(f)
	rl.EndDrawing()
	return nil
}

func (s *RaylibSink) drawActor(f *Frame, a ActorView) {
	if s.overlays.IsEnabled(ui.OverlaySprites) {
		o := a.SpriteOrigin()
		h := a.Anchor.Y.Floor() + 1
		color := rl.Color{R: 230, G: 200, B: 120, A: 90}
		rl.DrawRectangle(int32(o.X.Round()), int32(o.Y.Round()), int32(a.SpriteWidth), int32(h), color)
		// Frame marker so the walk cycle is visible
		if a.SpriteIndex > 0 {
			rl.DrawRectangle(int32(o.X.Round())+int32(a.SpriteIndex*3), int32(o.Y.Round()), 2, 2, rl.White)
		}
	}

	if s.overlays.IsEnabled(ui.OverlaySweep) && !a.Attempted.IsZero() {
		drawRectLines(a.SweepBox(), rl.Color{R: 120, G: 120, B: 255, A: 160})
	}
	if s.overlays.IsEnabled(ui.OverlayHitboxes) {
		drawRectLines(a.WorldHitbox(), rl.Yellow)
	}
	px, py := a.Position.X.Round(), a.Position.Y.Round()
	rl.DrawPixel(int32(px), int32(py), rl.Red)

	for _, c := range a.Contacts {
		cell := f.Map.CellRect(c.Cell.X, c.Cell.Y)
		if s.overlays.IsEnabled(ui.OverlayContacts) {
			color := rl.Color{R: 255, G: 80, B: 80, A: 200}
			if c.Type == collision.Touch {
				color = rl.Color{R: 255, G: 200, B: 80, A: 200}
			}
			drawRectLines(cell, color)
		}
		if s.overlays.IsEnabled(ui.OverlayNormals) {
			center := cell.Center()
			if c.HasLeft {
				drawNormal(center, c.LeftNormal, rl.Green)
			}
			if c.HasRight {
				drawNormal(center, c.RightNormal, rl.SkyBlue)
			}
		}
	}
}

func (s *RaylibSink) drawUI(f *Frame) {
	s.hud.Draw(ui.HUDData{
		Title:   f.Title,
		Tick:    f.Tick,
		Speed:   f.Speed,
		FPS:     rl.GetFPS(),
		Paused:  f.Paused,
		Buttons: f.Buttons.String(),
	})
	s.hud.DrawControls(s.height, controlLegend)

	if p, ok := f.Player(); ok && s.overlays.IsEnabled(ui.OverlayActor) {
		s.actor.Draw(ui.ActorStatus{
			X:             p.Position.X.Float64(),
			Y:             p.Position.Y.Float64(),
			VX:            p.Velocity.X.Float64(),
			VY:            p.Velocity.Y.Float64(),
			Iterations:    p.Iterations,
			MaxIterations: f.MaxIterations,
			StuckCount:    p.StuckCount,
			Contacts:      len(p.Contacts),
			Reason:        p.Reason,
		})
	}
	if s.overlays.IsEnabled(ui.OverlayPerf) {
		s.perf.Draw(ui.PerfPanelData{PhaseAvg: f.Perf.PhaseAvg, Total: f.Perf.AvgTick}, telemetry.Phases)
	}

	act := s.controls.Draw(s.overlays, f.Paused)
	s.actions.TogglePause = s.actions.TogglePause || act.TogglePause
	s.actions.Step = s.actions.Step || act.Step
	s.actions.Reset = s.actions.Reset || act.Reset
	if s.controls.IsVisible() {
		s.actions.Speed = act.Speed
	}
}

func drawRectLines(r geom.Rect, color rl.Color) {
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(r.MinX().Float64()),
		Y:      float32(r.MinY().Float64()),
		Width:  float32(r.Size.W.Float64()),
		Height: float32(r.Size.H.Float64()),
	}, 0.5, color)
}

// drawNormal draws a normal scaled to a fixed on-screen length.
func drawNormal(from geom.Point, n geom.Vector, color rl.Color) {
	to := from.Add(n.Normalize().Scale(fixed.FromInt(6)))
	rl.DrawLineV(
		rl.Vector2{X: float32(from.X.Float64()), Y: float32(from.Y.Float64())},
		rl.Vector2{X: float32(to.X.Float64()), Y: float32(to.Y.Float64())},
		color,
	)
}

// Close closes the window.
func (s *RaylibSink) Close() error {
	rl.CloseWindow()
	return nil
}
