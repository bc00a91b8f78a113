package game

import (
	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/renderer"
	"github.com/pthm-cable/slide/telemetry"
)

// heldButtons replays one poll of a live source for every tick of a frame.
type heldButtons input.Buttons

func (h heldButtons) Poll() input.Buttons { return input.Buttons(h) }

// Update runs one frame: reads the sink's controls, advances the
// simulation by the current speed (or not at all while paused) and
// presents the result.
func (g *Game) Update() error {
	source := g.source
	if g.interactive != nil {
		held := g.interactive.Poll()
		if g.liveInput {
			source = heldButtons(held)
		}
		g.applyActions(g.interactive.Actions())
	}

	steps := g.speed
	if g.paused {
		steps = 0
		if g.step {
			steps = 1
			g.step = false
		}
	}

	if steps == 0 {
		return g.present()
	}
	for i := 0; i < steps; i++ {
		g.perfCollector.StartTick()
		g.simulationStep(source)
		var err error
		if i == steps-1 {
			g.perfCollector.StartPhase(telemetry.PhasePresent)
			err = g.present()
		}
		g.perfCollector.EndTick()
		g.flushTelemetry()
		if err != nil {
			return err
		}
	}
	return nil
}

// simulationStep runs one tick: input, control, animation, physics and
// camera, in that order.
func (g *Game) simulationStep(source input.Source) {
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.buttons = source.Poll()

	g.perfCollector.StartPhase(telemetry.PhaseControl)
	g.control.Update(g.world, g.buttons)

	g.perfCollector.StartPhase(telemetry.PhaseAnimation)
	g.animation.Update(g.world)

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(g.world)

	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	g.camera.AimAt(g.playerPosition())

	g.tick++
}

func (g *Game) applyActions(a renderer.Actions) {
	if a.TogglePause {
		g.paused = !g.paused
		g.logger.Info("pause toggled", "paused", g.paused, "tick", g.tick)
	}
	if a.Step && g.paused {
		g.step = true
	}
	if a.Reset {
		g.Reset()
	}
	if a.Speed != 0 {
		g.speed = min(max(a.Speed, 1), MaxSpeed)
	}
}

// Reset respawns the player, recenters the camera and rewinds a
// rewindable input source. The tick counter keeps running.
func (g *Game) Reset() {
	g.respawnPlayer()
	if r, ok := g.source.(interface{ Reset() }); ok {
		r.Reset()
	}
	g.camera.Reset()
	g.camera.AimAt(g.playerPosition())
	g.logger.Info("player reset", "tick", g.tick, "spawn", g.spawnPoint().String())
}

// present hands the current frame to the sink.
func (g *Game) present() error {
	if _, ok := g.sink.(renderer.NopSink); ok {
		return nil
	}
	return g.sink.Present(g.buildFrame())
}

// buildFrame collects the drawable state of every actor.
func (g *Game) buildFrame() *renderer.Frame {
	f := &renderer.Frame{
		Tick:          g.tick,
		Paused:        g.paused,
		Speed:         g.speed,
		Buttons:       g.buttons,
		Camera:        g.camera,
		Map:           g.tileMap,
		Title:         "slide: " + g.level.Name,
		MaxIterations: g.cfg.Physics.MaxIterations,
	}
	if g.interactive != nil {
		f.Perf = g.perfCollector.Stats()
	}

	query := g.actorFilter.Query()
	for query.Next() {
		pos, vel, hitbox, avatar, contacts := query.Get()
		f.Actors = append(f.Actors, renderer.ActorView{
			Position:    pos.Point(),
			Hitbox:      hitbox.Rect,
			Anchor:      avatar.Anchor,
			SpriteWidth: avatar.SpriteWidth,
			FacingLeft:  avatar.FacingLeft,
			SpriteIndex: avatar.SpriteIndex,
			Player:      query.Entity() == g.player,
			Velocity:    vel.Vector(),
			Attempted:   contacts.Attempted,
			Iterations:  contacts.Iterations,
			StuckCount:  contacts.StuckCount,
			Reason:      contacts.Reason,
			Contacts:    append([]collision.Contact(nil), contacts.Hits...),
		})
	}
	return f
}
