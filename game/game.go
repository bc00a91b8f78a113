// Package game wires the level, the actors and their systems, telemetry and
// an output sink into a fixed-step tick loop.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slide/camera"
	"github.com/pthm-cable/slide/components"
	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/input"
	"github.com/pthm-cable/slide/level"
	"github.com/pthm-cable/slide/renderer"
	"github.com/pthm-cable/slide/systems"
	"github.com/pthm-cable/slide/telemetry"
)

// MaxSpeed is the highest ticks-per-frame multiplier.
const MaxSpeed = 8

// Options configures a new game.
type Options struct {
	Config *config.Config
	Level  *level.Level // nil uses the embedded level
	// Source supplies buttons once per tick. Defaults to the sink when it is
	// interactive, otherwise to no input.
	Source input.Source
	Sink   renderer.Sink // nil discards frames
	Logger *slog.Logger

	Mode       string // recorded in run.yaml
	ScriptName string
	OutputDir  string // empty disables CSV output and snapshots
	LogStats   bool
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	world *ecs.World

	actorMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Hitbox,
		components.Avatar,
		components.Controller,
		components.Contacts,
		components.Player,
	]
	actorFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Hitbox,
		components.Avatar,
		components.Contacts,
	]
	player ecs.Entity

	// Systems
	tileMap   *systems.TileMap
	mover     *systems.Mover
	control   *systems.ControlSystem
	animation *systems.AnimationSystem
	physics   *systems.PhysicsSystem

	level       *level.Level
	fingerprint string
	camera      *camera.Camera

	source      input.Source
	sink        renderer.Sink
	interactive renderer.Interactive // nil when the sink takes no input
	liveInput   bool                 // source is the interactive sink

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	runInfo          telemetry.RunInfo
	logStats         bool
	summary          Summary

	// State
	tick    int
	paused  bool
	step    bool // run one tick while paused
	speed   int
	buttons input.Buttons
}

// NewGameWithOptions creates a game with the player spawned.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lvl := opts.Level
	if lvl == nil {
		lvl = level.Default()
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:         cfg,
		logger:      logger,
		world:       world,
		level:       lvl,
		fingerprint: fmt.Sprintf("%016x", lvl.Fingerprint()),
		speed:       1,
		logStats:    opts.LogStats,
		actorMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Hitbox,
			components.Avatar,
			components.Controller,
			components.Contacts,
			components.Player,
		](world),
		actorFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Hitbox,
			components.Avatar,
			components.Contacts,
		](world),
	}

	g.tileMap, g.mover = NewMover(cfg, lvl, logger)

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	if cfg.Screen.TargetFPS > 0 {
		g.perfCollector.Budget = time.Second / time.Duration(cfg.Screen.TargetFPS)
	}
	g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory)

	g.control = systems.NewControlSystem(world)
	g.animation = systems.NewAnimationSystem(world)
	g.physics = systems.NewPhysicsSystem(world, g.mover, cfg.Derived.Gravity, &nudgeHooks{g: g})

	g.camera = camera.New(cfg.Derived.CameraSize, cfg.Derived.CameraMargin)
	if cfg.Camera.ClampToLevel {
		g.camera.WithBounds(g.tileMap.Bounds())
	}

	g.sink = opts.Sink
	if g.sink == nil {
		g.sink = renderer.NopSink{}
	}
	g.interactive, _ = g.sink.(renderer.Interactive)

	g.source = opts.Source
	if g.source == nil {
		if g.interactive != nil {
			g.source = g.interactive
		} else {
			g.source = input.Idle{}
		}
	}
	g.liveInput = g.interactive != nil && g.source == input.Source(g.interactive)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	g.runInfo = telemetry.NewRunInfo(opts.Mode, lvl.Name, g.fingerprint)
	g.runInfo.Script = opts.ScriptName
	if err := om.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config", "error", err)
	}
	if err := om.WriteRun(g.runInfo); err != nil {
		logger.Error("failed to write run info", "error", err)
	}

	g.player = g.spawnPlayer()
	g.camera.AimAt(g.playerPosition())

	logger.Info("game created",
		"run", g.runInfo.ID,
		"level", lvl.Name,
		"fingerprint", g.fingerprint,
		"size", fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height()),
	)
	return g, nil
}

// Tick returns the number of ticks simulated.
func (g *Game) Tick() int { return g.tick }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Speed returns the ticks run per frame.
func (g *Game) Speed() int { return g.speed }

// Camera returns the view camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// TileMap returns the collision map.
func (g *Game) TileMap() *systems.TileMap { return g.tileMap }

// Player returns the player's state.
func (g *Game) Player() (components.Position, components.Velocity, components.Contacts) {
	pos, vel, _, _, _, contacts, _ := g.actorMapper.Get(g.player)
	return *pos, *vel, *contacts
}

// Summary returns movement totals for the run so far.
func (g *Game) Summary() Summary {
	s := g.summary
	s.Ticks = g.tick
	pos, vel, _ := g.Player()
	s.Position = pos.Point()
	s.Velocity = vel.Vector()
	return s
}
