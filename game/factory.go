package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slide/components"
	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/geom"
	"github.com/pthm-cable/slide/level"
	"github.com/pthm-cable/slide/systems"
)

// playerName is the player actor's name in logs and snapshots.
const playerName = "lexy"

// spawnPoint returns the configured spawn, falling back to the level's.
func (g *Game) spawnPoint() geom.Point {
	if g.cfg.Derived.Spawn != nil {
		return *g.cfg.Derived.Spawn
	}
	return g.level.Spawn
}

// spawnPlayer creates the player actor at the spawn point.
func (g *Game) spawnPlayer() ecs.Entity {
	cfg := g.cfg
	at := g.spawnPoint()

	pos := components.Position{X: at.X, Y: at.Y}
	vel := components.Velocity{}
	hitbox := components.Hitbox{Rect: cfg.Derived.Hitbox}
	avatar := components.Avatar{
		Anchor:      cfg.Derived.Anchor,
		SpriteWidth: cfg.Player.SpriteWidth,
		Frames:      cfg.Player.AnimFrames,
		Delay:       cfg.Player.AnimDelay,
	}
	ctl := components.Controller{
		WalkSpeed: cfg.Derived.WalkSpeed,
		JumpSpeed: cfg.Derived.JumpSpeed,
	}
	contacts := components.Contacts{}
	player := components.Player{Name: playerName}

	return g.actorMapper.NewEntity(&pos, &vel, &hitbox, &avatar, &ctl, &contacts, &player)
}

// respawnPlayer puts the player back at the spawn point at rest.
func (g *Game) respawnPlayer() {
	at := g.spawnPoint()
	pos, vel, _, avatar, ctl, contacts, _ := g.actorMapper.Get(g.player)

	pos.Set(at)
	*vel = components.Velocity{}
	ctl.Buttons = 0
	avatar.FacingLeft = false
	avatar.SpriteIndex = 0
	avatar.SpriteTimer = 0
	avatar.Changed = true
	*contacts = components.Contacts{Hits: contacts.Hits[:0]}
}

func (g *Game) playerPosition() geom.Point {
	pos, _, _, _, _, _, _ := g.actorMapper.Get(g.player)
	return pos.Point()
}

// NewMover builds the collision map for lvl and a mover over it with the
// configured limits.
func NewMover(cfg *config.Config, lvl *level.Level, logger *slog.Logger) (*systems.TileMap, *systems.Mover) {
	tm := systems.NewTileMap(lvl, systems.TileMapOptions{
		CellShift:   cfg.Physics.CellShift,
		SolidBounds: cfg.Physics.SolidBounds,
		MaxContacts: cfg.Physics.MaxContacts,
		Overflow:    cfg.Derived.Overflow,
	})
	mover := systems.NewMover(tm, logger)
	mover.Limits = systems.MoveLimits{
		CompletionThreshold: cfg.Derived.CompletionThreshold,
		StuckThreshold:      cfg.Derived.StuckThreshold,
		StuckLimit:          cfg.Physics.StuckLimit,
		MaxIterations:       cfg.Physics.MaxIterations,
	}
	return tm, mover
}

// LoadLevel loads the level at path, or the embedded level when path is
// empty.
func LoadLevel(path string) (*level.Level, error) {
	if path == "" {
		return level.Default(), nil
	}
	return level.Load(path)
}
