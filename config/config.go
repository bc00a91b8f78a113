// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slide/collision"
	"github.com/pthm-cable/slide/fixed"
	"github.com/pthm-cable/slide/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Level     LevelConfig     `yaml:"level"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Scale     int `yaml:"scale"` // window pixels per game pixel
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds movement and collision parameters.
type PhysicsConfig struct {
	CellShift           uint    `yaml:"cell_shift"` // tile size is 1 << cell_shift
	Gravity             float64 `yaml:"gravity"`    // added to vertical velocity each tick
	CompletionThreshold float64 `yaml:"completion_threshold"`
	StuckThreshold      float64 `yaml:"stuck_threshold"`
	StuckLimit          int     `yaml:"stuck_limit"`
	MaxIterations       int     `yaml:"max_iterations"`
	MaxContacts         int     `yaml:"max_contacts"`
	ContactOverflow     string  `yaml:"contact_overflow"` // grow or drop
	SolidBounds         bool    `yaml:"solid_bounds"`     // cells outside the map block movement
}

// PlayerConfig holds the player actor's shape and controls.
type PlayerConfig struct {
	Spawn       []float64 `yaml:"spawn,omitempty"` // overrides the level spawn when set
	Hitbox      []float64 `yaml:"hitbox"`          // x, y, w, h relative to position
	Anchor      []float64 `yaml:"anchor"`          // sprite pixel under position
	SpriteWidth int       `yaml:"sprite_width"`
	WalkSpeed   float64   `yaml:"walk_speed"`
	JumpSpeed   float64   `yaml:"jump_speed"`
	AnimFrames  int       `yaml:"anim_frames"`
	AnimDelay   int       `yaml:"anim_delay"`
}

// CameraConfig holds viewport parameters.
type CameraConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	MarginX      int  `yaml:"margin_x"`
	MarginY      int  `yaml:"margin_y"`
	ClampToLevel bool `yaml:"clamp_to_level"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow     int  `yaml:"stats_window"` // ticks per movement stats window
	PerfWindow      int  `yaml:"perf_window"`
	BookmarkHistory int  `yaml:"bookmark_history"` // windows averaged for spike bookmarks
	SnapshotOnStuck bool `yaml:"snapshot_on_stuck"`
	MaxSnapshots    int  `yaml:"max_snapshots"`
}

// LevelConfig selects the level to play.
type LevelConfig struct {
	Path string `yaml:"path"` // empty uses the embedded test level
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Gravity   fixed.Fixed
	WalkSpeed fixed.Fixed
	JumpSpeed fixed.Fixed
	Hitbox    geom.Rect
	Anchor    geom.Point
	Spawn     *geom.Point // nil when the level decides
	Overflow  collision.OverflowPolicy

	CompletionThreshold fixed.Fixed
	StuckThreshold      fixed.Fixed

	CameraSize   geom.Size
	CameraMargin geom.Size
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Derive recomputes the derived values after fields were changed in code.
func (c *Config) Derive() error {
	return c.computeDerived()
}

// computeDerived converts loaded values to their fixed-point forms.
func (c *Config) computeDerived() error {
	p := c.Physics
	d := &c.Derived

	d.Gravity = fixed.FromFloat(p.Gravity)
	d.CompletionThreshold = fixed.FromFloat(p.CompletionThreshold)
	d.StuckThreshold = fixed.FromFloat(p.StuckThreshold)

	overflow, err := collision.ParseOverflowPolicy(p.ContactOverflow)
	if err != nil {
		return fmt.Errorf("physics.contact_overflow: %w", err)
	}
	d.Overflow = overflow

	if p.StuckLimit < 1 || p.MaxIterations < 1 {
		return errors.New("physics: stuck_limit and max_iterations must be positive")
	}

	pl := c.Player
	d.WalkSpeed = fixed.FromFloat(pl.WalkSpeed)
	d.JumpSpeed = fixed.FromFloat(pl.JumpSpeed)

	if len(pl.Hitbox) != 4 {
		return fmt.Errorf("player.hitbox: want [x, y, w, h], got %d values", len(pl.Hitbox))
	}
	d.Hitbox = geom.Rect{
		Origin: point(pl.Hitbox[0], pl.Hitbox[1]),
		Size:   geom.Size{W: fixed.FromFloat(pl.Hitbox[2]), H: fixed.FromFloat(pl.Hitbox[3])},
	}
	if d.Hitbox.Size.W <= 0 || d.Hitbox.Size.H <= 0 {
		return errors.New("player.hitbox: size must be positive")
	}

	if len(pl.Anchor) != 2 {
		return fmt.Errorf("player.anchor: want [x, y], got %d values", len(pl.Anchor))
	}
	d.Anchor = point(pl.Anchor[0], pl.Anchor[1])

	d.Spawn = nil
	switch len(pl.Spawn) {
	case 0:
	case 2:
		sp := point(pl.Spawn[0], pl.Spawn[1])
		d.Spawn = &sp
	default:
		return fmt.Errorf("player.spawn: want [x, y], got %d values", len(pl.Spawn))
	}

	cam := c.Camera
	d.CameraSize = geom.Sz(cam.Width, cam.Height)
	d.CameraMargin = geom.Sz(cam.MarginX, cam.MarginY)
	return nil
}

func point(x, y float64) geom.Point {
	return geom.Point{X: fixed.FromFloat(x), Y: fixed.FromFloat(y)}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
