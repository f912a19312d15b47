// Package config provides YAML-based game configuration loading and
// difficulty presets for Flappy Bird.
//
// All lengths and speeds are expressed at the 360x640 base resolution;
// the game multiplies them by the board scale factor at runtime.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
	Rules     FlappyRules     `yaml:"rules"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FlappyPhysics defines per-tick physics parameters.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to vertical velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Vertical velocity set on jump (negative = up)
	PipeSpeed   float64 `yaml:"pipe_speed"`   // Horizontal pipe velocity per tick (negative = left)
}

// FlappyObstacles defines pipe geometry and spawning.
type FlappyObstacles struct {
	PipeWidth     float64  `yaml:"pipe_width"`
	PipeHeight    float64  `yaml:"pipe_height"`
	OpeningRatio  float64  `yaml:"opening_ratio"` // Opening = board height / ratio
	EdgeMargin    float64  `yaml:"edge_margin"`   // Minimum distance between the gap and the board edge
	SpawnInterval Duration `yaml:"spawn_interval"`
}

// FlappyPlayer defines the bird's size and starting position.
type FlappyPlayer struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	XFraction float64 `yaml:"x_fraction"` // Start X as a fraction of board width
	YFraction float64 `yaml:"y_fraction"` // Start Y as a fraction of board height
}

// FlappyRules toggles rule variants.
type FlappyRules struct {
	// StrictCeiling ends the run when the bird would rise above the top edge
	// instead of pinning it there.
	StrictCeiling bool `yaml:"strict_ceiling"`
}

// AudioConfig controls the synthesised sound cues of pixel front ends.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// Duration is a time.Duration that reads and writes as "1500ms" in YAML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML writes the duration in Go notation.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the invariants the game loop relies on.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalidConfig)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: physics.jump_impulse must be negative (upward)", ErrInvalidConfig)
	case c.Physics.PipeSpeed >= 0:
		return fmt.Errorf("%w: physics.pipe_speed must be negative (leftward)", ErrInvalidConfig)
	case c.Obstacles.PipeWidth <= 0 || c.Obstacles.PipeHeight <= 0:
		return fmt.Errorf("%w: obstacles pipe size must be positive", ErrInvalidConfig)
	case c.Obstacles.OpeningRatio <= 1:
		return fmt.Errorf("%w: obstacles.opening_ratio must be greater than 1", ErrInvalidConfig)
	case c.Obstacles.EdgeMargin < 0:
		return fmt.Errorf("%w: obstacles.edge_margin must not be negative", ErrInvalidConfig)
	case c.Obstacles.SpawnInterval.Duration <= 0:
		return fmt.Errorf("%w: obstacles.spawn_interval must be positive", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.XFraction < 0 || c.Player.XFraction >= 1 || c.Player.YFraction < 0 || c.Player.YFraction >= 1:
		return fmt.Errorf("%w: player fractions must be within [0, 1)", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}
