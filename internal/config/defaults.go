package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
// Keep in sync with defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:     0.4,
			JumpImpulse: -6,
			PipeSpeed:   -2,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     80,
			PipeHeight:    512,
			OpeningRatio:  3.5,
			EdgeMargin:    16,
			SpawnInterval: Duration{1500 * time.Millisecond},
		},
		Player: FlappyPlayer{
			Width:     40,
			Height:    57,
			XFraction: 0.125,
			YFraction: 0.5,
		},
		Rules: FlappyRules{
			StrictCeiling: false,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
