package config

import (
	"errors"
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrUnknownPreset is returned for preset names that are not defined.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// Presets lists the valid preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched; normal restores the default
// opening, speed and spawn interval.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) error {
	def := DefaultFlappyConfig()

	switch preset {
	case "":
		return nil
	case DifficultyEasy:
		cfg.Obstacles.OpeningRatio = 3.0
		cfg.Physics.PipeSpeed = -1.6
		cfg.Obstacles.SpawnInterval = Duration{1800 * time.Millisecond}
	case DifficultyNormal:
		cfg.Obstacles.OpeningRatio = def.Obstacles.OpeningRatio
		cfg.Physics.PipeSpeed = def.Physics.PipeSpeed
		cfg.Obstacles.SpawnInterval = def.Obstacles.SpawnInterval
	case DifficultyHard:
		cfg.Obstacles.OpeningRatio = 4.0
		cfg.Physics.PipeSpeed = -2.6
		cfg.Obstacles.SpawnInterval = Duration{1200 * time.Millisecond}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	return nil
}
