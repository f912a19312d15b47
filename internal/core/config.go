package core

import (
	"errors"
	"time"
)

// ErrNoSurface is returned when a front end has nothing to draw on,
// e.g. a zero-sized terminal or an SSH session without a PTY.
var ErrNoSurface = errors.New("core: no drawing surface")

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the surface size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Surface width in cells
	ScreenH  int   // Surface height in cells
	CellW    int   // Play-area units covered by one cell horizontally (1 for pixel surfaces)
	CellH    int   // Play-area units covered by one cell vertically (1 for pixel surfaces)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// Terminal cells are roughly twice as tall as they are wide; measuring them
// in these virtual pixels keeps the board's aspect ratio honest.
const (
	TerminalCellW = 8
	TerminalCellH = 16
)

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CellW:    TerminalCellW,
		CellH:    TerminalCellH,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Validate reports ErrNoSurface when there is no area to draw on.
func (c RuntimeConfig) Validate() error {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return ErrNoSurface
	}
	return nil
}

// CellSize returns the cell dimensions in play-area units, defaulting to 1.
func (c RuntimeConfig) CellSize() (float64, float64) {
	w, h := c.CellW, c.CellH
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return float64(w), float64(h)
}

// SurfaceSize returns the drawable area in play-area units.
func (c RuntimeConfig) SurfaceSize() (float64, float64) {
	cw, ch := c.CellSize()
	return float64(c.ScreenW) * cw, float64(c.ScreenH) * ch
}

// FrameInterval returns the duration of one tick, defaulting to 60 Hz.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether the first run has begun
	GameOver bool // Whether the current run has ended
}

// Running reports whether the simulation is live.
func (s GameState) Running() bool {
	return s.Started && !s.GameOver
}

// StepResult is returned after each tick or input.
// Contains the updated game state and any cues that fired.
type StepResult struct {
	State GameState
	Cues  []Cue
	Input bool // Set for results of Press rather than a frame tick
}

// Has reports whether the given cue fired.
func (r StepResult) Has(c Cue) bool {
	for _, got := range r.Cues {
		if got == c {
			return true
		}
	}
	return false
}

// Timer is a fixed-interval task a game wants run alongside its frame tick,
// independent of the tick rate.
type Timer struct {
	Name     string
	Interval time.Duration
	Fire     func()
}
