package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Phase is the game loop state.
type Phase int

const (
	PhaseNotStarted Phase = iota // waiting for the first jump
	PhaseRunning                 // simulation live
	PhaseGameOver                // terminal until the next jump
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Bird is the player-controlled actor. Only Y and VY change during play.
type Bird struct {
	X, Y float64
	W, H float64
	VY   float64 // Vertical velocity, positive = down
}

// Rect returns the bird's collision rectangle.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}
