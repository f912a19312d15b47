package gui

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// wingFrames is how many ticks the wing holds each position.
const wingFrames = 8

// wing returns the wing rectangle in board coordinates. It flaps while a run
// is live and rests at mid-body otherwise.
func wing(snap flappy.Snapshot) core.Rect {
	bird := snap.Bird
	y := bird.Y + bird.H/2
	if snap.Phase == flappy.PhaseRunning && (snap.Tick/wingFrames)%2 == 0 {
		y = bird.Y + bird.H/4
	}
	return core.NewRect(bird.X+bird.W/8, y, bird.W/2, bird.H/5)
}
