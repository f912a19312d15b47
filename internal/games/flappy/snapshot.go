package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Snapshot is a read-only copy of everything a pixel renderer needs.
// Rectangles are in board coordinates; add Board.OffsetX/OffsetY to place
// them on the surface.
type Snapshot struct {
	Phase Phase
	Board Board
	Bird  core.Rect
	Pipes []core.Rect // Top then bottom for each pair, in draw order
	Score int
	Tick  int
}

// Snapshot returns the current frame.
func (g *Game) Snapshot() Snapshot {
	pairs := g.pipes.Pairs()
	pipes := make([]core.Rect, 0, len(pairs)*2)
	for _, p := range pairs {
		pipes = append(pipes, p.Top(), p.Bottom())
	}

	return Snapshot{
		Phase: g.phase,
		Board: g.board,
		Bird:  g.bird.Rect(),
		Pipes: pipes,
		Score: g.score,
		Tick:  g.tickCount,
	}
}
