package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Base resolution the configuration is expressed in.
const (
	BaseWidth  = 360.0
	BaseHeight = 640.0
)

// Board is the aspect-locked play area placed on a surface.
type Board struct {
	W, H             float64 // Play-area size in surface units
	Scale            float64 // W / BaseWidth
	OffsetX, OffsetY float64 // Where the play area starts on the surface
}

// FitBoard computes the largest 360:640 board that fits the surface and
// centres it. A degenerate surface yields the zero Board.
func FitBoard(surfaceW, surfaceH float64) Board {
	if surfaceW <= 0 || surfaceH <= 0 {
		return Board{}
	}

	aspect := BaseWidth / BaseHeight
	var b Board
	if surfaceW/surfaceH > aspect {
		b.H = surfaceH
		b.W = b.H * aspect
	} else {
		b.W = surfaceW
		b.H = b.W / aspect
	}
	b.Scale = b.W / BaseWidth
	b.OffsetX = (surfaceW - b.W) / 2
	b.OffsetY = (surfaceH - b.H) / 2
	return b
}

// Params are the configuration values scaled to a board.
type Params struct {
	Gravity       float64
	JumpImpulse   float64
	PipeVelocity  float64
	BirdX, BirdY  float64 // Start position
	BirdW, BirdH  float64
	PipeW, PipeH  float64
	Opening       float64 // Fixed vertical gap between a pair's pipes
	EdgeMargin    float64
	SpawnInterval time.Duration
	StrictCeiling bool
}

// NewParams scales every dimensional constant by the board's scale factor.
func NewParams(cfg config.FlappyConfig, b Board) Params {
	s := b.Scale
	return Params{
		Gravity:       cfg.Physics.Gravity * s,
		JumpImpulse:   cfg.Physics.JumpImpulse * s,
		PipeVelocity:  cfg.Physics.PipeSpeed * s,
		BirdX:         b.W * cfg.Player.XFraction,
		BirdY:         b.H * cfg.Player.YFraction,
		BirdW:         cfg.Player.Width * s,
		BirdH:         cfg.Player.Height * s,
		PipeW:         cfg.Obstacles.PipeWidth * s,
		PipeH:         cfg.Obstacles.PipeHeight * s,
		Opening:       b.H / cfg.Obstacles.OpeningRatio,
		EdgeMargin:    cfg.Obstacles.EdgeMargin * s,
		SpawnInterval: cfg.Obstacles.SpawnInterval.Duration,
		StrictCeiling: cfg.Rules.StrictCeiling,
	}
}
