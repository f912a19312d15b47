// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must fly through the openings of pipe
// pairs scrolling in from the right.
package flappy

import (
	"math"
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Registered variant IDs.
const (
	ClassicID = "flappy"
	StrictID  = "flappy_strict"
)

var (
	configMu      sync.RWMutex
	currentConfig = config.DefaultFlappyConfig()
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.FlappyConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	currentConfig = cfg
}

func loadConfig() config.FlappyConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return currentConfig
}

// Game implements the Flappy Bird game loop. It owns the whole game state;
// callers drive it through Step (frame tick), Spawn (timer) and Press (input),
// which must not run concurrently.
type Game struct {
	id    string
	title string

	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	board   Board
	params  Params

	bird      Bird
	pipes     *PipeManager
	score     int
	phase     Phase
	tickCount int // Ticks since the current run started
}

// New creates a classic game using the registry configuration.
func New() *Game {
	return NewWithConfig(loadConfig())
}

// NewStrict creates a game that also ends when the bird flies above the board.
func NewStrict() *Game {
	cfg := loadConfig()
	cfg.Rules.StrictCeiling = true
	g := NewWithConfig(cfg)
	g.id = StrictID
	g.title = "Flappy Bird (strict ceiling)"
	return g
}

// NewWithConfig creates a game with an explicit configuration. Until Reset
// fits it to a surface the board is empty and inputs are ignored.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{
		id:    ClassicID,
		title: "Flappy Bird",
		cfg:   cfg,
		pipes: NewPipeManager(0, Params{}, Board{}),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset fits the board to the surface and returns to the not-started state.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.board = FitBoard(rc.SurfaceSize())
	g.params = NewParams(g.cfg, g.board)

	g.bird = Bird{
		X: g.params.BirdX,
		Y: g.params.BirdY,
		W: g.params.BirdW,
		H: g.params.BirdH,
	}
	g.score = 0
	g.phase = PhaseNotStarted
	g.tickCount = 0

	g.pipes.params = g.params
	g.pipes.board = g.board
	g.pipes.Reset(rc.Seed)
}

// Step advances the game by one tick. It does nothing unless a run is live.
func (g *Game) Step() core.StepResult {
	if g.phase != PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	var cues []core.Cue
	g.tickCount++

	// Gravity
	g.bird.VY += g.params.Gravity
	next := g.bird.Y + g.bird.VY
	if g.params.StrictCeiling && next < 0 {
		cues = g.end(cues, core.CueDie)
	}
	g.bird.Y = math.Max(next, 0)

	g.pipes.Advance(g.params.PipeVelocity)

	// Fell off the bottom
	if g.bird.Y > g.board.H {
		cues = g.end(cues, core.CueDie)
	}

	if passed := g.pipes.MarkPassed(g.bird.X); passed > 0 {
		g.score += passed
		for i := 0; i < passed; i++ {
			cues = append(cues, core.CueScore)
		}
	}

	if g.pipes.CheckCollision(g.bird.Rect()) {
		cues = g.end(cues, core.CueHit)
	}

	g.pipes.Evict()

	return core.StepResult{State: g.State(), Cues: cues}
}

// end moves to game over, emitting the cue only on the transition.
func (g *Game) end(cues []core.Cue, cue core.Cue) []core.Cue {
	if g.phase == PhaseGameOver {
		return cues
	}
	g.phase = PhaseGameOver
	return append(cues, cue)
}

// Spawn adds a pipe pair at the right edge while a run is live.
func (g *Game) Spawn() {
	if g.phase != PhaseRunning {
		return
	}
	g.pipes.Spawn()
}

// Press applies an input immediately. Jump starts the first run, restarts
// after game over, and always sets the upward impulse.
func (g *Game) Press(a core.Action) core.StepResult {
	if a != core.ActionJump || g.board.H <= 0 {
		return core.StepResult{State: g.State(), Input: true}
	}

	cues := []core.Cue{core.CueJump}

	switch g.phase {
	case PhaseGameOver:
		g.restart()
		cues = append(cues, core.CueStart)
	case PhaseNotStarted:
		g.phase = PhaseRunning
		cues = append(cues, core.CueStart)
	}

	g.bird.VY = g.params.JumpImpulse

	return core.StepResult{State: g.State(), Cues: cues, Input: true}
}

// restart clears the run without reseeding, so consecutive runs differ.
func (g *Game) restart() {
	g.score = 0
	g.pipes.Clear()
	g.bird.Y = g.params.BirdY
	g.tickCount = 0
	g.phase = PhaseRunning
}

// Timers returns the obstacle spawn timer.
func (g *Game) Timers() []core.Timer {
	return []core.Timer{{
		Name:     "spawn",
		Interval: g.SpawnInterval(),
		Fire:     g.Spawn,
	}}
}

// SpawnInterval returns the wall-clock period between pipe pairs.
func (g *Game) SpawnInterval() time.Duration {
	if g.params.SpawnInterval > 0 {
		return g.params.SpawnInterval
	}
	return g.cfg.Obstacles.SpawnInterval.Duration
}

// Phase returns the current loop state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Board returns the play area the game was last reset to.
func (g *Game) Board() Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Started:  g.phase != PhaseNotStarted,
		GameOver: g.phase == PhaseGameOver,
	}
}

// Register the game variants with the registry
func init() {
	registry.Register(ClassicID, func() registry.Game {
		return New()
	})
	registry.Register(StrictID, func() registry.Game {
		return NewStrict()
	})
}
