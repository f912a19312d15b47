// Package session follows the runs of one player for any front end: it keeps
// the status-line state and persists each finished run exactly once.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// FlashFrames is how many steps the score stays highlighted after a point.
const FlashFrames = 20

// Tracker implements loop.Observer. The store and logger may be nil.
type Tracker struct {
	gameID string
	player string
	store  *storage.Store
	logger *log.Logger

	state core.GameState
	best  int
	saved bool
	flash int
}

// New creates a tracker and loads the best score recorded for the game.
func New(gameID, player string, store *storage.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	t := &Tracker{
		gameID: gameID,
		player: player,
		store:  store,
		logger: logger,
	}
	if store != nil {
		best, err := store.HighScore(gameID)
		if err != nil {
			logger.Warn("could not load high score", "game", gameID, "error", err)
		}
		t.best = best
	}
	return t
}

// OnStep records a step or input result. The flash only counts frames.
func (t *Tracker) OnStep(res core.StepResult) {
	if t.flash > 0 && !res.Input {
		t.flash--
	}

	for _, c := range res.Cues {
		switch c {
		case core.CueStart:
			t.saved = false
			t.logger.Info("run started", "game", t.gameID, "player", t.player)
		case core.CueScore:
			t.flash = FlashFrames
		case core.CueHit, core.CueDie:
			t.logger.Debug("run ended", "game", t.gameID, "cause", c)
		}
	}

	t.state = res.State
	if res.State.GameOver && !t.saved {
		t.finish(res.State.Score)
	}
}

// finish records a finished run. Zero scores are not persisted.
func (t *Tracker) finish(score int) {
	t.saved = true
	t.logger.Info("game over", "game", t.gameID, "player", t.player, "score", score)

	if score > t.best {
		t.best = score
	}
	if t.store == nil || score == 0 {
		return
	}
	if _, err := t.store.SaveScore(t.gameID, t.player, score); err != nil {
		t.logger.Warn("could not save score", "game", t.gameID, "error", err)
	}
}

// Reset forgets the current run after the game was reset externally.
func (t *Tracker) Reset() {
	t.state = core.GameState{}
	t.saved = false
	t.flash = 0
}

// State returns the last reported game state.
func (t *Tracker) State() core.GameState {
	return t.state
}

// Best returns the best score known, including the current run.
func (t *Tracker) Best() int {
	return max(t.best, t.state.Score)
}

// Flashing reports whether a point was scored in the last few steps.
func (t *Tracker) Flashing() bool {
	return t.flash > 0
}
