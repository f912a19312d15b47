package session

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTrackerSavesOncePerRun(t *testing.T) {
	store := openStore(t)
	tr := New("flappy", "ada", store, nil)

	over := core.StepResult{State: core.GameState{Started: true, GameOver: true, Score: 5}, Cues: []core.Cue{core.CueHit}}
	tr.OnStep(over)
	tr.OnStep(core.StepResult{State: over.State})

	scores, err := store.AllScores("flappy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Player != "ada" || scores[0].Score != 5 {
		t.Errorf("saved %s/%d, expected ada/5", scores[0].Player, scores[0].Score)
	}

	// A restart arms the next save
	tr.OnStep(core.StepResult{State: core.GameState{Started: true}, Cues: []core.Cue{core.CueJump, core.CueStart}})
	tr.OnStep(core.StepResult{State: core.GameState{Started: true, GameOver: true, Score: 3}})

	scores, _ = store.AllScores("flappy")
	if len(scores) != 2 {
		t.Errorf("saved %d scores, expected 2", len(scores))
	}
	if tr.Best() != 5 {
		t.Errorf("Best() = %d, expected 5", tr.Best())
	}
}

func TestTrackerSkipsZeroScores(t *testing.T) {
	store := openStore(t)
	tr := New("flappy", "ada", store, nil)

	tr.OnStep(core.StepResult{State: core.GameState{Started: true, GameOver: true}, Cues: []core.Cue{core.CueDie}})

	scores, _ := store.AllScores("flappy")
	if len(scores) != 0 {
		t.Errorf("saved %d scores, expected 0", len(scores))
	}
}

func TestTrackerLoadsBest(t *testing.T) {
	store := openStore(t)
	store.SaveScore("flappy", "bob", 9)

	tr := New("flappy", "ada", store, nil)
	if tr.Best() != 9 {
		t.Errorf("Best() = %d, expected 9", tr.Best())
	}

	tr.OnStep(core.StepResult{State: core.GameState{Started: true, Score: 12}})
	if tr.Best() != 12 {
		t.Errorf("Best() during a record run = %d, expected 12", tr.Best())
	}
}

func TestTrackerFlash(t *testing.T) {
	tr := New("flappy", "ada", nil, nil)

	tr.OnStep(core.StepResult{State: core.GameState{Started: true, Score: 1}, Cues: []core.Cue{core.CueScore}})
	if !tr.Flashing() {
		t.Fatal("Flashing() = false after a point")
	}
	for i := 0; i < FlashFrames; i++ {
		tr.OnStep(core.StepResult{State: core.GameState{Started: true, Score: 1}})
	}
	if tr.Flashing() {
		t.Error("Flashing() = true after the flash expired")
	}
}

func TestTrackerFlashIgnoresInputs(t *testing.T) {
	tr := New("flappy", "ada", nil, nil)
	running := core.GameState{Started: true, Score: 1}

	tr.OnStep(core.StepResult{State: running, Cues: []core.Cue{core.CueScore}})
	for i := 0; i < FlashFrames*2; i++ {
		tr.OnStep(core.StepResult{State: running, Cues: []core.Cue{core.CueJump}, Input: true})
	}
	if !tr.Flashing() {
		t.Fatal("Flashing() = false after inputs only, expected the flash to last")
	}

	for i := 0; i < FlashFrames; i++ {
		tr.OnStep(core.StepResult{State: running})
	}
	if tr.Flashing() {
		t.Error("Flashing() = true after the flash frames elapsed")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := New("flappy", "ada", nil, nil)
	tr.OnStep(core.StepResult{State: core.GameState{Started: true, Score: 2}, Cues: []core.Cue{core.CueScore}})

	tr.Reset()
	if tr.State() != (core.GameState{}) {
		t.Errorf("State() = %+v, expected zero", tr.State())
	}
	if tr.Flashing() {
		t.Error("Flashing() = true after Reset")
	}
}
