package flappy

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// pixelConfig is a surface exactly the size of the base board.
func pixelConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  360,
		ScreenH:  640,
		CellW:    1,
		CellH:    1,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultFlappyConfig())
	g.Reset(pixelConfig(seed))
	return g
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t, 1)

	if g.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseNotStarted)
	}
	if g.board.Scale != 1 {
		t.Errorf("Scale = %v, expected 1", g.board.Scale)
	}
	if g.bird.X != 45 || g.bird.Y != 320 {
		t.Errorf("bird at (%v, %v), expected (45, 320)", g.bird.X, g.bird.Y)
	}
	if g.bird.W != 40 || g.bird.H != 57 {
		t.Errorf("bird size = %vx%v, expected 40x57", g.bird.W, g.bird.H)
	}
	if g.bird.VY != 0 {
		t.Errorf("bird VY = %v, expected 0", g.bird.VY)
	}
	if len(g.pipes.Pairs()) != 0 {
		t.Errorf("pairs = %d, expected 0", len(g.pipes.Pairs()))
	}
	st := g.State()
	if st.Started || st.GameOver || st.Score != 0 {
		t.Errorf("State() = %+v, expected zero state", st)
	}
}

func TestStepIgnoredBeforeStart(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 30; i++ {
		res := g.Step()
		if len(res.Cues) != 0 {
			t.Errorf("Step() cues = %v, expected none", res.Cues)
		}
	}
	if g.bird.Y != 320 || g.bird.VY != 0 {
		t.Errorf("bird moved before start: Y=%v VY=%v", g.bird.Y, g.bird.VY)
	}
	if g.tickCount != 0 {
		t.Errorf("tickCount = %d, expected 0", g.tickCount)
	}
}

func TestGravityAccumulates(t *testing.T) {
	g := newTestGame(t, 1)
	g.phase = PhaseRunning

	startY := g.bird.Y
	for i := 0; i < 5; i++ {
		g.Step()
	}

	if !approx(g.bird.VY, 2.0) {
		t.Errorf("VY after 5 ticks = %v, expected 2.0", g.bird.VY)
	}
	if !approx(g.bird.Y-startY, 6.0) {
		t.Errorf("displacement after 5 ticks = %v, expected 6.0", g.bird.Y-startY)
	}
}

func TestFirstJumpStartsGame(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Press(core.ActionJump)

	if g.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseRunning)
	}
	if !res.Has(core.CueJump) || !res.Has(core.CueStart) {
		t.Errorf("Press cues = %v, expected jump and start", res.Cues)
	}
	if g.bird.VY != -6 {
		t.Errorf("VY = %v, expected -6", g.bird.VY)
	}

	g.Step()
	if !approx(g.bird.VY, -5.6) {
		t.Errorf("VY after one tick = %v, expected -5.6", g.bird.VY)
	}
	if !approx(g.bird.Y, 320-5.6) {
		t.Errorf("Y after one tick = %v, expected %v", g.bird.Y, 320-5.6)
	}
}

func TestJumpWhileRunningHasNoStartCue(t *testing.T) {
	g := newTestGame(t, 1)
	g.Press(core.ActionJump)
	g.Step()

	res := g.Press(core.ActionJump)
	if res.Has(core.CueStart) {
		t.Error("Press while running emitted a start cue")
	}
	if g.bird.VY != -6 {
		t.Errorf("VY = %v, expected jump impulse to replace velocity", g.bird.VY)
	}
}

func TestNonJumpActionsIgnored(t *testing.T) {
	g := newTestGame(t, 1)

	for _, a := range []core.Action{core.ActionNone, core.ActionUp, core.ActionDown, core.ActionBack} {
		res := g.Press(a)
		if len(res.Cues) != 0 {
			t.Errorf("Press(%v) cues = %v, expected none", a, res.Cues)
		}
		if g.Phase() != PhaseNotStarted {
			t.Errorf("Press(%v) changed phase to %v", a, g.Phase())
		}
	}
}

func TestBirdNeverAboveCeiling(t *testing.T) {
	g := newTestGame(t, 1)
	g.phase = PhaseRunning
	g.bird.Y = 1
	g.bird.VY = -6

	res := g.Step()

	if g.bird.Y != 0 {
		t.Errorf("Y = %v, expected clamp to 0", g.bird.Y)
	}
	if res.State.GameOver {
		t.Error("classic variant ended the game at the ceiling")
	}

	// Holding against the ceiling never goes negative
	for i := 0; i < 10; i++ {
		g.Press(core.ActionJump)
		g.Step()
		if g.bird.Y < 0 {
			t.Fatalf("Y = %v, expected >= 0", g.bird.Y)
		}
	}
}

func TestStrictCeilingEndsGame(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Rules.StrictCeiling = true
	g := NewWithConfig(cfg)
	g.Reset(pixelConfig(1))
	g.phase = PhaseRunning
	g.bird.Y = 1
	g.bird.VY = -6

	res := g.Step()

	if !res.State.GameOver {
		t.Fatal("strict variant did not end above the ceiling")
	}
	if !res.Has(core.CueDie) {
		t.Errorf("cues = %v, expected die", res.Cues)
	}
	if g.bird.Y != 0 {
		t.Errorf("Y = %v, expected clamp to 0", g.bird.Y)
	}
}

func TestFallingOffBottomEndsGame(t *testing.T) {
	g := newTestGame(t, 1)
	g.phase = PhaseRunning
	g.bird.Y = 640

	res := g.Step()

	if !res.State.GameOver {
		t.Fatal("expected game over after leaving the bottom")
	}
	if !res.Has(core.CueDie) {
		t.Errorf("cues = %v, expected die", res.Cues)
	}

	// Further ticks are inert and do not repeat the cue
	y := g.bird.Y
	res = g.Step()
	if len(res.Cues) != 0 {
		t.Errorf("cues after game over = %v, expected none", res.Cues)
	}
	if g.bird.Y != y {
		t.Errorf("bird moved after game over: %v -> %v", y, g.bird.Y)
	}
}

func TestScoringAtMostOncePerPair(t *testing.T) {
	g := newTestGame(t, 1)
	g.phase = PhaseRunning
	// Trailing edge at 40 sits behind the bird's left edge at 45
	g.pipes.pairs = append(g.pipes.pairs, Pair{X: -40, W: 80, GapTop: 200, Opening: 180, PipeH: 512})

	res := g.Step()
	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected 1", res.State.Score)
	}
	if !res.Has(core.CueScore) {
		t.Errorf("cues = %v, expected score", res.Cues)
	}

	for i := 0; i < 5; i++ {
		res = g.Step()
		if res.Has(core.CueScore) {
			t.Fatal("pair scored more than once")
		}
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", g.State().Score)
	}
}

func TestPairNotScoredWhileOverlapping(t *testing.T) {
	g := newTestGame(t, 1)
	g.phase = PhaseRunning
	// Trailing edge at 52 is still ahead of the bird after one tick
	g.pipes.pairs = append(g.pipes.pairs, Pair{X: -26, W: 80, GapTop: 300, Opening: 200, PipeH: 512})

	res := g.Step()
	if res.State.Score != 0 {
		t.Errorf("Score = %d, expected 0", res.State.Score)
	}
}

func TestCollisionAndRestart(t *testing.T) {
	g := newTestGame(t, 1)
	g.Press(core.ActionJump)
	// Top pipe spans y 88..600, covering the bird
	g.pipes.pairs = append(g.pipes.pairs, Pair{X: 45, W: 80, GapTop: 600, Opening: 20, PipeH: 512})

	res := g.Step()
	if !res.State.GameOver {
		t.Fatal("expected game over on collision")
	}
	if !res.Has(core.CueHit) {
		t.Errorf("cues = %v, expected hit", res.Cues)
	}

	g.score = 3
	res = g.Press(core.ActionJump)

	if g.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseRunning)
	}
	if !res.Has(core.CueStart) || !res.Has(core.CueJump) {
		t.Errorf("restart cues = %v, expected jump and start", res.Cues)
	}
	if res.State.Score != 0 {
		t.Errorf("Score = %d, expected 0 after restart", res.State.Score)
	}
	if len(g.pipes.Pairs()) != 0 {
		t.Errorf("pairs = %d, expected 0 after restart", len(g.pipes.Pairs()))
	}
	if g.bird.Y != 320 {
		t.Errorf("Y = %v, expected start position 320", g.bird.Y)
	}
	if g.bird.VY != -6 {
		t.Errorf("VY = %v, expected jump impulse", g.bird.VY)
	}
}

func TestSpawnOnlyWhileRunning(t *testing.T) {
	g := newTestGame(t, 1)

	g.Spawn()
	if n := len(g.pipes.Pairs()); n != 0 {
		t.Errorf("pairs before start = %d, expected 0", n)
	}

	g.Press(core.ActionJump)
	g.Spawn()
	if n := len(g.pipes.Pairs()); n != 1 {
		t.Errorf("pairs while running = %d, expected 1", n)
	}

	g.phase = PhaseGameOver
	g.Spawn()
	if n := len(g.pipes.Pairs()); n != 1 {
		t.Errorf("pairs after game over = %d, expected 1", n)
	}
}

func TestPipesScrollLeft(t *testing.T) {
	g := newTestGame(t, 1)
	g.Press(core.ActionJump)
	g.Spawn()

	g.Step()
	if x := g.pipes.Pairs()[0].X; !approx(x, 358) {
		t.Errorf("pair X after one tick = %v, expected 358", x)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []float64 {
		g := newTestGame(t, 12345)
		g.Press(core.ActionJump)
		for i := 0; i < 5; i++ {
			g.Spawn()
		}
		var gaps []float64
		for _, p := range g.pipes.Pairs() {
			gaps = append(gaps, p.GapTop)
		}
		return gaps
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("gap %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTimers(t *testing.T) {
	g := newTestGame(t, 1)

	timers := g.Timers()
	if len(timers) != 1 {
		t.Fatalf("Timers() = %d, expected 1", len(timers))
	}
	if timers[0].Interval != 1500*time.Millisecond {
		t.Errorf("spawn interval = %v, expected 1.5s", timers[0].Interval)
	}
}

func TestControllerSpawnsOnSchedule(t *testing.T) {
	g := newTestGame(t, 7)
	sched := loop.NewManualScheduler()
	ctrl := loop.NewController(g, sched)
	ctrl.Start()

	// Keep flapping so the bird stays on the board
	for i := 0; i < 6; i++ {
		ctrl.Press(core.ActionJump)
		sched.Advance(250 * time.Millisecond)
	}

	if n := len(g.pipes.Pairs()); n != 1 {
		t.Errorf("pairs after 1.5s = %d, expected 1", n)
	}
	if g.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v, expected %v", g.Phase(), PhaseRunning)
	}

	for i := 0; i < 6; i++ {
		ctrl.Press(core.ActionJump)
		sched.Advance(250 * time.Millisecond)
	}

	if n := len(g.pipes.Pairs()); n != 2 {
		t.Errorf("pairs after 3s = %d, expected 2", n)
	}
	if g.tickCount != 180 {
		t.Errorf("tickCount = %d, expected 180", g.tickCount)
	}
}

func TestStrictVariantRegistration(t *testing.T) {
	g := NewStrict()
	if g.ID() != StrictID {
		t.Errorf("ID() = %q, expected %q", g.ID(), StrictID)
	}
	if !g.cfg.Rules.StrictCeiling {
		t.Error("strict variant does not enable the strict ceiling")
	}
	if New().ID() != ClassicID {
		t.Errorf("New().ID() = %q, expected %q", New().ID(), ClassicID)
	}
}

func TestRenderStates(t *testing.T) {
	rc := core.DefaultConfig()
	rc.Seed = 3
	g := NewWithConfig(config.DefaultFlappyConfig())
	g.Reset(rc)
	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)

	g.Render(screen)
	if !strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("start prompt not rendered")
	}

	g.Press(core.ActionJump)
	g.Spawn()
	g.Step()
	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, BirdChar) {
		t.Error("bird not rendered")
	}
	if !strings.ContainsRune(out, PipeChar) {
		t.Error("pipes not rendered")
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("game over box shown while running")
	}

	g.phase = PhaseGameOver
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box not rendered")
	}
}

func TestRenderRails(t *testing.T) {
	rc := core.DefaultConfig()
	g := NewWithConfig(config.DefaultFlappyConfig())
	g.Reset(rc)
	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	g.Press(core.ActionJump)
	g.Render(screen)

	// 640x384 surface holds a 216x384 board starting at x=212
	if r := screen.Get(25, 0); r != RailChar {
		t.Errorf("left rail = %q, expected %q", r, RailChar)
	}
	if r := screen.Get(54, 0); r != RailChar {
		t.Errorf("right rail = %q, expected %q", r, RailChar)
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, 1)
	g.Press(core.ActionJump)
	g.Spawn()
	g.Spawn()

	snap := g.Snapshot()
	if snap.Phase != PhaseRunning {
		t.Errorf("Phase = %v, expected %v", snap.Phase, PhaseRunning)
	}
	if len(snap.Pipes) != 4 {
		t.Errorf("Pipes = %d, expected 4", len(snap.Pipes))
	}
	if snap.Bird != g.bird.Rect() {
		t.Errorf("Bird = %+v, expected %+v", snap.Bird, g.bird.Rect())
	}
}

func TestUnfittedGameIsInert(t *testing.T) {
	g := NewWithConfig(config.DefaultFlappyConfig())

	snap := g.Snapshot()
	if snap.Phase != PhaseNotStarted || len(snap.Pipes) != 0 {
		t.Errorf("Snapshot() = %+v, expected an empty not-started frame", snap)
	}

	res := g.Press(core.ActionJump)
	if len(res.Cues) != 0 {
		t.Errorf("Press() cues = %v, expected none before Reset", res.Cues)
	}
	if !res.Input {
		t.Error("Press() result not marked as input")
	}

	g.Spawn()
	g.Step()
	if g.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhaseNotStarted)
	}
	if n := len(g.pipes.Pairs()); n != 0 {
		t.Errorf("pairs = %d, expected 0", n)
	}

	screen := core.NewScreen(10, 5)
	g.Render(screen)
}

func TestStepEvictsPairsPastLeftEdge(t *testing.T) {
	g := newTestGame(t, 1)
	g.Press(core.ActionJump)

	// Both gaps cover the bird so neither pair collides
	gone := Pair{X: -81, W: 80, GapTop: 200, Opening: 300, PipeH: 512, Passed: true}
	kept := Pair{X: 1, W: 80, GapTop: 200, Opening: 300, PipeH: 512}
	g.pipes.pairs = append(g.pipes.pairs, gone, kept)

	res := g.Step()
	if res.Input {
		t.Error("Step() result marked as input")
	}
	if res.State.GameOver {
		t.Fatal("Step() ended the run, expected the bird to fly through both gaps")
	}

	pairs := g.pipes.Pairs()
	if len(pairs) != 1 {
		t.Fatalf("pairs after step = %d, expected 1", len(pairs))
	}
	if !approx(pairs[0].X, -1) {
		t.Errorf("kept pair X = %v, expected -1", pairs[0].X)
	}
}
