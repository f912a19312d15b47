package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestPipes(seed int64) *PipeManager {
	b := FitBoard(BaseWidth, BaseHeight)
	return NewPipeManager(seed, NewParams(config.DefaultFlappyConfig(), b), b)
}

func TestPairGeometry(t *testing.T) {
	p := Pair{X: 100, W: 80, GapTop: 200, Opening: 150, PipeH: 512}

	if got, want := p.Top(), core.NewRect(100, -312, 80, 512); got != want {
		t.Errorf("Top() = %+v, expected %+v", got, want)
	}
	if got, want := p.Bottom(), core.NewRect(100, 350, 80, 512); got != want {
		t.Errorf("Bottom() = %+v, expected %+v", got, want)
	}
	if p.Trailing() != 180 {
		t.Errorf("Trailing() = %v, expected 180", p.Trailing())
	}
	// The opening is exactly the space between the pipes
	if p.Bottom().Y-p.Top().Bottom() != p.Opening {
		t.Errorf("opening = %v, expected %v", p.Bottom().Y-p.Top().Bottom(), p.Opening)
	}
}

func TestGapRange(t *testing.T) {
	pm := newTestPipes(1)

	lo, hi := pm.GapRange()
	if lo != 128 || hi != 384 {
		t.Errorf("GapRange() = (%v, %v), expected (128, 384)", lo, hi)
	}
}

func TestGapRangeRespectsMargins(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.OpeningRatio = 1.5 // Opening is two thirds of the board
	b := FitBoard(BaseWidth, BaseHeight)
	pm := NewPipeManager(1, NewParams(cfg, b), b)

	lo, hi := pm.GapRange()
	maxTop := b.H - pm.params.EdgeMargin - pm.params.Opening
	if hi > maxTop+epsilon {
		t.Errorf("hi = %v, expected <= %v", hi, maxTop)
	}
	if lo < pm.params.EdgeMargin {
		t.Errorf("lo = %v, expected >= %v", lo, pm.params.EdgeMargin)
	}
}

func TestSpawnWithinBounds(t *testing.T) {
	pm := newTestPipes(42)
	lo, hi := pm.GapRange()

	for i := 0; i < 1000; i++ {
		p := pm.Spawn()
		if p.GapTop < lo || p.GapTop > hi {
			t.Fatalf("GapTop = %v, expected within [%v, %v]", p.GapTop, lo, hi)
		}
		if p.X != 360 {
			t.Fatalf("X = %v, expected spawn at right edge 360", p.X)
		}
		if p.W != 80 || p.PipeH != 512 {
			t.Fatalf("pipe size = %vx%v, expected 80x512", p.W, p.PipeH)
		}
		if !approx(p.Opening, 640/3.5) {
			t.Fatalf("Opening = %v, expected %v", p.Opening, 640/3.5)
		}
		pm.Clear()
	}
}

func TestResetReseeds(t *testing.T) {
	pm := newTestPipes(9)
	first := pm.Spawn().GapTop

	pm.Reset(9)
	if len(pm.Pairs()) != 0 {
		t.Errorf("pairs after Reset = %d, expected 0", len(pm.Pairs()))
	}
	if again := pm.Spawn().GapTop; again != first {
		t.Errorf("GapTop after reseed = %v, expected %v", again, first)
	}
}

func TestAdvance(t *testing.T) {
	pm := newTestPipes(1)
	pm.Spawn()
	pm.Spawn()

	pm.Advance(-2)
	for i, p := range pm.Pairs() {
		if p.X != 358 {
			t.Errorf("pair %d X = %v, expected 358", i, p.X)
		}
	}
}

func TestMarkPassed(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		birdX float64
		want  int
	}{
		{"ahead of bird", 100, 45, 0},
		{"overlapping bird", 0, 45, 0},
		{"trailing edge equals bird", -35, 45, 0},
		{"fully behind bird", -36, 45, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := newTestPipes(1)
			pm.pairs = append(pm.pairs, Pair{X: tt.x, W: 80})

			if got := pm.MarkPassed(tt.birdX); got != tt.want {
				t.Errorf("MarkPassed() = %d, expected %d", got, tt.want)
			}
			if got := pm.MarkPassed(tt.birdX); got != 0 {
				t.Errorf("second MarkPassed() = %d, expected 0", got)
			}
		})
	}
}

func TestCheckCollision(t *testing.T) {
	pm := newTestPipes(1)
	pm.pairs = append(pm.pairs, Pair{X: 100, W: 80, GapTop: 200, Opening: 150, PipeH: 512})

	tests := []struct {
		name string
		r    core.Rect
		want bool
	}{
		{"inside opening", core.NewRect(120, 250, 40, 57), false},
		{"hits top pipe", core.NewRect(120, 180, 40, 57), true},
		{"hits bottom pipe", core.NewRect(120, 300, 40, 57), true},
		{"left of pair", core.NewRect(20, 0, 40, 57), false},
		{"touching left edge", core.NewRect(60, 0, 40, 57), false},
		{"touching top pipe from below", core.NewRect(120, 200, 40, 57), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pm.CheckCollision(tt.r); got != tt.want {
				t.Errorf("CheckCollision(%+v) = %v, expected %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestEvict(t *testing.T) {
	pm := newTestPipes(1)
	pm.pairs = append(pm.pairs,
		Pair{X: -81, W: 80}, // trailing edge -1
		Pair{X: -80, W: 80}, // trailing edge 0
		Pair{X: 1, W: 80},
	)

	if removed := pm.Evict(); removed != 1 {
		t.Errorf("Evict() = %d, expected 1", removed)
	}

	pairs := pm.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, expected 2", len(pairs))
	}
	if pairs[0].X != -80 || pairs[1].X != 1 {
		t.Errorf("kept pairs at %v and %v, expected -80 and 1", pairs[0].X, pairs[1].X)
	}
}
