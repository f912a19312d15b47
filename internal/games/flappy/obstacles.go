package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pair is a top/bottom pipe pair sharing one column and a fixed opening.
type Pair struct {
	X       float64 // Left edge of both pipes
	W       float64 // Pipe width
	GapTop  float64 // Y where the opening starts
	Opening float64 // Height of the opening
	PipeH   float64 // Height of each pipe
	Passed  bool    // Whether the bird has passed this pair (for scoring)
}

// Top returns the collision rectangle of the upper pipe.
func (p Pair) Top() core.Rect {
	return core.NewRect(p.X, p.GapTop-p.PipeH, p.W, p.PipeH)
}

// Bottom returns the collision rectangle of the lower pipe.
func (p Pair) Bottom() core.Rect {
	return core.NewRect(p.X, p.GapTop+p.Opening, p.W, p.PipeH)
}

// Trailing returns the x-coordinate of the pair's right edge.
func (p Pair) Trailing() float64 {
	return p.X + p.W
}

// PipeManager handles spawning, movement, scoring and removal of pipe pairs.
// Pairs are kept in spawn order, which is also left-to-right and draw order.
type PipeManager struct {
	pairs  []Pair
	rng    *rand.Rand
	params Params
	board  Board
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
func NewPipeManager(seed int64, p Params, b Board) *PipeManager {
	pm := &PipeManager{
		pairs:  make([]Pair, 0, 8),
		params: p,
		board:  b,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pairs and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.Clear()
	pm.rng = rand.New(rand.NewSource(seed))
}

// Clear removes all pairs but keeps the RNG sequence going.
func (pm *PipeManager) Clear() {
	pm.pairs = pm.pairs[:0]
}

// GapRange returns the bounds of the opening's top edge. The opening never
// comes closer than the edge margin to the top or bottom of the board.
func (pm *PipeManager) GapRange() (lo, hi float64) {
	p := pm.params

	lo = p.PipeH / 4
	hi = p.PipeH * 3 / 4

	minTop := p.EdgeMargin
	maxTop := pm.board.H - p.EdgeMargin - p.Opening
	if maxTop < minTop {
		maxTop = minTop // Edge case for very small boards
	}

	lo = core.ClampF(lo, minTop, maxTop)
	hi = core.ClampF(hi, minTop, maxTop)
	return lo, hi
}

// Spawn appends a new pair at the right edge of the board.
func (pm *PipeManager) Spawn() Pair {
	lo, hi := pm.GapRange()

	pair := Pair{
		X:       pm.board.W,
		W:       pm.params.PipeW,
		GapTop:  lo + pm.rng.Float64()*(hi-lo),
		Opening: pm.params.Opening,
		PipeH:   pm.params.PipeH,
	}
	pm.pairs = append(pm.pairs, pair)
	return pair
}

// Advance moves every pair horizontally by dx.
func (pm *PipeManager) Advance(dx float64) {
	for i := range pm.pairs {
		pm.pairs[i].X += dx
	}
}

// MarkPassed flags pairs whose trailing edge is behind birdX and returns how
// many were newly passed. A pair is only ever counted once.
func (pm *PipeManager) MarkPassed(birdX float64) int {
	passed := 0
	for i := range pm.pairs {
		if !pm.pairs[i].Passed && birdX > pm.pairs[i].Trailing() {
			pm.pairs[i].Passed = true
			passed++
		}
	}
	return passed
}

// CheckCollision tests if the given rectangle overlaps any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	for _, p := range pm.pairs {
		if r.Intersects(p.Top()) || r.Intersects(p.Bottom()) {
			return true
		}
	}
	return false
}

// Evict removes pairs that have scrolled fully past the left edge and
// returns how many were removed.
func (pm *PipeManager) Evict() int {
	kept := pm.pairs[:0]
	for _, p := range pm.pairs {
		if p.Trailing() >= 0 {
			kept = append(kept, p)
		}
	}
	removed := len(pm.pairs) - len(kept)
	pm.pairs = kept
	return removed
}

// Pairs returns the current pairs. The slice must not be modified.
func (pm *PipeManager) Pairs() []Pair {
	return pm.pairs
}
