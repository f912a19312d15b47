package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for terminal rendering
const (
	BirdChar      = '●'
	BirdBeak      = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	RailChar      = '│'
)

// cellBox is a half-open range of screen cells.
type cellBox struct {
	x0, y0, x1, y1 int
}

func (b cellBox) clip(to cellBox) cellBox {
	return cellBox{
		x0: max(b.x0, to.x0),
		y0: max(b.y0, to.y0),
		x1: min(b.x1, to.x1),
		y1: min(b.y1, to.y1),
	}
}

func (b cellBox) empty() bool {
	return b.x0 >= b.x1 || b.y0 >= b.y1
}

// Render draws the current frame into the screen buffer, projecting the
// board onto cells of the runtime cell size.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	area := g.boardCells()
	if area.empty() {
		return
	}

	// Rails mark the board when the terminal is wider than the aspect allows.
	if area.x0 > 0 {
		dst.DrawVLine(area.x0-1, area.y0, area.y1-area.y0, RailChar, core.ColorGray)
	}
	if area.x1 < dst.Width() {
		dst.DrawVLine(area.x1, area.y0, area.y1-area.y0, RailChar, core.ColorGray)
	}

	for _, p := range g.pipes.Pairs() {
		g.drawPipe(dst, area, p)
	}

	g.drawBird(dst, area)

	dst.DrawTextColored(area.x0+1, area.y0, fmt.Sprintf(" %d ", g.score), core.ColorBrightWhite)

	switch g.phase {
	case PhaseNotStarted:
		g.drawCenteredMessage(dst, area, "FLAPPY BIRD", "Space, Up or X to flap")
	case PhaseGameOver:
		g.drawCenteredMessage(dst, area, "GAME OVER", fmt.Sprintf("Score: %d | Space to restart", g.score))
	}
}

// boardCells returns the cells covered by the board.
func (g *Game) boardCells() cellBox {
	cw, ch := g.runtime.CellSize()
	x0 := int(math.Floor(g.board.OffsetX / cw))
	y0 := int(math.Floor(g.board.OffsetY / ch))
	x1 := int(math.Ceil((g.board.OffsetX + g.board.W) / cw))
	y1 := int(math.Ceil((g.board.OffsetY + g.board.H) / ch))
	return cellBox{x0, y0, x1, y1}
}

// project maps a board rectangle onto the cells it touches, clipped to the board.
func (g *Game) project(r core.Rect, area cellBox) cellBox {
	cw, ch := g.runtime.CellSize()
	x0, y0, x1, y1 := r.Translate(g.board.OffsetX, g.board.OffsetY).CellSpan(cw, ch)
	return cellBox{x0, y0, x1, y1}.clip(area)
}

// drawPipe renders both pipes of a pair with caps facing the opening.
func (g *Game) drawPipe(dst *core.Screen, area cellBox, p Pair) {
	if top := g.project(p.Top(), area); !top.empty() {
		dst.FillRect(top.x0, top.y0, top.x1, top.y1, PipeChar, core.ColorGreen)
		dst.FillRect(top.x0, top.y1-1, top.x1, top.y1, PipeCapTop, core.ColorBrightGreen)
	}
	if bottom := g.project(p.Bottom(), area); !bottom.empty() {
		dst.FillRect(bottom.x0, bottom.y0, bottom.x1, bottom.y1, PipeChar, core.ColorGreen)
		dst.FillRect(bottom.x0, bottom.y0, bottom.x1, bottom.y0+1, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawBird renders the bird with its beak on the top-right cell.
func (g *Game) drawBird(dst *core.Screen, area cellBox) {
	b := g.project(g.bird.Rect(), area)
	if b.empty() {
		return
	}
	dst.FillRect(b.x0, b.y0, b.x1, b.y1, BirdChar, core.ColorBrightYellow)
	dst.SetColored(b.x1-1, b.y0, BirdBeak, core.ColorOrange)
}

// drawCenteredMessage draws a message box in the center of the board.
func (g *Game) drawCenteredMessage(dst *core.Screen, area cellBox, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))

	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := area.x0 + (area.x1-area.x0-boxW)/2
	boxY := area.y0 + (area.y1-area.y0-boxH)/2

	dst.FillRect(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextColored(boxX+(boxW-sw)/2, boxY+3, subtitle, core.ColorWhite)
}
