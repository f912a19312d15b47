//go:build ebiten

package gui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/platform/session"
)

var (
	colorBackdrop = color.RGBA{R: 20, G: 20, B: 28, A: 255}
	colorSky      = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	colorPipe     = color.RGBA{R: 84, G: 170, B: 56, A: 255}
	colorPipeCap  = color.RGBA{R: 58, G: 128, B: 36, A: 255}
	colorBird     = color.RGBA{R: 250, G: 208, B: 40, A: 255}
	colorBeak     = color.RGBA{R: 240, G: 120, B: 30, A: 255}
	colorWing     = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	colorShade    = color.RGBA{A: 140}
)

// window adapts a game and its controller to the ebiten.Game interface.
// Ebitengine calls Update at a fixed rate, so each call advances a virtual
// clock by one frame and the game's timers stay in step with the ticks.
type window struct {
	game    Game
	sched   *loop.ManualScheduler
	ctrl    *loop.Controller
	tracker *session.Tracker
	sounds  *sounds
	logger  *log.Logger

	frame         time.Duration
	seed          int64
	width, height int
}

func newWindow(game Game, opts Options) *window {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &window{
		game:    game,
		sched:   loop.NewManualScheduler(),
		tracker: session.New(game.ID(), opts.Player, opts.Store, logger),
		sounds:  newSounds(opts.Audio, logger),
		logger:  logger,
		frame:   time.Second / time.Duration(opts.TickRate),
		seed:    opts.Seed,
	}
	w.ctrl = loop.NewController(game, w.sched,
		loop.WithTickRate(opts.TickRate),
		loop.WithObserver(loop.ObserverFunc(w.onStep)),
	)
	return w
}

func (w *window) onStep(res core.StepResult) {
	w.tracker.OnStep(res)
	for _, c := range res.Cues {
		w.sounds.play(c)
	}
}

// resize refits the board and returns to the start prompt.
func (w *window) resize(width, height int) {
	w.width, w.height = width, height
	w.ctrl.Stop()

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		CellW:   1,
		CellH:   1,
		Seed:    w.seed,
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("window has no drawing surface", "error", err)
		return
	}

	w.game.Reset(cfg)
	w.tracker.Reset()
	w.ctrl.Start()
	w.logger.Debug("resized", "width", width, "height", height)
}

// Update handles input and advances the virtual clock by one frame.
func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if w.ctrl.Active() && jumpPressed() {
		w.ctrl.Press(core.ActionJump)
	}

	w.sched.Advance(w.frame)
	return nil
}

func jumpPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyX) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Draw renders the board, pipes, bird and status text.
func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackdrop)

	snap := w.game.Snapshot()
	b := snap.Board
	if b.W <= 0 || b.H <= 0 {
		return
	}

	fillRect(screen, b, core.NewRect(0, 0, b.W, b.H), colorSky)

	capH := 24 * b.Scale
	for i, r := range snap.Pipes {
		fillRect(screen, b, r, colorPipe)
		// Pipes alternate top, bottom; caps face the opening
		if i%2 == 0 {
			fillRect(screen, b, core.NewRect(r.X-2*b.Scale, r.Bottom()-capH, r.W+4*b.Scale, capH), colorPipeCap)
		} else {
			fillRect(screen, b, core.NewRect(r.X-2*b.Scale, r.Y, r.W+4*b.Scale, capH), colorPipeCap)
		}
	}

	fillRect(screen, b, snap.Bird, colorBird)
	beak := core.NewRect(snap.Bird.Right()-snap.Bird.W/4, snap.Bird.Y+snap.Bird.H/3, snap.Bird.W/3, snap.Bird.H/4)
	fillRect(screen, b, beak, colorBeak)
	fillRect(screen, b, wing(snap), colorWing)

	// Cover anything that scrolled outside the board
	if b.OffsetX > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(b.OffsetX), float32(w.height), colorBackdrop, false)
		vector.DrawFilledRect(screen, float32(b.OffsetX+b.W), 0, float32(b.OffsetX)+1, float32(w.height), colorBackdrop, false)
	}

	x, y := int(b.OffsetX)+8, int(b.OffsetY)+8
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d  Best %d", snap.Score, w.tracker.Best()), x, y)

	switch snap.Phase {
	case flappy.PhaseNotStarted:
		w.drawMessage(screen, b, "FLAPPY BIRD", "Space, Up, X or click to flap")
	case flappy.PhaseGameOver:
		w.drawMessage(screen, b, "GAME OVER", fmt.Sprintf("Score %d - flap to restart", snap.Score))
	}
}

func (w *window) drawMessage(screen *ebiten.Image, b flappy.Board, title, subtitle string) {
	const lineH = 16
	boxH := 4 * lineH
	y := int(b.OffsetY + b.H/2 - float64(boxH)/2)

	vector.DrawFilledRect(screen, float32(b.OffsetX), float32(y), float32(b.W), float32(boxH), colorShade, false)
	ebitenutil.DebugPrintAt(screen, title, centeredX(b, title), y+lineH/2)
	ebitenutil.DebugPrintAt(screen, subtitle, centeredX(b, subtitle), y+2*lineH)
}

// centeredX positions debug text (6px glyphs) in the middle of the board.
func centeredX(b flappy.Board, text string) int {
	return int(b.OffsetX + b.W/2 - float64(len(text)*6)/2)
}

func fillRect(screen *ebiten.Image, b flappy.Board, r core.Rect, c color.Color) {
	r = r.Translate(b.OffsetX, b.OffsetY)
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// Layout uses the window size as the surface and refits on change.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(game Game, opts Options) error {
	opts = opts.withDefaults()
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	w := newWindow(game, opts)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	w.ctrl.Stop()
	return nil
}
