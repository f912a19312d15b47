package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/platform/session"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Rows reserved below the board for the status line.
const hudHeight = 1

// Options carries the per-session settings of a game model.
type Options struct {
	Player        string      // Name stored with scores
	Logger        *log.Logger // Defaults to a discarding logger
	ScreenshotDir string      // Defaults to ~/.flappy/screenshots
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// GameModel is the Bubble Tea model for one game variant. The simulation is
// driven by a loop.Controller whose tasks arrive as messages in Update.
type GameModel struct {
	game   registry.Game
	ctrl   *loop.Controller
	sched  *teaScheduler
	sess   *session.Tracker
	screen *core.Screen
	config core.RuntimeConfig
	keys   GameKeyMap
	help   help.Model
	logger *log.Logger

	screenshotDir string
	exitOnBack    bool
	quitting      bool
	backToMenu    bool
}

// NewGameModel creates a model for the given game. cfg carries the full
// terminal size; one row is kept for the status line.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.CellW <= 0 || cfg.CellH <= 0 {
		cfg.CellW, cfg.CellH = core.TerminalCellW, core.TerminalCellH
	}
	cfg.ScreenH -= hudHeight

	logger := opts.logger()
	sess := session.New(game.ID(), opts.Player, store, logger)
	sched := newTeaScheduler()

	return GameModel{
		game:          game,
		ctrl:          loop.NewController(game, sched, loop.WithTickRate(cfg.TickRate), loop.WithObserver(sess)),
		sched:         sched,
		sess:          sess,
		screen:        core.NewScreen(max(cfg.ScreenW, 0), max(cfg.ScreenH, 0)),
		config:        cfg,
		keys:          DefaultGameKeyMap(),
		help:          help.New(),
		logger:        logger,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Init resets the game and starts the loop.
func (m GameModel) Init() tea.Cmd {
	if err := m.config.Validate(); err != nil {
		m.logger.Error("cannot start game", "game", m.game.ID(), "error", err)
		return tea.Quit
	}

	m.game.Reset(m.config)
	m.ctrl.Start()
	m.logger.Debug("game initialized",
		"game", m.game.ID(),
		"width", m.config.ScreenW,
		"height", m.config.ScreenH,
		"seed", m.config.Seed,
	)
	return m.sched.Flush()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case taskMsg:
		return m, m.sched.Fire(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.ctrl.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionBack:
		// Leaving mid-run would silently drop the score
		if m.sess.State().Running() {
			return m, nil
		}
		m.ctrl.Stop()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}

	case core.ActionJump:
		if m.ctrl.Active() {
			m.ctrl.Press(core.ActionJump)
		}
	}

	return m, nil
}

// handleResize refits the board. The session returns to the start prompt.
func (m GameModel) handleResize(width, height int) (tea.Model, tea.Cmd) {
	w, h := width, height-hudHeight
	if w == m.config.ScreenW && h == m.config.ScreenH && m.ctrl.Active() {
		return m, nil
	}

	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(max(w, 0), max(h, 0))
	m.ctrl.Stop()

	if err := m.config.Validate(); err != nil {
		m.logger.Warn("terminal too small, game paused", "width", width, "height", height)
		return m, nil
	}

	m.game.Reset(m.config)
	m.sess.Reset()
	m.ctrl.Start()
	m.logger.Debug("resized", "game", m.game.ID(), "width", w, "height", h)

	return m, m.sched.Flush()
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("cannot resolve screenshot directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if m.config.Validate() != nil {
		return "Terminal too small. Resize to continue."
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.hud()
}

// hud renders the status line under the board.
func (m GameModel) hud() string {
	st := m.sess.State()

	scoreStyle := hudScoreStyle
	if m.sess.Flashing() {
		scoreStyle = hudFlashStyle
	}

	parts := []string{
		scoreStyle.Render(fmt.Sprintf(" Score %d ", st.Score)),
		hudStyle.Render(fmt.Sprintf("Best %d", m.sess.Best())),
	}
	if st.GameOver {
		parts = append(parts, hudAlertStyle.Render("GAME OVER"))
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))

	return lipgloss.NewStyle().MaxWidth(m.config.ScreenW).Render(strings.Join(parts, "  "))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the state last reported by the game.
func (m GameModel) State() core.GameState {
	return m.sess.State()
}

// Run starts a Bubble Tea program for a single game. It returns when the
// player quits or leaves the game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	if err := cfg.Validate(); err != nil {
		opts.logger().Error("cannot start game", "game", game.ID(), "error", err)
		return err
	}

	model := NewGameModel(game, store, cfg, opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
