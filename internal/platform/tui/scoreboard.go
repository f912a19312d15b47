package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// scoreLimit caps the rows loaded per view.
const scoreLimit = 50

// scoreView is what the scoreboard lists for the current variant.
type scoreView int

const (
	viewRuns    scoreView = iota // Best single runs
	viewPlayers                  // Best run per player
)

func (v scoreView) String() string {
	if v == viewPlayers {
		return "Best per player"
	}
	return "Best runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	View    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Variant, k.View, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Variant, k.View},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Variant: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "variant"),
		),
		View: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "runs/players"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	sbTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbEmptyStyle    = sbMutedStyle.Italic(true).Padding(2, 4)
	sbBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardModel shows the scores of one variant at a time, either as the
// best runs or as each player's best.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	view     scoreView

	store *storage.Store
	stats *storage.GameStats
	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap
	err   error // Last load error, shown instead of the table

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard for the first registered variant.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.reload()
	return m
}

// variantID returns the variant being shown, or "" if none is registered.
func (m ScoreboardModel) variantID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// reload rebuilds the table for the current variant, view and size.
func (m *ScoreboardModel) reload() {
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, toggle, stats, borders, help
	)
	m.table.SetStyles(scoreTableStyles())

	m.err = nil
	m.stats = nil
	id := m.variantID()
	if m.store == nil || id == "" {
		return
	}

	rows, err := m.loadRows(id)
	if err != nil {
		m.err = err
		return
	}
	m.table.SetRows(rows)

	stats, err := m.store.GetGameStats(id)
	if err != nil {
		m.err = err
		return
	}
	m.stats = stats
}

// columns sizes the player column to the terminal.
func (m ScoreboardModel) columns() []table.Column {
	playerW := min(max(m.width-40, 10), 24)

	if m.view == viewPlayers {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: playerW},
			{Title: "Best", Width: 8},
			{Title: "Runs", Width: 6},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: playerW},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}
}

func (m ScoreboardModel) loadRows(gameID string) ([]table.Row, error) {
	if m.view == viewPlayers {
		records, err := m.store.PlayerBests(gameID, scoreLimit)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(records))
		for i, r := range records {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), r.Player, fmt.Sprint(r.Best), fmt.Sprint(r.Runs)}
		}
		return rows, nil
	}

	scores, err := m.store.TopScores(gameID, scoreLimit)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), s.Player, fmt.Sprint(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	return rows, nil
}

func scoreTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Variant):
			if len(m.variants) > 1 {
				m.current = (m.current + 1) % len(m.variants)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.View):
			if m.view == viewRuns {
				m.view = viewPlayers
			} else {
				m.view = viewRuns
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(sbTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderVariants(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(sbMutedStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, sbBoxStyle.Render(m.renderTable())))
	b.WriteString("\n")
	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderVariants draws the variant toggle with the current one highlighted.
func (m ScoreboardModel) renderVariants() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = sbActiveStyle.Render(v.Title)
		} else {
			tabs[i] = sbInactiveStyle.Render(v.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// summary describes the view and the variant's totals.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return m.view.String()
	}
	return fmt.Sprintf("%s  |  %d runs, best %d, average %.1f, last played %s",
		m.view, m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderTable renders the table or a message in its place.
func (m ScoreboardModel) renderTable() string {
	switch {
	case m.err != nil:
		return hudAlertStyle.Padding(2, 4).Render("Could not load scores: " + m.err.Error())
	case m.store == nil:
		return sbEmptyStyle.Render("Scores are not available in this session.")
	case len(m.table.Rows()) == 0:
		return sbEmptyStyle.Render("No scores recorded yet.\nFlap through a few pipes to set one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
