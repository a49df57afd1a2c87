package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oilbox/internal/registry"
	"github.com/vovakirdan/oilbox/internal/storage"
)

const (
	maxScores = 100
	maxRuns   = 50
	runIDLen  = 8
)

var (
	scoreColumns = []table.Column{
		{Title: "#", Width: 4},
		{Title: "Streak", Width: 8},
		{Title: "Date", Width: 17},
	}
	runColumns = []table.Column{
		{Title: "Run", Width: runIDLen + 1},
		{Title: "Algorithm", Width: 10},
		{Title: "Strips", Width: 7},
		{Title: "Steps", Width: 7},
		{Title: "Status", Width: 8},
	}
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = boardDimStyle.Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	boardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTableStyles = func() table.Styles {
		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
		return s
	}()
)

// scoreTab is one page of the scoreboard: a toy's streaks or the log of
// sorts streamed over HTTP.
type scoreTab struct {
	id    string
	title string
	runs  bool
}

func scoreTabs() []scoreTab {
	var tabs []scoreTab
	for _, g := range registry.List() {
		tabs = append(tabs, scoreTab{id: g.ID, title: g.Title})
	}
	return append(tabs, scoreTab{id: "runs", title: "Sort runs", runs: true})
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows recorded streaks per toy and the recent sort runs.
type ScoreboardModel struct {
	tabs    []scoreTab
	current int
	store   *storage.Store

	table   table.Model
	rows    int
	summary string
	empty   string

	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first toy.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		tabs:   scoreTabs(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m *ScoreboardModel) tableHeight() int {
	return max(m.height-9, 3)
}

// load reads the current tab from the store and rebuilds the table.
func (m *ScoreboardModel) load() {
	tab := m.tabs[m.current]
	m.summary = ""

	cols := scoreColumns
	var rows []table.Row
	if tab.runs {
		cols = runColumns
		rows = m.runRows()
		m.empty = "No sort runs yet.\nStream one with oilbox web."
	} else {
		rows = m.scoreRows(tab.id)
		m.empty = "No streaks recorded yet.\nClear a few mazes in a row to set one."
	}

	m.rows = len(rows)
	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	m.table.SetStyles(boardTableStyles)
}

func (m *ScoreboardModel) scoreRows(gameID string) []table.Row {
	if m.store == nil {
		return nil
	}
	if stats, err := m.store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		m.summary = fmt.Sprintf("%d streaks  best %d  avg %.1f", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	scores, err := m.store.TopScores(gameID, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			s.CreatedAt.Local().Format(storage.ScoreDateFormat + " 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) runRows() []table.Row {
	if m.store == nil {
		return nil
	}
	runs, err := m.store.RecentSortRuns("", maxRuns)
	if err != nil {
		return nil
	}

	sorted := 0
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		if r.Status == storage.RunSorted {
			sorted++
		}
		id := r.RunID
		if len(id) > runIDLen {
			id = id[:runIDLen]
		}
		rows[i] = table.Row{id, r.Algorithm, strconv.Itoa(r.Segments), strconv.Itoa(r.Steps), r.Status}
	}
	if len(runs) > 0 {
		m.summary = fmt.Sprintf("%d runs  %d sorted", len(runs), sorted)
	}
	return rows
}

func (m *ScoreboardModel) switchTab(dir int) {
	n := len(m.tabs)
	m.current = (m.current + dir + n) % n
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// tabLine lists every tab, or only the current one when they do not fit.
func (m ScoreboardModel) tabLine() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.current {
			parts[i] = boardActiveTab.Render(t.title)
		} else {
			parts[i] = boardTabStyle.Render(t.title)
		}
	}
	line := strings.Join(parts, " ")
	if m.width > 0 && lipgloss.Width(line) > m.width-2 {
		line = boardActiveTab.Render("< " + m.tabs[m.current].title + " >")
	}
	return line
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(boardTitleStyle.Render("SCORES")))
	b.WriteString("\n\n")
	b.WriteString(m.center(m.tabLine()))
	b.WriteString("\n")
	b.WriteString(m.center(boardDimStyle.Render(m.summary)))
	b.WriteString("\n")

	body := m.table.View()
	if m.rows == 0 {
		body = boardDimStyle.Italic(true).Padding(1, 2).Render(m.empty)
	}
	b.WriteString(m.center(boardBoxStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))

	return b.String()
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
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

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
