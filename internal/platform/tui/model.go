package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/registry"
	"github.com/vovakirdan/oilbox/internal/storage"
)

// scoreTableSize is how many records a ScoreLoader game gets at start.
const scoreTableSize = 10

// session drives one game instance: reset, fixed ticks, score persistence
// and resizes. Both the local Model and the SSH GameModel wrap one.
type session struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	input  core.InputFrame
	state  core.GameState
	keys   *KeyMapper
}

func newSession(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) *session {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return &session{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		input:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
	}
}

// start hands persisted records to games that show them, then resets.
func (s *session) start() {
	if loader, ok := s.game.(core.ScoreLoader); ok && s.store != nil {
		if records, err := s.store.TopRecords(s.game.ID(), scoreTableSize); err == nil {
			loader.LoadScores(records)
		}
	}
	s.game.Reset(s.config)
	s.state = s.game.State()
}

// resize follows the terminal. Games that cannot resize in place restart.
func (s *session) resize(w, h int) {
	s.config.ScreenW = w
	s.config.ScreenH = h
	s.screen.Resize(w, h)

	if r, ok := s.game.(core.Resizable); ok {
		r.Resize(w, h)
		return
	}
	s.game.Reset(s.config)
}

// handleKey records the action for the next tick. Returns true on quit.
func (s *session) handleKey(msg tea.KeyMsg) bool {
	return s.keys.MapKeyToFrame(msg, &s.input)
}

func (s *session) tick() {
	result := s.game.Step(s.input)
	s.state = result.State

	if s.store != nil {
		for _, score := range result.Scores {
			//nolint:errcheck // Best-effort save, game continues regardless
			s.store.SaveScore(s.game.ID(), score)
		}
	}

	s.input.Clear()
}

func (s *session) view() string {
	s.screen.Clear()
	s.game.Render(s.screen)
	return RenderScreen(s.screen)
}

func (s *session) close() {
	if c, ok := s.game.(io.Closer); ok {
		c.Close() //nolint:errcheck
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.oilbox/screenshots and returns the file path.
func (s *session) saveScreenshot() (string, error) {
	s.screen.Clear()
	s.game.Render(s.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".oilbox", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", s.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(s.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// Model is the Bubble Tea model for playing one game locally.
type Model struct {
	s        *session
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{s: newSession(game, store, cfg)}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.s.start()
	return tickCmd(m.s.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.s.saveScreenshot() //nolint:errcheck // Best-effort save
			return m, nil
		}
		if m.s.handleKey(msg) {
			m.quitting = true
			m.s.close()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.s.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.s.tick()
		return m, tickCmd(m.s.config.TickRate)
	}

	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.s.view()
}

// State returns the last state the game reported.
func (m Model) State() core.GameState {
	return m.s.state
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
