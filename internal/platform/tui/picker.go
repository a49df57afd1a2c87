package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oilbox/internal/core"
)

// ChoiceModel lets the player pick a game's pre-start option, such as the
// oilbox difficulty or the stripsort algorithm.
type ChoiceModel struct {
	gameTitle string
	title     string
	choices   []string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    string
	quitting  bool
	back      bool
}

// NewChoiceModel creates a picker over c's choices.
func NewChoiceModel(gameTitle string, c core.Chooser, width, height int) ChoiceModel {
	return ChoiceModel{
		gameTitle: gameTitle,
		title:     c.ChoiceTitle(),
		choices:   c.Choices(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m ChoiceModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m ChoiceModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.choices) > 0 {
			m.chosen = m.choices[m.cursor]
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the choice list.
func (m ChoiceModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.gameTitle), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Select %s:", strings.ToLower(m.title)), m.width))
	b.WriteString("\n\n")

	for i, c := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+c, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Chosen returns the picked value, or "" while still choosing.
func (m ChoiceModel) Chosen() string {
	return m.chosen
}

// Done reports whether the picker has finished for any reason.
func (m ChoiceModel) Done() bool {
	return m.chosen != "" || m.back || m.quitting
}

// IsQuitting returns true if user wants to quit.
func (m ChoiceModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ChoiceModel) WantsBack() bool {
	return m.back
}

// RunChoice shows the picker for c and applies the selection.
// Returns false when the player backed out or quit.
func RunChoice(gameTitle string, c core.Chooser, cfg core.RuntimeConfig) (bool, error) {
	model := NewChoiceModel(gameTitle, c, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ChoiceModel)
	if !ok || m.Chosen() == "" {
		return false, nil
	}
	if err := c.Choose(m.Chosen()); err != nil {
		return false, err
	}
	return true, nil
}
