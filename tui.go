package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mockzork/zork"
)

const maxSuggestions = 12

var (
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)
)

type tuiModel struct {
	game      *zork.Game
	logger    *zap.Logger
	state     zork.GameState
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	width     int
	height    int
	ready     bool
}

func newTUIModel(game *zork.Game, logger *zap.Logger) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := tuiModel{
		game:      game,
		logger:    logger,
		textInput: ti,
	}
	m.state = game.Reset()
	m.gameLog = m.state.Observation + "\n\n"
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) logWidth() int {
	return int(float64(m.width) * 0.70)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			action := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()

			switch action {
			case "/quit":
				return m, tea.Quit
			case "/reset":
				m.logger.Info("player reset", zap.String("game", m.game.ID()))
				m.state = m.game.Reset()
				m.gameLog = narrationStyle.Width(m.logWidth()).Render(m.state.Observation) + "\n\n"
				m.refresh()
				return m, nil
			}
			if action == "" || m.state.Done {
				return m, nil
			}

			m.gameLog += commandStyle.Width(m.logWidth()).Render("> "+action) + "\n\n"
			m.state = m.game.Step(action)
			m.gameLog += narrationStyle.Width(m.logWidth()).Render(m.state.Observation) + "\n\n"
			if m.state.Done {
				m.gameLog += gameOverStyle.Render(fmt.Sprintf("Game over. Final score: %d. Type /reset to play again.", m.state.Score)) + "\n\n"
			}
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.refresh()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *tuiModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m tuiModel) View() string {
	if !m.ready {
		return "\n  Loading...\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderStatus(),
	)
	help := helpStyle.Render("Commands: /reset, /quit, or type 'help' for game commands.")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	) + "\n"
}

func (m tuiModel) renderStatus() string {
	st := m.state

	var b strings.Builder
	b.WriteString(titleStyle.Render("LOCATION") + "\n" + locationTitle(st.Location) + "\n\n")
	b.WriteString(titleStyle.Render("SCORE") + "\n")
	fmt.Fprintf(&b, "Score: %d\nMoves: %d\n\n", st.Score, st.Moves)

	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(st.Inventory) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, item := range st.Inventory {
		b.WriteString("- " + item + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("TRY") + "\n")
	actions := st.ValidActions
	if len(actions) > maxSuggestions {
		actions = actions[:maxSuggestions]
	}
	for _, a := range actions {
		b.WriteString(a + "\n")
	}

	width := int(float64(m.width) * 0.28)
	return statusStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

func locationTitle(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// runTUI plays the game in a full-screen terminal UI.
func runTUI(game *zork.Game, logger *zap.Logger) error {
	p := tea.NewProgram(newTUIModel(game, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
