package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/last-survivor/internal/engine"
	"github.com/tatianab/last-survivor/internal/models"
)

type sessionState int

const (
	stateTitle sessionState = iota
	stateLoading
	statePlaying
	stateGameOver
)

type model struct {
	state     sessionState
	session   *engine.Session
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	gameLog   string
	width     int
	height    int
	lastCue   models.SoundCue
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F1F1F")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C1C1C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DC2626")).
			Bold(true).
			Underline(true)

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF3333")).
			Bold(true)
)

func NewModel(session *engine.Session) model {
	ti := textinput.New()
	ti.Placeholder = "Что ты делаешь?"
	ti.CharLimit = 256
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Pulse

	return model{
		state:     stateTitle,
		session:   session,
		textInput: ti,
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type turnProcessedMsg struct {
	result models.TurnResult
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateTitle:
				m.state = stateLoading
				m.textInput.Focus()
				return m, tea.Batch(m.spinner.Tick, m.startGame())

			case statePlaying:
				action := strings.TrimSpace(m.textInput.Value())
				if action == "" {
					return m, nil
				}
				m.textInput.Reset()
				if action == "/quit" {
					return m, tea.Quit
				}

				styledAction := userStyle.Width(m.logWidth()).Render("> " + action)
				m.gameLog += "\n\n" + styledAction + "\n\n"
				m.viewport.SetContent(m.gameLog)
				m.viewport.GotoBottom()
				m.state = stateLoading
				return m, tea.Batch(m.spinner.Tick, m.processTurn(action))

			case stateGameOver:
				if strings.TrimSpace(m.textInput.Value()) == "/quit" {
					return m, tea.Quit
				}
				m.textInput.Reset()
				return m, nil
			}
			// Enter while a turn is loading is ignored.
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnProcessedMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.gameLog += systemStyle.Render("СБОЙ СИСТЕМЫ: "+msg.err.Error()) + "\n\n"
		} else {
			m.appendTurn(msg.result)
			if msg.result.State.IsGameOver {
				m.state = stateGameOver
				m.lastCue = models.SoundAlarm
				m.gameLog += criticalStyle.Render("СИГНАЛ ПОТЕРЯН. ИГРА ОКОНЧЕНА.") + "\n\n"
				m.textInput.Placeholder = "/quit"
			}
		}
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()
		return m, nil
	}

	if m.state == statePlaying || m.state == stateGameOver {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) appendTurn(r models.TurnResult) {
	style := gameStyle
	if r.Degraded {
		style = systemStyle
	}
	m.gameLog += style.Width(m.logWidth()).Render(r.Story) + "\n"
	m.lastCue = r.SoundCue
	if r.SoundCue != models.SoundNone && r.SoundCue != "" {
		m.gameLog += helpStyle.Render(fmt.Sprintf("[♪ %s]", r.SoundCue)) + "\n"
	}
	if r.HasImage() {
		ref := r.ImageRef
		if strings.HasPrefix(ref, "data:") {
			ref = fmt.Sprintf("inline image, %d KB", len(r.Image)/1024)
		}
		m.gameLog += helpStyle.Render("[IMG] "+ref) + "\n"
	}
	m.gameLog += "\n"
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateTitle:
		s = fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("LAST SURVIVOR: RED GIANT"),
			"03:00 AM. Жара усиливается. Красный гигант скоро взойдет.\nСобери ресурсы до рассвета.",
			helpStyle.Render("[ Enter: начать историю ]"),
		)

	case stateLoading, statePlaying, stateGameOver:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		input := m.textInput.View()
		if m.state == stateLoading {
			input = m.spinner.View() + " Обработка..."
		}
		help := helpStyle.Render("Команды: /quit, или просто напиши, что делаешь.")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+input,
			"\n"+help,
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	state := m.session.State()

	location := titleStyle.Render("LOCATION") + "\n" + state.Location + "\n\n"

	statsTitle := titleStyle.Render("VITALS") + "\n"
	stats := ""
	for _, stat := range []struct {
		name  string
		value float64
	}{
		{"HP", state.Health},
		{"O2", state.Oxygen},
		{"FOOD", state.Hunger},
		{"H2O", state.Thirst},
	} {
		line := fmt.Sprintf("%-5s %3.0f", stat.name, stat.value)
		if stat.value < 30 {
			line = criticalStyle.Render(line)
		}
		stats += line + "\n"
	}
	temp := fmt.Sprintf("TEMP  %3.0f°C", state.Temperature)
	if state.Temperature >= 50 {
		temp = criticalStyle.Render(temp)
	}
	stats += temp + "\n"
	stats += fmt.Sprintf("TIME  %s\nPHASE %s\n", state.Time, state.GamePhase)
	if m.lastCue != "" {
		stats += fmt.Sprintf("SOUND %s\n", m.lastCue)
	}
	stats += "\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(state.Inventory) == 0 {
		inventory = "(empty)\n"
	} else {
		for _, item := range state.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	memTitle := "\n" + titleStyle.Render("MEMORY") + "\n"
	memory := ""
	for _, fact := range state.KnowledgeBase {
		memory += "· " + fact + "\n"
	}

	content := location + statsTitle + stats + invTitle + inventory + memTitle + memory

	stateWidth := int(float64(m.width) * 0.28)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.7)
}

func (m model) startGame() tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Start(context.Background())
		return turnProcessedMsg{result: result, err: err}
	}
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Play(context.Background(), action)
		return turnProcessedMsg{result: result, err: err}
	}
}

func Run(session *engine.Session) error {
	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
