package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"pubmed-chat/internal/askapi"
	"pubmed-chat/internal/config"
	"pubmed-chat/internal/session"
	"pubmed-chat/internal/terminal"
)

// infoPanel selects which side panel is visible above the input
type infoPanel int

const (
	panelNone infoPanel = iota
	panelMetrics
	panelFeatures
)

// turnSettledMsg signals that the outstanding request has settled
type turnSettledMsg struct{}

// Model is the bubbletea model for the chat view
type Model struct {
	ctrl  *session.Controller
	asker session.Asker
	cfg   *config.Config

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	history   []string
	histIndex int

	panel  infoPanel
	status string
	width  int
	height int
	ready  bool
}

// NewModel creates the chat TUI around a session controller
func NewModel(ctrl *session.Controller, asker session.Asker, cfg *config.Config) Model {
	in := textinput.New()
	in.Placeholder = "Ask about diabetes research..."
	in.Prompt = "❯ "
	in.CharLimit = 0
	in.Width = 60
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	h := terminal.LoadInputHistory(cfg.InputHistoryPath, cfg.MaxInputHistory)

	return Model{
		ctrl:      ctrl,
		asker:     asker,
		cfg:       cfg,
		input:     in,
		spin:      s,
		history:   h,
		histIndex: len(h),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(msg.Width-4, 10)

		vpHeight := maxInt(msg.Height-6, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}

		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(maxInt(msg.Width-8, 20)),
		)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+t":
			m.toggleModel()
			return m, nil

		case "ctrl+y":
			m.copyLastAnswer()
			return m, nil

		case "up":
			if m.histIndex > 0 {
				m.histIndex--
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil

		case "enter":
			return m.handleEnter()
		}

	case turnSettledMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleEnter routes slash commands and submits questions
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/exit", "/quit", "exit", "quit":
		return m, tea.Quit
	case "/clear":
		// A cleared conversation is a fresh session
		m.ctrl = session.NewController(m.asker, m.ctrl.Snapshot().Model)
		m.input.SetValue("")
		m.panel = panelNone
		m.status = ""
		m.refreshTranscript()
		return m, nil
	case "/metrics":
		m.togglePanel(panelMetrics)
		m.input.SetValue("")
		return m, nil
	case "/features":
		m.togglePanel(panelFeatures)
		m.input.SetValue("")
		return m, nil
	case "/model":
		m.toggleModel()
		m.input.SetValue("")
		return m, nil
	}

	m.ctrl.SetDraft(text)
	if !m.ctrl.Submit() {
		return m, nil
	}

	if err := terminal.AppendInputHistory(m.cfg.InputHistoryPath, text); err == nil {
		m.history = append(m.history, text)
	}
	m.histIndex = len(m.history)

	m.input.SetValue("")
	m.status = ""
	m.refreshTranscript()
	m.viewport.GotoBottom()

	ctrl := m.ctrl
	resolve := func() tea.Msg {
		ctrl.Resolve(context.Background())
		return turnSettledMsg{}
	}
	return m, tea.Batch(resolve, m.spin.Tick)
}

func (m *Model) toggleModel() {
	snap := m.ctrl.Snapshot()
	if snap.Model == askapi.ModelLLM {
		m.ctrl.SetModel(askapi.ModelGemini)
	} else {
		m.ctrl.SetModel(askapi.ModelLLM)
	}
}

func (m *Model) togglePanel(p infoPanel) {
	if m.panel == p {
		m.panel = panelNone
	} else {
		m.panel = p
	}
}

func (m *Model) copyLastAnswer() {
	snap := m.ctrl.Snapshot()
	for i := len(snap.Transcript) - 1; i >= 0; i-- {
		if snap.Transcript[i].Role == session.RoleAssistant {
			if err := clipboard.WriteAll(snap.Transcript[i].Content); err != nil {
				m.status = "copy failed"
			} else {
				m.status = "answer copied"
			}
			return
		}
	}
}

// refreshTranscript re-renders the conversation into the viewport
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch m.panel {
	case panelMetrics:
		b.WriteString(renderMetricsPanel(m.width))
		b.WriteString("\n")
	case panelFeatures:
		b.WriteString(renderFeaturesPanel(m.width))
		b.WriteString("\n")
	}

	snap := m.ctrl.Snapshot()
	if snap.Pending {
		b.WriteString(m.spin.View() + dimStyle.Render("Thinking...") + "\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}

	b.WriteString(m.statusBarView(snap))
	return b.String()
}

func (m Model) headerView() string {
	return titleStyle.Render("🧬 PubMed GenAI RAG Chat")
}

func (m Model) statusBarView(snap session.Snapshot) string {
	left := "model " + modelTagStyle.Render(askapi.ModelLabel(snap.Model))
	help := "enter: ask • ctrl+t: model • ctrl+y: copy • /metrics /features /clear • esc: quit"
	if m.status != "" {
		help = m.status
	}
	return statusBarStyle.Render(left) + " " + helpStyle.Render(help)
}
