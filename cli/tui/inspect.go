package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/strata/cli/reader"
)

// InspectModel is a Bubble Tea model for inspect views.
type InspectModel struct {
	viewType string
	data     any
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(viewType string, data any) InspectModel {
	return InspectModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := lipgloss.Height(m.headerView())
		vpHeight := m.height - headerHeight - 4
		if vpHeight < 3 {
			vpHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(m.width-4, vpHeight)
			m.viewport.SetContent(m.transcriptContent())
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = vpHeight
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	if m.viewType != "inspect_step" {
		return fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	header := m.headerView()

	var body string
	if m.ready {
		body = TranscriptStyle.Render(m.viewport.View())
	} else {
		body = TranscriptStyle.Render(m.transcriptContent())
	}

	help := HelpStyle.Render("↑/↓ scroll · q or Ctrl+C to quit")
	return header + "\n" + body + "\n" + help
}

func (m InspectModel) headerView() string {
	data, ok := m.data.(*reader.InspectStepResponse)
	if !ok {
		return "Invalid data type for inspect_step"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Step %d", data.Step)))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Agent ID", data.AgentID},
		{"Transcript", orNone(data.TranscriptPath)},
		{"Screenshot", orNone(data.ScreenshotPath)},
	}

	for _, row := range rows {
		label := LabelStyle.Render(row[0] + ":")
		value := ValueStyle.Render(row[1])
		b.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}

	return BoxStyle.Render(b.String())
}

func (m InspectModel) transcriptContent() string {
	data, ok := m.data.(*reader.InspectStepResponse)
	if !ok {
		return "Invalid data type for inspect_step"
	}
	if data.Transcript == "" {
		return "(no transcript on disk for this step)"
	}
	return data.Transcript
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(viewType string, data any) error {
	model := NewInspectModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders inspect data without full TUI (for fallback).
func RenderInspectStatic(viewType string, data any) string {
	model := NewInspectModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
