package java

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerFinishedMsg struct{}

type scannerModel struct {
	spinner  spinner.Model
	label    string
	quitting bool
}

func newScannerModel(label string) scannerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return scannerModel{
		spinner: s,
		label:   label,
	}
}

func (m scannerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinnerFinishedMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m scannerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf(" %s %s\n", m.spinner.View(), m.label)
}

// WithScanner runs fn while a spinner animates on out. The spinner never
// reads stdin so it does not compete with piped input.
func WithScanner(out io.Writer, label string, fn func() error) error {
	p := tea.NewProgram(newScannerModel(label), tea.WithOutput(out), tea.WithInput(nil))

	errCh := make(chan error, 1)
	go func() {
		time.Sleep(50 * time.Millisecond) // Give UI time to start
		errCh <- fn()
		p.Send(spinnerFinishedMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	return <-errCh
}
