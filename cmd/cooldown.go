package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type cooldownTickMsg struct{}

// cooldownModel counts down until the resend lock opens. remaining is asked
// fresh on every tick so a server-advised window stays accurate.
type cooldownModel struct {
	remaining func() int
	style     lipgloss.Style
	seconds   int
}

func newCooldownModel(remaining func() int) cooldownModel {
	return cooldownModel{
		remaining: remaining,
		style:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		seconds:   remaining(),
	}
}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}

func (m cooldownModel) Init() tea.Cmd {
	if m.seconds <= 0 {
		return tea.Quit
	}
	return cooldownTick()
}

func (m cooldownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case cooldownTickMsg:
		m.seconds = m.remaining()
		if m.seconds <= 0 {
			return m, tea.Quit
		}
		return m, cooldownTick()
	default:
		return m, nil
	}
}

func (m cooldownModel) View() string {
	if m.seconds <= 0 {
		return ""
	}

	return m.style.Render(fmt.Sprintf("Resend available in %ds", m.seconds))
}

// runCooldown blocks until remaining() reaches zero, showing the countdown.
func runCooldown(ctx context.Context, output io.Writer, remaining func() int) error {
	p := tea.NewProgram(
		newCooldownModel(remaining),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
