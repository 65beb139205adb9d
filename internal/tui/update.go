package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.SetWidth(msg.Width)
		return m, nil

	case ProgressMsg:
		cmd := m.progress.Set(msg.Done, msg.Total)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case eventsClosedMsg:
		return m, nil

	case ResultMsg:
		m.finished = true
		if msg.Err != nil || msg.Result == nil {
			m.err = msg.Err
			if m.err == nil {
				m.err = ErrAborted
			}
			return m, tea.Quit
		}
		m.result = msg.Result
		return m, m.progress.Set(msg.Result.Trials, msg.Result.Trials)
	}

	// Animation frames for the progress bar
	var cmd tea.Cmd
	m.progress, cmd = m.progress.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		if !m.finished {
			m.aborted = true
			m.cancel()
		}
		return m, tea.Quit
	}
	return m, nil
}
