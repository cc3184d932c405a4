package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stigoleg/mousemover/internal/util"
)

// tickMsg is sent when the running view should refresh
type tickMsg time.Time

const (
	menuIndefinite = iota
	menuTimed
	menuQuit
	menuLen
)

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.ShowHelp {
		if key.Matches(msg, m.keys.ToggleHelp, m.keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch m.State {
	case stateMenu:
		return updateMenu(msg, m)
	case stateTimedInput:
		return updateTimedInput(msg, m)
	case stateRunning:
		return updateRunning(msg, m)
	}
	return m, nil
}

func updateMenu(msg tea.Msg, m Model) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(msgKey, m.keys.Down):
		if m.Selected < menuLen-1 {
			m.Selected++
		}
	case key.Matches(msgKey, m.keys.ToggleHelp):
		m.ShowHelp = true
	case key.Matches(msgKey, m.keys.Select):
		switch m.Selected {
		case menuIndefinite:
			if err := m.Runner.StartIndefinite(); err != nil {
				m.ErrorMessage = err.Error()
				return m, nil
			}
			m.State = stateRunning
			m.Duration = 0
			m.ErrorMessage = ""
			return m, tick()
		case menuTimed:
			m.State = stateTimedInput
			m.Input = ""
			m.ErrorMessage = ""
		case menuQuit:
			return m, quit(m)
		}
	case key.Matches(msgKey, m.keys.Quit):
		return m, quit(m)
	}
	return m, nil
}

func updateTimedInput(msg tea.Msg, m Model) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Submit):
		if m.Input == "" {
			m.ErrorMessage = "Please enter a duration"
			return m, nil
		}
		d, err := util.ParseDuration(m.Input)
		if err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		if d <= 0 {
			m.ErrorMessage = "Duration must be positive"
			return m, nil
		}
		if err := m.Runner.StartTimed(d); err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		m.State = stateRunning
		m.Duration = d
		m.ErrorMessage = ""
		return m, tick()
	case key.Matches(msgKey, m.keys.Back):
		m.State = stateMenu
		m.ErrorMessage = ""
	case key.Matches(msgKey, m.keys.Backspace):
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
			m.ErrorMessage = ""
		}
	case msgKey.Type == tea.KeyCtrlC:
		return m, quit(m)
	case msgKey.Type == tea.KeyRunes:
		for _, r := range msgKey.Runes {
			if !accepted(r) || len(m.Input) >= maxInputLen {
				break
			}
			m.Input += string(r)
			m.ErrorMessage = ""
		}
	}
	return m, nil
}

// accepted reports whether r may appear in a duration such as "90" or "1h30m".
func accepted(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == 'h', r == 'm', r == 's':
		return true
	}
	return false
}

func updateRunning(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			if err := m.Runner.Stop(); err != nil {
				m.ErrorMessage = err.Error()
			} else {
				m.ErrorMessage = ""
			}
			m.State = stateMenu
			m.Duration = 0
			return m, nil
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = true
		case key.Matches(msg, m.keys.Quit):
			return m, quit(m)
		}
	case tickMsg:
		if !m.Runner.IsRunning() {
			m.State = stateMenu
			m.Duration = 0
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// quit stops an active session before leaving the program.
func quit(m Model) tea.Cmd {
	if m.Runner.IsRunning() {
		_ = m.Runner.Stop()
	}
	return tea.Quit
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
