package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/domain"
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
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.status = "Copy failed: " + msg.Err.Error()
		} else {
			m.status = m.activeTab.String() + " result copied to clipboard"
		}
		return m, nil
	}

	// Cursor blink and other input messages go to the focused field
	return m, m.forms[m.activeTab].update(msg)
}

// handleKeyPress processes keyboard input. Keys that are not shortcuts edit
// the focused field, and the active tab is recomputed after every edit.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.forms[m.activeTab]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
		m.status = ""
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		m.status = ""
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextField):
		return m, f.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, f.move(-1)

	case key.Matches(msg, m.keys.ToggleMode):
		if m.activeTab != TabLoan {
			return m, nil
		}
		mode := domain.InterestFlat
		if current, err := domain.ParseInterestMode(f.value(loanMode)); err == nil && current == domain.InterestFlat {
			mode = domain.InterestReducing
		}
		f.set(loanMode, string(mode))
		m.recompute(TabLoan)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		text := m.summary(m.activeTab)
		if text == "" {
			m.status = "Nothing to copy until the inputs are valid"
			return m, nil
		}
		return m, copyCmd(m.copyText, text)
	}

	cmd := f.update(msg)
	m.recompute(m.activeTab)
	return m, cmd
}
