package ui

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmMsg struct {
	selection Selection
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		events.UI.Cancel(events.ReasonCtrlC)
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "tab", "shift+tab":
		m.toggleFocus()
	case "up":
		m.moveCursor((*uistate.Select).MoveCursorUp)
	case "down":
		m.moveCursor((*uistate.Select).MoveCursorDown)
	case "pgup":
		m.moveCursor(func(s *uistate.Select) bool { return s.MoveCursorPageUp(m.maxVisibleFor(s)) })
	case "pgdown":
		m.moveCursor(func(s *uistate.Select) bool { return s.MoveCursorPageDown(m.maxVisibleFor(s)) })
	case "home":
		m.moveCursor((*uistate.Select).MoveCursorHome)
	case "end":
		m.moveCursor((*uistate.Select).MoveCursorEnd)
	}
	return nil
}

func (m *Model) moveCursor(move func(*uistate.Select) bool) {
	current := m.focused()
	if m.changeValue(current, func() bool { return move(current) }) {
		events.Select.Cursor(current.ID, current.Cursor)
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusFilter {
		m.setFocus(focusFiltered)
		return
	}
	m.setFocus(focusFilter)
}

func (m *Model) setFocus(f focus) {
	if m.focus == f {
		return
	}
	m.focus = f
	m.queryCursorDirty = true
	m.errMsg = ""
	events.UI.Focus(m.focused().ID)
}

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.focused()
	if current.Query != "" {
		m.clearQuery(current)
		return nil
	}
	events.UI.Cancel(events.ReasonEscape)
	return tea.Quit
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.focus == focusFilter {
		if m.filter.Value() == "" {
			m.setInfo("Choose a " + m.filter.Title + " first.")
			return nil
		}
		m.setFocus(focusFiltered)
		return nil
	}
	value := m.filtered.Value()
	if value == "" {
		m.setInfo("Nothing to select.")
		return nil
	}
	selection := Selection{
		Filter:    m.filter.Value(),
		Filtered:  value,
		Confirmed: true,
	}
	if opt, ok := m.filter.Current(); ok {
		selection.FilterLabel = opt.Label
	}
	if opt, ok := m.filtered.Current(); ok {
		selection.FilteredLabel = opt.Label
	}
	return m.bus.Execute(command.Request{
		ID:    "confirm",
		Label: selection.Filter + headerSeparator + selection.Filtered,
		Handler: func() tea.Msg {
			return confirmMsg{selection: selection}
		},
	})
}

func (m *Model) handleConfirmMsg(msg tea.Msg) tea.Cmd {
	confirm, ok := msg.(confirmMsg)
	if !ok {
		return nil
	}
	m.result = confirm.selection
	events.UI.Confirm(confirm.selection.Filter, confirm.selection.Filtered)
	return tea.Quit
}

func (m *Model) syncViewports() {
	m.syncViewport(m.filter)
	m.syncViewport(m.filtered)
}

func (m *Model) syncViewport(s *uistate.Select) {
	if s == nil {
		return
	}
	s.EnsureCursorVisible(m.maxVisibleFor(s))
}
