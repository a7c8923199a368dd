package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateQueryCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.queryCursor, cmd = m.queryCursor.Update(msg)
	return cmd
}

func (m *Model) noteQueryCursorChange(s *uistate.Select, before int) {
	if before != s.QueryCursorPos() {
		m.queryCursorDirty = true
	}
}

// handleTextInput applies search-query editing keys to the focused select.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.focused()
	switch msg.String() {
	case "ctrl+u":
		if current.Query == "" {
			return false
		}
		m.clearQuery(current)
		return true
	case "ctrl+w":
		return m.editQuery(current, current.DeleteQueryWordBackward, events.Query.WordBackspace)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editQuery(current, current.DeleteQueryRuneBackward, events.Query.Backspace)
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		text := string(msg.Runes)
		return m.editQuery(current, func() bool { return current.InsertQueryText(text) }, events.Query.Append)
	case tea.KeySpace:
		return m.editQuery(current, func() bool { return current.InsertQueryText(" ") }, events.Query.Append)
	case tea.KeyLeft:
		before := current.QueryCursorPos()
		if !current.MoveQueryCursorRuneBackward() {
			return false
		}
		m.noteQueryCursorChange(current, before)
		return true
	case tea.KeyRight:
		before := current.QueryCursorPos()
		if !current.MoveQueryCursorRuneForward() {
			return false
		}
		m.noteQueryCursorChange(current, before)
		return true
	}
	return false
}

func (m *Model) editQuery(s *uistate.Select, edit func() bool, trace func(selectID, query string)) bool {
	before := s.QueryCursorPos()
	if !m.changeValue(s, edit) {
		return false
	}
	m.noteQueryCursorChange(s, before)
	m.forceClearInfo()
	m.errMsg = ""
	trace(s.ID, s.Query)
	return true
}

func (m *Model) clearQuery(s *uistate.Select) {
	before := s.QueryCursorPos()
	m.changeValue(s, s.ClearQuery)
	m.noteQueryCursorChange(s, before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Query.Cleared(s.ID)
}

func (m *Model) queryPrompt() string {
	current := m.focused()
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.queryCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.queryCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.queryCursor.TextStyle = lipgloss.Style{}
	}
	prompt := current.Title + " » "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := current.Query
	if text == "" {
		runes := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.queryCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderQueryCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := current.QueryCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderQueryCursor(caretRune) + after
}

func (m *Model) renderQueryCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.queryCursor.SetChar(char)

	base := m.queryCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.queryCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
