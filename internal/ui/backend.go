package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Error(evt.Err)
		m.errMsg = evt.Err.Error()
		return
	}
	m.errMsg = ""
	m.rebind(evt.Options)
	m.setInfo(fmt.Sprintf("Reloaded %d %s entries.", evt.Options.Len(), m.filter.Title))
}

// rebind swaps in a new option map: the filter control gets the new filter
// options (keeping its value when still offered) and the pair is bound again,
// which replaces the previous listener and repopulates the filtered control.
func (m *Model) rebind(next *options.Map) {
	if next == nil {
		next = options.NewMap()
	}
	keep := m.filtered.Value()
	m.options = next
	m.filter.SetOptions(options.FilterOptions(next, m.filterValues))
	m.binding = m.binder.Bind(m.filter, m.filtered, next, "")
	if keep != "" && m.filtered.IndexOf(keep) >= 0 {
		m.filtered.SetValue(keep)
	}
	m.syncViewports()
}
