package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/binder"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	"github.com/atomicstack/tmux-popup-select/internal/theme"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusFilter focus = iota
	focusFiltered
)

const (
	headerSeparator      = "→"
	defaultFilterTitle   = "filter"
	defaultFilteredTitle = "option"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Params configures a Model.
type Params struct {
	Options       *options.Map
	FilterValues  []string
	FilterValue   string
	FilteredValue string
	FilterTitle   string
	FilteredTitle string
	Width         int
	Height        int
	ShowFooter    bool
	Watcher       *backend.Watcher
	Binder        *binder.Binder
}

// Selection is what the user picked when the program ended.
type Selection struct {
	Filter        string
	FilterLabel   string
	Filtered      string
	FilteredLabel string
	Confirmed     bool
}

// Model implements the Bubble Tea model for the dependent select pair.
type Model struct {
	filter       *uistate.Select
	filtered     *uistate.Select
	options      *options.Map
	filterValues []string
	binder       *binder.Binder
	binding      *binder.Binding
	focus        focus

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	queryCursor      cursor.Model
	queryCursorDirty bool
	queryCursorLive  bool

	backend         *backend.Watcher
	bus             *command.Bus
	handlers        map[reflect.Type]msgHandler
	filteredChanges int
	result          Selection
}

// NewModel builds both controls, binds them and applies the initial values.
func NewModel(p Params) *Model {
	m := &Model{
		options:      p.Options,
		filterValues: append([]string(nil), p.FilterValues...),
		binder:       p.Binder,
		backend:      p.Watcher,
		showFooter:   p.ShowFooter,
		bus:          command.New(),
	}
	if m.options == nil {
		m.options = options.NewMap()
	}
	if m.binder == nil {
		m.binder = binder.New()
	}
	m.filter = uistate.NewSelect("filter", titleOr(p.FilterTitle, defaultFilterTitle),
		options.FilterOptions(m.options, m.filterValues))
	m.filtered = uistate.NewSelect("filtered", titleOr(p.FilteredTitle, defaultFilteredTitle), nil)
	if p.FilterValue != "" {
		m.filter.SetValue(p.FilterValue)
		if m.filter.Value() != p.FilterValue {
			m.errMsg = fmt.Sprintf("%q is not a %s", p.FilterValue, m.filter.Title)
		}
	}
	m.filtered.OnChange(m.onFilteredChange)
	m.binding = m.binder.Bind(m.filter, m.filtered, m.options, p.FilteredValue)
	if m.filter.Value() != "" {
		m.focus = focusFiltered
	}

	if p.Width > 0 {
		m.width = p.Width
		m.fixedWidth = true
	}
	if p.Height > 0 {
		m.height = p.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.queryCursor = c
	m.registerHandlers()
	m.syncViewports()
	return m
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.queryCursorLive = true
	if cmd := m.queryCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateQueryCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Result returns the selection recorded when the program ended.
func (m *Model) Result() Selection {
	return m.result
}

// Filter exposes the filter control.
func (m *Model) Filter() *uistate.Select {
	return m.filter
}

// Filtered exposes the filtered control.
func (m *Model) Filtered() *uistate.Select {
	return m.filtered
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(confirmMsg{}):        m.handleConfirmMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.queryCursorDirty && m.queryCursorLive {
		m.queryCursorDirty = false
		m.queryCursor.Blink = false
		if cmd := m.queryCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) focused() *uistate.Select {
	if m.focus == focusFiltered {
		return m.filtered
	}
	return m.filter
}

func (m *Model) onFilteredChange() {
	m.filteredChanges++
	events.Select.Change(m.filtered.ID, m.filtered.Value())
	m.syncViewport(m.filtered)
}

// changeValue runs action against sel and fires sel's change notification when
// the action changed its value.
func (m *Model) changeValue(sel *uistate.Select, action func() bool) bool {
	before := sel.Value()
	changed := action()
	if sel.Value() != before {
		if sel != m.filtered {
			events.Select.Change(sel.ID, sel.Value())
		}
		sel.EmitChange()
	}
	m.syncViewport(sel)
	return changed
}
