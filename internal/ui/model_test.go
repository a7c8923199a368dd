package ui

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/binder"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func scenarioMap() *options.Map {
	m := options.NewMap()
	m.Put("A", options.NewSet(
		options.Option{Value: "1", Label: "One"},
		options.Option{Value: "2", Label: "Two"},
	))
	m.Put("B", options.NewSet(options.Option{Value: "3", Label: "Three"}))
	return m
}

func newTestModel(p Params) *Model {
	if p.Options == nil {
		p.Options = scenarioMap()
	}
	p.Binder = binder.New(binder.WithLogger(zap.NewNop()))
	return NewModel(p)
}

func filteredValues(m *Model) []string {
	values := make([]string, 0, len(m.filtered.Items))
	for _, opt := range m.filtered.Items {
		values = append(values, opt.Value)
	}
	return values
}

func TestNewModelBindsInitialFilterValue(t *testing.T) {
	m := newTestModel(Params{FilterValue: "A", FilteredValue: "2"})
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("expected options 1,2 got %v", got)
	}
	if m.filtered.Value() != "2" {
		t.Fatalf("expected initial filtered value 2, got %q", m.filtered.Value())
	}
	if m.focus != focusFiltered {
		t.Fatalf("expected focus on filtered select")
	}
	if m.filteredChanges != 1 {
		t.Fatalf("expected one change notification at bind, got %d", m.filteredChanges)
	}
}

func TestNewModelWithoutFilterValueShowsPlaceholder(t *testing.T) {
	m := newTestModel(Params{})
	if m.filter.Value() != "" {
		t.Fatalf("expected placeholder filter value, got %q", m.filter.Value())
	}
	if got := m.filtered.Items; len(got) != 1 || got[0] != options.Placeholder() {
		t.Fatalf("expected placeholder option, got %#v", got)
	}
	if m.focus != focusFilter {
		t.Fatalf("expected focus on filter select")
	}
}

func TestNewModelRejectsUnknownFilterValue(t *testing.T) {
	m := newTestModel(Params{FilterValue: "Z"})
	if m.errMsg == "" {
		t.Fatalf("expected error message for unknown filter value")
	}
	if m.filter.Value() != "" {
		t.Fatalf("expected no filter value, got %q", m.filter.Value())
	}
}

func TestFilterNavigationRepopulatesFiltered(t *testing.T) {
	h := NewHarness(newTestModel(Params{}))
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	m := h.Model()
	if m.filter.Value() != "A" {
		t.Fatalf("expected filter A, got %q", m.filter.Value())
	}
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("expected options 1,2 got %v", got)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("expected option 3, got %v", got)
	}
	if m.filteredChanges != 3 {
		t.Fatalf("expected a change notification per filter change, got %d", m.filteredChanges)
	}
}

func TestTypingInFilterSelectsBestMatch(t *testing.T) {
	h := NewHarness(newTestModel(Params{}))
	h.Type("B")
	m := h.Model()
	if m.filter.Query != "B" || m.filter.Value() != "B" {
		t.Fatalf("expected query and value B, got %q/%q", m.filter.Query, m.filter.Value())
	}
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("expected option 3, got %v", got)
	}

	h.Key(tea.KeyEsc)
	if m.filter.Query != "" {
		t.Fatalf("expected esc to clear the query")
	}
	if h.Quit() {
		t.Fatalf("expected esc with a query not to quit")
	}
	if m.filter.Value() != "B" {
		t.Fatalf("expected B to stay current, got %q", m.filter.Value())
	}
}

func TestUnmappedFilterValueShowsPlaceholder(t *testing.T) {
	h := NewHarness(newTestModel(Params{FilterValues: []string{"A", "B", "C"}, FilterValue: "A"}))
	m := h.Model()
	h.Key(tea.KeyShiftTab)
	h.Key(tea.KeyEnd)
	if m.filter.Value() != "C" {
		t.Fatalf("expected filter C, got %q", m.filter.Value())
	}
	if got := m.filtered.Items; len(got) != 1 || got[0] != options.Placeholder() {
		t.Fatalf("expected placeholder option, got %#v", got)
	}

	h.Key(tea.KeyHome)
	if m.filter.Value() != "" {
		t.Fatalf("expected empty filter value, got %q", m.filter.Value())
	}
	if got := m.filtered.Items; len(got) != 1 || got[0] != options.Placeholder() {
		t.Fatalf("expected placeholder option, got %#v", got)
	}
}

func TestEnterConfirmsSelection(t *testing.T) {
	h := NewHarness(newTestModel(Params{}))
	h.Key(tea.KeyDown)
	h.Key(tea.KeyEnter)
	m := h.Model()
	if m.focus != focusFiltered {
		t.Fatalf("expected enter on filter to focus filtered select")
	}
	h.Key(tea.KeyDown)
	h.Key(tea.KeyEnter)
	if !h.Quit() {
		t.Fatalf("expected program to quit after confirmation")
	}
	want := Selection{Filter: "A", FilterLabel: "A", Filtered: "2", FilteredLabel: "Two", Confirmed: true}
	if got := m.Result(); got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestEnterOnPlaceholderDoesNotConfirm(t *testing.T) {
	h := NewHarness(newTestModel(Params{}))
	h.Key(tea.KeyEnter)
	m := h.Model()
	if m.focus != focusFilter || m.currentInfo() == "" {
		t.Fatalf("expected hint while no filter value is chosen")
	}
	h.Key(tea.KeyTab)
	h.Key(tea.KeyEnter)
	if h.Quit() || m.Result().Confirmed {
		t.Fatalf("expected placeholder not to confirm")
	}
}

func TestEscAndCtrlCCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		h := NewHarness(newTestModel(Params{FilterValue: "A"}))
		h.Key(key)
		if !h.Quit() {
			t.Fatalf("expected %v to quit", key)
		}
		if h.Model().Result().Confirmed {
			t.Fatalf("expected cancelled selection")
		}
	}
}

func TestBackendReloadRebinds(t *testing.T) {
	h := NewHarness(newTestModel(Params{FilterValue: "A", FilteredValue: "2"}))
	m := h.Model()

	next := options.NewMap()
	next.Put("A", options.NewSet(
		options.Option{Value: "2", Label: "Two"},
		options.Option{Value: "4", Label: "Four"},
	))
	next.Put("D", options.NewSet(options.Option{Value: "5", Label: "Five"}))
	h.Send(backendEventMsg{event: backend.Event{Options: next}})

	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Fatalf("expected reloaded options, got %v", got)
	}
	if m.filtered.Value() != "2" {
		t.Fatalf("expected filtered value kept, got %q", m.filtered.Value())
	}
	if m.filter.Listeners() != 1 {
		t.Fatalf("expected exactly one binding listener, got %d", m.filter.Listeners())
	}
	if m.filter.IndexOf("D") < 0 || m.filter.IndexOf("B") >= 0 {
		t.Fatalf("expected filter options refreshed, got %#v", m.filter.Items)
	}

	h.Key(tea.KeyShiftTab)
	h.Key(tea.KeyEnd)
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"5"}) {
		t.Fatalf("expected option 5 after moving to D, got %v", got)
	}
}

func TestBackendErrorShowsStatus(t *testing.T) {
	h := NewHarness(newTestModel(Params{FilterValue: "A"}))
	h.Send(backendEventMsg{event: backend.Event{Err: errors.New("bad file")}})
	m := h.Model()
	if m.errMsg != "bad file" {
		t.Fatalf("expected status error, got %q", m.errMsg)
	}
	if got := filteredValues(m); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("expected options untouched, got %v", got)
	}
}

func TestBackendDoneClearsWatcher(t *testing.T) {
	m := newTestModel(Params{})
	m.handleBackendDoneMsg(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected watcher cleared")
	}
}
