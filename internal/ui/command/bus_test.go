package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestExecuteRunsHandler(t *testing.T) {
	bus := New()
	cmd := bus.Execute(Request{ID: "confirm", Label: "A/1", Handler: func() tea.Msg { return doneMsg{id: "confirm"} }})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.id != "confirm" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestExecuteWithoutHandlerYieldsNil(t *testing.T) {
	cmd := New().Execute(Request{ID: "noop"})
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
