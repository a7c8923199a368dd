package command

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a deferred UI action.
type Request struct {
	ID      string
	Label   string
	Handler func() tea.Msg
}

// Bus turns UI actions into Bubble Tea commands.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
