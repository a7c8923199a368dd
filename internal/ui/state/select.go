package state

import "github.com/atomicstack/tmux-popup-select/internal/options"

// Select is a single-choice selection control: an ordered option list, a
// current option, a type-to-search query and a scrolling viewport. It
// satisfies binder.Control.
type Select struct {
	ID             string
	Title          string
	Items          []options.Option
	Full           []options.Option
	Query          string
	QueryCursor    int
	Cursor         int
	ViewportOffset int

	listeners    []listener
	nextListener int
}

type listener struct {
	id int
	fn func()
}

// NewSelect constructs a Select holding opts. The first option is current.
func NewSelect(id, title string, opts []options.Option) *Select {
	s := &Select{
		ID:     id,
		Title:  title,
		Cursor: -1,
	}
	s.SetOptions(opts)
	return s
}

// Value returns the value of the current option, or "" when none is current.
func (s *Select) Value() string {
	if opt, ok := s.Current(); ok {
		return opt.Value
	}
	return ""
}

// Current returns the current option.
func (s *Select) Current() (options.Option, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return options.Option{}, false
	}
	return s.Items[s.Cursor], true
}

// SetValue makes the first option with value v current and clears the query.
// When no option carries v nothing is current and Value reports "".
func (s *Select) SetValue(v string) {
	s.Query = ""
	s.QueryCursor = 0
	s.Items = cloneOptions(s.Full)
	s.Cursor = s.IndexOf(v)
}

// IndexOf returns the index of value among the visible options.
func (s *Select) IndexOf(value string) int {
	for i, opt := range s.Items {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// ClearOptions removes every option, the query and the selection.
func (s *Select) ClearOptions() {
	s.Full = nil
	s.Items = nil
	s.Query = ""
	s.QueryCursor = 0
	s.Cursor = -1
	s.ViewportOffset = 0
}

// AppendOption adds an option at the end. When nothing is current the first
// visible option becomes current.
func (s *Select) AppendOption(value, label string) {
	s.Full = append(s.Full, options.Option{Value: value, Label: label})
	s.applyQuery()
}

// SetOptions replaces all options, keeping the current value when it survives.
func (s *Select) SetOptions(opts []options.Option) {
	s.Full = cloneOptions(opts)
	s.applyQuery()
}

// OnChange registers fn for change notifications. Listeners run in
// registration order; the returned function unregisters fn.
func (s *Select) OnChange(fn func()) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// EmitChange notifies every listener registered when the call starts.
func (s *Select) EmitChange() {
	snapshot := append([]listener(nil), s.listeners...)
	for _, l := range snapshot {
		l.fn()
	}
}

// Listeners reports how many change listeners are registered.
func (s *Select) Listeners() int {
	return len(s.listeners)
}

func cloneOptions(opts []options.Option) []options.Option {
	dup := make([]options.Option, len(opts))
	copy(dup, opts)
	return dup
}
