// Package binder keeps a filtered selection control's options in step with the
// value of a separate filter control.
//
// A Binding listens for change notifications on the filter control. Each
// notification resolves the filter value against an options.Map, replaces the
// filtered control's options with the mapped set (or the "---" placeholder when
// nothing is mapped) and then fires a change notification on the filtered
// control, whether or not its options actually differ.
//
// All calls are expected on the single goroutine that delivers the controls'
// change notifications; nothing here locks.
package binder

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	"go.uber.org/zap"
)

// DefaultNamespace prefixes diagnostic lines.
const DefaultNamespace = "tmux-popup-select"

// Control is the capability a selection control must offer to be bound.
// Implementations are used as map keys and must be comparable (pointers).
type Control interface {
	Value() string
	SetValue(v string)
	ClearOptions()
	AppendOption(value, label string)
	// OnChange registers fn for change notifications and returns a function
	// that removes it again.
	OnChange(fn func()) func()
	EmitChange()
}

// Binder creates bindings and remembers which filtered controls it drives.
type Binder struct {
	logger    *zap.Logger
	namespace string
	bound     map[Control]*Binding
}

type Option func(*Binder)

// WithLogger routes diagnostics to l instead of the shared application logger,
// which is otherwise looked up each time a diagnostic is written.
func WithLogger(l *zap.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithNamespace changes the prefix of diagnostic lines.
func WithNamespace(ns string) Option {
	return func(b *Binder) {
		if ns != "" {
			b.namespace = ns
		}
	}
}

func New(opts ...Option) *Binder {
	b := &Binder{
		namespace: DefaultNamespace,
		bound:     make(map[Control]*Binding),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind ties filtered to filter through m, synchronizes once and, when
// initialFilteredValue is non-empty, selects it in filtered.
//
// Binding a filtered control that this Binder already drives detaches the
// previous listener first, so a filtered control never has more than one
// binding. The superseded Binding stops reacting to its filter control.
//
// Selecting an initial value that is not among the resolved options follows
// filtered's own SetValue semantics; the miss is reported as a diagnostic.
func (b *Binder) Bind(filter, filtered Control, m *options.Map, initialFilteredValue string) *Binding {
	prev, rebind := b.bound[filtered]
	if rebind {
		prev.detach()
	}
	binding := &Binding{
		filter:   filter,
		filtered: filtered,
		options:  m,
		initial:  initialFilteredValue,
		binder:   b,
	}
	binding.unsubscribe = filter.OnChange(binding.onFilterChange)
	b.bound[filtered] = binding
	events.Binder.Bind(m.Len(), initialFilteredValue, rebind)

	binding.Resync()
	if initialFilteredValue != "" {
		filtered.SetValue(initialFilteredValue)
		if filtered.Value() != initialFilteredValue {
			b.diagnostic(fmt.Sprintf(`Initial value "%s" is not an available option.`, initialFilteredValue),
				zap.String("initial", initialFilteredValue))
		}
	}
	return binding
}

// Binding returns the live binding driving filtered, if any.
func (b *Binder) Binding(filtered Control) (*Binding, bool) {
	binding, ok := b.bound[filtered]
	return binding, ok
}

func (b *Binder) diagnostic(msg string, fields ...zap.Field) {
	l := b.logger
	if l == nil {
		l = logging.Logger()
	}
	l.Warn(fmt.Sprintf("(%s) %s", b.namespace, msg), fields...)
}

var defaultBinder *Binder

// Bind binds through a package-level Binder using the shared logger.
func Bind(filter, filtered Control, m *options.Map, initialFilteredValue string) *Binding {
	if defaultBinder == nil {
		defaultBinder = New()
	}
	return defaultBinder.Bind(filter, filtered, m, initialFilteredValue)
}
