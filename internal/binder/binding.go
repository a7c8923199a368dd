package binder

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	"go.uber.org/zap"
)

// Binding is the live association of a filter control, a filtered control and
// the option map resolving one into the other.
type Binding struct {
	filter      Control
	filtered    Control
	options     *options.Map
	initial     string
	binder      *Binder
	unsubscribe func()
	detached    bool
}

// Options returns the map the binding resolves against.
func (b *Binding) Options() *options.Map {
	return b.options
}

// InitialValue returns the filtered value requested at bind time.
func (b *Binding) InitialValue() string {
	return b.initial
}

// Active reports whether the binding still listens to its filter control.
func (b *Binding) Active() bool {
	return !b.detached
}

func (b *Binding) onFilterChange() {
	if b.detached {
		return
	}
	b.Resync()
}

// Resync repopulates the filtered control from the filter control's current
// value and fires a change notification on the filtered control.
func (b *Binding) Resync() {
	v := b.filter.Value()
	b.filtered.ClearOptions()
	if set, ok := b.lookup(v); ok {
		opts := set.Options()
		for _, opt := range opts {
			b.filtered.AppendOption(opt.Value, opt.Label)
		}
		events.Binder.Resync(v, len(opts), false)
	} else {
		if v != "" {
			events.Binder.Unmapped(v)
			b.binder.diagnostic(fmt.Sprintf(`Value "%s" is not set in option map.`, v), zap.String("filter", v))
		}
		placeholder := options.Placeholder()
		b.filtered.AppendOption(placeholder.Value, placeholder.Label)
		events.Binder.Resync(v, 1, true)
	}
	b.filtered.EmitChange()
}

func (b *Binding) lookup(v string) (*options.Set, bool) {
	if v == "" {
		return nil, false
	}
	return b.options.Lookup(v)
}

func (b *Binding) detach() {
	if b.detached {
		return
	}
	b.detached = true
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}
