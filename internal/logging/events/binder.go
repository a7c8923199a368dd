package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type BinderTracer struct{}

var Binder = BinderTracer{}

func (BinderTracer) Bind(keys int, initial string, rebind bool) {
	logging.Trace("binder.bind", map[string]interface{}{"keys": keys, "initial": initial, "rebind": rebind})
}

func (BinderTracer) Resync(filter string, options int, placeholder bool) {
	logging.Trace("binder.resync", map[string]interface{}{
		"filter":      filter,
		"options":     options,
		"placeholder": placeholder,
	})
}

func (BinderTracer) Unmapped(filter string) {
	logging.Trace("binder.unmapped", map[string]interface{}{"filter": filter})
}
