package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type UITracer struct{}

type SelectTracer struct{}

type QueryTracer struct{}

type WatchTracer struct{}

type uiReason string

const (
	ReasonEscape uiReason = "escape"
	ReasonCtrlC  uiReason = "ctrl+c"
)

var (
	UI     = UITracer{}
	Select = SelectTracer{}
	Query  = QueryTracer{}
	Watch  = WatchTracer{}
)

func (UITracer) Focus(selectID string) {
	logging.Trace("ui.focus", map[string]interface{}{"select": selectID})
}

func (UITracer) Confirm(filter, filtered string) {
	logging.Trace("ui.confirm", map[string]interface{}{"filter": filter, "filtered": filtered})
}

func (UITracer) Cancel(reason uiReason) {
	logging.Trace("ui.cancel", map[string]interface{}{"reason": string(reason)})
}

func (SelectTracer) Cursor(selectID string, cursor int) {
	logging.Trace("select.cursor", map[string]interface{}{"select": selectID, "cursor": cursor})
}

func (SelectTracer) Change(selectID, value string) {
	logging.Trace("select.change", map[string]interface{}{"select": selectID, "value": value})
}

func (QueryTracer) Cleared(selectID string) {
	logging.Trace("query.clear", map[string]interface{}{"select": selectID})
}

func (QueryTracer) WordBackspace(selectID, query string) {
	logging.Trace("query.word-backspace", map[string]interface{}{"select": selectID, "query": query})
}

func (QueryTracer) Append(selectID, query string) {
	logging.Trace("query.append", map[string]interface{}{"select": selectID, "query": query})
}

func (QueryTracer) Backspace(selectID, query string) {
	logging.Trace("query.backspace", map[string]interface{}{"select": selectID, "query": query})
}

func (WatchTracer) Reload(path string, keys int) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path, "keys": keys})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
