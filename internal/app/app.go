package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/binder"
	"github.com/atomicstack/tmux-popup-select/internal/format/table"
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/options"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	OptionsFile   string
	FilterValues  []string
	FilterValue   string
	FilteredValue string
	FilterTitle   string
	FilteredTitle string
	Width         int
	Height        int
	ShowFooter    bool
	Watch         time.Duration
	Namespace     string
	List          bool
}

// ErrLoad marks failures to read or parse the option map file.
var ErrLoad = errors.New("load options")

// LoadOptions reads the configured option map, or the built-in sample when
// no file is configured.
func LoadOptions(cfg Config) (*options.Map, error) {
	if cfg.OptionsFile == "" {
		return options.Sample(), nil
	}
	m, err := options.Load(cfg.OptionsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return m, nil
}

// NewModel builds the UI model for cfg around an already loaded map.
func NewModel(cfg Config, m *options.Map, watcher *backend.Watcher) *ui.Model {
	return ui.NewModel(ui.Params{
		Options:       m,
		FilterValues:  cfg.FilterValues,
		FilterValue:   cfg.FilterValue,
		FilteredValue: cfg.FilteredValue,
		FilterTitle:   cfg.FilterTitle,
		FilteredTitle: cfg.FilteredTitle,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Watcher:       watcher,
		Binder:        binder.New(binder.WithLogger(logging.Logger()), binder.WithNamespace(cfg.Namespace)),
	})
}

// Run bootstraps and executes the Bubble Tea program and returns what the
// user picked.
func Run(cfg Config) (ui.Selection, error) {
	m, err := LoadOptions(cfg)
	if err != nil {
		return ui.Selection{}, err
	}
	var watcher *backend.Watcher
	if cfg.OptionsFile != "" && cfg.Watch > 0 {
		watcher = backend.NewWatcher(cfg.OptionsFile, cfg.Watch)
		defer watcher.Stop()
	}
	model := NewModel(cfg, m, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return ui.Selection{}, nil
	}
	if err != nil {
		return ui.Selection{}, err
	}
	return model.Result(), nil
}

// List writes the option map as an aligned table, one row per filtered
// option, in map order.
func List(cfg Config, w io.Writer) error {
	m, err := LoadOptions(cfg)
	if err != nil {
		return err
	}
	keys := cfg.FilterValues
	if len(keys) == 0 {
		keys = m.Keys()
	}
	rows := [][]string{{"FILTER", "VALUE", "LABEL"}}
	for _, key := range keys {
		set, ok := m.Lookup(key)
		if !ok {
			rows = append(rows, []string{key, options.PlaceholderValue, options.PlaceholderLabel})
			continue
		}
		for _, opt := range set.Options() {
			rows = append(rows, []string{key, opt.Value, opt.Label})
		}
	}
	for _, line := range table.Format(rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
